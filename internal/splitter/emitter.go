package splitter

import (
	"strconv"
	"strings"
)

// renderSegment lays out one segment artifact. Section order is a
// correctness requirement — declarations must precede use:
// imports, cross-segment imports, binding imports, binding statements,
// the export manifest, then the body.
func renderSegment(seg *segment, r resolved) Artifact {
	crossLines := make([]string, len(r.crossRefs))
	for i, ref := range r.crossRefs {
		crossLines[i] = "from . import " + ref.name
	}

	return Artifact{
		Name: seg.name,
		Content: joinSections(
			strings.Join(r.importStmts, "\n"),
			strings.Join(crossLines, "\n"),
			strings.Join(r.bindingImports, "\n"),
			strings.Join(r.bindingStmts, "\n"),
			renderManifest(seg.exports),
			strings.Join(seg.body, "\n"),
		),
	}
}

// renderManifest renders the __all__ declaration, or nothing when the
// segment exports nothing.
func renderManifest(exports []string) string {
	if len(exports) == 0 {
		return ""
	}
	return "__all__ = [" + strings.Join(quoteAll(exports), ", ") + "]"
}

func quoteAll(names []string) []string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = strconv.Quote(name)
	}
	return quoted
}

// joinSections joins the non-empty sections with one blank line and
// terminates the artifact with a newline. All-empty input renders an
// empty artifact.
func joinSections(sections ...string) string {
	var parts []string
	for _, s := range sections {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}
