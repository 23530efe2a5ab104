package splitter

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/monosplit/internal/pysrc"
)

// markerPattern is the whole-line marker form. Matching runs against
// comment nodes from the parse tree, so text that merely looks like a
// marker inside a string literal is never picked up.
var markerPattern = regexp.MustCompile(`^# pragma: newfile\("(.+)"\)\s*$`)

// CountMarkers reports how many lines of raw source have the marker form.
// It is a text-level pre-filter for directory scans; authoritative
// recognition happens against the parse tree, which additionally rejects
// look-alikes inside string literals.
func CountMarkers(source []byte) int {
	count := 0
	for _, line := range strings.Split(string(source), "\n") {
		if markerPattern.MatchString(line) {
			count++
		}
	}
	return count
}

// marker is one recognized split point.
type marker struct {
	line int
	name string
}

// scanResult carries the segmentation tables forward: the import pool,
// the prologue and the ordered segments with normalized bodies.
type scanResult struct {
	imports  importTable
	prologue prologue
	segments []*segment
}

// scanDocument partitions the document into prologue and segments and
// builds the global import table. Lines covered by markers, top-level
// import statements and the main block span never reach a body; bodies
// are blank-collapsed and edge-trimmed.
func scanDocument(doc *pysrc.Document, main *mainBlock) (*scanResult, []Diagnostic, error) {
	markers, err := collectMarkers(doc)
	if err != nil {
		return nil, nil, err
	}

	var diags []Diagnostic

	imports := newImportTable()
	importLines := make(map[int]bool)
	for _, stmt := range doc.TopLevel() {
		if !stmt.Kind.IsImport() {
			continue
		}
		bindings, wildcard := doc.ImportBindings(stmt)
		for _, b := range bindings {
			imports.add(b)
		}
		if wildcard {
			diags = append(diags, Diagnostic{
				Code:    DiagWildcardImport,
				Message: fmt.Sprintf("wildcard import %q binds no trackable name; segments using its names will miss it", doc.Text(stmt.Node)),
				Line:    stmt.Span.Start,
			})
		}
		for line := stmt.Span.Start; line <= stmt.Span.End; line++ {
			importLines[line] = true
		}
	}

	markerAt := make(map[int]marker, len(markers))
	for _, m := range markers {
		markerAt[m.line] = m
	}

	res := &scanResult{imports: imports}
	byName := make(map[string]int)

	firstMarker := doc.LineCount() + 1
	if len(markers) > 0 {
		firstMarker = markers[0].line
	}
	res.prologue.span = pysrc.LineSpan{Start: 1, End: firstMarker - 1}

	var (
		current *segment
		raw     []string
		open    int
	)
	closeRegion := func(end int) {
		if current == nil {
			res.prologue.body = normalizeBody(raw)
		} else {
			current.span = pysrc.LineSpan{Start: open, End: end}
			current.body = normalizeBody(raw)
		}
		raw = nil
	}

	for i := 1; i <= doc.LineCount(); i++ {
		if m, ok := markerAt[i]; ok {
			closeRegion(i - 1)
			if idx, seen := byName[m.name]; seen {
				diags = append(diags, Diagnostic{
					Code:    DiagMarkerReused,
					Message: fmt.Sprintf("marker %q reuses the name from line %d; later content replaces the earlier segment", m.name, res.segments[idx].markerLine),
					Line:    m.line,
				})
				current = res.segments[idx]
				current.markerLine = m.line
			} else {
				current = &segment{
					name:       m.name,
					module:     moduleName(m.name),
					markerLine: m.line,
				}
				byName[m.name] = len(res.segments)
				res.segments = append(res.segments, current)
			}
			open = i + 1
			continue
		}
		if importLines[i] {
			continue
		}
		if main != nil && main.span.Contains(i) {
			continue
		}
		raw = append(raw, doc.Line(i))
	}
	closeRegion(doc.LineCount())

	return res, diags, nil
}

// collectMarkers finds every column-0 comment node matching the marker
// form. Pre-order traversal yields document order.
func collectMarkers(doc *pysrc.Document) ([]marker, error) {
	var markers []marker
	var err error
	pysrc.Walk(doc.Root(), func(n *sitter.Node) bool {
		if err != nil {
			return false
		}
		if n.Kind() != "comment" || n.StartPosition().Column != 0 {
			return true
		}
		match := markerPattern.FindStringSubmatch(doc.Text(n))
		if match == nil {
			return true
		}
		line := int(n.StartPosition().Row) + 1
		if verr := validateArtifactName(match[1]); verr != nil {
			err = fmt.Errorf("marker at line %d: %w", line, verr)
			return false
		}
		markers = append(markers, marker{line: line, name: match[1]})
		return true
	})
	if err != nil {
		return nil, err
	}
	return markers, nil
}

func validateArtifactName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("invalid artifact name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("artifact name %q must be a single path component", name)
	}
	if name == InitFile || name == MainFile {
		return fmt.Errorf("artifact name %q collides with a generated file", name)
	}
	return nil
}

// moduleName strips the extension, mirroring how the artifact will be
// addressed in package import lines.
func moduleName(name string) string {
	ext := path.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// normalizeBody collapses every run of blank lines to a single one and
// drops blank edges. Applying it to already-normalized lines is a no-op.
func normalizeBody(lines []string) []string {
	var out []string
	blank := false
	for _, line := range lines {
		if line == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}
	return out
}
