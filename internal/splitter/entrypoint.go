package splitter

import (
	"strings"

	"github.com/mvp-joe/monosplit/internal/pysrc"
)

// buildEntry renders the runnable __main__.py: the prologue body (its
// imports already pooled, the main block excised if it lived there)
// followed by the main block verbatim. Imports and package re-imports
// are resolved against that combined text, so a main block pulled out of
// a segment still finds the names it needs.
func buildEntry(doc *pysrc.Document, scan *scanResult, symbols *symbolTable, main *mainBlock) Artifact {
	spans := spansExcluding(scan.prologue.span, main.span)
	spans = append(spans, main.span)
	used := doc.References(spans)

	importStmts := resolveImports(&scan.imports, used, nil)

	var crossLines []string
	seen := make(map[string]bool)
	for _, e := range symbols.exports {
		if !used[e.name] || seen[e.name] {
			continue
		}
		seen[e.name] = true
		if scan.imports.has(e.name) {
			continue
		}
		crossLines = append(crossLines, "from . import "+e.name)
	}

	body := strings.Join(scan.prologue.body, "\n")

	return Artifact{
		Name: MainFile,
		Content: joinSections(
			strings.Join(importStmts, "\n"),
			strings.Join(crossLines, "\n"),
			joinBody(body, main.text),
		),
	}
}

func joinBody(prologueBody, mainText string) string {
	if prologueBody == "" {
		return mainText
	}
	return prologueBody + "\n\n" + mainText
}
