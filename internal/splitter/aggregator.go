package splitter

import (
	"strings"
)

// renderInit builds the __init__.py façade: one wildcard re-export per
// segment with exports, then the combined manifest. The manifest is the
// document-ordered union of every segment's exports, deduplicated, so
// any name importable from the original file stays importable from the
// package top level.
func renderInit(scan *scanResult, symbols *symbolTable) Artifact {
	var reexports []string
	for _, seg := range scan.segments {
		if len(seg.exports) > 0 {
			reexports = append(reexports, "from ."+seg.module+" import *")
		}
	}

	return Artifact{
		Name: InitFile,
		Content: joinSections(
			strings.Join(reexports, "\n"),
			"__all__ = ["+strings.Join(quoteAll(aggregateExports(symbols)), ", ")+"]",
		),
	}
}

// aggregateExports returns the global export names in document order
// without duplicates.
func aggregateExports(symbols *symbolTable) []string {
	seen := make(map[string]bool, len(symbols.exports))
	var names []string
	for _, e := range symbols.exports {
		if seen[e.name] {
			continue
		}
		seen[e.name] = true
		names = append(names, e.name)
	}
	return names
}
