package splitter

import (
	"github.com/mvp-joe/monosplit/internal/pysrc"
)

// crossRef is a segment's reference to an export it does not define.
type crossRef struct {
	name  string
	owner int
}

// resolved holds the per-artifact emission inputs: the import statements
// the body needs, the sibling exports it pulls in, and the prologue
// bindings it re-declares (with their own imports).
type resolved struct {
	importStmts    []string
	crossRefs      []crossRef
	bindingImports []string
	bindingStmts   []string
	bindingNames   []string
}

// resolveSegment computes what one segment's artifact must carry to be
// self-contained. Name resolution is scope-blind (see pysrc.References);
// a name claimed by the import table is not re-resolved as a cross-
// segment reference or binding.
func resolveSegment(doc *pysrc.Document, scan *scanResult, symbols *symbolTable, main *mainBlock, segIdx int) resolved {
	seg := scan.segments[segIdx]

	spans := []pysrc.LineSpan{seg.span}
	if main != nil {
		spans = spansExcluding(seg.span, main.span)
	}
	used := doc.References(spans)

	var r resolved
	r.importStmts = resolveImports(&scan.imports, used, nil)

	selfDefined := make(map[string]bool, len(seg.exports))
	for _, name := range seg.exports {
		selfDefined[name] = true
	}

	seen := make(map[string]bool)
	for _, e := range symbols.exports {
		if !used[e.name] || seen[e.name] {
			continue
		}
		seen[e.name] = true
		if selfDefined[e.name] || scan.imports.has(e.name) {
			continue
		}
		r.crossRefs = append(r.crossRefs, crossRef{name: e.name, owner: symbols.owner[e.name]})
	}

	for _, b := range symbols.bindings {
		if !used[b.name] || selfDefined[b.name] || scan.imports.has(b.name) {
			continue
		}
		if _, isExport := symbols.owner[b.name]; isExport {
			continue // an exported definition shadows the prologue binding
		}
		bindingUsed := doc.References([]pysrc.LineSpan{b.span})
		r.bindingImports = appendImports(r.bindingImports, resolveImports(&scan.imports, bindingUsed, r.importStmts))
		r.bindingStmts = append(r.bindingStmts, b.stmt)
		r.bindingNames = append(r.bindingNames, b.name)
	}

	return r
}

// resolveImports returns the pool statements whose bound name occurs in
// used, in pool (document) order, deduplicated by statement text and
// excluding any statement already present in exclude.
func resolveImports(imports *importTable, used map[string]bool, exclude []string) []string {
	taken := make(map[string]bool, len(exclude))
	for _, stmt := range exclude {
		taken[stmt] = true
	}
	var out []string
	for _, e := range imports.entries {
		if !used[e.name] || taken[e.stmt] {
			continue
		}
		taken[e.stmt] = true
		out = append(out, e.stmt)
	}
	return out
}

func appendImports(dst, more []string) []string {
	have := make(map[string]bool, len(dst))
	for _, stmt := range dst {
		have[stmt] = true
	}
	for _, stmt := range more {
		if !have[stmt] {
			have[stmt] = true
			dst = append(dst, stmt)
		}
	}
	return dst
}

// spansExcluding subtracts a sub-span, yielding the zero, one or two
// remaining pieces.
func spansExcluding(span, excluded pysrc.LineSpan) []pysrc.LineSpan {
	if span.Empty() {
		return nil
	}
	if excluded.End < span.Start || excluded.Start > span.End {
		return []pysrc.LineSpan{span}
	}
	var out []pysrc.LineSpan
	if excluded.Start > span.Start {
		out = append(out, pysrc.LineSpan{Start: span.Start, End: excluded.Start - 1})
	}
	if excluded.End < span.End {
		out = append(out, pysrc.LineSpan{Start: excluded.End + 1, End: span.End})
	}
	return out
}
