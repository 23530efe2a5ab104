package splitter

import (
	"fmt"

	"github.com/mvp-joe/monosplit/internal/pysrc"
)

// collectSymbols builds the frozen symbol tables: every segment's
// zero-indentation def/class names as exports, and the prologue's simple
// name assignments as top-level bindings. A name exported by two
// segments is reported; the later segment owns it afterwards.
func collectSymbols(doc *pysrc.Document, scan *scanResult, main *mainBlock) (*symbolTable, []Diagnostic) {
	table := &symbolTable{
		owner:  make(map[string]int),
		byName: make(map[string]int),
	}
	var diags []Diagnostic

	for _, stmt := range doc.TopLevel() {
		switch stmt.Kind {
		case pysrc.StmtFunctionDef, pysrc.StmtClassDef, pysrc.StmtDecoratedDef:
			segIdx := segmentAt(scan, stmt.Span.Start)
			if segIdx < 0 {
				continue // prologue definitions are not exports
			}
			if isMainDef(main, stmt.Span) {
				continue // the relocated entry function is not part of the surface
			}
			name, ok := doc.DefinitionName(stmt)
			if !ok {
				continue
			}
			if prev, dup := table.owner[name]; dup {
				msg := fmt.Sprintf("export %q in %s also defined in %s; the later definition wins", name, scan.segments[segIdx].name, scan.segments[prev].name)
				if prev == segIdx {
					msg = fmt.Sprintf("export %q defined more than once in %s", name, scan.segments[segIdx].name)
				}
				diags = append(diags, Diagnostic{
					Code:    DiagDuplicateExport,
					Message: msg,
					Line:    stmt.Span.Start,
				})
			}
			table.owner[name] = segIdx
			seg := scan.segments[segIdx]
			if !contains(seg.exports, name) {
				seg.exports = append(seg.exports, name)
			}
			table.exports = append(table.exports, exportEntry{name: name, owner: segIdx})

		case pysrc.StmtAssign:
			if !scan.prologue.span.Contains(stmt.Span.Start) {
				continue
			}
			name, ok := doc.SimpleAssignTarget(stmt)
			if !ok {
				continue
			}
			b := binding{name: name, stmt: doc.Text(stmt.Node), span: stmt.Span}
			if i, seen := table.byName[name]; seen {
				table.bindings[i] = b // rebinding: last assignment wins
				continue
			}
			table.byName[name] = len(table.bindings)
			table.bindings = append(table.bindings, b)
		}
	}

	return table, diags
}

// segmentAt returns the index of the segment whose content span holds
// the line, or -1 for the prologue.
func segmentAt(scan *scanResult, line int) int {
	for i, seg := range scan.segments {
		if seg.span.Contains(line) {
			return i
		}
	}
	return -1
}

func isMainDef(main *mainBlock, span pysrc.LineSpan) bool {
	return main != nil && main.form == MainFormDefMain &&
		span.Start <= main.span.Start && main.span.End <= span.End
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
