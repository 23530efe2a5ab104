// Package splitter turns one marker-annotated Python document into a
// package: one artifact per marked segment, an __init__.py façade and,
// when the document carries a main block, a runnable __main__.py. The
// pipeline is pure — Split plans every artifact in memory — and writing
// happens separately so a failed plan never leaves partial output.
package splitter

import (
	"errors"

	"github.com/mvp-joe/monosplit/internal/pysrc"
)

// Generated artifact names.
const (
	InitFile = "__init__.py"
	MainFile = "__main__.py"
)

// Diagnostic codes. Each one replaces a silent precedence rule: the split
// still proceeds with the documented behavior unless strict mode is on.
const (
	DiagAmbiguousMain     = "ambiguous-main"
	DiagDuplicateExport   = "duplicate-export"
	DiagMarkerReused      = "marker-reused"
	DiagDroppedPrologue   = "dropped-prologue"
	DiagWildcardImport    = "wildcard-import"
	DiagCircularReference = "circular-reference"
	DiagForwardReference  = "forward-reference"
)

var (
	// ErrNothingToSplit reports a document with no markers and no main
	// block: there is nothing to produce, so no output directory is made.
	ErrNothingToSplit = errors.New("no split markers or main block found")

	// ErrStrictDiagnostics is returned by Split when strict mode is on
	// and at least one diagnostic was reported.
	ErrStrictDiagnostics = errors.New("diagnostics reported in strict mode")
)

// Diagnostic is one reported finding.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// Artifact is one output file, fully rendered in memory.
type Artifact struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// SegmentResult describes one planned segment artifact.
type SegmentResult struct {
	File       string         `json:"file"`
	Module     string         `json:"module"`
	MarkerLine int            `json:"marker_line"`
	Lines      pysrc.LineSpan `json:"lines"`
	Exports    []string       `json:"exports,omitempty"`
	Imports    []string       `json:"imports,omitempty"`
	CrossRefs  []string       `json:"cross_refs,omitempty"`
	Bindings   []string       `json:"bindings,omitempty"`
}

// MainResult describes the detected main block.
type MainResult struct {
	Form  string         `json:"form"`
	Lines pysrc.LineSpan `json:"lines"`
}

// Recognized main block forms.
const (
	MainFormIfName  = "if-name-main"
	MainFormDefMain = "def-main"
)

// Result is the full outcome of planning a split.
type Result struct {
	RunID       string          `json:"run_id"`
	Segments    []SegmentResult `json:"segments"`
	Main        *MainResult     `json:"main,omitempty"`
	Artifacts   []Artifact      `json:"artifacts"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
}

// Options controls planning behavior.
type Options struct {
	// Strict promotes diagnostics to a fatal error.
	Strict bool
}

// segment is the ordered content owned by one marker.
type segment struct {
	name       string         // artifact filename, as written in the marker
	module     string         // filename stem, used in package import lines
	markerLine int            // line of the (last) marker naming this segment
	span       pysrc.LineSpan // raw content region, marker line excluded
	body       []string       // normalized body lines
	exports    []string       // zero-indentation def/class names, document order
}

// prologue is the content before the first marker.
type prologue struct {
	span pysrc.LineSpan
	body []string // normalized, imports and main block excluded
}

// importEntry maps one bound name to its verbatim import statement.
// Position is first occurrence; a rebinding updates the statement in
// place (last binding wins).
type importEntry struct {
	name string
	stmt string
	line int
}

// importTable is the global import pool, in document order.
type importTable struct {
	entries []importEntry
	byName  map[string]int
}

func newImportTable() importTable {
	return importTable{byName: make(map[string]int)}
}

func (t *importTable) add(b pysrc.ImportBinding) {
	if i, ok := t.byName[b.Name]; ok {
		t.entries[i].stmt = b.Stmt
		t.entries[i].line = b.Line
		return
	}
	t.byName[b.Name] = len(t.entries)
	t.entries = append(t.entries, importEntry{name: b.Name, stmt: b.Stmt, line: b.Line})
}

func (t *importTable) has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// binding is a prologue-level simple assignment segments may depend on.
type binding struct {
	name string
	stmt string
	span pysrc.LineSpan
}

// exportEntry is one exported definition in global document order.
type exportEntry struct {
	name  string
	owner int // segment index
}

// symbolTable holds the frozen export and binding tables.
type symbolTable struct {
	exports  []exportEntry
	owner    map[string]int // name -> owning segment index, last writer wins
	bindings []binding
	byName   map[string]int // binding name -> index
}

// mainBlock is the document's single recognized entry construct.
type mainBlock struct {
	form string
	span pysrc.LineSpan
	text string // verbatim, never normalized
}
