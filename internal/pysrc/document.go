// Package pysrc wraps tree-sitter parsing of a single Python document and
// exposes the structural views the splitter pipeline needs: line-addressable
// source text, classified top-level statements, and bare-name reference
// collection. The document is parsed exactly once; all later stages slice
// spans out of the retained text instead of re-parsing substrings.
package pysrc

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// LineSpan is an inclusive 1-based line range.
type LineSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether line falls inside the span.
func (s LineSpan) Contains(line int) bool {
	return line >= s.Start && line <= s.End
}

// Empty reports whether the span covers no lines.
func (s LineSpan) Empty() bool {
	return s.End < s.Start
}

// NodeSpan returns the 1-based line span covered by a node.
func NodeSpan(node *sitter.Node) LineSpan {
	return LineSpan{
		Start: int(node.StartPosition().Row) + 1,
		End:   int(node.EndPosition().Row) + 1,
	}
}

// SyntaxError is a single malformed region found by the parser.
type SyntaxError struct {
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d", e.Line, e.Column)
}

// Document is a parsed Python source file. It owns the tree-sitter tree;
// callers must Close it when done.
type Document struct {
	source []byte
	lines  []string
	tree   *sitter.Tree
	root   *sitter.Node
}

// Parse parses source as a Python module. The returned document retains the
// syntax tree and the raw text; syntax errors are reported via SyntaxErrors,
// not here, so callers can decide whether partial trees are acceptable.
func Parse(source []byte) (*Document, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	lang := sitter.NewLanguage(python.Language())
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to load python grammar: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse source")
	}

	return &Document{
		source: source,
		lines:  strings.Split(string(source), "\n"),
		tree:   tree,
		root:   tree.RootNode(),
	}, nil
}

// Close releases the underlying tree.
func (d *Document) Close() {
	if d.tree != nil {
		d.tree.Close()
		d.tree = nil
	}
}

// Root returns the module node.
func (d *Document) Root() *sitter.Node {
	return d.root
}

// Source returns the raw document text.
func (d *Document) Source() []byte {
	return d.source
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the text of a 1-based line, without its trailing newline.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

// SliceLines returns verbatim copies of the lines covered by span.
func (d *Document) SliceLines(span LineSpan) []string {
	if span.Empty() {
		return nil
	}
	start, end := span.Start, span.End
	if start < 1 {
		start = 1
	}
	if end > len(d.lines) {
		end = len(d.lines)
	}
	if end < start {
		return nil
	}
	out := make([]string, end-start+1)
	copy(out, d.lines[start-1:end])
	return out
}

// Text returns the exact source text covered by a node.
func (d *Document) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(d.source[node.StartByte():node.EndByte()])
}

// NodeText returns the full source lines a node touches, preserving any
// leading indentation on the first line.
func (d *Document) NodeText(node *sitter.Node) string {
	return strings.Join(d.SliceLines(NodeSpan(node)), "\n")
}

// SyntaxErrors reports every error or missing-token node in the tree, in
// document order. An empty result means the document parsed cleanly.
func (d *Document) SyntaxErrors() []SyntaxError {
	if !d.root.HasError() {
		return nil
	}
	var errs []SyntaxError
	Walk(d.root, func(n *sitter.Node) bool {
		if n.Kind() == "ERROR" || n.IsMissing() {
			pos := n.StartPosition()
			errs = append(errs, SyntaxError{
				Line:   int(pos.Row) + 1,
				Column: int(pos.Column) + 1,
			})
			return false
		}
		return true
	})
	if len(errs) == 0 {
		errs = append(errs, SyntaxError{Line: 1, Column: 1})
	}
	return errs
}

// Walk recursively visits node and its children in pre-order. Returning
// false from the visitor skips the node's subtree.
func Walk(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		Walk(child, visitor)
	}
}
