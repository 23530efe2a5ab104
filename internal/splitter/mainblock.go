package splitter

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/monosplit/internal/pysrc"
)

// detectMain finds the document's entry construct: an
// `if __name__ == "__main__":` conditional or a zero-argument function
// named main. The first match in a pre-order walk wins; every further
// candidate is reported as ambiguous and ignored.
func detectMain(doc *pysrc.Document) (*mainBlock, []Diagnostic) {
	var (
		main  *mainBlock
		diags []Diagnostic
	)

	pysrc.Walk(doc.Root(), func(n *sitter.Node) bool {
		form, ok := mainForm(doc, n)
		if !ok {
			return true
		}
		if main != nil {
			diags = append(diags, Diagnostic{
				Code:    DiagAmbiguousMain,
				Message: fmt.Sprintf("second main-block candidate (%s); keeping the one at line %d", form, main.span.Start),
				Line:    int(n.StartPosition().Row) + 1,
			})
			return false
		}
		main = &mainBlock{
			form: form,
			span: pysrc.NodeSpan(n),
			text: doc.NodeText(n),
		}
		return false
	})

	return main, diags
}

func mainForm(doc *pysrc.Document, n *sitter.Node) (string, bool) {
	switch n.Kind() {
	case "if_statement":
		if isNameMainTest(doc, n.ChildByFieldName("condition")) {
			return MainFormIfName, true
		}
	case "function_definition":
		if isZeroArgMainDef(doc, n) {
			return MainFormDefMain, true
		}
	}
	return "", false
}

// isNameMainTest matches `__name__ == "__main__"` with either quote
// style. Left side must be the identifier, right side the string.
func isNameMainTest(doc *pysrc.Document, cond *sitter.Node) bool {
	if cond == nil || cond.Kind() != "comparison_operator" || cond.NamedChildCount() != 2 {
		return false
	}
	hasEq := false
	for i := 0; i < int(cond.ChildCount()); i++ {
		if cond.Child(uint(i)).Kind() == "==" {
			hasEq = true
			break
		}
	}
	if !hasEq {
		return false
	}
	left := cond.NamedChild(0)
	right := cond.NamedChild(1)
	if left.Kind() != "identifier" || doc.Text(left) != "__name__" {
		return false
	}
	if right.Kind() != "string" {
		return false
	}
	text := doc.Text(right)
	return text == `"__main__"` || text == `'__main__'`
}

func isZeroArgMainDef(doc *pysrc.Document, n *sitter.Node) bool {
	name := n.ChildByFieldName("name")
	if name == nil || doc.Text(name) != "main" {
		return false
	}
	params := n.ChildByFieldName("parameters")
	return params == nil || params.NamedChildCount() == 0
}
