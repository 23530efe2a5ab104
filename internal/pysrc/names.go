package pysrc

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// References collects every bare name referenced inside the given line
// spans. The collection is syntactic and scope-blind: a local variable
// shadowing an imported name still counts. That makes the result a safe
// over-approximation for import resolution — it may pull in a superfluous
// statement but never omits a required one.
func (d *Document) References(spans []LineSpan) map[string]bool {
	refs := make(map[string]bool)
	if len(spans) == 0 {
		return refs
	}

	Walk(d.root, func(n *sitter.Node) bool {
		if !overlapsAny(NodeSpan(n), spans) {
			return false
		}
		if n.Kind() != "identifier" {
			return true
		}
		line := int(n.StartPosition().Row) + 1
		if containsLine(spans, line) && isReference(n) {
			refs[d.Text(n)] = true
		}
		return true
	})
	return refs
}

// NodeReferences collects bare names within a single subtree.
func (d *Document) NodeReferences(node *sitter.Node) map[string]bool {
	if node == nil {
		return map[string]bool{}
	}
	return d.References([]LineSpan{NodeSpan(node)})
}

func overlapsAny(span LineSpan, spans []LineSpan) bool {
	for _, s := range spans {
		if span.Start <= s.End && span.End >= s.Start {
			return true
		}
	}
	return false
}

func containsLine(spans []LineSpan, line int) bool {
	for _, s := range spans {
		if s.Contains(line) {
			return true
		}
	}
	return false
}

// isReference reports whether an identifier occurrence reads a name, as
// opposed to declaring one or naming a structural slot. Excluded
// positions: attribute selectors (`x.attr`), keyword-argument names,
// def/class names, parameter declarations, import-statement internals and
// global/nonlocal lists. Everything else counts, including assignment
// targets and annotations.
func isReference(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return true
	}

	switch parent.Kind() {
	case "attribute":
		return !isField(parent, "attribute", n)
	case "keyword_argument":
		return !isField(parent, "name", n)
	case "function_definition", "class_definition":
		return !isField(parent, "name", n)
	case "default_parameter", "typed_default_parameter":
		return !isField(parent, "name", n)
	case "parameters", "lambda_parameters", "typed_parameter":
		return false
	case "list_splat_pattern", "dictionary_splat_pattern":
		return !insideParameterList(parent)
	case "global_statement", "nonlocal_statement":
		return false
	case "dotted_name", "aliased_import", "relative_import",
		"import_statement", "import_from_statement", "future_import_statement":
		return false
	}
	return true
}

func isField(parent *sitter.Node, field string, n *sitter.Node) bool {
	fieldNode := parent.ChildByFieldName(field)
	return fieldNode != nil && fieldNode.StartByte() == n.StartByte()
}

// insideParameterList reports whether a splat pattern declares *args or
// **kwargs rather than unpacking in an assignment target.
func insideParameterList(splat *sitter.Node) bool {
	p := splat.Parent()
	if p == nil {
		return false
	}
	switch p.Kind() {
	case "parameters", "lambda_parameters", "typed_parameter":
		return true
	}
	return false
}
