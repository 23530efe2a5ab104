package pysrc

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// StmtKind classifies a top-level statement. The set is closed: the
// pipeline dispatches on it with exhaustive switches.
type StmtKind int

const (
	StmtOther StmtKind = iota
	StmtComment
	StmtImport
	StmtFromImport
	StmtFunctionDef
	StmtClassDef
	StmtDecoratedDef
	StmtAssign
	StmtIf
)

// String returns a short label for logging.
func (k StmtKind) String() string {
	switch k {
	case StmtComment:
		return "comment"
	case StmtImport:
		return "import"
	case StmtFromImport:
		return "from-import"
	case StmtFunctionDef:
		return "def"
	case StmtClassDef:
		return "class"
	case StmtDecoratedDef:
		return "decorated-def"
	case StmtAssign:
		return "assign"
	case StmtIf:
		return "if"
	default:
		return "other"
	}
}

// IsImport reports whether the kind is one of the import forms.
func (k StmtKind) IsImport() bool {
	return k == StmtImport || k == StmtFromImport
}

// Stmt is one direct child of the module node.
type Stmt struct {
	Node *sitter.Node
	Kind StmtKind
	Span LineSpan
}

// TopLevel returns the module's direct children in document order,
// classified by kind.
func (d *Document) TopLevel() []Stmt {
	var stmts []Stmt
	for i := 0; i < int(d.root.ChildCount()); i++ {
		child := d.root.Child(uint(i))
		stmts = append(stmts, Stmt{
			Node: child,
			Kind: classifyStmt(child),
			Span: NodeSpan(child),
		})
	}
	return stmts
}

func classifyStmt(node *sitter.Node) StmtKind {
	switch node.Kind() {
	case "comment":
		return StmtComment
	case "import_statement":
		return StmtImport
	case "import_from_statement", "future_import_statement":
		return StmtFromImport
	case "function_definition":
		return StmtFunctionDef
	case "class_definition":
		return StmtClassDef
	case "decorated_definition":
		return StmtDecoratedDef
	case "if_statement":
		return StmtIf
	case "expression_statement":
		if node.NamedChildCount() == 1 && node.NamedChild(0).Kind() == "assignment" {
			return StmtAssign
		}
		return StmtOther
	default:
		return StmtOther
	}
}

// DefinitionName returns the declared name of a def or class statement.
// For decorated definitions it is the inner definition's name. ok is false
// for any other kind.
func (d *Document) DefinitionName(s Stmt) (string, bool) {
	node := s.Node
	if s.Kind == StmtDecoratedDef {
		node = node.ChildByFieldName("definition")
		if node == nil {
			return "", false
		}
	} else if s.Kind != StmtFunctionDef && s.Kind != StmtClassDef {
		return "", false
	}
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return "", false
	}
	return d.Text(nameNode), true
}

// SimpleAssignTarget returns the bound name when s is a plain single-name
// assignment with a value and no type annotation. Tuple targets, attribute
// targets, annotated-only declarations and augmented assignments all
// report ok=false.
func (d *Document) SimpleAssignTarget(s Stmt) (string, bool) {
	if s.Kind != StmtAssign {
		return "", false
	}
	assign := s.Node.NamedChild(0)
	left := assign.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return "", false
	}
	if assign.ChildByFieldName("type") != nil {
		return "", false
	}
	if assign.ChildByFieldName("right") == nil {
		return "", false
	}
	return d.Text(left), true
}

// ImportBinding is one name introduced by an import statement, mapped to
// the statement's verbatim text. The bound name is the alias when one is
// present, otherwise the first dotted component for plain imports and the
// imported name for from-imports.
type ImportBinding struct {
	Name string
	Stmt string
	Line int
}

// ImportBindings extracts the names bound by an import statement. wildcard
// reports a `from M import *`, which binds nothing trackable.
func (d *Document) ImportBindings(s Stmt) (bindings []ImportBinding, wildcard bool) {
	if !s.Kind.IsImport() {
		return nil, false
	}
	text := d.Text(s.Node)
	line := s.Span.Start

	for i := 0; i < int(s.Node.NamedChildCount()); i++ {
		child := s.Node.NamedChild(uint(i))
		switch child.Kind() {
		case "dotted_name":
			// Module path for from-imports is held in the `module_name`
			// field; only the imported names bind.
			if s.Kind == StmtFromImport && d.isModuleName(s.Node, child) {
				continue
			}
			bindings = append(bindings, ImportBinding{
				Name: d.boundNameOfDotted(child, s.Kind),
				Stmt: text,
				Line: line,
			})
		case "aliased_import":
			alias := child.ChildByFieldName("alias")
			if alias == nil {
				continue
			}
			bindings = append(bindings, ImportBinding{
				Name: d.Text(alias),
				Stmt: text,
				Line: line,
			})
		case "wildcard_import":
			wildcard = true
		}
	}
	return bindings, wildcard
}

func (d *Document) isModuleName(stmt, child *sitter.Node) bool {
	moduleName := stmt.ChildByFieldName("module_name")
	return moduleName != nil && moduleName.StartByte() == child.StartByte()
}

// boundNameOfDotted maps a dotted name to the identifier usage actually
// references: `import os.path` binds `os`, while a from-import name is
// always a single identifier.
func (d *Document) boundNameOfDotted(node *sitter.Node, kind StmtKind) string {
	text := d.Text(node)
	if kind == StmtImport {
		if dot := strings.IndexByte(text, '.'); dot >= 0 {
			return text[:dot]
		}
	}
	return text
}
