// Package syntax lowers a tree-sitter Python parse tree into the closed set
// of node kinds the tree rules look at. Everything the rules do not
// distinguish becomes a Generic node that keeps its children, so a walk over
// the lowered tree still visits every construct in document order.
package syntax

// Node is a lowered syntax tree node. The set of implementations is closed.
type Node interface {
	// Line is the 1-based line the construct starts on.
	Line() int
	// Children returns the direct children in document order.
	Children() []Node

	node()
}

type base struct {
	line     int
	children []Node
}

func (b *base) Line() int        { return b.line }
func (b *base) Children() []Node { return b.children }
func (*base) node()              {}

// Module is the root of a file.
type Module struct {
	base
}

// ParamKind classifies a function parameter the way Python's own AST splits
// them into posonlyargs, args, vararg, kwonlyargs and kwarg.
type ParamKind int

const (
	PositionalOnly ParamKind = iota
	Positional
	VarPositional
	KeywordOnly
	VarKeyword
)

// Param is one declared function parameter.
type Param struct {
	Name    string
	Kind    ParamKind
	Default Node // nil without a default; also reachable through Children
}

// FunctionDef is a def statement. Decorators belong to the enclosing Generic
// decorated_definition node.
type FunctionDef struct {
	base
	Name   string
	Async  bool
	Params []Param
}

// ClassDef is a class statement.
type ClassDef struct {
	base
	Name string
}

// ExprContext tells whether a name is read or bound.
type ExprContext int

const (
	Load ExprContext = iota
	Store
)

// Name is an identifier used as an expression or as a binding target.
type Name struct {
	base
	ID  string
	Ctx ExprContext
}

// ListLiteral is a [a, b] display. Comprehensions are Generic.
type ListLiteral struct {
	base
}

// MappingLiteral is a {k: v} display.
type MappingLiteral struct {
	base
}

// SetLiteral is a {a, b} display.
type SetLiteral struct {
	base
}

// Generic is any other construct; Type is the tree-sitter node type.
type Generic struct {
	base
	Type string
}

// Inspect traverses the tree rooted at n depth-first in pre-order. If f
// returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, f)
	}
}
