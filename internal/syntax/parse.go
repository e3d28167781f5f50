package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/pystyle/internal/lang"
)

// ParseError reports source that could not be turned into a syntax tree.
type ParseError struct {
	Line   int // 1-based, 0 when unknown
	Column int // 1-based, 0 when unknown
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Reason
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Reason)
}

// Parse parses source with parser, which must be set to the Python grammar,
// and returns the lowered tree. A tree that contains error or missing nodes
// is rejected with a *ParseError.
func Parse(parser *sitter.Parser, source []byte) (*Module, error) {
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, firstError(root)
	}

	lw := &lowerer{source: source}
	return &Module{base: base{line: 1, children: lw.lowerChildren(root, Load)}}, nil
}

// firstError finds the first error or missing node in document order.
func firstError(root *sitter.Node) *ParseError {
	var found *sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if found != nil || !n.HasError() && !n.IsMissing() {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	if found == nil {
		return &ParseError{Reason: "invalid syntax"}
	}
	pt := found.StartPoint()
	reason := "invalid syntax"
	if found.IsMissing() {
		reason = fmt.Sprintf("missing %q", found.Type())
	}
	return &ParseError{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1, Reason: reason}
}

// storeContainers pass a Store context on to their children: the unpacking
// forms a binding target can take.
var storeContainers = map[string]struct{}{
	"pattern_list":             {},
	"tuple_pattern":            {},
	"list_pattern":             {},
	"tuple":                    {},
	"list":                     {},
	"expression_list":          {},
	"parenthesized_expression": {},
	"list_splat_pattern":       {},
	"list_splat":               {},
	"as_pattern_target":        {},
	"type":                     {},
	"generic_type":             {},
}

type lowerer struct {
	source []byte
}

func (lw *lowerer) text(n *sitter.Node) string {
	return lang.NodeText(n, lw.source)
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

func skipped(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "line_continuation":
		return true
	}
	return !n.IsNamed()
}

func (lw *lowerer) lowerChildren(n *sitter.Node, ctx ExprContext) []Node {
	var out []Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if skipped(c) {
			continue
		}
		out = append(out, lw.lower(c, ctx))
	}
	return out
}

// lowerFields lowers the named children of n, giving Store to the children
// held by one of the target fields and Load to the rest.
func (lw *lowerer) lowerFields(n *sitter.Node, targets ...string) []Node {
	var out []Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if skipped(c) {
			continue
		}
		ctx := Load
		field := n.FieldNameForChild(i)
		for _, t := range targets {
			if field == t {
				ctx = Store
				break
			}
		}
		out = append(out, lw.lower(c, ctx))
	}
	return out
}

func (lw *lowerer) lower(n *sitter.Node, ctx ExprContext) Node {
	b := base{line: line(n)}
	switch n.Type() {
	case "identifier":
		return &Name{base: b, ID: lw.text(n), Ctx: ctx}
	case "function_definition":
		return lw.lowerFunction(n)
	case "class_definition":
		return lw.lowerClass(n)
	case "list":
		b.children = lw.lowerChildren(n, ctx)
		return &ListLiteral{base: b}
	case "dictionary":
		b.children = lw.lowerChildren(n, Load)
		return &MappingLiteral{base: b}
	case "set":
		b.children = lw.lowerChildren(n, Load)
		return &SetLiteral{base: b}
	case "assignment", "augmented_assignment", "for_statement", "for_in_clause", "type_alias_statement":
		b.children = lw.lowerFields(n, "left")
	case "named_expression":
		b.children = lw.lowerFields(n, "name")
	case "with_item":
		b.children = lw.lowerWithItem(n)
	case "as_pattern_target":
		if ctx == Store && n.NamedChildCount() == 0 {
			return &Name{base: b, ID: lw.text(n), Ctx: Store}
		}
		b.children = lw.lowerChildren(n, ctx)
	default:
		childCtx := Load
		if _, ok := storeContainers[n.Type()]; ok {
			childCtx = ctx
		}
		b.children = lw.lowerChildren(n, childCtx)
	}
	return &Generic{base: b, Type: n.Type()}
}

// lowerWithItem binds the target of "with x as target". Older grammars put
// the target in an alias field of the item, newer ones wrap the value in an
// as_pattern.
func (lw *lowerer) lowerWithItem(n *sitter.Node) []Node {
	value := n.ChildByFieldName("value")
	if value == nil || value.Type() != "as_pattern" {
		return lw.lowerFields(n, "alias")
	}
	b := base{line: line(value), children: lw.lowerFields(value, "alias")}
	return []Node{&Generic{base: b, Type: value.Type()}}
}

func (lw *lowerer) lowerClass(n *sitter.Node) *ClassDef {
	cd := &ClassDef{base: base{line: line(n)}}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if n.FieldNameForChild(i) == "name" {
			cd.Name = lw.text(c)
			continue
		}
		if skipped(c) {
			continue
		}
		cd.children = append(cd.children, lw.lower(c, Load))
	}
	return cd
}

func (lw *lowerer) lowerFunction(n *sitter.Node) *FunctionDef {
	fn := &FunctionDef{base: base{line: line(n)}}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch {
		case c.Type() == "async":
			fn.Async = true
		case n.FieldNameForChild(i) == "name":
			fn.Name = lw.text(c)
		case c.Type() == "parameters":
			params, children := lw.lowerParams(c)
			fn.Params = params
			fn.children = append(fn.children, children...)
		case !skipped(c):
			fn.children = append(fn.children, lw.lower(c, Load))
		}
	}
	return fn
}

// lowerParams classifies the parameters of a def. Annotations and defaults
// are lowered in document order and returned as the function's children.
func (lw *lowerer) lowerParams(n *sitter.Node) ([]Param, []Node) {
	var (
		params   []Param
		children []Node
		kind     = Positional
	)
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if skipped(c) {
			continue
		}
		switch c.Type() {
		case "positional_separator":
			for j := range params {
				if params[j].Kind == Positional {
					params[j].Kind = PositionalOnly
				}
			}
		case "keyword_separator":
			kind = KeywordOnly
		case "identifier":
			params = append(params, Param{Name: lw.text(c), Kind: kind})
		case "list_splat_pattern":
			params = append(params, Param{Name: lw.splatName(c), Kind: VarPositional})
			kind = KeywordOnly
		case "dictionary_splat_pattern":
			params = append(params, Param{Name: lw.splatName(c), Kind: VarKeyword})
		case "typed_parameter":
			p := lw.typedParam(c, kind)
			if p.Kind == VarPositional {
				kind = KeywordOnly
			}
			params = append(params, p)
			if typ := c.ChildByFieldName("type"); typ != nil {
				children = append(children, lw.lower(typ, Load))
			}
		case "default_parameter", "typed_default_parameter":
			p := Param{Kind: kind}
			if name := c.ChildByFieldName("name"); name != nil {
				p.Name = lw.text(name)
			}
			if typ := c.ChildByFieldName("type"); typ != nil {
				children = append(children, lw.lower(typ, Load))
			}
			if value := c.ChildByFieldName("value"); value != nil {
				p.Default = lw.lower(value, Load)
				children = append(children, p.Default)
			}
			params = append(params, p)
		default:
			children = append(children, lw.lower(c, Load))
		}
	}
	return params, children
}

func (lw *lowerer) typedParam(n *sitter.Node, kind ParamKind) Param {
	inner := n.NamedChild(0)
	if inner == nil {
		return Param{Kind: kind}
	}
	switch inner.Type() {
	case "list_splat_pattern":
		return Param{Name: lw.splatName(inner), Kind: VarPositional}
	case "dictionary_splat_pattern":
		return Param{Name: lw.splatName(inner), Kind: VarKeyword}
	}
	return Param{Name: lw.text(inner), Kind: kind}
}

func (lw *lowerer) splatName(n *sitter.Node) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "identifier" {
			return lw.text(c)
		}
	}
	return ""
}
