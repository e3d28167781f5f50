// Package astrules applies the structural rules S010 through S012 to a
// lowered syntax tree.
package astrules

import (
	"github.com/phobologic/pystyle/internal/casing"
	"github.com/phobologic/pystyle/internal/model"
	"github.com/phobologic/pystyle/internal/syntax"
)

type emitFunc func(line int, token string)

// rule checks one node; it is called for every node of a pre-order walk.
type rule struct {
	code  model.RuleCode
	check func(n syntax.Node, emit emitFunc)
}

// rules run in this order, each over the whole tree.
var rules = []rule{
	{model.S010, checkArgumentNames},
	{model.S011, checkVariableNames},
	{model.S012, checkMutableDefaults},
}

// Walk returns the tree-rule violations of root for the file at path: all
// S010 violations in document order, then all S011, then all S012.
func Walk(path string, root syntax.Node) []model.Violation {
	var out []model.Violation
	for _, r := range rules {
		emit := func(line int, token string) {
			out = append(out, model.Violation{File: path, Line: line, Code: r.code, Token: token})
		}
		syntax.Inspect(root, func(n syntax.Node) bool {
			r.check(n, emit)
			return true
		})
	}
	return out
}

// checked reports whether the rules on function definitions apply to n.
// Async functions are a separate statement kind and are not inspected.
func checked(n syntax.Node) (*syntax.FunctionDef, bool) {
	fn, ok := n.(*syntax.FunctionDef)
	if !ok || fn.Async {
		return nil, false
	}
	return fn, true
}

func checkArgumentNames(n syntax.Node, emit emitFunc) {
	fn, ok := checked(n)
	if !ok {
		return
	}
	for _, p := range fn.Params {
		if p.Kind == syntax.Positional && !casing.SnakeCase.Valid(p.Name) {
			emit(fn.Line(), p.Name)
		}
	}
}

func checkVariableNames(n syntax.Node, emit emitFunc) {
	name, ok := n.(*syntax.Name)
	if ok && name.Ctx == syntax.Store && !casing.SnakeCase.Valid(name.ID) {
		emit(name.Line(), name.ID)
	}
}

// checkMutableDefaults flags list displays used as defaults of positional
// parameters. Dict and set displays are not flagged.
func checkMutableDefaults(n syntax.Node, emit emitFunc) {
	fn, ok := checked(n)
	if !ok {
		return
	}
	for _, p := range fn.Params {
		if p.Kind != syntax.PositionalOnly && p.Kind != syntax.Positional {
			continue
		}
		if _, isList := p.Default.(*syntax.ListLiteral); isList {
			emit(fn.Line(), "")
		}
	}
}
