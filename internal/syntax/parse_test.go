package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/pystyle/internal/lang"
)

func parse(t *testing.T, source string) *Module {
	t.Helper()
	p := lang.Languages[lang.Python].NewParser()
	mod, err := Parse(p, []byte(source))
	require.NoError(t, err)
	return mod
}

func functions(root Node) []*FunctionDef {
	var out []*FunctionDef
	Inspect(root, func(n Node) bool {
		if fn, ok := n.(*FunctionDef); ok {
			out = append(out, fn)
		}
		return true
	})
	return out
}

func storedNames(root Node) []string {
	var out []string
	Inspect(root, func(n Node) bool {
		if name, ok := n.(*Name); ok && name.Ctx == Store {
			out = append(out, name.ID)
		}
		return true
	})
	return out
}

func TestParseFunctionParams(t *testing.T) {
	t.Parallel()

	mod := parse(t, "def f(a, /, b: int, c=1, *args, d, e: str = 'x', **kw) -> None:\n    pass\n")
	fns := functions(mod)
	require.Len(t, fns, 1)

	fn := fns[0]
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, 1, fn.Line())
	assert.False(t, fn.Async)

	type param struct {
		name       string
		kind       ParamKind
		hasDefault bool
	}
	var got []param
	for _, p := range fn.Params {
		got = append(got, param{p.Name, p.Kind, p.Default != nil})
	}
	assert.Equal(t, []param{
		{"a", PositionalOnly, false},
		{"b", Positional, false},
		{"c", Positional, true},
		{"args", VarPositional, false},
		{"d", KeywordOnly, false},
		{"e", KeywordOnly, true},
		{"kw", VarKeyword, false},
	}, got)
}

func TestParseKeywordSeparator(t *testing.T) {
	t.Parallel()

	fn := functions(parse(t, "def g(x, *, y=[]):\n    pass\n"))[0]
	require.Len(t, fn.Params, 2)
	assert.Equal(t, Positional, fn.Params[0].Kind)
	assert.Equal(t, KeywordOnly, fn.Params[1].Kind)
	assert.IsType(t, &ListLiteral{}, fn.Params[1].Default)
}

func TestParseDefaultKinds(t *testing.T) {
	t.Parallel()

	fn := functions(parse(t, "def f(a=[], b={}, c={1}, d=[x for x in y], e=()):\n    pass\n"))[0]
	require.Len(t, fn.Params, 5)
	assert.IsType(t, &ListLiteral{}, fn.Params[0].Default)
	assert.IsType(t, &MappingLiteral{}, fn.Params[1].Default)
	assert.IsType(t, &SetLiteral{}, fn.Params[2].Default)
	assert.IsType(t, &Generic{}, fn.Params[3].Default)
	assert.IsType(t, &Generic{}, fn.Params[4].Default)
}

func TestParseAsync(t *testing.T) {
	t.Parallel()

	fns := functions(parse(t, "async def fetch(Url):\n    pass\n"))
	require.Len(t, fns, 1)
	assert.True(t, fns[0].Async)
	assert.Equal(t, "fetch", fns[0].Name)
}

func TestParseDecoratedLine(t *testing.T) {
	t.Parallel()

	fns := functions(parse(t, "@decorator\ndef f():\n    pass\n"))
	require.Len(t, fns, 1)
	assert.Equal(t, 2, fns[0].Line())
}

func TestParseClass(t *testing.T) {
	t.Parallel()

	mod := parse(t, "class Foo(Base):\n    X = 1\n    def m(self):\n        pass\n")
	var classes []*ClassDef
	Inspect(mod, func(n Node) bool {
		if cd, ok := n.(*ClassDef); ok {
			classes = append(classes, cd)
		}
		return true
	})
	require.Len(t, classes, 1)
	assert.Equal(t, "Foo", classes[0].Name)
	assert.Equal(t, []string{"X"}, storedNames(mod))
	assert.Len(t, functions(mod), 1)
}

func TestParseStoreContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"assignment", "a = b\n", []string{"a"}},
		{"chained", "a = b = c\n", []string{"a", "b"}},
		{"unpacking", "a, (b, *c) = d\n", []string{"a", "b", "c"}},
		{"list target", "[a, b] = d\n", []string{"a", "b"}},
		{"annotated", "a: int = 1\n", []string{"a"}},
		{"annotation only", "a: int\n", []string{"a"}},
		{"augmented", "a += 1\n", []string{"a"}},
		{"for loop", "for i, j in x:\n    pass\n", []string{"i", "j"}},
		{"comprehension", "y = [i for i in x]\n", []string{"y", "i"}},
		{"walrus", "if (n := f()):\n    pass\n", []string{"n"}},
		{"with as", "with open(p) as fh:\n    pass\n", []string{"fh"}},
		{"attribute target", "a.b = 1\n", nil},
		{"subscript target", "a[i] = 1\n", nil},
		{"except as", "try:\n    pass\nexcept E as err:\n    pass\n", nil},
		{"import alias", "import os as o\n", nil},
		{"delete", "del a\n", nil},
		{"call keyword", "f(a=1)\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, storedNames(parse(t, tt.source)))
		})
	}
}

func TestParseNameLines(t *testing.T) {
	t.Parallel()

	mod := parse(t, "a = 1\n\nb = 2\n")
	var lines []int
	Inspect(mod, func(n Node) bool {
		if name, ok := n.(*Name); ok && name.Ctx == Store {
			lines = append(lines, name.Line())
		}
		return true
	})
	assert.Equal(t, []int{1, 3}, lines)
}

func TestParseError(t *testing.T) {
	t.Parallel()

	p := lang.Languages[lang.Python].NewParser()
	_, err := Parse(p, []byte("x = 1\ndef broken(:\n    pass\n"))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.GreaterOrEqual(t, pe.Line, 1)
	assert.NotEmpty(t, pe.Reason)
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	mod := parse(t, "")
	assert.Empty(t, mod.Children())
}

func TestInspectSkipsChildren(t *testing.T) {
	t.Parallel()

	mod := parse(t, "def f():\n    X = 1\n")
	var names []string
	Inspect(mod, func(n Node) bool {
		if name, ok := n.(*Name); ok {
			names = append(names, name.ID)
		}
		_, isFunc := n.(*FunctionDef)
		return !isFunc
	})
	assert.Empty(t, names)
}
