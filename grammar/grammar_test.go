package grammar

import (
	"errors"
	"testing"

	verr "github.com/nihei9/alab/error"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprLL1 = `
E  -> T E'
E' -> + T E' | epsilon
T  -> F T'
T' -> * F T' | epsilon
F  -> ( E ) | id
`

const exprSLR = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func mustParse(t *testing.T, src string, opts ...ParseOption) *Grammar {
	t.Helper()
	g, err := Parse(src, opts...)
	require.NoError(t, err)
	return g
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alab.grammar")
	defer teardown()

	g := mustParse(t, exprLL1)

	assert.Equal(t, "E", g.Start())
	assert.Equal(t, "E''", g.AugmentedStart())
	assert.Equal(t, []string{"E", "E'", "T", "T'", "F"}, g.NonTerminals())
	assert.Equal(t, []string{"+", "*", "(", ")", "id"}, g.Terminals(OrderDeclared))
	assert.Equal(t, []string{"(", ")", "*", "+", "id", "$"}, g.TerminalsWithEOF(OrderLexical))

	var texts []string
	for _, p := range g.AugmentedProductions() {
		texts = append(texts, p.String())
	}
	assert.Equal(t, []string{
		"E'' -> E",
		"E -> T E'",
		"E' -> + T E'",
		"E' -> epsilon",
		"T -> F T'",
		"T' -> * F T'",
		"T' -> epsilon",
		"F -> ( E )",
		"F -> id",
	}, texts)
	for i, p := range g.AugmentedProductions() {
		assert.Equal(t, i, p.Num)
	}
	assert.Len(t, g.Productions(), 8)
	assert.Len(t, g.ProductionsOf("E'"), 2)
	assert.True(t, g.ProductionsOf("T'")[1].IsEpsilon())
	assert.Equal(t, 3, g.ProductionsOf("E'")[0].Row)

	assert.True(t, g.IsTerminal("id"))
	assert.True(t, g.IsTerminal(EOF))
	assert.False(t, g.IsTerminal("E"))
	assert.True(t, g.IsNonTerminal("T'"))
	assert.False(t, g.IsNonTerminal(g.AugmentedStart()))
	assert.Empty(t, g.Warnings())
}

func TestParse_Convention(t *testing.T) {
	src := `
S -> a_b S | x
`
	_, err := Parse(src)
	assert.ErrorIs(t, err, synErrUndefinedNonTerminal)

	g := mustParse(t, src, WithConvention(ConventionUppercase))
	assert.Equal(t, []string{"a_b", "x"}, g.Terminals(OrderDeclared))

	g = mustParse(t, "expr_list -> x expr_list | ε")
	assert.Equal(t, "expr_list", g.Start())
	assert.Equal(t, "expr_list -> epsilon", g.Productions()[1].String())
}

func TestParse_ArrowWithoutSpaces(t *testing.T) {
	tests := []string{
		"S->a S b|c",
		"S ->a S b | c",
		"S-> a S b |c",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			g := mustParse(t, src)
			assert.Equal(t, "S", g.Start())
			assert.Equal(t, []string{"a", "b", "c"}, g.Terminals(OrderDeclared))
			var texts []string
			for _, p := range g.Productions() {
				texts = append(texts, p.String())
			}
			assert.Equal(t, []string{"S -> a S b", "S -> c"}, texts)
		})
	}

	g := mustParse(t, "E -> E - T | T\nT->x-y")
	assert.Equal(t, []string{"-", "x-y"}, g.Terminals(OrderDeclared))
}

func TestSplitArrows(t *testing.T) {
	toks := splitArrows("a-->b->", 2, 5)
	require.Len(t, toks, 4)
	assert.Equal(t, tokenKindSymbol, toks[0].kind)
	assert.Equal(t, "a-", toks[0].text)
	assert.Equal(t, 5, toks[0].col)
	assert.Equal(t, tokenKindArrow, toks[1].kind)
	assert.Equal(t, 7, toks[1].col)
	assert.Equal(t, "b", toks[2].text)
	assert.Equal(t, 9, toks[2].col)
	assert.Equal(t, tokenKindArrow, toks[3].kind)
	assert.Equal(t, 10, toks[3].col)
	for _, tok := range toks {
		assert.Equal(t, 2, tok.row)
	}
}

func TestParse_Warnings(t *testing.T) {
	g := mustParse(t, `
S -> foo_bar FooBar
FooBar -> x
`, WithConvention(ConventionUppercase))
	require.Len(t, g.Warnings(), 1)
	assert.Contains(t, g.Warnings()[0], "FooBar, foo_bar")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		cause   error
		row     int
	}{
		{
			caption: "a grammar needs a production",
			src:     "\n  \n",
			cause:   synErrNoProduction,
		},
		{
			caption: "a line needs an arrow",
			src:     "S a b",
			cause:   synErrNoArrow,
			row:     1,
		},
		{
			caption: "an arrow glued to body symbols is still a second arrow",
			src:     "S -> a b->c",
			cause:   synErrUnexpectedArrow,
			row:     1,
		},
		{
			caption: "a line starting with an arrow has no head",
			src:     "->a",
			cause:   synErrNoArrow,
			row:     1,
		},
		{
			caption: "a line contains one arrow",
			src:     "S -> a -> b",
			cause:   synErrUnexpectedArrow,
			row:     1,
		},
		{
			caption: "a head must be a non-terminal",
			src:     "S -> a\ns -> b",
			cause:   synErrInvalidHead,
			row:     2,
		},
		{
			caption: "an empty body",
			src:     "S ->",
			cause:   synErrEmptyAlternative,
			row:     1,
		},
		{
			caption: "an empty alternative at the end",
			src:     "S -> a |",
			cause:   synErrEmptyAlternative,
			row:     1,
		},
		{
			caption: "an empty alternative at the beginning",
			src:     "S -> | a",
			cause:   synErrEmptyAlternative,
			row:     1,
		},
		{
			caption: "epsilon stands alone",
			src:     "S -> a epsilon",
			cause:   synErrEpsilonNotAlone,
			row:     1,
		},
		{
			caption: "the end marker is reserved",
			src:     "S -> a $",
			cause:   synErrReservedSymbol,
			row:     1,
		},
		{
			caption: "an undefined non-terminal",
			src:     "S -> a\nT -> S U",
			cause:   synErrUndefinedNonTerminal,
			row:     2,
		},
		{
			caption: "a duplicate alternative",
			src:     "S -> a | b\nS -> a",
			cause:   synErrDuplicateProduction,
			row:     2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := Parse(tt.src, WithSourceName("test.grammar"))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.cause)
			assert.ErrorIs(t, err, verr.ErrInputSyntax)
			assert.Equal(t, "InputSyntaxError", verr.ClassName(err))

			var specErr *verr.SpecError
			switch e := err.(type) {
			case *verr.SpecError:
				specErr = e
			case verr.SpecErrors:
				require.NotEmpty(t, e)
				specErr = e[0]
			default:
				t.Fatalf("unexpected error type: %T", err)
			}
			assert.Equal(t, tt.row, specErr.Row)
			assert.Equal(t, "test.grammar", specErr.SourceName)
		})
	}
}

func TestParse_CollectsErrorsOfEveryLine(t *testing.T) {
	_, err := Parse("S a\nT b\nU -> c")
	var errs verr.SpecErrors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 2)
	assert.Equal(t, 1, errs[0].Row)
	assert.Equal(t, 2, errs[1].Row)
}

func TestParseOptions(t *testing.T) {
	c, err := ParseConvention("")
	require.NoError(t, err)
	assert.Equal(t, ConventionDefault, c)
	_, err = ParseConvention("lower")
	assert.Error(t, err)

	o, err := ParseSymbolOrder("lexical")
	require.NoError(t, err)
	assert.Equal(t, OrderLexical, o)
	_, err = ParseSymbolOrder("random")
	assert.Error(t, err)
}

func TestFirstFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alab.grammar")
	defer teardown()

	g := mustParse(t, exprLL1)
	ff, err := g.ComputeFirstFollow(OrderDeclared)
	require.NoError(t, err)

	first := map[string][]string{
		"E":  {"(", "id"},
		"E'": {"+", "epsilon"},
		"T":  {"(", "id"},
		"T'": {"*", "epsilon"},
		"F":  {"(", "id"},
	}
	follow := map[string][]string{
		"E":  {")", "$"},
		"E'": {")", "$"},
		"T":  {"+", ")", "$"},
		"T'": {"+", ")", "$"},
		"F":  {"+", "*", ")", "$"},
	}
	assert.Equal(t, first, ff.First)
	assert.Equal(t, follow, ff.Follow)

	assert.Equal(t, []string{"+", "*", "epsilon"}, ff.FirstOf([]string{"E'", "T'"}))
	assert.Equal(t, []string{"*", "(", "id"}, ff.FirstOf([]string{"T'", "F"}))
	assert.True(t, ff.Nullable("E'"))
	assert.False(t, ff.Nullable("E"))
}

func TestFirstFollow_Idempotent(t *testing.T) {
	for _, src := range []string{exprLL1, exprSLR, "S -> a S b | c"} {
		g := mustParse(t, src)
		ff1, err := g.ComputeFirstFollow(OrderDeclared)
		require.NoError(t, err)
		ff2, err := g.ComputeFirstFollow(OrderDeclared)
		require.NoError(t, err)
		assert.Equal(t, ff1.First, ff2.First)
		assert.Equal(t, ff1.Follow, ff2.Follow)
	}
}
