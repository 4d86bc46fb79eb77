package grammar

import (
	"errors"
	"testing"

	verr "github.com/nihei9/alab/error"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeLL1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alab.grammar")
	defer teardown()

	g := mustParse(t, exprLL1)
	tab, err := AnalyzeLL1(g, OrderDeclared)
	require.NoError(t, err)

	assert.True(t, tab.IsLL1())
	assert.Empty(t, tab.Conflicts)
	assert.Equal(t, []string{"+", "*", "(", ")", "id", "$"}, tab.Terminals)
	assert.Equal(t, []string{"E", "E'", "T", "T'", "F"}, tab.NonTerminals)

	tests := []struct {
		nonTerminal string
		terminal    string
		production  string
	}{
		{nonTerminal: "E", terminal: "(", production: "E -> T E'"},
		{nonTerminal: "E", terminal: "id", production: "E -> T E'"},
		{nonTerminal: "E'", terminal: "+", production: "E' -> + T E'"},
		{nonTerminal: "E'", terminal: ")", production: "E' -> epsilon"},
		{nonTerminal: "E'", terminal: "$", production: "E' -> epsilon"},
		{nonTerminal: "T", terminal: "(", production: "T -> F T'"},
		{nonTerminal: "T'", terminal: "+", production: "T' -> epsilon"},
		{nonTerminal: "T'", terminal: "*", production: "T' -> * F T'"},
		{nonTerminal: "T'", terminal: "$", production: "T' -> epsilon"},
		{nonTerminal: "F", terminal: "(", production: "F -> ( E )"},
		{nonTerminal: "F", terminal: "id", production: "F -> id"},
	}
	for _, tt := range tests {
		t.Run(tt.nonTerminal+","+tt.terminal, func(t *testing.T) {
			p, ok := tab.Entry(tt.nonTerminal, tt.terminal)
			require.True(t, ok)
			assert.Equal(t, tt.production, p.String())
		})
	}

	for _, cell := range [][2]string{{"E", "+"}, {"E", ")"}, {"F", "$"}, {"T'", "("}} {
		_, ok := tab.Entry(cell[0], cell[1])
		assert.False(t, ok, "M[%v, %v] must be empty", cell[0], cell[1])
	}
}

func TestAnalyzeLL1_Conflicts(t *testing.T) {
	tests := []struct {
		caption   string
		src       string
		conflicts []string
	}{
		{
			caption: "common prefix",
			src:     "S -> a b | a c",
			conflicts: []string{
				"M[S, a]: S -> a b / S -> a c",
			},
		},
		{
			caption: "dangling else",
			src: `
S  -> i S S' | a
S' -> e S | epsilon
`,
			conflicts: []string{
				"M[S', e]: S' -> e S / S' -> epsilon",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := mustParse(t, tt.src)
			tab, err := AnalyzeLL1(g, OrderDeclared)
			require.NoError(t, err)
			assert.False(t, tab.IsLL1())

			var conflicts []string
			for _, c := range tab.Conflicts {
				conflicts = append(conflicts, c.String())
			}
			assert.Equal(t, tt.conflicts, conflicts)

			c := tab.Conflicts[0]
			p, ok := tab.Entry(c.NonTerminal, c.Terminal)
			require.True(t, ok)
			assert.Equal(t, c.Productions[0], p)
			assert.Len(t, tab.Candidates(c.NonTerminal, c.Terminal), 2)
		})
	}
}

func TestAnalyzeLL1_LeftRecursion(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		path    string
	}{
		{
			caption: "direct",
			src:     exprSLR,
			path:    "E => E",
		},
		{
			caption: "indirect",
			src: `
S -> A a | b
A -> S c | d
`,
			path: "S => A => S",
		},
		{
			caption: "behind a nullable prefix",
			src: `
S -> N S x | y
N -> z | epsilon
`,
			path: "S => S",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := mustParse(t, tt.src)
			_, err := AnalyzeLL1(g, OrderDeclared)
			require.Error(t, err)
			assert.ErrorIs(t, err, verr.ErrLeftRecursion)
			assert.Equal(t, "LeftRecursionError", verr.ClassName(err))

			var specErr *verr.SpecError
			require.True(t, errors.As(err, &specErr))
			assert.Contains(t, specErr.Detail, tt.path)
		})
	}
}

func TestAnalyzeLL1_NullableWithoutRecursion(t *testing.T) {
	g := mustParse(t, `
S -> A B c
A -> a | epsilon
B -> b | epsilon
`)
	tab, err := AnalyzeLL1(g, OrderDeclared)
	require.NoError(t, err)
	assert.True(t, tab.IsLL1())

	for _, term := range []string{"a", "b", "c"} {
		p, ok := tab.Entry("S", term)
		require.True(t, ok)
		assert.Equal(t, "S -> A B c", p.String())
	}
	p, ok := tab.Entry("B", "c")
	require.True(t, ok)
	assert.True(t, p.IsEpsilon())
}
