package grammar

import (
	"testing"

	verr "github.com/nihei9/alab/error"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemTexts(s *LR0State) []string {
	var texts []string
	for _, item := range s.Items {
		texts = append(texts, item.String())
	}
	return texts
}

func TestAnalyzeSLR(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alab.grammar")
	defer teardown()

	g := mustParse(t, "S -> a S b | c")
	tab, err := AnalyzeSLR(g, OrderDeclared, 0)
	require.NoError(t, err)

	assert.True(t, tab.IsSLR1())
	assert.Equal(t, []string{"a", "b", "c", "$"}, tab.Terminals)
	assert.Equal(t, []string{"S"}, tab.NonTerminals)
	require.Len(t, tab.States, 6)

	items := [][]string{
		{"S' -> . S", "S -> . a S b", "S -> . c"},
		{"S' -> S ."},
		{"S -> a . S b", "S -> . a S b", "S -> . c"},
		{"S -> c ."},
		{"S -> a S . b"},
		{"S -> a S b ."},
	}
	for i, s := range tab.States {
		assert.Equal(t, i, s.Num)
		assert.Equal(t, items[i], itemTexts(s), "state %v", i)
	}
	assert.Equal(t, 1, tab.States[0].KernelSize)
	assert.Equal(t, []Transition{{Symbol: "S", State: 1}, {Symbol: "a", State: 2}, {Symbol: "c", State: 3}}, tab.States[0].Transitions)

	tests := []struct {
		state  int
		symbol string
		action string
	}{
		{state: 0, symbol: "a", action: "S2"},
		{state: 0, symbol: "c", action: "S3"},
		{state: 1, symbol: "$", action: "Accept"},
		{state: 2, symbol: "a", action: "S2"},
		{state: 2, symbol: "c", action: "S3"},
		{state: 3, symbol: "b", action: "R2"},
		{state: 3, symbol: "$", action: "R2"},
		{state: 4, symbol: "b", action: "S5"},
		{state: 5, symbol: "b", action: "R1"},
		{state: 5, symbol: "$", action: "R1"},
	}
	for _, tt := range tests {
		act, ok := tab.Action(tt.state, tt.symbol)
		require.True(t, ok, "ACTION[%v, %v]", tt.state, tt.symbol)
		assert.Equal(t, tt.action, act.String(), "ACTION[%v, %v]", tt.state, tt.symbol)
	}
	_, ok := tab.Action(3, "a")
	assert.False(t, ok)
	_, ok = tab.Action(0, "$")
	assert.False(t, ok)

	next, ok := tab.Goto(0, "S")
	require.True(t, ok)
	assert.Equal(t, 1, next)
	next, ok = tab.Goto(2, "S")
	require.True(t, ok)
	assert.Equal(t, 4, next)
	_, ok = tab.Goto(1, "S")
	assert.False(t, ok)

	assert.Equal(t, "S' -> S", tab.Productions[0].String())
	assert.Equal(t, "S -> c", tab.Productions[2].String())
}

func TestAnalyzeSLR_ExpressionGrammar(t *testing.T) {
	g := mustParse(t, exprSLR)
	tab, err := AnalyzeSLR(g, OrderDeclared, 0)
	require.NoError(t, err)

	assert.True(t, tab.IsSLR1())
	assert.Len(t, tab.States, 12)
	assert.Equal(t, []string{"E' -> . E", "E -> . E + T", "E -> . T", "T -> . T * F", "T -> . F", "F -> . ( E )", "F -> . id"}, itemTexts(tab.States[0]))

	// Every state reachable from state 0 on id reduces by F -> id on FOLLOW(F).
	next := -1
	for _, tr := range tab.States[0].Transitions {
		if tr.Symbol == "id" {
			next = tr.State
		}
	}
	require.NotEqual(t, -1, next)
	for _, term := range []string{"+", "*", ")", "$"} {
		act, ok := tab.Action(next, term)
		require.True(t, ok)
		assert.Equal(t, ActionReduce, act.Kind)
		assert.Equal(t, "F -> id", tab.Productions[act.Production].String())
	}
	_, ok := tab.Action(next, "(")
	assert.False(t, ok)
}

func TestAnalyzeSLR_EpsilonProduction(t *testing.T) {
	g := mustParse(t, `
S -> A b
A -> a | epsilon
`)
	tab, err := AnalyzeSLR(g, OrderDeclared, 0)
	require.NoError(t, err)
	assert.True(t, tab.IsSLR1())
	assert.Contains(t, itemTexts(tab.States[0]), "A -> .")

	act, ok := tab.Action(0, "b")
	require.True(t, ok)
	assert.Equal(t, "R3", act.String())
}

func TestAnalyzeSLR_Conflicts(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		kind    ConflictKind
		symbol  string
	}{
		{
			caption: "an ambiguous expression grammar",
			src:     "E -> E + E | id",
			kind:    ConflictShiftReduce,
			symbol:  "+",
		},
		{
			caption: "two reductions of the same handle",
			src: `
S -> A | B
A -> x
B -> x
`,
			kind:   ConflictReduceReduce,
			symbol: "$",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := mustParse(t, tt.src)
			tab, err := AnalyzeSLR(g, OrderDeclared, 0)
			require.NoError(t, err)
			assert.False(t, tab.IsSLR1())
			require.Len(t, tab.Conflicts, 1)

			c := tab.Conflicts[0]
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, tt.symbol, c.Symbol)
			assert.Len(t, c.Actions, 2)

			act, ok := tab.Action(c.State, c.Symbol)
			require.True(t, ok)
			assert.Equal(t, c.Actions[0], act)
		})
	}
}

func TestAnalyzeSLR_StateLimit(t *testing.T) {
	g := mustParse(t, exprSLR)

	_, err := AnalyzeSLR(g, OrderDeclared, 11)
	assert.ErrorIs(t, err, verr.ErrResourceExhaustion)
	assert.Equal(t, "ResourceExhaustionError", verr.ClassName(err))

	tab, err := AnalyzeSLR(g, OrderDeclared, 12)
	require.NoError(t, err)
	assert.Len(t, tab.States, 12)
}

func TestAnalyzeSLR_Deterministic(t *testing.T) {
	g := mustParse(t, exprSLR)
	tab1, err := AnalyzeSLR(g, OrderDeclared, 0)
	require.NoError(t, err)
	tab2, err := AnalyzeSLR(g, OrderDeclared, 0)
	require.NoError(t, err)
	require.Equal(t, len(tab1.States), len(tab2.States))
	for i := range tab1.States {
		assert.Equal(t, itemTexts(tab1.States[i]), itemTexts(tab2.States[i]))
		assert.Equal(t, tab1.States[i].Transitions, tab2.States[i].Transitions)
	}
}
