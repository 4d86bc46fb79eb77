package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTable(t *testing.T) {
	tab := newSymbolTable()
	start, err := tab.registerStart("S'")
	require.NoError(t, err)
	assert.True(t, start.isStart())
	assert.True(t, start.isNonTerminal())

	s := tab.registerNonTerminal("S")
	a := tab.registerTerminal("a")
	b := tab.registerTerminal("b")
	assert.True(t, s.isNonTerminal())
	assert.True(t, a.isTerminal())
	assert.Equal(t, s, tab.registerNonTerminal("S"))
	assert.Equal(t, "b", tab.text(b))
	assert.Equal(t, EOF, tab.text(symbolEOF))
	assert.Equal(t, []symbol{a, b}, tab.terminals())
	assert.Equal(t, []symbol{s}, tab.nonTerminals())

	eof, ok := tab.lookup(EOF)
	require.True(t, ok)
	assert.True(t, eof.isEOF())
	assert.True(t, eof.isTerminal())

	_, err = tab.registerStart("S")
	assert.Error(t, err)
}

func TestCanonicalKernel(t *testing.T) {
	g := mustParse(t, `
S -> a S b | c
`)
	prods := g.productionSet.all
	items := []lr0Item{
		{prod: prods[2], dot: 1},
		{prod: prods[1], dot: 1},
		{prod: prods[2], dot: 1},
	}
	key1, sorted, err := canonicalKernel(items)
	require.NoError(t, err)
	assert.Equal(t, []lr0Item{{prod: prods[1], dot: 1}, {prod: prods[2], dot: 1}}, sorted)

	key2, _, err := canonicalKernel([]lr0Item{items[1], items[0]})
	require.NoError(t, err)
	assert.Equal(t, key1, key2)

	key3, _, err := canonicalKernel([]lr0Item{items[1]})
	require.NoError(t, err)
	assert.NotEqual(t, key1, key3)

	_, _, err = canonicalKernel(nil)
	assert.Error(t, err)
}

func TestClosure(t *testing.T) {
	g := mustParse(t, `
S -> a S b | c
`)
	prods := g.productionSet.all
	items := closure([]lr0Item{{prod: prods[0]}}, g.productionSet)
	assert.Equal(t, []lr0Item{
		{prod: prods[0]},
		{prod: prods[1]},
		{prod: prods[2]},
	}, items)
	assert.Equal(t, symbolNil, lr0Item{prod: prods[2], dot: 1}.next())
	assert.True(t, lr0Item{prod: prods[2], dot: 1}.reducible())
}

func TestProductionSet_RejectsDuplicates(t *testing.T) {
	ps := newProductionSet()
	p1, err := newProduction(symbolStart, []symbol{symbol(-2)})
	require.NoError(t, err)
	p2, err := newProduction(symbol(-2), []symbol{symbol(2)})
	require.NoError(t, err)
	dup, err := newProduction(symbol(-2), []symbol{symbol(2)})
	require.NoError(t, err)

	assert.True(t, ps.append(p1))
	assert.True(t, ps.append(p2))
	assert.False(t, ps.append(dup))
	assert.Equal(t, productionNumStart, p1.num)
	assert.Equal(t, productionNum(1), p2.num)
	assert.Equal(t, []symbol{symbolStart, symbol(-2)}, ps.heads())

	_, err = newProduction(symbol(2), nil)
	assert.Error(t, err)
}
