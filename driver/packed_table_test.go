package driver

import (
	"testing"

	"github.com/nihei9/alab/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackSLRTable(t *testing.T) {
	g, err := grammar.Parse(`
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`)
	require.NoError(t, err)
	tab, err := grammar.AnalyzeSLR(g, grammar.OrderDeclared, 0)
	require.NoError(t, err)
	require.True(t, tab.IsSLR1())

	packed, err := packSLRTable(tab)
	require.NoError(t, err)

	for _, s := range tab.States {
		for _, term := range tab.Terminals {
			want, wantOK := tab.Action(s.Num, term)
			got, ok := packed.Action(s.Num, term)
			assert.Equal(t, wantOK, ok, "ACTION[%v, %v]", s.Num, term)
			if wantOK {
				assert.Equal(t, want, got, "ACTION[%v, %v]", s.Num, term)
			}
		}
		for _, nt := range tab.NonTerminals {
			want, wantOK := tab.Goto(s.Num, nt)
			got, ok := packed.Goto(s.Num, nt)
			assert.Equal(t, wantOK, ok, "GOTO[%v, %v]", s.Num, nt)
			assert.Equal(t, want, got, "GOTO[%v, %v]", s.Num, nt)
		}
	}

	_, ok := packed.Action(0, "undefined")
	assert.False(t, ok)
	_, ok = packed.Goto(0, "Undefined")
	assert.False(t, ok)
}

func TestActionEncoding(t *testing.T) {
	acts := []grammar.Action{
		{Kind: grammar.ActionShift, State: 0},
		{Kind: grammar.ActionShift, State: 12},
		{Kind: grammar.ActionReduce, Production: 1},
		{Kind: grammar.ActionReduce, Production: 7},
		{Kind: grammar.ActionAccept},
	}
	for _, act := range acts {
		v := encodeAction(act)
		assert.NotEqual(t, emptyEntry, v)
		assert.Equal(t, act, decodeAction(v))
	}
}
