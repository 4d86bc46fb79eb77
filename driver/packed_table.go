package driver

import (
	"github.com/nihei9/alab/compressor"
	"github.com/nihei9/alab/grammar"
)

// packedSLRTable holds a conflict-free SLR(1) table in compressed form.
//
// An ACTION entry is 0 when empty, s+1 for a shift to state s, and -(p+1) for a reduce by
// production p. Production 0 is the augmented start production, so -1 stands for accept.
// A GOTO entry is 0 when empty and n+1 for a move to state n.
type packedSLRTable struct {
	action       compressor.Compressor
	gotoT        compressor.Compressor
	terminals    []string
	terminalNums map[string]int
	nonTermNums  map[string]int
}

const emptyEntry = 0

func packSLRTable(tab *grammar.SLRTable) (*packedSLRTable, error) {
	termNums := make(map[string]int, len(tab.Terminals))
	for i, term := range tab.Terminals {
		termNums[term] = i
	}
	ntNums := make(map[string]int, len(tab.NonTerminals))
	for i, nt := range tab.NonTerminals {
		ntNums[nt] = i
	}

	stateCount := len(tab.States)
	actEntries := make([]int, stateCount*len(tab.Terminals))
	gotoEntries := make([]int, stateCount*len(tab.NonTerminals))
	for _, s := range tab.States {
		for i, term := range tab.Terminals {
			act, ok := tab.Action(s.Num, term)
			if !ok {
				continue
			}
			actEntries[s.Num*len(tab.Terminals)+i] = encodeAction(act)
		}
		for i, nt := range tab.NonTerminals {
			next, ok := tab.Goto(s.Num, nt)
			if !ok {
				continue
			}
			gotoEntries[s.Num*len(tab.NonTerminals)+i] = next + 1
		}
	}

	origAct, err := compressor.NewTable(actEntries, len(tab.Terminals))
	if err != nil {
		return nil, err
	}
	act := compressor.NewRowDisplacementTable(emptyEntry)
	if err := act.Compress(origAct); err != nil {
		return nil, err
	}
	origGoto, err := compressor.NewTable(gotoEntries, len(tab.NonTerminals))
	if err != nil {
		return nil, err
	}
	gotoT := compressor.NewUniqueRowsTable()
	if err := gotoT.Compress(origGoto); err != nil {
		return nil, err
	}

	tracer().Debugf("packed ACTION table: %v entries for %v states x %v terminals",
		len(act.Entries), stateCount, len(tab.Terminals))

	return &packedSLRTable{
		action:       act,
		gotoT:        gotoT,
		terminals:    tab.Terminals,
		terminalNums: termNums,
		nonTermNums:  ntNums,
	}, nil
}

func encodeAction(act grammar.Action) int {
	switch act.Kind {
	case grammar.ActionShift:
		return act.State + 1
	case grammar.ActionReduce:
		return -(act.Production + 1)
	}
	return -1
}

func decodeAction(v int) grammar.Action {
	switch {
	case v > 0:
		return grammar.Action{
			Kind:  grammar.ActionShift,
			State: v - 1,
		}
	case v == -1:
		return grammar.Action{
			Kind: grammar.ActionAccept,
		}
	}
	return grammar.Action{
		Kind:       grammar.ActionReduce,
		Production: -v - 1,
	}
}

func (t *packedSLRTable) Action(state int, terminal string) (grammar.Action, bool) {
	col, ok := t.terminalNums[terminal]
	if !ok {
		return grammar.Action{}, false
	}
	v, err := t.action.Lookup(state, col)
	if err != nil || v == emptyEntry {
		return grammar.Action{}, false
	}
	return decodeAction(v), true
}

func (t *packedSLRTable) Goto(state int, nonTerminal string) (int, bool) {
	col, ok := t.nonTermNums[nonTerminal]
	if !ok {
		return 0, false
	}
	v, err := t.gotoT.Lookup(state, col)
	if err != nil || v == emptyEntry {
		return 0, false
	}
	return v - 1, true
}

func (t *packedSLRTable) expected(state int) []string {
	var expected []string
	for _, term := range t.terminals {
		if _, ok := t.Action(state, term); ok {
			expected = append(expected, term)
		}
	}
	return expected
}
