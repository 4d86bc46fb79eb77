package grammar

import (
	"fmt"
	"strings"
)

type ActionKind int

const (
	ActionShift ActionKind = iota
	ActionReduce
	ActionAccept
)

// Action is an entry of the ACTION table. State is the target of a shift; Production is the
// number, in the augmented grammar, of the production a reduce uses.
type Action struct {
	Kind       ActionKind
	State      int
	Production int
}

func (a Action) String() string {
	switch a.Kind {
	case ActionShift:
		return fmt.Sprintf("S%v", a.State)
	case ActionReduce:
		return fmt.Sprintf("R%v", a.Production)
	case ActionAccept:
		return "Accept"
	}
	return "?"
}

type ConflictKind string

const (
	ConflictShiftReduce  = ConflictKind("shift/reduce")
	ConflictReduceReduce = ConflictKind("reduce/reduce")
)

// SLRConflict is an ACTION cell that received more than one action.
type SLRConflict struct {
	Kind    ConflictKind
	State   int
	Symbol  string
	Actions []Action
}

func (c *SLRConflict) String() string {
	acts := make([]string, len(c.Actions))
	for i, a := range c.Actions {
		acts[i] = a.String()
	}
	return fmt.Sprintf("%v conflict: ACTION[%v, %v] = %v", c.Kind, c.State, c.Symbol, strings.Join(acts, " / "))
}

// Item is an LR(0) item.
type Item struct {
	Production *Production
	Dot        int
}

// String renders an item as S -> a . S b. An item of an empty production is S -> .
func (i Item) String() string {
	var b strings.Builder
	b.WriteString(i.Production.Head)
	b.WriteString(" ->")
	for n, sym := range i.Production.Body {
		if n == i.Dot {
			b.WriteString(" .")
		}
		b.WriteString(" ")
		b.WriteString(sym)
	}
	if i.Dot == len(i.Production.Body) {
		b.WriteString(" .")
	}
	return b.String()
}

// Transition is an edge of the LR(0) automaton.
type Transition struct {
	Symbol string
	State  int
}

// LR0State is a state of the canonical collection.
type LR0State struct {
	Num int

	// Items is the closure; the kernel comes first.
	Items       []Item
	KernelSize  int
	Transitions []Transition
}

// SLRTable holds the canonical LR(0) collection and the SLR(1) ACTION and GOTO tables.
type SLRTable struct {
	Grammar      *Grammar
	Sets         *FirstFollow
	Productions  []*Production
	States       []*LR0State
	Terminals    []string
	NonTerminals []string
	Conflicts    []*SLRConflict

	action map[int]map[string][]Action
	gotoT  map[int]map[string]int
}

// IsSLR1 reports whether no ACTION cell received more than one action.
func (t *SLRTable) IsSLR1() bool {
	return len(t.Conflicts) == 0
}

// Action returns the primary action of a cell, the first one assigned.
func (t *SLRTable) Action(state int, terminal string) (Action, bool) {
	acts := t.Actions(state, terminal)
	if len(acts) == 0 {
		return Action{}, false
	}
	return acts[0], true
}

// Actions returns every action assigned to a cell.
func (t *SLRTable) Actions(state int, terminal string) []Action {
	row, ok := t.action[state]
	if !ok {
		return nil
	}
	return row[terminal]
}

func (t *SLRTable) Goto(state int, nonTerminal string) (int, bool) {
	row, ok := t.gotoT[state]
	if !ok {
		return 0, false
	}
	next, ok := row[nonTerminal]
	return next, ok
}

// AnalyzeSLR builds the canonical LR(0) collection of the augmented grammar and derives the SLR(1)
// tables from it. Conflicts are recorded in the table. maxStates bounds the collection.
func AnalyzeSLR(g *Grammar, order SymbolOrder, maxStates int) (*SLRTable, error) {
	ff, err := g.ComputeFirstFollow(order)
	if err != nil {
		return nil, err
	}
	lr0, err := buildLR0Collection(g.productionSet, maxStates)
	if err != nil {
		return nil, err
	}

	tab := &SLRTable{
		Grammar:      g,
		Sets:         ff,
		Productions:  g.AugmentedProductions(),
		Terminals:    g.TerminalsWithEOF(order),
		NonTerminals: g.NonTerminals(),
		action:       map[int]map[string][]Action{},
		gotoT:        map[int]map[string]int{},
	}

	conflicts := map[string]*SLRConflict{}
	assign := func(state int, term string, act Action) {
		row := tab.action[state]
		for _, a := range row[term] {
			if a == act {
				return
			}
		}
		row[term] = append(row[term], act)
		if len(row[term]) < 2 {
			return
		}
		kind := ConflictReduceReduce
		for _, a := range row[term] {
			if a.Kind == ActionShift {
				kind = ConflictShiftReduce
				break
			}
		}
		key := fmt.Sprintf("%v\x00%v", state, term)
		if c, ok := conflicts[key]; ok {
			c.Kind = kind
			c.Actions = row[term]
			return
		}
		c := &SLRConflict{
			Kind:    kind,
			State:   state,
			Symbol:  term,
			Actions: row[term],
		}
		conflicts[key] = c
		tab.Conflicts = append(tab.Conflicts, c)
	}

	for _, state := range lr0.states {
		num := state.num
		tab.action[num] = map[string][]Action{}
		tab.gotoT[num] = map[string]int{}

		s := &LR0State{
			Num:        num,
			KernelSize: state.kernelSize,
		}
		for _, item := range state.items {
			s.Items = append(s.Items, Item{
				Production: g.toProduction(item.prod),
				Dot:        item.dot,
			})
		}

		for _, e := range state.edges {
			sym, next := e.sym, e.to
			text := g.toText(sym)
			s.Transitions = append(s.Transitions, Transition{
				Symbol: text,
				State:  next,
			})
			if sym.isTerminal() {
				assign(num, text, Action{
					Kind:  ActionShift,
					State: next,
				})
			} else {
				tab.gotoT[num][text] = next
			}
		}

		for _, prod := range state.reducible {
			if prod.lhs.isStart() {
				assign(num, EOF, Action{
					Kind: ActionAccept,
				})
				continue
			}
			flw, ok := ff.follow[prod.lhs]
			if !ok {
				return nil, fmt.Errorf("FOLLOW of %v is undefined", g.toText(prod.lhs))
			}
			for _, term := range tab.Terminals {
				sym, _ := g.symbolTable.lookup(term)
				if !flw.contains(sym) {
					continue
				}
				assign(num, term, Action{
					Kind:       ActionReduce,
					Production: prod.num.Int(),
				})
			}
		}

		tab.States = append(tab.States, s)
	}

	tracer().Infof("SLR(1) table: %v states, %v conflicts", len(tab.States), len(tab.Conflicts))

	return tab, nil
}
