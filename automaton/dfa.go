package automaton

import (
	"fmt"

	verr "github.com/nihei9/alab/error"
)

// DFA is a deterministic automaton whose transition function may be partial. A missing
// transition rejects the input.
type DFA struct {
	states   []State
	alphabet *Alphabet
	trans    map[StateID]map[Symbol]StateID
	start    StateID
	finals   StateSet
}

func (d *DFA) Alphabet() *Alphabet {
	return d.alphabet
}

func (d *DFA) States() []State {
	states := make([]State, len(d.states))
	copy(states, d.states)
	return states
}

func (d *DFA) State(id StateID) (State, bool) {
	if id < 0 || int(id) >= len(d.states) {
		return State{}, false
	}
	return d.states[id], true
}

func (d *DFA) Start() StateID {
	return d.start
}

func (d *DFA) Finals() StateSet {
	return d.finals
}

func (d *DFA) IsFinal(id StateID) bool {
	return d.finals.Contains(id)
}

func (d *DFA) Next(from StateID, sym Symbol) (StateID, bool) {
	to, ok := d.trans[from][sym]
	return to, ok
}

func (d *DFA) Accepts(word []Symbol) bool {
	current := d.start
	for _, sym := range word {
		next, ok := d.Next(current, sym)
		if !ok {
			return false
		}
		current = next
	}
	return d.IsFinal(current)
}

// Transitions lists the transitions ordered by source state, then symbol in alphabet order.
func (d *DFA) Transitions() []Transition {
	var ts []Transition
	for _, s := range d.states {
		for _, sym := range d.alphabet.symbols {
			to, ok := d.trans[s.ID][sym]
			if !ok {
				continue
			}
			ts = append(ts, Transition{
				From:   s.ID,
				Symbol: sym,
				To:     to,
			})
		}
	}
	return ts
}

// IsTotal reports whether every state has a transition on every symbol.
func (d *DFA) IsTotal() bool {
	for _, s := range d.states {
		if len(d.trans[s.ID]) != d.alphabet.Len() {
			return false
		}
	}
	return true
}

func (d *DFA) Graph(title string) *Graph {
	return newGraph(title, d.states, d.Transitions())
}

type DFABuilder struct {
	labels   []string
	label2ID map[string]StateID
	alphabet *Alphabet
	trans    map[StateID]map[Symbol]StateID
	start    StateID
	hasStart bool
	finals   []StateID
}

func NewDFABuilder(alphabet *Alphabet) *DFABuilder {
	return &DFABuilder{
		label2ID: map[string]StateID{},
		alphabet: alphabet,
		trans:    map[StateID]map[Symbol]StateID{},
	}
}

func (b *DFABuilder) StateCount() int {
	return len(b.labels)
}

func (b *DFABuilder) AddState(label string) (StateID, error) {
	if _, ok := b.label2ID[label]; ok {
		return 0, &verr.SpecError{
			Cause:  synErrDuplicateState,
			Detail: label,
		}
	}
	id := StateID(len(b.labels))
	b.labels = append(b.labels, label)
	b.label2ID[label] = id
	return id, nil
}

func (b *DFABuilder) SetStart(id StateID) error {
	if err := b.checkState(id); err != nil {
		return err
	}
	b.start = id
	b.hasStart = true
	return nil
}

func (b *DFABuilder) AddFinal(id StateID) error {
	if err := b.checkState(id); err != nil {
		return err
	}
	b.finals = append(b.finals, id)
	return nil
}

func (b *DFABuilder) AddTransition(from StateID, sym Symbol, to StateID) error {
	if err := b.checkState(from); err != nil {
		return err
	}
	if err := b.checkState(to); err != nil {
		return err
	}
	if sym.IsEpsilon() {
		return &verr.SpecError{
			Cause:  synErrEpsilonInDFA,
			Detail: b.labels[from],
		}
	}
	if !b.alphabet.Contains(sym) {
		return &verr.SpecError{
			Cause:  semErrSymbolNotInAlphabet,
			Detail: fmt.Sprintf("%v -> %v on %q", b.labels[from], b.labels[to], string(sym)),
		}
	}
	m, ok := b.trans[from]
	if !ok {
		m = map[Symbol]StateID{}
		b.trans[from] = m
	}
	if cur, ok := m[sym]; ok && cur != to {
		return &verr.SpecError{
			Cause:  synErrNonDeterministic,
			Detail: fmt.Sprintf("%v on %q", b.labels[from], string(sym)),
		}
	}
	m[sym] = to
	return nil
}

func (b *DFABuilder) checkState(id StateID) error {
	if id < 0 || int(id) >= len(b.labels) {
		return &verr.SpecError{
			Cause:  synErrUndefinedState,
			Detail: fmt.Sprintf("#%v", int(id)),
		}
	}
	return nil
}

func (b *DFABuilder) Build() (*DFA, error) {
	if len(b.labels) == 0 {
		return nil, &verr.SpecError{
			Cause: synErrNoState,
		}
	}
	if !b.hasStart {
		return nil, &verr.SpecError{
			Cause: synErrNoStartState,
		}
	}

	finals := NewStateSet(b.finals...)
	states := make([]State, len(b.labels))
	for i, label := range b.labels {
		id := StateID(i)
		states[i] = State{
			ID:      id,
			Label:   label,
			IsStart: id == b.start,
			IsFinal: finals.Contains(id),
		}
	}
	trans := make(map[StateID]map[Symbol]StateID, len(b.trans))
	for from, m := range b.trans {
		tm := make(map[Symbol]StateID, len(m))
		for sym, to := range m {
			tm[sym] = to
		}
		trans[from] = tm
	}

	tracer().Debugf("DFA built: %v states, alphabet %v", len(states), b.alphabet)

	return &DFA{
		states:   states,
		alphabet: b.alphabet,
		trans:    trans,
		start:    b.start,
		finals:   finals,
	}, nil
}
