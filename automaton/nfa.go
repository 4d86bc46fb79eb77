package automaton

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/stacks/arraystack"
	verr "github.com/nihei9/alab/error"
)

type NFA struct {
	states   []State
	alphabet *Alphabet
	trans    map[StateID]map[Symbol][]StateID
	start    StateID
	finals   StateSet
}

func (n *NFA) Alphabet() *Alphabet {
	return n.alphabet
}

func (n *NFA) States() []State {
	states := make([]State, len(n.states))
	copy(states, n.states)
	return states
}

func (n *NFA) State(id StateID) (State, bool) {
	if id < 0 || int(id) >= len(n.states) {
		return State{}, false
	}
	return n.states[id], true
}

func (n *NFA) Start() StateID {
	return n.start
}

func (n *NFA) Finals() StateSet {
	return n.finals
}

func (n *NFA) IsFinal(id StateID) bool {
	return n.finals.Contains(id)
}

// Targets returns the states reachable from a state on a symbol in ascending order. Pass Epsilon
// to get the epsilon successors.
func (n *NFA) Targets(from StateID, sym Symbol) []StateID {
	return n.trans[from][sym]
}

// EpsilonClosure returns the smallest superset of a set closed under epsilon transitions.
func (n *NFA) EpsilonClosure(set StateSet) StateSet {
	closure := treeset.NewWith(stateIDComparator)
	stack := arraystack.New()
	for _, id := range set.ids {
		closure.Add(id)
		stack.Push(id)
	}
	for !stack.Empty() {
		v, _ := stack.Pop()
		for _, to := range n.trans[v.(StateID)][Epsilon] {
			if closure.Contains(to) {
				continue
			}
			closure.Add(to)
			stack.Push(to)
		}
	}
	return stateSetFromTree(closure)
}

// Move returns the states reachable from a set on a single non-epsilon symbol.
func (n *NFA) Move(set StateSet, sym Symbol) StateSet {
	if sym.IsEpsilon() {
		return StateSet{}
	}
	var ids []StateID
	for _, from := range set.ids {
		ids = append(ids, n.trans[from][sym]...)
	}
	return NewStateSet(ids...)
}

// Accepts simulates the automaton on a word.
func (n *NFA) Accepts(word []Symbol) bool {
	current := n.EpsilonClosure(NewStateSet(n.start))
	for _, sym := range word {
		current = n.EpsilonClosure(n.Move(current, sym))
		if current.IsEmpty() {
			return false
		}
	}
	return current.Intersects(n.finals)
}

// Transitions lists the transitions ordered by source state, then symbol in alphabet order with
// epsilon first, then target.
func (n *NFA) Transitions() []Transition {
	var ts []Transition
	syms := append([]Symbol{Epsilon}, n.alphabet.symbols...)
	for _, s := range n.states {
		for _, sym := range syms {
			for _, to := range n.trans[s.ID][sym] {
				ts = append(ts, Transition{
					From:   s.ID,
					Symbol: sym,
					To:     to,
				})
			}
		}
	}
	return ts
}

// Definition returns the automaton as a label-based definition.
func (n *NFA) Definition() *NFADefinition {
	def := &NFADefinition{
		Start:       n.states[n.start].Label,
		Transitions: map[string]map[string][]string{},
	}
	for _, s := range n.states {
		def.States = append(def.States, s.Label)
		if s.IsFinal {
			def.Finals = append(def.Finals, s.Label)
		}
	}
	for _, sym := range n.alphabet.symbols {
		def.Alphabet = append(def.Alphabet, string(sym))
	}
	for _, t := range n.Transitions() {
		from := n.states[t.From].Label
		m, ok := def.Transitions[from]
		if !ok {
			m = map[string][]string{}
			def.Transitions[from] = m
		}
		m[string(t.Symbol)] = append(m[string(t.Symbol)], n.states[t.To].Label)
	}
	return def
}

func (n *NFA) Graph(title string) *Graph {
	return newGraph(title, n.states, n.Transitions())
}

// Transition is one edge of an automaton.
type Transition struct {
	From   StateID
	Symbol Symbol
	To     StateID
}

// NFABuilder assembles an NFA. When no alphabet is given, the alphabet consists of the symbols
// used in transitions in the order they first appear.
type NFABuilder struct {
	labels   []string
	label2ID map[string]StateID
	alphabet *Alphabet
	inferred []Symbol
	trans    map[StateID]map[Symbol][]StateID
	start    StateID
	hasStart bool
	finals   []StateID
}

func NewNFABuilder(alphabet *Alphabet) *NFABuilder {
	return &NFABuilder{
		label2ID: map[string]StateID{},
		alphabet: alphabet,
		trans:    map[StateID]map[Symbol][]StateID{},
	}
}

func (b *NFABuilder) StateCount() int {
	return len(b.labels)
}

// AddState adds a state with a label. Labels must be unique.
func (b *NFABuilder) AddState(label string) (StateID, error) {
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

// NewState adds a state labelled q<id>.
func (b *NFABuilder) NewState() StateID {
	id := StateID(len(b.labels))
	label := fmt.Sprintf("q%v", int(id))
	b.labels = append(b.labels, label)
	b.label2ID[label] = id
	return id
}

func (b *NFABuilder) Lookup(label string) (StateID, bool) {
	id, ok := b.label2ID[label]
	return id, ok
}

func (b *NFABuilder) SetStart(id StateID) error {
	if err := b.checkState(id); err != nil {
		return err
	}
	b.start = id
	b.hasStart = true
	return nil
}

func (b *NFABuilder) AddFinal(id StateID) error {
	if err := b.checkState(id); err != nil {
		return err
	}
	b.finals = append(b.finals, id)
	return nil
}

func (b *NFABuilder) AddTransition(from StateID, sym Symbol, to StateID) error {
	if err := b.checkState(from); err != nil {
		return err
	}
	if err := b.checkState(to); err != nil {
		return err
	}
	if !sym.IsEpsilon() {
		if b.alphabet != nil {
			if !b.alphabet.Contains(sym) {
				return &verr.SpecError{
					Cause:  semErrSymbolNotInAlphabet,
					Detail: fmt.Sprintf("%v -> %v on %q", b.labels[from], b.labels[to], string(sym)),
				}
			}
		} else if !containsSymbol(b.inferred, sym) {
			b.inferred = append(b.inferred, sym)
		}
	}
	m, ok := b.trans[from]
	if !ok {
		m = map[Symbol][]StateID{}
		b.trans[from] = m
	}
	for _, t := range m[sym] {
		if t == to {
			return nil
		}
	}
	m[sym] = append(m[sym], to)
	return nil
}

func (b *NFABuilder) checkState(id StateID) error {
	if id < 0 || int(id) >= len(b.labels) {
		return &verr.SpecError{
			Cause:  synErrUndefinedState,
			Detail: fmt.Sprintf("#%v", int(id)),
		}
	}
	return nil
}

func (b *NFABuilder) Build() (*NFA, error) {
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

	alphabet := b.alphabet
	if alphabet == nil {
		var err error
		alphabet, err = NewAlphabet(b.inferred...)
		if err != nil {
			return nil, err
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

	trans := map[StateID]map[Symbol][]StateID{}
	for from, m := range b.trans {
		tm := map[Symbol][]StateID{}
		for sym, tos := range m {
			sorted := make([]StateID, len(tos))
			copy(sorted, tos)
			sort.Slice(sorted, func(i, j int) bool {
				return sorted[i] < sorted[j]
			})
			tm[sym] = sorted
		}
		trans[from] = tm
	}

	tracer().Debugf("NFA built: %v states, alphabet %v", len(states), alphabet)

	return &NFA{
		states:   states,
		alphabet: alphabet,
		trans:    trans,
		start:    b.start,
		finals:   finals,
	}, nil
}

func containsSymbol(syms []Symbol, sym Symbol) bool {
	for _, s := range syms {
		if s == sym {
			return true
		}
	}
	return false
}

// NFADefinition is a label-based description of an NFA as it is exchanged with callers.
// Transition keys "" and "ε" both denote epsilon.
type NFADefinition struct {
	States      []string
	Alphabet    []string
	Transitions map[string]map[string][]string
	Start       string
	Finals      []string
}

// NewNFA validates a definition and builds the automaton. Transitions are added in the order of
// the declared states and alphabet so the result does not depend on map iteration order.
func NewNFA(def *NFADefinition) (*NFA, error) {
	var syms []Symbol
	for _, s := range def.Alphabet {
		syms = append(syms, Symbol(s))
	}
	alphabet, err := NewAlphabet(syms...)
	if err != nil {
		return nil, err
	}
	if alphabet.Len() == 0 {
		return nil, &verr.SpecError{
			Cause: synErrEmptyAlphabet,
		}
	}

	b := NewNFABuilder(alphabet)
	for _, label := range def.States {
		if _, err := b.AddState(label); err != nil {
			return nil, err
		}
	}
	lookup := func(label string) (StateID, error) {
		id, ok := b.Lookup(label)
		if !ok {
			return 0, &verr.SpecError{
				Cause:  synErrUndefinedState,
				Detail: label,
			}
		}
		return id, nil
	}

	if def.Start == "" {
		return nil, &verr.SpecError{
			Cause: synErrNoStartState,
		}
	}
	start, err := lookup(def.Start)
	if err != nil {
		return nil, err
	}
	b.SetStart(start)
	for _, label := range def.Finals {
		id, err := lookup(label)
		if err != nil {
			return nil, err
		}
		b.AddFinal(id)
	}

	for from := range def.Transitions {
		if _, err := lookup(from); err != nil {
			return nil, err
		}
	}
	for _, fromLabel := range def.States {
		m, ok := def.Transitions[fromLabel]
		if !ok {
			continue
		}
		from, _ := lookup(fromLabel)
		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			sym := Symbol(key)
			if key == EpsilonText {
				sym = Epsilon
			}
			for _, toLabel := range m[key] {
				to, err := lookup(toLabel)
				if err != nil {
					return nil, err
				}
				if err := b.AddTransition(from, sym, to); err != nil {
					return nil, err
				}
			}
		}
	}

	return b.Build()
}
