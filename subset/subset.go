// Package subset converts NFAs into DFAs by subset construction.
package subset

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/nihei9/alab/automaton"
	verr "github.com/nihei9/alab/error"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alab.subset'
func tracer() tracing.Trace {
	return tracing.Select("alab.subset")
}

var (
	semErrTooManyStates       = verr.NewCause(verr.ErrResourceExhaustion, "subset construction exceeds the state limit")
	semErrAlphabetSize        = verr.NewCause(verr.ErrAlphabetMismatch, "the alphabet must hold exactly the symbols of the NFA")
	semErrSymbolNotInAlphabet = verr.NewCause(verr.ErrAlphabetMismatch, "symbol is not in the alphabet of the NFA")
)

// DefaultMaxStates bounds the number of DFA states when no limit is given.
const DefaultMaxStates = 4096

type option struct {
	maxStates int
	alphabet  *automaton.Alphabet
}

type Option func(o *option)

// MaxStates sets the largest number of DFA states the construction may create.
func MaxStates(n int) Option {
	return func(o *option) {
		o.maxStates = n
	}
}

// WithAlphabet makes the construction visit symbols in the order of the given alphabet. It must
// contain the same symbols as the NFA's alphabet.
func WithAlphabet(a *automaton.Alphabet) Option {
	return func(o *option) {
		o.alphabet = a
	}
}

// Result is a DFA together with the NFA states each of its states stands for.
type Result struct {
	DFA *automaton.DFA

	// SuperStates[id] is the set of NFA states behind DFA state id.
	SuperStates []automaton.StateSet
}

// Determinize builds a DFA accepting the language of an NFA. DFA states are numbered in the order
// a breadth-first traversal discovers them, and the start state is state 0. A DFA state has no
// transition on a symbol when the NFA cannot move on it.
func Determinize(nfa *automaton.NFA, opts ...Option) (*Result, error) {
	o := &option{
		maxStates: DefaultMaxStates,
		alphabet:  nfa.Alphabet(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.alphabet.Len() != nfa.Alphabet().Len() {
		return nil, &verr.SpecError{
			Cause:  semErrAlphabetSize,
			Detail: fmt.Sprintf("want %v, got %v", nfa.Alphabet(), o.alphabet),
		}
	}
	syms := o.alphabet.Symbols()
	for _, sym := range syms {
		if !nfa.Alphabet().Contains(sym) {
			return nil, &verr.SpecError{
				Cause:  semErrSymbolNotInAlphabet,
				Detail: string(sym),
			}
		}
	}

	var superStates []automaton.StateSet
	key2ID := map[string]automaton.StateID{}
	type edge struct {
		from automaton.StateID
		sym  automaton.Symbol
		to   automaton.StateID
	}
	var edges []edge

	register := func(set automaton.StateSet) (automaton.StateID, bool, error) {
		if id, ok := key2ID[set.Key()]; ok {
			return id, false, nil
		}
		if o.maxStates > 0 && len(superStates) >= o.maxStates {
			return 0, false, &verr.SpecError{
				Cause:  semErrTooManyStates,
				Detail: fmt.Sprintf("limit: %v", o.maxStates),
			}
		}
		id := automaton.StateID(len(superStates))
		superStates = append(superStates, set)
		key2ID[set.Key()] = id
		return id, true, nil
	}

	start := nfa.EpsilonClosure(automaton.NewStateSet(nfa.Start()))
	startID, _, err := register(start)
	if err != nil {
		return nil, err
	}

	worklist := arraylist.New()
	worklist.Add(startID)
	for !worklist.Empty() {
		v, _ := worklist.Get(0)
		worklist.Remove(0)
		from := v.(automaton.StateID)
		t := superStates[from]
		for _, sym := range syms {
			u := nfa.EpsilonClosure(nfa.Move(t, sym))
			if u.IsEmpty() {
				continue
			}
			to, isNew, err := register(u)
			if err != nil {
				return nil, err
			}
			if isNew {
				tracer().Debugf("subset: %v -%v-> %v (new)", t, sym, u)
				worklist.Add(to)
			}
			edges = append(edges, edge{from: from, sym: sym, to: to})
		}
	}

	b := automaton.NewDFABuilder(o.alphabet)
	for _, set := range superStates {
		if _, err := b.AddState(label(nfa, set)); err != nil {
			return nil, err
		}
	}
	b.SetStart(startID)
	for id, set := range superStates {
		if set.Intersects(nfa.Finals()) {
			b.AddFinal(automaton.StateID(id))
		}
	}
	for _, e := range edges {
		if err := b.AddTransition(e.from, e.sym, e.to); err != nil {
			return nil, err
		}
	}
	dfa, err := b.Build()
	if err != nil {
		return nil, err
	}

	tracer().Infof("subset construction: %v NFA states -> %v DFA states", len(nfa.States()), len(superStates))

	return &Result{
		DFA:         dfa,
		SuperStates: superStates,
	}, nil
}

// label names a super-state after its members, e.g. {q0, q1}.
func label(nfa *automaton.NFA, set automaton.StateSet) string {
	var b strings.Builder
	b.WriteString("{")
	for i, id := range set.IDs() {
		if i > 0 {
			b.WriteString(", ")
		}
		s, _ := nfa.State(id)
		b.WriteString(s.Label)
	}
	b.WriteString("}")
	return b.String()
}
