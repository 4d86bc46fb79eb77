// Package strdfa builds the minimal DFA accepting exactly one string.
package strdfa

import (
	"fmt"

	"github.com/nihei9/alab/automaton"
	verr "github.com/nihei9/alab/error"
)

// TrapLabel is the label of the state every wrong symbol leads to.
const TrapLabel = "q_trap"

var semErrSymbolNotInAlphabet = verr.NewCause(verr.ErrAlphabetMismatch, "the target string contains a symbol outside the alphabet")

// Build returns a total DFA over the alphabet with states q0..qn on the path spelling the target,
// plus q_trap. The target is checked against the alphabet before any state is built.
func Build(alphabet *automaton.Alphabet, target []automaton.Symbol) (*automaton.DFA, error) {
	for i, sym := range target {
		if !alphabet.Contains(sym) {
			return nil, &verr.SpecError{
				Cause:  semErrSymbolNotInAlphabet,
				Detail: fmt.Sprintf("%q is not in %v", string(sym), alphabet),
				Col:    i + 1,
			}
		}
	}

	b := automaton.NewDFABuilder(alphabet)
	path := make([]automaton.StateID, len(target)+1)
	for i := range path {
		id, err := b.AddState(fmt.Sprintf("q%v", i))
		if err != nil {
			return nil, err
		}
		path[i] = id
	}
	trap, err := b.AddState(TrapLabel)
	if err != nil {
		return nil, err
	}
	b.SetStart(path[0])
	b.AddFinal(path[len(target)])

	for i, from := range path {
		for _, sym := range alphabet.Symbols() {
			to := trap
			if i < len(target) && sym == target[i] {
				to = path[i+1]
			}
			if err := b.AddTransition(from, sym, to); err != nil {
				return nil, err
			}
		}
	}
	for _, sym := range alphabet.Symbols() {
		if err := b.AddTransition(trap, sym, trap); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// BuildFromString reads the alphabet and the target the way they are written in requests: every
// non-space character is one symbol.
func BuildFromString(alphabet, target string) (*automaton.DFA, error) {
	a, err := automaton.ParseAlphabet(alphabet)
	if err != nil {
		return nil, err
	}
	var syms []automaton.Symbol
	for _, r := range target {
		syms = append(syms, automaton.Symbol(string(r)))
	}
	return Build(a, syms)
}
