/*
Package automaton holds the shared model of finite automata.

Both kinds of machines share a Symbol type, an ordered Alphabet and immutable State records.
An NFA maps (state, symbol-or-epsilon) to a set of states, a DFA maps (state, symbol) to at
most one state. Absent DFA transitions denote the implicit trap outcome.

Machines are assembled with NFABuilder and DFABuilder, which validate that every transition
names a declared state and a symbol of the alphabet. Once built, a machine is never mutated.
*/
package automaton

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alab.automaton'
func tracer() tracing.Trace {
	return tracing.Select("alab.automaton")
}
