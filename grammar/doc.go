/*
Package grammar reads context-free grammars and analyzes them for LL(1) and SLR(1) parsing.

A grammar is written one non-terminal per line:

	E  -> T E'
	E' -> + T E' | epsilon

Symbols are separated by whitespace. A token is a non-terminal when the Convention says so, every
other token is a terminal. The head of the first line is the start symbol. The grammar is always
augmented with a fresh start symbol S' and the production S' -> S, numbered 0.

AnalyzeLL1 and AnalyzeSLR never fail on conflicts; they record every conflicting cell and keep
the first entry assigned to it as the primary one.
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alab.grammar'
func tracer() tracing.Trace {
	return tracing.Select("alab.grammar")
}
