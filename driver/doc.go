/*
Package driver parses sentences with the tables the grammar package builds.

A Tokenizer turns a sentence into terminals of a grammar. ParseLL1 runs a predictive parser over
them and ParseSLR a shift/reduce parser; both record every move they make and build a concrete
syntax tree of an accepted sentence.
*/
package driver

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alab.driver'
func tracer() tracing.Trace {
	return tracing.Select("alab.driver")
}
