/*
Package engine serves the analysis operations over the request and response documents of package
spec: a DFA accepting one string, a Thompson NFA of a regular expression, subset construction of a
given NFA, LL(1) and SLR(1) tables of a grammar, and parsing a sentence with either table.

Every operation is deterministic. Errors belong to the classes of package error, so callers can
report them with error.ClassName.
*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alab.engine'
func tracer() tracing.Trace {
	return tracing.Select("alab.engine")
}
