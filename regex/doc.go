// Package regex parses restricted regular expressions and compiles them into NFAs by Thompson's
// construction.
package regex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alab.regex'
func tracer() tracing.Trace {
	return tracing.Select("alab.regex")
}
