package regex

import (
	"fmt"

	verr "github.com/nihei9/alab/error"
)

var (
	ParseErr = fmt.Errorf("parse error")

	// lexical errors
	synErrUnsupportedOperator = verr.NewCause(verr.ErrInputSyntax, "unsupported operator; only |, *, ( ) and ε are available")

	// syntax errors
	synErrUnexpectedToken  = verr.NewCause(verr.ErrInputSyntax, "unexpected token")
	synErrNullPattern      = verr.NewCause(verr.ErrInputSyntax, "a regular expression must not be empty")
	synErrAltLackOfOperand = verr.NewCause(verr.ErrInputSyntax, "an alternation expression must have operands")
	synErrRepNoTarget      = verr.NewCause(verr.ErrInputSyntax, "a repeat expression must have an operand")
	synErrGroupNoElem      = verr.NewCause(verr.ErrInputSyntax, "a grouping expression must include at least one symbol")
	synErrGroupUnclosed    = verr.NewCause(verr.ErrInputSyntax, "unclosed grouping expression")
	synErrGroupNoInitiator = verr.NewCause(verr.ErrInputSyntax, ") needs preceding (")

	semErrTooManyStates = verr.NewCause(verr.ErrResourceExhaustion, "the automaton exceeds the state limit")
)
