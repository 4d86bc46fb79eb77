package grammar

import (
	verr "github.com/nihei9/alab/error"
)

var (
	// syntax errors
	synErrNoProduction         = verr.NewCause(verr.ErrInputSyntax, "a grammar needs at least one production")
	synErrNoArrow              = verr.NewCause(verr.ErrInputSyntax, "a production must be written as HEAD -> body | body ...")
	synErrUnexpectedArrow      = verr.NewCause(verr.ErrInputSyntax, "a line can contain only one ->")
	synErrInvalidHead          = verr.NewCause(verr.ErrInputSyntax, "the head of a production must be a non-terminal")
	synErrEmptyAlternative     = verr.NewCause(verr.ErrInputSyntax, "an alternative needs at least one symbol; write epsilon for an empty body")
	synErrEpsilonNotAlone      = verr.NewCause(verr.ErrInputSyntax, "epsilon must stand alone in an alternative")
	synErrReservedSymbol       = verr.NewCause(verr.ErrInputSyntax, "$ is reserved for the end marker")
	synErrUndefinedNonTerminal = verr.NewCause(verr.ErrInputSyntax, "a non-terminal has no production")
	synErrDuplicateProduction  = verr.NewCause(verr.ErrInputSyntax, "duplicate production")
	synErrInvalidToken         = verr.NewCause(verr.ErrInputSyntax, "invalid token")

	// semantic errors
	semErrLeftRecursion = verr.NewCause(verr.ErrLeftRecursion, "the grammar is left-recursive")
	semErrTooManyStates = verr.NewCause(verr.ErrResourceExhaustion, "the LR(0) collection exceeds the state limit")
)
