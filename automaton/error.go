package automaton

import (
	verr "github.com/nihei9/alab/error"
)

var (
	synErrEpsilonInAlphabet   = verr.NewCause(verr.ErrInputSyntax, "epsilon cannot be a member of an alphabet")
	synErrEmptyAlphabet       = verr.NewCause(verr.ErrInputSyntax, "an alphabet needs at least one symbol")
	synErrNoState             = verr.NewCause(verr.ErrInputSyntax, "an automaton needs at least one state")
	synErrDuplicateState      = verr.NewCause(verr.ErrInputSyntax, "duplicate state")
	synErrUndefinedState      = verr.NewCause(verr.ErrInputSyntax, "undefined state")
	synErrNoStartState        = verr.NewCause(verr.ErrInputSyntax, "an automaton needs a start state")
	synErrNonDeterministic    = verr.NewCause(verr.ErrInputSyntax, "a DFA allows at most one transition per state and symbol")
	synErrEpsilonInDFA        = verr.NewCause(verr.ErrInputSyntax, "a DFA cannot have epsilon transitions")
	semErrSymbolNotInAlphabet = verr.NewCause(verr.ErrAlphabetMismatch, "symbol is not in the alphabet")
)
