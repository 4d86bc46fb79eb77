package driver

import (
	verr "github.com/nihei9/alab/error"
)

var (
	synErrInvalidToken = verr.NewCause(verr.ErrInputSyntax, "no terminal matches the input")
	synErrNotLL1       = verr.NewCause(verr.ErrInputSyntax, "the grammar is not LL(1)")
	synErrNotSLR1      = verr.NewCause(verr.ErrInputSyntax, "the grammar is not SLR(1)")

	synErrTerminalPattern = verr.NewCause(verr.ErrInputSyntax, "the terminals cannot be compiled into a tokenizer")
)
