package regex

import (
	"unicode"
)

type tokenKind string

const (
	tokenKindChar       tokenKind = "char"
	tokenKindEpsilon    tokenKind = "ε"
	tokenKindRepeat     tokenKind = "*"
	tokenKindAlt        tokenKind = "|"
	tokenKindGroupOpen  tokenKind = "("
	tokenKindGroupClose tokenKind = ")"
	tokenKindEOF        tokenKind = "eof"
)

type token struct {
	kind tokenKind
	char rune
	pos  int
}

func newToken(kind tokenKind, char rune, pos int) *token {
	return &token{
		kind: kind,
		char: char,
		pos:  pos,
	}
}

// Operators of full regular expressions that this package does not support.
var unsupportedOperators = map[rune]struct{}{
	'+':  {},
	'?':  {},
	'.':  {},
	'[':  {},
	']':  {},
	'{':  {},
	'}':  {},
	'\\': {},
}

type lexer struct {
	src []rune
	pos int

	errCause  error
	errDetail string
	errPos    int
}

func newLexer(src string) *lexer {
	return &lexer{
		src: []rune(src),
	}
}

func (l *lexer) error() (string, error, int) {
	return l.errDetail, l.errCause, l.errPos
}

// next returns the next token. Positions count characters from 1.
func (l *lexer) next() (*token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return newToken(tokenKindEOF, 0, l.pos+1), nil
	}

	c := l.src[l.pos]
	l.pos++
	pos := l.pos

	switch c {
	case '*':
		return newToken(tokenKindRepeat, c, pos), nil
	case '|':
		return newToken(tokenKindAlt, c, pos), nil
	case '(':
		return newToken(tokenKindGroupOpen, c, pos), nil
	case ')':
		return newToken(tokenKindGroupClose, c, pos), nil
	case 'ε':
		return newToken(tokenKindEpsilon, c, pos), nil
	}
	if _, ok := unsupportedOperators[c]; ok {
		l.errCause = synErrUnsupportedOperator
		l.errDetail = string(c)
		l.errPos = pos
		return nil, ParseErr
	}
	return newToken(tokenKindChar, c, pos), nil
}
