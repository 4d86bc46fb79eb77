package grammar

import (
	"fmt"
)

// EOF is the end marker. It is reserved and cannot appear in a grammar.
const EOF = "$"

// symbol numbers a grammar symbol. Terminals are positive and non-terminals negative, so the sign
// tells the kind, and the magnitude follows the order the symbol was registered in.
type symbol int

const (
	symbolNil   = symbol(0)
	symbolEOF   = symbol(1)
	symbolStart = symbol(-1)
)

func (s symbol) String() string {
	switch {
	case s == symbolNil:
		return "nil"
	case s == symbolEOF:
		return EOF
	case s == symbolStart:
		return "start"
	case s.isTerminal():
		return fmt.Sprintf("t%v", int(s))
	}
	return fmt.Sprintf("n%v", -int(s))
}

func (s symbol) isNil() bool {
	return s == symbolNil
}

func (s symbol) isTerminal() bool {
	return s > 0
}

func (s symbol) isNonTerminal() bool {
	return s < 0
}

func (s symbol) isEOF() bool {
	return s == symbolEOF
}

// isStart reports whether s is the start symbol of the augmented grammar.
func (s symbol) isStart() bool {
	return s == symbolStart
}

// symbolTable hands out numbers in registration order. The end marker and the augmented start
// symbol always take the first number of their kind.
type symbolTable struct {
	byText   map[string]symbol
	terms    []string
	nonTerms []string
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		byText: map[string]symbol{
			EOF: symbolEOF,
		},
		terms:    []string{"", EOF},
		nonTerms: []string{"", ""},
	}
}

func (t *symbolTable) registerStart(text string) (symbol, error) {
	if _, ok := t.byText[text]; ok {
		return symbolNil, fmt.Errorf("the augmented start symbol must be a fresh name: %v", text)
	}
	t.byText[text] = symbolStart
	t.nonTerms[-symbolStart] = text
	return symbolStart, nil
}

// registerNonTerminal returns the symbol already registered under text, if any.
func (t *symbolTable) registerNonTerminal(text string) symbol {
	if sym, ok := t.byText[text]; ok {
		return sym
	}
	sym := symbol(-len(t.nonTerms))
	t.nonTerms = append(t.nonTerms, text)
	t.byText[text] = sym
	return sym
}

func (t *symbolTable) registerTerminal(text string) symbol {
	if sym, ok := t.byText[text]; ok {
		return sym
	}
	sym := symbol(len(t.terms))
	t.terms = append(t.terms, text)
	t.byText[text] = sym
	return sym
}

func (t *symbolTable) lookup(text string) (symbol, bool) {
	sym, ok := t.byText[text]
	return sym, ok
}

func (t *symbolTable) text(sym symbol) string {
	switch {
	case sym.isTerminal() && int(sym) < len(t.terms):
		return t.terms[sym]
	case sym.isNonTerminal() && int(-sym) < len(t.nonTerms):
		return t.nonTerms[-sym]
	}
	return ""
}

// terminals returns the terminals in registration order, without the end marker.
func (t *symbolTable) terminals() []symbol {
	syms := make([]symbol, 0, len(t.terms)-2)
	for i := 2; i < len(t.terms); i++ {
		syms = append(syms, symbol(i))
	}
	return syms
}

// nonTerminals returns the non-terminals in registration order, without the augmented start
// symbol.
func (t *symbolTable) nonTerminals() []symbol {
	syms := make([]symbol, 0, len(t.nonTerms)-2)
	for i := 2; i < len(t.nonTerms); i++ {
		syms = append(syms, symbol(-i))
	}
	return syms
}
