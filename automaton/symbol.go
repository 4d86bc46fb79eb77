package automaton

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	verr "github.com/nihei9/alab/error"
)

// Symbol is an atomic input symbol. The empty symbol is epsilon and never belongs to an alphabet.
type Symbol string

const Epsilon Symbol = ""

// EpsilonText is how epsilon is spelled in documents and diagrams.
const EpsilonText = "ε"

func (s Symbol) IsEpsilon() bool {
	return s == Epsilon
}

func (s Symbol) String() string {
	if s.IsEpsilon() {
		return EpsilonText
	}
	return string(s)
}

// Alphabet is an ordered set of symbols. The order is the declared order unless the alphabet
// was sorted.
type Alphabet struct {
	symbols []Symbol
	index   map[Symbol]int
}

// NewAlphabet returns an alphabet of the given symbols in the given order. Repeated symbols are
// collapsed to their first occurrence.
func NewAlphabet(symbols ...Symbol) (*Alphabet, error) {
	a := &Alphabet{
		index: map[Symbol]int{},
	}
	for _, sym := range symbols {
		if sym.IsEpsilon() || sym == EpsilonText {
			return nil, &verr.SpecError{
				Cause: synErrEpsilonInAlphabet,
			}
		}
		if _, ok := a.index[sym]; ok {
			continue
		}
		a.index[sym] = len(a.symbols)
		a.symbols = append(a.symbols, sym)
	}
	return a, nil
}

// ParseAlphabet reads an alphabet written as a string where every non-space character is
// a symbol, e.g. "ab" or "a b".
func ParseAlphabet(src string) (*Alphabet, error) {
	var syms []Symbol
	for _, r := range src {
		if unicode.IsSpace(r) {
			continue
		}
		syms = append(syms, Symbol(string(r)))
	}
	if len(syms) == 0 {
		return nil, &verr.SpecError{
			Cause: synErrEmptyAlphabet,
		}
	}
	return NewAlphabet(syms...)
}

func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Symbols returns the symbols in alphabet order.
func (a *Alphabet) Symbols() []Symbol {
	syms := make([]Symbol, len(a.symbols))
	copy(syms, a.symbols)
	return syms
}

func (a *Alphabet) Contains(sym Symbol) bool {
	_, ok := a.index[sym]
	return ok
}

// Index returns the position of a symbol in the alphabet, or -1.
func (a *Alphabet) Index(sym Symbol) int {
	i, ok := a.index[sym]
	if !ok {
		return -1
	}
	return i
}

// Sorted returns a copy of the alphabet in lexical order.
func (a *Alphabet) Sorted() *Alphabet {
	syms := a.Symbols()
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	b, _ := NewAlphabet(syms...)
	return b
}

func (a *Alphabet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, sym := range a.symbols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(sym))
	}
	b.WriteString("}")
	return b.String()
}

// Tokenize splits a word into alphabet symbols. Symbols may span several characters; the
// longest symbol matching at a position wins. Whitespace between symbols is ignored.
func (a *Alphabet) Tokenize(word string) ([]Symbol, error) {
	maxLen := 0
	for _, sym := range a.symbols {
		if len(sym) > maxLen {
			maxLen = len(sym)
		}
	}

	var syms []Symbol
	pos := 1
	for i := 0; i < len(word); {
		r, size := utf8.DecodeRuneInString(word[i:])
		if unicode.IsSpace(r) {
			i += size
			pos++
			continue
		}
		matched := ""
		for l := maxLen; l > 0; l-- {
			if i+l > len(word) {
				continue
			}
			if a.Contains(Symbol(word[i : i+l])) {
				matched = word[i : i+l]
				break
			}
		}
		if matched == "" {
			return nil, &verr.SpecError{
				Cause:  semErrSymbolNotInAlphabet,
				Detail: fmt.Sprintf("%q is not in %v", string(r), a),
				Col:    pos,
			}
		}
		syms = append(syms, Symbol(matched))
		i += len(matched)
		pos += utf8.RuneCountInString(matched)
	}
	return syms, nil
}
