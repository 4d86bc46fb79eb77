package grammar

import (
	"fmt"
	"strings"
	"sync"

	verr "github.com/nihei9/alab/error"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type tokenKind int

const (
	tokenKindSymbol tokenKind = iota
	tokenKindArrow
	tokenKindOr
	tokenKindNewline
	tokenKindEOF
)

func (k tokenKind) String() string {
	switch k {
	case tokenKindSymbol:
		return "symbol"
	case tokenKindArrow:
		return "->"
	case tokenKindOr:
		return "|"
	case tokenKindNewline:
		return "newline"
	case tokenKindEOF:
		return "eof"
	}
	return fmt.Sprintf("tokenKind(%v)", int(k))
}

type token struct {
	kind tokenKind
	text string
	row  int
	col  int
}

var (
	lexerOnce    sync.Once
	lexerMachine *lexmachine.Lexer
	lexerErr     error
)

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(kind tokenKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), string(m.Bytes), m), nil
	}
}

// grammarLexer returns the compiled lexer of grammar lines. The DFA is compiled once and shared;
// every call to Scanner gets its own state.
func grammarLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lex := lexmachine.NewLexer()
		lex.Add([]byte(`->`), makeToken(tokenKindArrow))
		lex.Add([]byte(`\|`), makeToken(tokenKindOr))
		lex.Add([]byte(`\n`), makeToken(tokenKindNewline))
		lex.Add([]byte(`( |\t|\r)+`), skip)
		lex.Add([]byte("[^ \t\r\n|]+"), makeToken(tokenKindSymbol))
		if err := lex.Compile(); err != nil {
			tracer().Errorf("error compiling the grammar lexer: %v", err)
			lexerErr = err
			return
		}
		lexerMachine = lex
	})
	return lexerMachine, lexerErr
}

// tokenize splits grammar text into tokens. A longest match wins, and between matches of the same
// length the pattern added first wins, so a lone -> is an arrow. An arrow glued to symbols, as in
// S->a, is split out of the symbol by splitArrows.
func tokenize(src string) ([]*token, error) {
	lex, err := grammarLexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lex.Scanner([]byte(src))
	if err != nil {
		return nil, err
	}

	var toks []*token
	row, col := 1, 0
	for {
		tok, err, eof := scanner.Next()
		if err != nil {
			return nil, &verr.SpecError{
				Cause:  synErrInvalidToken,
				Detail: err.Error(),
				Row:    row,
			}
		}
		if eof {
			break
		}
		t := tok.(*lexmachine.Token)
		col = t.StartColumn
		if tokenKind(t.Type) == tokenKindSymbol {
			toks = append(toks, splitArrows(string(t.Lexeme), row, col)...)
			continue
		}
		toks = append(toks, &token{
			kind: tokenKind(t.Type),
			text: string(t.Lexeme),
			row:  row,
			col:  col,
		})
		if tokenKind(t.Type) == tokenKindNewline {
			row++
		}
	}
	toks = append(toks, &token{
		kind: tokenKindEOF,
		row:  row,
		col:  col,
	})
	return toks, nil
}

// splitArrows cuts a symbol lexeme at every ->, so S->a reads as S, -> and a.
func splitArrows(text string, row, col int) []*token {
	var toks []*token
	for {
		i := strings.Index(text, "->")
		if i < 0 {
			break
		}
		if i > 0 {
			toks = append(toks, &token{
				kind: tokenKindSymbol,
				text: text[:i],
				row:  row,
				col:  col,
			})
		}
		toks = append(toks, &token{
			kind: tokenKindArrow,
			text: "->",
			row:  row,
			col:  col + i,
		})
		text = text[i+2:]
		col += i + 2
	}
	if text != "" {
		toks = append(toks, &token{
			kind: tokenKindSymbol,
			text: text,
			row:  row,
			col:  col,
		})
	}
	return toks
}
