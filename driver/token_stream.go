package driver

import (
	"fmt"
	"io"
	"strings"

	verr "github.com/nihei9/alab/error"
	"github.com/nihei9/alab/grammar"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

const (
	lexSpecName        = "alab"
	kindNameWhiteSpace = "white_space"
)

// Token is a terminal read from a sentence. Row and Col are 1-based.
type Token struct {
	Terminal string
	Text     string
	Row      int
	Col      int
	EOF      bool
}

func (t *Token) String() string {
	if t.EOF {
		return grammar.EOF
	}
	return t.Terminal
}

// Tokenizer splits sentences into the terminals of a grammar. Every terminal is matched literally;
// the longest match wins and whitespace between terminals is skipped.
type Tokenizer struct {
	spec      *mlspec.CompiledLexSpec
	kind2Term map[string]string
}

func NewTokenizer(g *grammar.Grammar) (*Tokenizer, error) {
	entries := []*mlspec.LexEntry{
		{
			Kind:    mlspec.LexKindName(kindNameWhiteSpace),
			Pattern: mlspec.LexPattern(`[\u{0009}\u{000A}\u{000D}\u{0020}]+`),
		},
	}
	kind2Term := map[string]string{}
	for i, term := range g.Terminals(grammar.OrderDeclared) {
		kind := fmt.Sprintf("t_%v", i+1)
		kind2Term[kind] = term
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(kind),
			Pattern: mlspec.LexPattern(mlspec.EscapePattern(term)),
		})
	}

	spec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Name:    lexSpecName,
		Entries: entries,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		detail := err.Error()
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0], kind2Term)
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr, kind2Term)
			}
			detail = b.String()
		}
		return nil, &verr.SpecError{
			Cause:  synErrTerminalPattern,
			Detail: detail,
		}
	}

	return &Tokenizer{
		spec:      spec,
		kind2Term: kind2Term,
	}, nil
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError, kind2Term map[string]string) {
	kind := cErr.Kind.String()
	if term, ok := kind2Term[kind]; ok {
		kind = term
	}
	fmt.Fprintf(w, "%v: %v", kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

// Tokenize reads a whole sentence. The last token is always the end marker. A character no
// terminal matches fails with an InputSyntax error at its position.
func (t *Tokenizer) Tokenize(src io.Reader) ([]*Token, error) {
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(t.spec), src)
	if err != nil {
		return nil, err
	}

	var toks []*Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			toks = append(toks, &Token{
				Terminal: grammar.EOF,
				Row:      tok.Row + 1,
				Col:      tok.Col + 1,
				EOF:      true,
			})
			break
		}
		if tok.Invalid {
			return nil, &verr.SpecError{
				Cause:  synErrInvalidToken,
				Detail: string(tok.Lexeme),
				Row:    tok.Row + 1,
				Col:    tok.Col + 1,
			}
		}
		kind := t.spec.KindNames[tok.KindID].String()
		if kind == kindNameWhiteSpace {
			continue
		}
		toks = append(toks, &Token{
			Terminal: t.kind2Term[kind],
			Text:     string(tok.Lexeme),
			Row:      tok.Row + 1,
			Col:      tok.Col + 1,
		})
	}

	tracer().Debugf("%v tokens read", len(toks)-1)

	return toks, nil
}

// TokenizeString reads a sentence held in a string.
func (t *Tokenizer) TokenizeString(src string) ([]*Token, error) {
	return t.Tokenize(strings.NewReader(src))
}
