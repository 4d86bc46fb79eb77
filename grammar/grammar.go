package grammar

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	verr "github.com/nihei9/alab/error"
	mlspec "github.com/nihei9/maleeni/spec"
)

// Convention decides which tokens are non-terminals.
type Convention string

const (
	// ConventionDefault treats tokens starting with an uppercase letter or containing _ as non-terminals.
	ConventionDefault = Convention("default")
	// ConventionUppercase treats only tokens starting with an uppercase letter as non-terminals.
	ConventionUppercase = Convention("uppercase")
)

func ParseConvention(s string) (Convention, error) {
	switch Convention(s) {
	case ConventionDefault, ConventionUppercase:
		return Convention(s), nil
	case "":
		return ConventionDefault, nil
	}
	return "", fmt.Errorf("unknown non-terminal convention: %v (want default or uppercase)", s)
}

func (c Convention) IsNonTerminal(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	if unicode.IsUpper(r) {
		return true
	}
	return c != ConventionUppercase && strings.Contains(text, "_")
}

// SymbolOrder decides the order terminals are listed in.
type SymbolOrder string

const (
	// OrderDeclared lists terminals in the order they first appear.
	OrderDeclared = SymbolOrder("declared")
	// OrderLexical sorts terminals.
	OrderLexical = SymbolOrder("lexical")
)

func ParseSymbolOrder(s string) (SymbolOrder, error) {
	switch SymbolOrder(s) {
	case OrderDeclared, OrderLexical:
		return SymbolOrder(s), nil
	case "":
		return OrderDeclared, nil
	}
	return "", fmt.Errorf("unknown symbol order: %v (want declared or lexical)", s)
}

// EpsilonText denotes an empty body. ε is accepted as well.
const EpsilonText = "epsilon"

func isEpsilonText(text string) bool {
	return text == EpsilonText || text == "ε"
}

// Production is a production as written, numbered in the augmented grammar.
type Production struct {
	Num  int
	Head string
	Body []string
	Row  int
}

func (p *Production) IsEpsilon() bool {
	return len(p.Body) == 0
}

func (p *Production) String() string {
	if p.IsEpsilon() {
		return fmt.Sprintf("%v -> %v", p.Head, EpsilonText)
	}
	return fmt.Sprintf("%v -> %v", p.Head, strings.Join(p.Body, " "))
}

type Grammar struct {
	start          string
	augmentedStart string
	startSymbol    symbol
	symbolTable    *symbolTable
	productionSet  *productionSet
	productions    []*Production
	terminals      []string
	nonTerminals   []string
	warnings       []string
}

// Start returns the start symbol, the head of the first line.
func (g *Grammar) Start() string {
	return g.start
}

// AugmentedStart returns the fresh start symbol S' of the augmented grammar.
func (g *Grammar) AugmentedStart() string {
	return g.augmentedStart
}

// Productions returns the productions as written. Production i has number i+1.
func (g *Grammar) Productions() []*Production {
	return g.productions[1:]
}

// AugmentedProductions returns the productions of the augmented grammar. Production 0 is S' -> S.
func (g *Grammar) AugmentedProductions() []*Production {
	return g.productions
}

func (g *Grammar) Production(num int) (*Production, bool) {
	if num < 0 || num >= len(g.productions) {
		return nil, false
	}
	return g.productions[num], true
}

// ProductionsOf returns the productions of a non-terminal in the order they were written.
func (g *Grammar) ProductionsOf(head string) []*Production {
	var prods []*Production
	for _, p := range g.Productions() {
		if p.Head == head {
			prods = append(prods, p)
		}
	}
	return prods
}

// Terminals returns the terminals without the end marker.
func (g *Grammar) Terminals(order SymbolOrder) []string {
	terms := make([]string, len(g.terminals))
	copy(terms, g.terminals)
	if order == OrderLexical {
		sort.Strings(terms)
	}
	return terms
}

// TerminalsWithEOF returns the terminals followed by the end marker.
func (g *Grammar) TerminalsWithEOF(order SymbolOrder) []string {
	return append(g.Terminals(order), EOF)
}

// NonTerminals returns the non-terminals in the order their first production was written.
func (g *Grammar) NonTerminals() []string {
	nts := make([]string, len(g.nonTerminals))
	copy(nts, g.nonTerminals)
	return nts
}

func (g *Grammar) IsTerminal(text string) bool {
	sym, ok := g.symbolTable.lookup(text)
	return ok && sym.isTerminal()
}

func (g *Grammar) IsNonTerminal(text string) bool {
	sym, ok := g.symbolTable.lookup(text)
	return ok && sym.isNonTerminal() && !sym.isStart()
}

// Warnings returns notes on the grammar that do not prevent analysis.
func (g *Grammar) Warnings() []string {
	return g.warnings
}

func (g *Grammar) toText(sym symbol) string {
	return g.symbolTable.text(sym)
}

func (g *Grammar) toProduction(prod *production) *Production {
	return g.productions[prod.num.Int()]
}

type parseConfig struct {
	convention Convention
	sourceName string
}

type ParseOption func(c *parseConfig)

func WithConvention(c Convention) ParseOption {
	return func(cfg *parseConfig) {
		cfg.convention = c
	}
}

// WithSourceName names the grammar in error messages.
func WithSourceName(name string) ParseOption {
	return func(cfg *parseConfig) {
		cfg.sourceName = name
	}
}

type rawProduction struct {
	head *token
	body []*token
}

type parser struct {
	cfg  *parseConfig
	errs verr.SpecErrors
}

// Parse reads a grammar written one non-terminal per line as HEAD -> body | body ... where
// symbols are separated by whitespace. The head of the first line is the start symbol.
func Parse(src string, opts ...ParseOption) (*Grammar, error) {
	cfg := &parseConfig{
		convention: ConventionDefault,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	p := &parser{
		cfg: cfg,
	}

	toks, err := tokenize(src)
	if err != nil {
		if specErr, ok := err.(*verr.SpecError); ok {
			specErr.SourceName = cfg.sourceName
		}
		return nil, err
	}

	var raws []*rawProduction
	var line []*token
	for _, tok := range toks {
		if tok.kind != tokenKindNewline && tok.kind != tokenKindEOF {
			line = append(line, tok)
			continue
		}
		raws = append(raws, p.parseLine(line)...)
		line = nil
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	if len(raws) == 0 {
		return nil, &verr.SpecError{
			Cause:      synErrNoProduction,
			SourceName: cfg.sourceName,
		}
	}

	g, err := p.genGrammar(raws)
	if err != nil {
		return nil, err
	}

	tracer().Debugf("grammar parsed: %v productions, %v terminals, %v non-terminals",
		len(g.Productions()), len(g.terminals), len(g.nonTerminals))

	return g, nil
}

func (p *parser) errorAt(tok *token, cause error, detail string) {
	p.errs = append(p.errs, &verr.SpecError{
		Cause:      cause,
		Detail:     detail,
		SourceName: p.cfg.sourceName,
		Row:        tok.row,
		Col:        tok.col,
	})
}

// parseLine reads one line. An empty line yields nothing.
func (p *parser) parseLine(line []*token) []*rawProduction {
	if len(line) == 0 {
		return nil
	}
	head := line[0]
	if head.kind != tokenKindSymbol || len(line) < 2 || line[1].kind != tokenKindArrow {
		p.errorAt(head, synErrNoArrow, "")
		return nil
	}
	if !p.cfg.convention.IsNonTerminal(head.text) {
		p.errorAt(head, synErrInvalidHead, head.text)
		return nil
	}

	var raws []*rawProduction
	alt := []*token{}
	ok := true
	closeAlt := func(at *token) {
		if len(alt) == 0 {
			p.errorAt(at, synErrEmptyAlternative, "")
			ok = false
			return
		}
		var body []*token
		for _, tok := range alt {
			if isEpsilonText(tok.text) {
				if len(alt) > 1 {
					p.errorAt(tok, synErrEpsilonNotAlone, "")
					ok = false
					return
				}
				continue
			}
			body = append(body, tok)
		}
		raws = append(raws, &rawProduction{
			head: head,
			body: body,
		})
	}
	rest := line[2:]
	for i, tok := range rest {
		switch tok.kind {
		case tokenKindArrow:
			p.errorAt(tok, synErrUnexpectedArrow, "")
			return nil
		case tokenKindOr:
			closeAlt(tok)
			alt = []*token{}
		default:
			if tok.text == EOF {
				p.errorAt(tok, synErrReservedSymbol, "")
				return nil
			}
			alt = append(alt, tok)
		}
		if !ok {
			return nil
		}
		if i == len(rest)-1 {
			closeAlt(tok)
		}
	}
	if len(rest) == 0 {
		closeAlt(line[1])
	}
	if !ok {
		return nil
	}
	return raws
}

func (p *parser) genGrammar(raws []*rawProduction) (*Grammar, error) {
	conv := p.cfg.convention

	heads := map[string]struct{}{}
	var nonTerms []string
	for _, raw := range raws {
		if _, ok := heads[raw.head.text]; ok {
			continue
		}
		heads[raw.head.text] = struct{}{}
		nonTerms = append(nonTerms, raw.head.text)
	}

	// Every non-terminal used in a body needs a production.
	texts := map[string]struct{}{}
	var ids []string
	for _, raw := range raws {
		if _, ok := texts[raw.head.text]; !ok {
			texts[raw.head.text] = struct{}{}
			ids = append(ids, raw.head.text)
		}
		for _, tok := range raw.body {
			if _, ok := texts[tok.text]; !ok {
				texts[tok.text] = struct{}{}
				ids = append(ids, tok.text)
			}
			if !conv.IsNonTerminal(tok.text) {
				continue
			}
			if _, ok := heads[tok.text]; !ok {
				p.errorAt(tok, synErrUndefinedNonTerminal, tok.text)
				heads[tok.text] = struct{}{}
			}
		}
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}

	start := raws[0].head.text
	augStart := start + "'"
	for {
		if _, ok := texts[augStart]; !ok {
			break
		}
		augStart += "'"
	}

	symTab := newSymbolTable()
	startSym, err := symTab.registerStart(augStart)
	if err != nil {
		return nil, err
	}
	for _, nt := range nonTerms {
		symTab.registerNonTerminal(nt)
	}
	var terms []string
	for _, raw := range raws {
		for _, tok := range raw.body {
			if conv.IsNonTerminal(tok.text) {
				continue
			}
			if _, ok := symTab.lookup(tok.text); ok {
				continue
			}
			symTab.registerTerminal(tok.text)
			terms = append(terms, tok.text)
		}
	}

	userStart, _ := symTab.lookup(start)
	prods := newProductionSet()
	augProd, err := newProduction(startSym, []symbol{userStart})
	if err != nil {
		return nil, err
	}
	prods.append(augProd)
	productions := []*Production{
		{
			Num:  productionNumStart.Int(),
			Head: augStart,
			Body: []string{start},
		},
	}

	for _, raw := range raws {
		lhs, _ := symTab.lookup(raw.head.text)
		rhs := make([]symbol, len(raw.body))
		body := make([]string, len(raw.body))
		for i, tok := range raw.body {
			rhs[i], _ = symTab.lookup(tok.text)
			body[i] = tok.text
		}
		prod, err := newProduction(lhs, rhs)
		if err != nil {
			return nil, err
		}
		prod.row = raw.head.row
		if !prods.append(prod) {
			p.errorAt(raw.head, synErrDuplicateProduction, (&Production{Head: raw.head.text, Body: body}).String())
			continue
		}
		productions = append(productions, &Production{
			Num:  prod.num.Int(),
			Head: raw.head.text,
			Body: body,
			Row:  raw.head.row,
		})
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}

	var warnings []string
	for _, dup := range mlspec.FindSpellingInconsistencies(ids) {
		warnings = append(warnings, fmt.Sprintf("these symbols are spelled the same in UpperCamelCase; they may be typos: %v", strings.Join(dup, ", ")))
	}

	return &Grammar{
		start:          start,
		augmentedStart: augStart,
		startSymbol:    userStart,
		symbolTable:    symTab,
		productionSet:  prods,
		productions:    productions,
		terminals:      terms,
		nonTerminals:   nonTerms,
		warnings:       warnings,
	}, nil
}
