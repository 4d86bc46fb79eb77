package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nihei9/alab/automaton"
	"github.com/nihei9/alab/driver"
	verr "github.com/nihei9/alab/error"
	"github.com/nihei9/alab/grammar"
	"github.com/nihei9/alab/regex"
	"github.com/nihei9/alab/render"
	"github.com/nihei9/alab/spec"
	"github.com/nihei9/alab/strdfa"
	"github.com/nihei9/alab/subset"
)

var (
	synErrNoNFA          = verr.NewCause(verr.ErrInputSyntax, "an nfa is required")
	synErrUnknownMethod  = verr.NewCause(verr.ErrInputSyntax, "unknown parse method; want ll1 or slr1")
	synErrTableConflicts = verr.NewCause(verr.ErrInputSyntax, "the parsing table has conflicts")
)

// Engine serves the analysis operations. It holds no per-request state, so one Engine can serve
// concurrent requests.
type Engine struct {
	config   Config
	renderer render.Renderer
}

type Option func(e *Engine)

// WithRenderer replaces the renderer the configuration selects.
func WithRenderer(r render.Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

func New(c *Config, opts ...Option) *Engine {
	if c == nil {
		c = DefaultConfig()
	}
	e := &Engine{
		config:   *c,
		renderer: render.New(c.Renderer),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Config() Config {
	return e.config
}

func (e *Engine) alphabet(a *automaton.Alphabet) *automaton.Alphabet {
	if e.config.SymbolOrder == grammar.OrderLexical {
		return a.Sorted()
	}
	return a
}

func (e *Engine) render(ctx context.Context, g *automaton.Graph) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.renderer.Render(ctx, g)
}

// BuildStringDFA builds the DFA over an alphabet that accepts exactly one string.
func (e *Engine) BuildStringDFA(ctx context.Context, req *spec.GenerateDFARequest) (*spec.DFAResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, err := automaton.ParseAlphabet(req.Alphabet)
	if err != nil {
		return nil, err
	}
	var target []automaton.Symbol
	for _, r := range req.AcceptString {
		target = append(target, automaton.Symbol(string(r)))
	}
	dfa, err := strdfa.Build(e.alphabet(a), target)
	if err != nil {
		return nil, err
	}

	img, err := e.render(ctx, dfa.Graph(fmt.Sprintf("DFA accepting '%v'", req.AcceptString)))
	if err != nil {
		return nil, err
	}

	tracer().Infof("string DFA built: target %q, %v states", req.AcceptString, len(dfa.States()))

	return &spec.DFAResponse{
		DFA:        DFADocument(dfa),
		GraphImage: img,
	}, nil
}

// BuildRegexNFA compiles a regular expression into an NFA by Thompson's construction.
func (e *Engine) BuildRegexNFA(ctx context.Context, req *spec.GenerateNFARequest) (*spec.NFAResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nfa, tree, err := regex.NewNFA(req.Regex, e.config.MaxStates)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("regex syntax tree: %v", tree)

	img, err := e.render(ctx, nfa.Graph(fmt.Sprintf("NFA for regex '%v'", req.Regex)))
	if err != nil {
		return nil, err
	}

	tracer().Infof("regex NFA built: %q, %v states", req.Regex, len(nfa.States()))

	doc := NFADocument(nfa)
	doc.Alphabet = symbolTexts(e.alphabet(nfa.Alphabet()))
	return &spec.NFAResponse{
		NFA:        doc,
		GraphImage: img,
	}, nil
}

// ConvertNFA turns an NFA into an equivalent DFA by subset construction.
func (e *Engine) ConvertNFA(ctx context.Context, req *spec.NFAToDFARequest) (*spec.DFAResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.NFA == nil {
		return nil, &verr.SpecError{
			Cause: synErrNoNFA,
		}
	}
	nfa, err := automaton.NewNFA(&automaton.NFADefinition{
		States:      req.NFA.States,
		Alphabet:    req.NFA.Alphabet,
		Transitions: req.NFA.Transitions,
		Start:       req.NFA.StartState,
		Finals:      req.NFA.FinalStates,
	})
	if err != nil {
		return nil, err
	}
	res, err := subset.Determinize(nfa,
		subset.MaxStates(e.config.MaxStates),
		subset.WithAlphabet(e.alphabet(nfa.Alphabet())))
	if err != nil {
		return nil, err
	}

	img, err := e.render(ctx, res.DFA.Graph("Equivalent DFA"))
	if err != nil {
		return nil, err
	}

	return &spec.DFAResponse{
		DFA:        DFADocument(res.DFA),
		GraphImage: img,
	}, nil
}

func (e *Engine) parseGrammar(src string) (*grammar.Grammar, error) {
	return grammar.Parse(src, grammar.WithConvention(e.config.NonTerminal))
}

// AnalyzeLL1 computes FIRST and FOLLOW and the LL(1) table of a grammar. A conflicting cell lists
// every candidate production joined by " / ".
func (e *Engine) AnalyzeLL1(ctx context.Context, req *spec.GrammarRequest) (*spec.LL1Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g, err := e.parseGrammar(req.Grammar)
	if err != nil {
		return nil, err
	}
	tab, err := grammar.AnalyzeLL1(g, e.config.SymbolOrder)
	if err != nil {
		return nil, err
	}

	res := &spec.LL1Response{
		FirstSets:    tab.Sets.First,
		FollowSets:   tab.Sets.Follow,
		Terminals:    tab.Terminals,
		NonTerminals: tab.NonTerminals,
		ParseTable:   map[string]map[string]string{},
		Conflicts:    []*spec.LL1Conflict{},
		IsLL1:        tab.IsLL1(),
		Warnings:     g.Warnings(),
	}
	for _, nt := range tab.NonTerminals {
		row := map[string]string{}
		for _, term := range tab.Terminals {
			prods := tab.Candidates(nt, term)
			if len(prods) == 0 {
				continue
			}
			row[term] = joinProductions(prods)
		}
		res.ParseTable[nt] = row
	}
	for _, c := range tab.Conflicts {
		prods := make([]string, len(c.Productions))
		for i, p := range c.Productions {
			prods[i] = p.String()
		}
		res.Conflicts = append(res.Conflicts, &spec.LL1Conflict{
			NonTerminal: c.NonTerminal,
			Terminal:    c.Terminal,
			Productions: prods,
		})
	}

	tracer().Infof("LL(1) analysis: %v non-terminals, %v conflicts", len(tab.NonTerminals), len(tab.Conflicts))

	return res, nil
}

func joinProductions(prods []*grammar.Production) string {
	texts := make([]string, len(prods))
	for i, p := range prods {
		texts[i] = p.String()
	}
	return strings.Join(texts, " / ")
}

// StateLabel names an LR(0) state the way item_sets does.
func StateLabel(num int) string {
	return fmt.Sprintf("I%v", num)
}

// AnalyzeSLR builds the canonical LR(0) collection and the SLR(1) table of a grammar. ACTION and
// GOTO share parse_table: terminal columns hold actions, non-terminal columns hold state numbers.
func (e *Engine) AnalyzeSLR(ctx context.Context, req *spec.GrammarRequest) (*spec.SLRResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g, err := e.parseGrammar(req.Grammar)
	if err != nil {
		return nil, err
	}
	tab, err := grammar.AnalyzeSLR(g, e.config.SymbolOrder, e.config.MaxStates)
	if err != nil {
		return nil, err
	}

	res := &spec.SLRResponse{
		ItemSets:     map[string][]string{},
		Terminals:    tab.Terminals,
		NonTerminals: tab.NonTerminals,
		ParseTable:   map[string]map[string]string{},
		Conflicts:    []*spec.SLRConflict{},
		IsSLR1:       tab.IsSLR1(),
		Warnings:     g.Warnings(),
	}
	for _, p := range tab.Productions {
		res.Productions = append(res.Productions, p.String())
	}
	for _, s := range tab.States {
		items := make([]string, len(s.Items))
		for i, item := range s.Items {
			items[i] = item.String()
		}
		res.ItemSets[StateLabel(s.Num)] = items

		row := map[string]string{}
		for _, term := range tab.Terminals {
			acts := tab.Actions(s.Num, term)
			if len(acts) == 0 {
				continue
			}
			texts := make([]string, len(acts))
			for i, a := range acts {
				texts[i] = a.String()
			}
			row[term] = strings.Join(texts, " / ")
		}
		for _, nt := range tab.NonTerminals {
			if next, ok := tab.Goto(s.Num, nt); ok {
				row[nt] = strconv.Itoa(next)
			}
		}
		res.ParseTable[strconv.Itoa(s.Num)] = row
	}
	for _, c := range tab.Conflicts {
		acts := make([]string, len(c.Actions))
		for i, a := range c.Actions {
			acts[i] = a.String()
		}
		res.Conflicts = append(res.Conflicts, &spec.SLRConflict{
			Kind:    string(c.Kind),
			State:   c.State,
			Symbol:  c.Symbol,
			Actions: acts,
		})
	}

	tracer().Infof("SLR(1) analysis: %v states, %v conflicts", len(tab.States), len(tab.Conflicts))

	return res, nil
}

// Parse runs the LL(1) or the SLR(1) driver over a sentence. A rejected sentence is a successful
// response with accepted set to false; a grammar whose table has conflicts is an error.
func (e *Engine) Parse(ctx context.Context, req *spec.ParseRequest) (*spec.ParseResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := e.newSentenceParser(req.Grammar, req.Method)
	if err != nil {
		return nil, err
	}
	result, err := p.parse(req.Input)
	if err != nil {
		return nil, err
	}
	return ParseDocument(result), nil
}

type sentenceParser struct {
	tokenizer *driver.Tokenizer
	run       func(toks []*driver.Token) (*driver.Result, error)
}

func (e *Engine) newSentenceParser(src string, method spec.ParseMethod) (*sentenceParser, error) {
	g, err := e.parseGrammar(src)
	if err != nil {
		return nil, err
	}

	p := &sentenceParser{}
	switch method {
	case spec.ParseMethodLL1:
		tab, err := grammar.AnalyzeLL1(g, e.config.SymbolOrder)
		if err != nil {
			return nil, err
		}
		if !tab.IsLL1() {
			return nil, &verr.SpecError{
				Cause:  synErrTableConflicts,
				Detail: tab.Conflicts[0].String(),
			}
		}
		p.run = func(toks []*driver.Token) (*driver.Result, error) {
			return driver.ParseLL1(tab, toks)
		}
	case spec.ParseMethodSLR1:
		tab, err := grammar.AnalyzeSLR(g, e.config.SymbolOrder, e.config.MaxStates)
		if err != nil {
			return nil, err
		}
		if !tab.IsSLR1() {
			return nil, &verr.SpecError{
				Cause:  synErrTableConflicts,
				Detail: tab.Conflicts[0].String(),
			}
		}
		p.run = func(toks []*driver.Token) (*driver.Result, error) {
			return driver.ParseSLR(tab, toks, nil)
		}
	default:
		return nil, &verr.SpecError{
			Cause:  synErrUnknownMethod,
			Detail: string(method),
		}
	}

	p.tokenizer, err = driver.NewTokenizer(g)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *sentenceParser) parse(src string) (*driver.Result, error) {
	toks, err := p.tokenizer.TokenizeString(src)
	if err != nil {
		return nil, err
	}
	return p.run(toks)
}

// Recognize implements tester.Recognizer over the sentences of a grammar.
func (p *sentenceParser) Recognize(word string) (bool, error) {
	result, err := p.parse(word)
	if err != nil {
		return false, err
	}
	return result.Accepted, nil
}
