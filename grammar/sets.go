package grammar

import (
	"sort"
)

// FirstFollow holds FIRST and FOLLOW of every non-terminal, rendered as ordered symbol lists.
// FIRST lists terminals in the chosen terminal order and ends with epsilon when the non-terminal
// derives the empty string. FOLLOW lists terminals the same way and ends with $.
type FirstFollow struct {
	First  map[string][]string
	Follow map[string][]string

	g      *Grammar
	order  SymbolOrder
	first  firstSets
	follow followSets
}

// ComputeFirstFollow runs the FIRST and FOLLOW fixpoints over the grammar. Computing them again
// on the same grammar yields the same sets.
func (g *Grammar) ComputeFirstFollow(order SymbolOrder) (*FirstFollow, error) {
	first, err := computeFirst(g.productionSet)
	if err != nil {
		return nil, err
	}
	follow, err := computeFollow(g.productionSet, first, g.startSymbol)
	if err != nil {
		return nil, err
	}

	ff := &FirstFollow{
		First:  map[string][]string{},
		Follow: map[string][]string{},
		g:      g,
		order:  order,
		first:  first,
		follow: follow,
	}
	for _, sym := range g.symbolTable.nonTerminals() {
		text := g.toText(sym)
		ff.First[text] = g.texts(first[sym], order)
		ff.Follow[text] = g.texts(follow[sym], order)
	}

	return ff, nil
}

// FirstOf returns FIRST of a sequence of grammar symbols.
func (ff *FirstFollow) FirstOf(seq []string) []string {
	syms := make([]symbol, 0, len(seq))
	for _, text := range seq {
		sym, ok := ff.g.symbolTable.lookup(text)
		if !ok {
			return nil
		}
		syms = append(syms, sym)
	}
	e, err := ff.first.ofSequence(syms)
	if err != nil {
		return nil
	}
	return ff.g.texts(e, ff.order)
}

// Nullable reports whether a non-terminal derives the empty string.
func (ff *FirstFollow) Nullable(nonTerminal string) bool {
	sym, ok := ff.g.symbolTable.lookup(nonTerminal)
	if !ok {
		return false
	}
	e, ok := ff.first[sym]
	return ok && e.epsilon
}

func (g *Grammar) terminalRank(order SymbolOrder) map[symbol]int {
	rank := map[symbol]int{}
	for i, text := range g.TerminalsWithEOF(order) {
		sym, _ := g.symbolTable.lookup(text)
		rank[sym] = i
	}
	return rank
}

func (g *Grammar) sortTerminals(syms []symbol, order SymbolOrder) []string {
	rank := g.terminalRank(order)
	sort.Slice(syms, func(i, j int) bool {
		return rank[syms[i]] < rank[syms[j]]
	})
	texts := make([]string, len(syms))
	for i, sym := range syms {
		texts[i] = g.toText(sym)
	}
	return texts
}

// texts renders a set in the given terminal order, followed by epsilon when the set holds it.
func (g *Grammar) texts(e *terminalSet, order SymbolOrder) []string {
	if e == nil {
		return nil
	}
	syms := make([]symbol, 0, len(e.syms))
	for sym := range e.syms {
		syms = append(syms, sym)
	}
	texts := g.sortTerminals(syms, order)
	if e.epsilon {
		texts = append(texts, EpsilonText)
	}
	return texts
}
