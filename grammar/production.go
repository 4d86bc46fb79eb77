package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// productionNum is the index of a production in the augmented grammar. S' -> S is number 0, and
// the productions written by the user follow in the order they were written.
type productionNum int

const productionNumStart = productionNum(0)

func (n productionNum) Int() int {
	return int(n)
}

type production struct {
	num  productionNum
	lhs  symbol
	rhs  []symbol
	row  int
	text string
}

func newProduction(lhs symbol, rhs []symbol) (*production, error) {
	if !lhs.isNonTerminal() {
		return nil, fmt.Errorf("the head of a production must be a non-terminal: %v", lhs)
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(lhs)))
	b.WriteString(":")
	for _, sym := range rhs {
		if sym.isNil() {
			return nil, fmt.Errorf("the body of a production cannot contain the nil symbol: %v -> %v", lhs, rhs)
		}
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(int(sym)))
	}
	return &production{
		lhs:  lhs,
		rhs:  rhs,
		text: b.String(),
	}, nil
}

func (p *production) isEmpty() bool {
	return len(p.rhs) == 0
}

// productionSet numbers productions in the order they are appended and rejects duplicates.
// S' -> S must be appended first.
type productionSet struct {
	all    []*production
	byHead map[symbol][]*production
	known  map[string]struct{}
}

func newProductionSet() *productionSet {
	return &productionSet{
		byHead: map[symbol][]*production{},
		known:  map[string]struct{}{},
	}
}

// append reports false when the same production is already in the set.
func (ps *productionSet) append(prod *production) bool {
	if _, ok := ps.known[prod.text]; ok {
		return false
	}
	ps.known[prod.text] = struct{}{}
	prod.num = productionNum(len(ps.all))
	ps.all = append(ps.all, prod)
	ps.byHead[prod.lhs] = append(ps.byHead[prod.lhs], prod)
	return true
}

func (ps *productionSet) of(head symbol) []*production {
	return ps.byHead[head]
}

// heads returns every non-terminal with a production, in the order of its first production.
func (ps *productionSet) heads() []symbol {
	var heads []symbol
	seen := map[symbol]struct{}{}
	for _, prod := range ps.all {
		if _, ok := seen[prod.lhs]; ok {
			continue
		}
		seen[prod.lhs] = struct{}{}
		heads = append(heads, prod.lhs)
	}
	return heads
}
