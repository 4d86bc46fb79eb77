package grammar

import (
	"fmt"
)

// terminalSet is a set of terminals. In FIRST, epsilon records that the empty string is
// derivable. FOLLOW holds the end marker as symbolEOF and never sets epsilon.
type terminalSet struct {
	syms    map[symbol]struct{}
	epsilon bool
}

func newTerminalSet() *terminalSet {
	return &terminalSet{
		syms: map[symbol]struct{}{},
	}
}

func (s *terminalSet) add(sym symbol) bool {
	if _, ok := s.syms[sym]; ok {
		return false
	}
	s.syms[sym] = struct{}{}
	return true
}

func (s *terminalSet) addEpsilon() bool {
	if s.epsilon {
		return false
	}
	s.epsilon = true
	return true
}

func (s *terminalSet) contains(sym symbol) bool {
	_, ok := s.syms[sym]
	return ok
}

// union adds the terminals of o, leaving epsilon alone.
func (s *terminalSet) union(o *terminalSet) bool {
	grew := false
	for sym := range o.syms {
		if s.add(sym) {
			grew = true
		}
	}
	return grew
}

type firstSets map[symbol]*terminalSet

// computeFirst repeats passes over the productions until no set grows.
func computeFirst(prods *productionSet) (firstSets, error) {
	first := firstSets{}
	for _, head := range prods.heads() {
		first[head] = newTerminalSet()
	}
	for pass := 1; ; pass++ {
		grew := false
		for _, prod := range prods.all {
			body, err := first.ofSequence(prod.rhs)
			if err != nil {
				return nil, err
			}
			acc := first[prod.lhs]
			if acc.union(body) {
				grew = true
			}
			if body.epsilon && acc.addEpsilon() {
				grew = true
			}
		}
		if !grew {
			break
		}
		tracer().Debugf("FIRST pass %v grew", pass)
	}
	return first, nil
}

// ofSequence returns FIRST of a sequence of symbols. The empty sequence yields a set holding only
// epsilon.
func (f firstSets) ofSequence(seq []symbol) (*terminalSet, error) {
	set := newTerminalSet()
	for _, sym := range seq {
		if sym.isTerminal() {
			set.add(sym)
			return set, nil
		}
		e, ok := f[sym]
		if !ok {
			return nil, fmt.Errorf("FIRST of %v is undefined", sym)
		}
		set.union(e)
		if !e.epsilon {
			return set, nil
		}
	}
	set.addEpsilon()
	return set, nil
}
