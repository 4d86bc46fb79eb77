package grammar

import (
	"fmt"
)

type followSets map[symbol]*terminalSet

// computeFollow repeats passes over the productions until no set grows. Both the start symbol and
// the augmented start symbol are followed by the end marker.
func computeFollow(prods *productionSet, first firstSets, start symbol) (followSets, error) {
	follow := followSets{}
	for _, head := range prods.heads() {
		follow[head] = newTerminalSet()
	}
	for _, sym := range []symbol{start, symbolStart} {
		if e, ok := follow[sym]; ok {
			e.add(symbolEOF)
		}
	}

	for pass := 1; ; pass++ {
		grew := false
		for _, prod := range prods.all {
			for i, sym := range prod.rhs {
				if !sym.isNonTerminal() {
					continue
				}
				acc, ok := follow[sym]
				if !ok {
					return nil, fmt.Errorf("FOLLOW of %v is undefined", sym)
				}
				rest, err := first.ofSequence(prod.rhs[i+1:])
				if err != nil {
					return nil, err
				}
				if acc.union(rest) {
					grew = true
				}
				if rest.epsilon && acc.union(follow[prod.lhs]) {
					grew = true
				}
			}
		}
		if !grew {
			break
		}
		tracer().Debugf("FOLLOW pass %v grew", pass)
	}
	return follow, nil
}
