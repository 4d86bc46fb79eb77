package grammar

import (
	"fmt"

	verr "github.com/nihei9/alab/error"
)

type lr0Edge struct {
	sym symbol
	to  int
}

type lr0State struct {
	num        int
	key        kernelKey
	kernelSize int

	// items is the closure; the kernel comes first.
	items []lr0Item

	// edges are ordered by the first item their symbol follows the dot in.
	edges     []lr0Edge
	reducible []*production
}

type lr0Collection struct {
	states []*lr0State
	index  map[kernelKey]int
	limit  int
}

// buildLR0Collection builds the canonical collection of the augmented grammar breadth first. A
// state is numbered when it is discovered, so I0 holds S' -> . S and numbers follow the order of
// discovery. Building fails once more than maxStates states would be needed; maxStates <= 0
// means no limit.
func buildLR0Collection(prods *productionSet, maxStates int) (*lr0Collection, error) {
	starts := prods.of(symbolStart)
	if len(starts) == 0 {
		return nil, fmt.Errorf("the grammar is not augmented")
	}

	c := &lr0Collection{
		index: map[kernelKey]int{},
		limit: maxStates,
	}
	if _, err := c.add([]lr0Item{{prod: starts[0]}}); err != nil {
		return nil, err
	}
	for i := 0; i < len(c.states); i++ {
		s := c.states[i]
		s.items = closure(s.items, prods)

		var order []symbol
		gotos := map[symbol][]lr0Item{}
		for _, item := range s.items {
			if item.reducible() {
				s.reducible = append(s.reducible, item.prod)
				continue
			}
			sym := item.next()
			if _, ok := gotos[sym]; !ok {
				order = append(order, sym)
			}
			gotos[sym] = append(gotos[sym], lr0Item{
				prod: item.prod,
				dot:  item.dot + 1,
			})
		}
		for _, sym := range order {
			to, err := c.add(gotos[sym])
			if err != nil {
				return nil, err
			}
			s.edges = append(s.edges, lr0Edge{
				sym: sym,
				to:  to,
			})
		}
	}
	tracer().Debugf("LR(0) collection: %v states", len(c.states))

	return c, nil
}

// add returns the number of the state a kernel belongs to, creating the state when the kernel is
// new.
func (c *lr0Collection) add(kernel []lr0Item) (int, error) {
	key, items, err := canonicalKernel(kernel)
	if err != nil {
		return 0, err
	}
	if num, ok := c.index[key]; ok {
		return num, nil
	}
	if c.limit > 0 && len(c.states) >= c.limit {
		tracer().Errorf("the LR(0) collection exceeds %v states", c.limit)
		return 0, &verr.SpecError{
			Cause:  semErrTooManyStates,
			Detail: fmt.Sprintf("limit: %v", c.limit),
		}
	}
	num := len(c.states)
	c.index[key] = num
	c.states = append(c.states, &lr0State{
		num:        num,
		key:        key,
		kernelSize: len(items),
		items:      items,
	})
	return num, nil
}
