package grammar

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
)

// lr0Item is a production with a dot in its body. For E -> E + T, dot 0 is E -> . E + T and
// dot 3 is E -> E + T . Items compare equal when they are the same item.
type lr0Item struct {
	prod *production
	dot  int
}

// next returns the symbol right after the dot, or symbolNil when the dot is at the end.
func (i lr0Item) next() symbol {
	if i.dot >= len(i.prod.rhs) {
		return symbolNil
	}
	return i.prod.rhs[i.dot]
}

func (i lr0Item) reducible() bool {
	return i.dot == len(i.prod.rhs)
}

// kernelKey identifies a kernel whatever order its items were collected in.
type kernelKey string

type kernelKeyItem struct {
	Production int
	Dot        int
}

// canonicalKernel drops duplicate items, orders the rest by production and dot, and derives the
// key of the kernel from that order.
func canonicalKernel(items []lr0Item) (kernelKey, []lr0Item, error) {
	if len(items) == 0 {
		return "", nil, fmt.Errorf("a kernel needs at least one item")
	}
	seen := map[lr0Item]struct{}{}
	var sorted []lr0Item
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		sorted = append(sorted, item)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].prod.num != sorted[j].prod.num {
			return sorted[i].prod.num < sorted[j].prod.num
		}
		return sorted[i].dot < sorted[j].dot
	})

	keyItems := make([]kernelKeyItem, len(sorted))
	for i, item := range sorted {
		keyItems[i] = kernelKeyItem{
			Production: item.prod.num.Int(),
			Dot:        item.dot,
		}
	}
	return kernelKey(fmt.Sprintf("%x", structhash.Sha1(keyItems, 1))), sorted, nil
}

// closure extends a kernel with an item B -> . γ for every non-terminal B right after a dot. The
// kernel comes first, then the added items in the order they were found.
func closure(kernel []lr0Item, prods *productionSet) []lr0Item {
	items := append([]lr0Item{}, kernel...)
	seen := map[lr0Item]struct{}{}
	for _, item := range items {
		seen[item] = struct{}{}
	}
	for i := 0; i < len(items); i++ {
		sym := items[i].next()
		if !sym.isNonTerminal() {
			continue
		}
		for _, prod := range prods.of(sym) {
			item := lr0Item{
				prod: prod,
			}
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			items = append(items, item)
		}
	}
	return items
}
