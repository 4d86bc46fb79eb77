package grammar

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	verr "github.com/nihei9/alab/error"
)

// LL1Conflict is a cell of the LL(1) table that more than one production was placed in.
type LL1Conflict struct {
	NonTerminal string
	Terminal    string
	Productions []*Production
}

func (c *LL1Conflict) String() string {
	prods := make([]string, len(c.Productions))
	for i, p := range c.Productions {
		prods[i] = p.String()
	}
	return fmt.Sprintf("M[%v, %v]: %v", c.NonTerminal, c.Terminal, strings.Join(prods, " / "))
}

// LL1Table is the predictive parsing table. A cell holding several productions keeps the first
// one placed as its primary entry.
type LL1Table struct {
	Grammar      *Grammar
	Sets         *FirstFollow
	Terminals    []string
	NonTerminals []string
	Conflicts    []*LL1Conflict

	cells map[string]map[string][]*Production
}

// IsLL1 reports whether no cell holds more than one production.
func (t *LL1Table) IsLL1() bool {
	return len(t.Conflicts) == 0
}

// Entry returns the primary production of a cell.
func (t *LL1Table) Entry(nonTerminal, terminal string) (*Production, bool) {
	prods := t.Candidates(nonTerminal, terminal)
	if len(prods) == 0 {
		return nil, false
	}
	return prods[0], true
}

// Candidates returns every production placed in a cell in the order they were placed.
func (t *LL1Table) Candidates(nonTerminal, terminal string) []*Production {
	row, ok := t.cells[nonTerminal]
	if !ok {
		return nil
	}
	return row[terminal]
}

// AnalyzeLL1 builds the LL(1) table of a grammar. A left-recursive grammar fails with
// a LeftRecursion error. Conflicts do not fail; they are recorded in the table.
func AnalyzeLL1(g *Grammar, order SymbolOrder) (*LL1Table, error) {
	ff, err := g.ComputeFirstFollow(order)
	if err != nil {
		return nil, err
	}

	if err := checkLeftRecursion(g, ff); err != nil {
		return nil, err
	}

	tab := &LL1Table{
		Grammar:      g,
		Sets:         ff,
		Terminals:    g.TerminalsWithEOF(order),
		NonTerminals: g.NonTerminals(),
		cells:        map[string]map[string][]*Production{},
	}
	for _, nt := range tab.NonTerminals {
		tab.cells[nt] = map[string][]*Production{}
	}

	conflicts := map[string]*LL1Conflict{}
	place := func(prod *Production, term string) {
		row := tab.cells[prod.Head]
		for _, p := range row[term] {
			if p == prod {
				return
			}
		}
		row[term] = append(row[term], prod)
		if len(row[term]) < 2 {
			return
		}
		key := prod.Head + "\x00" + term
		if c, ok := conflicts[key]; ok {
			c.Productions = row[term]
			return
		}
		c := &LL1Conflict{
			NonTerminal: prod.Head,
			Terminal:    term,
			Productions: row[term],
		}
		conflicts[key] = c
		tab.Conflicts = append(tab.Conflicts, c)
	}

	for _, prod := range g.Productions() {
		first := ff.FirstOf(prod.Body)
		nullable := false
		for _, sym := range first {
			if sym == EpsilonText {
				nullable = true
				continue
			}
			place(prod, sym)
		}
		if nullable {
			for _, sym := range ff.Follow[prod.Head] {
				place(prod, sym)
			}
		}
	}

	tracer().Infof("LL(1) table: %v non-terminals, %v terminals, %v conflicts",
		len(tab.NonTerminals), len(tab.Terminals), len(tab.Conflicts))

	return tab, nil
}

type leftEdge struct {
	to   string
	prod *Production
}

type searchFrame struct {
	nt    string
	edges []leftEdge
	next  int
	via   *Production
}

// checkLeftRecursion looks for a non-terminal that derives a sentential form starting with itself.
// An edge A -> B exists when some production A -> X1..Xk B ... has only nullable non-terminals
// before B.
func checkLeftRecursion(g *Grammar, ff *FirstFollow) error {
	edges := map[string][]leftEdge{}
	for _, prod := range g.Productions() {
		for _, sym := range prod.Body {
			if !g.IsNonTerminal(sym) {
				break
			}
			edges[prod.Head] = append(edges[prod.Head], leftEdge{
				to:   sym,
				prod: prod,
			})
			if !ff.Nullable(sym) {
				break
			}
		}
	}

	const (
		unvisited = iota
		onPath
		done
	)
	color := map[string]int{}
	for _, root := range g.NonTerminals() {
		if color[root] != unvisited {
			continue
		}
		stack := arraystack.New()
		stack.Push(&searchFrame{
			nt:    root,
			edges: edges[root],
		})
		color[root] = onPath
		for !stack.Empty() {
			v, _ := stack.Peek()
			frame := v.(*searchFrame)
			if frame.next >= len(frame.edges) {
				stack.Pop()
				color[frame.nt] = done
				continue
			}
			e := frame.edges[frame.next]
			frame.next++
			switch color[e.to] {
			case onPath:
				return leftRecursionError(stack, e)
			case unvisited:
				color[e.to] = onPath
				stack.Push(&searchFrame{
					nt:    e.to,
					edges: edges[e.to],
					via:   e.prod,
				})
			}
		}
	}
	return nil
}

// leftRecursionError reports the cycle closed by e. The stack holds the current search path.
func leftRecursionError(stack *arraystack.Stack, e leftEdge) error {
	// Values returns the frames top first.
	vals := stack.Values()
	var path []string
	for _, v := range vals {
		frame := v.(*searchFrame)
		path = append([]string{frame.nt}, path...)
		if frame.nt == e.to {
			break
		}
	}
	path = append(path, e.to)

	tracer().Errorf("left recursion: %v", strings.Join(path, " => "))

	return &verr.SpecError{
		Cause:  semErrLeftRecursion,
		Detail: fmt.Sprintf("%v (%v)", strings.Join(path, " => "), e.prod),
		Row:    e.prod.Row,
	}
}
