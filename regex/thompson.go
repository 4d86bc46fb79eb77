package regex

import (
	"fmt"

	"github.com/nihei9/alab/automaton"
	verr "github.com/nihei9/alab/error"
)

// fragment is a partial automaton with a single entry and a single exit.
type fragment struct {
	start  automaton.StateID
	accept automaton.StateID
}

type compiler struct {
	b         *automaton.NFABuilder
	maxStates int
}

// Compile builds an NFA from a syntax tree by Thompson's construction. When maxStates is
// positive, the construction fails once the automaton would need more states than that.
func Compile(tree *Tree, maxStates int) (*automaton.NFA, error) {
	c := &compiler{
		b:         automaton.NewNFABuilder(nil),
		maxStates: maxStates,
	}

	frags := make([]fragment, tree.Len())
	for i := 0; i < tree.Len(); i++ {
		n := tree.Node(i)
		var err error
		switch n.Kind {
		case NodeLiteral:
			frags[i], err = c.literal(n.Symbol)
		case NodeEpsilon:
			frags[i], err = c.literal(automaton.Epsilon)
		case NodeConcat:
			frags[i], err = c.concat(frags[n.Left], frags[n.Right])
		case NodeUnion:
			frags[i], err = c.union(frags[n.Left], frags[n.Right])
		case NodeStar:
			frags[i], err = c.star(frags[n.Left])
		default:
			err = fmt.Errorf("unknown node kind: %v", n.Kind)
		}
		if err != nil {
			return nil, err
		}
	}

	root := frags[tree.Root()]
	if err := c.b.SetStart(root.start); err != nil {
		return nil, err
	}
	if err := c.b.AddFinal(root.accept); err != nil {
		return nil, err
	}
	nfa, err := c.b.Build()
	if err != nil {
		return nil, err
	}

	tracer().Debugf("Thompson construction: %v nodes, %v states", tree.Len(), c.b.StateCount())

	return nfa, nil
}

// NewNFA parses a regular expression and compiles it.
func NewNFA(src string, maxStates int) (*automaton.NFA, *Tree, error) {
	tree, err := Parse(src)
	if err != nil {
		return nil, nil, err
	}
	nfa, err := Compile(tree, maxStates)
	if err != nil {
		return nil, nil, err
	}
	return nfa, tree, nil
}

func (c *compiler) newStates(n int) ([]automaton.StateID, error) {
	if c.maxStates > 0 && c.b.StateCount()+n > c.maxStates {
		return nil, &verr.SpecError{
			Cause:  semErrTooManyStates,
			Detail: fmt.Sprintf("limit: %v", c.maxStates),
		}
	}
	ids := make([]automaton.StateID, n)
	for i := range ids {
		ids[i] = c.b.NewState()
	}
	return ids, nil
}

func (c *compiler) literal(sym automaton.Symbol) (fragment, error) {
	ids, err := c.newStates(2)
	if err != nil {
		return fragment{}, err
	}
	err = c.b.AddTransition(ids[0], sym, ids[1])
	if err != nil {
		return fragment{}, err
	}
	return fragment{start: ids[0], accept: ids[1]}, nil
}

func (c *compiler) concat(l, r fragment) (fragment, error) {
	err := c.b.AddTransition(l.accept, automaton.Epsilon, r.start)
	if err != nil {
		return fragment{}, err
	}
	return fragment{start: l.start, accept: r.accept}, nil
}

func (c *compiler) union(l, r fragment) (fragment, error) {
	ids, err := c.newStates(2)
	if err != nil {
		return fragment{}, err
	}
	start, accept := ids[0], ids[1]
	for _, e := range [][2]automaton.StateID{
		{start, l.start},
		{start, r.start},
		{l.accept, accept},
		{r.accept, accept},
	} {
		if err := c.b.AddTransition(e[0], automaton.Epsilon, e[1]); err != nil {
			return fragment{}, err
		}
	}
	return fragment{start: start, accept: accept}, nil
}

func (c *compiler) star(x fragment) (fragment, error) {
	ids, err := c.newStates(2)
	if err != nil {
		return fragment{}, err
	}
	start, accept := ids[0], ids[1]
	for _, e := range [][2]automaton.StateID{
		{start, x.start},
		{x.accept, accept},
		{x.accept, x.start},
		{start, accept},
	} {
		if err := c.b.AddTransition(e[0], automaton.Epsilon, e[1]); err != nil {
			return fragment{}, err
		}
	}
	return fragment{start: start, accept: accept}, nil
}
