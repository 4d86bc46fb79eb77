package automaton

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Node colors of a diagram.
const (
	ColorStart      = "#a7c7e7"
	ColorFinal      = "#c1e1c1"
	ColorStartFinal = "#fdfd96"
	ColorNormal     = "#ffb347"
)

// Graph is the structural description of an automaton handed to a graph renderer.
type Graph struct {
	Title string
	Nodes []Node
	Edges []Edge
}

type Node struct {
	ID      StateID
	Label   string
	IsStart bool
	IsFinal bool
}

func (n Node) Color() string {
	switch {
	case n.IsStart && n.IsFinal:
		return ColorStartFinal
	case n.IsStart:
		return ColorStart
	case n.IsFinal:
		return ColorFinal
	}
	return ColorNormal
}

// Edge joins every symbol leading from one state to another into one label.
type Edge struct {
	From  StateID
	To    StateID
	Label string
}

func newGraph(title string, states []State, ts []Transition) *Graph {
	g := &Graph{
		Title: title,
	}
	for _, s := range states {
		g.Nodes = append(g.Nodes, Node{
			ID:      s.ID,
			Label:   s.Label,
			IsStart: s.IsStart,
			IsFinal: s.IsFinal,
		})
	}

	type pair struct {
		from StateID
		to   StateID
	}
	var order []pair
	labels := map[pair][]string{}
	for _, t := range ts {
		p := pair{from: t.From, to: t.To}
		if _, ok := labels[p]; !ok {
			order = append(order, p)
		}
		labels[p] = append(labels[p], t.Symbol.String())
	}
	for _, p := range order {
		ls := labels[p]
		sort.Strings(ls)
		g.Edges = append(g.Edges, Edge{
			From:  p.from,
			To:    p.to,
			Label: strings.Join(ls, ","),
		})
	}
	return g
}

// WriteDOT writes the graph in the Graphviz DOT language.
func (g *Graph) WriteDOT(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", g.Title)
	b.WriteString(`graph [rankdir=LR, splines=true, fontname=Helvetica, fontsize=10];
node [shape=circle, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];
`)
	if g.Title != "" {
		fmt.Fprintf(&b, "label=%q;\n", g.Title)
	}
	for _, n := range g.Nodes {
		if n.IsStart {
			fmt.Fprintf(&b, "start%v [shape=point, style=invis];\n", int(n.ID))
		}
	}
	for _, n := range g.Nodes {
		shape := "circle"
		if n.IsFinal {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "s%03d [shape=%v, fillcolor=%q, label=%q];\n", int(n.ID), shape, n.Color(), n.Label)
	}
	for _, n := range g.Nodes {
		if n.IsStart {
			fmt.Fprintf(&b, "start%v -> s%03d;\n", int(n.ID), int(n.ID))
		}
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "s%03d -> s%03d [label=%q];\n", int(e.From), int(e.To), e.Label)
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
