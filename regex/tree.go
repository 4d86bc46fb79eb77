package regex

import (
	"fmt"
	"strings"

	"github.com/nihei9/alab/automaton"
)

type NodeKind int

const (
	NodeLiteral NodeKind = iota
	NodeEpsilon
	NodeConcat
	NodeUnion
	NodeStar
)

func (k NodeKind) String() string {
	switch k {
	case NodeLiteral:
		return "literal"
	case NodeEpsilon:
		return "epsilon"
	case NodeConcat:
		return "concat"
	case NodeUnion:
		return "union"
	case NodeStar:
		return "star"
	}
	return fmt.Sprintf("NodeKind(%v)", int(k))
}

const nilNode = -1

// Node is an element of a syntax tree. Children are referred to by their index in the tree.
// Star nodes use Left only.
type Node struct {
	Kind   NodeKind
	Symbol automaton.Symbol
	Left   int
	Right  int
	Pos    int
}

// Tree is a syntax tree stored as an arena. A node is always stored after its children, so
// iterating the arena in index order visits the tree bottom-up.
type Tree struct {
	nodes []Node
	root  int
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) Root() int {
	return t.root
}

func (t *Tree) Node(i int) Node {
	return t.nodes[i]
}

func (t *Tree) add(n Node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *Tree) newLiteral(sym automaton.Symbol, pos int) int {
	return t.add(Node{Kind: NodeLiteral, Symbol: sym, Left: nilNode, Right: nilNode, Pos: pos})
}

func (t *Tree) newEpsilon(pos int) int {
	return t.add(Node{Kind: NodeEpsilon, Left: nilNode, Right: nilNode, Pos: pos})
}

func (t *Tree) newConcat(left, right int) int {
	return t.add(Node{Kind: NodeConcat, Left: left, Right: right, Pos: t.nodes[left].Pos})
}

func (t *Tree) newUnion(left, right int) int {
	return t.add(Node{Kind: NodeUnion, Left: left, Right: right, Pos: t.nodes[left].Pos})
}

func (t *Tree) newStar(child int) int {
	return t.add(Node{Kind: NodeStar, Left: child, Right: nilNode, Pos: t.nodes[child].Pos})
}

// String prints the tree as an s-expression, e.g. (concat (star (union a b)) a).
func (t *Tree) String() string {
	var b strings.Builder
	t.write(&b, t.root)
	return b.String()
}

func (t *Tree) write(b *strings.Builder, i int) {
	n := t.nodes[i]
	switch n.Kind {
	case NodeLiteral:
		b.WriteString(string(n.Symbol))
	case NodeEpsilon:
		b.WriteString(automaton.EpsilonText)
	case NodeStar:
		b.WriteString("(star ")
		t.write(b, n.Left)
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "(%v ", n.Kind)
		t.write(b, n.Left)
		b.WriteString(" ")
		t.write(b, n.Right)
		b.WriteString(")")
	}
}
