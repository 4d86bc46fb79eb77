package driver

import (
	"fmt"
	"io"

	"github.com/nihei9/alab/grammar"
)

type SemanticActionSet interface {
	// Shift runs when the driver shifts a token onto the stack.
	Shift(tok *Token)

	// Reduce runs when the driver reduces the RHS of a production to its LHS.
	Reduce(prod *grammar.Production)

	// Accept runs when the driver accepts an input.
	Accept()
}

var _ SemanticActionSet = &SyntaxTreeActionSet{}

// Node is a node of a concrete syntax tree. A leaf holding the text of a token is a terminal;
// a leaf named epsilon stands for an empty production.
type Node struct {
	KindName string
	Text     string
	Row      int
	Col      int
	Children []*Node
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	if node.Text != "" {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.KindName, node.Text)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}

func newEpsilonNode() *Node {
	return &Node{
		KindName: grammar.EpsilonText,
	}
}

func newTerminalNode(tok *Token) *Node {
	return &Node{
		KindName: tok.Terminal,
		Text:     tok.Text,
		Row:      tok.Row,
		Col:      tok.Col,
	}
}

// SyntaxTreeActionSet builds a concrete syntax tree bottom up.
type SyntaxTreeActionSet struct {
	stack []*Node
	cst   *Node
}

func NewSyntaxTreeActionSet() *SyntaxTreeActionSet {
	return &SyntaxTreeActionSet{}
}

func (a *SyntaxTreeActionSet) Shift(tok *Token) {
	a.stack = append(a.stack, newTerminalNode(tok))
}

func (a *SyntaxTreeActionSet) Reduce(prod *grammar.Production) {
	n := len(prod.Body)
	var children []*Node
	if n == 0 {
		children = []*Node{newEpsilonNode()}
	} else {
		children = make([]*Node, n)
		copy(children, a.stack[len(a.stack)-n:])
		a.stack = a.stack[:len(a.stack)-n]
	}
	node := &Node{
		KindName: prod.Head,
		Children: children,
	}
	if n > 0 {
		node.Row = children[0].Row
		node.Col = children[0].Col
	}
	a.stack = append(a.stack, node)
}

func (a *SyntaxTreeActionSet) Accept() {
	if len(a.stack) == 0 {
		return
	}
	a.cst = a.stack[len(a.stack)-1]
}

func (a *SyntaxTreeActionSet) CST() *Node {
	return a.cst
}
