package driver

import (
	"fmt"
	"strings"

	verr "github.com/nihei9/alab/error"
	"github.com/nihei9/alab/grammar"
)

// Step is one move of a driver. Stack lists the stack bottom first; Input lists the terminals
// not read yet, ending with the end marker.
type Step struct {
	Stack  []string
	Input  []string
	Action string
}

// SyntaxError tells where a sentence stopped matching the grammar.
type SyntaxError struct {
	Row               int
	Col               int
	Message           string
	Token             *Token
	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v:%v: %v", e.Row, e.Col, e.Message)
}

// Result is the outcome of parsing a sentence. A rejected sentence is not an error; SyntaxError
// tells why it was rejected.
type Result struct {
	Accepted    bool
	Steps       []*Step
	Tree        *Node
	SyntaxError *SyntaxError
}

func inputTexts(toks []*Token) []string {
	texts := make([]string, len(toks))
	for i, tok := range toks {
		texts[i] = tok.String()
	}
	return texts
}

func newSyntaxError(tok *Token, expected []string) *SyntaxError {
	var msg string
	if tok.EOF {
		msg = "unexpected end of input"
	} else {
		msg = fmt.Sprintf("unexpected token: %v", tok.Text)
	}
	if len(expected) > 0 {
		msg = fmt.Sprintf("%v; expected: %v", msg, strings.Join(expected, ", "))
	}
	return &SyntaxError{
		Row:               tok.Row,
		Col:               tok.Col,
		Message:           msg,
		Token:             tok,
		ExpectedTerminals: expected,
	}
}

func checkTokens(toks []*Token) error {
	if len(toks) == 0 || !toks[len(toks)-1].EOF {
		return fmt.Errorf("a token sequence must end with the end marker")
	}
	return nil
}

type ll1Frame struct {
	sym  string
	node *Node
}

// ParseLL1 runs the predictive driver over the tokens. The table must be free of conflicts.
func ParseLL1(tab *grammar.LL1Table, toks []*Token) (*Result, error) {
	if !tab.IsLL1() {
		return nil, &verr.SpecError{
			Cause:  synErrNotLL1,
			Detail: tab.Conflicts[0].String(),
		}
	}
	if err := checkTokens(toks); err != nil {
		return nil, err
	}

	g := tab.Grammar
	root := &Node{
		KindName: g.Start(),
	}
	stack := []*ll1Frame{
		{sym: grammar.EOF},
		{sym: g.Start(), node: root},
	}
	stackTexts := func() []string {
		texts := make([]string, len(stack))
		for i, f := range stack {
			texts[i] = f.sym
		}
		return texts
	}

	res := &Result{}
	pos := 0
	for {
		top := stack[len(stack)-1]
		tok := toks[pos]
		step := &Step{
			Stack: stackTexts(),
			Input: inputTexts(toks[pos:]),
		}
		res.Steps = append(res.Steps, step)

		switch {
		case top.sym == grammar.EOF:
			if tok.EOF {
				step.Action = "accept"
				res.Accepted = true
				res.Tree = root
				tracer().Debugf("LL(1) driver accepted after %v steps", len(res.Steps))
				return res, nil
			}
			step.Action = "error"
			res.SyntaxError = newSyntaxError(tok, []string{grammar.EOF})
			return res, nil
		case g.IsTerminal(top.sym):
			if top.sym != tok.Terminal {
				step.Action = "error"
				res.SyntaxError = newSyntaxError(tok, []string{top.sym})
				return res, nil
			}
			step.Action = fmt.Sprintf("match %v", tok.Terminal)
			top.node.Text = tok.Text
			top.node.Row = tok.Row
			top.node.Col = tok.Col
			stack = stack[:len(stack)-1]
			pos++
		default:
			prod, ok := tab.Entry(top.sym, tok.Terminal)
			if !ok {
				step.Action = "error"
				res.SyntaxError = newSyntaxError(tok, expectedLL1(tab, top.sym))
				return res, nil
			}
			step.Action = prod.String()
			stack = stack[:len(stack)-1]
			if prod.IsEpsilon() {
				top.node.Children = []*Node{newEpsilonNode()}
				continue
			}
			children := make([]*Node, len(prod.Body))
			for i, sym := range prod.Body {
				children[i] = &Node{
					KindName: sym,
				}
			}
			top.node.Children = children
			for i := len(prod.Body) - 1; i >= 0; i-- {
				stack = append(stack, &ll1Frame{
					sym:  prod.Body[i],
					node: children[i],
				})
			}
		}
	}
}

func expectedLL1(tab *grammar.LL1Table, nonTerminal string) []string {
	var expected []string
	for _, term := range tab.Terminals {
		if _, ok := tab.Entry(nonTerminal, term); ok {
			expected = append(expected, term)
		}
	}
	return expected
}

// ParseSLR runs the shift/reduce driver over the tokens. The table must be free of conflicts.
// When semAct is nil the driver builds a concrete syntax tree.
func ParseSLR(tab *grammar.SLRTable, toks []*Token, semAct SemanticActionSet) (*Result, error) {
	if !tab.IsSLR1() {
		return nil, &verr.SpecError{
			Cause:  synErrNotSLR1,
			Detail: tab.Conflicts[0].String(),
		}
	}
	if err := checkTokens(toks); err != nil {
		return nil, err
	}
	packed, err := packSLRTable(tab)
	if err != nil {
		return nil, err
	}

	var treeAct *SyntaxTreeActionSet
	if semAct == nil {
		treeAct = NewSyntaxTreeActionSet()
		semAct = treeAct
	}

	// The stack alternates states and symbols: 0 a 2 S 4.
	stateStack := []int{0}
	symStack := []string{}
	stackTexts := func() []string {
		texts := []string{fmt.Sprint(stateStack[0])}
		for i, sym := range symStack {
			texts = append(texts, sym, fmt.Sprint(stateStack[i+1]))
		}
		return texts
	}

	res := &Result{}
	pos := 0
	for {
		state := stateStack[len(stateStack)-1]
		tok := toks[pos]
		step := &Step{
			Stack: stackTexts(),
			Input: inputTexts(toks[pos:]),
		}
		res.Steps = append(res.Steps, step)

		act, ok := packed.Action(state, tok.Terminal)
		if !ok {
			step.Action = "error"
			res.SyntaxError = newSyntaxError(tok, packed.expected(state))
			return res, nil
		}
		switch act.Kind {
		case grammar.ActionShift:
			step.Action = fmt.Sprintf("shift %v", act.State)
			semAct.Shift(tok)
			stateStack = append(stateStack, act.State)
			symStack = append(symStack, tok.Terminal)
			pos++
		case grammar.ActionReduce:
			prod := tab.Productions[act.Production]
			step.Action = fmt.Sprintf("reduce %v", prod)
			n := len(prod.Body)
			stateStack = stateStack[:len(stateStack)-n]
			symStack = symStack[:len(symStack)-n]
			next, ok := packed.Goto(stateStack[len(stateStack)-1], prod.Head)
			if !ok {
				return nil, fmt.Errorf("GOTO[%v, %v] is empty", stateStack[len(stateStack)-1], prod.Head)
			}
			semAct.Reduce(prod)
			stateStack = append(stateStack, next)
			symStack = append(symStack, prod.Head)
		case grammar.ActionAccept:
			step.Action = "accept"
			semAct.Accept()
			res.Accepted = true
			if treeAct != nil {
				res.Tree = treeAct.CST()
			}
			tracer().Debugf("SLR(1) driver accepted after %v steps", len(res.Steps))
			return res, nil
		}
	}
}
