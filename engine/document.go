package engine

import (
	"fmt"

	"github.com/nihei9/alab/automaton"
	"github.com/nihei9/alab/driver"
	"github.com/nihei9/alab/spec"
	"github.com/nihei9/alab/tester"
)

func symbolTexts(a *automaton.Alphabet) []string {
	syms := a.Symbols()
	texts := make([]string, len(syms))
	for i, sym := range syms {
		texts[i] = string(sym)
	}
	return texts
}

// DFADocument describes a DFA with its states in numbering order and its transitions keyed by
// "state,symbol".
func DFADocument(dfa *automaton.DFA) *spec.DFA {
	states := dfa.States()
	doc := &spec.DFA{
		States:      []string{},
		Alphabet:    symbolTexts(dfa.Alphabet()),
		Transitions: map[string]string{},
		FinalStates: []string{},
	}
	for _, s := range states {
		doc.States = append(doc.States, s.Label)
		if s.IsStart {
			doc.StartState = s.Label
		}
		if s.IsFinal {
			doc.FinalStates = append(doc.FinalStates, s.Label)
		}
	}
	for _, t := range dfa.Transitions() {
		doc.Transitions[fmt.Sprintf("%v,%v", states[t.From].Label, t.Symbol)] = states[t.To].Label
	}
	return doc
}

// NFADocument describes an NFA. Epsilon transitions are keyed by the empty string.
func NFADocument(nfa *automaton.NFA) *spec.NFA {
	def := nfa.Definition()
	doc := &spec.NFA{
		States:      def.States,
		Alphabet:    def.Alphabet,
		Transitions: def.Transitions,
		StartState:  def.Start,
		FinalStates: def.Finals,
	}
	if doc.Alphabet == nil {
		doc.Alphabet = []string{}
	}
	if doc.FinalStates == nil {
		doc.FinalStates = []string{}
	}
	return doc
}

func ParseDocument(result *driver.Result) *spec.ParseResponse {
	doc := &spec.ParseResponse{
		Accepted: result.Accepted,
		Steps:    []*spec.ParseStep{},
		Tree:     treeDocument(result.Tree),
	}
	for _, s := range result.Steps {
		doc.Steps = append(doc.Steps, &spec.ParseStep{
			Stack:  s.Stack,
			Input:  s.Input,
			Action: s.Action,
		})
	}
	if synErr := result.SyntaxError; synErr != nil {
		doc.SyntaxError = &spec.SyntaxError{
			Row:      synErr.Row,
			Col:      synErr.Col,
			Message:  synErr.Message,
			Expected: synErr.ExpectedTerminals,
		}
	}
	return doc
}

func treeDocument(node *driver.Node) *spec.Tree {
	if node == nil {
		return nil
	}
	t := &spec.Tree{
		Kind: node.KindName,
		Text: node.Text,
		Row:  node.Row,
		Col:  node.Col,
	}
	for _, c := range node.Children {
		t.Children = append(t.Children, treeDocument(c))
	}
	return t
}

// GrammarRecognizer decides whether sentences belong to the language of a grammar by running the
// driver of a method over them.
func (e *Engine) GrammarRecognizer(src string, method spec.ParseMethod) (tester.Recognizer, error) {
	return e.newSentenceParser(src, method)
}
