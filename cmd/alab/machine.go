package main

import (
	"errors"
	"strings"

	"github.com/nihei9/alab/automaton"
	"github.com/nihei9/alab/engine"
	"github.com/nihei9/alab/regex"
	"github.com/nihei9/alab/spec"
	"github.com/nihei9/alab/strdfa"
	"github.com/nihei9/alab/subset"
	"github.com/nihei9/alab/tester"
	"github.com/spf13/cobra"
)

var errNoRecognizer = errors.New("Specify one of --regex, --nfa, --accept or --grammar")

// recognizerFlags choose the language words are tested against.
type recognizerFlags struct {
	regex    *string
	nfa      *string
	alphabet *string
	accept   *string
	grammar  *string
	method   *string
}

func addRecognizerFlags(cmd *cobra.Command) *recognizerFlags {
	flags := cmd.Flags()
	return &recognizerFlags{
		regex:    flags.String("regex", "", "test words against a regular expression"),
		nfa:      flags.String("nfa", "", "test words against an NFA document"),
		alphabet: flags.String("alphabet", "", "the alphabet of the string given by --accept"),
		accept:   flags.String("accept", "", "test words against the DFA accepting exactly this string"),
		grammar:  flags.String("grammar", "", "test sentences against a grammar file"),
		method:   flags.StringP("method", "m", string(spec.ParseMethodLL1), "parsing method used with --grammar (ll1|slr1)"),
	}
}

func (f *recognizerFlags) recognizer(e *engine.Engine) (tester.Recognizer, error) {
	switch {
	case *f.regex != "":
		nfa, _, err := regex.NewNFA(*f.regex, e.Config().MaxStates)
		if err != nil {
			return nil, err
		}
		return determinized(e, nfa)
	case *f.nfa != "":
		doc, err := readNFA(*f.nfa)
		if err != nil {
			return nil, err
		}
		nfa, err := automaton.NewNFA(&automaton.NFADefinition{
			States:      doc.States,
			Alphabet:    doc.Alphabet,
			Transitions: doc.Transitions,
			Start:       doc.StartState,
			Finals:      doc.FinalStates,
		})
		if err != nil {
			return nil, err
		}
		return determinized(e, nfa)
	case *f.accept != "" || *f.alphabet != "":
		dfa, err := strdfa.BuildFromString(*f.alphabet, *f.accept)
		if err != nil {
			return nil, err
		}
		return tester.NewMachineRecognizer(dfa), nil
	case *f.grammar != "":
		src, name, err := readSource(*f.grammar)
		if err != nil {
			return nil, err
		}
		r, err := e.GrammarRecognizer(src, spec.ParseMethod(strings.ToLower(*f.method)))
		if err != nil {
			return nil, withSource(err, *f.grammar, name)
		}
		return r, nil
	}
	return nil, errNoRecognizer
}

func determinized(e *engine.Engine, nfa *automaton.NFA) (tester.Recognizer, error) {
	res, err := subset.Determinize(nfa, subset.MaxStates(e.Config().MaxStates))
	if err != nil {
		return nil, err
	}
	return tester.NewMachineRecognizer(res.DFA), nil
}
