package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nihei9/alab/spec"
	"github.com/spf13/cobra"
)

var automataFlags = struct {
	dfaJSON     *bool
	nfaJSON     *bool
	convertJSON *bool
}{}

func init() {
	dfaCmd := &cobra.Command{
		Use:     "dfa <alphabet> <string>",
		Short:   "Build the DFA accepting exactly one string",
		Example: `  alab dfa ab aba`,
		Args:    cobra.ExactArgs(2),
		RunE:    runDFA,
	}
	automataFlags.dfaJSON = dfaCmd.Flags().Bool("json", false, "print the response document, including the diagram")

	nfaCmd := &cobra.Command{
		Use:     "nfa <regular expression>",
		Short:   "Build the Thompson NFA of a regular expression",
		Example: `  alab nfa '(a|b)*a'`,
		Args:    cobra.ExactArgs(1),
		RunE:    runNFA,
	}
	automataFlags.nfaJSON = nfaCmd.Flags().Bool("json", false, "print the response document, including the diagram")

	convertCmd := &cobra.Command{
		Use:   "convert [<nfa file path>]",
		Short: "Convert an NFA into an equivalent DFA",
		Long: `convert reads an NFA document, the nfa field of the response of alab nfa --json
or a document of the same shape, and builds the equivalent DFA by subset construction.`,
		Example: `  alab nfa --json '(a|b)*a' | alab convert`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runConvert,
	}
	automataFlags.convertJSON = convertCmd.Flags().Bool("json", false, "print the response document, including the diagram")

	rootCmd.AddCommand(dfaCmd, nfaCmd, convertCmd)
}

func runDFA(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	res, err := e.BuildStringDFA(context.Background(), &spec.GenerateDFARequest{
		Alphabet:     args[0],
		AcceptString: args[1],
	})
	if err != nil {
		return err
	}
	if *automataFlags.dfaJSON {
		return writeJSONFile("", res)
	}
	printDFA(res.DFA)
	return nil
}

func runNFA(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	res, err := e.BuildRegexNFA(context.Background(), &spec.GenerateNFARequest{
		Regex: args[0],
	})
	if err != nil {
		return err
	}
	if *automataFlags.nfaJSON {
		return writeJSONFile("", res)
	}
	printNFA(res.NFA)
	return nil
}

// readNFA accepts either an NFA document or a document holding one in its nfa field.
func readNFA(path string) (*spec.NFA, error) {
	src, name, err := readSource(path)
	if err != nil {
		return nil, err
	}
	wrapped := &spec.NFAToDFARequest{}
	if err := json.Unmarshal([]byte(src), wrapped); err != nil {
		return nil, fmt.Errorf("%v: malformed NFA document: %w", name, err)
	}
	if wrapped.NFA != nil {
		return wrapped.NFA, nil
	}
	nfa := &spec.NFA{}
	if err := json.Unmarshal([]byte(src), nfa); err != nil {
		return nil, fmt.Errorf("%v: malformed NFA document: %w", name, err)
	}
	return nfa, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	nfa, err := readNFA(path)
	if err != nil {
		return err
	}
	e, err := newEngine()
	if err != nil {
		return err
	}
	res, err := e.ConvertNFA(context.Background(), &spec.NFAToDFARequest{
		NFA: nfa,
	})
	if err != nil {
		return err
	}
	if *automataFlags.convertJSON {
		return writeJSONFile("", res)
	}
	printDFA(res.DFA)
	return nil
}
