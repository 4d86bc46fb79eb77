package main

import (
	"context"
	"errors"
	"strings"

	"github.com/nihei9/alab/spec"
	"github.com/spf13/cobra"
)

var errRejected = errors.New("The sentence was rejected")

var grammarFlags = struct {
	ll1Output *string
	slrOutput *string
	method    *string
	source    *string
	parseJSON *bool
}{}

func init() {
	ll1Cmd := &cobra.Command{
		Use:   "ll1 [<grammar file path>]",
		Short: "Compute FIRST and FOLLOW and the LL(1) table of a grammar",
		Long: `ll1 reads a grammar, one production per line written as HEAD -> body | body,
and prints its FIRST and FOLLOW sets and its LL(1) table with every conflict.`,
		Example: `  alab ll1 expr.grammar -o expr-ll1.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runLL1,
	}
	grammarFlags.ll1Output = ll1Cmd.Flags().StringP("output", "o", "", "write the report to a file (- for stdout) instead of printing tables")

	slrCmd := &cobra.Command{
		Use:     "slr [<grammar file path>]",
		Short:   "Compute the canonical LR(0) collection and the SLR(1) table of a grammar",
		Example: `  alab slr expr.grammar`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runSLR,
	}
	grammarFlags.slrOutput = slrCmd.Flags().StringP("output", "o", "", "write the report to a file (- for stdout) instead of printing tables")

	parseCmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Parse a sentence with the LL(1) or the SLR(1) table of a grammar",
		Example: `  echo 'id + id' | alab parse expr.grammar -m slr1`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	grammarFlags.method = parseCmd.Flags().StringP("method", "m", string(spec.ParseMethodLL1), "parsing method (ll1|slr1)")
	grammarFlags.source = parseCmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	grammarFlags.parseJSON = parseCmd.Flags().Bool("json", false, "print the response document")

	rootCmd.AddCommand(ll1Cmd, slrCmd, parseCmd)
}

func readGrammar(args []string) (string, error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	src, _, err := readSource(path)
	return src, err
}

func grammarError(err error, args []string) error {
	if len(args) > 0 {
		return withSource(err, args[0], args[0])
	}
	return withSource(err, "", "stdin")
}

func runLL1(cmd *cobra.Command, args []string) error {
	src, err := readGrammar(args)
	if err != nil {
		return err
	}
	e, err := newEngine()
	if err != nil {
		return err
	}
	res, err := e.AnalyzeLL1(context.Background(), &spec.GrammarRequest{
		Grammar: src,
	})
	if err != nil {
		return grammarError(err, args)
	}
	if *grammarFlags.ll1Output != "" {
		return writeJSONFile(*grammarFlags.ll1Output, res)
	}
	printLL1(res)
	return nil
}

func runSLR(cmd *cobra.Command, args []string) error {
	src, err := readGrammar(args)
	if err != nil {
		return err
	}
	e, err := newEngine()
	if err != nil {
		return err
	}
	res, err := e.AnalyzeSLR(context.Background(), &spec.GrammarRequest{
		Grammar: src,
	})
	if err != nil {
		return grammarError(err, args)
	}
	if *grammarFlags.slrOutput != "" {
		return writeJSONFile(*grammarFlags.slrOutput, res)
	}
	printSLR(res)
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	grm, err := readGrammar(args)
	if err != nil {
		return err
	}
	input, _, err := readSource(*grammarFlags.source)
	if err != nil {
		return err
	}
	e, err := newEngine()
	if err != nil {
		return err
	}
	res, err := e.Parse(context.Background(), &spec.ParseRequest{
		Grammar: grm,
		Method:  spec.ParseMethod(strings.ToLower(*grammarFlags.method)),
		Input:   input,
	})
	if err != nil {
		return grammarError(err, args)
	}
	if *grammarFlags.parseJSON {
		if err := writeJSONFile("", res); err != nil {
			return err
		}
	} else {
		printParse(res)
	}
	if !res.Accepted {
		return errRejected
	}
	return nil
}
