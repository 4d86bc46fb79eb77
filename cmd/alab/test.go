package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/alab/tester"
	"github.com/spf13/cobra"
)

var testFlags *recognizerFlags

func init() {
	cmd := &cobra.Command{
		Use:   "test <test file path>|<test directory path>",
		Short: "Test words against an automaton or a grammar",
		Long: `test reads test cases, one per line written as accept: <word> or reject: <word>,
and checks each word against the language chosen by the flags.`,
		Example: `  alab test --regex '(a|b)*a' cases.txt
  alab test --grammar expr.grammar -m slr1 testdata`,
		Args: cobra.ExactArgs(1),
		RunE: runTest,
	}
	testFlags = addRecognizerFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	r, err := testFlags.recognizer(e)
	if err != nil {
		return err
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[0])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Recognizer: r,
		Cases:      cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if !r.Passed() {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
