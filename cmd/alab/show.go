package main

import (
	"encoding/json"
	"fmt"

	"github.com/nihei9/alab/spec"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <report file path>",
		Short:   "Print a report written by ll1 or slr in a readable format",
		Example: `  alab show expr-slr.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	src, name, err := readSource(args[0])
	if err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(src), &keys); err != nil {
		return fmt.Errorf("%v: malformed report: %w", name, err)
	}
	if _, ok := keys["item_sets"]; ok {
		res := &spec.SLRResponse{}
		if err := json.Unmarshal([]byte(src), res); err != nil {
			return fmt.Errorf("%v: malformed report: %w", name, err)
		}
		printSLR(res)
		return nil
	}
	if _, ok := keys["first_sets"]; ok {
		res := &spec.LL1Response{}
		if err := json.Unmarshal([]byte(src), res); err != nil {
			return fmt.Errorf("%v: malformed report: %w", name, err)
		}
		printLL1(res)
		return nil
	}
	return fmt.Errorf("%v: not a report written by ll1 or slr", name)
}
