package main

import (
	"fmt"
	"os"

	"github.com/nihei9/alab/engine"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	maxStates   *int
	symbolOrder *string
	nonTerminal *string
	trace       *string
	renderer    *string
}{}

var rootCmd = &cobra.Command{
	Use:   "alab",
	Short: "Build and inspect automata and parsing tables",
	Long: `alab provides the following features:
- Builds a DFA accepting a single string, a Thompson NFA of a regular expression,
  and the DFA equivalent to an NFA.
- Computes FIRST and FOLLOW sets, the LL(1) table, the canonical LR(0) collection
  and the SLR(1) table of a grammar, reporting every conflict.
- Parses sentences with those tables and tests words against automata.
- Serves all of the above as a JSON API.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setUp,
}

func init() {
	flags := rootCmd.PersistentFlags()
	rootFlags.maxStates = flags.Int("max-states", engine.DefaultMaxStates, "the largest number of states a construction may create (0 means no limit)")
	rootFlags.symbolOrder = flags.String("symbol-order", "declared", "the order symbols are listed in (declared|lexical)")
	rootFlags.nonTerminal = flags.String("nonterminals", "default", "which grammar symbols are non-terminals (default|uppercase)")
	rootFlags.trace = flags.String("trace", "Error", "trace level (Debug|Info|Error)")
	rootFlags.renderer = flags.String("renderer", "dot", "how diagrams are rendered (dot|source)")
}

func setUp(cmd *cobra.Command, args []string) error {
	initDisplay()
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracing.Select("alab").SetTraceLevel(tracing.TraceLevelFromString(*rootFlags.trace))
	return nil
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func newEngine() (*engine.Engine, error) {
	c, err := engine.NewConfig(*rootFlags.maxStates, *rootFlags.symbolOrder, *rootFlags.nonTerminal, *rootFlags.renderer, 0)
	if err != nil {
		return nil, err
	}
	return engine.New(c), nil
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
