package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var replFlags *recognizerFlags

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Test words interactively",
		Long: `repl reads one word per line and tells whether the language chosen by the flags
accepts it. An empty line is skipped, so the empty word is entered as "".
Quit with quit or <ctrl>D.`,
		Example: `  alab repl --alphabet ab --accept aba`,
		Args:    cobra.NoArgs,
		RunE:    runREPL,
	}
	replFlags = addRecognizerFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	r, err := replFlags.recognizer(e)
	if err != nil {
		return err
	}
	repl, err := readline.New("alab> ")
	if err != nil {
		return err
	}
	defer repl.Close()

	pterm.Info.Println("Quit with quit or <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if line == "quit" {
			break
		}
		if line == `""` {
			line = ""
		}
		accepted, err := r.Recognize(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if accepted {
			pterm.Success.Println("accepted")
		} else {
			pterm.Warning.Println("rejected")
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}
