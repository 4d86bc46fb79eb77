package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	verr "github.com/nihei9/alab/error"
	"github.com/nihei9/alab/spec"
	"github.com/pterm/pterm"
)

// readSource reads a file, or stdin when the path is empty or -.
func readSource(path string) (string, string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(b), "stdin", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("Cannot read %v: %w", path, err)
	}
	return string(b), path, nil
}

// withSource attaches the file an error was found in, so its message quotes the offending line.
func withSource(err error, path, name string) error {
	switch e := err.(type) {
	case *verr.SpecError:
		e.FilePath = path
		e.SourceName = name
	case verr.SpecErrors:
		for _, se := range e {
			se.FilePath = path
			se.SourceName = name
		}
	}
	return err
}

func writeJSONFile(path string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func renderTable(data pterm.TableData) {
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func stateMarker(label, start string, finals []string) string {
	m := label
	for _, f := range finals {
		if f == label {
			m = "*" + m
			break
		}
	}
	if label == start {
		m = "->" + m
	}
	return m
}

func printDFA(doc *spec.DFA) {
	data := pterm.TableData{
		append([]string{"state"}, doc.Alphabet...),
	}
	for _, s := range doc.States {
		row := []string{stateMarker(s, doc.StartState, doc.FinalStates)}
		for _, sym := range doc.Alphabet {
			to, ok := doc.Transitions[s+","+sym]
			if !ok {
				to = "-"
			}
			row = append(row, to)
		}
		data = append(data, row)
	}
	renderTable(data)
}

func printNFA(doc *spec.NFA) {
	syms := append([]string{""}, doc.Alphabet...)
	header := []string{"state"}
	for _, sym := range syms {
		if sym == "" {
			sym = "ε"
		}
		header = append(header, sym)
	}
	data := pterm.TableData{header}
	for _, s := range doc.States {
		row := []string{stateMarker(s, doc.StartState, doc.FinalStates)}
		for _, sym := range syms {
			tos := doc.Transitions[s][sym]
			if len(tos) == 0 {
				row = append(row, "-")
				continue
			}
			row = append(row, "{"+strings.Join(tos, ", ")+"}")
		}
		data = append(data, row)
	}
	renderTable(data)
}

func printWarnings(ws []string) {
	for _, w := range ws {
		pterm.Warning.Println(w)
	}
}

func printLL1(res *spec.LL1Response) {
	printWarnings(res.Warnings)

	pterm.Info.Println("FIRST and FOLLOW")
	sets := pterm.TableData{
		{"non-terminal", "FIRST", "FOLLOW"},
	}
	for _, nt := range res.NonTerminals {
		sets = append(sets, []string{
			nt,
			"{" + strings.Join(res.FirstSets[nt], ", ") + "}",
			"{" + strings.Join(res.FollowSets[nt], ", ") + "}",
		})
	}
	renderTable(sets)

	pterm.Info.Println("LL(1) parsing table")
	tab := pterm.TableData{
		append([]string{""}, res.Terminals...),
	}
	for _, nt := range res.NonTerminals {
		row := []string{nt}
		for _, term := range res.Terminals {
			row = append(row, res.ParseTable[nt][term])
		}
		tab = append(tab, row)
	}
	renderTable(tab)

	if res.IsLL1 {
		pterm.Success.Println("The grammar is LL(1)")
		return
	}
	for _, c := range res.Conflicts {
		pterm.Error.Println(fmt.Sprintf("conflict at M[%v, %v]: %v", c.NonTerminal, c.Terminal, strings.Join(c.Productions, " / ")))
	}
}

func printSLR(res *spec.SLRResponse) {
	printWarnings(res.Warnings)

	pterm.Info.Println("Productions")
	for i, p := range res.Productions {
		pterm.Println(fmt.Sprintf("%4v  %v", i, p))
	}

	pterm.Info.Println("Canonical LR(0) collection")
	for i := 0; i < len(res.ItemSets); i++ {
		label := "I" + strconv.Itoa(i)
		pterm.Println(label + ":")
		for _, item := range res.ItemSets[label] {
			pterm.Println("    " + item)
		}
	}

	pterm.Info.Println("SLR(1) parsing table")
	tab := pterm.TableData{
		append(append([]string{"state"}, res.Terminals...), res.NonTerminals...),
	}
	states := make([]int, 0, len(res.ParseTable))
	for s := range res.ParseTable {
		n, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		states = append(states, n)
	}
	sort.Ints(states)
	for _, n := range states {
		row := []string{strconv.Itoa(n)}
		cells := res.ParseTable[strconv.Itoa(n)]
		for _, sym := range res.Terminals {
			row = append(row, cells[sym])
		}
		for _, sym := range res.NonTerminals {
			row = append(row, cells[sym])
		}
		tab = append(tab, row)
	}
	renderTable(tab)

	if res.IsSLR1 {
		pterm.Success.Println("The grammar is SLR(1)")
		return
	}
	for _, c := range res.Conflicts {
		pterm.Error.Println(fmt.Sprintf("%v conflict at ACTION[%v, %v]: %v", c.Kind, c.State, c.Symbol, strings.Join(c.Actions, " / ")))
	}
}

func printParse(res *spec.ParseResponse) {
	steps := pterm.TableData{
		{"stack", "input", "action"},
	}
	for _, s := range res.Steps {
		steps = append(steps, []string{
			strings.Join(s.Stack, " "),
			strings.Join(s.Input, " "),
			s.Action,
		})
	}
	renderTable(steps)

	if !res.Accepted {
		if synErr := res.SyntaxError; synErr != nil {
			pterm.Error.Println(fmt.Sprintf("%v:%v: %v", synErr.Row, synErr.Col, synErr.Message))
		}
		return
	}
	pterm.Success.Println("accepted")
	if res.Tree != nil {
		root := pterm.NewTreeFromLeveledList(leveledTree(res.Tree, pterm.LeveledList{}, 0))
		pterm.DefaultTree.WithRoot(root).Render()
	}
}

func leveledTree(t *spec.Tree, ll pterm.LeveledList, level int) pterm.LeveledList {
	text := t.Kind
	if t.Text != "" {
		text = fmt.Sprintf("%v %q", t.Kind, t.Text)
	}
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  text,
	})
	for _, c := range t.Children {
		ll = leveledTree(c, ll, level+1)
	}
	return ll
}
