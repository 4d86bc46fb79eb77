package strdfa

import (
	"errors"
	"testing"

	"github.com/nihei9/alab/automaton"
	verr "github.com/nihei9/alab/error"
)

func toSymbols(s string) []automaton.Symbol {
	var syms []automaton.Symbol
	for _, r := range s {
		syms = append(syms, automaton.Symbol(string(r)))
	}
	return syms
}

func TestBuild(t *testing.T) {
	dfa, err := BuildFromString("ab", "aba")
	if err != nil {
		t.Fatal(err)
	}

	states := dfa.States()
	if len(states) != 5 {
		t.Fatalf("unexpected state count: %v", len(states))
	}
	for i, want := range []string{"q0", "q1", "q2", "q3", TrapLabel} {
		if states[i].Label != want {
			t.Fatalf("unexpected label of #%v; want: %v, got: %v", i, want, states[i].Label)
		}
	}
	if !dfa.IsTotal() {
		t.Fatalf("the DFA must be total")
	}
	if ids := dfa.Finals().IDs(); len(ids) != 1 || ids[0] != 3 {
		t.Fatalf("unexpected final states: %v", ids)
	}

	tests := []struct {
		word     string
		accepted bool
	}{
		{word: "aba", accepted: true},
		{word: "", accepted: false},
		{word: "ab", accepted: false},
		{word: "abab", accepted: false},
		{word: "b", accepted: false},
		{word: "abb", accepted: false},
		{word: "abaa", accepted: false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if dfa.Accepts(toSymbols(tt.word)) != tt.accepted {
				t.Fatalf("unexpected result; want: %v", tt.accepted)
			}
		})
	}
}

func TestBuild_AcceptsOnlyTarget(t *testing.T) {
	alphabet, err := automaton.ParseAlphabet("abc")
	if err != nil {
		t.Fatal(err)
	}
	target := "cab"
	dfa, err := Build(alphabet, toSymbols(target))
	if err != nil {
		t.Fatal(err)
	}
	var walk func(prefix string, depth int)
	walk = func(prefix string, depth int) {
		if dfa.Accepts(toSymbols(prefix)) != (prefix == target) {
			t.Fatalf("unexpected result for %q", prefix)
		}
		if depth == 0 {
			return
		}
		for _, c := range []string{"a", "b", "c"} {
			walk(prefix+c, depth-1)
		}
	}
	walk("", 5)
}

func TestBuild_EmptyTarget(t *testing.T) {
	dfa, err := BuildFromString("a", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(dfa.States()) != 2 {
		t.Fatalf("unexpected state count: %v", len(dfa.States()))
	}
	if !dfa.Accepts(nil) || dfa.Accepts(toSymbols("a")) {
		t.Fatalf("the DFA must accept the empty string only")
	}
}

func TestBuild_AlphabetMismatch(t *testing.T) {
	_, err := BuildFromString("ab", "abc")
	if !errors.Is(err, verr.ErrAlphabetMismatch) {
		t.Fatalf("unexpected error: %v", err)
	}
	var specErr *verr.SpecError
	if !errors.As(err, &specErr) || specErr.Col != 3 {
		t.Fatalf("the error must point at the offending symbol: %v", err)
	}
	if verr.ClassName(err) != "AlphabetMismatchError" {
		t.Fatalf("unexpected class: %v", verr.ClassName(err))
	}
}
