package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nihei9/alab/engine"
	verr "github.com/nihei9/alab/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateMarker(t *testing.T) {
	finals := []string{"q2", "q0"}
	tests := []struct {
		label    string
		expected string
	}{
		{label: "q0", expected: "->*q0"},
		{label: "q1", expected: "q1"},
		{label: "q2", expected: "*q2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, stateMarker(tt.label, "q0", finals))
	}
}

func TestWithSource(t *testing.T) {
	single := &verr.SpecError{
		Cause: verr.ErrInputSyntax,
		Row:   1,
	}
	withSource(single, "g.txt", "g.txt")
	assert.Equal(t, "g.txt", single.FilePath)
	assert.Equal(t, "g.txt", single.SourceName)

	multi := verr.SpecErrors{
		{Cause: verr.ErrInputSyntax, Row: 1},
		{Cause: verr.ErrInputSyntax, Row: 3},
	}
	withSource(multi, "", "stdin")
	for _, e := range multi {
		assert.Equal(t, "stdin", e.SourceName)
	}
}

func TestReadNFA(t *testing.T) {
	dir := t.TempDir()
	bare := filepath.Join(dir, "bare.json")
	require.NoError(t, os.WriteFile(bare, []byte(`{
  "states": ["q0", "q1"],
  "alphabet": ["a"],
  "transitions": {"q0": {"a": ["q1"]}},
  "start_state": "q0",
  "final_states": ["q1"]
}`), 0644))
	wrapped := filepath.Join(dir, "wrapped.json")
	require.NoError(t, os.WriteFile(wrapped, []byte(`{
  "nfa": {
    "states": ["q0", "q1"],
    "alphabet": ["a"],
    "transitions": {"q0": {"a": ["q1"]}},
    "start_state": "q0",
    "final_states": ["q1"]
  },
  "graph_image": ""
}`), 0644))

	for _, path := range []string{bare, wrapped} {
		doc, err := readNFA(path)
		require.NoError(t, err, path)
		assert.Equal(t, []string{"q0", "q1"}, doc.States)
		assert.Equal(t, "q0", doc.StartState)
		assert.Equal(t, []string{"q1"}, doc.Transitions["q0"]["a"])
	}

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"states": [`), 0644))
	_, err := readNFA(broken)
	assert.Error(t, err)
}

func newRecognizerFlags(regex, alphabet, accept string) *recognizerFlags {
	empty := ""
	method := "ll1"
	return &recognizerFlags{
		regex:    &regex,
		nfa:      &empty,
		alphabet: &alphabet,
		accept:   &accept,
		grammar:  &empty,
		method:   &method,
	}
}

func TestRecognizerFlags(t *testing.T) {
	e := engine.New(engine.DefaultConfig())

	tests := []struct {
		caption string
		flags   *recognizerFlags
		words   map[string]bool
	}{
		{
			caption: "regex",
			flags:   newRecognizerFlags("(a|b)*a", "", ""),
			words: map[string]bool{
				"a":   true,
				"bba": true,
				"":    false,
				"ab":  false,
			},
		},
		{
			caption: "single string",
			flags:   newRecognizerFlags("", "ab", "aba"),
			words: map[string]bool{
				"aba":  true,
				"ab":   false,
				"abab": false,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			r, err := tt.flags.recognizer(e)
			require.NoError(t, err)
			for w, expected := range tt.words {
				accepted, err := r.Recognize(w)
				require.NoError(t, err)
				assert.Equal(t, expected, accepted, "word %q", w)
			}
		})
	}

	_, err := newRecognizerFlags("", "", "").recognizer(e)
	assert.ErrorIs(t, err, errNoRecognizer)
}
