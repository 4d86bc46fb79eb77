package tester

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	verr "github.com/nihei9/alab/error"
	"github.com/nihei9/alab/regex"
	"github.com/nihei9/alab/strdfa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTestCases(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		cases   []*TestCase
		rows    []int
	}{
		{
			caption: "accept and reject cases",
			src: `
# comment
accept: aba
reject:ab
accept:
`,
			cases: []*TestCase{
				{Expect: ExpectAccept, Word: "aba", Row: 3},
				{Expect: ExpectReject, Word: "ab", Row: 4},
				{Expect: ExpectAccept, Word: "", Row: 5},
			},
		},
		{
			caption: "a line without a colon",
			src:     "accept aba\nreject: b",
			rows:    []int{1},
		},
		{
			caption: "an unknown expectation",
			src:     "accept: a\nmaybe: b\nwhatever: c",
			rows:    []int{2, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			cases, err := ParseTestCases(strings.NewReader(tt.src))
			if tt.rows != nil {
				assert.ErrorIs(t, err, synErrInvalidTestCase)
				var errs verr.SpecErrors
				require.True(t, errors.As(err, &errs))
				var rows []int
				for _, e := range errs {
					rows = append(rows, e.Row)
				}
				assert.Equal(t, tt.rows, rows)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cases, cases)
		})
	}
}

func TestTester_Run(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
	}
	write("1.test", "accept: aba\nreject: ab\naccept: ab\n")
	write("2.test", "reject: abc\n")
	write("3.test", "nothing\n")

	dfa, err := strdfa.BuildFromString("ab", "aba")
	require.NoError(t, err)
	tester := &Tester{
		Recognizer: NewMachineRecognizer(dfa),
		Cases:      ListTestCases(dir),
	}
	rs := tester.Run()
	require.Len(t, rs, 5)

	passed := []bool{true, true, false, false, false}
	for i, r := range rs {
		assert.Equal(t, passed[i], r.Passed(), r.String())
	}
	assert.True(t, strings.HasPrefix(rs[0].String(), "Passed "))
	assert.Contains(t, rs[2].String(), "the word was rejected")
	assert.ErrorIs(t, rs[3].Error, verr.ErrAlphabetMismatch)
	assert.ErrorIs(t, rs[4].Error, synErrInvalidTestCase)
}

func TestMachineRecognizer_NFA(t *testing.T) {
	nfa, _, err := regex.NewNFA("(a|b)*a", 0)
	require.NoError(t, err)
	r := NewMachineRecognizer(nfa)

	tests := []struct {
		word     string
		accepted bool
	}{
		{word: "a", accepted: true},
		{word: "b b a", accepted: true},
		{word: "", accepted: false},
		{word: "ab", accepted: false},
	}
	for _, tt := range tests {
		accepted, err := r.Recognize(tt.word)
		require.NoError(t, err)
		assert.Equal(t, tt.accepted, accepted, tt.word)
	}
}

func TestListTestCases_Missing(t *testing.T) {
	cs := ListTestCases(filepath.Join(t.TempDir(), "missing"))
	require.Len(t, cs, 1)
	assert.Error(t, cs[0].Error)
}
