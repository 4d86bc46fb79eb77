package tester

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/alab/automaton"
	verr "github.com/nihei9/alab/error"
)

var synErrInvalidTestCase = verr.NewCause(verr.ErrInputSyntax, "a test case must be written as accept: <word> or reject: <word>")

type Expectation string

const (
	ExpectAccept = Expectation("accept")
	ExpectReject = Expectation("reject")
)

// TestCase expects a word to be accepted or rejected. Row is the line of the case in its file.
type TestCase struct {
	Expect Expectation
	Word   string
	Row    int
}

func (c *TestCase) String() string {
	return fmt.Sprintf("%v: %v", c.Expect, c.Word)
}

// ParseTestCases reads one case per line. Blank lines and lines starting with # are skipped, and
// the word is trimmed, so an empty word is written as accept: followed by nothing.
func ParseTestCases(r io.Reader) ([]*TestCase, error) {
	var cases []*TestCase
	var errs verr.SpecErrors
	s := bufio.NewScanner(r)
	row := 0
	for s.Scan() {
		row++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, ":")
		if i < 0 {
			errs = append(errs, &verr.SpecError{
				Cause: synErrInvalidTestCase,
				Row:   row,
			})
			continue
		}
		expect := Expectation(strings.TrimSpace(line[:i]))
		if expect != ExpectAccept && expect != ExpectReject {
			errs = append(errs, &verr.SpecError{
				Cause:  synErrInvalidTestCase,
				Detail: string(expect),
				Row:    row,
			})
			continue
		}
		cases = append(cases, &TestCase{
			Expect: expect,
			Word:   strings.TrimSpace(line[i+1:]),
			Row:    row,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return cases, nil
}

type TestCaseWithMetadata struct {
	TestCases []*TestCase
	FilePath  string
	Error     error
}

// ListTestCases reads a case file, or every case file under a directory.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCaseFile(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCases: c,
				FilePath:  testPath,
				Error:     err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCaseFile(testCasePath string) ([]*TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cases, err := ParseTestCases(f)
	if errs, ok := err.(verr.SpecErrors); ok {
		for _, e := range errs {
			e.FilePath = testCasePath
			e.SourceName = testCasePath
		}
	}
	return cases, err
}

// Recognizer decides whether a word belongs to a language.
type Recognizer interface {
	Recognize(word string) (bool, error)
}

// Machine is a finite automaton a word can be run on.
type Machine interface {
	Alphabet() *automaton.Alphabet
	Accepts(word []automaton.Symbol) bool
}

type machineRecognizer struct {
	m Machine
}

// NewMachineRecognizer runs words on an automaton. A word is split into symbols of the machine's
// alphabet; a word containing anything else fails with an AlphabetMismatch error.
func NewMachineRecognizer(m Machine) Recognizer {
	return &machineRecognizer{
		m: m,
	}
}

func (r *machineRecognizer) Recognize(word string) (bool, error) {
	syms, err := r.m.Alphabet().Tokenize(word)
	if err != nil {
		return false, err
	}
	return r.m.Accepts(syms), nil
}

type TestResult struct {
	TestCasePath string
	TestCase     *TestCase
	Accepted     bool
	Error        error
}

func (r *TestResult) Passed() bool {
	if r.Error != nil || r.TestCase == nil {
		return false
	}
	return r.Accepted == (r.TestCase.Expect == ExpectAccept)
}

func (r *TestResult) String() string {
	const indent = "    "

	where := r.TestCasePath
	if r.TestCase != nil {
		where = fmt.Sprintf("%v:%v: %v", r.TestCasePath, r.TestCase.Row, r.TestCase)
	}
	if r.Error != nil {
		msgLines := strings.Split(r.Error.Error(), "\n")
		return fmt.Sprintf("Failed %v:\n%v%v", where, indent, strings.Join(msgLines, "\n"+indent))
	}
	if !r.Passed() {
		got := "rejected"
		if r.Accepted {
			got = "accepted"
		}
		return fmt.Sprintf("Failed %v:\n%vthe word was %v", where, indent, got)
	}
	return fmt.Sprintf("Passed %v", where)
}

type Tester struct {
	Recognizer Recognizer
	Cases      []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		if c.Error != nil {
			rs = append(rs, &TestResult{
				TestCasePath: c.FilePath,
				Error:        c.Error,
			})
			continue
		}
		for _, tc := range c.TestCases {
			rs = append(rs, runTest(t.Recognizer, c.FilePath, tc))
		}
	}
	return rs
}

func runTest(r Recognizer, path string, c *TestCase) *TestResult {
	accepted, err := r.Recognize(c.Word)
	if err != nil {
		return &TestResult{
			TestCasePath: path,
			TestCase:     c,
			Error:        err,
		}
	}
	return &TestResult{
		TestCasePath: path,
		TestCase:     c,
		Accepted:     accepted,
	}
}
