package error

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// These are the classes every error reported by alab belongs to. Callers test them with errors.Is.
var (
	ErrInputSyntax        = errors.New("input syntax error")
	ErrAlphabetMismatch   = errors.New("alphabet mismatch")
	ErrLeftRecursion      = errors.New("left recursion")
	ErrResourceExhaustion = errors.New("resource exhaustion")
)

var classNames = []struct {
	class error
	name  string
}{
	{class: ErrInputSyntax, name: "InputSyntaxError"},
	{class: ErrAlphabetMismatch, name: "AlphabetMismatchError"},
	{class: ErrLeftRecursion, name: "LeftRecursionError"},
	{class: ErrResourceExhaustion, name: "ResourceExhaustionError"},
}

// ClassName returns the name of the class err belongs to, or an empty string when err is not
// one of ours.
func ClassName(err error) string {
	for _, c := range classNames {
		if errors.Is(err, c.class) {
			return c.name
		}
	}
	return ""
}

// Cause is a specific reason of an error. It unwraps to its class.
type Cause struct {
	class   error
	message string
}

func NewCause(class error, message string) *Cause {
	return &Cause{
		class:   class,
		message: message,
	}
}

func (c *Cause) Error() string {
	return c.message
}

func (c *Cause) Unwrap() error {
	return c.class
}

type SpecError struct {
	Cause      error
	Detail     string
	FilePath   string
	SourceName string
	Row        int
	Col        int
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Row != 0 && e.Col != 0 {
		fmt.Fprintf(&b, "%v:%v: ", e.Row, e.Col)
	} else if e.Row != 0 {
		fmt.Fprintf(&b, "%v: ", e.Row)
	} else if e.Col != 0 {
		fmt.Fprintf(&b, "position %v: ", e.Col)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	line := readLine(e.FilePath, e.Row)
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
	}

	return b.String()
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

type SpecErrors []*SpecError

func (e SpecErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v", e[0])
	for _, err := range e[1:] {
		fmt.Fprintf(&b, "\n%v", err)
	}

	return b.String()
}

// Is reports whether any of the errors matches target.
func (e SpecErrors) Is(target error) bool {
	for _, err := range e {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func readLine(filePath string, row int) string {
	if filePath == "" || row <= 0 {
		return ""
	}

	f, err := os.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	i := 1
	s := bufio.NewScanner(f)
	for s.Scan() {
		if i == row {
			return s.Text()
		}
		i++
	}

	return ""
}
