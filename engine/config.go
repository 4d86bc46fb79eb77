package engine

import (
	"fmt"
	"time"

	"github.com/nihei9/alab/grammar"
	"github.com/nihei9/alab/render"
)

const (
	DefaultMaxStates      = 4096
	DefaultRequestTimeout = 10 * time.Second
)

// Config is shared by every request an Engine serves and is never modified after New.
type Config struct {
	// MaxStates bounds the states of a Thompson NFA, a subset-constructed DFA and an LR(0)
	// collection. Zero or less means no limit.
	MaxStates int

	SymbolOrder    grammar.SymbolOrder
	NonTerminal    grammar.Convention
	RequestTimeout time.Duration
	Renderer       render.Kind
}

func DefaultConfig() *Config {
	return &Config{
		MaxStates:      DefaultMaxStates,
		SymbolOrder:    grammar.OrderDeclared,
		NonTerminal:    grammar.ConventionDefault,
		RequestTimeout: DefaultRequestTimeout,
		Renderer:       render.KindDot,
	}
}

// NewConfig builds a configuration from the textual values command-line flags carry. Empty
// values select the defaults.
func NewConfig(maxStates int, symbolOrder, nonTerminal, renderer string, timeout time.Duration) (*Config, error) {
	c := DefaultConfig()
	c.MaxStates = maxStates
	var err error
	c.SymbolOrder, err = grammar.ParseSymbolOrder(symbolOrder)
	if err != nil {
		return nil, err
	}
	c.NonTerminal, err = grammar.ParseConvention(nonTerminal)
	if err != nil {
		return nil, err
	}
	c.Renderer, err = render.ParseKind(renderer)
	if err != nil {
		return nil, err
	}
	if timeout < 0 {
		return nil, fmt.Errorf("a request timeout cannot be negative: %v", timeout)
	}
	if timeout > 0 {
		c.RequestTimeout = timeout
	}
	return c, nil
}
