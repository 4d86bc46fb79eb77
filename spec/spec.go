// Package spec defines the JSON documents the analysis operations read and write.
package spec

type GenerateDFARequest struct {
	Alphabet     string `json:"alphabet"`
	AcceptString string `json:"accept_string"`
}

type GenerateNFARequest struct {
	Regex string `json:"regex"`
}

type NFAToDFARequest struct {
	NFA *NFA `json:"nfa"`
}

type GrammarRequest struct {
	Grammar string `json:"grammar"`
}

type ParseMethod string

const (
	ParseMethodLL1  = ParseMethod("ll1")
	ParseMethodSLR1 = ParseMethod("slr1")
)

type ParseRequest struct {
	Grammar string      `json:"grammar"`
	Method  ParseMethod `json:"method"`
	Input   string      `json:"input"`
}

// DFA lists transitions flattened to "state,symbol" keys.
type DFA struct {
	States      []string          `json:"states"`
	Alphabet    []string          `json:"alphabet"`
	Transitions map[string]string `json:"transitions"`
	StartState  string            `json:"start_state"`
	FinalStates []string          `json:"final_states"`
}

// NFA maps a state to its transitions per symbol. The empty symbol, or ε, is epsilon.
type NFA struct {
	States      []string                       `json:"states"`
	Alphabet    []string                       `json:"alphabet"`
	Transitions map[string]map[string][]string `json:"transitions"`
	StartState  string                         `json:"start_state"`
	FinalStates []string                       `json:"final_states"`
}

type DFAResponse struct {
	DFA        *DFA   `json:"dfa"`
	GraphImage string `json:"graph_image"`
}

type NFAResponse struct {
	NFA        *NFA   `json:"nfa"`
	GraphImage string `json:"graph_image"`
}

type LL1Conflict struct {
	NonTerminal string   `json:"non_terminal"`
	Terminal    string   `json:"terminal"`
	Productions []string `json:"productions"`
}

type LL1Response struct {
	FirstSets    map[string][]string          `json:"first_sets"`
	FollowSets   map[string][]string          `json:"follow_sets"`
	Terminals    []string                     `json:"terminals"`
	NonTerminals []string                     `json:"non_terminals"`
	ParseTable   map[string]map[string]string `json:"parse_table"`
	Conflicts    []*LL1Conflict               `json:"conflicts"`
	IsLL1        bool                         `json:"is_ll1"`
	Warnings     []string                     `json:"warnings,omitempty"`
}

type SLRConflict struct {
	Kind    string   `json:"kind"`
	State   int      `json:"state"`
	Symbol  string   `json:"symbol"`
	Actions []string `json:"actions"`
}

// SLRResponse holds ACTION and GOTO in one table: a terminal column holds an action text, Sn,
// Rn or Accept, and a non-terminal column holds the number of the next state.
type SLRResponse struct {
	Productions  []string                     `json:"productions"`
	ItemSets     map[string][]string          `json:"item_sets"`
	Terminals    []string                     `json:"terminals"`
	NonTerminals []string                     `json:"non_terminals"`
	ParseTable   map[string]map[string]string `json:"parse_table"`
	Conflicts    []*SLRConflict               `json:"conflicts"`
	IsSLR1       bool                         `json:"is_slr1"`
	Warnings     []string                     `json:"warnings,omitempty"`
}

type ParseStep struct {
	Stack  []string `json:"stack"`
	Input  []string `json:"input"`
	Action string   `json:"action"`
}

type Tree struct {
	Kind     string  `json:"kind"`
	Text     string  `json:"text,omitempty"`
	Row      int     `json:"row,omitempty"`
	Col      int     `json:"col,omitempty"`
	Children []*Tree `json:"children,omitempty"`
}

type SyntaxError struct {
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
}

type ParseResponse struct {
	Accepted    bool         `json:"accepted"`
	Steps       []*ParseStep `json:"steps"`
	Tree        *Tree        `json:"tree,omitempty"`
	SyntaxError *SyntaxError `json:"syntax_error,omitempty"`
}

// ErrorResponse is the body of a failed request. Kind names the error class, such as
// InputSyntaxError.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
}
