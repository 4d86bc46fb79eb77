package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nihei9/alab/engine"
	"github.com/nihei9/alab/render"
	"github.com/nihei9/alab/spec"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := engine.DefaultConfig()
	c.Renderer = render.KindSource
	ts := httptest.NewServer(New(engine.New(c)))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path string, body string, v interface{}) int {
	t.Helper()
	res, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
	return res.StatusCode
}

func TestServer_Operations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "alab.server")
	defer teardown()

	ts := newTestServer(t)

	t.Run("generate-dfa", func(t *testing.T) {
		var res spec.DFAResponse
		status := post(t, ts, PathGenerateDFA, `{"alphabet": "ab", "accept_string": "ab"}`, &res)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, []string{"q0", "q1", "q2", "q_trap"}, res.DFA.States)
		assert.Equal(t, "q2", res.DFA.Transitions["q1,b"])
		assert.True(t, strings.HasPrefix(res.GraphImage, "data:"))
	})

	t.Run("generate-nfa", func(t *testing.T) {
		var res spec.NFAResponse
		status := post(t, ts, PathGenerateNFA, `{"regex": "a*"}`, &res)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, []string{"a"}, res.NFA.Alphabet)
		assert.NotEmpty(t, res.NFA.StartState)
	})

	t.Run("nfa-to-dfa", func(t *testing.T) {
		var res spec.DFAResponse
		status := post(t, ts, PathNFAToDFA, `{"nfa": {
			"states": ["q0", "q1"],
			"alphabet": ["a", "b"],
			"transitions": {"q0": {"a": ["q0", "q1"], "b": ["q1"]}},
			"start_state": "q0",
			"final_states": ["q1"]
		}}`, &res)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, []string{"{q0}", "{q0, q1}", "{q1}"}, res.DFA.States)
	})

	t.Run("ll1-parser", func(t *testing.T) {
		var res spec.LL1Response
		status := post(t, ts, PathLL1Parser, `{"grammar": "S -> a S | b"}`, &res)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, res.IsLL1)
		assert.Equal(t, "S -> a S", res.ParseTable["S"]["a"])
		assert.Equal(t, "S -> b", res.ParseTable["S"]["b"])
	})

	t.Run("slr-parser", func(t *testing.T) {
		var res spec.SLRResponse
		status := post(t, ts, PathSLRParser, `{"grammar": "S -> a S b | c"}`, &res)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Accept", res.ParseTable["1"]["$"])
		assert.Equal(t, []string{"S -> c ."}, res.ItemSets["I3"])
	})

	t.Run("parse", func(t *testing.T) {
		var res spec.ParseResponse
		status := post(t, ts, PathParse, `{"grammar": "S -> a S b | c", "method": "slr1", "input": "a c b"}`, &res)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, res.Accepted)
		require.NotNil(t, res.Tree)
		assert.Equal(t, "S", res.Tree.Kind)
	})
}

func TestServer_Errors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		caption string
		path    string
		body    string
		status  int
		kind    string
	}{
		{
			caption: "a symbol outside the alphabet",
			path:    PathGenerateDFA,
			body:    `{"alphabet": "ab", "accept_string": "abc"}`,
			status:  http.StatusBadRequest,
			kind:    "AlphabetMismatchError",
		},
		{
			caption: "a malformed regular expression",
			path:    PathGenerateNFA,
			body:    `{"regex": "(a"}`,
			status:  http.StatusBadRequest,
			kind:    "InputSyntaxError",
		},
		{
			caption: "a left-recursive grammar",
			path:    PathLL1Parser,
			body:    `{"grammar": "E -> E + id | id"}`,
			status:  http.StatusBadRequest,
			kind:    "LeftRecursionError",
		},
		{
			caption: "a malformed document",
			path:    PathSLRParser,
			body:    `{"grammar": `,
			status:  http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			var res spec.ErrorResponse
			status := post(t, ts, tt.path, tt.body, &res)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, res.Kind)
			assert.NotEmpty(t, res.Detail)
			assert.Equal(t, http.StatusText(tt.status), res.Error)
		})
	}
}

func TestServer_Methods(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.URL + PathGenerateDFA)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+PathGenerateDFA, nil)
	require.NoError(t, err)
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), "POST")
}
