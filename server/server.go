/*
Package server exposes the engine over HTTP. Every operation is a POST of a JSON document to its
path under /api/ and answers with a JSON document. A failed request answers with a non-2xx
status and an ErrorResponse body.
*/
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nihei9/alab/engine"
	verr "github.com/nihei9/alab/error"
	"github.com/nihei9/alab/spec"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alab.server'
func tracer() tracing.Trace {
	return tracing.Select("alab.server")
}

const (
	PathGenerateDFA = "/api/generate-dfa/"
	PathGenerateNFA = "/api/generate-nfa/"
	PathNFAToDFA    = "/api/nfa-to-dfa/"
	PathLL1Parser   = "/api/ll1-parser/"
	PathSLRParser   = "/api/slr-parser/"
	PathParse       = "/api/parse/"
)

// maxBodySize bounds a request document.
const maxBodySize = 1 << 20

var errTimeout = errors.New("the request timed out")

type Server struct {
	engine  *engine.Engine
	timeout time.Duration
	mux     *http.ServeMux
}

func New(e *engine.Engine) *Server {
	s := &Server{
		engine:  e,
		timeout: e.Config().RequestTimeout,
		mux:     http.NewServeMux(),
	}
	s.mux.Handle(PathGenerateDFA, handle(s, e.BuildStringDFA))
	s.mux.Handle(PathGenerateNFA, handle(s, e.BuildRegexNFA))
	s.mux.Handle(PathNFAToDFA, handle(s, e.ConvertNFA))
	s.mux.Handle(PathLL1Parser, handle(s, e.AnalyzeLL1))
	s.mux.Handle(PathSLRParser, handle(s, e.AnalyzeSLR))
	s.mux.Handle(PathParse, handle(s, e.Parse))
	return s
}

// ServeHTTP answers CORS preflight requests and allows any origin.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is done, then shuts the server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		tracer().Infof("listening on %v", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	tracer().Infof("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type outcome[Res any] struct {
	res *Res
	err error
}

func handle[Req any, Res any](s *Server, op func(ctx context.Context, req *Req) (*Res, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("%v is not allowed; use POST", r.Method))
			return
		}

		req := new(Req)
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err := dec.Decode(req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("malformed request document: %w", err))
			return
		}

		ctx := r.Context()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		done := make(chan outcome[Res], 1)
		go func() {
			res, err := op(ctx, req)
			done <- outcome[Res]{res: res, err: err}
		}()

		var o outcome[Res]
		select {
		case o = <-done:
		case <-ctx.Done():
			tracer().Errorf("%v: %v", r.URL.Path, errTimeout)
			writeError(w, http.StatusServiceUnavailable, errTimeout)
			return
		}
		if o.err != nil {
			tracer().Errorf("%v: %v", r.URL.Path, o.err)
			writeError(w, statusOf(o.err), o.err)
			return
		}
		tracer().Infof("%v: ok", r.URL.Path)
		writeJSON(w, http.StatusOK, o.res)
	})
}

// statusOf maps the classes of analysis errors to 400; anything else is a server fault.
func statusOf(err error) int {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	if verr.ClassName(err) != "" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, &spec.ErrorResponse{
		Detail: err.Error(),
		Error:  http.StatusText(status),
		Kind:   verr.ClassName(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		tracer().Errorf("cannot encode a response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
