// Package render turns the structural description of an automaton into an image reference a
// client can display directly, such as a data URI.
package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os/exec"
	"strings"

	"github.com/nihei9/alab/automaton"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'alab.render'
func tracer() tracing.Trace {
	return tracing.Select("alab.render")
}

type Kind string

const (
	KindDot    = Kind("dot")
	KindSource = Kind("source")
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindDot:
		return KindDot, nil
	case KindSource:
		return KindSource, nil
	}
	return "", fmt.Errorf("unknown renderer: %v (dot|source)", s)
}

// Renderer returns an image reference for a graph.
type Renderer interface {
	Render(ctx context.Context, g *automaton.Graph) (string, error)
}

// New returns the renderer of a kind. A dot renderer falls back to DOT source when the Graphviz
// command cannot be found.
func New(kind Kind) Renderer {
	if kind == KindSource {
		return &SourceRenderer{}
	}
	return &GraphvizRenderer{
		Command:  "dot",
		Fallback: &SourceRenderer{},
	}
}

const (
	mediaTypePNG = "image/png"
	mediaTypeDOT = "text/vnd.graphviz"
)

func dataURI(mediaType string, data []byte) string {
	return fmt.Sprintf("data:%v;base64,%v", mediaType, base64.StdEncoding.EncodeToString(data))
}

// SourceRenderer returns the DOT source itself as a data:text/vnd.graphviz URI.
type SourceRenderer struct{}

func (r *SourceRenderer) Render(ctx context.Context, g *automaton.Graph) (string, error) {
	var b bytes.Buffer
	if err := g.WriteDOT(&b); err != nil {
		return "", err
	}
	return dataURI(mediaTypeDOT, b.Bytes()), nil
}

// GraphvizRenderer rasterizes a graph with the Graphviz dot command into a PNG data URI.
type GraphvizRenderer struct {
	Command string

	// Fallback renders the graph when Command is not installed. Without a fallback a missing
	// command is an error.
	Fallback Renderer
}

func (r *GraphvizRenderer) Render(ctx context.Context, g *automaton.Graph) (string, error) {
	path, err := exec.LookPath(r.Command)
	if err != nil {
		if r.Fallback != nil {
			tracer().Debugf("%v is not available; falling back to DOT source", r.Command)
			return r.Fallback.Render(ctx, g)
		}
		return "", err
	}

	var src bytes.Buffer
	if err := g.WriteDOT(&src); err != nil {
		return "", err
	}
	var out, errOut bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "-Tpng")
	cmd.Stdin = &src
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errOut.String())
		if msg != "" {
			return "", fmt.Errorf("%v failed: %w: %v", r.Command, err, msg)
		}
		return "", fmt.Errorf("%v failed: %w", r.Command, err)
	}

	tracer().Debugf("rendered %q: %v bytes", g.Title, out.Len())

	return dataURI(mediaTypePNG, out.Bytes()), nil
}
