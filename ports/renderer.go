package ports

import (
	"context"

	"betweenstats/domain/compare"
)

// StyleOptions is an immutable style value threaded through every render
// call. There is no process-wide style default to mutate.
type StyleOptions struct {
	Colors      []string `json:"colors,omitempty"`
	Orientation string   `json:"orientation,omitempty"` // "vertical" or "horizontal"
	ShowStats   bool     `json:"show_stats"`
	Violin      bool     `json:"violin"`
	Box         bool     `json:"box"`
	Scatter     bool     `json:"scatter"`
}

// DefaultStyle returns the baseline style value.
func DefaultStyle() StyleOptions {
	return StyleOptions{
		Orientation: "vertical",
		ShowStats:   true,
		Violin:      true,
		Box:         true,
		Scatter:     true,
	}
}

// Chart is a rendered comparison artifact.
type Chart struct {
	MIME string `json:"mime"`
	Data []byte `json:"data"`
}

// Renderer consumes the group samples, the computed result and its formatted
// annotation and produces a chart artifact. The annotation is plain text in
// the fixed grammar and is safe to embed in a math-typesetting layer; the
// renderer never recomputes statistics.
type Renderer interface {
	Render(ctx context.Context, groups []compare.Sample, result *compare.TestResult, annotation string, style StyleOptions) (*Chart, error)
}
