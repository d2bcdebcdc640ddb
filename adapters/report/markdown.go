// Package report renders a comparison into a markdown report and its HTML
// form. It implements ports.Renderer; the "chart" artifact is the report
// document rather than a raster image.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"

	"betweenstats/domain/compare"
	"betweenstats/ports"
)

// MIME types of the two output forms.
const (
	MIMEMarkdown = "text/markdown"
	MIMEHTML     = "text/html"
)

// MarkdownRenderer writes the comparison report. With HTML set the rendered
// chart is a complete HTML page, otherwise the raw markdown.
type MarkdownRenderer struct {
	HTML bool
}

// NewMarkdownRenderer creates a renderer producing raw markdown.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// NewHTMLRenderer creates a renderer producing a standalone HTML page.
func NewHTMLRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{HTML: true}
}

// Render builds the report document. Statistics are taken from the result
// as-is; nothing is recomputed here.
func (r *MarkdownRenderer) Render(ctx context.Context, groups []compare.Sample, result *compare.TestResult, annotation string, style ports.StyleOptions) (*ports.Chart, error) {
	md := r.buildMarkdown(groups, result, annotation, style)
	if !r.HTML {
		return &ports.Chart{MIME: MIMEMarkdown, Data: []byte(md)}, nil
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Title: result.TestName,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return &ports.Chart{MIME: MIMEHTML, Data: markdown.Render(doc, renderer)}, nil
}

func (r *MarkdownRenderer) buildMarkdown(groups []compare.Sample, result *compare.TestResult, annotation string, style ports.StyleOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", result.TestName)
	fmt.Fprintf(&b, "`%s`\n\n", annotation)

	if result.EffectName != "" {
		fmt.Fprintf(&b, "Effect size: %s = %.3f\n\n", result.EffectName, result.EffectSize)
	}

	if style.ShowStats {
		b.WriteString("## Groups\n\n")
		b.WriteString("| Group | n | Mean | Median | SD |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, g := range groups {
			mean, _ := stats.Mean(g.Values)
			median, _ := stats.Median(g.Values)
			sd, _ := stats.StandardDeviationSample(g.Values)
			fmt.Fprintf(&b, "| %s | %d | %.4f | %.4f | %.4f |\n",
				g.Label, g.N(), mean, median, sd)
		}
		b.WriteString("\n")
	}
	return b.String()
}
