// Package report renders a human-readable diagnostics report for one
// bootstrap run.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"

	"psyfit/ports"
)

// BuildMarkdown renders a run record as a markdown report
func BuildMarkdown(record *ports.RunRecord) string {
	r := record.Result
	var b strings.Builder

	fmt.Fprintf(&b, "# Bootstrap run %s\n\n", record.ID)
	fmt.Fprintf(&b, "- Model: sigmoid `%s`, core `%s`, %d-AFC\n", record.Sigmoid, record.Core, record.Nafc)
	fmt.Fprintf(&b, "- Samples: %d (%s)\n", record.Samples, bootstrapKind(record.Parametric))
	fmt.Fprintf(&b, "- Blocks: %d, cuts: %d\n\n", record.NBlocks, record.NCuts)

	b.WriteString("## Parameter confidence bounds (95%)\n\n")
	b.WriteString("| parameter | lower | upper |\n|---|---|---|\n")
	for i := range r.Lower {
		fmt.Fprintf(&b, "| %d | %.4f | %.4f |\n", i, r.Lower[i], r.Upper[i])
	}
	b.WriteString("\n")

	b.WriteString("## Deviance\n\n")
	if median, err := stats.Median(r.Deviance); err == nil {
		fmt.Fprintf(&b, "Median bootstrap deviance: %.4f\n\n", median)
	}

	b.WriteString("## Cut diagnostics\n\n")
	b.WriteString("| cut | bias | acceleration |\n|---|---|---|\n")
	for j := range r.Bias {
		fmt.Fprintf(&b, "| %d | %.4f | %.4f |\n", j, r.Bias[j], r.Acceleration[j])
	}
	b.WriteString("\n")

	b.WriteString("## Blocks\n\n")
	b.WriteString("| block | outlier | influence |\n|---|---|---|\n")
	for i := range r.Outliers {
		fmt.Fprintf(&b, "| %d | %v | %.4f |\n", i, r.Outliers[i], r.Influential[i])
	}

	return b.String()
}

// RenderHTML converts a markdown report to HTML
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func bootstrapKind(parametric bool) string {
	if parametric {
		return "parametric"
	}
	return "non-parametric"
}
