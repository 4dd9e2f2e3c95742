// Package report renders coefficient matrices as markdown tables and HTML
// fragments for notebooks and generated reports.
package report

import (
	"fmt"
	"math"
	"strings"

	"edakit/adapters/stats/matrix"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
)

// MatrixMarkdown renders m as a titled markdown table with two-decimal cells
func MatrixMarkdown(m *matrix.Matrix) string {
	if m == nil || m.Size() == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", m.Title())

	b.WriteString("| |")
	for _, name := range m.Columns {
		fmt.Fprintf(&b, " %s |", escapeCell(name))
	}
	b.WriteString("\n|---|")
	for range m.Columns {
		b.WriteString("---:|")
	}
	b.WriteString("\n")

	for i, name := range m.Columns {
		fmt.Fprintf(&b, "| **%s** |", escapeCell(name))
		for j := range m.Columns {
			fmt.Fprintf(&b, " %s |", formatCoefficient(m.At(i, j)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// MatrixHTML renders the markdown table of m to HTML
func MatrixHTML(m *matrix.Matrix) string {
	md := MatrixMarkdown(m)
	if md == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	return string(markdown.ToHTML([]byte(md), p, nil))
}

func formatCoefficient(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}

// escapeCell keeps a column name from breaking the table row
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
