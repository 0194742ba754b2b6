package view

import (
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown writes the rows as a Markdown table in rank order. Absent
// scores are shown as "-".
func (v *View) RenderMarkdown(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", v.opts.Title)
	fmt.Fprintf(&b, "%s\n\n", v.opts.Subtitle)
	for _, line := range Legend {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n| Rank | Model | Baseline | BM25 | Oracle |\n")
	b.WriteString("|---:|---|---:|---:|---:|\n")
	for _, row := range v.Rows() {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			row.Rank,
			escapeCell(row.Name),
			cell(row, "baseline"),
			cell(row, "bm25"),
			cell(row, "oracle"),
		)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func cell(row Row, label string) string {
	m, ok := row.Marker(label)
	if !ok || m.Value == "" {
		return "-"
	}
	return m.Value
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
