// internal/tui/render.go
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/ccboard/internal/leaderboard"
	"github.com/mwiater/ccboard/internal/util"
	"github.com/mwiater/ccboard/internal/view"
)

const (
	nameColumnWidth = 22
	minTrackWidth   = 10
	barGlyph        = "█"
	markerGlyph     = '▼'
)

// Gradient end points, matching the HTML bar.
var (
	gradientStart = [3]float64{66, 164, 235}
	gradientEnd   = [3]float64{162, 119, 255}
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	nameStyle     = lipgloss.NewStyle().Bold(true)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	markerStyles = map[string]lipgloss.Style{
		leaderboard.GroupBaseline: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		leaderboard.GroupBM25:     lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		leaderboard.GroupOracle:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
	}
)

// trackWidth is the number of cells available for bars at a given terminal width.
func trackWidth(termWidth int) int {
	return util.Max(termWidth-nameColumnWidth-3, minTrackWidth)
}

// cellsPerUnit fits the largest offset of any row into width cells.
func cellsPerUnit(rows []view.Row, width int) float64 {
	maxValue := 0.0
	for _, r := range rows {
		for _, m := range r.Markers {
			if v := m.Offset; !math.IsInf(v, 0) && v > maxValue {
				maxValue = v
			}
		}
	}
	if maxValue <= 0 {
		return 0
	}
	return float64(width-1) / maxValue
}

// toCells converts a pixel offset to a cell count within [0, width-1].
// Negative and NaN offsets map to 0; +Inf maps to the last cell.
func toCells(offset, perUnit float64, width int) int {
	if width <= 0 {
		return 0
	}
	v := math.Round(offset * perUnit)
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= float64(width-1):
		return width - 1
	}
	return int(v)
}

// markerLine places one glyph per marker; later markers overwrite earlier ones
// when they land on the same cell.
func markerLine(row view.Row, width int, perUnit float64) string {
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}
	for _, m := range row.Markers {
		col := toCells(m.Offset, perUnit, width)
		style, ok := markerStyles[m.Label]
		if !ok {
			style = lipgloss.NewStyle()
		}
		cells[col] = style.Render(string(markerGlyph))
	}
	return strings.TrimRight(strings.Join(cells, ""), " ")
}

// gradientBar renders n cells blending from the start to the end colour.
func gradientBar(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(blend(t))).Render(barGlyph))
	}
	return b.String()
}

// blend returns the hex colour at position t in [0,1] along the bar gradient.
func blend(t float64) string {
	var c [3]int
	for i := range c {
		c[i] = int(math.Round(gradientStart[i] + (gradientEnd[i]-gradientStart[i])*t))
	}
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

func markerSummary(row view.Row) string {
	parts := make([]string, 0, len(row.Markers))
	for _, m := range row.Markers {
		value := m.Value
		if value == "" {
			value = "-"
		}
		style, ok := markerStyles[m.Label]
		if !ok {
			style = valueStyle
		}
		parts = append(parts, style.Render(m.Label)+" "+valueStyle.Render(value))
	}
	return strings.Join(parts, "  ")
}

// renderHeader draws the title block shared by every state.
func renderHeader(opts view.Options) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(opts.Title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(opts.Subtitle))
	b.WriteString("\n\n")
	for _, line := range view.Legend {
		b.WriteString(subtitleStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRows draws every row for a terminal of the given width.
func renderRows(rows []view.Row, termWidth int) string {
	if len(rows) == 0 {
		return emptyStyle.Render("No models to show.")
	}
	width := trackWidth(termWidth)
	perUnit := cellsPerUnit(rows, width)
	indent := strings.Repeat(" ", nameColumnWidth+2)

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(indent)
		b.WriteString(markerLine(row, width, perUnit))
		b.WriteString("\n")
		b.WriteString(nameStyle.Render(util.PadLeft(row.Name, nameColumnWidth)))
		b.WriteString("  ")
		b.WriteString(gradientBar(toCells(row.BarWidth, perUnit, width)))
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(markerSummary(row))
		b.WriteString("\n")
	}
	return b.String()
}
