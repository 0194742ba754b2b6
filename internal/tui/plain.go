package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mwiater/ccboard/internal/leaderboard"
	"github.com/mwiater/ccboard/internal/util"
	"github.com/mwiater/ccboard/internal/view"
)

var (
	plainTitle    = color.New(color.Bold)
	plainRank     = color.New(color.FgHiBlack)
	plainBM25     = color.New(color.FgHiMagenta, color.Bold)
	plainBaseline = color.New(color.FgWhite)
	plainOracle   = color.New(color.FgGreen)
	plainBar      = color.New(color.FgHiBlue)
)

// PlainOptions controls WritePlain.
type PlainOptions struct {
	Width int
	// Breakdown adds the per-language BM25 scores under each row.
	Breakdown bool
}

// WritePlain prints the leaderboard without cursor control, for pipes and
// non-interactive terminals. Colour follows fatih/color's NoColor detection.
func WritePlain(w io.Writer, v *view.View, opts PlainOptions) error {
	o := v.Options()
	if _, err := plainTitle.Fprintln(w, o.Title); err != nil {
		return err
	}
	fmt.Fprintln(w, o.Subtitle)
	fmt.Fprintln(w)

	rows := v.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No models to show.")
		return nil
	}

	width := opts.Width
	if width <= 0 {
		width = 80
	}
	barCols := util.Max(width-nameColumnWidth-30, minTrackWidth)
	perUnit := cellsPerUnit(rows, barCols)

	for _, row := range rows {
		plainRank.Fprintf(w, "%3d ", row.Rank)
		fmt.Fprint(w, util.PadRight(row.Name, nameColumnWidth), " ")
		plainBar.Fprint(w, util.PadRight(strings.Repeat("■", toCells(row.BarWidth, perUnit, barCols)), barCols))
		fmt.Fprint(w, " ")
		plainBM25.Fprintf(w, "%-7s", plainValue(row, leaderboard.GroupBM25))
		plainBaseline.Fprintf(w, " base %-6s", plainValue(row, leaderboard.GroupBaseline))
		plainOracle.Fprintf(w, " oracle %s", plainValue(row, leaderboard.GroupOracle))
		fmt.Fprintln(w)

		if opts.Breakdown {
			fmt.Fprintf(w, "    %s %s\n", strings.Repeat(" ", nameColumnWidth), languageBreakdown(row.Entry.BM25))
		}
	}
	return nil
}

func plainValue(row view.Row, label string) string {
	m, ok := row.Marker(label)
	if !ok || m.Value == "" {
		return "-"
	}
	return m.Value
}

func languageBreakdown(g *leaderboard.MetricsGroup) string {
	parts := make([]string, 0, len(leaderboard.Languages))
	for _, lang := range leaderboard.Languages {
		v, ok := g.Language(lang)
		value := "-"
		if ok {
			value = leaderboard.FormatScore(v)
		}
		parts = append(parts, fmt.Sprintf("%s=%s", lang, value))
	}
	return strings.Join(parts, " ")
}
