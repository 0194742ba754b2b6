// internal/view/layout.go
package view

import "github.com/mwiater/ccboard/internal/leaderboard"

// DefaultScale is the number of pixels drawn per score unit.
const DefaultScale = 30.0

// BarGradient fills every bar, left to right.
const BarGradient = "linear-gradient(90deg, rgba(66,164,235,1) 0%, rgba(162,119,255,1) 100%)"

// Marker is one labelled tick above a bar.
type Marker struct {
	Label string
	// Value is the score as printed; empty when the score is absent.
	Value  string
	Offset float64
}

// Row is everything needed to draw one model.
type Row struct {
	Rank     int
	Name     string
	Markers  []Marker
	BarWidth float64
	Entry    leaderboard.ModelEntry
}

// Layout computes marker offsets and bar widths for already-sorted entries.
// Missing baseline or oracle averages are drawn at offset 0.
func Layout(entries []leaderboard.ModelEntry, scale float64) []Row {
	if scale <= 0 {
		scale = DefaultScale
	}
	rows := make([]Row, 0, len(entries))
	for i, e := range entries {
		width := e.BM25.AverageOrZero() * scale
		rows = append(rows, Row{
			Rank: i + 1,
			Name: e.Name,
			Markers: []Marker{
				newMarker(leaderboard.GroupBaseline, e.Baseline, scale),
				{Label: leaderboard.GroupBM25, Value: formatAverage(e.BM25), Offset: width},
				newMarker(leaderboard.GroupOracle, e.Oracle, scale),
			},
			BarWidth: width,
			Entry:    e,
		})
	}
	return rows
}

func newMarker(label string, g *leaderboard.MetricsGroup, scale float64) Marker {
	return Marker{
		Label:  label,
		Value:  formatAverage(g),
		Offset: g.AverageOrZero() * scale,
	}
}

func formatAverage(g *leaderboard.MetricsGroup) string {
	if !g.HasAverage() {
		return ""
	}
	return leaderboard.FormatScore(*g.Average)
}

// Marker returns the marker with the given label.
func (r Row) Marker(label string) (Marker, bool) {
	for _, m := range r.Markers {
		if m.Label == label {
			return m, true
		}
	}
	return Marker{}, false
}
