// internal/leaderboard/types.go
// Package leaderboard holds the CCEval leaderboard data model and the code that
// turns a raw YAML document into a ranked list of models.
package leaderboard

import "strconv"

// Group names as they appear in the source document and on rendered markers.
const (
	GroupBaseline = "baseline"
	GroupBM25     = "bm25"
	GroupOracle   = "oracle"
)

// Languages lists the per-language score keys in display order.
var Languages = []string{"python", "java", "typescript", "c#"}

// MetricsGroup is one set of scores for a model. Every field is optional in the
// document; a nil pointer means the key was absent.
type MetricsGroup struct {
	Average    *float64 `yaml:"average,omitempty" json:"average,omitempty"`
	Python     *float64 `yaml:"python,omitempty" json:"python,omitempty"`
	Java       *float64 `yaml:"java,omitempty" json:"java,omitempty"`
	TypeScript *float64 `yaml:"typescript,omitempty" json:"typescript,omitempty"`
	CSharp     *float64 `yaml:"c#,omitempty" json:"c#,omitempty"`
}

// AverageOrZero returns the average score, or 0 when it is absent.
func (g *MetricsGroup) AverageOrZero() float64 {
	if g == nil || g.Average == nil {
		return 0
	}
	return *g.Average
}

// HasAverage reports whether the group carries an average score.
func (g *MetricsGroup) HasAverage() bool {
	return g != nil && g.Average != nil
}

// Language returns the score for one of Languages.
func (g *MetricsGroup) Language(lang string) (float64, bool) {
	if g == nil {
		return 0, false
	}
	var v *float64
	switch lang {
	case "python":
		v = g.Python
	case "java":
		v = g.Java
	case "typescript":
		v = g.TypeScript
	case "c#":
		v = g.CSharp
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Metrics carries the three groups recorded for a model.
type Metrics struct {
	Baseline *MetricsGroup `yaml:"baseline,omitempty" json:"baseline,omitempty"`
	Oracle   *MetricsGroup `yaml:"oracle,omitempty" json:"oracle,omitempty"`
	BM25     *MetricsGroup `yaml:"bm25" json:"bm25"`
}

// Leaderboard is the root document: model name to metrics.
type Leaderboard struct {
	Models map[string]Metrics `yaml:"models" json:"models"`
}

// ModelEntry flattens one mapping entry into a named record.
type ModelEntry struct {
	Name string `json:"name"`
	Metrics
}

// Score is the ranking key, the BM25 average.
func (e ModelEntry) Score() float64 {
	return e.BM25.AverageOrZero()
}

// FormatScore prints a score the way it appears in the source document:
// shortest representation, no trailing zeros.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
