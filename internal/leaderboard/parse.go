// internal/leaderboard/parse.go
package leaderboard

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"go.yaml.in/yaml/v3"
)

// Parse decodes a leaderboard document. The raw YAML is first decoded into a
// generic tree and checked against the leaderboard schema, then decoded again
// into typed structs. Errors wrap ErrParse or ErrShape.
func Parse(data []byte) (Leaderboard, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Leaderboard{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := Validate(raw); err != nil {
		return Leaderboard{}, err
	}

	var lb Leaderboard
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&lb); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return Leaderboard{}, fmt.Errorf("%w: %v", ErrShape, err)
		}
		return Leaderboard{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return lb, nil
}

// Entries flattens the mapping and sorts it descending by BM25 average.
// Ties are broken by model name so output is deterministic.
func (lb Leaderboard) Entries() []ModelEntry {
	entries := make([]ModelEntry, 0, len(lb.Models))
	for name, m := range lb.Models {
		entries = append(entries, ModelEntry{Name: name, Metrics: m})
	}
	SortEntries(entries)
	return entries
}

// SortEntries orders entries in place, highest BM25 average first.
func SortEntries(entries []ModelEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		si, sj := entries[i].Score(), entries[j].Score()
		if si != sj {
			return si > sj
		}
		return entries[i].Name < entries[j].Name
	})
}

// Len returns the number of models in the document.
func (lb Leaderboard) Len() int {
	return len(lb.Models)
}
