// internal/view/view.go
// Package view implements the leaderboard page: a single load of the source
// document followed by rendering of the ranked rows.
package view

import (
	"context"
	"sync"

	"github.com/mwiater/ccboard/internal/leaderboard"
	"github.com/mwiater/ccboard/internal/logging"
)

const (
	DefaultTitle    = "CCEval Leaderboard"
	DefaultSubtitle = "A Diverse and Multilingual Benchmark for Cross-File Code Completion"
)

// Legend explains the three metric groups under the header.
var Legend = []string{
	"Baseline: only current file context",
	"BM25: cross-file context retrieval",
	"Oracle: upper bound cross-file context retrieval",
}

// State is where a view is in its lifecycle.
type State int

const (
	// StateNotLoaded means Load has not completed; the list is empty.
	StateNotLoaded State = iota
	// StateLoaded means Load has run. The list may still be empty if it failed.
	StateLoaded
)

func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "not loaded"
}

// Options tunes a view.
type Options struct {
	Title    string
	Subtitle string
	Scale    float64
}

// View is one mount of the leaderboard page.
type View struct {
	fetcher leaderboard.Fetcher
	opts    Options

	once  sync.Once
	mu    sync.RWMutex
	state State
	rows  []Row
	err   error
}

// New returns a view that reads from f. Zero-valued options take defaults.
func New(f leaderboard.Fetcher, opts Options) *View {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Subtitle == "" {
		opts.Subtitle = DefaultSubtitle
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	return &View{fetcher: f, opts: opts}
}

// Load fetches, parses and sorts the leaderboard. Only the first call does any
// work. A failure leaves the row list empty; the error is logged and kept for
// Err but does not change what is rendered.
func (v *View) Load(ctx context.Context) {
	v.once.Do(func() {
		lb, err := leaderboard.Load(ctx, v.fetcher)

		v.mu.Lock()
		defer v.mu.Unlock()
		v.state = StateLoaded
		if err != nil {
			v.err = err
			logging.LogFetch("in", v.fetcher.Source(), "error", err)
			return
		}
		v.rows = Layout(lb.Entries(), v.opts.Scale)
		logging.LogFetch("in", v.fetcher.Source(), "ok", map[string]int{"models": len(v.rows)})
	})
}

// State reports whether Load has completed.
func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Rows returns the ranked rows. Empty until loaded, and after a failed load.
func (v *View) Rows() []Row {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]Row, len(v.rows))
	copy(out, v.rows)
	return out
}

// Err returns the load failure, if any.
func (v *View) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

// Options returns the effective options.
func (v *View) Options() Options {
	return v.opts
}
