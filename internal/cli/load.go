package ccboard

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/k0kubun/pp"
	"github.com/mwiater/ccboard/internal/appconfig"
	"github.com/mwiater/ccboard/internal/leaderboard"
	"github.com/mwiater/ccboard/internal/logging"
	"github.com/mwiater/ccboard/internal/view"
	"golang.org/x/term"
)

// debugOut receives the --debug dump of parsed rows.
var debugOut io.Writer = os.Stderr

func newFetcher(cfg appconfig.Config) leaderboard.Fetcher {
	client := &http.Client{Timeout: cfg.RequestTimeout()}
	return leaderboard.NewFetcher(cfg.SourceOrDefault(), cfg.Root, client)
}

func viewOptions(cfg appconfig.Config) view.Options {
	return view.Options{
		Title:    cfg.Title,
		Subtitle: cfg.Subtitle,
		Scale:    cfg.ScaleOrDefault(),
	}
}

func newView(cfg appconfig.Config) *view.View {
	return view.New(newFetcher(cfg), viewOptions(cfg))
}

// loadView performs the view's single load under the configured timeout.
func loadView(ctx context.Context, cfg appconfig.Config, v *view.View) {
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout())
	defer cancel()
	v.Load(ctx)

	if cfg.Debug {
		logging.LogDebug("loaded %d rows from %s (state=%s)", len(v.Rows()), cfg.SourceOrDefault(), v.State())
		entries := make([]leaderboard.ModelEntry, 0, len(v.Rows()))
		for _, r := range v.Rows() {
			entries = append(entries, r.Entry)
		}
		pp.Fprintln(debugOut, entries)
	}
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the stdout width, or fallback when it is not a terminal.
func terminalWidth(fallback int) int {
	if !stdoutIsTerminal() {
		return fallback
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
