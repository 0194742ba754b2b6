package ccboard

import (
	"context"
	"fmt"
	"io"

	"github.com/mwiater/ccboard/internal/appconfig"
	"github.com/mwiater/ccboard/internal/tui"
	"github.com/spf13/cobra"
)

// listCmd prints every model with its per-language BM25 scores.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List models with their per-language BM25 breakdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), getConfig(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(ctx context.Context, cfg appconfig.Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	v := newView(cfg)
	loadView(ctx, cfg, v)
	if cfg.Strict && v.Err() != nil {
		return fmt.Errorf("load leaderboard: %w", v.Err())
	}
	return tui.WritePlain(out, v, tui.PlainOptions{Width: terminalWidth(100), Breakdown: true})
}
