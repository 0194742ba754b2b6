package ccboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mwiater/ccboard/internal/appconfig"
	"github.com/mwiater/ccboard/internal/leaderboard"
	"github.com/spf13/cobra"
)

// validateCmd checks the source against the leaderboard schema.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the leaderboard YAML and report every problem",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.Context(), getConfig(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(ctx context.Context, cfg appconfig.Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout())
	defer cancel()

	f := newFetcher(cfg)
	lb, err := leaderboard.Load(ctx, f)
	if err != nil {
		var shapeErr *leaderboard.ShapeError
		if errors.As(err, &shapeErr) {
			fmt.Fprintf(out, "%s: %d problem(s)\n", f.Source(), len(shapeErr.Violations))
			for _, v := range shapeErr.Violations {
				fmt.Fprintf(out, "  - %s\n", v)
			}
		}
		return fmt.Errorf("validate %s: %w", f.Source(), err)
	}

	entries := lb.Entries()
	fmt.Fprintf(out, "%s: OK (%d models)\n", f.Source(), len(entries))
	if len(entries) > 0 {
		top := entries[0]
		fmt.Fprintf(out, "  top: %s (bm25 average %s)\n", top.Name, leaderboard.FormatScore(top.Score()))
	}
	return nil
}
