// internal/cli/render.go
package ccboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mwiater/ccboard/internal/appconfig"
	"github.com/mwiater/ccboard/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// renderCmd writes the leaderboard page to disk.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the leaderboard to a standalone HTML (or Markdown) file",
	Long: `Fetch the leaderboard YAML once, rank the models by BM25 average and
write a self-contained page. A source that cannot be read or parsed produces a
page with only the header, unless --strict is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		path, err := runRender(cmd.Context(), cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if path != "-" {
			cmd.PrintErrf("Leaderboard written to %s\n", path)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("output", "o", appconfig.DefaultOutput, `destination file ("-" for stdout)`)
	renderCmd.Flags().String("format", "html", "output format: html or markdown")
	renderCmd.Flags().String("title", "", "page title override")
	_ = viper.BindPFlag("output", renderCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("format", renderCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("title", renderCmd.Flags().Lookup("title"))

	rootCmd.AddCommand(renderCmd)
}

// runRender renders according to cfg and returns where the page went.
func runRender(ctx context.Context, cfg appconfig.Config, stdout io.Writer) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	v := newView(cfg)
	loadView(ctx, cfg, v)
	if cfg.Strict && v.Err() != nil {
		return "", fmt.Errorf("load leaderboard: %w", v.Err())
	}

	var buf bytes.Buffer
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "html":
		if err := v.Render(&buf); err != nil {
			return "", err
		}
	case "markdown", "md":
		if err := v.RenderMarkdown(&buf); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unsupported format %q (expected html or markdown)", cfg.Format)
	}

	output := cfg.Output
	if output == "" {
		output = appconfig.DefaultOutput
	}
	if output == "-" {
		_, err := buf.WriteTo(stdout)
		return output, err
	}
	if err := util.WriteFile(output, buf.Bytes()); err != nil {
		return "", fmt.Errorf("unable to write leaderboard %s: %w", output, err)
	}
	return output, nil
}
