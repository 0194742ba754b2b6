// internal/cli/show.go
package ccboard

import (
	"context"
	"io"

	"github.com/mwiater/ccboard/internal/appconfig"
	"github.com/mwiater/ccboard/internal/tui"
	"github.com/spf13/cobra"
)

var runTUI = tui.Run

// showCmd displays the leaderboard in the terminal. It also groups 'show config'.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the leaderboard in the terminal",
	Long: `Show the leaderboard in the terminal. On an interactive terminal this opens
a scrollable view; when output is piped it prints a plain listing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd.Context(), getConfig(), cmd.OutOrStdout(), stdoutIsTerminal())
	},
}

// showConfigCmd prints the merged configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the config file is loaded properly and overridden by flags accordingly.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		appconfig.ShowConfig(cmd.OutOrStdout(), cfg.ConfigPath, &cfg)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(showCmd)
}

func runShow(ctx context.Context, cfg appconfig.Config, out io.Writer, interactive bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	v := newView(cfg)
	if interactive {
		// The program performs the load itself so the spinner is visible.
		return runTUI(ctx, v)
	}
	loadView(ctx, cfg, v)
	return tui.WritePlain(out, v, tui.PlainOptions{Width: terminalWidth(100)})
}
