package ccboard

import (
	"os/signal"
	"syscall"

	"github.com/mwiater/ccboard/internal/appconfig"
	"github.com/mwiater/ccboard/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd hosts the page; every request to / is a fresh load.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the leaderboard page over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return newServer(getConfig()).ListenAndServe(ctx)
	},
}

func init() {
	defaults := appconfig.Defaults()
	serveCmd.Flags().String("host", defaults.Host, "listen host")
	serveCmd.Flags().Int("port", defaults.Port, "listen port")
	_ = viper.BindPFlag("host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func newServer(cfg appconfig.Config) *server.Server {
	return server.New(server.Config{
		Addr:    cfg.ListenAddr(),
		Source:  cfg.SourceOrDefault(),
		Root:    cfg.Root,
		Timeout: cfg.RequestTimeout(),
		View:    viewOptions(cfg),
	})
}
