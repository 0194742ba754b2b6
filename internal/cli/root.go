// internal/cli/root.go
package ccboard

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mwiater/ccboard/internal/appconfig"
	"github.com/mwiater/ccboard/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile          string
	loadedConfigPath string
	currentConfig    *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:           "ccboard",
	Short:         "ccboard: CCEval cross-file code completion leaderboard",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) Materialize the merged configuration (flags > config > defaults)
		//    so the subcommands work from one snapshot.
		cfg, err := mergedConfig()
		if err != nil {
			return err
		}
		currentConfig = &cfg

		// 3) Route logs. Interactive screens log to the file only.
		var console io.Writer = os.Stderr
		if isInteractive(cmd) {
			console = nil
		}
		if err := initLogging(cfg.LogFilePath(), console); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		logging.SetDebug(cfg.Debug)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Close()
	},
}

// initLogging is swapped in tests.
var initLogging = logging.Init

// execute runs the root command and always releases the log file, since
// PersistentPostRunE is skipped when a command fails.
func execute() error {
	err := rootCmd.Execute()
	if closeErr := logging.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (JSON or YAML)")

	defaults := appconfig.Defaults()
	rootCmd.PersistentFlags().String("source", defaults.Source, "leaderboard YAML: URL, file:// path, relative path, or /path under --root")
	rootCmd.PersistentFlags().String("root", defaults.Root, "directory that /-prefixed sources resolve against")
	rootCmd.PersistentFlags().Float64("scale", defaults.Scale, "pixels drawn per score point")
	rootCmd.PersistentFlags().Int("timeout", defaults.TimeoutSeconds, "fetch timeout in seconds")
	rootCmd.PersistentFlags().String("log-file", "", "log file path (default ccboard.log)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging and dump the parsed leaderboard")
	rootCmd.PersistentFlags().Bool("strict", false, "fail instead of rendering an empty leaderboard when loading fails")

	// Bind flags to Viper keys (flags override config)
	_ = viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source"))
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("scale", rootCmd.PersistentFlags().Lookup("scale"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("strict", rootCmd.PersistentFlags().Lookup("strict"))
}

// ensureConfigLoaded reads the config file and installs its values as viper
// defaults, so bound flags still take precedence. A missing file means the
// built-in defaults apply.
func ensureConfigLoaded() error {
	fileCfg, err := appconfig.Load(cfgFile)
	switch {
	case err == nil:
		loadedConfigPath = fileCfg.ConfigPath
	case errors.Is(err, fs.ErrNotExist):
		// No file: fine, we'll use defaults/flags
		fileCfg = appconfig.Defaults()
		loadedConfigPath = ""
	default:
		return fmt.Errorf("failed to load config: %w", err)
	}

	viper.SetDefault("source", fileCfg.Source)
	viper.SetDefault("root", fileCfg.Root)
	viper.SetDefault("title", fileCfg.Title)
	viper.SetDefault("subtitle", fileCfg.Subtitle)
	viper.SetDefault("scale", fileCfg.Scale)
	viper.SetDefault("host", fileCfg.Host)
	viper.SetDefault("port", fileCfg.Port)
	viper.SetDefault("output", fileCfg.Output)
	viper.SetDefault("format", fileCfg.Format)
	viper.SetDefault("timeout", fileCfg.TimeoutSeconds)
	viper.SetDefault("logFile", fileCfg.LogFile)
	viper.SetDefault("debug", fileCfg.Debug)
	viper.SetDefault("strict", fileCfg.Strict)
	return nil
}

func mergedConfig() (appconfig.Config, error) {
	var cfg appconfig.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return appconfig.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Scale < 0 {
		return appconfig.Config{}, fmt.Errorf("scale must be positive, got %v", cfg.Scale)
	}
	cfg.ConfigPath = loadedConfigPath
	return cfg, nil
}

// getConfig returns the loaded application configuration, or defaults when
// the root hook has not run.
func getConfig() appconfig.Config {
	if currentConfig == nil {
		return appconfig.Defaults()
	}
	return *currentConfig
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd == showCmd && stdoutIsTerminal()
}
