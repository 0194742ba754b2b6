package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		defaults := Defaults()
		cfg = &defaults
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Source:          %s\n", cfg.SourceOrDefault())
	fmt.Fprintf(out, "  Root:            %s\n", cfg.Root)
	fmt.Fprintf(out, "  Scale:           %vpx per point\n", cfg.ScaleOrDefault())
	fmt.Fprintf(out, "  Listen:          %s\n", cfg.ListenAddr())
	fmt.Fprintf(out, "  Output:          %s (%s)\n", cfg.Output, cfg.Format)
	fmt.Fprintf(out, "  Fetch Timeout:   %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Strict:          %v\n", cfg.Strict)
	if cfg.Title != "" {
		fmt.Fprintf(out, "  Title:           %s\n", cfg.Title)
	}
}
