package main

import (
	"gtv/internal/version"

	"github.com/spf13/cobra"
)

var (
	// logFormatFlag is the CLI --log-format flag value
	logFormatFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "gtv",
	Short: "gtv - Global Trace Visualization",
	Long: `gtv builds an interactive visualization of model-driven engineering
trace data. It reads a flat cross-referenced node list (XMI or YAML),
resolves model, transformation and trace model references, layers the
resulting dependency graph, infers version and variant ancestry between
trace models, and renders a self-contained D3 HTML page.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("gtv version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log output format: human or json (default: from config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default: from config)")
}
