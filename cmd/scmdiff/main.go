package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arjunvs/scmdiff/pkg/common/logger"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

var (
	logLevel  string
	logFormat string
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "scmdiff",
		Short:   "scmdiff - tree diffing for a Git-like object store",
		Long:    getBanner(),
		Version: fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDiffCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getBanner() string {
	return `
╔═════════════════════════════════════════════════════════════════════╗
║                                                                     ║
║    ███████╗ ██████╗███╗   ███╗██████╗ ██╗███████╗███████╗           ║
║    ██╔════╝██╔════╝████╗ ████║██╔══██╗██║██╔════╝██╔════╝           ║
║    ███████╗██║     ██╔████╔██║██║  ██║██║█████╗  █████╗             ║
║    ╚════██║██║     ██║╚██╔╝██║██║  ██║██║██╔══╝  ██╔══╝             ║
║    ███████║╚██████╗██║ ╚═╝ ██║██████╔╝██║██║     ██║                ║
║    ╚══════╝ ╚═════╝╚═╝     ╚═╝╚═════╝ ╚═╝╚═╝     ╚═╝                ║
║                                                                     ║
╚═════════════════════════════════════════════════════════════════════╝

  Tree diffing over a content-addressed object store, Eden-style.

  Get started with: scmdiff init
  Check status with: scmdiff status
  Compare anything:  scmdiff diff <left> <right>
  Need help? Run:    scmdiff --help

`
}

func setupLogging() {
	level := logger.LevelInfo
	if verbose {
		level = logger.LevelDebug
	} else {
		switch logLevel {
		case "debug":
			level = logger.LevelDebug
		case "info":
			level = logger.LevelInfo
		case "warn":
			level = logger.LevelWarn
		case "error":
			level = logger.LevelError
		}
	}

	format := logger.FormatText
	if logFormat == "json" {
		format = logger.FormatJSON
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
	})
}
