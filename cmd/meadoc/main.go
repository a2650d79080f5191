package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "meadoc",
	Short:   "A docstring linter and generator for Python projects",
	Long:    "meadoc keeps meadoc-dialect docstrings in sync with the code they describe:\nit lints for missing, outdated, and malformed docstrings, creates missing ones,\nand renders a markdown API reference.",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
