package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"meadoc/internal/config"
	"meadoc/internal/formatter"
	"meadoc/internal/traversal"
)

var (
	formatTodocMessage string
	formatFixMalformed bool
)

var formatCmd = &cobra.Command{
	Use:   "format [files...]",
	Short: "Create missing docstrings in place",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFormat(cmd, args); err != nil {
			slog.Error("format failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	addCheckFlags(formatCmd)
	formatCmd.Flags().StringVar(&formatTodocMessage, "custom-todoc-message", "", "Placeholder text for synthesized descriptions")
	formatCmd.Flags().BoolVar(&formatFixMalformed, "fix-malformed", false, "Also replace malformed docstrings")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg := config.Load(".", ignoredCodes(cmd), formatTodocMessage)

	files, err := traversal.FindPythonFiles(rootsOrCwd(args), ignorePatterns(cmd))
	if err != nil {
		return err
	}

	formatted := 0
	for _, path := range files {
		changed, err := formatter.FormatFile(path, &cfg, formatFixMalformed)
		if err != nil {
			slog.Warn("skipping file", "path", path, "error", err)
			continue
		}
		if changed {
			slog.Debug("formatted", "path", path)
			formatted++
		}
	}

	fmt.Printf("Formatted %d file(s)\n", formatted)
	return nil
}
