package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"meadoc/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent recorded check runs",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHistory(); err != nil {
			slog.Error("history failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory() error {
	store, err := history.Open(historyPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs. Use `meadoc check --record` to start tracking.")
		return nil
	}

	fmt.Printf("%-20s %6s %8s %9s %10s %6s\n", "TIME", "FILES", "MISSING", "OUTDATED", "MALFORMED", "TOTAL")
	for _, run := range runs {
		line := fmt.Sprintf("%-20s %6d %8d %9d %10d %6d",
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Files, run.Missing, run.Outdated, run.Malformed, run.Total())
		if run.Total() == 0 {
			color.New(color.FgGreen).Println(line)
		} else {
			fmt.Println(line)
		}
	}
	return nil
}
