package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"meadoc/internal/checker"
	"meadoc/internal/config"
	"meadoc/internal/history"
	"meadoc/internal/traversal"
)

const historyPath = ".meadoc/history.db"

var checkRecord bool

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Report missing, outdated, and malformed docstrings",
	Run: func(cmd *cobra.Command, args []string) {
		result, err := runCheck(cmd, args)
		if err != nil {
			slog.Error("check failed", "error", err)
			os.Exit(1)
		}
		if result.Total() > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	addCheckFlags(checkCmd)
	checkCmd.Flags().BoolVar(&checkRecord, "record", false, "Record issue counts in the local run history")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) (history.Run, error) {
	cfg := config.Load(".", ignoredCodes(cmd), "")

	files, err := traversal.FindPythonFiles(rootsOrCwd(args), ignorePatterns(cmd))
	if err != nil {
		return history.Run{}, err
	}

	run := history.Run{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Files:     len(files),
	}

	for _, path := range files {
		issues, err := checker.CheckFile(path, &cfg)
		if err != nil {
			slog.Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}
		for _, issue := range issues {
			fmt.Println(issue.Format(path))
			switch issue.Code {
			case checker.CodeMissing:
				run.Missing++
			case checker.CodeOutdated:
				run.Outdated++
			case checker.CodeMalformed:
				run.Malformed++
			}
		}
	}

	printCheckSummary(run)

	if checkRecord {
		if err := recordRun(run); err != nil {
			slog.Warn("failed to record run", "error", err)
		}
	}
	return run, nil
}

func printCheckSummary(run history.Run) {
	if run.Total() == 0 {
		color.New(color.FgGreen).Fprintf(os.Stderr, "Checked %d file(s), no issues found\n", run.Files)
		return
	}
	color.New(color.FgRed).Fprintf(os.Stderr, "Checked %d file(s), found %d issue(s): %d missing, %d outdated, %d malformed\n",
		run.Files, run.Total(), run.Missing, run.Outdated, run.Malformed)
}

func recordRun(run history.Run) error {
	store, err := history.Open(historyPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(run)
}
