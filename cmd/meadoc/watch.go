package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"meadoc/internal/checker"
	"meadoc/internal/config"
	"meadoc/internal/traversal"
	"meadoc/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [files...]",
	Short: "Re-check docstrings whenever watched files change",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runWatch(cmd, args); err != nil {
			slog.Error("watch failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	addCheckFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet period before a change batch is re-checked")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load(".", ignoredCodes(cmd), "")
	roots := rootsOrCwd(args)

	// Initial pass over everything, then incremental re-checks.
	if _, err := runCheckOnce(roots, ignorePatterns(cmd), &cfg); err != nil {
		return err
	}

	// Even after debouncing, a tight save loop should not pin a core on
	// re-parsing; one batch per half second is plenty for a human editing.
	limiter := rate.NewLimiter(rate.Every(500*time.Millisecond), 1)

	w, err := watcher.New(watchDebounce, ignorePatterns(cmd), func(changed []string) {
		if err := limiter.Wait(context.Background()); err != nil {
			return
		}
		recheck(changed, &cfg)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(roots); err != nil {
		return err
	}

	color.New(color.FgCyan).Fprintln(os.Stderr, "Watching for changes (ctrl-c to stop)")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	return nil
}

func recheck(paths []string, cfg *config.Config) {
	total := 0
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue // deleted since the event fired
		}
		issues, err := checker.CheckFile(path, cfg)
		if err != nil {
			slog.Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}
		for _, issue := range issues {
			fmt.Println(issue.Format(path))
		}
		total += len(issues)
	}

	if total == 0 {
		color.New(color.FgGreen).Fprintf(os.Stderr, "Re-checked %d file(s), no issues\n", len(paths))
	} else {
		color.New(color.FgRed).Fprintf(os.Stderr, "Re-checked %d file(s), found %d issue(s)\n", len(paths), total)
	}
}

// runCheckOnce walks the roots and prints every issue, returning the count.
func runCheckOnce(roots, ignore []string, cfg *config.Config) (int, error) {
	files, err := traversal.FindPythonFiles(roots, ignore)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, path := range files {
		issues, err := checker.CheckFile(path, cfg)
		if err != nil {
			slog.Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}
		for _, issue := range issues {
			fmt.Println(issue.Format(path))
		}
		total += len(issues)
	}
	return total, nil
}
