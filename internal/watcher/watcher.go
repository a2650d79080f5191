// Package watcher re-runs checks when watched Python files change. Events
// are debounced so editor save bursts collapse into one batch.
package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"meadoc/internal/traversal"
)

type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	ignore    []glob.Glob
	onChange  func([]string)

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer
	done      chan struct{}
}

// New builds a watcher that invokes onChange with a batch of changed .py
// paths after the debounce window closes.
func New(debounce time.Duration, ignorePatterns []string, onChange func([]string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ignore, err := traversal.CompilePatterns(ignorePatterns)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		ignore:    ignore,
		onChange:  onChange,
		pending:   make(map[string]struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Watch registers the roots (recursively for directories) and starts the
// event loop.
func (w *Watcher) Watch(paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			if err := w.fsWatcher.Add(filepath.Dir(path)); err != nil {
				return err
			}
			continue
		}
		if err := w.watchRecursive(path); err != nil {
			return err
		}
	}

	go w.run()
	return nil
}

// Close stops the event loop and cancels any pending debounce flush; no
// onChange callback is delivered after Close returns.
func (w *Watcher) Close() error {
	close(w.done)

	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	return w.fsWatcher.Close()
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if traversal.ShouldIgnore(path, w.ignore) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !traversal.ShouldIgnore(event.Name, w.ignore) {
						if err := w.watchRecursive(event.Name); err != nil {
							slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
						}
					}
					continue
				}
			}

			if filepath.Ext(event.Name) != ".py" || traversal.ShouldIgnore(event.Name, w.ignore) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 {
				w.scheduleChange(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flushChanges)
}

func (w *Watcher) flushChanges() {
	w.pendingMu.Lock()
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(changed) > 0 {
		w.onChange(changed)
	}
}
