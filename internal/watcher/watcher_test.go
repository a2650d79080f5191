package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForBatch(t *testing.T, ch <-chan []string) []string {
	t.Helper()
	select {
	case batch := <-ch:
		return batch
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for a change batch")
		return nil
	}
}

func TestWatchDetectsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.py")
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	batches := make(chan []string, 1)
	w, err := New(50*time.Millisecond, nil, func(changed []string) {
		batches <- changed
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{dir}); err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("x = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	batch := waitForBatch(t, batches)
	found := false
	for _, p := range batch {
		if filepath.Base(p) == "mod.py" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected mod.py in batch, got %v", batch)
	}
}

func TestWatchIgnoresNonPython(t *testing.T) {
	dir := t.TempDir()

	batches := make(chan []string, 1)
	w, err := New(50*time.Millisecond, nil, func(changed []string) {
		batches <- changed
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{dir}); err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case batch := <-batches:
		t.Errorf("Unexpected batch for non-Python file: %v", batch)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.py")
	b := filepath.Join(dir, "b.py")

	batches := make(chan []string, 4)
	w, err := New(150*time.Millisecond, nil, func(changed []string) {
		batches <- changed
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{dir}); err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)
	os.WriteFile(a, []byte("x = 1\n"), 0o644)
	os.WriteFile(b, []byte("y = 2\n"), 0o644)

	batch := waitForBatch(t, batches)
	if len(batch) != 2 {
		t.Errorf("Expected one batch of 2 paths, got %v", batch)
	}
}

func TestCloseCancelsPendingFlush(t *testing.T) {
	dir := t.TempDir()

	batches := make(chan []string, 1)
	w, err := New(500*time.Millisecond, nil, func(changed []string) {
		batches <- changed
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Watch([]string{dir}); err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "mod.py"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Close well inside the debounce window; the scheduled flush must die
	// with the watcher.
	time.Sleep(100 * time.Millisecond)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case batch := <-batches:
		t.Errorf("Callback delivered after Close: %v", batch)
	case <-time.After(time.Second):
	}
}

func TestWatchHonorsIgnorePatterns(t *testing.T) {
	dir := t.TempDir()

	batches := make(chan []string, 1)
	w, err := New(50*time.Millisecond, []string{"*_test.py"}, func(changed []string) {
		batches <- changed
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{dir}); err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "mod_test.py"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case batch := <-batches:
		t.Errorf("Unexpected batch for ignored file: %v", batch)
	case <-time.After(300 * time.Millisecond):
	}
}
