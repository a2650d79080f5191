// Package history persists check runs so issue counts can be compared
// across invocations.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded check invocation.
type Run struct {
	ID        string
	Timestamp time.Time
	Files     int
	Missing   int
	Outdated  int
	Malformed int
}

func (r Run) Total() int { return r.Missing + r.Outdated + r.Malformed }

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  ts_utc TEXT NOT NULL,
  file_count INTEGER NOT NULL,
  missing_count INTEGER NOT NULL,
  outdated_count INTEGER NOT NULL,
  malformed_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(ts_utc);
`

// Open creates or opens the run database at path, ensuring the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir %q: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one run.
func (s *Store) Record(run Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, ts_utc, file_count, missing_count, outdated_count, malformed_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Timestamp.UTC().Format(time.RFC3339),
		run.Files,
		run.Missing,
		run.Outdated,
		run.Malformed,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, ts_utc, file_count, missing_count, outdated_count, malformed_count
		 FROM runs ORDER BY ts_utc DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var ts string
		if err := rows.Scan(&run.ID, &ts, &run.Files, &run.Missing, &run.Outdated, &run.Malformed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Timestamp, _ = time.Parse(time.RFC3339, ts)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
