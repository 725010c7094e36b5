// Package store handles SQLite persistence of sync run history.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/clyang82/workflows/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for sync history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			ran_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_issues (
			run_id INTEGER NOT NULL,
			key TEXT NOT NULL,
			summary TEXT NOT NULL,
			status TEXT NOT NULL,
			priority TEXT NOT NULL,
			PRIMARY KEY (run_id, key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ran_at ON runs(ran_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun stores one sync snapshot and returns its run id.
func (s *Store) RecordRun(ctx context.Context, at time.Time, issues []model.Issue) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (ran_at) VALUES (?)`,
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(issues) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_issues (run_id, key, summary, status, priority)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, is := range issues {
			if _, err := stmt.ExecContext(ctx, id, is.Key, is.Summary, is.Status, is.Priority); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// PreviousSnapshot returns the issue snapshot of the most recent run before
// runID, keyed by issue key. An empty map means there was no earlier run.
func (s *Store) PreviousSnapshot(ctx context.Context, runID int64) (map[string]model.Issue, error) {
	var prevID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs WHERE id < ? ORDER BY id DESC LIMIT 1`, runID).Scan(&prevID)
	if err == sql.ErrNoRows {
		return map[string]model.Issue{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, summary, status, priority FROM run_issues WHERE run_id = ?`, prevID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	snapshot := map[string]model.Issue{}
	for rows.Next() {
		var is model.Issue
		if err := rows.Scan(&is.Key, &is.Summary, &is.Status, &is.Priority); err != nil {
			return nil, err
		}
		snapshot[is.Key] = is
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Change describes a difference between two run snapshots.
type Change struct {
	Issue model.Issue
	From  string
}

// IsNew reports whether the issue appeared for the first time.
func (c Change) IsNew() bool {
	return c.From == ""
}

// Diff compares the previous snapshot with the current issues and returns
// newly assigned issues and status moves, in the current listing order.
func Diff(prev map[string]model.Issue, curr []model.Issue) []Change {
	var changes []Change
	for _, is := range curr {
		old, ok := prev[is.Key]
		if !ok {
			changes = append(changes, Change{Issue: is})
			continue
		}
		if old.Status != is.Status {
			changes = append(changes, Change{Issue: is, From: old.Status})
		}
	}
	return changes
}
