// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps a sqlite log of solved equations so earlier results
// can be listed and recalled.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound  = errors.New("history entry not found")
	ErrAmbiguous = errors.New("history id prefix is ambiguous")
)

// =============================================================================
// TYPES
// =============================================================================

// Entry is one solved equation.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Input     string    `json:"input"`
	Reduced   string    `json:"reduced"`
	Degree    int       `json:"degree"`
	Kind      string    `json:"kind"`
	Solution  string    `json:"solution"`
}

// Stats summarizes the log.
type Stats struct {
	Total  int            `json:"total"`
	ByKind map[string]int `json:"by_kind"`
	First  time.Time      `json:"first,omitempty"`
	Last   time.Time      `json:"last,omitempty"`
}

// Store is a history log backed by a sqlite database.
type Store struct {
	db         *sql.DB
	maxEntries int
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id         TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	input      TEXT NOT NULL,
	reduced    TEXT NOT NULL,
	degree     INTEGER NOT NULL,
	kind       TEXT NOT NULL,
	solution   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at);
`

// =============================================================================
// OPEN / CLOSE
// =============================================================================

// Open opens (creating if needed) the database at path. maxEntries caps the
// number of rows kept; 0 disables pruning.
func Open(path string, maxEntries int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Record stores e, assigning an ID and timestamp when they are unset, then
// prunes the oldest rows beyond the configured cap. It returns the stored
// entry.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (id, created_at, input, reduced, degree, kind, solution)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.UnixNano(), e.Input, e.Reduced, e.Degree, e.Kind, e.Solution)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to insert history entry: %w", err)
	}

	if s.maxEntries > 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM entries WHERE id NOT IN (
				SELECT id FROM entries ORDER BY created_at DESC, rowid DESC LIMIT ?
			)`, s.maxEntries)
		if err != nil {
			return Entry{}, fmt.Errorf("failed to prune history: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("failed to commit history entry: %w", err)
	}
	return e, nil
}

// List returns up to limit entries, newest first. A limit of 0 or less
// returns every entry.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, created_at, input, reduced, degree, kind, solution
		FROM entries ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry whose ID equals id or, failing that, the single
// entry whose ID starts with id.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "%_") {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, input, reduced, degree, kind, solution
		 FROM entries WHERE id = ? OR id LIKE ? || '%'
		 ORDER BY id = ? DESC LIMIT 2`, id, id, id)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var matches []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return Entry{}, err
		}
		if e.ID == id {
			return e, nil
		}
		matches = append(matches, e)
	}
	if err := rows.Err(); err != nil {
		return Entry{}, err
	}

	switch len(matches) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return Entry{}, fmt.Errorf("%w: %q", ErrAmbiguous, id)
	}
}

// Stats counts entries per result kind.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{ByKind: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM entries GROUP BY kind`)
	if err != nil {
		return st, fmt.Errorf("failed to query history stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return st, fmt.Errorf("failed to scan history stats: %w", err)
		}
		st.ByKind[kind] = n
		st.Total += n
	}
	if err := rows.Err(); err != nil {
		return st, err
	}

	if st.Total == 0 {
		return st, nil
	}

	var first, last int64
	err = s.db.QueryRowContext(ctx, `SELECT MIN(created_at), MAX(created_at) FROM entries`).Scan(&first, &last)
	if err != nil {
		return st, fmt.Errorf("failed to query history range: %w", err)
	}
	st.First = time.Unix(0, first).UTC()
	st.Last = time.Unix(0, last).UTC()
	return st, nil
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var created int64
	if err := row.Scan(&e.ID, &created, &e.Input, &e.Reduced, &e.Degree, &e.Kind, &e.Solution); err != nil {
		return Entry{}, fmt.Errorf("failed to scan history entry: %w", err)
	}
	e.CreatedAt = time.Unix(0, created).UTC()
	return e, nil
}
