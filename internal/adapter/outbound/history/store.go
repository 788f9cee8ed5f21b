// Package history keeps a local log of completed summaries.
//
// The log lives in a SQLite database under the user's profile directory. It
// is a client-side convenience, independent of the server's admin history:
// nothing here requires authentication or network access.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded summary.
type Entry struct {
	ID            int64
	CreatedAt     time.Time
	Source        string // "text" or the uploaded file name
	Mode          string
	Length        string
	Summary       string
	SentenceCount int
	WordCount     int
}

// Store persists summary entries in a SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS summaries (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at_ms   INTEGER NOT NULL,
    source          TEXT NOT NULL,
    mode            TEXT NOT NULL,
    length          TEXT NOT NULL,
    summary         TEXT NOT NULL,
    sentence_count  INTEGER NOT NULL,
    word_count      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries (created_at_ms DESC);
`

// Open opens (creating if needed) the history database at the given path.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if parent := filepath.Dir(path); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0700); err != nil {
				return nil, fmt.Errorf("create history dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal_mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append records a completed summary.
func (s *Store) Append(ctx context.Context, e Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO summaries (created_at_ms, source, mode, length, summary, sentence_count, word_count)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		createdAt.UnixMilli(), e.Source, e.Mode, e.Length, e.Summary, e.SentenceCount, e.WordCount)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at_ms, source, mode, length, summary, sentence_count, word_count
FROM summaries
ORDER BY created_at_ms DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAtMs int64
		if err := rows.Scan(&e.ID, &createdAtMs, &e.Source, &e.Mode, &e.Length,
			&e.Summary, &e.SentenceCount, &e.WordCount); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.CreatedAt = time.UnixMilli(createdAtMs).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
