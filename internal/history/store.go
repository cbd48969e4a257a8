// Package history persists submitted prompt lines to a local SQLite
// database so a session can surface what was entered before. Masked fields
// must never reach the store; callers are expected to skip them.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one submitted line.
type Entry struct {
	ID          string
	SubmittedAt time.Time
	Field       string
	Value       string
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id           TEXT PRIMARY KEY,
	submitted_at INTEGER NOT NULL,
	field        TEXT NOT NULL,
	value        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS entries_field_time ON entries (field, submitted_at DESC);
`

// Store wraps the database handle. The mutex serialises writers: submits
// arrive from command goroutines while the UI reads on its own schedule.
type Store struct {
	db         *sql.DB
	maxEntries int
	mu         sync.Mutex
}

// Open creates or opens the history database at path. maxEntries bounds how
// many rows are kept per field; older rows are pruned on append.
func Open(path string, maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history %q: %w", path, err)
	}
	// Single writer; a busy timeout covers the reader racing a prune.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure history %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history %q: %w", path, err)
	}
	return &Store{db: db, maxEntries: maxEntries}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Append stores one submission, assigning an ID and timestamp when the
// caller left them empty, and prunes rows beyond the per-field cap.
func (s *Store) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(entry.Value) == "" {
		return nil
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.SubmittedAt.IsZero() {
		entry.SubmittedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO entries (id, submitted_at, field, value) VALUES (?, ?, ?, ?)",
		entry.ID,
		entry.SubmittedAt.UnixNano(),
		entry.Field,
		entry.Value,
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM entries WHERE field = ? AND id NOT IN (
			SELECT id FROM entries WHERE field = ?
			ORDER BY submitted_at DESC, id DESC LIMIT ?
		)`,
		entry.Field,
		entry.Field,
		s.maxEntries,
	)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return tx.Commit()
}

// Recent returns up to limit entries for a field, newest first. An empty
// field name matches every field.
func (s *Store) Recent(field string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, submitted_at, field, value FROM entries
		ORDER BY submitted_at DESC, id DESC LIMIT ?`
	args := []any{limit}
	if field != "" {
		query = `SELECT id, submitted_at, field, value FROM entries WHERE field = ?
			ORDER BY submitted_at DESC, id DESC LIMIT ?`
		args = []any{field, limit}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			entry Entry
			nanos int64
		)
		if err := rows.Scan(&entry.ID, &nanos, &entry.Field, &entry.Value); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entry.SubmittedAt = time.Unix(0, nanos)
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return out, nil
}

// Delete removes one entry by ID, reporting whether it existed.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete history entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete history entry: %w", err)
	}
	return affected > 0, nil
}

// Clear removes every entry for a field; an empty field clears everything.
func (s *Store) Clear(field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if field == "" {
		_, err = s.db.Exec("DELETE FROM entries")
	} else {
		_, err = s.db.Exec("DELETE FROM entries WHERE field = ?", field)
	}
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
