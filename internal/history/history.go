// Package history implements the mutation activity log.
//
// It uses SQLite to record one row per successful mutation tool call:
// which tool ran, which task it targeted, and a short detail line.
// The log is observational only — it is written best-effort after a
// mutation persists and is never consulted to decide anything.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Entry is one recorded mutation.
type Entry struct {
	ID        string `json:"id"`
	Tool      string `json:"tool"`
	Target    string `json:"target"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Config controls where the history database lives.
type Config struct {
	Path string
}

// DefaultConfig places the database inside the project's data
// directory.
func DefaultConfig(dataDir string) Config {
	return Config{Path: filepath.Join(dataDir, "history.db")}
}

// Store is the SQLite-backed activity log.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the history database and runs
// migrations. The caller owns Close.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := openDB("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			tool       TEXT NOT NULL,
			target     TEXT NOT NULL,
			detail     TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_tool ON entries(tool);
		CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);
	`)
	return err
}

// Record appends one entry. Called after the mutation has persisted.
func (s *Store) Record(tool, target, detail string) error {
	_, err := s.db.Exec(
		`INSERT INTO entries (id, tool, target, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), tool, target, detail, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries, optionally filtered by tool name.
// limit <= 0 defaults to 20.
func (s *Store) Recent(tool string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, tool, target, detail, created_at FROM entries`
	args := []any{}
	if tool != "" {
		query += ` WHERE tool = ?`
		args = append(args, tool)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Tool, &e.Target, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of recorded entries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history entries: %w", err)
	}
	return n, nil
}
