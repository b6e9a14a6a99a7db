// Package audit keeps a local history of every configuration mutation
// ccjk performs, so `ccjk history` can answer "what changed my config".
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// Category groups events by the tool they touched.
type Category string

const (
	CategoryClaude   Category = "claude"
	CategoryCodex    Category = "codex"
	CategorySettings Category = "settings"
)

// Status is the outcome of an operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Event is one recorded configuration mutation.
type Event struct {
	ID        string
	Category  Category
	Operation string
	Target    string
	Status    Status
	Detail    string
	CreatedAt time.Time
}

// Store persists events in a sqlite database under the ccjk home dir.
type Store struct {
	db *sql.DB
}

// Open opens (and when needed creates) the history database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		operation TEXT NOT NULL,
		target TEXT,
		status TEXT NOT NULL,
		detail TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one event and returns its generated id.
func (s *Store) Record(category Category, operation, target string, status Status, detail string) (string, error) {
	id := ulid.Make().String()
	_, err := s.db.Exec(
		`INSERT INTO events (id, category, operation, target, status, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, string(category), operation, target, string(status), detail, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("record event: %w", err)
	}
	return id, nil
}

// Recent returns the newest events, most recent first. A zero or negative
// limit means 50.
func (s *Store) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, category, operation, target, status, detail, created_at
		 FROM events ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var cat, status string
		if err := rows.Scan(&e.ID, &cat, &e.Operation, &e.Target, &status, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Category = Category(cat)
		e.Status = Status(status)
		events = append(events, e)
	}
	return events, rows.Err()
}
