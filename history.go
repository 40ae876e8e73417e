package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// HistoryEntry is one recorded invocation
type HistoryEntry struct {
	ID          int64
	CreatedAt   time.Time
	Prompt      string
	Outcome     string
	Command     string
	Description string
}

// Invocation outcomes recorded in history
const (
	OutcomeDelivered    = "delivered"
	OutcomeAnswered     = "answered"
	OutcomeRejected     = "rejected"
	OutcomeUnclassified = "unclassified"
	OutcomeFailed       = "failed"
)

// HistoryStore persists invocations in a local SQLite database
type HistoryStore struct {
	db *sql.DB
}

// HistoryPath returns the default history database path
func HistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cmdgen", "history.db"), nil
}

// OpenHistory opens (creating if needed) the history database at path
func OpenHistory(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS invocations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TIMESTAMP NOT NULL,
		prompt TEXT NOT NULL,
		outcome TEXT NOT NULL,
		command TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_invocations_created ON invocations(created_at DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

// Record appends an invocation to the history
func (h *HistoryStore) Record(entry *HistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	res, err := h.db.Exec(
		`INSERT INTO invocations (created_at, prompt, outcome, command, description) VALUES (?, ?, ?, ?, ?)`,
		entry.CreatedAt, entry.Prompt, entry.Outcome, entry.Command, entry.Description,
	)
	if err != nil {
		return fmt.Errorf("record invocation: %w", err)
	}
	entry.ID, _ = res.LastInsertId()
	return nil
}

// Recent returns the most recent entries, newest first
func (h *HistoryStore) Recent(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.Query(
		`SELECT id, created_at, prompt, outcome, command, description
		 FROM invocations ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Prompt, &e.Outcome, &e.Command, &e.Description); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database
func (h *HistoryStore) Close() error {
	return h.db.Close()
}
