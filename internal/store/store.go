// Package store provides SQLite persistence for terminal-side paper
// annotations. The service owns the papers themselves; this store owns
// only the read and star marks a user accumulates while browsing, so
// they survive restarts.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// Mark is the local annotation for one paper, keyed by its arXiv ID.
type Mark struct {
	PaperID   string
	Read      bool
	Starred   bool
	UpdatedAt time.Time
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// For in-memory databases, use shared cache mode so all connections
		// in the pool see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS marks (
		paper_id TEXT PRIMARY KEY,
		read INTEGER DEFAULT 0,
		starred INTEGER DEFAULT 0,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_marks_starred ON marks(starred);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// MarkRead records that a paper has been opened.
// Thread-safe: acquires write lock.
func (s *Store) MarkRead(paperID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO marks (paper_id, read, starred, updated_at) VALUES (?, 1, 0, ?)
		ON CONFLICT(paper_id) DO UPDATE SET read = 1, updated_at = excluded.updated_at
	`, paperID, time.Now())
	return err
}

// ToggleStar flips the star on a paper and returns the new value.
// Thread-safe: acquires write lock.
func (s *Store) ToggleStar(paperID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO marks (paper_id, read, starred, updated_at) VALUES (?, 0, 1, ?)
		ON CONFLICT(paper_id) DO UPDATE SET starred = 1 - starred, updated_at = excluded.updated_at
	`, paperID, time.Now())
	if err != nil {
		return false, err
	}

	var starred int
	if err := s.db.QueryRow("SELECT starred FROM marks WHERE paper_id = ?", paperID).Scan(&starred); err != nil {
		return false, err
	}
	return starred != 0, nil
}

// Marks retrieves annotations for the given paper IDs. IDs without a
// row are simply absent from the result map.
// Thread-safe: acquires read lock.
func (s *Store) Marks(paperIDs []string) (map[string]Mark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	marks := make(map[string]Mark)
	if len(paperIDs) == 0 {
		return marks, nil
	}

	placeholders := strings.Repeat("?,", len(paperIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(paperIDs))
	for i, id := range paperIDs {
		args[i] = id
	}

	rows, err := s.db.Query(
		"SELECT paper_id, read, starred, updated_at FROM marks WHERE paper_id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m Mark
		var readInt, starredInt int
		if err := rows.Scan(&m.PaperID, &readInt, &starredInt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.Read = readInt != 0
		m.Starred = starredInt != 0
		marks[m.PaperID] = m
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return marks, nil
}

// StarredIDs returns the IDs of all starred papers, most recent first.
// Thread-safe: acquires read lock.
func (s *Store) StarredIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT paper_id FROM marks WHERE starred = 1 ORDER BY updated_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
