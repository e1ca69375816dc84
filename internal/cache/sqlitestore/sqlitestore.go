// Package sqlitestore persists cache entries in a SQLite database file.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const createTable = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key TEXT NOT NULL PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Store is a key/value store backed by a single SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the table exists.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	// An in-memory database lives only as long as its connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate store db: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store get: %w", err)
	}
	return value, true, nil
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("store set: %w", err)
	}
	return nil
}

// Remove deletes key.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("store remove: %w", err)
	}
	return nil
}

// Clear deletes every row.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM kv_entries`); err != nil {
		return fmt.Errorf("store clear: %w", err)
	}
	return nil
}

// Keys returns every key in lexical order.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv_entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("store keys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("store keys: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store keys: %w", err)
	}
	return keys, nil
}

// Count returns the number of stored rows.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM kv_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store count: %w", err)
	}
	return n, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
