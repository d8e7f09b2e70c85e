package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists message formats to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite catalog store.
// The path should be a file path (e.g., "./messages.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own empty database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS messages (
			id TEXT NOT NULL UNIQUE,
			msg_key TEXT NOT NULL,
			locale TEXT NOT NULL,
			format TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (msg_key, locale)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_messages_locale
		ON messages(locale)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(key, locale, format string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO messages (id, msg_key, locale, format, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(msg_key, locale) DO UPDATE SET
			format = excluded.format,
			updated_at = excluded.updated_at
	`, uuid.NewString(), key, locale, format, time.Now().UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("put message: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(key, locale string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	var format string
	err := s.db.QueryRow(`
		SELECT format FROM messages
		WHERE msg_key = ? AND locale = ?
	`, key, locale).Scan(&format)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get message: %w", err)
	}
	return format, nil
}

// List implements Store.
func (s *SQLiteStore) List(locale string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT id, msg_key, format, updated_at
		FROM messages
		WHERE locale = ?
		ORDER BY msg_key
	`, locale)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var updatedAt string
		if err := rows.Scan(&entry.ID, &entry.Key, &entry.Format, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		entry.Locale = locale
		entry.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return entries, nil
}

// Locales implements Store.
func (s *SQLiteStore) Locales() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`SELECT DISTINCT locale FROM messages ORDER BY locale`)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	defer rows.Close()

	var locales []string
	for rows.Next() {
		var locale string
		if err := rows.Scan(&locale); err != nil {
			return nil, fmt.Errorf("scan locale: %w", err)
		}
		locales = append(locales, locale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locales: %w", err)
	}

	return locales, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(key, locale string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		DELETE FROM messages
		WHERE msg_key = ? AND locale = ?
	`, key, locale)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
