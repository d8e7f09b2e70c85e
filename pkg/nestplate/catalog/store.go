package catalog

import (
	"errors"
	"time"
)

// Store persists message formats keyed by (key, locale).
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores the format for key in locale.
	// Overwrites an existing format and keeps its entry ID.
	Put(key, locale, format string) error

	// Get retrieves a format.
	// Returns ErrNotFound if there is none for (key, locale).
	Get(key, locale string) (string, error)

	// List returns all entries for a locale, ordered by key.
	// Returns an empty slice (not error) if the locale has no entries.
	List(locale string) ([]Entry, error)

	// Locales returns the locales that have at least one entry, sorted.
	Locales() ([]string, error)

	// Delete removes a format.
	// Returns nil if it doesn't exist.
	Delete(key, locale string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Entry is a stored message format with its metadata.
type Entry struct {
	ID        string
	Key       string
	Locale    string
	Format    string
	UpdatedAt time.Time
}

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates no format exists for the key and locale.
	ErrNotFound = errors.New("message format not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("catalog store closed")
)
