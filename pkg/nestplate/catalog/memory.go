package catalog

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory catalog store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	locales map[string]map[string]Entry // locale -> key -> entry
	closed  bool
}

// NewMemoryStore creates a new in-memory catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		locales: make(map[string]map[string]Entry),
	}
}

// Put implements Store.
func (m *MemoryStore) Put(key, locale, format string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if m.locales[locale] == nil {
		m.locales[locale] = make(map[string]Entry)
	}

	entry, ok := m.locales[locale][key]
	if !ok {
		entry = Entry{ID: uuid.NewString(), Key: key, Locale: locale}
	}
	entry.Format = format
	entry.UpdatedAt = time.Now().UTC()
	m.locales[locale][key] = entry
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(key, locale string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrStoreClosed
	}

	entry, ok := m.locales[locale][key]
	if !ok {
		return "", ErrNotFound
	}
	return entry.Format, nil
}

// List implements Store.
func (m *MemoryStore) List(locale string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	entries := slices.Collect(maps.Values(m.locales[locale]))
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Key, b.Key)
	})
	return entries, nil
}

// Locales implements Store.
func (m *MemoryStore) Locales() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	var locales []string
	for locale, entries := range m.locales {
		if len(entries) > 0 {
			locales = append(locales, locale)
		}
	}
	slices.Sort(locales)
	return locales, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(key, locale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.locales[locale], key)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.locales = nil
	return nil
}

// Len returns the total number of formats across all locales.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, entries := range m.locales {
		count += len(entries)
	}
	return count
}
