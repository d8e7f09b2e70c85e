package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var defaultLocales embed.FS

// Document is the YAML shape of one locale's message formats:
//
//	locale: en
//	messages:
//	  range: "{:title} must be between {:min} and {:max}."
type Document struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// ErrMissingLocale indicates a document without a locale field.
var ErrMissingLocale = errors.New("catalog document has no locale")

// LoadYAML imports a YAML document into store.
// Returns the number of formats written.
func LoadYAML(store Store, data []byte) (int, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse catalog YAML: %w", err)
	}
	return Import(store, doc)
}

// Import writes every message of doc into store in key order.
func Import(store Store, doc Document) (int, error) {
	locale := strings.TrimSpace(doc.Locale)
	if locale == "" {
		return 0, ErrMissingLocale
	}

	keys := make([]string, 0, len(doc.Messages))
	for k := range doc.Messages {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for i, key := range keys {
		if err := store.Put(key, locale, doc.Messages[key]); err != nil {
			return i, fmt.Errorf("import %s/%s: %w", locale, key, err)
		}
	}
	return len(keys), nil
}

// LoadFS imports every .yaml and .yml file at the root of fsys.
// Returns the total number of formats written.
func LoadFS(store Store, fsys fs.FS) (int, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return 0, fmt.Errorf("read catalog directory: %w", err)
	}

	total := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(entry.Name())) {
		case ".yaml", ".yml":
		default:
			continue
		}

		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return total, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		n, err := LoadYAML(store, data)
		total += n
		if err != nil {
			return total, fmt.Errorf("load %s: %w", entry.Name(), err)
		}
	}
	return total, nil
}

// Defaults returns a MemoryStore seeded with the built-in validator
// message formats for English and Japanese.
func Defaults() (*MemoryStore, error) {
	sub, err := fs.Sub(defaultLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("open default locales: %w", err)
	}

	store := NewMemoryStore()
	if _, err := LoadFS(store, sub); err != nil {
		return nil, err
	}
	return store, nil
}
