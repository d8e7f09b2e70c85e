/*
Package catalog stores localized message formats for nestplate templates.

# Overview

A message format is a nestplate message such as

	{:title:name} must be between {:min} and {:max}.

stored under a key (usually a validation rule kind) and a locale. Stores
implement the Store interface:

  - MemoryStore: in-process map, useful for tests and embedded defaults
  - SQLiteStore: persistent store on modernc.org/sqlite

# Loading Formats

Formats are imported from YAML documents, one locale per document:

	locale: ja
	messages:
	  range: "{:title:name}は{:min}から{:max}まで入力できます。"

	store, err := catalog.NewSQLiteStore("messages.db")
	if err != nil {
	    return err
	}
	defer store.Close()
	n, err := catalog.LoadYAML(store, data)

Defaults returns a MemoryStore with the built-in English and Japanese
validator messages.

# Watching a Directory

Watch imports every locale file in a directory and re-imports them after
each change, debounced:

	w, err := catalog.Watch(store, "./locales", catalog.WithDebounce(time.Second))
	if err != nil {
	    return err
	}
	defer w.Close()

# Locale Matching

Catalog picks the best supported locale for a request with
golang.org/x/text/language, accepting either a single tag or an
Accept-Language header value, and falls back to the fallback locale when
the matched locale has no format for the key:

	cat, _ := catalog.New(store)
	format, locale, err := cat.Lookup("range", "ja-JP,ja;q=0.9,en;q=0.8")
	// locale: "ja"

# Thread Safety

Both stores are safe for concurrent use. A Catalog is immutable after New.
*/
package catalog
