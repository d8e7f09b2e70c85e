package config

import (
	"maps"
	"slices"
)

// Config is a read-only view over decoded settings. Accessors fall back
// to the supplied default when a key is absent or holds another type.
type Config struct {
	data map[string]any
}

// New wraps data. A nil map yields an empty Config.
func New(data map[string]any) Config {
	if data == nil {
		data = map[string]any{}
	}
	return Config{data: data}
}

// String returns the string under key, or def.
func (c Config) String(key, def string) string {
	if s, ok := c.LookupString(key); ok {
		return s
	}
	return def
}

// LookupString returns the string under key and whether one was set.
// It distinguishes an explicit "" from a missing key.
func (c Config) LookupString(key string) (string, bool) {
	s, ok := c.data[key].(string)
	return s, ok
}

// Bool returns the bool under key, or def.
func (c Config) Bool(key string, def bool) bool {
	b, ok := c.data[key].(bool)
	if !ok {
		return def
	}
	return b
}

// Int returns the integer under key, or def. JSON numbers decode as
// float64 and are accepted when they carry no fraction.
func (c Config) Int(key string, def int) int {
	switch n := c.data[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if whole := int(n); float64(whole) == n {
			return whole
		}
	}
	return def
}

// Sub returns the mapping under key as a Config, or an empty Config.
// Mappings with non-string keys keep only their string keys.
func (c Config) Sub(key string) Config {
	switch m := c.data[key].(type) {
	case map[string]any:
		return New(m)
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			if s, ok := k.(string); ok {
				out[s] = v
			}
		}
		return New(out)
	default:
		return New(nil)
	}
}

// Has reports whether key is set, whatever its type.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Keys returns the top-level keys in sorted order.
func (c Config) Keys() []string {
	return slices.Sorted(maps.Keys(c.data))
}

// Merge returns a new Config holding c's keys overlaid by over's.
// Neither input is modified.
func (c Config) Merge(over Config) Config {
	out := make(map[string]any, len(c.data)+len(over.data))
	maps.Copy(out, c.data)
	maps.Copy(out, over.data)
	return New(out)
}

// Raw exposes the underlying map. Callers must not modify it.
func (c Config) Raw() map[string]any {
	return c.data
}
