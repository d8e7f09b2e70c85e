package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/randalmurphal/nestplate/pkg/nestplate/observability"
)

// Catalog looks up message formats for the best matching supported locale.
//
// Create with New() and configure with Option functions.
// Catalog is safe for concurrent use if its Store is.
type Catalog struct {
	store    Store
	locales  []string       // store locale names, parallel to tags
	tags     []language.Tag // supported tags; tags[0] is the fallback
	matcher  language.Matcher
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	fallback string
	explicit []string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLocales sets the supported locales, in preference order.
// Default: the locales present in the store.
func WithLocales(locales ...string) Option {
	return func(c *Catalog) {
		c.explicit = locales
	}
}

// WithFallback sets the locale used when no supported locale matches.
// Default: "en" when supported, else the first supported locale.
func WithFallback(locale string) Option {
	return func(c *Catalog) {
		c.fallback = locale
	}
}

// WithLogger enables debug logging of catalog misses.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry lookup counters.
func WithMetrics(enabled bool) Option {
	return func(c *Catalog) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// New creates a Catalog over store.
//
// Example:
//
//	store, _ := catalog.Defaults()
//	cat, err := catalog.New(store)
//	format, locale, err := cat.Lookup("range", "ja-JP")
//	// format: "{:title:name}は{:min}から{:max}まで入力できます。", locale: "ja"
func New(store Store, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		store:   store,
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}

	locales := c.explicit
	if len(locales) == 0 {
		var err error
		locales, err = store.Locales()
		if err != nil {
			return nil, fmt.Errorf("list catalog locales: %w", err)
		}
	}
	if len(locales) == 0 {
		return nil, errors.New("catalog has no locales")
	}

	fallback := c.fallback
	if fallback == "" {
		fallback = locales[0]
		for _, l := range locales {
			if l == "en" {
				fallback = l
				break
			}
		}
	}

	// The fallback goes first so the matcher returns it when nothing matches.
	ordered := []string{fallback}
	for _, l := range locales {
		if l != fallback {
			ordered = append(ordered, l)
		}
	}

	for _, l := range ordered {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", l, err)
		}
		c.locales = append(c.locales, l)
		c.tags = append(c.tags, tag)
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Locales returns the supported locales with the fallback first.
func (c *Catalog) Locales() []string {
	return append([]string(nil), c.locales...)
}

// Fallback returns the fallback locale.
func (c *Catalog) Fallback() string {
	return c.locales[0]
}

// Match returns the supported locale that best serves the request.
// The request may be a single tag ("pt-BR") or an Accept-Language list
// ("ja-JP,ja;q=0.9,en;q=0.5"). Unparsable or empty requests get the fallback.
func (c *Catalog) Match(requested string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return c.locales[0]
	}

	var tags []language.Tag
	if strings.ContainsAny(requested, ",;") {
		parsed, _, err := language.ParseAcceptLanguage(requested)
		if err != nil {
			return c.locales[0]
		}
		tags = parsed
	} else {
		tag, err := language.Parse(requested)
		if err != nil {
			return c.locales[0]
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.locales[0]
	}
	return c.locales[idx]
}

// Lookup returns the format for key in the best matching locale, falling
// back to the fallback locale when the matched locale has no format.
// The returned locale is the one the format came from.
func (c *Catalog) Lookup(key, requested string) (string, string, error) {
	return c.LookupContext(context.Background(), key, requested)
}

// LookupContext is Lookup with a context for metrics.
func (c *Catalog) LookupContext(ctx context.Context, key, requested string) (string, string, error) {
	locale := c.Match(requested)

	format, err := c.store.Get(key, locale)
	if errors.Is(err, ErrNotFound) && locale != c.locales[0] {
		observability.LogCatalogMiss(c.logger, key, locale, err)
		locale = c.locales[0]
		format, err = c.store.Get(key, locale)
	}

	c.metrics.RecordCatalogLookup(ctx, locale, err == nil)
	if err != nil {
		observability.LogCatalogMiss(c.logger, key, locale, err)
		return "", locale, fmt.Errorf("lookup %s/%s: %w", locale, key, err)
	}
	return format, locale, nil
}
