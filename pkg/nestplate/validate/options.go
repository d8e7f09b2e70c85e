package validate

import (
	"log/slog"

	"github.com/randalmurphal/nestplate/pkg/nestplate"
	"github.com/randalmurphal/nestplate/pkg/nestplate/catalog"
	"github.com/randalmurphal/nestplate/pkg/nestplate/observability"
)

// Option configures a Validator.
type Option func(*Validator)

// WithCatalog sets the catalog failure message formats are looked up in.
// Default: nil (built-in English formats)
func WithCatalog(c *catalog.Catalog) Option {
	return func(v *Validator) {
		v.catalog = c
	}
}

// WithLocale sets the requested locale for catalog lookups. Accepts a tag
// or an Accept-Language value.
// Default: "" (the catalog's fallback)
func WithLocale(locale string) Option {
	return func(v *Validator) {
		v.locale = locale
	}
}

// WithTemplateOptions sets the options of the template that formats
// failure messages, for example custom delimiters or a substitute.
func WithTemplateOptions(opts ...nestplate.Option) Option {
	return func(v *Validator) {
		v.templateOpts = append(v.templateOpts, opts...)
	}
}

// WithLogger enables structured logging of rule evaluations.
// Default: nil (no logging)
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// WithMetrics enables OpenTelemetry validation counters.
// Default: false
func WithMetrics(enabled bool) Option {
	return func(v *Validator) {
		if enabled {
			v.metrics = observability.NewMetricsRecorder()
		} else {
			v.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables an OpenTelemetry span per rule evaluation.
// Default: false
func WithTracing(enabled bool) Option {
	return func(v *Validator) {
		if enabled {
			v.spans = observability.NewSpanManager()
		} else {
			v.spans = observability.NoopSpanManager{}
		}
	}
}
