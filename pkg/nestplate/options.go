package nestplate

import (
	"log/slog"

	"github.com/randalmurphal/nestplate/pkg/nestplate/observability"
)

// DefaultMaxSteps is the default number of reopening mutations (whose
// replacement contains the begin delimiter) a single resolution may perform.
const DefaultMaxSteps = 10000

// DefaultMaxLength is the default upper bound, in bytes, on the message
// when a reopening mutation grows it.
const DefaultMaxLength = 1 << 20

// Option configures a Template.
type Option func(*Template)

// WithDelimiters replaces all three delimiter settings at once.
//
// Example:
//
//	tmpl, _ := nestplate.New("[[x,y]]", vals, nestplate.WithDelimiters(nestplate.Delimiters{
//	    Begin: "[[", End: "]]", Separator: ",",
//	}))
func WithDelimiters(d Delimiters) Option {
	return func(t *Template) {
		t.delims = d
	}
}

// WithEnclosure sets the begin and end delimiters.
// Default: "{:" and "}"
func WithEnclosure(begin, end string) Option {
	return func(t *Template) {
		t.delims.Begin = begin
		t.delims.End = end
	}
}

// WithNameSeparator sets the separator between candidate keys.
// Default: ":"
func WithNameSeparator(sep string) Option {
	return func(t *Template) {
		t.delims.Separator = sep
	}
}

// WithSubstitute sets the global substitute used for every placeholder
// none of whose candidate keys is present.
//
// Default: unset (unresolved placeholders stay in the output verbatim)
//
// Example:
//
//	tmpl, _ := nestplate.New("{:missing}", nil, nestplate.WithSubstitute("?"))
//	tmpl.Resolve(nil) // "?"
func WithSubstitute(s string) Option {
	return func(t *Template) {
		t.substitute = &s
	}
}

// WithMaxSteps bounds the number of reopening mutations per resolution.
// Replacements without the begin delimiter are not counted.
// Default: DefaultMaxSteps. n <= 0 removes the bound.
//
// The non-progress guard already terminates on malformed templates; this
// limit covers values that reintroduce placeholders forever, such as
// a -> "{:a}{:a}" or a cycle a -> "{:b}", b -> "{:a}".
func WithMaxSteps(n int) Option {
	return func(t *Template) {
		t.maxSteps = n
	}
}

// WithMaxLength bounds the size of the message during resolution.
// Default: DefaultMaxLength. n <= 0 removes the bound.
//
// A substitution whose value contains the begin delimiter and would grow the
// message past n is not applied and the resolution stops. Plain values are
// never refused. Self-referential values such as a -> "{:a}{:a}" double
// the message on every step, so the step limit alone is not enough.
func WithMaxLength(n int) Option {
	return func(t *Template) {
		t.maxLength = n
	}
}

// WithLogger enables structured debug logging of resolutions.
// Default: nil (no logging)
func WithLogger(logger *slog.Logger) Option {
	return func(t *Template) {
		t.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics using the global meter provider.
// Default: false
func WithMetrics(enabled bool) Option {
	return func(t *Template) {
		if enabled {
			t.metrics = observability.NewMetricsRecorder()
		} else {
			t.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans using the global tracer provider.
// Default: false
func WithTracing(enabled bool) Option {
	return func(t *Template) {
		t.tracing = enabled
		if enabled {
			t.spans = observability.NewSpanManager()
		} else {
			t.spans = observability.NoopSpanManager{}
		}
	}
}
