package nestplate

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/randalmurphal/nestplate/pkg/nestplate/observability"
)

// Template is a message plus the configuration and stored values used to
// resolve it.
//
// Create with New() and configure with Option functions.
// Template is immutable and safe for concurrent use after construction.
type Template struct {
	message    string
	values     map[string]any
	delims     Delimiters
	substitute *string
	maxSteps   int
	maxLength  int

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	tracing bool
}

// New creates a Template for message with the stored values.
//
// The values map is copied; later changes to it do not affect the template.
// The only error is an invalid delimiter configuration.
//
// Default configuration:
//   - Delimiters: "{:", "}", ":"
//   - Substitute: unset
//   - MaxSteps: DefaultMaxSteps
//   - MaxLength: DefaultMaxLength
//   - Logging, metrics, tracing: disabled
//
// Example:
//
//	tmpl, err := nestplate.New("{:title} must be at least {:min}", map[string]any{"min": 3})
//	if err != nil {
//	    return err
//	}
//	msg := tmpl.Resolve(map[string]any{"title": "Name"})
//	// msg: "Name must be at least 3"
func New(message string, values map[string]any, opts ...Option) (*Template, error) {
	t := newTemplate(message, values)
	for _, opt := range opts {
		opt(t)
	}
	if err := t.delims.Validate(); err != nil {
		return nil, fmt.Errorf("invalid delimiters: %w", err)
	}
	return t, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(message string, values map[string]any, opts ...Option) *Template {
	t, err := New(message, values, opts...)
	if err != nil {
		panic(fmt.Sprintf("nestplate: %v", err))
	}
	return t
}

func newTemplate(message string, values map[string]any) *Template {
	return &Template{
		message:   message,
		values:    maps.Clone(values),
		delims:    DefaultDelimiters(),
		maxSteps:  DefaultMaxSteps,
		maxLength: DefaultMaxLength,
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
}

// Message returns the unresolved message.
func (t *Template) Message() string {
	return t.message
}

// Delimiters returns the delimiter configuration.
func (t *Template) Delimiters() Delimiters {
	return t.delims
}

// Substitute returns the global substitute and whether one is configured.
func (t *Template) Substitute() (string, bool) {
	if t.substitute == nil {
		return "", false
	}
	return *t.substitute, true
}

// Values returns a copy of the stored values.
func (t *Template) Values() map[string]any {
	return maps.Clone(t.values)
}

// Resolve expands the template's message with the stored values merged
// with perCall. It never fails: placeholders that cannot be resolved are
// left verbatim or replaced by the global substitute.
//
// Stored values win over perCall values with the same key. Neither map is
// modified.
//
// Example:
//
//	tmpl := nestplate.MustNew("{:a:b}", map[string]any{"b": "X"})
//	tmpl.Resolve(nil) // "X"
func (t *Template) Resolve(perCall map[string]any) string {
	return t.ResolveDetailed(context.Background(), perCall).Output
}

// ResolveContext is Resolve with a context for tracing and metrics.
func (t *Template) ResolveContext(ctx context.Context, perCall map[string]any) string {
	return t.ResolveDetailed(ctx, perCall).Output
}

// ResolveDetailed resolves the message and reports what the resolver did.
func (t *Template) ResolveDetailed(ctx context.Context, perCall map[string]any) Result {
	return t.run(ctx, t.message, perCall)
}

// ResolveMessage resolves a different message with this template's
// delimiters, substitute and stored values. Validators use it to format
// rule messages against the rule's options.
func (t *Template) ResolveMessage(message string, perCall map[string]any) string {
	return t.run(context.Background(), message, perCall).Output
}

// ResolveMessageContext is ResolveMessage with a context.
func (t *Template) ResolveMessageContext(ctx context.Context, message string, perCall map[string]any) string {
	return t.run(ctx, message, perCall).Output
}

// ResolveAll resolves every message in messages with this template's
// configuration. Returns nil for a nil slice.
//
// Example:
//
//	tmpl := nestplate.MustNew("", map[string]any{"env": "prod"})
//	tmpl.ResolveAll([]string{"{:env}.api", "{:env}.db"}, nil)
//	// ["prod.api", "prod.db"]
func (t *Template) ResolveAll(messages []string, perCall map[string]any) []string {
	if messages == nil {
		return nil
	}
	results := make([]string, len(messages))
	for i, m := range messages {
		results[i] = t.ResolveMessage(m, perCall)
	}
	return results
}

// ResolveMap resolves all string values of m recursively.
//
// Returns a new map. Non-string values are copied as-is and nested maps
// (map[string]any) are resolved recursively.
func (t *Template) ResolveMap(m map[string]any, perCall map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = t.resolveValue(v, perCall)
	}
	return result
}

func (t *Template) resolveValue(v any, perCall map[string]any) any {
	switch val := v.(type) {
	case string:
		return t.ResolveMessage(val, perCall)
	case map[string]any:
		return t.ResolveMap(val, perCall)
	default:
		return v
	}
}

// merged returns the working value mapping for one call: a copy of the
// stored values with perCall keys added only where absent.
func (t *Template) merged(perCall map[string]any) map[string]any {
	working := make(map[string]any, len(t.values)+len(perCall))
	maps.Copy(working, t.values)
	for k, v := range perCall {
		if _, exists := working[k]; !exists {
			working[k] = v
		}
	}
	return working
}

// Resolve expands message with values using the default delimiters.
//
// Example:
//
//	nestplate.Resolve("Hello {:name}", map[string]any{"name": "World"})
//	// "Hello World"
func Resolve(message string, values map[string]any) string {
	return newTemplate(message, values).Resolve(nil)
}

// ResolveAny resolves message when it is a string (or []byte) and returns
// the empty string for any other type.
func ResolveAny(message any, values map[string]any) string {
	switch m := message.(type) {
	case string:
		return Resolve(m, values)
	case []byte:
		return Resolve(string(m), values)
	default:
		return ""
	}
}
