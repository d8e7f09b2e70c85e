package validate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/randalmurphal/nestplate/pkg/nestplate"
	"github.com/randalmurphal/nestplate/pkg/nestplate/catalog"
	"github.com/randalmurphal/nestplate/pkg/nestplate/observability"
	"github.com/randalmurphal/nestplate/pkg/nestplate/values"
)

// Errors reported in Result.Err when a rule cannot be evaluated.
var (
	// ErrInvalidValue indicates the checked value has the wrong type for the rule.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidOption indicates a rule option (bound or pattern) is unusable.
	ErrInvalidOption = errors.New("invalid rule option")
)

// Result is the outcome of one rule.
type Result struct {
	// Valid is true when the value satisfies the rule.
	Valid bool

	// Message is the resolved failure message. Empty when Valid.
	Message string

	// Err is set when the rule could not be evaluated. Such a result is
	// never Valid.
	Err error
}

// Validator checks values against rules and formats failure messages
// with a nestplate template.
//
// Validator is safe for concurrent use after construction.
type Validator struct {
	catalog      *catalog.Catalog
	locale       string
	templateOpts []nestplate.Option
	formatter    *nestplate.Template

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// New creates a Validator. The only error is an invalid template option.
//
// Example:
//
//	v, err := validate.New(validate.WithCatalog(cat), validate.WithLocale("ja"))
//	res := v.Check(ctx, 200, validate.Rule{Kind: validate.KindRange, Min: 0, Max: 150, Title: "年齢"}, nil)
//	// res.Message: "年齢は0から150まで入力できます。"
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(v)
	}

	formatter, err := nestplate.New("", nil, v.templateOpts...)
	if err != nil {
		return nil, fmt.Errorf("message template: %w", err)
	}
	v.formatter = formatter
	return v, nil
}

// Check evaluates rule against value. attrs are the attributes of the
// element being validated and supply options the rule does not set.
func (v *Validator) Check(ctx context.Context, value any, rule Rule, attrs map[string]any) Result {
	kind := rule.Kind.String()
	ctx, span := v.spans.StartValidateSpan(ctx, kind)
	start := time.Now()

	valid, err := v.evaluate(value, rule, attrs)

	res := Result{Valid: valid && err == nil, Err: err}
	if !res.Valid {
		res.Message = v.message(ctx, value, rule, attrs)
	}

	if err != nil {
		observability.LogValidationError(v.logger, kind, err)
	}
	elapsed := time.Since(start)
	observability.LogValidation(v.logger, kind, res.Valid, observability.Millis(elapsed))
	v.metrics.RecordValidation(ctx, kind, res.Valid, elapsed)
	v.spans.EndSpanWithError(span, err)
	return res
}

// CheckAll evaluates every rule and returns the results that are not valid,
// in rule order.
func (v *Validator) CheckAll(ctx context.Context, value any, rules []Rule, attrs map[string]any) []Result {
	var failures []Result
	for _, r := range rules {
		if res := v.Check(ctx, value, r, attrs); !res.Valid {
			failures = append(failures, res)
		}
	}
	return failures
}

// Message resolves the failure message of rule without evaluating it.
func (v *Validator) Message(ctx context.Context, value any, rule Rule, attrs map[string]any) string {
	return v.message(ctx, value, rule, attrs)
}

func (v *Validator) evaluate(value any, rule Rule, attrs map[string]any) (bool, error) {
	switch rule.Kind {
	case KindRange:
		return checkRange(value, rule, attrs)
	case KindRegex:
		return checkRegex(value, rule, attrs)
	case KindDatetimeRange:
		return checkDatetimeRange(value, rule, attrs)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownKind, rule.Kind)
	}
}

// checkRange reports min <= value <= max. A missing bound is open.
func checkRange(value any, rule Rule, attrs map[string]any) (bool, error) {
	n, ok := values.Float64(value)
	if !ok {
		return false, fmt.Errorf("%w: %v is not a number", ErrInvalidValue, value)
	}
	for _, bound := range []string{"min", "max"} {
		raw, found := rule.option(bound, attrs)
		if !found {
			continue
		}
		limit, ok := values.Float64(raw)
		if !ok {
			return false, fmt.Errorf("%w: %s %v is not a number", ErrInvalidOption, bound, raw)
		}
		if (bound == "min" && n < limit) || (bound == "max" && n > limit) {
			return false, nil
		}
	}
	return true, nil
}

// checkRegex reports whether the stringified value matches the pattern.
func checkRegex(value any, rule Rule, attrs map[string]any) (bool, error) {
	raw, found := rule.option("pattern", attrs)
	if !found {
		return false, fmt.Errorf("%w: pattern is required", ErrInvalidOption)
	}

	var re *regexp.Regexp
	switch p := raw.(type) {
	case *regexp.Regexp:
		re = p
	default:
		compiled, err := regexp.Compile(values.String(p))
		if err != nil {
			return false, fmt.Errorf("%w: pattern: %w", ErrInvalidOption, err)
		}
		re = compiled
	}
	return re.MatchString(values.String(value)), nil
}

// checkDatetimeRange reports min <= value <= max as instants. A missing
// bound is open.
func checkDatetimeRange(value any, rule Rule, attrs map[string]any) (bool, error) {
	t, ok := values.Time(value)
	if !ok {
		return false, fmt.Errorf("%w: %v is not a date or time", ErrInvalidValue, value)
	}
	for _, bound := range []string{"min", "max"} {
		raw, found := rule.option(bound, attrs)
		if !found {
			continue
		}
		limit, ok := values.Time(raw)
		if !ok {
			return false, fmt.Errorf("%w: %s %v is not a date or time", ErrInvalidOption, bound, raw)
		}
		if (bound == "min" && t.Before(limit)) || (bound == "max" && t.After(limit)) {
			return false, nil
		}
	}
	return true, nil
}

// message picks the failure format (rule message, catalog, built-in) and
// resolves it with the rule's option values and the checked value.
func (v *Validator) message(ctx context.Context, value any, rule Rule, attrs map[string]any) string {
	format := rule.Message
	if format == "" && v.catalog != nil {
		f, _, err := v.catalog.LookupContext(ctx, rule.Kind.String(), v.locale)
		if err == nil {
			format = f
		}
	}
	if format == "" {
		format = defaultFormats[rule.Kind]
	}

	perCall := map[string]any{"value": value}
	if name, ok := attrs["name"]; ok {
		perCall["name"] = name
	}
	return v.formatter.ResolveMessageContext(ctx, format, mergeMissing(rule.messageValues(attrs), perCall))
}

// mergeMissing adds the keys of extra that base does not have.
func mergeMissing(base, extra map[string]any) map[string]any {
	for k, val := range extra {
		if _, ok := base[k]; !ok {
			base[k] = val
		}
	}
	return base
}
