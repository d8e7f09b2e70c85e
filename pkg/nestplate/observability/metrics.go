package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records nestplate metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordResolution records a completed resolution and its counters.
	RecordResolution(ctx context.Context, duration time.Duration, substitutions, unresolved, guardTrips int, limited bool)

	// RecordValidation records a validation rule evaluation.
	RecordValidation(ctx context.Context, kind string, valid bool, duration time.Duration)

	// RecordCatalogLookup records a catalog lookup and whether it hit.
	RecordCatalogLookup(ctx context.Context, locale string, hit bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	resolutions    metric.Int64Counter
	resolveLatency metric.Float64Histogram
	substitutions  metric.Int64Counter
	unresolved     metric.Int64Counter
	guardTrips     metric.Int64Counter
	stepLimits     metric.Int64Counter
	validations    metric.Int64Counter
	catalogLookups metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("nestplate")

	resolutions, err := meter.Int64Counter("nestplate.resolve.count",
		metric.WithDescription("Number of template resolutions"),
	)
	if err != nil {
		return nil, err
	}

	resolveLatency, err := meter.Float64Histogram("nestplate.resolve.latency_ms",
		metric.WithDescription("Template resolution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	substitutions, err := meter.Int64Counter("nestplate.resolve.substitutions",
		metric.WithDescription("Number of placeholder substitutions"),
	)
	if err != nil {
		return nil, err
	}

	unresolved, err := meter.Int64Counter("nestplate.resolve.unresolved",
		metric.WithDescription("Number of placeholders with no matching candidate key"),
	)
	if err != nil {
		return nil, err
	}

	guardTrips, err := meter.Int64Counter("nestplate.resolve.guard_trips",
		metric.WithDescription("Number of non-progress cursor retreats"),
	)
	if err != nil {
		return nil, err
	}

	stepLimits, err := meter.Int64Counter("nestplate.resolve.step_limits",
		metric.WithDescription("Number of resolutions stopped by the step limit"),
	)
	if err != nil {
		return nil, err
	}

	validations, err := meter.Int64Counter("nestplate.validate.count",
		metric.WithDescription("Number of validation rule evaluations"),
	)
	if err != nil {
		return nil, err
	}

	catalogLookups, err := meter.Int64Counter("nestplate.catalog.lookups",
		metric.WithDescription("Number of message catalog lookups"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		resolutions:    resolutions,
		resolveLatency: resolveLatency,
		substitutions:  substitutions,
		unresolved:     unresolved,
		guardTrips:     guardTrips,
		stepLimits:     stepLimits,
		validations:    validations,
		catalogLookups: catalogLookups,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordResolution records a resolution.
func (m *otelMetrics) RecordResolution(ctx context.Context, duration time.Duration, substitutions, unresolved, guardTrips int, limited bool) {
	attrs := metric.WithAttributes(attribute.Bool("limited", limited))

	m.resolutions.Add(ctx, 1, attrs)
	m.resolveLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	m.substitutions.Add(ctx, int64(substitutions))
	m.unresolved.Add(ctx, int64(unresolved))
	m.guardTrips.Add(ctx, int64(guardTrips))
	if limited {
		m.stepLimits.Add(ctx, 1)
	}
}

// RecordValidation records a validation.
func (m *otelMetrics) RecordValidation(ctx context.Context, kind string, valid bool, _ time.Duration) {
	m.validations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("valid", valid),
	))
}

// RecordCatalogLookup records a catalog lookup.
func (m *otelMetrics) RecordCatalogLookup(ctx context.Context, locale string, hit bool) {
	m.catalogLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("locale", locale),
		attribute.Bool("hit", hit),
	))
}
