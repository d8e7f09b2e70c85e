package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope for nestplate spans.
const tracerName = "nestplate"

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartResolveSpan starts a span for one top-level resolution.
	StartResolveSpan(ctx context.Context, resolutionID string, messageLen int) (context.Context, trace.Span)

	// StartValidateSpan starts a span for a validation rule evaluation.
	StartValidateSpan(ctx context.Context, kind string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager looks up the global OTel tracer provider on every span,
// so a provider installed after construction is still honored:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartResolveSpan starts a span for a resolution.
func (m *otelSpanManager) StartResolveSpan(ctx context.Context, resolutionID string, messageLen int) (context.Context, trace.Span) {
	return m.tracer().Start(ctx, "nestplate.resolve",
		trace.WithAttributes(
			attribute.String("resolution.id", resolutionID),
			attribute.Int("message.length", messageLen),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartValidateSpan starts a span for a validation.
func (m *otelSpanManager) StartValidateSpan(ctx context.Context, kind string) (context.Context, trace.Span) {
	return m.tracer().Start(ctx, "nestplate.validate."+kind,
		trace.WithAttributes(
			attribute.String("rule.kind", kind),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// AnnotateResolveSpan records resolution totals on the span in ctx.
func AnnotateResolveSpan(ctx context.Context, substitutions, unresolved, guardTrips, steps int) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.Int("resolve.substitutions", substitutions),
		attribute.Int("resolve.unresolved", unresolved),
		attribute.Int("resolve.guard_trips", guardTrips),
		attribute.Int("resolve.steps", steps),
	)
}
