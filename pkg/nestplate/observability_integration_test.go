package nestplate

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// testLogHandler captures log records for testing.
type testLogHandler struct {
	buf   *bytes.Buffer
	attrs []slog.Attr
}

func newTestLogHandler() *testLogHandler {
	return &testLogHandler{buf: &bytes.Buffer{}}
}

func (h *testLogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, a := range h.attrs {
		data[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &testLogHandler{buf: h.buf, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *testLogHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *testLogHandler) records() []map[string]any {
	var records []map[string]any
	for _, line := range bytes.Split(h.buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(line, &m); err == nil {
			records = append(records, m)
		}
	}
	return records
}

func TestResolve_WithLogger(t *testing.T) {
	h := newTestLogHandler()
	tmpl := MustNew("{:a} {:missing}", map[string]any{"a": "A"}, WithLogger(slog.New(h)))

	assert.Equal(t, "A {:missing}", tmpl.Resolve(nil))

	records := h.records()
	require.NotEmpty(t, records)

	var start, complete, unresolved, guard int
	var resolutionID string
	for _, r := range records {
		id, _ := r["resolution_id"].(string)
		if resolutionID == "" {
			resolutionID = id
		}
		assert.Equal(t, resolutionID, id, "all records share the resolution ID")

		switch r["msg"] {
		case "resolve starting":
			start++
		case "resolve completed":
			complete++
			assert.Equal(t, float64(1), r["substitutions"])
			assert.Equal(t, float64(1), r["unresolved"])
		case "placeholder unresolved":
			unresolved++
			assert.Equal(t, "{:missing}", r["token"])
		case "non-progress guard tripped":
			guard++
		}
	}

	assert.NotEmpty(t, resolutionID)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, complete)
	assert.Equal(t, 1, unresolved)
	assert.Positive(t, guard)
}

func TestResolve_WithLogger_StepLimit(t *testing.T) {
	h := newTestLogHandler()
	tmpl := MustNew("{:a}", map[string]any{"a": "{:b}", "b": "{:a}"},
		WithLogger(slog.New(h)), WithMaxSteps(4))

	res := tmpl.ResolveDetailed(context.Background(), nil)
	require.True(t, res.Stats.Limited)

	var warned bool
	for _, r := range h.records() {
		if r["msg"] == "resolve step limit reached" {
			warned = true
			assert.Equal(t, "WARN", r["level"])
			assert.Equal(t, float64(4), r["steps"])
		}
	}
	assert.True(t, warned)
}

func TestResolve_WithTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	}()

	t.Run("successful resolution", func(t *testing.T) {
		exporter.Reset()
		tmpl := MustNew("{:a}", map[string]any{"a": "A"}, WithTracing(true))
		assert.Equal(t, "A", tmpl.ResolveContext(context.Background(), nil))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, "nestplate.resolve", spans[0].Name)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("limited resolution records error", func(t *testing.T) {
		exporter.Reset()
		tmpl := MustNew("{:a}", map[string]any{"a": "{:a}{:a}"},
			WithTracing(true), WithMaxLength(64))
		tmpl.Resolve(nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, ErrLengthLimit.Error(), spans[0].Status.Description)

		var limitEvent bool
		for _, ev := range spans[0].Events {
			if ev.Name == "limit_reached" {
				limitEvent = true
			}
		}
		assert.True(t, limitEvent)
	})

	t.Run("disabled tracing records nothing", func(t *testing.T) {
		exporter.Reset()
		MustNew("{:a}", nil, WithTracing(false)).Resolve(nil)
		assert.Empty(t, exporter.GetSpans())
	})
}

func TestResolve_WithMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	original := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	defer func() {
		otel.SetMeterProvider(original)
		_ = provider.Shutdown(context.Background())
	}()

	tmpl := MustNew("{:a} {:b} {:missing}", map[string]any{"a": "A", "b": "B"}, WithMetrics(true))
	tmpl.Resolve(nil)
	tmpl.Resolve(nil)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	totals := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(2), totals["nestplate.resolve.count"])
	assert.Equal(t, int64(4), totals["nestplate.resolve.substitutions"])
	assert.Equal(t, int64(2), totals["nestplate.resolve.unresolved"])
}
