// Package observability provides structured logging, metrics, and tracing
// for nestplate resolutions and validations.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Every Log helper accepts a nil logger and does nothing in that case.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds a resolution ID to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "2f1c...")
//	enriched.Debug("scanning") // includes resolution_id
func EnrichLogger(logger *slog.Logger, resolutionID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("resolution_id", resolutionID))
}

// LogResolveStart logs the start of a resolution.
func LogResolveStart(logger *slog.Logger, messageLen, valueCount int) {
	if logger == nil {
		return
	}
	logger.Debug("resolve starting",
		slog.Int("message_len", messageLen),
		slog.Int("values", valueCount),
	)
}

// LogResolveComplete logs a finished resolution with its counters.
func LogResolveComplete(logger *slog.Logger, durationMs float64, substitutions, unresolved, guardTrips int) {
	if logger == nil {
		return
	}
	logger.Debug("resolve completed",
		slog.Float64("duration_ms", durationMs),
		slog.Int("substitutions", substitutions),
		slog.Int("unresolved", unresolved),
		slog.Int("guard_trips", guardTrips),
	)
}

// LogUnresolved logs a placeholder none of whose candidate keys matched.
func LogUnresolved(logger *slog.Logger, token string, substituted bool) {
	if logger == nil {
		return
	}
	logger.Debug("placeholder unresolved",
		slog.String("token", token),
		slog.Bool("substituted", substituted),
	)
}

// LogGuardTrip logs a non-progress retreat of the scan cursor.
func LogGuardTrip(logger *slog.Logger, begin, pos int) {
	if logger == nil {
		return
	}
	logger.Debug("non-progress guard tripped",
		slog.Int("begin", begin),
		slog.Int("pos", pos),
	)
}

// LogStepLimit logs a resolution cut short by the step limit.
func LogStepLimit(logger *slog.Logger, steps int) {
	if logger == nil {
		return
	}
	logger.Warn("resolve step limit reached",
		slog.Int("steps", steps),
	)
}

// LogValidation logs the outcome of a validation rule.
func LogValidation(logger *slog.Logger, kind string, valid bool, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("validation completed",
		slog.String("kind", kind),
		slog.Bool("valid", valid),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogValidationError logs a rule that could not be evaluated.
func LogValidationError(logger *slog.Logger, kind string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("validation rule failed",
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
}

// LogCatalogMiss logs a message format missing from the catalog (non-fatal).
func LogCatalogMiss(logger *slog.Logger, key, locale string, err error) {
	if logger == nil {
		return
	}
	logger.Debug("catalog lookup missed",
		slog.String("key", key),
		slog.String("locale", locale),
		slog.String("error", err.Error()),
	)
}

// LogCatalogReload logs a catalog directory reload. Failures log at warn.
func LogCatalogReload(logger *slog.Logger, dir string, formats int, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn("catalog reload failed",
			slog.String("dir", dir),
			slog.Int("formats", formats),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Info("catalog reloaded",
		slog.String("dir", dir),
		slog.Int("formats", formats),
	)
}

// Millis converts d to fractional milliseconds for duration_ms fields.
func Millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
