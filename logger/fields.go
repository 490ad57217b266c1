package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for structured logging across padgen.
const (
	FieldRunID     = "run_id"
	FieldComponent = "component"

	// Generated artefacts
	FieldPackage  = "package"
	FieldClass    = "class"
	FieldLayout   = "layout"
	FieldPath     = "path"
	FieldModule   = "module"

	// Counts and timing
	FieldCount      = "count"
	FieldTotalCount = "total_count"
	FieldDurationMS = "duration_ms"
	FieldWorkers    = "workers"
	FieldSeed       = "seed"

	FieldError = "error"
)

type contextKey string

const runIDKey contextKey = "logger_run_id"

// WithRunID adds a generation run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// LoggerFromContext returns the global logger, tagged with the run ID when
// the context carries one.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		return Logger.With(FieldRunID, runID)
	}
	return Logger
}

// ComponentLogger returns a named logger for a specific component.
//
//	log := logger.ComponentLogger("modgen")
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name).With(FieldComponent, name)
}
