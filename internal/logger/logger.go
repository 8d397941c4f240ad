// Package logger builds the zerolog logger used by the pipeline stages.
// The CLI hands it stderr so stdout stays reserved for the completion line.
package logger

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// NewConsole returns a human-readable logger writing to w.
func NewConsole(w io.Writer) zerolog.Logger {
	return NewWithWriter(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	})
}

// NewWithWriter returns a timestamped logger writing to w. Events are
// JSON unless w is a zerolog.ConsoleWriter.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// WithContext stores log in ctx.
func WithContext(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger stored in ctx, or a disabled logger if there is none.
func FromContext(ctx context.Context) zerolog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return log
	}
	return zerolog.Nop()
}

// Stage returns a child logger tagged with the pipeline stage name.
func Stage(log zerolog.Logger, stage string) zerolog.Logger {
	return log.With().Str("stage", stage).Logger()
}
