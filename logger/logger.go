// Package logger builds the process slog logger and carries request-scoped
// loggers through a context.
package logger

import (
	"context"
	"io"
	"log/slog"
)

const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldError     = "error"
)

type ctxKey struct{}

// New returns a logger writing text or JSON records to w.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored by WithContext, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
