package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerContextKey contextKey = "request_logger"

// With derives a request-scoped logger carrying extra key-value pairs
// and stores it back on the context.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, loggerContextKey, From(ctx).With(fields...))
}

// From pulls the request-scoped logger out of the context, falling back
// to the process-wide logger when none was attached.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
