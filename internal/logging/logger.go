// Package logging defines the Logger interface the server side logs
// through. The zap-backed implementation lives alongside it; the CLI talks
// to the user via plain log instead.
package logging

import "context"

// Logger is a leveled, structured logger. Variadic args are alternating
// key-value pairs, matching zap's sugared API, e.g.:
//
//	logger.Info(ctx, "request", "method", r.Method, "status", status)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}
