// Package logging defines the structured-logging interface used by the
// hashing front ends. The crypto packages themselves never log.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Warn(ctx, "few kdf rounds", "rounds", rounds)
type Logger interface {
	// Debug logs per-operation detail such as cost and elapsed time.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs advisories for parameters that work but are weak.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failed operations.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
