// Package logging defines the structured, context-aware logger used across
// the server, the setup tool and the provider bridge.
package logging

import "context"

// Logger takes key-value pairs after the message:
//
//	log.Info(ctx, "session issued", "user_id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
