// Package requestcontext provides context accessors for invocation-scoped values.
//
// The Discord adapter stamps each interaction with an invocation ID and command
// name before handing it to the router; services read them back for logging and
// tracing without depending on the adapter.
//
// Usage in services (read values):
//
//	invocationID := requestcontext.InvocationID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in the adapter (set values):
//
//	ctx = requestcontext.WithInvocationID(ctx, uuid.NewString())
//	ctx = requestcontext.WithCommand(ctx, "trade")
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

type (
	invocationIDKey struct{}
	commandKey      struct{}
	requestTimeKey  struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyInvocationID = invocationIDKey{}
	ContextKeyCommand      = commandKey{}
	ContextKeyRequestTime  = requestTimeKey{}
)

// InvocationID retrieves the correlation ID of the current command invocation.
// Returns "" if not set.
func InvocationID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyInvocationID).(string); ok {
		return v
	}
	return ""
}

// WithInvocationID injects an invocation ID into the context.
func WithInvocationID(ctx context.Context, invocationID string) context.Context {
	return context.WithValue(ctx, ContextKeyInvocationID, invocationID)
}

// Command retrieves the slash command name being handled. Returns "" if not set.
func Command(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyCommand).(string); ok {
		return v
	}
	return ""
}

// WithCommand injects the slash command name into the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ContextKeyCommand, name)
}

// Now returns the invocation-scoped time if one was injected, otherwise the
// wall clock. Audit records take their timestamp from here so tests can pin it.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
