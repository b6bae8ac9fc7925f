// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"time"

	"tradelog/pkg/requestcontext"
)

// InvocationContext returns a context stamped the way the gateway adapter
// stamps a live interaction, with the clock pinned to at.
func InvocationContext(invocationID, command string, at time.Time) context.Context {
	ctx := requestcontext.WithInvocationID(context.Background(), invocationID)
	ctx = requestcontext.WithCommand(ctx, command)
	return requestcontext.WithTime(ctx, at)
}
