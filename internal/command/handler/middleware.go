package handler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tradelog/internal/command/models"
	"tradelog/internal/platform/metrics"
)

// Next is the terminal call of a middleware chain.
type Next func(ctx context.Context) error

// Middleware wraps command handling with cross-cutting logic. It must call
// next unless it short-circuits with an error.
type Middleware func(ctx context.Context, inv *models.Invocation, next Next) error

// Chain composes middleware right-to-left: the first entry is the outermost.
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, inv *models.Invocation, next Next) error {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, inv, prev)
			}
		}
		return h(ctx)
	}
}

// Recover turns a handler panic into an error so the router can still reply.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, inv *models.Invocation, next Next) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "command handler panicked",
					slog.String("command", inv.Kind.String()),
					slog.String("invocation_id", inv.ID),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
				retErr = fmt.Errorf("panic in command %s: %v", inv.Name, r)
			}
		}()
		return next(ctx)
	}
}

// Logging logs the start and end of every invocation.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, inv *models.Invocation, next Next) error {
		logger.InfoContext(ctx, "command received",
			slog.String("command", inv.Kind.String()),
			slog.String("invocation_id", inv.ID),
			slog.String("invoker_id", inv.Invoker.ID.String()),
			slog.String("guild_id", inv.GuildID.String()),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "command failed",
				slog.String("command", inv.Kind.String()),
				slog.String("invocation_id", inv.ID),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.InfoContext(ctx, "command completed",
				slog.String("command", inv.Kind.String()),
				slog.String("invocation_id", inv.ID),
				slog.Duration("elapsed", elapsed),
			)
		}
		return err
	}
}

// Timeout bounds handling with a deadline. A zero d disables it.
func Timeout(d time.Duration) Middleware {
	return func(ctx context.Context, _ *models.Invocation, next Next) error {
		if d <= 0 {
			return next(ctx)
		}
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return next(ctx)
	}
}

// Tracing wraps handling in a span.
func Tracing(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, inv *models.Invocation, next Next) error {
		ctx, span := tracer.Start(ctx, "command.handle",
			trace.WithAttributes(
				attribute.String("tradelog.command", inv.Kind.String()),
				attribute.String("tradelog.invocation_id", inv.ID),
				attribute.String("tradelog.guild_id", inv.GuildID.String()),
			),
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}

// Metrics records invocation counts and latency.
func Metrics(m *metrics.Metrics) Middleware {
	return func(ctx context.Context, inv *models.Invocation, next Next) error {
		start := time.Now()
		err := next(ctx)

		result := "ok"
		if err != nil {
			result = "error"
		}
		m.ObserveInvocation(inv.Kind.String(), result, time.Since(start))
		return err
	}
}
