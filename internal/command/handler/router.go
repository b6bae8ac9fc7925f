package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"tradelog/internal/command/models"
	"tradelog/internal/platform/metrics"
)

const tracerName = "tradelog/internal/command/handler"

const errorReplyTimeout = 5 * time.Second

// HandlerFunc handles one command kind.
type HandlerFunc func(ctx context.Context, inv *models.Invocation, r Responder) error

// Router selects the handler for an invocation and guarantees the user gets an
// answer even when the handler fails or panics.
type Router struct {
	routes  map[models.Kind]HandlerFunc
	chain   Middleware
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	timeout time.Duration
}

type RouterOption func(r *Router)

func WithRouterLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

func WithRouterMetrics(m *metrics.Metrics) RouterOption {
	return func(r *Router) {
		r.metrics = m
	}
}

func WithRouterTracer(tracer trace.Tracer) RouterOption {
	return func(r *Router) {
		r.tracer = tracer
	}
}

// WithTimeout bounds each invocation. Discord drops interaction tokens after
// fifteen minutes, so anything longer is pointless.
func WithTimeout(d time.Duration) RouterOption {
	return func(r *Router) {
		r.timeout = d
	}
}

// NewRouter registers the four commands of h.
func NewRouter(h *Handler, opts ...RouterOption) (*Router, error) {
	if h == nil {
		return nil, errors.New("handler is required")
	}
	r := &Router{
		routes: map[models.Kind]HandlerFunc{
			models.KindTrade:       h.Trade,
			models.KindGrantAccess: h.GrantAccess,
			models.KindAssignRole:  h.AssignRole,
			models.KindPing:        h.Ping,
		},
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.chain = Chain(
		Recover(r.logger),
		Logging(r.logger),
		Tracing(r.tracer),
		Metrics(r.metrics),
		Timeout(r.timeout),
	)
	return r, nil
}

// Handle registers or replaces the handler for kind.
func (r *Router) Handle(kind models.Kind, fn HandlerFunc) {
	r.routes[kind] = fn
}

// Route handles one invocation. Unknown commands get an informational reply.
// Handler errors are logged and answered with a generic message, sent as a
// followup when the invocation was already acknowledged. Route itself never
// panics.
func (r *Router) Route(ctx context.Context, inv *models.Invocation, resp Responder) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "router panicked", "panic", rec)
		}
	}()

	fn, ok := r.routes[inv.Kind]
	if !ok {
		r.logger.WarnContext(ctx, "unsupported command", "command", inv.Name)
		r.metrics.ObserveInvocation(inv.Kind.String(), "unsupported", 0)
		if err := resp.Reply(ctx, unsupportedMessage(inv.Name)); err != nil {
			r.logger.ErrorContext(ctx, "failed to reply to unsupported command", "error", err)
		}
		return
	}

	err := r.chain(ctx, inv, func(ctx context.Context) error {
		return fn(ctx, inv, resp)
	})
	if err == nil {
		return
	}

	send := resp.Reply
	if resp.Acknowledged() {
		send = resp.Followup
	}
	// The invocation deadline may already have passed; the error reply gets its own.
	replyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), errorReplyTimeout)
	defer cancel()
	if sendErr := send(replyCtx, MessageGenericError); sendErr != nil {
		r.logger.ErrorContext(ctx, "failed to send error reply",
			"command", inv.Kind.String(),
			"error", sendErr,
		)
	}
}
