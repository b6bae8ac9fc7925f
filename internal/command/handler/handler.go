package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Dispatcher,Responder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tradelog/internal/command/models"
	"tradelog/internal/dispatch"
	dErrors "tradelog/pkg/domain-errors"
)

// Dispatcher runs the logging pipeline.
type Dispatcher interface {
	Dispatch(ctx context.Context, req dispatch.Request) dispatch.Outcome
}

// Responder answers the invoking user. Every reply is ephemeral.
type Responder interface {
	// Defer sends the placeholder acknowledgement that keeps the invocation alive.
	Defer(ctx context.Context) error
	// Reply sends the initial response when nothing was acknowledged yet.
	Reply(ctx context.Context, content string) error
	// Followup sends a response after Defer or Reply.
	Followup(ctx context.Context, content string) error
	// Acknowledged reports whether Defer or Reply already succeeded.
	Acknowledged() bool
}

// Handler holds one method per slash command.
type Handler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

type Option func(h *Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func New(dispatcher Dispatcher, opts ...Option) (*Handler, error) {
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	h := &Handler{dispatcher: dispatcher, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Trade logs a channel/item swap between the invoker and another user.
func (h *Handler) Trade(ctx context.Context, inv *models.Invocation, r Responder) error {
	return h.logAction(ctx, inv, r, func(log models.ChannelRef) string {
		return tradeSummary(log)
	})
}

// GrantAccess logs that the invoker granted a user access to a channel.
func (h *Handler) GrantAccess(ctx context.Context, inv *models.Invocation, r Responder) error {
	return h.logAction(ctx, inv, r, func(log models.ChannelRef) string {
		opts, _ := inv.Options.(models.GrantAccessOptions)
		return grantAccessSummary(opts, log)
	})
}

// AssignRole logs that the invoker assigned a role to a user. The role itself
// is not granted by the bot.
func (h *Handler) AssignRole(ctx context.Context, inv *models.Invocation, r Responder) error {
	return h.logAction(ctx, inv, r, func(log models.ChannelRef) string {
		opts, _ := inv.Options.(models.AssignRoleOptions)
		return assignRoleSummary(opts, log)
	})
}

// Ping answers immediately for liveness checks.
func (h *Handler) Ping(ctx context.Context, _ *models.Invocation, r Responder) error {
	return r.Reply(ctx, MessagePong)
}

// logAction is the shared flow: acknowledge first, validate, dispatch, reply.
func (h *Handler) logAction(ctx context.Context, inv *models.Invocation, r Responder, summary func(models.ChannelRef) string) error {
	if err := r.Defer(ctx); err != nil {
		return fmt.Errorf("defer reply: %w", err)
	}

	if err := validate(inv); err != nil {
		h.logger.WarnContext(ctx, "invalid command options",
			"command", inv.Kind.String(),
			"error", err,
		)
		return r.Followup(ctx, validationMessage(err))
	}

	out := h.dispatcher.Dispatch(ctx, dispatch.Request{
		Kind:    inv.Kind,
		Options: inv.Options,
		Invoker: inv.Invoker,
		GuildID: inv.GuildID,
	})

	if err := r.Followup(ctx, replyFor(out, summary(out.LoggingChannel))); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

func validate(inv *models.Invocation) error {
	if inv.Options == nil {
		return dErrors.New(dErrors.CodeValidation, "missing command options")
	}
	if inv.Invoker.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "missing invoking user")
	}
	return inv.Options.Validate()
}
