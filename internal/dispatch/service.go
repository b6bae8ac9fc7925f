package dispatch

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Messenger,TargetResolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tradelog/internal/audit"
	"tradelog/internal/command/models"
	"tradelog/internal/notify"
	"tradelog/internal/platform/metrics"
	"tradelog/pkg/domain"
	"tradelog/pkg/requestcontext"
)

const tracerName = "tradelog/internal/dispatch"

// Messenger is the slice of the platform client the pipeline uses.
type Messenger interface {
	PermissionSource
	// BotUser returns the bot's own identity.
	BotUser(ctx context.Context) (models.UserRef, error)
	// Channel resolves a channel handle; sentinel.ErrNotFound when absent.
	Channel(ctx context.Context, channelID domain.ChannelID) (models.ChannelRef, error)
	SendRecord(ctx context.Context, channelID domain.ChannelID, record *audit.Record) error
	SendText(ctx context.Context, channelID domain.ChannelID, content string) error
}

// TargetResolver turns the configured notification target into a mention.
type TargetResolver interface {
	Resolve(ctx context.Context, targetID string, guildID domain.GuildID) notify.Target
}

// Settings is the static configuration the pipeline reads.
type Settings struct {
	LoggingChannelID     domain.ChannelID
	NotificationTargetID string
}

// Service posts audit records and review notifications to the logging channel.
type Service struct {
	messenger Messenger
	gate      *Gate
	builder   *audit.Builder
	resolver  TargetResolver
	settings  Settings
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service.
func New(messenger Messenger, builder *audit.Builder, resolver TargetResolver, settings Settings, opts ...Option) (*Service, error) {
	if messenger == nil {
		return nil, errors.New("messenger is required")
	}
	if builder == nil {
		return nil, errors.New("record builder is required")
	}
	if resolver == nil {
		return nil, errors.New("target resolver is required")
	}
	if settings.LoggingChannelID.IsNil() {
		return nil, errors.New("logging channel is required")
	}
	s := &Service{
		messenger: messenger,
		builder:   builder,
		resolver:  resolver,
		settings:  settings,
		logger:    slog.New(slog.DiscardHandler),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.gate = NewGate(messenger, s.logger)
	return s, nil
}

// Dispatch runs the pipeline for one invocation. Steps run strictly in order
// and stop at the first failure; nothing is retried and a posted record is
// never rolled back. Dispatch never returns an error: every failure is part
// of the Outcome.
func (s *Service) Dispatch(ctx context.Context, req Request) Outcome {
	ctx, span := s.tracer.Start(ctx, "dispatch.audit_record",
		trace.WithAttributes(
			attribute.String("tradelog.kind", req.Kind.String()),
			attribute.String("tradelog.invocation_id", requestcontext.InvocationID(ctx)),
			attribute.String("tradelog.logging_channel", s.settings.LoggingChannelID.String()),
		),
	)
	defer span.End()

	out := s.run(ctx, req, span)

	span.SetAttributes(
		attribute.Bool("tradelog.record_posted", out.RecordPosted),
		attribute.Bool("tradelog.notification_posted", out.NotificationPosted),
		attribute.String("tradelog.outcome", out.Label()),
	)
	if out.RecordPosted {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, string(out.Errors[0]))
	}

	s.metrics.IncDispatchOutcome(req.Kind.String(), out.Label())
	for _, e := range out.Errors {
		s.metrics.IncDispatchError(req.Kind.String(), string(e))
	}
	s.logAudit(ctx, req, out)
	return out
}

func (s *Service) run(ctx context.Context, req Request, span trace.Span) Outcome {
	channelID := s.settings.LoggingChannelID
	channel := models.ChannelRef{ID: channelID}

	// 1. logging channel
	resolved, err := s.messenger.Channel(ctx, channelID)
	if err != nil {
		s.logger.ErrorContext(ctx, "logging channel not found",
			"channel_id", channelID.String(),
			"error", err,
		)
		span.AddEvent("channel.not_found")
		return failed(channel, ErrChannelNotFound)
	}
	channel = resolved

	// 2. permissions
	bot, err := s.messenger.BotUser(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "bot identity unavailable", "error", err)
	}
	if !s.gate.Check(ctx, channelID, bot.ID) {
		s.logger.ErrorContext(ctx, "bot lacks SendMessages or EmbedLinks in logging channel",
			"channel_id", channelID.String(),
			"channel_name", channel.Name,
		)
		span.AddEvent("permissions.insufficient")
		return failed(channel, ErrInsufficientPermissions)
	}

	// 3. record
	record, err := s.builder.Build(audit.Input{
		Kind:      req.Kind,
		Options:   req.Options,
		Invoker:   req.Invoker,
		Bot:       bot,
		Timestamp: requestcontext.Now(ctx),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "audit record could not be built", "error", err)
		span.RecordError(err)
		return failed(channel, ErrDeliveryFailure)
	}
	if err := s.messenger.SendRecord(ctx, channelID, record); err != nil {
		s.logger.ErrorContext(ctx, "audit record post failed",
			"channel_id", channelID.String(),
			"error", err,
		)
		span.RecordError(err)
		return failed(channel, ErrDeliveryFailure)
	}
	span.AddEvent("record.posted")
	out := Outcome{RecordPosted: true, LoggingChannel: channel}

	// 4. notification target
	target := s.resolver.Resolve(ctx, s.settings.NotificationTargetID, req.GuildID)
	out.Resolution = target.Method
	if !target.Resolved() {
		s.logger.WarnContext(ctx, "notification skipped: target unresolved",
			"target_id", s.settings.NotificationTargetID,
		)
		span.AddEvent("notification.skipped")
		return out
	}

	// 5. notification
	if err := s.messenger.SendText(ctx, channelID, NotificationText(req.Kind, target)); err != nil {
		s.logger.ErrorContext(ctx, "notification post failed",
			"channel_id", channelID.String(),
			"method", string(target.Method),
			"error", err,
		)
		span.RecordError(err)
		out.Errors = append(out.Errors, ErrNotificationFailure)
		return out
	}
	span.AddEvent("notification.posted")

	// 6. done
	out.NotificationPosted = true
	return out
}

// fallbackHint follows a raw-ID trade ping, where the ID may name a role or a user.
const fallbackHint = " (ID provided may be a role or user)"

// NotificationText is the review ping posted after a record.
func NotificationText(kind models.Kind, target notify.Target) string {
	text := fmt.Sprintf("%s, please review the %s log above.", target.Mention, recordNoun(kind))
	if kind == models.KindTrade && target.Method == notify.MethodRawIDFallback {
		text += fallbackHint
	}
	return text
}

func recordNoun(kind models.Kind) string {
	switch kind {
	case models.KindTrade:
		return "trade"
	case models.KindGrantAccess:
		return "access grant"
	case models.KindAssignRole:
		return "role assignment"
	default:
		return kind.String()
	}
}

func (s *Service) logAudit(ctx context.Context, req Request, out Outcome) {
	args := []any{
		"event", "audit_record_dispatched",
		"log_type", "audit",
		"kind", req.Kind.String(),
		"invoker_id", req.Invoker.ID.String(),
		"outcome", out.Label(),
		"record_posted", out.RecordPosted,
		"notification_posted", out.NotificationPosted,
	}
	if id := requestcontext.InvocationID(ctx); id != "" {
		args = append(args, "invocation_id", id)
	}
	if cmd := requestcontext.Command(ctx); cmd != "" {
		args = append(args, "command", cmd)
	}
	if out.Resolution != "" {
		args = append(args, "resolution", string(out.Resolution))
	}
	if len(out.Errors) > 0 {
		args = append(args, "errors", out.Errors)
	}
	s.logger.InfoContext(ctx, "audit_record_dispatched", args...)
}
