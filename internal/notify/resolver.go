package notify

//go:generate mockgen -source=resolver.go -destination=mocks/mocks.go -package=mocks Directory

import (
	"context"
	"errors"
	"log/slog"

	"tradelog/internal/platform/metrics"
	"tradelog/pkg/domain"
	"tradelog/pkg/requestcontext"
)

// Directory answers the live lookups the strategies need.
type Directory interface {
	// RoleExists reports whether roleID is a role of guildID.
	RoleExists(ctx context.Context, guildID domain.GuildID, roleID string) (bool, error)
	// UserExists fetches userID from the platform. A missing user is
	// (false, nil) or sentinel.ErrNotFound.
	UserExists(ctx context.Context, userID string) (bool, error)
}

// Strategy tries one way of resolving targetID. ok is false when it does not apply.
type Strategy func(ctx context.Context, targetID string, guildID domain.GuildID, dir Directory) (target Target, ok bool)

// DefaultStrategies is the resolution order: guild role, then user, then the
// raw numeric fallback.
func DefaultStrategies() []Strategy {
	return []Strategy{ByRole, ByUser, ByRawID}
}

// ByRole matches a role present in the invoking guild.
func ByRole(ctx context.Context, targetID string, guildID domain.GuildID, dir Directory) (Target, bool) {
	if guildID.IsNil() || targetID == "" {
		return Target{}, false
	}
	exists, err := dir.RoleExists(ctx, guildID, targetID)
	if err != nil || !exists {
		return Target{}, false
	}
	return Target{Mention: domain.RoleID(targetID).Mention(), Method: MethodRole}, true
}

// ByUser matches a user the platform can fetch. Lookup failures count as no match.
func ByUser(ctx context.Context, targetID string, _ domain.GuildID, dir Directory) (Target, bool) {
	if targetID == "" {
		return Target{}, false
	}
	exists, err := dir.UserExists(ctx, targetID)
	if err != nil || !exists {
		return Target{}, false
	}
	return Target{Mention: domain.UserID(targetID).Mention(), Method: MethodUser}, true
}

// ByRawID covers an all-digit ID that matched neither lookup by rendering both
// a role and a user mention; whichever is invalid shows as plain text.
func ByRawID(_ context.Context, targetID string, _ domain.GuildID, _ Directory) (Target, bool) {
	if !domain.IsNumeric(targetID) {
		return Target{}, false
	}
	return Target{
		Mention: domain.RoleID(targetID).Mention() + " / " + domain.UserID(targetID).Mention(),
		Method:  MethodRawIDFallback,
	}, true
}

// Resolver evaluates strategies in order; the first match wins.
type Resolver struct {
	directory  Directory
	strategies []Strategy
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(r *Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithStrategies replaces the default resolution order.
func WithStrategies(strategies ...Strategy) Option {
	return func(r *Resolver) {
		r.strategies = strategies
	}
}

func New(directory Directory, opts ...Option) (*Resolver, error) {
	if directory == nil {
		return nil, errors.New("directory is required")
	}
	r := &Resolver{directory: directory, strategies: DefaultStrategies()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve returns the notification target for targetID in guildID. It never
// fails: when nothing matches the target is Unresolved.
func (r *Resolver) Resolve(ctx context.Context, targetID string, guildID domain.GuildID) Target {
	for _, strategy := range r.strategies {
		if target, ok := strategy(ctx, targetID, guildID, r.directory); ok {
			r.metrics.IncResolution(string(target.Method))
			return target
		}
	}

	if r.logger != nil {
		r.logger.WarnContext(ctx, "notification target is neither a role nor a user",
			"target_id", targetID,
			"guild_id", guildID.String(),
			"invocation_id", requestcontext.InvocationID(ctx),
		)
	}
	r.metrics.IncResolution(string(MethodUnresolved))
	return Target{Method: MethodUnresolved}
}
