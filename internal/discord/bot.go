package discord

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"

	"tradelog/internal/command/handler"
	"tradelog/internal/platform/metrics"
	"tradelog/pkg/domain"
	dErrors "tradelog/pkg/domain-errors"
	"tradelog/pkg/requestcontext"
)

// Intents are the gateway intents the bot needs: guilds for channel and role
// state, members for permission computation.
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildMessages

// NewSession creates an unopened session authenticated with token.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeConfig, "create discord session")
	}
	s.Identify.Intents = Intents
	return s, nil
}

// Settings configures the gateway side of the bot. The per-invocation
// deadline is enforced by the router.
type Settings struct {
	LoggingChannelID domain.ChannelID
	Presence         string
}

// Bot connects the gateway to the command router. Each interaction runs in its
// own goroutine.
type Bot struct {
	session   *discordgo.Session
	client    *Client
	router    *handler.Router
	settings  Settings
	logger    *slog.Logger
	metrics   *metrics.Metrics
	connected atomic.Bool
	baseCtx   context.Context

	// mu orders inflight.Add against the drain in Run.
	mu       sync.RWMutex
	draining bool
	inflight sync.WaitGroup
}

type Option func(b *Bot)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bot) {
		b.metrics = m
	}
}

func NewBot(session *discordgo.Session, router *handler.Router, settings Settings, opts ...Option) (*Bot, error) {
	if session == nil {
		return nil, errors.New("session is required")
	}
	if router == nil {
		return nil, errors.New("router is required")
	}
	b := &Bot{
		session:  session,
		client:   NewClient(session),
		router:   router,
		settings: settings,
		logger:   slog.New(slog.DiscardHandler),
		baseCtx:  context.Background(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Healthy reports whether the gateway session is connected.
func (b *Bot) Healthy() bool {
	return b.connected.Load()
}

// Run opens the gateway and blocks until ctx is cancelled. In-flight
// invocations are allowed to finish before the session closes. A failed login
// is returned as an unavailable error.
func (b *Bot) Run(ctx context.Context) error {
	b.baseCtx = context.WithoutCancel(ctx)

	removers := []func(){
		b.session.AddHandler(b.onReady),
		b.session.AddHandler(b.onResumed),
		b.session.AddHandler(b.onDisconnect),
		b.session.AddHandler(b.onInteraction),
	}
	defer func() {
		for _, remove := range removers {
			remove()
		}
	}()

	if err := b.session.Open(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "gateway login failed")
	}

	<-ctx.Done()
	b.logger.Info("shutting down, waiting for in-flight commands")
	b.drain()

	b.setConnected(false)
	if err := b.session.Close(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "close gateway session")
	}
	b.logger.Info("gateway session closed")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.setConnected(true)
	if r.User != nil {
		b.logger.Info("logged in",
			"bot_username", r.User.Username,
			"bot_id", r.User.ID,
			"guilds", len(r.Guilds),
			"logging_channel_id", b.settings.LoggingChannelID.String(),
		)
	}
	if b.settings.Presence != "" {
		if err := s.UpdateWatchStatus(0, b.settings.Presence); err != nil {
			b.logger.Warn("failed to set presence", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(b.baseCtx, 10*time.Second)
	defer cancel()
	if _, err := b.client.Channel(ctx, b.settings.LoggingChannelID); err != nil {
		b.logger.Warn("logging channel not found, audit records will fail until it exists",
			"channel_id", b.settings.LoggingChannelID.String(),
			"error", err,
		)
	}
}

func (b *Bot) onResumed(_ *discordgo.Session, _ *discordgo.Resumed) {
	b.setConnected(true)
	b.logger.Info("gateway session resumed")
}

func (b *Bot) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	b.setConnected(false)
	b.logger.Warn("gateway disconnected")
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if !b.track() {
		b.logger.Warn("dropping interaction received during shutdown", "interaction_id", i.ID)
		return
	}
	defer b.inflight.Done()

	inv := Decode(i)

	ctx := requestcontext.WithInvocationID(b.baseCtx, inv.ID)
	ctx = requestcontext.WithCommand(ctx, inv.Name)

	b.router.Route(ctx, inv, NewResponder(s, i.Interaction))
}

// track registers an in-flight invocation. It is false once draining began.
func (b *Bot) track() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.draining {
		return false
	}
	b.inflight.Add(1)
	return true
}

// drain stops accepting invocations and waits for the tracked ones.
func (b *Bot) drain() {
	b.mu.Lock()
	b.draining = true
	b.mu.Unlock()
	b.inflight.Wait()
}

func (b *Bot) setConnected(connected bool) {
	b.connected.Store(connected)
	b.metrics.SetGatewayConnected(connected)
}
