package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tradelog/internal/audit"
	"tradelog/internal/command/handler"
	"tradelog/internal/discord"
	"tradelog/internal/dispatch"
	"tradelog/internal/notify"
	"tradelog/internal/platform/config"
	"tradelog/internal/platform/httpserver"
	"tradelog/internal/platform/logger"
	"tradelog/internal/platform/metrics"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to the gateway and handle slash commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	m := metrics.New(prometheus.DefaultRegisterer)

	session, err := discord.NewSession(cfg.Credentials.BotToken)
	if err != nil {
		return err
	}
	client := discord.NewClient(session)

	resolver, err := notify.New(client,
		notify.WithLogger(log),
		notify.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("init resolver: %w", err)
	}

	dispatcher, err := dispatch.New(client,
		audit.NewBuilder(audit.Branding{
			CommunityName: cfg.Bot.Branding.CommunityName,
			CommunityURL:  cfg.Bot.Branding.CommunityURL,
			FooterCredit:  cfg.Bot.Branding.FooterCredit,
		}),
		resolver,
		dispatch.Settings{
			LoggingChannelID:     cfg.LoggingChannel(),
			NotificationTargetID: cfg.Bot.NotificationTargetID,
		},
		dispatch.WithLogger(log),
		dispatch.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("init dispatcher: %w", err)
	}

	h, err := handler.New(dispatcher, handler.WithLogger(log))
	if err != nil {
		return fmt.Errorf("init handler: %w", err)
	}
	router, err := handler.NewRouter(h,
		handler.WithRouterLogger(log),
		handler.WithRouterMetrics(m),
		handler.WithTimeout(cfg.Bot.InvocationTimeout),
	)
	if err != nil {
		return fmt.Errorf("init router: %w", err)
	}

	bot, err := discord.NewBot(session, router, discord.Settings{
		LoggingChannelID: cfg.LoggingChannel(),
		Presence:         cfg.Bot.Presence,
	}, discord.WithLogger(log), discord.WithMetrics(m))
	if err != nil {
		return fmt.Errorf("init bot: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(gctx)
	})

	if addr := cfg.Observability.MetricsAddr; addr != "" {
		srv := httpserver.New(addr, httpserver.Routes(bot, prometheus.DefaultGatherer))
		g.Go(func() error {
			log.Info("starting ops listener", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("ops listener: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	log.Info("tradelog starting",
		"version", version,
		"logging_channel_id", cfg.Bot.LoggingChannelID,
	)
	if err := g.Wait(); err != nil {
		log.Error("tradelog stopped with error", "error", err)
		return err
	}
	log.Info("tradelog stopped")
	return nil
}
