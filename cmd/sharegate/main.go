package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/sharegate/sharegate/internal/catalog"
	"github.com/sharegate/sharegate/internal/config"
	"github.com/sharegate/sharegate/internal/gate"
	"github.com/sharegate/sharegate/internal/logger"
	"github.com/sharegate/sharegate/internal/router"
	"github.com/sharegate/sharegate/internal/server"
	"github.com/sharegate/sharegate/internal/session"
	"github.com/sharegate/sharegate/internal/telegram"
)

func provideConfig() (config.Config, error) {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideClient(log *slog.Logger, cfg config.Config) (*telegram.Client, error) {
	return telegram.NewClient(log, cfg.Telegram.BotToken)
}

func provideCatalog(log *slog.Logger, cfg config.Config) (*catalog.Catalog, error) {
	return catalog.New(log, cfg.Catalog.Path)
}

func provideGate(log *slog.Logger, cfg config.Config, client *telegram.Client) *gate.Gate {
	return gate.New(log, client, cfg.Telegram.ChannelID)
}

func provideRouter(log *slog.Logger, cfg config.Config, cat *catalog.Catalog, g *gate.Gate, sessions *session.Store, client *telegram.Client) *router.Router {
	return router.New(log, cat, g, sessions, client, cfg.Telegram.AdminID, cfg.Telegram.ChannelID)
}

func provideServer(log *slog.Logger, cfg config.Config, handler *telegram.Handler) *server.Server {
	return server.New(log, cfg.Server.Addr, handler)
}

// run starts the update flow: webhook mode when a public URL is configured,
// long polling otherwise.
func run(lc fx.Lifecycle, log *slog.Logger, cfg config.Config, client *telegram.Client, handler *telegram.Handler, srv *server.Server, shutdowner fx.Shutdowner) {
	pollCtx, cancelPoll := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Telegram.WebhookURL == "" {
				go handler.RunLongPoll(pollCtx)
				return nil
			}
			if err := client.RegisterWebhook(cfg.Telegram.WebhookURL); err != nil {
				return err
			}
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancelPoll()
			if cfg.Telegram.WebhookURL != "" {
				return srv.Stop(ctx)
			}
			return nil
		},
	})
}

func main() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideClient,
			provideCatalog,
			provideGate,
			session.NewStore,
			provideRouter,
			telegram.NewRenderer,
			telegram.NewHandler,
			provideServer,
		),
		fx.Invoke(run),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		}),
	).Run()
}
