// Package server provides the HTTP webhook receiver (Echo).
package server

import (
	"context"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// UpdateHandler processes one decoded Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

// Server receives webhook updates and hands them to the update handler.
type Server struct {
	echo   *echo.Echo
	addr   string
	logger *slog.Logger
}

// New builds the Echo server with recovery, request logging, a /ping route,
// and the webhook endpoint on POST /.
func New(log *slog.Logger, addr string, handler UpdateHandler) *Server {
	if addr == "" {
		addr = ":8080"
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", c.RealIP()),
			)
			return nil
		},
	}))

	e.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	// Malformed bodies are logged and answered without detail: webhook
	// input is untrusted and internals must not leak back out.
	e.POST("/", func(c echo.Context) error {
		var update tgbotapi.Update
		if err := c.Bind(&update); err != nil {
			log.Warn("malformed webhook update", slog.Any("error", err))
			return c.JSON(http.StatusOK, map[string]bool{"ok": false})
		}
		handler.HandleUpdate(c.Request().Context(), update)
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	return &Server{
		echo:   e,
		addr:   addr,
		logger: log.With(slog.String("component", "server")),
	}
}

// Start starts the HTTP server (blocks until shutdown).
func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

// Stop gracefully shuts down the server using the given context.
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
