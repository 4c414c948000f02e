package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sharegate/sharegate/internal/router"
)

// Handler feeds classified updates through the router and renders the
// resulting intent. It serves both receive modes: the webhook endpoint and
// the long-poll loop.
type Handler struct {
	client   *Client
	router   *router.Router
	renderer *Renderer
	logger   *slog.Logger
}

// NewHandler wires the update pipeline.
func NewHandler(log *slog.Logger, client *Client, rt *router.Router, renderer *Renderer) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		client:   client,
		router:   rt,
		renderer: renderer,
		logger:   log.With(slog.String("component", "handler")),
	}
}

// HandleUpdate processes one update end to end. Unclassifiable updates are
// logged and dropped without a response; render failures are logged, never
// surfaced to the requester.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	in, ok := classify(update)
	if !ok {
		h.logger.Debug("dropping unclassifiable update", slog.Int("update_id", update.UpdateID))
		return
	}
	intent := h.router.Dispatch(ctx, in.event)
	if err := h.renderer.Render(in.chatID, intent); err != nil {
		h.logger.Error("render failed",
			slog.Int64("chat_id", in.chatID),
			slog.Any("error", err),
		)
	}
	h.renderer.AnswerCallback(in.callbackID)
}

// RunLongPoll consumes updates until the context is canceled. Each update is
// handled on its own goroutine; Telegram serializes updates per chat, so
// per-requester ordering holds.
func (h *Handler) RunLongPoll(ctx context.Context) {
	updates := h.client.Updates()
	h.logger.Info("long polling started")
	for {
		select {
		case <-ctx.Done():
			h.client.Stop()
			h.logger.Info("long polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				h.logger.Info("updates channel closed")
				return
			}
			go h.HandleUpdate(ctx, update)
		}
	}
}
