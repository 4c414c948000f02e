// Package telegram is the bot-platform layer: it wraps the Bot API client,
// classifies inbound updates into router events, and renders router intents
// back into messages.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client wraps the Bot API connection and exposes the narrow capabilities
// the core consumes: membership status, self identity, and asset
// transmission.
type Client struct {
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

// NewClient connects to the Bot API with the given token.
func NewClient(log *slog.Logger, token string) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	c := &Client{
		bot:    bot,
		logger: log.With(slog.String("component", "telegram")),
	}
	c.logger.Info("bot authorized", slog.String("username", bot.Self.UserName))
	return c, nil
}

// MemberStatus returns the user's membership status in the channel. The
// channel may be addressed as @username or as a numeric chat ID.
func (c *Client) MemberStatus(ctx context.Context, channelID string, userID int64) (string, error) {
	cfg := tgbotapi.ChatConfigWithUser{UserID: userID}
	if strings.HasPrefix(channelID, "@") {
		cfg.SuperGroupUsername = channelID
	} else {
		chatID, err := strconv.ParseInt(channelID, 10, 64)
		if err != nil {
			return "", fmt.Errorf("channel must be @username or chat_id: %q", channelID)
		}
		cfg.ChatID = chatID
	}
	member, err := c.bot.GetChatMember(tgbotapi.GetChatMemberConfig{ChatConfigWithUser: cfg})
	if err != nil {
		return "", err
	}
	return member.Status, nil
}

// Username returns the bot's own username for deep-link assembly.
func (c *Client) Username(ctx context.Context) (string, error) {
	if c.bot.Self.UserName == "" {
		return "", fmt.Errorf("bot username unavailable")
	}
	return c.bot.Self.UserName, nil
}

// RegisterWebhook points Telegram at the public webhook URL.
func (c *Client) RegisterWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := c.bot.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	c.logger.Info("webhook registered", slog.String("url", url))
	return nil
}

// Updates opens the long-poll update channel.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	return c.bot.GetUpdatesChan(u)
}

// Stop halts long polling.
func (c *Client) Stop() {
	c.bot.StopReceivingUpdates()
}
