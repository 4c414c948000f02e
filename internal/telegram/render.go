package telegram

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sharegate/sharegate/internal/catalog"
	"github.com/sharegate/sharegate/internal/router"
	"github.com/sharegate/sharegate/internal/share"
)

// apiSender is the slice of *tgbotapi.BotAPI the renderer needs.
type apiSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Renderer turns router intents into outbound Telegram messages.
type Renderer struct {
	api    apiSender
	logger *slog.Logger
}

// NewRenderer builds a Renderer on the given client.
func NewRenderer(log *slog.Logger, client *Client) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{
		api:    client.bot,
		logger: log.With(slog.String("component", "renderer")),
	}
}

// Render sends the messages for the intent to the chat.
func (r *Renderer) Render(chatID int64, intent router.Intent) error {
	switch intent := intent.(type) {
	case router.ShowAdminMenu:
		msg := tgbotapi.NewMessage(chatID, "Hi admin! What would you like to do?")
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Upload a new file", router.TagBeginUpload),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Show uploaded files", router.TagListCatalog),
			),
		)
		_, err := r.api.Send(msg)
		return err

	case router.ShowGenericGreeting:
		return r.text(chatID, "Hi! No file was requested.")

	case router.DeliverAsset:
		if err := r.text(chatID, "Here is your file:"); err != nil {
			return err
		}
		return r.sendAsset(chatID, intent.Asset, "", nil)

	case router.ShowMembershipChallenge:
		msg := tgbotapi.NewMessage(chatID, "You need to join the channel before you can receive this file.")
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("Join the channel", intent.JoinURL),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Check membership", router.TagCheckMembership),
			),
		)
		_, err := r.api.Send(msg)
		return err

	case router.ShowNotFoundError:
		return r.text(chatID, "File not found.")

	case router.ShowCatalog:
		for i, asset := range intent.Assets {
			caption := fmt.Sprintf("File %d", i+1)
			keyboard := tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("Copy file link", share.LinkCallback(asset.Reference)),
				),
			)
			if err := r.sendAsset(chatID, asset, caption, &keyboard); err != nil {
				return err
			}
		}
		return nil

	case router.ShowEmptyCatalog:
		return r.text(chatID, "No files uploaded yet.")

	case router.PromptForAsset:
		return r.text(chatID, "Please send a photo or a video.")

	case router.RetryUploadPrompt:
		return r.text(chatID, "Photos and videos only, please.")

	case router.UploadComplete:
		return r.text(chatID, "File uploaded!\n\nShare link:\n"+intent.Link)

	case router.ShowShareLink:
		return r.text(chatID, "File link:\n\n"+intent.Link)

	case router.ShowGenericError:
		return r.text(chatID, "Something went wrong. Please try again.")

	case router.Ignore:
		return nil
	}
	return nil
}

// AnswerCallback acknowledges a callback query so the client stops its
// loading spinner.
func (r *Renderer) AnswerCallback(callbackID string) {
	if callbackID == "" {
		return
	}
	if _, err := r.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		r.logger.Warn("answer callback failed", slog.Any("error", err))
	}
}

func (r *Renderer) text(chatID int64, text string) error {
	_, err := r.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (r *Renderer) sendAsset(chatID int64, asset catalog.Asset, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	file := tgbotapi.FileID(asset.Reference)
	switch asset.Kind {
	case catalog.KindPhoto:
		photo := tgbotapi.NewPhoto(chatID, file)
		photo.Caption = caption
		if keyboard != nil {
			photo.ReplyMarkup = keyboard
		}
		_, err := r.api.Send(photo)
		return err
	case catalog.KindVideo:
		video := tgbotapi.NewVideo(chatID, file)
		video.Caption = caption
		if keyboard != nil {
			video.ReplyMarkup = keyboard
		}
		_, err := r.api.Send(video)
		return err
	default:
		return fmt.Errorf("unsupported asset kind: %s", asset.Kind)
	}
}
