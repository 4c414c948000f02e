package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sharegate/sharegate/internal/catalog"
	"github.com/sharegate/sharegate/internal/router"
)

// inbound pairs a classified event with where the response goes.
type inbound struct {
	event      router.Event
	chatID     int64
	callbackID string
}

// classify maps an update onto the router's event taxonomy. The second
// return is false for updates that cannot be classified; those are dropped
// without a response.
func classify(update tgbotapi.Update) (inbound, bool) {
	if cb := update.CallbackQuery; cb != nil {
		if cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
			return inbound{}, false
		}
		return inbound{
			event:      router.CallbackAction{From: cb.From.ID, Tag: cb.Data},
			chatID:     cb.Message.Chat.ID,
			callbackID: cb.ID,
		}, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return inbound{}, false
	}
	in := inbound{chatID: msg.Chat.ID}

	if msg.IsCommand() {
		if msg.Command() != "start" {
			return inbound{}, false
		}
		in.event = router.StartCommand{From: msg.From.ID, Argument: msg.CommandArguments()}
		return in, true
	}

	in.event = router.RawUpload{From: msg.From.ID, Asset: extractAsset(msg)}
	return in, true
}

// extractAsset pulls a catalogable asset out of the message, or nil when it
// carries neither photo nor video.
func extractAsset(msg *tgbotapi.Message) *catalog.Asset {
	if len(msg.Photo) > 0 {
		best := pickPhoto(msg.Photo)
		return &catalog.Asset{Reference: best.FileID, Kind: catalog.KindPhoto}
	}
	if msg.Video != nil {
		return &catalog.Asset{Reference: msg.Video.FileID, Kind: catalog.KindVideo}
	}
	return nil
}

// pickPhoto selects the largest rendition of an inbound photo.
func pickPhoto(items []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := items[0]
	for _, item := range items[1:] {
		if item.FileSize > best.FileSize {
			best = item
			continue
		}
		if item.Width*item.Height > best.Width*best.Height {
			best = item
		}
	}
	return best
}
