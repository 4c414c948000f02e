package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sharegate/sharegate/internal/catalog"
	"github.com/sharegate/sharegate/internal/router"
)

func commandMessage(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: 6},
		},
	}
}

func TestClassifyStartWithArgument(t *testing.T) {
	t.Parallel()

	in, ok := classify(tgbotapi.Update{Message: commandMessage(7, 70, "/start AgAC_AgQ")})
	if !ok {
		t.Fatal("expected update to classify")
	}
	start, ok := in.event.(router.StartCommand)
	if !ok {
		t.Fatalf("expected StartCommand, got %T", in.event)
	}
	if start.From != 7 || start.Argument != "AgAC_AgQ" {
		t.Fatalf("unexpected event: %+v", start)
	}
	if in.chatID != 70 {
		t.Fatalf("unexpected chat: %d", in.chatID)
	}
}

func TestClassifyStartWithoutArgument(t *testing.T) {
	t.Parallel()

	in, ok := classify(tgbotapi.Update{Message: commandMessage(7, 70, "/start")})
	if !ok {
		t.Fatal("expected update to classify")
	}
	start := in.event.(router.StartCommand)
	if start.Argument != "" {
		t.Fatalf("unexpected argument: %q", start.Argument)
	}
}

func TestClassifyDropsOtherCommands(t *testing.T) {
	t.Parallel()

	msg := commandMessage(7, 70, "/help!")
	msg.Entities[0].Length = 5
	if _, ok := classify(tgbotapi.Update{Message: msg}); ok {
		t.Fatal("non-start commands must be dropped")
	}
}

func TestClassifyCallback(t *testing.T) {
	t.Parallel()

	in, ok := classify(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Data:    "check_membership",
		From:    &tgbotapi.User{ID: 7},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 70}},
	}})
	if !ok {
		t.Fatal("expected update to classify")
	}
	action, ok := in.event.(router.CallbackAction)
	if !ok {
		t.Fatalf("expected CallbackAction, got %T", in.event)
	}
	if action.From != 7 || action.Tag != "check_membership" {
		t.Fatalf("unexpected event: %+v", action)
	}
	if in.callbackID != "cb-1" {
		t.Fatalf("unexpected callback ID: %s", in.callbackID)
	}
}

func TestClassifyPhotoPicksLargestRendition(t *testing.T) {
	t.Parallel()

	in, ok := classify(tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7},
		Chat: &tgbotapi.Chat{ID: 70},
		Photo: []tgbotapi.PhotoSize{
			{FileID: "small", Width: 90, Height: 60, FileSize: 1_000},
			{FileID: "large", Width: 1280, Height: 960, FileSize: 200_000},
			{FileID: "medium", Width: 320, Height: 240, FileSize: 20_000},
		},
	}})
	if !ok {
		t.Fatal("expected update to classify")
	}
	upload := in.event.(router.RawUpload)
	if upload.Asset == nil || upload.Asset.Reference != "large" {
		t.Fatalf("unexpected asset: %+v", upload.Asset)
	}
	if upload.Asset.Kind != catalog.KindPhoto {
		t.Fatalf("unexpected kind: %s", upload.Asset.Kind)
	}
}

func TestClassifyVideo(t *testing.T) {
	t.Parallel()

	in, _ := classify(tgbotapi.Update{Message: &tgbotapi.Message{
		From:  &tgbotapi.User{ID: 7},
		Chat:  &tgbotapi.Chat{ID: 70},
		Video: &tgbotapi.Video{FileID: "vid-1"},
	}})
	upload := in.event.(router.RawUpload)
	if upload.Asset == nil || upload.Asset.Kind != catalog.KindVideo || upload.Asset.Reference != "vid-1" {
		t.Fatalf("unexpected asset: %+v", upload.Asset)
	}
}

func TestClassifyPlainTextIsNonQualifyingUpload(t *testing.T) {
	t.Parallel()

	in, ok := classify(tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7},
		Chat: &tgbotapi.Chat{ID: 70},
		Text: "here you go",
	}})
	if !ok {
		t.Fatal("expected update to classify")
	}
	upload := in.event.(router.RawUpload)
	if upload.Asset != nil {
		t.Fatalf("text message should carry no asset, got %+v", upload.Asset)
	}
}

func TestClassifyDropsEmptyUpdate(t *testing.T) {
	t.Parallel()

	if _, ok := classify(tgbotapi.Update{}); ok {
		t.Fatal("empty update must be dropped")
	}
}
