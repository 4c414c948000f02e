package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeHandler struct {
	updates []tgbotapi.Update
}

func (f *fakeHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	f.updates = append(f.updates, update)
}

func TestPing(t *testing.T) {
	t.Parallel()

	srv := New(testLogger(), "", &fakeHandler{})
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestWebhookFeedsHandler(t *testing.T) {
	t.Parallel()

	handler := &fakeHandler{}
	srv := New(testLogger(), "", handler)

	body := `{"update_id": 10, "message": {"message_id": 1, "text": "/start", "from": {"id": 7}, "chat": {"id": 70}}}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if len(handler.updates) != 1 || handler.updates[0].UpdateID != 10 {
		t.Fatalf("unexpected updates: %+v", handler.updates)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestMalformedUpdateIsSwallowed(t *testing.T) {
	t.Parallel()

	handler := &fakeHandler{}
	srv := New(testLogger(), "", handler)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	// No internals leak back to the caller, and the handler never sees it.
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":false`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if len(handler.updates) != 0 {
		t.Fatal("malformed update must not reach the handler")
	}
}
