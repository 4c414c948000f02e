// Package router turns classified inbound events into outbound intents. It
// owns the access-gate and reference-resolution flow; transport and
// presentation live elsewhere.
package router

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sharegate/sharegate/internal/catalog"
	"github.com/sharegate/sharegate/internal/session"
	"github.com/sharegate/sharegate/internal/share"
)

// MembershipGate reports whether a requester may receive gated assets.
type MembershipGate interface {
	IsAuthorized(ctx context.Context, userID int64) bool
}

// BotIdentity resolves the bot's own username for share-link assembly.
type BotIdentity interface {
	Username(ctx context.Context) (string, error)
}

// Router dispatches events per the access-gate rules. One intent per event;
// external-capability failures degrade to an error intent and never
// propagate out of Dispatch.
type Router struct {
	logger   *slog.Logger
	catalog  *catalog.Catalog
	gate     MembershipGate
	sessions *session.Store
	identity BotIdentity
	adminID  int64
	joinURL  string
}

// New builds a Router gating on the given channel for the given admin.
func New(log *slog.Logger, cat *catalog.Catalog, gate MembershipGate, sessions *session.Store, identity BotIdentity, adminID int64, channelID string) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		logger:   log.With(slog.String("component", "router")),
		catalog:  cat,
		gate:     gate,
		sessions: sessions,
		identity: identity,
		adminID:  adminID,
		joinURL:  share.JoinLink(channelID),
	}
}

// Dispatch produces exactly one intent for the event.
func (r *Router) Dispatch(ctx context.Context, ev Event) Intent {
	switch ev := ev.(type) {
	case StartCommand:
		return r.handleStart(ctx, ev)
	case CallbackAction:
		return r.handleCallback(ctx, ev)
	case RawUpload:
		return r.handleUpload(ctx, ev)
	default:
		return Ignore{}
	}
}

func (r *Router) handleStart(ctx context.Context, ev StartCommand) Intent {
	if ev.From == r.adminID && ev.Argument == "" {
		return ShowAdminMenu{}
	}
	if ev.Argument != "" {
		r.sessions.SetPending(ev.From, ev.Argument)
		return r.attemptDelivery(ctx, ev.From)
	}
	return ShowGenericGreeting{}
}

func (r *Router) handleCallback(ctx context.Context, ev CallbackAction) Intent {
	switch {
	case ev.Tag == TagCheckMembership:
		if _, ok := r.sessions.Pending(ev.From); !ok {
			r.logger.Debug("membership recheck with no pending request", slog.Int64("user_id", ev.From))
			return ShowGenericError{}
		}
		return r.attemptDelivery(ctx, ev.From)

	case ev.Tag == TagBeginUpload:
		if ev.From != r.adminID {
			return Ignore{}
		}
		r.sessions.BeginUpload(ev.From)
		return PromptForAsset{}

	case ev.Tag == TagListCatalog:
		assets := r.catalog.ListAll()
		if len(assets) == 0 {
			return ShowEmptyCatalog{}
		}
		return ShowCatalog{Assets: assets}

	case strings.HasPrefix(ev.Tag, share.LinkCallbackPrefix):
		ref, ok := share.ParseLinkCallback(ev.Tag)
		if !ok {
			return Ignore{}
		}
		link, err := r.shareLink(ctx, ref)
		if err != nil {
			r.logger.Error("build share link failed", slog.Any("error", err))
			return ShowGenericError{}
		}
		return ShowShareLink{Link: link}
	}
	return Ignore{}
}

func (r *Router) handleUpload(ctx context.Context, ev RawUpload) Intent {
	if r.sessions.UploadStateOf(ev.From) != session.AwaitingAsset {
		return Ignore{}
	}
	if ev.Asset == nil {
		return RetryUploadPrompt{}
	}
	if err := share.ValidateReference(ev.Asset.Reference); err != nil {
		r.logger.Warn("rejecting upload with unusable reference", slog.Any("error", err))
		return RetryUploadPrompt{}
	}
	if err := r.catalog.Append(*ev.Asset); err != nil {
		r.logger.Error("catalog append failed", slog.Any("error", err))
		return ShowGenericError{}
	}
	r.sessions.FinishUpload(ev.From)
	link, err := r.shareLink(ctx, ev.Asset.Reference)
	if err != nil {
		r.logger.Error("build share link failed", slog.Any("error", err))
		return ShowGenericError{}
	}
	return UploadComplete{Link: link}
}

// attemptDelivery resolves the requester's pending reference: authorized and
// found delivers and clears the pending request; unauthorized challenges and
// keeps it so the membership recheck can resume.
func (r *Router) attemptDelivery(ctx context.Context, userID int64) Intent {
	ref, ok := r.sessions.Pending(userID)
	if !ok {
		return ShowGenericError{}
	}
	if !r.gate.IsAuthorized(ctx, userID) {
		return ShowMembershipChallenge{JoinURL: r.joinURL, Reference: ref}
	}
	asset, err := r.catalog.FindByReference(ref)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return ShowNotFoundError{}
		}
		r.logger.Error("catalog lookup failed", slog.Any("error", err))
		return ShowGenericError{}
	}
	r.sessions.ClearPending(userID)
	return DeliverAsset{Asset: asset}
}

func (r *Router) shareLink(ctx context.Context, ref string) (string, error) {
	username, err := r.identity.Username(ctx)
	if err != nil {
		return "", err
	}
	return share.BuildShareLink(username, ref), nil
}
