// Package gate decides whether a requester may receive gated assets.
package gate

import (
	"context"
	"log/slog"
)

// StatusFetcher is the external membership-check capability, scoped to one
// channel by the caller.
type StatusFetcher interface {
	MemberStatus(ctx context.Context, channelID string, userID int64) (string, error)
}

// Statuses that count as channel membership.
const (
	statusMember        = "member"
	statusCreator       = "creator"
	statusAdministrator = "administrator"
)

// Gate checks membership of a single configured channel.
type Gate struct {
	fetcher   StatusFetcher
	channelID string
	logger    *slog.Logger
}

// New builds a Gate for the given channel.
func New(log *slog.Logger, fetcher StatusFetcher, channelID string) *Gate {
	if log == nil {
		log = slog.Default()
	}
	return &Gate{
		fetcher:   fetcher,
		channelID: channelID,
		logger:    log.With(slog.String("component", "gate")),
	}
}

// IsAuthorized reports whether the user is a member, creator, or
// administrator of the channel.
//
// Fail-closed contract: any error from the membership check (network
// failure, bot not admin in the channel, unknown user) means NOT authorized.
// Ambiguity must never leak an asset; do not soften this branch.
func (g *Gate) IsAuthorized(ctx context.Context, userID int64) bool {
	status, err := g.fetcher.MemberStatus(ctx, g.channelID, userID)
	if err != nil {
		g.logger.Warn("membership check failed, treating as unauthorized",
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
		return false
	}
	switch status {
	case statusMember, statusCreator, statusAdministrator:
		return true
	default:
		return false
	}
}
