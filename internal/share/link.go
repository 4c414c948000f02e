// Package share builds deep links and callback tags around asset references.
package share

import (
	"errors"
	"strings"
	"unicode"
)

// LinkCallbackPrefix prefixes the "copy link" callback tag carried on each
// catalog entry's button.
const LinkCallbackPrefix = "get_link_"

// BuildShareLink formats the deep link that opens the bot with the reference
// as the start argument.
func BuildShareLink(botUsername, ref string) string {
	return "https://t.me/" + botUsername + "?start=" + ref
}

// JoinLink formats the channel join URL from a channel identifier
// (@username or bare username).
func JoinLink(channelID string) string {
	return "https://t.me/" + strings.TrimPrefix(channelID, "@")
}

// ValidateReference rejects references that cannot survive the deep-link
// round trip: the start argument is whitespace-delimited on the way back in,
// so a reference containing whitespace would be truncated. Telegram file IDs
// never contain whitespace in practice, but the contract is enforced here
// rather than assumed.
func ValidateReference(ref string) error {
	if ref == "" {
		return errors.New("empty reference")
	}
	if strings.IndexFunc(ref, unicode.IsSpace) >= 0 {
		return errors.New("reference contains whitespace")
	}
	return nil
}

// LinkCallback builds the callback tag requesting the share link for ref.
func LinkCallback(ref string) string {
	return LinkCallbackPrefix + ref
}

// ParseLinkCallback recovers the reference from a "get_link_" callback tag.
// Only the first two underscores delimit; the reference itself may contain
// underscores and must come back intact.
func ParseLinkCallback(tag string) (string, bool) {
	parts := strings.SplitN(tag, "_", 3)
	if len(parts) != 3 || parts[0] != "get" || parts[1] != "link" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}
