package router

import "github.com/sharegate/sharegate/internal/catalog"

// Event is a classified inbound event. The transport layer builds exactly
// one Event per update it can classify; anything else never reaches the
// router.
type Event interface {
	// Requester is the numeric identity of the sender. Untrusted beyond
	// equality comparison against the configured administrator.
	Requester() int64
}

// StartCommand is a /start message, optionally carrying an asset reference
// from a deep link.
type StartCommand struct {
	From     int64
	Argument string
}

// CallbackAction is a button press identified by its callback tag.
type CallbackAction struct {
	From int64
	Tag  string
}

// RawUpload is a non-command message. Asset is nil when the message carried
// nothing catalogable (no photo, no video).
type RawUpload struct {
	From  int64
	Asset *catalog.Asset
}

func (e StartCommand) Requester() int64   { return e.From }
func (e CallbackAction) Requester() int64 { return e.From }
func (e RawUpload) Requester() int64      { return e.From }

// Callback tags understood by the router. The share-link tag is prefixed,
// see share.LinkCallbackPrefix.
const (
	TagCheckMembership = "check_membership"
	TagBeginUpload     = "begin_upload"
	TagListCatalog     = "list_catalog"
)
