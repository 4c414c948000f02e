package router

import "github.com/sharegate/sharegate/internal/catalog"

// Intent is the single outbound decision produced for an event. The
// presentation layer renders it; the router never talks to the platform
// directly.
type Intent interface {
	isIntent()
}

// ShowAdminMenu offers the administrator the upload and catalog actions.
type ShowAdminMenu struct{}

// ShowGenericGreeting greets a requester who asked for nothing.
type ShowGenericGreeting struct{}

// DeliverAsset re-transmits the asset to the requester.
type DeliverAsset struct {
	Asset catalog.Asset
}

// ShowMembershipChallenge asks the requester to join the channel and retry.
// The pending reference is retained so the retry can resume.
type ShowMembershipChallenge struct {
	JoinURL   string
	Reference string
}

// ShowNotFoundError tells the requester the reference matches no asset.
type ShowNotFoundError struct{}

// ShowCatalog lists every cataloged asset for the administrator.
type ShowCatalog struct {
	Assets []catalog.Asset
}

// ShowEmptyCatalog reports that nothing has been uploaded yet.
type ShowEmptyCatalog struct{}

// PromptForAsset asks the administrator to send a photo or video.
type PromptForAsset struct{}

// RetryUploadPrompt rejects a non-qualifying upload and asks again.
type RetryUploadPrompt struct{}

// UploadComplete confirms a cataloged upload and carries its share link.
type UploadComplete struct {
	Link string
}

// ShowShareLink answers a "copy link" action.
type ShowShareLink struct {
	Link string
}

// ShowGenericError reports a failure without leaking its cause.
type ShowGenericError struct{}

// Ignore produces no response at all.
type Ignore struct{}

func (ShowAdminMenu) isIntent()           {}
func (ShowGenericGreeting) isIntent()     {}
func (DeliverAsset) isIntent()            {}
func (ShowMembershipChallenge) isIntent() {}
func (ShowNotFoundError) isIntent()       {}
func (ShowCatalog) isIntent()             {}
func (ShowEmptyCatalog) isIntent()        {}
func (PromptForAsset) isIntent()          {}
func (RetryUploadPrompt) isIntent()       {}
func (UploadComplete) isIntent()          {}
func (ShowShareLink) isIntent()           {}
func (ShowGenericError) isIntent()        {}
func (Ignore) isIntent()                  {}
