package wizard

import (
	"context"

	"caslkey/contracts/caslapi"
	"caslkey/internal/channels"
	"caslkey/internal/guest"
	"caslkey/internal/snapshot"
	"caslkey/internal/trust"
)

// API is the verification backend as the wizard sees it. *apiclient.Client
// satisfies it.
type API interface {
	CheckUser(ctx context.Context, req caslapi.UserCheckRequest) (*caslapi.UserCheckResponse, error)
	SubmitVerification(ctx context.Context, sub caslapi.Submission) error
	channels.ScreenshotAPI
	channels.GovernmentIDAPI
	channels.PhoneAPI
	channels.SocialAPI
	channels.BackgroundCheckAPI
}

// Repository persists the in-progress form. *snapshot.Repository satisfies it.
type Repository interface {
	SaveForm(ctx context.Context, form guest.FormData, step guest.Step) error
	LoadForm(ctx context.Context) (snapshot.Snapshot, bool, error)
	ClearForm(ctx context.Context) error
	SavePreview(ctx context.Context, preview trust.TrustPreview) error
	LoadPreview(ctx context.Context) (trust.TrustPreview, bool, error)
	Clear(ctx context.Context) error
}
