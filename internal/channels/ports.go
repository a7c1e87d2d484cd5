package channels

import (
	"context"

	"caslkey/contracts/caslapi"
)

// Backend ports, one per channel. *apiclient.Client satisfies all of them.

type ScreenshotAPI interface {
	UploadScreenshot(ctx context.Context, userID, imageData string) error
	ScreenshotStatus(ctx context.Context, userID string) (*caslapi.StatusResponse, error)
}

type GovernmentIDAPI interface {
	VerifyGovernmentID(ctx context.Context, req caslapi.GovernmentIDRequest) (*caslapi.ChannelResponse, error)
	GovernmentIDStatus(ctx context.Context, userID string) (*caslapi.ChannelResponse, error)
}

type PhoneAPI interface {
	RequestPhoneCode(ctx context.Context, req caslapi.PhoneCodeRequest) (*caslapi.PhoneCodeResponse, error)
	VerifyPhoneCode(ctx context.Context, req caslapi.PhoneVerifyRequest) (*caslapi.PhoneVerifyResponse, error)
}

type SocialAPI interface {
	VerifySocialProfile(ctx context.Context, req caslapi.SocialVerifyRequest) (*caslapi.ChannelResponse, error)
}

type BackgroundCheckAPI interface {
	InitiateBackgroundCheck(ctx context.Context, req caslapi.BackgroundCheckRequest) (*caslapi.BackgroundCheckResponse, error)
	BackgroundCheckStatus(ctx context.Context, checkID string) (*caslapi.BackgroundCheckResponse, error)
}
