package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"caslkey/contracts/caslapi"
)

// Endpoint paths, relative to the base URL.
const (
	EndpointUserCheck             = "/user-check"
	EndpointUpload                = "/upload"
	EndpointStatus                = "/status"
	EndpointVerify                = "/verify"
	EndpointVerifyID              = "/verify-id"
	EndpointVerifyIDStatus        = "/verify-id/status"
	EndpointPhoneRequest          = "/phone/request"
	EndpointPhoneVerify           = "/phone/verify"
	EndpointSocialVerify          = "/social/verify"
	EndpointBackgroundCheck       = "/background-check"
	EndpointBackgroundCheckStatus = "/background-check/status"
)

// CheckUser looks up an existing CASL Key holder by contact details.
func (c *Client) CheckUser(ctx context.Context, req caslapi.UserCheckRequest) (*caslapi.UserCheckResponse, error) {
	var resp caslapi.UserCheckResponse
	if err := c.do(ctx, http.MethodPost, EndpointUserCheck, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadScreenshot sends a profile screenshot as a data URL.
func (c *Client) UploadScreenshot(ctx context.Context, userID, imageData string) error {
	var resp caslapi.AckResponse
	err := c.do(ctx, http.MethodPost, EndpointUpload, nil, caslapi.UploadRequest{UserID: userID, ImageData: imageData}, &resp)
	if err != nil {
		return err
	}
	return ackError(EndpointUpload, resp, "Screenshot upload was not accepted")
}

// ScreenshotStatus polls the review status of an uploaded screenshot.
func (c *Client) ScreenshotStatus(ctx context.Context, userID string) (*caslapi.StatusResponse, error) {
	var resp caslapi.StatusResponse
	if err := c.do(ctx, http.MethodGet, EndpointStatus, url.Values{"userId": {userID}}, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitVerification sends the finished application.
func (c *Client) SubmitVerification(ctx context.Context, sub caslapi.Submission) error {
	var resp caslapi.AckResponse
	if err := c.do(ctx, http.MethodPost, EndpointVerify, nil, sub, &resp); err != nil {
		return err
	}
	return ackError(EndpointVerify, resp, "Verification was not accepted")
}

func (c *Client) VerifyGovernmentID(ctx context.Context, req caslapi.GovernmentIDRequest) (*caslapi.ChannelResponse, error) {
	var resp caslapi.ChannelResponse
	if err := c.do(ctx, http.MethodPost, EndpointVerifyID, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GovernmentIDStatus(ctx context.Context, userID string) (*caslapi.ChannelResponse, error) {
	var resp caslapi.ChannelResponse
	if err := c.do(ctx, http.MethodGet, EndpointVerifyIDStatus, url.Values{"userId": {userID}}, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RequestPhoneCode(ctx context.Context, req caslapi.PhoneCodeRequest) (*caslapi.PhoneCodeResponse, error) {
	var resp caslapi.PhoneCodeResponse
	if err := c.do(ctx, http.MethodPost, EndpointPhoneRequest, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) VerifyPhoneCode(ctx context.Context, req caslapi.PhoneVerifyRequest) (*caslapi.PhoneVerifyResponse, error) {
	var resp caslapi.PhoneVerifyResponse
	if err := c.do(ctx, http.MethodPost, EndpointPhoneVerify, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) VerifySocialProfile(ctx context.Context, req caslapi.SocialVerifyRequest) (*caslapi.ChannelResponse, error) {
	var resp caslapi.ChannelResponse
	if err := c.do(ctx, http.MethodPost, EndpointSocialVerify, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InitiateBackgroundCheck starts a check; the response may already carry the outcome.
func (c *Client) InitiateBackgroundCheck(ctx context.Context, req caslapi.BackgroundCheckRequest) (*caslapi.BackgroundCheckResponse, error) {
	var resp caslapi.BackgroundCheckResponse
	if err := c.do(ctx, http.MethodPost, EndpointBackgroundCheck, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) BackgroundCheckStatus(ctx context.Context, checkID string) (*caslapi.BackgroundCheckResponse, error) {
	var resp caslapi.BackgroundCheckResponse
	if err := c.do(ctx, http.MethodGet, EndpointBackgroundCheckStatus, url.Values{"checkId": {checkID}}, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func ackError(endpoint string, resp caslapi.AckResponse, fallback string) error {
	if !resp.Rejected() {
		return nil
	}
	msg := resp.Message
	if msg == "" {
		msg = fallback
	}
	return newError(CategoryRejected, endpoint, msg, nil)
}
