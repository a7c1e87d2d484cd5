package httptransport

import (
	"encoding/base64"
	"strings"

	"caslkey/internal/channels"
	dErrors "caslkey/pkg/domain-errors"
)

// SetFieldRequest changes one form answer. Value is whatever JSON type the
// field takes.
type SetFieldRequest struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

func (r *SetFieldRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	return nil
}

// ImageUploadRequest carries an image as plain base64 or as a data URL.
type ImageUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`

	decoded []byte
}

func (r *ImageUploadRequest) Validate() error {
	payload := strings.TrimSpace(r.Data)
	if payload == "" {
		return dErrors.New(dErrors.CodeBadRequest, "data is required")
	}
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		meta, body, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return dErrors.New(dErrors.CodeBadRequest, "data must be a base64 data URL")
		}
		if r.ContentType == "" {
			r.ContentType = strings.TrimSuffix(meta, ";base64")
		}
		payload = body
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "data is not valid base64")
	}
	r.decoded = raw
	return nil
}

// Upload is only meaningful after Validate.
func (r *ImageUploadRequest) Upload() channels.Upload {
	return channels.Upload{
		Filename:    r.Filename,
		ContentType: r.ContentType,
		Data:        r.decoded,
	}
}

type PhoneCodeRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type PhoneVerifyRequest struct {
	Code string `json:"code"`
}

type SocialVerifyRequest struct {
	Platform   string `json:"platform"`
	ProfileURL string `json:"profileUrl"`
}
