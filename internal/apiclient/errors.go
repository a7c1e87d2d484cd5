package apiclient

import (
	"errors"
	"fmt"

	dErrors "caslkey/pkg/domain-errors"
)

// Category is the normalized failure taxonomy for verification backend calls.
// Channels and the wizard decide retry behaviour from it without looking at
// raw status codes.
type Category string

const (
	// CategoryTimeout means the backend did not answer within the deadline.
	CategoryTimeout Category = "timeout"

	// CategoryBadData means the request was refused as invalid or the
	// response could not be decoded.
	CategoryBadData Category = "bad_data"

	// CategoryAuthentication means the API key was missing or refused.
	CategoryAuthentication Category = "authentication"

	// CategoryOutage means the backend is unreachable or returned 5xx.
	CategoryOutage Category = "outage"

	CategoryNotFound    Category = "not_found"
	CategoryRateLimited Category = "rate_limited"

	// CategoryRejected means the backend answered but declined the payload
	// (accepted=false).
	CategoryRejected Category = "rejected"

	CategoryInternal Category = "internal"
)

// Error wraps a failed backend call. Message is safe to show to the guest.
type Error struct {
	Category   Category
	Endpoint   string
	Status     int
	Message    string
	Underlying error
	Retryable  bool
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("caslapi %s [%s]: %s: %v", e.Endpoint, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("caslapi %s [%s]: %s", e.Endpoint, e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// newError classifies timeouts, outages and rate limits as retryable.
func newError(category Category, endpoint, message string, underlying error) *Error {
	return &Error{
		Category:   category,
		Endpoint:   endpoint,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == CategoryTimeout || category == CategoryOutage || category == CategoryRateLimited,
	}
}

// IsRetryable reports whether err is a transient backend failure.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// CategoryOf extracts the category, defaulting to internal.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return CategoryInternal
}

// Message returns the guest-facing text of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return dErrors.Message(err, "Something went wrong. Please try again.")
}

// AsDomain maps a backend failure onto a domain error code so transports can
// translate it. Non-API errors pass through unchanged.
func AsDomain(err error) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	return dErrors.Wrap(err, domainCode(e.Category), e.Message)
}

func domainCode(c Category) dErrors.Code {
	switch c {
	case CategoryTimeout:
		return dErrors.CodeTimeout
	case CategoryBadData:
		return dErrors.CodeBadRequest
	case CategoryAuthentication, CategoryOutage, CategoryRateLimited:
		return dErrors.CodeUnavailable
	case CategoryNotFound:
		return dErrors.CodeNotFound
	case CategoryRejected:
		return dErrors.CodeRejected
	default:
		return dErrors.CodeInternal
	}
}
