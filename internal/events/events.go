// Package events announces completed verifications to host applications.
package events

import (
	"context"
	"errors"
	"time"

	"caslkey/contracts/caslapi"
	"caslkey/internal/trust"
)

// NameVerificationComplete is the event name hosts subscribe to.
const NameVerificationComplete = "verificationComplete"

// VerificationComplete is emitted once per successful submission.
type VerificationComplete struct {
	CASLKeyID        string                   `json:"caslKeyId"`
	Score            int                      `json:"score"`
	TrustLevel       trust.Level              `json:"trustLevel"`
	VerificationData caslapi.VerificationData `json:"verificationData"`
	HostSummary      caslapi.HostSummary      `json:"hostSummary"`
	OccurredAt       time.Time                `json:"occurredAt"`
}

// Publisher delivers a completion event somewhere.
type Publisher interface {
	Publish(ctx context.Context, event VerificationComplete) error
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, VerificationComplete) error { return nil }

// Multi fans an event out to every publisher. All publishers run even if one
// fails; the errors are joined.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event VerificationComplete) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
