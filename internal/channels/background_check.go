package channels

import (
	"context"
	"errors"
	"time"

	"caslkey/contracts/caslapi"
	"caslkey/internal/guest"
	dErrors "caslkey/pkg/domain-errors"
)

const msgCheckTimedOut = "The background check is taking longer than expected. We'll keep it on file."

// Subject identifies the person a background check runs against.
type Subject struct {
	CASLKeyID string
	Name      string
	Email     string
	Phone     string
	Address   string
}

// BackgroundCheck runs a consented background check. Unlike the other
// channels Run blocks until the outcome is known or ctx ends.
type BackgroundCheck struct {
	*machine
	api      BackgroundCheckAPI
	interval time.Duration
}

func NewBackgroundCheck(api BackgroundCheckAPI, opts ...Option) *BackgroundCheck {
	o := buildOptions(opts)
	return &BackgroundCheck{
		machine:  newMachine("background_check", o),
		api:      api,
		interval: o.config.PollInterval,
	}
}

// Run starts a check and waits for passed or failed. Callers bound the wait
// through ctx.
func (b *BackgroundCheck) Run(ctx context.Context, subject Subject) (guest.BackgroundCheckOutcome, error) {
	gen, err := b.begin()
	if err != nil {
		return guest.BackgroundCheckNone, err
	}

	resp, err := b.api.InitiateBackgroundCheck(ctx, caslapi.BackgroundCheckRequest{
		CASLKeyID: subject.CASLKeyID,
		Name:      subject.Name,
		Email:     subject.Email,
		Phone:     subject.Phone,
		Address:   subject.Address,
	})
	if err != nil {
		return guest.BackgroundCheckNone, b.fail(gen, err)
	}
	if outcome, done := checkOutcome(resp.Status); done {
		b.settle(gen, outcome)
		return outcome, nil
	}

	// Still loading: Run holds the channel until the poll ends.
	b.mu.Lock()
	if b.gen == gen {
		b.state = StatePending
	}
	b.mu.Unlock()

	checkID := resp.CheckID
	state, msg, err := b.pollLoop(ctx, gen, b.interval, func(ctx context.Context) (State, string, error) {
		resp, err := b.api.BackgroundCheckStatus(ctx, checkID)
		if err != nil {
			return "", "", err
		}
		if outcome, done := checkOutcome(resp.Status); done {
			if outcome == guest.BackgroundCheckPassed {
				return StateVerified, "", nil
			}
			return StateFailed, "", nil
		}
		return StatePending, "", nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			b.finish(gen, StatePending, msgCheckTimedOut)
			return guest.BackgroundCheckNone, dErrors.Wrap(err, dErrors.CodeTimeout, msgCheckTimedOut)
		}
		b.finish(gen, StateIdle, "")
		return guest.BackgroundCheckNone, err
	}

	b.finish(gen, state, msg)
	switch {
	case state == StateVerified:
		return guest.BackgroundCheckPassed, nil
	case msg != "":
		// polling gave up on backend errors; no outcome is known
		return guest.BackgroundCheckNone, dErrors.New(dErrors.CodeUnavailable, msg)
	default:
		return guest.BackgroundCheckFailed, nil
	}
}

func (b *BackgroundCheck) settle(gen uint64, outcome guest.BackgroundCheckOutcome) {
	if outcome == guest.BackgroundCheckPassed {
		b.finish(gen, StateVerified, "")
		return
	}
	b.finish(gen, StateFailed, "")
}

// checkOutcome maps the backend status; done is false while still pending.
func checkOutcome(status string) (guest.BackgroundCheckOutcome, bool) {
	switch status {
	case caslapi.OutcomePassed, caslapi.OutcomeVerified:
		return guest.BackgroundCheckPassed, true
	case caslapi.OutcomeFailed, caslapi.StatusRejected:
		return guest.BackgroundCheckFailed, true
	default:
		return guest.BackgroundCheckNone, false
	}
}

func (b *BackgroundCheck) Reset() {
	b.reset()
}

func (b *BackgroundCheck) Close() {
	b.close()
}
