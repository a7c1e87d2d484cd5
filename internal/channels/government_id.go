package channels

import (
	"context"
	"sync"
	"time"

	"caslkey/contracts/caslapi"
)

const (
	MsgIDImageRequired = "Please upload a photo of your government ID"
	MsgSelfieRequired  = "Please upload a selfie"
	msgIDFailed        = "We couldn't verify your ID. Please check the photos and try again."
)

// GovernmentID verifies a photo ID against a selfie. The backend may answer
// immediately or leave the check pending, in which case it is polled.
type GovernmentID struct {
	*machine
	api      GovernmentIDAPI
	policy   imagePolicy
	interval time.Duration

	dataMu   sync.Mutex
	idImage  *StagedImage
	selfie   *StagedImage
	onSettle func(State, string)
}

func NewGovernmentID(api GovernmentIDAPI, opts ...Option) *GovernmentID {
	o := buildOptions(opts)
	return &GovernmentID{
		machine:  newMachine("government_id", o),
		api:      api,
		policy:   imagePolicy{maxBytes: o.config.MaxImageBytes, allowed: o.config.AllowedImageTypes},
		interval: o.config.PollInterval,
	}
}

// OnSettle registers fn to run when a pending check settles.
func (g *GovernmentID) OnSettle(fn func(State, string)) {
	g.dataMu.Lock()
	defer g.dataMu.Unlock()
	g.onSettle = fn
}

func (g *GovernmentID) StageID(u Upload) (StagedImage, error) {
	return g.stage(u, &g.idImage)
}

func (g *GovernmentID) StageSelfie(u Upload) (StagedImage, error) {
	return g.stage(u, &g.selfie)
}

func (g *GovernmentID) stage(u Upload, slot **StagedImage) (StagedImage, error) {
	img, msg := g.policy.stage(u)
	if msg != "" {
		return StagedImage{}, g.reject(msg)
	}
	g.dataMu.Lock()
	*slot = &img
	g.dataMu.Unlock()
	return img, nil
}

// Staged reports which images are waiting for Verify.
func (g *GovernmentID) Staged() (idImage, selfie bool) {
	g.dataMu.Lock()
	defer g.dataMu.Unlock()
	return g.idImage != nil, g.selfie != nil
}

// Verify submits both images. It returns the state reached before returning:
// verified, failed or pending (polling continues in the background).
func (g *GovernmentID) Verify(ctx context.Context, userID string) (State, error) {
	g.dataMu.Lock()
	idImage, selfie := g.idImage, g.selfie
	g.dataMu.Unlock()
	if idImage == nil {
		return g.State(), g.reject(MsgIDImageRequired)
	}
	if selfie == nil {
		return g.State(), g.reject(MsgSelfieRequired)
	}

	gen, err := g.begin()
	if err != nil {
		return g.State(), err
	}

	resp, err := g.api.VerifyGovernmentID(ctx, caslapi.GovernmentIDRequest{
		UserID:      userID,
		IDImage:     idImage.DataURL,
		SelfieImage: selfie.DataURL,
	})
	if err != nil {
		return StateFailed, g.fail(gen, err)
	}

	state, msg := channelOutcome(resp, msgIDFailed)
	if state != StatePending {
		g.finish(gen, state, msg)
		return state, nil
	}
	if !g.pending(gen) {
		return StatePending, nil
	}
	g.startPoll(ctx, gen, g.interval, func(ctx context.Context) (State, string, error) {
		resp, err := g.api.GovernmentIDStatus(ctx, userID)
		if err != nil {
			return "", "", err
		}
		state, msg := channelOutcome(resp, msgIDFailed)
		return state, msg, nil
	}, func(state State, msg string) {
		g.dataMu.Lock()
		fn := g.onSettle
		g.dataMu.Unlock()
		if fn != nil {
			fn(state, msg)
		}
	})
	return StatePending, nil
}

// Reset cancels any poll and drops both images.
func (g *GovernmentID) Reset() {
	g.reset()
	g.dataMu.Lock()
	g.idImage = nil
	g.selfie = nil
	g.dataMu.Unlock()
}

func (g *GovernmentID) Close() {
	g.close()
}

// channelOutcome maps a verified|failed|pending answer onto a state. Unknown
// statuses count as pending.
func channelOutcome(resp *caslapi.ChannelResponse, failedMsg string) (State, string) {
	switch resp.Status {
	case caslapi.OutcomeVerified, caslapi.StatusVerified:
		return StateVerified, ""
	case caslapi.OutcomeFailed, caslapi.StatusRejected:
		msg := resp.Message
		if msg == "" {
			msg = failedMsg
		}
		return StateFailed, msg
	case caslapi.StatusManualReview:
		return StateManualReview, ""
	default:
		return StatePending, ""
	}
}
