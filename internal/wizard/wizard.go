// Package wizard drives the four-step CASL Key verification flow: it holds
// the guest's answers and verification signals, runs the step-0 side effects,
// submits the finished application and announces it.
package wizard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"caslkey/internal/apiclient"
	"caslkey/internal/channels"
	chanmetrics "caslkey/internal/channels/metrics"
	"caslkey/internal/events"
	"caslkey/internal/guest"
	"caslkey/internal/trust"
	"caslkey/internal/validation"
	"caslkey/internal/wizard/metrics"
	id "caslkey/pkg/domain"
	dErrors "caslkey/pkg/domain-errors"
)

var (
	ErrBusy        = dErrors.New(dErrors.CodeConflict, "Another action is still in progress")
	ErrStepInvalid = dErrors.New(dErrors.CodeValidation, "Please correct the highlighted fields")
	ErrSubmitted   = dErrors.New(dErrors.CodeConflict, "This application has already been submitted")
	ErrSuperseded  = dErrors.New(dErrors.CodeConflict, "The form was reset before the request finished")
)

// Wizard is one guest's verification session. It is safe for concurrent use;
// navigation actions run one at a time and Reset invalidates anything still
// in flight through the generation counter.
type Wizard struct {
	api       API
	repo      Repository
	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher events.Publisher
	now       func() time.Time
	newID     func() id.CASLKeyID
	bgTimeout time.Duration

	channelConfig  channels.Config
	channelMetrics *chanmetrics.Metrics

	screenshot *channels.Screenshot
	govID      *channels.GovernmentID
	phone      *channels.Phone
	social     *channels.Social
	bgCheck    *channels.BackgroundCheck

	mu            sync.Mutex
	state         State
	busy          bool
	provisionalID id.CASLKeyID
}

func New(api API, repo Repository, opts ...Option) *Wizard {
	w := &Wizard{
		api:           api,
		repo:          repo,
		logger:        slog.Default(),
		publisher:     events.Noop{},
		now:           time.Now,
		newID:         id.NewCASLKeyID,
		bgTimeout:     DefaultBackgroundCheckTimeout,
		channelConfig: channels.DefaultConfig(),
		state:         initialState(),
	}
	for _, opt := range opts {
		opt(w)
	}

	chOpts := []channels.Option{
		channels.WithConfig(w.channelConfig),
		channels.WithLogger(w.logger),
		channels.WithMetrics(w.channelMetrics),
		channels.WithClock(w.now),
	}
	w.screenshot = channels.NewScreenshot(api, chOpts...)
	w.govID = channels.NewGovernmentID(api, chOpts...)
	w.phone = channels.NewPhone(api, chOpts...)
	w.social = channels.NewSocial(api, chOpts...)
	w.bgCheck = channels.NewBackgroundCheck(api, chOpts...)

	w.mu.Lock()
	w.revalidateLocked()
	w.mu.Unlock()
	return w
}

// Restore loads a saved snapshot into a fresh wizard. It reports whether
// one was found; stale or unreadable snapshots are dropped silently.
func (w *Wizard) Restore(ctx context.Context) (bool, error) {
	snap, found, err := w.repo.LoadForm(ctx)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "Saved progress could not be loaded")
	}
	if !found {
		return false, nil
	}
	preview, hasPreview, err := w.repo.LoadPreview(ctx)
	if err != nil {
		w.logger.Warn("trust preview could not be loaded", "error", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Form = snap.FormData
	w.state.Step = snap.CurrentStep
	w.state.Restored = true
	if hasPreview {
		w.state.Preview = &preview
	}
	w.revalidateLocked()
	w.logger.Info("restored saved progress", "step", snap.CurrentStep, "saved_at", snap.SavedAt())
	return true, nil
}

// SetField updates one answer, applies its side effects, saves the snapshot
// and revalidates the current step.
func (w *Wizard) SetField(ctx context.Context, name string, value any) error {
	w.mu.Lock()
	if w.state.Submitted {
		w.mu.Unlock()
		return ErrSubmitted
	}
	next, err := guest.ApplyField(w.state.Form, name, value)
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.state.Form = next

	var preview *trust.TrustPreview
	if name == guest.FieldConsentToBackgroundCheck && next.ConsentToBackgroundCheck {
		p := w.refreshPreviewLocked()
		preview = &p
	}
	w.revalidateLocked()
	form, step := w.state.Form, w.state.Step
	w.mu.Unlock()

	w.persistForm(ctx, form, step)
	if preview != nil {
		w.persistPreview(ctx, *preview)
	}
	return nil
}

// Retreat moves back one step. It is a no-op on the first step and stays
// available while another navigation action is outstanding.
func (w *Wizard) Retreat(ctx context.Context) error {
	w.mu.Lock()
	switch {
	case w.state.Submitted:
		w.mu.Unlock()
		return ErrSubmitted
	case w.state.Step == guest.StepIdentification:
		w.mu.Unlock()
		return nil
	}
	w.state.Step--
	w.revalidateLocked()
	form, step := w.state.Form, w.state.Step
	w.mu.Unlock()

	w.persistForm(ctx, form, step)
	return nil
}

// Reset discards everything: answers, signals, preview, result and the saved
// snapshot. Requests still in flight are ignored when they return.
func (w *Wizard) Reset(ctx context.Context) error {
	w.resetChannels()

	w.mu.Lock()
	gen := w.state.Generation + 1
	w.state = initialState()
	w.state.Generation = gen
	w.busy = false
	w.provisionalID = ""
	w.revalidateLocked()
	w.mu.Unlock()

	if err := w.repo.Clear(ctx); err != nil {
		w.logger.Warn("saved progress could not be cleared", "error", err)
	}
	w.logger.Info("wizard reset", "generation", gen)
	return nil
}

func (w *Wizard) resetChannels() {
	w.screenshot.Reset()
	w.govID.Reset()
	w.phone.Reset()
	w.social.Reset()
	w.bgCheck.Reset()
}

// DismissError hides the top-level error alert.
func (w *Wizard) DismissError() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.APIError = ""
	w.state.Verification.Error = ""
}

func (w *Wizard) DismissRestoredNotice() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Restored = false
}

// ClearSavedData deletes the snapshot but keeps the answers in memory.
func (w *Wizard) ClearSavedData(ctx context.Context) error {
	w.mu.Lock()
	w.state.Restored = false
	w.mu.Unlock()
	if err := w.repo.ClearForm(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "Saved progress could not be cleared")
	}
	return nil
}

// Close stops every poll and waits for them to exit. The wizard must not be
// used afterwards.
func (w *Wizard) Close() {
	w.mu.Lock()
	w.state.Generation++
	w.mu.Unlock()

	w.screenshot.Close()
	w.govID.Close()
	w.phone.Close()
	w.social.Close()
	w.bgCheck.Close()
}

// State returns a deep copy of the wizard's state.
func (w *Wizard) State() State {
	w.mu.Lock()
	s := w.state.clone()
	w.mu.Unlock()
	s.Channels = w.channelsState()
	return s
}

func (w *Wizard) channelsState() ChannelsState {
	var cs ChannelsState
	cs.Screenshot.ChannelStatus = statusOf(w.screenshot.State(), w.screenshot.Loading(), w.screenshot.Error())
	cs.Screenshot.Status = w.screenshot.Status()
	if img, ok := w.screenshot.Staged(); ok {
		cs.Screenshot.Staged = &img
	}
	cs.GovernmentID.ChannelStatus = statusOf(w.govID.State(), w.govID.Loading(), w.govID.Error())
	cs.GovernmentID.IDStaged, cs.GovernmentID.SelfieStaged = w.govID.Staged()
	cs.Phone.ChannelStatus = statusOf(w.phone.State(), w.phone.Loading(), w.phone.Error())
	cs.Phone.Number = w.phone.Number()
	cs.Phone.ResendIn = w.phone.ResendIn()
	cs.Social = statusOf(w.social.State(), w.social.Loading(), w.social.Error())
	cs.BackgroundCheck = statusOf(w.bgCheck.State(), w.bgCheck.Loading(), w.bgCheck.Error())
	return cs
}

func statusOf(state channels.State, loading bool, msg string) ChannelStatus {
	return ChannelStatus{State: state, Loading: loading, Error: msg}
}

// begin claims the wizard for one navigation action.
func (w *Wizard) beginLocked() (uint64, error) {
	if w.busy {
		return 0, ErrBusy
	}
	if w.state.Submitted {
		return 0, ErrSubmitted
	}
	w.busy = true
	w.state.Loading = true
	w.state.APIError = ""
	return w.state.Generation, nil
}

// endLocked releases the navigation claim taken under gen.
func (w *Wizard) endLocked(gen uint64) {
	if gen != w.state.Generation {
		return
	}
	w.busy = false
	w.state.Loading = false
}

func (w *Wizard) revalidateLocked() {
	errs := validation.ValidateStep(w.state.Step, w.state.Form, w.state.Verification, w.screenshot.Status())
	w.state.Errors = errs
	w.state.Valid = validation.IsStepValid(errs)
}

func (w *Wizard) refreshPreviewLocked() trust.TrustPreview {
	result := trust.CalculateScore(w.state.Form, w.state.Verification, w.now())
	p := trust.Preview(w.state.Form, w.state.Verification, result)
	w.state.Preview = &p
	return p
}

// userIDLocked is the identifier channel calls are made under: the CASL Key
// ID once known, otherwise a provisional one that a later lookup adopts.
func (w *Wizard) userIDLocked() id.CASLKeyID {
	if !w.state.Verification.CASLKeyID.IsNil() {
		return w.state.Verification.CASLKeyID
	}
	if w.provisionalID.IsNil() {
		w.provisionalID = w.newID()
	}
	return w.provisionalID
}

func (w *Wizard) surfaceLocked(err error) {
	w.state.APIError = apiclient.Message(err)
}

func (w *Wizard) persistForm(ctx context.Context, form guest.FormData, step guest.Step) {
	if err := w.repo.SaveForm(ctx, form, step); err != nil {
		w.logger.Warn("progress could not be saved", "error", err)
	}
}

func (w *Wizard) persistPreview(ctx context.Context, preview trust.TrustPreview) {
	if err := w.repo.SavePreview(ctx, preview); err != nil {
		w.logger.Warn("trust preview could not be saved", "error", err)
	}
}
