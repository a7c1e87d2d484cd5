// Package channels implements the verification signal adapters: screenshot,
// government ID, phone, social profile and background check. Each adapter is
// a small state machine that validates input locally, calls the backend and,
// for asynchronous channels, polls until the result settles.
package channels

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"caslkey/internal/apiclient"
	"caslkey/internal/channels/metrics"
	dErrors "caslkey/pkg/domain-errors"
)

// State is the lifecycle position of one channel.
type State string

const (
	StateIdle         State = "idle"
	StateSubmitted    State = "submitted"
	StatePending      State = "pending"
	StateVerified     State = "verified"
	StateManualReview State = "manual_review"
	StateFailed       State = "failed"
)

// Terminal reports whether polling stops in s.
func (s State) Terminal() bool {
	return s == StateVerified || s == StateManualReview || s == StateFailed
}

var (
	// ErrBusy is returned when a channel already has a request outstanding.
	ErrBusy = dErrors.New(dErrors.CodeConflict, "A verification request is already in progress")
	// ErrSuperseded is returned when a reset lands while a request is in flight.
	ErrSuperseded = dErrors.New(dErrors.CodeConflict, "The verification request was cancelled")
)

// maxPollFailures is how many consecutive retryable poll errors are tolerated.
const maxPollFailures = 3

// pollFunc checks the backend once. A non-terminal state keeps polling.
type pollFunc func(ctx context.Context) (State, string, error)

// machine holds the state shared by every adapter. Every submit or reset
// bumps gen; results carrying an older gen are dropped.
type machine struct {
	channel string
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu         sync.Mutex
	state      State
	err        string
	loading    bool
	gen        uint64
	cancelPoll context.CancelFunc
	polls      sync.WaitGroup
	closed     bool
}

func newMachine(channel string, o options) *machine {
	return &machine{
		channel: channel,
		logger:  o.logger.With("channel", channel),
		metrics: o.metrics,
		state:   StateIdle,
	}
}

func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *machine) Error() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Loading reports whether a request is outstanding.
func (m *machine) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// begin claims the channel for a new request and returns its generation.
func (m *machine) begin() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, dErrors.New(dErrors.CodeConflict, "verification channel is closed")
	}
	if m.loading {
		return 0, ErrBusy
	}
	m.stopPollLocked()
	m.gen++
	m.loading = true
	m.state = StateSubmitted
	m.err = ""
	return m.gen, nil
}

// reject records a client-side validation failure without touching the network.
func (m *machine) reject(msg string) error {
	m.mu.Lock()
	m.err = msg
	m.mu.Unlock()
	if m.metrics != nil {
		m.metrics.RecordRejection(m.channel)
	}
	return dErrors.New(dErrors.CodeInvalidInput, msg)
}

// rejectedErr is a refusal the backend carried in a successful response.
func (m *machine) rejectedErr(msg string) error {
	return dErrors.New(dErrors.CodeRejected, msg)
}

// fail settles gen as failed from a backend error and returns the error in
// its domain form.
func (m *machine) fail(gen uint64, err error) error {
	m.finish(gen, StateFailed, apiclient.Message(err))
	return apiclient.AsDomain(err)
}

// finish settles gen. It reports false when gen was superseded.
func (m *machine) finish(gen uint64, state State, msg string) bool {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		m.logger.Debug("dropping stale channel result", "state", state)
		return false
	}
	m.state = state
	m.err = msg
	m.loading = state == StateSubmitted
	m.mu.Unlock()

	if state.Terminal() {
		m.logger.Info("verification channel settled", "state", state)
		if m.metrics != nil {
			m.metrics.RecordOutcome(m.channel, string(state))
		}
	}
	return true
}

// pending moves gen to pending and releases the loading flag so the caller
// can return while a poll runs.
func (m *machine) pending(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false
	}
	m.state = StatePending
	m.loading = false
	return true
}

func (m *machine) current(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return gen == m.gen
}

// reset returns to idle and cancels any poll.
func (m *machine) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopPollLocked()
	m.gen++
	m.state = StateIdle
	m.err = ""
	m.loading = false
}

// close stops polling for good and waits for the poll goroutine to exit.
func (m *machine) close() {
	m.mu.Lock()
	m.closed = true
	m.stopPollLocked()
	m.gen++
	m.mu.Unlock()
	m.polls.Wait()
}

func (m *machine) stopPollLocked() {
	if m.cancelPoll != nil {
		m.cancelPoll()
		m.cancelPoll = nil
	}
}

// startPoll runs check every interval in the background until a terminal
// state, a reset or close. onSettle runs once with the final state if gen is
// still current. The poll outlives parent's cancellation but keeps its values.
func (m *machine) startPoll(parent context.Context, gen uint64, interval time.Duration, check pollFunc, onSettle func(State, string)) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))

	m.mu.Lock()
	if gen != m.gen || m.closed {
		m.mu.Unlock()
		cancel()
		return
	}
	m.cancelPoll = cancel
	m.polls.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.polls.Done()
		defer cancel()

		state, msg, err := m.pollLoop(ctx, gen, interval, check)
		if err != nil {
			return
		}
		if m.finish(gen, state, msg) && onSettle != nil {
			onSettle(state, msg)
		}
	}()
}

// pollLoop blocks until check reports a terminal state or ctx ends. Retryable
// errors are tolerated up to maxPollFailures in a row; anything else settles
// as failed.
func (m *machine) pollLoop(ctx context.Context, gen uint64, interval time.Duration, check pollFunc) (State, string, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return "", "", ctx.Err()
		case <-ticker.C:
		}
		if !m.current(gen) {
			return "", "", context.Canceled
		}
		if m.metrics != nil {
			m.metrics.RecordPoll(m.channel)
		}

		state, msg, err := check(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return "", "", ctx.Err()
			}
			if apiclient.IsRetryable(err) && failures < maxPollFailures {
				failures++
				m.logger.Warn("status poll failed, retrying", "attempt", failures, "error", err)
				continue
			}
			return StateFailed, apiclient.Message(err), nil
		}
		failures = 0
		if state.Terminal() {
			return state, msg, nil
		}
	}
}
