package channels

import (
	"context"
	"sync"
	"time"

	"caslkey/contracts/caslapi"
	"caslkey/internal/guest"
)

const (
	MsgScreenshotRequired = "Please select a screenshot to upload"
	msgScreenshotRejected = "Your screenshot could not be verified. Please try another verification method."
)

// ScreenshotResult is delivered to the settle callback once review finishes.
type ScreenshotResult struct {
	Status  guest.ScreenshotStatus
	Details *caslapi.PlatformData
	Message string
}

// Screenshot verifies a guest through a screenshot of their rental-platform
// profile. Review is asynchronous: Submit uploads and returns, a background
// poll follows the review status.
type Screenshot struct {
	*machine
	api      ScreenshotAPI
	policy   imagePolicy
	interval time.Duration

	dataMu   sync.Mutex
	staged   *StagedImage
	status   guest.ScreenshotStatus
	details  *caslapi.PlatformData
	onSettle func(ScreenshotResult)
}

func NewScreenshot(api ScreenshotAPI, opts ...Option) *Screenshot {
	o := buildOptions(opts)
	return &Screenshot{
		machine:  newMachine("screenshot", o),
		api:      api,
		policy:   imagePolicy{maxBytes: o.config.MaxImageBytes, allowed: o.config.AllowedImageTypes},
		interval: o.config.PollInterval,
	}
}

// OnSettle registers fn to run when a review reaches a terminal status. It
// runs on the poll goroutine.
func (s *Screenshot) OnSettle(fn func(ScreenshotResult)) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.onSettle = fn
}

// Stage validates an image and keeps it for Submit. Nothing is sent.
func (s *Screenshot) Stage(u Upload) (StagedImage, error) {
	img, msg := s.policy.stage(u)
	if msg != "" {
		return StagedImage{}, s.reject(msg)
	}
	s.dataMu.Lock()
	s.staged = &img
	s.dataMu.Unlock()

	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
	return img, nil
}

// Staged returns the image waiting for upload, if any.
func (s *Screenshot) Staged() (StagedImage, bool) {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	if s.staged == nil {
		return StagedImage{}, false
	}
	return *s.staged, true
}

// Clear drops the staged image.
func (s *Screenshot) Clear() {
	s.dataMu.Lock()
	s.staged = nil
	s.dataMu.Unlock()
}

// Status is the last review status seen, empty before any upload.
func (s *Screenshot) Status() guest.ScreenshotStatus {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	return s.status
}

// Details returns platform data reported with the review, if any.
func (s *Screenshot) Details() *caslapi.PlatformData {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	if s.details == nil {
		return nil
	}
	d := *s.details
	return &d
}

// Submit uploads the staged image and starts polling its review status.
func (s *Screenshot) Submit(ctx context.Context, userID string) error {
	img, ok := s.Staged()
	if !ok {
		return s.reject(MsgScreenshotRequired)
	}
	gen, err := s.begin()
	if err != nil {
		return err
	}

	if err := s.api.UploadScreenshot(ctx, userID, img.DataURL); err != nil {
		s.logger.Warn("screenshot upload failed", "error", err)
		return s.fail(gen, err)
	}
	if !s.pending(gen) {
		return nil
	}
	s.setStatus(gen, guest.ScreenshotProcessing, nil)

	s.startPoll(ctx, gen, s.interval, func(ctx context.Context) (State, string, error) {
		return s.check(ctx, gen, userID)
	}, func(state State, msg string) {
		s.dataMu.Lock()
		result := ScreenshotResult{Status: s.status, Details: s.details, Message: msg}
		fn := s.onSettle
		s.dataMu.Unlock()
		if fn != nil {
			fn(result)
		}
	})
	return nil
}

func (s *Screenshot) check(ctx context.Context, gen uint64, userID string) (State, string, error) {
	resp, err := s.api.ScreenshotStatus(ctx, userID)
	if err != nil {
		return "", "", err
	}
	status := guest.ScreenshotStatus(resp.Status)
	switch status {
	case guest.ScreenshotProcessing:
		return StatePending, "", nil
	case guest.ScreenshotVerified:
		s.setStatus(gen, status, resp.VerificationDetails)
		return StateVerified, "", nil
	case guest.ScreenshotManualReview:
		s.setStatus(gen, status, resp.VerificationDetails)
		return StateManualReview, "", nil
	default:
		s.setStatus(gen, guest.ScreenshotRejected, nil)
		msg := resp.Message
		if msg == "" {
			msg = msgScreenshotRejected
		}
		return StateFailed, msg, nil
	}
}

// setStatus holds the machine lock so a concurrent Reset cannot be undone
// by a late poll.
func (s *Screenshot) setStatus(gen uint64, status guest.ScreenshotStatus, details *caslapi.PlatformData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	s.status = status
	if details != nil {
		s.details = details
	}
}

// Reset cancels any poll and forgets the staged image and review status.
func (s *Screenshot) Reset() {
	s.reset()
	s.dataMu.Lock()
	s.staged = nil
	s.status = ""
	s.details = nil
	s.dataMu.Unlock()
}

// Close cancels polling permanently.
func (s *Screenshot) Close() {
	s.close()
}
