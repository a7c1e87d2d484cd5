package channels

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"caslkey/contracts/caslapi"
	"caslkey/internal/apiclient"
	"caslkey/internal/channels/mocks"
	"caslkey/internal/guest"
	dErrors "caslkey/pkg/domain-errors"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func testOptions() []Option {
	return []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithConfig(Config{PollInterval: 5 * time.Millisecond, MaxImageBytes: 64}),
	}
}

func outage() error {
	return &apiclient.Error{Category: apiclient.CategoryOutage, Message: "Unable to reach the verification service", Retryable: true}
}

type ScreenshotSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	api     *mocks.MockScreenshotAPI
	adapter *Screenshot
	settled chan ScreenshotResult
}

func TestScreenshotSuite(t *testing.T) {
	suite.Run(t, new(ScreenshotSuite))
}

func (s *ScreenshotSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockScreenshotAPI(s.ctrl)
	s.adapter = NewScreenshot(s.api, testOptions()...)
	s.settled = make(chan ScreenshotResult, 1)
	s.adapter.OnSettle(func(r ScreenshotResult) { s.settled <- r })
}

func (s *ScreenshotSuite) TearDownTest() {
	s.adapter.Close()
	s.ctrl.Finish()
}

func (s *ScreenshotSuite) waitSettled() ScreenshotResult {
	select {
	case r := <-s.settled:
		return r
	case <-time.After(2 * time.Second):
		s.FailNow("screenshot review never settled")
		return ScreenshotResult{}
	}
}

func (s *ScreenshotSuite) stagePNG() {
	_, err := s.adapter.Stage(Upload{Filename: "profile.png", ContentType: "image/png", Data: pngBytes})
	s.Require().NoError(err)
}

func (s *ScreenshotSuite) TestStageValidatesLocally() {
	s.Run("declared type outside the allow-list", func() {
		_, err := s.adapter.Stage(Upload{Filename: "a.gif", ContentType: "image/gif", Data: []byte("GIF89a")})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		s.Equal(MsgImageType, s.adapter.Error())
	})

	s.Run("content does not match an image", func() {
		_, err := s.adapter.Stage(Upload{Filename: "a.png", ContentType: "image/png", Data: []byte("plain text pretending")})
		s.Require().Error(err)
		s.Equal(MsgImageType, s.adapter.Error())
	})

	s.Run("too large", func() {
		big := append(append([]byte{}, pngBytes...), make([]byte, 100)...)
		_, err := s.adapter.Stage(Upload{Filename: "a.png", ContentType: "image/png", Data: big})
		s.Require().Error(err)
		s.Equal("Image must be 64 bytes or smaller", s.adapter.Error())
	})

	s.Run("valid image becomes a data URL", func() {
		img, err := s.adapter.Stage(Upload{Filename: "a.jpg", ContentType: "image/jpeg", Data: jpegBytes})
		s.Require().NoError(err)
		s.Equal("image/jpeg", img.MIME)
		s.Contains(img.DataURL, "data:image/jpeg;base64,")
		s.Empty(s.adapter.Error())
	})

	s.Equal(StateIdle, s.adapter.State())
}

func (s *ScreenshotSuite) TestSubmitRequiresStagedImage() {
	err := s.adapter.Submit(context.Background(), "CK7QX2M")
	s.Require().Error(err)
	s.Equal(MsgScreenshotRequired, s.adapter.Error())
}

func (s *ScreenshotSuite) TestUploadThenPollUntilVerified() {
	s.stagePNG()
	details := &caslapi.PlatformData{Platform: "Airbnb", ReviewCount: 9}
	gomock.InOrder(
		s.api.EXPECT().UploadScreenshot(gomock.Any(), "CK7QX2M", gomock.Any()).Return(nil),
		s.api.EXPECT().ScreenshotStatus(gomock.Any(), "CK7QX2M").Return(&caslapi.StatusResponse{Status: caslapi.StatusProcessing}, nil).Times(2),
		s.api.EXPECT().ScreenshotStatus(gomock.Any(), "CK7QX2M").Return(&caslapi.StatusResponse{Status: caslapi.StatusVerified, VerificationDetails: details}, nil),
	)

	s.Require().NoError(s.adapter.Submit(context.Background(), "CK7QX2M"))
	s.Equal(guest.ScreenshotProcessing, s.adapter.Status())

	result := s.waitSettled()
	s.Equal(guest.ScreenshotVerified, result.Status)
	s.Equal(9, result.Details.ReviewCount)
	s.Equal(StateVerified, s.adapter.State())
	s.True(s.adapter.Status().Accepted())
}

func (s *ScreenshotSuite) TestManualReviewIsTerminal() {
	s.stagePNG()
	s.api.EXPECT().UploadScreenshot(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.api.EXPECT().ScreenshotStatus(gomock.Any(), gomock.Any()).Return(&caslapi.StatusResponse{Status: caslapi.StatusManualReview}, nil)

	s.Require().NoError(s.adapter.Submit(context.Background(), "CK7QX2M"))
	s.Equal(guest.ScreenshotManualReview, s.waitSettled().Status)
	s.Equal(StateManualReview, s.adapter.State())
}

func (s *ScreenshotSuite) TestRejectedReview() {
	s.stagePNG()
	s.api.EXPECT().UploadScreenshot(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.api.EXPECT().ScreenshotStatus(gomock.Any(), gomock.Any()).Return(&caslapi.StatusResponse{Status: caslapi.StatusRejected}, nil)

	s.Require().NoError(s.adapter.Submit(context.Background(), "CK7QX2M"))
	result := s.waitSettled()
	s.Equal(guest.ScreenshotRejected, result.Status)
	s.Equal(msgScreenshotRejected, result.Message)
	s.Equal(StateFailed, s.adapter.State())
}

func (s *ScreenshotSuite) TestUploadFailureSurfacesOnAdapter() {
	s.stagePNG()
	s.api.EXPECT().UploadScreenshot(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&apiclient.Error{Category: apiclient.CategoryBadData, Message: "Image unreadable"})

	err := s.adapter.Submit(context.Background(), "CK7QX2M")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	s.Equal(StateFailed, s.adapter.State())
	s.Equal("Image unreadable", s.adapter.Error())
	s.False(s.adapter.Loading())
	_, staged := s.adapter.Staged()
	s.True(staged, "staged image is kept for retry")
}

func (s *ScreenshotSuite) TestPollToleratesTransientErrors() {
	s.stagePNG()
	gomock.InOrder(
		s.api.EXPECT().UploadScreenshot(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		s.api.EXPECT().ScreenshotStatus(gomock.Any(), gomock.Any()).Return(nil, outage()).Times(maxPollFailures),
		s.api.EXPECT().ScreenshotStatus(gomock.Any(), gomock.Any()).Return(&caslapi.StatusResponse{Status: caslapi.StatusVerified}, nil),
	)

	s.Require().NoError(s.adapter.Submit(context.Background(), "CK7QX2M"))
	s.Equal(guest.ScreenshotVerified, s.waitSettled().Status)
}

func (s *ScreenshotSuite) TestPollGivesUpAfterRepeatedErrors() {
	s.stagePNG()
	gomock.InOrder(
		s.api.EXPECT().UploadScreenshot(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		s.api.EXPECT().ScreenshotStatus(gomock.Any(), gomock.Any()).Return(nil, outage()).Times(maxPollFailures+1),
	)

	s.Require().NoError(s.adapter.Submit(context.Background(), "CK7QX2M"))
	result := s.waitSettled()
	s.Equal("Unable to reach the verification service", result.Message)
	s.Equal(StateFailed, s.adapter.State())
}

func (s *ScreenshotSuite) TestDuplicateSubmitIsBusy() {
	s.stagePNG()
	release := make(chan struct{})
	started := make(chan struct{})
	s.api.EXPECT().UploadScreenshot(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) error {
			close(started)
			<-release
			return errors.New("connection reset")
		})

	done := make(chan error, 1)
	go func() { done <- s.adapter.Submit(context.Background(), "CK7QX2M") }()
	<-started

	s.ErrorIs(s.adapter.Submit(context.Background(), "CK7QX2M"), ErrBusy)
	close(release)
	s.Error(<-done)
}

func (s *ScreenshotSuite) TestResetStopsPolling() {
	s.stagePNG()
	polled := make(chan struct{}, 1)
	s.api.EXPECT().UploadScreenshot(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.api.EXPECT().ScreenshotStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) (*caslapi.StatusResponse, error) {
			select {
			case polled <- struct{}{}:
			default:
			}
			return &caslapi.StatusResponse{Status: caslapi.StatusProcessing}, nil
		}).MinTimes(1)

	s.Require().NoError(s.adapter.Submit(context.Background(), "CK7QX2M"))
	<-polled
	s.adapter.Reset()

	s.Equal(StateIdle, s.adapter.State())
	s.Empty(s.adapter.Status())
	_, staged := s.adapter.Staged()
	s.False(staged)
	s.adapter.Close()

	select {
	case <-s.settled:
		s.Fail("settle callback ran after reset")
	case <-time.After(30 * time.Millisecond):
	}
}
