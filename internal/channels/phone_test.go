package channels

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"caslkey/contracts/caslapi"
	"caslkey/internal/apiclient"
	"caslkey/internal/channels/mocks"
	dErrors "caslkey/pkg/domain-errors"
)

type PhoneSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	api     *mocks.MockPhoneAPI
	now     time.Time
	adapter *Phone
}

func TestPhoneSuite(t *testing.T) {
	suite.Run(t, new(PhoneSuite))
}

func (s *PhoneSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockPhoneAPI(s.ctrl)
	s.now = time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	opts := append(testOptions(), WithClock(func() time.Time { return s.now }))
	s.adapter = NewPhone(s.api, opts...)
}

func (s *PhoneSuite) TearDownTest() {
	s.adapter.Close()
	s.ctrl.Finish()
}

func (s *PhoneSuite) sendCode() {
	s.api.EXPECT().RequestPhoneCode(gomock.Any(), caslapi.PhoneCodeRequest{UserID: "CK7QX2M", PhoneNumber: "+15551234567"}).
		Return(&caslapi.PhoneCodeResponse{Sent: true}, nil)
	s.Require().NoError(s.adapter.RequestCode(context.Background(), "+1 (555) 123-4567", "CK7QX2M"))
}

func (s *PhoneSuite) TestNumberValidatedLocally() {
	s.Run("empty", func() {
		err := s.adapter.RequestCode(context.Background(), "  ", "CK7QX2M")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		s.Equal(MsgPhoneRequired, s.adapter.Error())
	})
	s.Run("too short", func() {
		s.Require().Error(s.adapter.RequestCode(context.Background(), "555-12", "CK7QX2M"))
		s.Equal(MsgPhoneInvalid, s.adapter.Error())
	})
	s.Run("letters", func() {
		s.Require().Error(s.adapter.RequestCode(context.Background(), "555-CALL-NOW", "CK7QX2M"))
	})
	s.Equal(StateIdle, s.adapter.State())
}

func (s *PhoneSuite) TestRequestCodeMovesToPending() {
	s.sendCode()
	s.Equal(StatePending, s.adapter.State())
	s.Equal("+15551234567", s.adapter.Number())
	s.False(s.adapter.Loading())
	s.Equal(60*time.Second, s.adapter.ResendIn())
}

func (s *PhoneSuite) TestResendCooldown() {
	s.sendCode()

	s.now = s.now.Add(20 * time.Second)
	err := s.adapter.RequestCode(context.Background(), "+15551234567", "CK7QX2M")
	s.Require().Error(err)
	s.Equal("Please wait 40 seconds before requesting a new code", s.adapter.Error())

	s.now = s.now.Add(40 * time.Second)
	s.Zero(s.adapter.ResendIn())
	s.api.EXPECT().RequestPhoneCode(gomock.Any(), gomock.Any()).Return(&caslapi.PhoneCodeResponse{Sent: true}, nil)
	s.NoError(s.adapter.RequestCode(context.Background(), "+15551234567", "CK7QX2M"))
}

func (s *PhoneSuite) TestSendRefused() {
	s.api.EXPECT().RequestPhoneCode(gomock.Any(), gomock.Any()).
		Return(&caslapi.PhoneCodeResponse{Sent: false}, nil)

	err := s.adapter.RequestCode(context.Background(), "5551234567", "CK7QX2M")
	s.True(dErrors.HasCode(err, dErrors.CodeRejected))
	s.Equal(StateFailed, s.adapter.State())
	s.Equal(msgSendFailed, s.adapter.Error())
	s.Zero(s.adapter.ResendIn())
}

func (s *PhoneSuite) TestVerifyCode() {
	s.Run("before any code was sent", func() {
		ok, err := s.adapter.VerifyCode(context.Background(), "123456", "CK7QX2M")
		s.False(ok)
		s.Require().Error(err)
		s.Equal(MsgCodeNotSent, s.adapter.Error())
	})

	s.sendCode()

	s.Run("malformed", func() {
		ok, _ := s.adapter.VerifyCode(context.Background(), "12ab", "CK7QX2M")
		s.False(ok)
		s.Equal(MsgCodeInvalid, s.adapter.Error())
	})

	s.Run("wrong code keeps the number pending", func() {
		s.api.EXPECT().VerifyPhoneCode(gomock.Any(), caslapi.PhoneVerifyRequest{UserID: "CK7QX2M", Code: "000000"}).
			Return(&caslapi.PhoneVerifyResponse{Verified: false}, nil)
		ok, err := s.adapter.VerifyCode(context.Background(), "000000", "CK7QX2M")
		s.False(ok)
		s.True(dErrors.HasCode(err, dErrors.CodeRejected))
		s.Equal(StatePending, s.adapter.State())
		s.Equal(msgCodeNotAccepted, s.adapter.Error())
	})

	s.Run("transport error keeps the number pending", func() {
		s.api.EXPECT().VerifyPhoneCode(gomock.Any(), gomock.Any()).
			Return(nil, &apiclient.Error{Category: apiclient.CategoryOutage, Message: "Service unavailable", Retryable: true})
		ok, err := s.adapter.VerifyCode(context.Background(), "111111", "CK7QX2M")
		s.False(ok)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		s.Equal(StatePending, s.adapter.State())
	})

	s.Run("right code", func() {
		s.api.EXPECT().VerifyPhoneCode(gomock.Any(), gomock.Any()).
			Return(&caslapi.PhoneVerifyResponse{Verified: true}, nil)
		ok, err := s.adapter.VerifyCode(context.Background(), " 654321 ", "CK7QX2M")
		s.Require().NoError(err)
		s.True(ok)
		s.Equal(StateVerified, s.adapter.State())
		s.Empty(s.adapter.Error())
	})
}

func (s *PhoneSuite) TestResetForgetsCode() {
	s.sendCode()
	s.adapter.Reset()

	s.Equal(StateIdle, s.adapter.State())
	s.Empty(s.adapter.Number())
	s.Zero(s.adapter.ResendIn())
	_, err := s.adapter.VerifyCode(context.Background(), "123456", "CK7QX2M")
	s.Require().Error(err)
}

func (s *PhoneSuite) TestResetDuringRequestCodeWins() {
	s.api.EXPECT().RequestPhoneCode(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, caslapi.PhoneCodeRequest) (*caslapi.PhoneCodeResponse, error) {
			s.adapter.Reset()
			return &caslapi.PhoneCodeResponse{Sent: true}, nil
		})

	err := s.adapter.RequestCode(context.Background(), "+15551234567", "CK7QX2M")
	s.Equal(ErrSuperseded, err)
	s.Equal(StateIdle, s.adapter.State())
	s.Empty(s.adapter.Number())
	s.Zero(s.adapter.ResendIn())
	s.False(s.adapter.Loading())

	ok, err := s.adapter.VerifyCode(context.Background(), "123456", "CK7QX2M")
	s.False(ok)
	s.Require().Error(err)
	s.Equal(MsgCodeNotSent, s.adapter.Error())
}

func (s *PhoneSuite) TestResetDuringVerifyCodeWins() {
	s.sendCode()
	s.api.EXPECT().VerifyPhoneCode(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, caslapi.PhoneVerifyRequest) (*caslapi.PhoneVerifyResponse, error) {
			s.adapter.Reset()
			return &caslapi.PhoneVerifyResponse{Verified: true}, nil
		})

	ok, err := s.adapter.VerifyCode(context.Background(), "654321", "CK7QX2M")
	s.False(ok)
	s.Equal(ErrSuperseded, err)
	s.Equal(StateIdle, s.adapter.State())
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+15551234567", NormalizePhone(" +1 (555) 123-4567 "))
	assert.Equal(t, "5551234567", NormalizePhone("555.123.4567"))
}
