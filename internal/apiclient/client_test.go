package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"caslkey/contracts/caslapi"
	"caslkey/pkg/platform/circuit"
)

type ClientSuite struct {
	suite.Suite
	mux    *http.ServeMux
	server *httptest.Server
	client *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.client = New(s.server.URL+"/", WithAPIKey("test-key"), WithHTTPClient(s.server.Client()))
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *ClientSuite) TestCheckUser() {
	s.mux.HandleFunc("POST /user-check", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("test-key", r.Header.Get("X-API-Key"))
		s.Equal("application/json", r.Header.Get("Content-Type"))

		var req caslapi.UserCheckRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		s.Equal("jamie@example.com", req.Email)

		writeJSON(w, http.StatusOK, map[string]any{
			"found": true,
			"userData": map[string]any{
				"caslKeyId":    "CK7QX2M",
				"isVerified":   true,
				"platformData": map[string]any{"platform": "Airbnb", "reviewCount": 12},
			},
		})
	})

	resp, err := s.client.CheckUser(context.Background(), caslapi.UserCheckRequest{Email: "jamie@example.com"})
	s.Require().NoError(err)
	s.True(resp.Found)
	s.Require().NotNil(resp.UserData)
	s.Equal("CK7QX2M", resp.UserData.CASLKeyID)
	s.Equal(12, resp.UserData.PlatformData.ReviewCount)
}

func (s *ClientSuite) TestBackendMessageIsSurfaced() {
	s.mux.HandleFunc("POST /user-check", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, caslapi.ErrorBody{Message: "Email domain is not allowed"})
	})

	_, err := s.client.CheckUser(context.Background(), caslapi.UserCheckRequest{})
	s.Require().Error(err)
	s.Equal(CategoryBadData, CategoryOf(err))
	s.Equal("Email domain is not allowed", Message(err))
	s.False(IsRetryable(err))
}

func (s *ClientSuite) TestStatusFallbackMessage() {
	s.mux.HandleFunc("POST /verify", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html>down</html>"))
	})

	err := s.client.SubmitVerification(context.Background(), caslapi.Submission{})
	s.Require().Error(err)
	s.Equal(CategoryOutage, CategoryOf(err))
	s.Equal("API Error: 503", Message(err))
	s.True(IsRetryable(err))

	var apiErr *Error
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(EndpointVerify, apiErr.Endpoint)
	s.Equal(http.StatusServiceUnavailable, apiErr.Status)
}

func (s *ClientSuite) TestStatusCategories() {
	cases := map[int]Category{
		http.StatusUnauthorized:        CategoryAuthentication,
		http.StatusForbidden:           CategoryAuthentication,
		http.StatusNotFound:            CategoryNotFound,
		http.StatusConflict:            CategoryRejected,
		http.StatusTooManyRequests:     CategoryRateLimited,
		http.StatusGatewayTimeout:      CategoryTimeout,
		http.StatusInternalServerError: CategoryOutage,
		http.StatusTeapot:              CategoryInternal,
	}
	for status, want := range cases {
		s.Equal(want, classifyStatus("/x", status, nil).Category, "status=%d", status)
	}
}

func (s *ClientSuite) TestUploadAck() {
	var accepted atomic.Value
	s.mux.HandleFunc("POST /upload", func(w http.ResponseWriter, r *http.Request) {
		var req caslapi.UploadRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		s.Equal("CK7QX2M", req.UserID)
		s.Equal("data:image/png;base64,AAAA", req.ImageData)
		writeJSON(w, http.StatusOK, accepted.Load())
	})

	s.Run("missing accepted field counts as accepted", func() {
		accepted.Store(map[string]any{})
		s.NoError(s.client.UploadScreenshot(context.Background(), "CK7QX2M", "data:image/png;base64,AAAA"))
	})

	s.Run("explicit rejection", func() {
		accepted.Store(map[string]any{"accepted": false, "message": "Image unreadable"})
		err := s.client.UploadScreenshot(context.Background(), "CK7QX2M", "data:image/png;base64,AAAA")
		s.Require().Error(err)
		s.Equal(CategoryRejected, CategoryOf(err))
		s.Equal("Image unreadable", Message(err))
	})
}

func (s *ClientSuite) TestQueryParameters() {
	s.mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("CK7QX2M", r.URL.Query().Get("userId"))
		writeJSON(w, http.StatusOK, caslapi.StatusResponse{Status: caslapi.StatusManualReview})
	})
	s.mux.HandleFunc("GET /background-check/status", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("chk-1", r.URL.Query().Get("checkId"))
		writeJSON(w, http.StatusOK, caslapi.BackgroundCheckResponse{CheckID: "chk-1", Status: caslapi.OutcomePassed})
	})

	status, err := s.client.ScreenshotStatus(context.Background(), "CK7QX2M")
	s.Require().NoError(err)
	s.Equal(caslapi.StatusManualReview, status.Status)

	check, err := s.client.BackgroundCheckStatus(context.Background(), "chk-1")
	s.Require().NoError(err)
	s.Equal(caslapi.OutcomePassed, check.Status)
}

func (s *ClientSuite) TestMalformedResponse() {
	s.mux.HandleFunc("POST /social/verify", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})
	_, err := s.client.VerifySocialProfile(context.Background(), caslapi.SocialVerifyRequest{})
	s.Equal(CategoryBadData, CategoryOf(err))
}

func (s *ClientSuite) TestTimeout() {
	s.mux.HandleFunc("POST /phone/request", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	client := New(s.server.URL, WithTimeout(20*time.Millisecond))

	_, err := client.RequestPhoneCode(context.Background(), caslapi.PhoneCodeRequest{})
	s.Require().Error(err)
	s.Equal(CategoryTimeout, CategoryOf(err))
	s.True(IsRetryable(err))
}

func (s *ClientSuite) TestCircuitOpensOnOutages() {
	var calls atomic.Int32
	s.mux.HandleFunc("POST /verify-id", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	client := New(s.server.URL,
		WithHTTPClient(s.server.Client()),
		WithBreaker(circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))),
	)

	for range 2 {
		_, err := client.VerifyGovernmentID(context.Background(), caslapi.GovernmentIDRequest{})
		s.Equal(CategoryOutage, CategoryOf(err))
	}
	_, err := client.VerifyGovernmentID(context.Background(), caslapi.GovernmentIDRequest{})
	s.Equal(CategoryOutage, CategoryOf(err))
	s.Equal(int32(2), calls.Load(), "open circuit fails fast")
}

func (s *ClientSuite) TestClientErrorsDoNotTripCircuit() {
	s.mux.HandleFunc("POST /phone/verify", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, caslapi.ErrorBody{Message: "Invalid code"})
	})
	breaker := circuit.New("test", circuit.WithFailureThreshold(1))
	client := New(s.server.URL, WithHTTPClient(s.server.Client()), WithBreaker(breaker))

	for range 3 {
		_, err := client.VerifyPhoneCode(context.Background(), caslapi.PhoneVerifyRequest{Code: "000000"})
		s.Equal("Invalid code", Message(err))
	}
	s.Equal(circuit.StateClosed, breaker.State())
}
