// Package apiclient talks JSON over HTTP to the CASL Key verification backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"caslkey/contracts/caslapi"
	"caslkey/internal/apiclient/metrics"
	"caslkey/internal/platform/tracer"
	"caslkey/pkg/platform/circuit"
)

const defaultTimeout = 10 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the verification backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    HTTPDoer
	breaker *circuit.Breaker
	tracer  tracer.Tracer
	metrics *metrics.Metrics
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.http = doer
	}
}

// WithAPIKey sends key in the X-API-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout bounds every call. Default is 10s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
		tracer:  tracer.NewNoop(),
		breaker: circuit.New("caslapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends in as the JSON body (if non-nil) and decodes a 2xx response into out.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, in, out any) (err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, tracer.SpanAPIRequest,
		tracer.String(tracer.AttrEndpoint, endpoint),
		tracer.String(tracer.AttrMethod, method),
	)
	defer func() {
		if err != nil {
			category := CategoryOf(err)
			span.SetAttributes(tracer.String(tracer.AttrCategory, string(category)))
			if c.metrics != nil {
				c.metrics.IncrementError(endpoint, string(category))
			}
		}
		if c.metrics != nil {
			c.metrics.ObserveRequest(endpoint, start)
		}
		span.End(err)
	}()

	if c.breaker != nil && !c.breaker.Allow() {
		span.SetAttributes(tracer.String(tracer.AttrCircuit, circuit.StateOpen.String()))
		return newError(CategoryOutage, endpoint, "Verification service is temporarily unavailable. Please try again shortly.", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, method, endpoint, query, in)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := classifyTransportError(ctx, endpoint, err)
		c.recordOutcome(apiErr)
		return apiErr
	}
	defer resp.Body.Close()
	span.SetAttributes(tracer.Int(tracer.AttrStatusCode, resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		apiErr := newError(CategoryOutage, endpoint, "Failed to read verification service response", err)
		c.recordOutcome(apiErr)
		return apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := classifyStatus(endpoint, resp.StatusCode, body)
		c.recordOutcome(apiErr)
		return apiErr
	}
	c.recordOutcome(nil)

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newError(CategoryBadData, endpoint, "Unexpected response from verification service", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, query url.Values, in any) (*http.Request, error) {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, newError(CategoryInternal, endpoint, "failed to marshal request", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, newError(CategoryInternal, endpoint, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	return req, nil
}

// recordOutcome feeds the breaker. Only transient failures count against it;
// a 4xx means the backend is up.
func (c *Client) recordOutcome(err *Error) {
	if c.breaker == nil {
		return
	}
	if err != nil && err.Retryable {
		if change := c.breaker.RecordFailure(); change.Opened && c.metrics != nil {
			c.metrics.IncrementCircuitOpen()
		}
		return
	}
	c.breaker.RecordSuccess()
}

func classifyTransportError(ctx context.Context, endpoint string, err error) *Error {
	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return newError(CategoryTimeout, endpoint, "The verification service took too long to respond", err)
	}
	if errors.Is(err, context.Canceled) {
		return newError(CategoryInternal, endpoint, "request cancelled", err)
	}
	return newError(CategoryOutage, endpoint, "Unable to reach the verification service", err)
}

// classifyStatus surfaces the backend message when present and falls back to
// "API Error: <status>".
func classifyStatus(endpoint string, status int, body []byte) *Error {
	message := fmt.Sprintf("API Error: %d", status)
	var errBody caslapi.ErrorBody
	if json.Unmarshal(body, &errBody) == nil && strings.TrimSpace(errBody.Message) != "" {
		message = errBody.Message
	}

	var category Category
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		category = CategoryBadData
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		category = CategoryAuthentication
	case status == http.StatusNotFound:
		category = CategoryNotFound
	case status == http.StatusConflict:
		category = CategoryRejected
	case status == http.StatusTooManyRequests:
		category = CategoryRateLimited
	case status == http.StatusGatewayTimeout:
		category = CategoryTimeout
	case status >= 500:
		category = CategoryOutage
	default:
		category = CategoryInternal
	}
	apiErr := newError(category, endpoint, message, nil)
	apiErr.Status = status
	return apiErr
}
