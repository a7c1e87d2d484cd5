// Package tracer is a small tracing abstraction so verification code can emit
// spans without importing OpenTelemetry directly.
//
// Implementations:
//   - NoopTracer: tests
//   - OTelTracer: OpenTelemetry adapter
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span; a non-nil err marks it failed.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }
func Bool(key string, value bool) Attribute { return Attribute{Key: key, Value: value} }
func Int64(key string, value int64) Attribute { return Attribute{Key: key, Value: value} }
func Int(key string, value int) Attribute { return Attribute{Key: key, Value: int64(value)} }

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanAPIRequest = "caslapi.request"
)

// Attribute keys.
const (
	AttrEndpoint   = "caslapi.endpoint"
	AttrMethod     = "http.method"
	AttrStatusCode = "http.status_code"
	AttrCategory   = "error.category"
	AttrCircuit    = "circuit.state"
)
