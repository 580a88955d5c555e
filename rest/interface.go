package rest

import (
	"context"
	nethttp "net/http"
	"net/url"
	"time"
)

const (
	// DefaultTimeout is the default per-attempt request timeout
	DefaultTimeout = 60 * time.Second

	// DefaultMaxAttempts is the default number of physical attempts per logical operation
	DefaultMaxAttempts = 5

	// DefaultBaseDelay is the default delay between attempts
	DefaultBaseDelay = 10 * time.Second

	// DefaultUnauthorizedRetryDelay is the delay before the first retry of a 401 response
	DefaultUnauthorizedRetryDelay = time.Millisecond
)

// Transport performs a single HTTP exchange. It owns connection pooling,
// proxying, and TLS, is shared across concurrent operations, and must be safe
// for concurrent use. Close releases the pooled connections.
type Transport interface {
	Send(ctx context.Context, req *nethttp.Request) (*nethttp.Response, error)
	Close()
}

// Request describes one logical operation against the API.
type Request struct {
	// Path is joined onto the client's base URL
	Path string
	// Query holds the URL query parameters
	Query url.Values
	// Headers are per-operation headers; they override the client defaults
	Headers map[string]string
	// Body is serialized with the client codec when non-nil
	Body any
}

// RetryPolicy carries the constants governing the retry loop.
type RetryPolicy struct {
	MaxAttempts            int
	BaseDelay              time.Duration
	UnauthorizedRetryDelay time.Duration
}

// DefaultRetryPolicy returns the policy the SDK ships with.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:            DefaultMaxAttempts,
		BaseDelay:              DefaultBaseDelay,
		UnauthorizedRetryDelay: DefaultUnauthorizedRetryDelay,
	}
}

// Stats is a snapshot of client-level execution counters.
type Stats struct {
	// Calls is the number of logical operations executed
	Calls int64
	// Attempts is the number of physical attempts issued
	Attempts int64
	// RateLimitObservations counts 429 responses seen before a retry
	RateLimitObservations int64
}

// IsSuccessStatus checks if a status code represents success (2xx)
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
