package rest

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/gaborage/go-restkit/config"
	"github.com/gaborage/go-restkit/logger"
)

// Client executes logical operations against one API. It owns the Transport
// for its full lifetime; callers release it with Close. A Client is safe for
// concurrent use; each operation owns its own retry state.
type Client struct {
	transport      Transport
	codec          Codec
	logger         logger.Logger
	mapper         ErrorMapper
	policy         RetryPolicy
	baseURL        *url.URL
	token          string
	defaultHeaders map[string]string

	// sleep is swapped in tests to observe the computed delays
	sleep func(ctx context.Context, d time.Duration) error

	calls       atomic.Int64
	attempts    atomic.Int64
	rateLimited atomic.Int64
}

// Builder provides a fluent interface for configuring the client
type Builder struct {
	log               logger.Logger
	baseURL           string
	token             string
	proxyURL          string
	timeout           time.Duration
	policy            RetryPolicy
	requestsPerSecond int
	burst             int
	defaultHeaders    map[string]string
	codec             Codec
	mapper            ErrorMapper
	transport         Transport
	httpClient        *nethttp.Client
}

// NewBuilder creates a new client builder with default configuration
func NewBuilder(log logger.Logger) *Builder {
	if log == nil {
		log = logger.Nop()
	}
	return &Builder{
		log:            log,
		timeout:        DefaultTimeout,
		policy:         DefaultRetryPolicy(),
		defaultHeaders: make(map[string]string),
		codec:          JSONCodec{},
		mapper:         DefaultErrorMapper,
	}
}

// WithBaseURL sets the API root every operation path is joined onto
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.baseURL = baseURL
	return b
}

// WithBearerToken sets the bearer token injected on every request
func (b *Builder) WithBearerToken(token string) *Builder {
	b.token = token
	return b
}

// WithProxy routes all requests through the given proxy URL
func (b *Builder) WithProxy(proxyURL string) *Builder {
	b.proxyURL = proxyURL
	return b
}

// WithTimeout sets the per-attempt request timeout
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	if timeout > 0 {
		b.timeout = timeout
	}
	return b
}

// WithRetryPolicy replaces the default retry policy
func (b *Builder) WithRetryPolicy(policy RetryPolicy) *Builder {
	if policy.MaxAttempts > 0 {
		b.policy = policy
	}
	return b
}

// WithRateLimit enables the client-side throttle. A requestsPerSecond <= 0
// leaves throttling disabled.
func (b *Builder) WithRateLimit(requestsPerSecond, burst int) *Builder {
	b.requestsPerSecond = requestsPerSecond
	b.burst = burst
	return b
}

// WithDefaultHeader adds a header sent with all requests
func (b *Builder) WithDefaultHeader(key, value string) *Builder {
	b.defaultHeaders[key] = value
	return b
}

// WithCodec replaces the JSON codec
func (b *Builder) WithCodec(codec Codec) *Builder {
	if codec != nil {
		b.codec = codec
	}
	return b
}

// WithErrorMapper replaces the default terminal-response classification
func (b *Builder) WithErrorMapper(mapper ErrorMapper) *Builder {
	if mapper != nil {
		b.mapper = mapper
	}
	return b
}

// WithTransport replaces the network transport. Proxy, timeout, and rate
// limit settings on the builder are ignored when a transport is supplied.
func (b *Builder) WithTransport(transport Transport) *Builder {
	b.transport = transport
	return b
}

// WithHTTPClient uses a caller-supplied *http.Client as the transport
func (b *Builder) WithHTTPClient(client *nethttp.Client) *Builder {
	b.httpClient = client
	return b
}

// Build creates the client with the configured options
func (b *Builder) Build() (*Client, error) {
	if b.baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	baseURL, err := url.Parse(b.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute: %s", b.baseURL)
	}

	transport := b.transport
	if transport == nil {
		if b.httpClient != nil {
			transport = &clientTransport{client: b.httpClient}
		} else {
			transport, err = newHTTPTransport(b.timeout, b.proxyURL, b.requestsPerSecond, b.burst)
			if err != nil {
				return nil, err
			}
		}
	}

	return &Client{
		transport:      transport,
		codec:          b.codec,
		logger:         b.log,
		mapper:         b.mapper,
		policy:         b.policy,
		baseURL:        baseURL,
		token:          b.token,
		defaultHeaders: b.defaultHeaders,
		sleep:          sleepContext,
	}, nil
}

// NewClientFromConfig builds a client from loaded configuration
func NewClientFromConfig(cfg *config.Config, log logger.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return NewBuilder(log).
		WithBaseURL(cfg.API.BaseURL).
		WithBearerToken(cfg.API.Token).
		WithProxy(cfg.API.ProxyURL).
		WithTimeout(cfg.HTTP.Timeout).
		WithRetryPolicy(RetryPolicy{
			MaxAttempts:            cfg.Retry.MaxAttempts,
			BaseDelay:              cfg.Retry.BaseDelay,
			UnauthorizedRetryDelay: cfg.Retry.UnauthorizedRetryDelay,
		}).
		WithRateLimit(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst).
		Build()
}

// Close releases the underlying transport. The client must not be used
// afterwards.
func (c *Client) Close() {
	c.transport.Close()
}

// Stats returns a snapshot of the execution counters
func (c *Client) Stats() Stats {
	return Stats{
		Calls:                 c.calls.Load(),
		Attempts:              c.attempts.Load(),
		RateLimitObservations: c.rateLimited.Load(),
	}
}

// sleepContext suspends for d, aborting early when the context is done
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
