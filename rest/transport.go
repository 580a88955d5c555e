package rest

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// httpTransport is the net/http-backed Transport. The wrapped client and its
// connection pool live for the lifetime of the SDK client and are shared by
// all concurrent operations.
type httpTransport struct {
	client  *nethttp.Client
	limiter *rate.Limiter
}

var _ Transport = (*httpTransport)(nil)

// newHTTPTransport builds a pooled transport with an optional proxy and an
// optional client-side throttle. A requestsPerSecond <= 0 disables the
// throttle.
func newHTTPTransport(timeout time.Duration, proxyURL string, requestsPerSecond, burst int) (*httpTransport, error) {
	pool := nethttp.DefaultTransport.(*nethttp.Transport).Clone()
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		pool.Proxy = nethttp.ProxyURL(parsed)
	}

	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		if burst <= 0 {
			burst = requestsPerSecond
		}
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}

	return &httpTransport{
		client: &nethttp.Client{
			Transport: pool,
			Timeout:   timeout,
		},
		limiter: limiter,
	}, nil
}

// Send performs one HTTP exchange. When throttling is enabled it waits for a
// token first, honoring the caller's context.
func (t *httpTransport) Send(ctx context.Context, req *nethttp.Request) (*nethttp.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return t.client.Do(req.WithContext(ctx))
}

// Close releases the pooled connections. The transport must not be used
// afterwards.
func (t *httpTransport) Close() {
	t.client.CloseIdleConnections()
}

// clientTransport adapts a caller-supplied *http.Client to the Transport
// contract, for callers that need full control over the underlying client.
type clientTransport struct {
	client *nethttp.Client
}

func (t *clientTransport) Send(ctx context.Context, req *nethttp.Request) (*nethttp.Response, error) {
	return t.client.Do(req.WithContext(ctx))
}

func (t *clientTransport) Close() {
	t.client.CloseIdleConnections()
}
