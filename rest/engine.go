package rest

import (
	"context"
	"errors"
	"io"
	"net"
	nethttp "net/http"
	"time"
)

// drainLimit caps how much of a discarded body is read before closing so the
// connection can be reused without buffering unbounded payloads.
const drainLimit = 4 << 10

// execute drives the Transport through the retry loop for one logical
// operation. It returns the terminal response (a success, or the last
// response once attempts are exhausted), or the classified failure when the
// loop aborts. Attempts are strictly sequential; each attempt's response is
// released before the next one starts.
func (c *Client) execute(ctx context.Context, method string, req *Request) (*nethttp.Response, *ErrorInfo) {
	if failure := validateRequest(req); failure != nil {
		return nil, failure
	}

	c.calls.Add(1)

	var resp *nethttp.Response
	for attempt := 1; ; attempt++ {
		httpReq, err := c.buildRequest(ctx, method, req)
		if err != nil {
			return nil, NewUnknownError("failed to build request", err)
		}

		c.logRequest(method, httpReq.URL.String(), attempt)
		c.attempts.Add(1)

		resp, err = c.transport.Send(ctx, httpReq)
		if err != nil {
			// Network-level faults are never retried
			return nil, classifyTransportError(err)
		}

		if IsSuccessStatus(resp.StatusCode) {
			return resp, nil
		}

		if attempt >= c.policy.MaxAttempts {
			// Attempts exhausted: pass the last response through unchanged so
			// the response handler classifies it by status.
			return resp, nil
		}

		delay := c.retryDelay(resp.StatusCode, attempt)
		drainAndClose(resp.Body)

		c.logger.Warn().
			Str("method", method).
			Int("status", resp.StatusCode).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("retrying request after delay")

		if err := c.sleep(ctx, delay); err != nil {
			return nil, NewUnknownError("request canceled while waiting to retry", err)
		}
	}
}

// retryDelay computes the suspension before the next attempt from the status
// of the one that just failed. attempt is 1-based.
func (c *Client) retryDelay(statusCode, attempt int) time.Duration {
	switch statusCode {
	case nethttp.StatusUnauthorized:
		// A first 401 often marks an auth-scheme negotiation round trip, not
		// a true failure; retry almost immediately once.
		if attempt == 1 {
			return c.policy.UnauthorizedRetryDelay
		}
		return c.policy.BaseDelay
	case nethttp.StatusTooManyRequests:
		c.rateLimited.Add(1)
		return c.policy.BaseDelay
	default:
		return c.policy.BaseDelay
	}
}

// classifyTransportError maps a fault raised while issuing the request.
// Name-resolution failures mean the network is unavailable; cancellation and
// everything else surface as unknown with the original cause preserved.
func classifyTransportError(err error) *ErrorInfo {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NewNetworkUnavailableError("name resolution failed", err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewUnknownError("request canceled", err)
	}
	return NewUnknownError("request execution failed", err)
}

// drainAndClose releases one attempt's response before the next attempt
func drainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, drainLimit))
	_ = body.Close()
}

// logRequest logs the outgoing attempt
func (c *Client) logRequest(method, target string, attempt int) {
	c.logger.Info().
		Str("direction", "outbound").
		Str("method", method).
		Str("url", target).
		Int("attempt", attempt).
		Msg("REST client request")
}
