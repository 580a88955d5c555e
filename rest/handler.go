package rest

import (
	"context"
	"io"
	nethttp "net/http"
)

// Execute runs one logical operation end to end and returns the result
// envelope. It never returns a Go error: transient failures are retried per
// the client policy and every terminal failure is captured in the envelope.
func Execute[T any](ctx context.Context, c *Client, method string, req *Request) Result[T] {
	resp, failure := c.execute(ctx, method, req)
	if failure != nil {
		c.logger.Error().
			Str("method", method).
			Str("kind", string(failure.Kind())).
			Err(failure).
			Msg("REST client operation failed")
		return Failure[T](failure)
	}
	return handleResponse[T](c, resp)
}

// Get executes a GET operation
func Get[T any](ctx context.Context, c *Client, req *Request) Result[T] {
	return Execute[T](ctx, c, nethttp.MethodGet, req)
}

// Post executes a POST operation
func Post[T any](ctx context.Context, c *Client, req *Request) Result[T] {
	return Execute[T](ctx, c, nethttp.MethodPost, req)
}

// Put executes a PUT operation
func Put[T any](ctx context.Context, c *Client, req *Request) Result[T] {
	return Execute[T](ctx, c, nethttp.MethodPut, req)
}

// Patch executes a PATCH operation
func Patch[T any](ctx context.Context, c *Client, req *Request) Result[T] {
	return Execute[T](ctx, c, nethttp.MethodPatch, req)
}

// Delete executes a DELETE operation
func Delete[T any](ctx context.Context, c *Client, req *Request) Result[T] {
	return Execute[T](ctx, c, nethttp.MethodDelete, req)
}

// Empty is the payload type for operations whose success response carries no
// body.
type Empty struct{}

// handleResponse converts the terminal response into a result envelope. The
// response body is released exactly once on every path.
func handleResponse[T any](c *Client, resp *nethttp.Response) Result[T] {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failure[T](NewUnknownError("failed to read response body", err))
	}

	if !IsSuccessStatus(resp.StatusCode) {
		failure := c.mapper(resp.StatusCode, body)
		c.logResponse(resp.StatusCode, len(body))
		return Failure[T](failure)
	}

	var content T
	if len(body) > 0 {
		if err := c.codec.Deserialize(body, &content); err != nil {
			return Failure[T](NewUnknownError("failed to decode response body", err))
		}
	}

	c.logResponse(resp.StatusCode, len(body))
	return Success(content)
}

// logResponse logs the terminal response
func (c *Client) logResponse(statusCode, bodyLen int) {
	c.logger.Info().
		Str("direction", "inbound").
		Int("status", statusCode).
		Int("body_bytes", bodyLen).
		Msg("REST client response")
}
