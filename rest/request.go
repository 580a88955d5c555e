package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	nethttp "net/http"

	"github.com/gaborage/go-restkit/trace"
)

// buildRequest assembles a transport-ready request from a logical operation.
// It is called once per attempt so request bodies are always re-sent from the
// serialized bytes.
func (c *Client) buildRequest(ctx context.Context, method string, req *Request) (*nethttp.Request, error) {
	target := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	var contentType string
	if req.Body != nil {
		data, err := c.codec.Serialize(req.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		contentType = c.codec.ContentType()
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	c.applyHeaders(ctx, httpReq, req, contentType)
	return httpReq, nil
}

// applyHeaders layers defaults, per-operation headers, auth, and correlation
// headers onto the outgoing request.
func (c *Client) applyHeaders(ctx context.Context, httpReq *nethttp.Request, req *Request, contentType string) {
	// Defaults first, then per-operation headers override them
	for key, value := range c.defaultHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", c.codec.ContentType())
	}

	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	if httpReq.Header.Get(trace.HeaderXRequestID) == "" {
		httpReq.Header.Set(trace.HeaderXRequestID, trace.EnsureRequestID(ctx))
	}
	if httpReq.Header.Get(trace.HeaderTraceParent) == "" {
		if parent, ok := trace.ParentFromContext(ctx); ok {
			httpReq.Header.Set(trace.HeaderTraceParent, parent)
		} else {
			httpReq.Header.Set(trace.HeaderTraceParent, trace.GenerateTraceParent())
		}
	}
}

// validateRequest validates the logical operation before any attempt
func validateRequest(req *Request) *ErrorInfo {
	if req == nil {
		return NewUnknownError("request cannot be nil", nil)
	}
	return nil
}
