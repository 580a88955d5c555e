// Package messages provides the typed client for the messages resource. It
// is a thin call site over the rest execution engine: every method maps the
// resource to a URL, hands the operation to the engine, and returns the
// result envelope untouched.
package messages

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gaborage/go-restkit/rest"
)

const basePath = "messages"

// Client exposes the messages resource of the API.
type Client struct {
	rest *rest.Client
}

// NewClient wraps an execution client. The rest client stays owned by the
// caller; closing it invalidates this client too.
func NewClient(restClient *rest.Client) *Client {
	return &Client{rest: restClient}
}

// List returns one page of messages matching the options.
func (c *Client) List(ctx context.Context, opts ListOptions) rest.Result[Page] {
	query := url.Values{}
	if opts.ConversationID != "" {
		query.Set("conversationId", opts.ConversationID)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}

	return rest.Get[Page](ctx, c.rest, &rest.Request{Path: basePath, Query: query})
}

// Get returns a single message by ID.
func (c *Client) Get(ctx context.Context, id string) rest.Result[Message] {
	return rest.Get[Message](ctx, c.rest, &rest.Request{Path: basePath + "/" + url.PathEscape(id)})
}

// Send creates a new message from the draft and returns the stored resource.
func (c *Client) Send(ctx context.Context, draft Draft) rest.Result[Message] {
	return rest.Post[Message](ctx, c.rest, &rest.Request{Path: basePath, Body: draft})
}

// Delete removes a message by ID.
func (c *Client) Delete(ctx context.Context, id string) rest.Result[rest.Empty] {
	return rest.Delete[rest.Empty](ctx, c.rest, &rest.Request{Path: basePath + "/" + url.PathEscape(id)})
}
