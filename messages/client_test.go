package messages

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/go-restkit/logger"
	"github.com/gaborage/go-restkit/rest"
)

func newTestClient(t *testing.T, handler nethttp.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	restClient, err := rest.NewBuilder(logger.Nop()).
		WithBaseURL(server.URL).
		WithHTTPClient(server.Client()).
		WithBearerToken("test-token").
		WithRetryPolicy(rest.RetryPolicy{
			MaxAttempts:            3,
			BaseDelay:              time.Millisecond,
			UnauthorizedRetryDelay: time.Millisecond,
		}).
		Build()
	require.NoError(t, err)
	t.Cleanup(restClient.Close)

	return NewClient(restClient), server
}

func TestList(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "conv-1", r.URL.Query().Get("conversationId"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Page{
			Items: []Message{
				{ID: "m1", ConversationID: "conv-1", Text: "first"},
				{ID: "m2", ConversationID: "conv-1", Text: "second"},
			},
			NextCursor: "cur-3",
		})
	}))

	result := client.List(context.Background(), ListOptions{ConversationID: "conv-1", Limit: 2})

	page, err := result.Unwrap()
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "m1", page.Items[0].ID)
	assert.Equal(t, "cur-3", page.NextCursor)
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, "/messages/m1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(Message{ID: "m1", Text: "hello"})
		}))

		message, err := client.Get(context.Background(), "m1").Unwrap()
		require.NoError(t, err)
		assert.Equal(t, "hello", message.Text)
	})

	t.Run("not found surfaces as http failure", func(t *testing.T) {
		client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
			nethttp.Error(w, "no such message", nethttp.StatusNotFound)
		}))

		result := client.Get(context.Background(), "missing")
		require.True(t, result.IsFaulted())
		assert.Equal(t, rest.KindHTTP, result.Failure().Kind())
		assert.Equal(t, nethttp.StatusNotFound, result.Failure().StatusCode())
	})

	t.Run("IDs are path escaped", func(t *testing.T) {
		client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, "/messages/a%2Fb", r.URL.EscapedPath())
			w.WriteHeader(nethttp.StatusOK)
			_, _ = w.Write([]byte(`{"id":"a/b"}`))
		}))

		message, err := client.Get(context.Background(), "a/b").Unwrap()
		require.NoError(t, err)
		assert.Equal(t, "a/b", message.ID)
	})
}

func TestSend(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var draft Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			nethttp.Error(w, err.Error(), nethttp.StatusBadRequest)
			return
		}
		assert.Equal(t, "conv-1", draft.ConversationID)

		w.WriteHeader(nethttp.StatusCreated)
		_ = json.NewEncoder(w).Encode(Message{ID: "m9", ConversationID: draft.ConversationID, Text: draft.Text})
	}))

	message, err := client.Send(context.Background(), Draft{ConversationID: "conv-1", Text: "hi"}).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, "m9", message.ID)
	assert.Equal(t, "hi", message.Text)
}

func TestDelete(t *testing.T) {
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodDelete, r.Method)
		w.WriteHeader(nethttp.StatusNoContent)
	}))

	result := client.Delete(context.Background(), "m1")
	assert.False(t, result.IsFaulted())
}

func TestSendRetriesTransientFailures(t *testing.T) {
	var hits atomic.Int64
	client, _ := newTestClient(t, nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(nethttp.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(Message{ID: "m1"})
	}))

	message, err := client.Send(context.Background(), Draft{Text: "eventually"}).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, "m1", message.ID)
	assert.Equal(t, int64(3), hits.Load())
}
