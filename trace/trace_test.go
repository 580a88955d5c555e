package trace

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDContext(t *testing.T) {
	t.Run("round trips through context", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-123")
		id, ok := RequestIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "req-123", id)
	})

	t.Run("absent from bare context", func(t *testing.T) {
		_, ok := RequestIDFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("empty value is treated as absent", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "")
		_, ok := RequestIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestEnsureRequestID(t *testing.T) {
	t.Run("returns existing ID", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-456")
		assert.Equal(t, "req-456", EnsureRequestID(ctx))
	})

	t.Run("generates a UUID when absent", func(t *testing.T) {
		id := EnsureRequestID(context.Background())
		_, err := uuid.Parse(id)
		require.NoError(t, err)
	})
}

func TestTraceParentContext(t *testing.T) {
	ctx := WithTraceParent(context.Background(), "00-aa-bb-01")
	tp, ok := ParentFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "00-aa-bb-01", tp)

	_, ok = ParentFromContext(context.Background())
	assert.False(t, ok)
}

func TestGenerateTraceParent(t *testing.T) {
	format := regexp.MustCompile(`^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`)

	seen := make(map[string]struct{})
	for range 10 {
		tp := GenerateTraceParent()
		assert.Regexp(t, format, tp)
		seen[tp] = struct{}{}
	}
	// Random IDs should not repeat
	assert.Len(t, seen, 10)
}
