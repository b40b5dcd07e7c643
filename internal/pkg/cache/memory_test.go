package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlocklist(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	bl := NewMemoryBlocklist()
	bl.now = func() time.Time { return now }

	blocked, err := bl.IsBlocked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, bl.Block(ctx, "token-a", time.Minute))
	blocked, _ = bl.IsBlocked(ctx, "token-a")
	assert.True(t, blocked)

	blocked, _ = bl.IsBlocked(ctx, "token-b")
	assert.False(t, blocked)

	now = now.Add(2 * time.Minute)
	blocked, _ = bl.IsBlocked(ctx, "token-a")
	assert.False(t, blocked, "entry should expire with its ttl")
}

func TestMemoryBlocklist_SkipsExpiredTokens(t *testing.T) {
	bl := NewMemoryBlocklist()
	require.NoError(t, bl.Block(context.Background(), "expired", 0))
	assert.Empty(t, bl.entries)
}

func TestTokenKey_DoesNotLeakToken(t *testing.T) {
	key := tokenKey("secret.jwt.value")
	assert.NotContains(t, key, "secret")
	assert.Equal(t, key, tokenKey("secret.jwt.value"))
}
