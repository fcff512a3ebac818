package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCooldownRemaining(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCooldownStore()
	start := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return start }

	remaining, err := CooldownRemaining(ctx, store, 7, time.Minute, start)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	require.NoError(t, store.Mark(ctx, 7, start, time.Minute))

	remaining, err = CooldownRemaining(ctx, store, 7, time.Minute, start.Add(20*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 40*time.Second, remaining)

	remaining, err = CooldownRemaining(ctx, store, 7, time.Minute, start.Add(61*time.Second))
	require.NoError(t, err)
	assert.Zero(t, remaining)

	remaining, err = CooldownRemaining(ctx, store, 8, time.Minute, start)
	require.NoError(t, err)
	assert.Zero(t, remaining, "cooldowns are per user")
}

func TestMemoryCooldownStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCooldownStore()
	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Mark(ctx, 1, now, time.Minute))
	require.NoError(t, store.Mark(ctx, 2, now, time.Hour))

	now = now.Add(2 * time.Minute)
	_, ok, err := store.LastAt(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	at, ok, err := store.LastAt(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, now.Add(-2*time.Minute), at)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, store.Purge())
}

func TestRedisCooldownKey(t *testing.T) {
	client := NewRedisClient("127.0.0.1:6379", "", 0)
	defer client.Close()

	assert.Equal(t, "cooldown:42", NewRedisCooldownStore(client, "").key(42))
	assert.Equal(t, "pw:42", NewRedisCooldownStore(client, "pw").key(42))
}
