package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowHonoursBurstPerKey(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(1, 2)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)

	ok, wait := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))
	assert.LessOrEqual(t, wait, time.Second)

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok, "other keys have their own bucket")

	now = now.Add(time.Second)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)
}

func TestZeroRateDeniesOnceBurstIsSpent(t *testing.T) {
	rl := NewRateLimiter(0, 0)

	ok, _ := rl.Allow("k")
	assert.True(t, ok)
	ok, wait := rl.Allow("k")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)
}

func TestZeroRateKeepsDenyingWithShortRetry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(0, 2)
	rl.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, _ := rl.Allow("k")
		assert.True(t, ok)
	}
	for i := 0; i < 3; i++ {
		now = now.Add(time.Hour)
		ok, wait := rl.Allow("k")
		assert.False(t, ok)
		assert.Equal(t, time.Second, wait)
	}
}

func TestNegativeRateIsTreatedAsZero(t *testing.T) {
	rl := NewRateLimiter(-5, 1)

	ok, _ := rl.Allow("k")
	assert.True(t, ok)
	ok, wait := rl.Allow("k")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)
}

func TestCleanupDropsIdleVisitors(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(5, 5)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(10 * time.Minute)
	rl.Allow("fresh")

	assert.Equal(t, 1, rl.Cleanup(5*time.Minute))
	assert.Equal(t, 1, rl.Size())
}
