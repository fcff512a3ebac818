package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("JWT_EXPIRY", "86400")
	t.Setenv("PASSWORD_COOLDOWN", "60s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.EqualValues(t, 86400, cfg.JWTExpiry)
	assert.Equal(t, time.Minute, cfg.PasswordCooldown)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "3600")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("PASSWORD_COOLDOWN", "90s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.0001)
	assert.Equal(t, 90*time.Second, cfg.PasswordCooldown)
}

func TestLoadRejectsUnsafeProductionConfig(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("JWT_EXPIRY", "3600")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "real")
	t.Setenv("JWT_EXPIRY", "0")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "0")
	_, err := Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_RPS")

	t.Setenv("RATE_LIMIT_RPS", "-1")
	_, err = Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_RPS")

	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_BURST")
}
