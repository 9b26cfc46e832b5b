package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoreFile, cfg.Store.Kind)
	assert.Equal(t, "data", cfg.Store.Dir)
	assert.Equal(t, DefaultAPIBaseURL, cfg.Source.BaseURL())
	assert.Equal(t, 15*time.Second, cfg.Source.HTTPTimeout)
	assert.Equal(t, "venue.sales", cfg.Queue.Name)
	assert.False(t, cfg.Queue.Enabled)
	assert.True(t, cfg.Cache.Caches("get"))
	assert.False(t, cfg.Cache.Caches("POST"))
	assert.Equal(t, "localhost:6379", cfg.Redis.address())
}

func TestOverrides(t *testing.T) {
	t.Setenv("VENUESIM_STORE", "redis")
	t.Setenv("VENUESIM_API_BASE_URL", "http://example.test/data/")
	t.Setenv("VENUESIM_CACHE_METHODS", "GET,HEAD")
	t.Setenv("VENUESIM_REDIS_HOST", "cache")
	t.Setenv("VENUESIM_REDIS_PORT", "6380")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.Store.Kind)
	assert.Equal(t, "http://example.test/data", cfg.Source.BaseURL())
	assert.True(t, cfg.Cache.Caches("HEAD"))
	assert.Equal(t, "cache:6380", cfg.Redis.address())
}

func TestUnknownStore(t *testing.T) {
	t.Setenv("VENUESIM_STORE", "s3")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestRateLimitNormalized(t *testing.T) {
	r := RateLimitConfig{TTL: time.Second}.Normalized()
	assert.Equal(t, 1, r.Capacity)
	assert.Equal(t, 1, r.RefillTokens)
	assert.Equal(t, time.Second, r.RefillInterval)
	assert.Equal(t, 5*time.Second, r.TTL)
}
