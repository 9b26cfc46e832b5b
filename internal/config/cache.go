package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching will be disabled.
// Methods lists the HTTP methods to cache. KeyStrategy determines which parts
// of the request contribute to the cache key.
type CacheConfig struct {
	Enabled      bool          `envconfig:"VENUESIM_CACHE_ENABLED" default:"true"`
	Methods      []string      `envconfig:"VENUESIM_CACHE_METHODS" default:"GET"`
	TTL          time.Duration `envconfig:"VENUESIM_CACHE_TTL" default:"30s"`
	KeyStrategy  string        `envconfig:"VENUESIM_CACHE_KEY_STRATEGY" default:"route_query"`
	Prefix       string        `envconfig:"VENUESIM_CACHE_PREFIX" default:"cache"`
	MaxBodyBytes int           `envconfig:"VENUESIM_CACHE_MAX_BODY_BYTES" default:"1048576"`
}

// Caches reports whether responses to method are cached.
func (c CacheConfig) Caches(method string) bool {
	for _, m := range c.Methods {
		if strings.EqualFold(strings.TrimSpace(m), method) {
			return true
		}
	}
	return false
}

// RateLimitConfig drives the token bucket in front of the report API.
type RateLimitConfig struct {
	Enabled        bool          `envconfig:"VENUESIM_RATE_LIMIT_ENABLED" default:"true"`
	Capacity       int           `envconfig:"VENUESIM_RATE_LIMIT_CAPACITY" default:"60"`
	RefillTokens   int           `envconfig:"VENUESIM_RATE_LIMIT_REFILL_TOKENS" default:"1"`
	RefillInterval time.Duration `envconfig:"VENUESIM_RATE_LIMIT_REFILL_INTERVAL" default:"1s"`
	TTL            time.Duration `envconfig:"VENUESIM_RATE_LIMIT_TTL" default:"10m"`
	KeyStrategy    string        `envconfig:"VENUESIM_RATE_LIMIT_KEY_STRATEGY" default:"ip_route"`
	Prefix         string        `envconfig:"VENUESIM_RATE_LIMIT_PREFIX" default:"rl"`
}

// Normalized clamps the bucket settings to usable values.
func (r RateLimitConfig) Normalized() RateLimitConfig {
	if r.Capacity < 1 {
		r.Capacity = 1
	}
	if r.RefillTokens < 1 {
		r.RefillTokens = 1
	}
	if r.RefillInterval <= 0 {
		r.RefillInterval = time.Second
	}
	if minTTL := 5 * r.RefillInterval; r.TTL < minTTL {
		r.TTL = minTTL
	}
	return r
}
