package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-simulator/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"items":[]}`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, `{"items":[]}`, string(body))

	_, _, _, ok = decodePayload(bs[:5])
	assert.False(t, ok)
}

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/venues/:id/seats")
	return c
}

func TestCacheKeySeparatesPathParams(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	a := cacheKey(cfg, newContext("/v1/venues/1/seats"))
	b := cacheKey(cfg, newContext("/v1/venues/2/seats"))
	c := cacheKey(cfg, newContext("/v1/venues/1/seats?zone=vip"))
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, cacheKey(cfg, newContext("/v1/venues/1/seats")))
	assert.Regexp(t, `^cache:[0-9a-f]{40}$`, a)
}

func TestRateKey(t *testing.T) {
	c := newContext("/v1/venues/1/seats")
	assert.Equal(t, "rl:ip:10.0.0.7", rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c))
	assert.Equal(t, "rl:ip:10.0.0.7:route:GET /v1/venues/:id/seats",
		rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}, c))
}

func TestDisabledMiddlewarePassesThrough(t *testing.T) {
	called := 0
	next := func(c echo.Context) error { called++; return c.String(http.StatusOK, "ok") }

	c := newContext("/v1/venues")
	require.NoError(t, NewRedisCache(config.CacheConfig{Enabled: true}, nil, nil)(next)(c))
	require.NoError(t, NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, nil)(next)(c))
	assert.Equal(t, 2, called)
	assert.Empty(t, c.Response().Header().Get("X-Cache"))
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, err := cw.Write([]byte("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, "abcdef", rec.Body.String())
	assert.Equal(t, "abcd", cw.buf.String())
	assert.True(t, cw.truncated())
}
