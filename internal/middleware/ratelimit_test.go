package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestTokenBucket_ResetsEachSecond(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tb := NewTokenBucket(2)
	tb.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := tb.Allow(ctx, "")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := tb.Allow(ctx, "")
	assert.False(t, ok)

	now = now.Add(time.Second)
	ok, _ = tb.Allow(ctx, "")
	assert.True(t, ok)
}

func TestRedisWindow_PerVisitor(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	rw := NewRedisWindow(rc, 1)
	rw.now = fixedClock(time.Unix(1_700_000_000, 0))
	ctx := context.Background()

	ok, err := rw.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rw.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = rw.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, mr.Exists("rl:10.0.0.1:1700000000"))
	assert.Greater(t, mr.TTL("rl:10.0.0.1:1700000000"), time.Duration(0))
}

func TestRateLimit_Rejects(t *testing.T) {
	tb := NewTokenBucket(1)
	tb.now = fixedClock(time.Unix(1_700_000_000, 0))
	tb.lastSec = 1_700_000_000
	h := RateLimit(tb, "local", nil)(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/zodiac", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/zodiac", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimit_RedisDownFallsBackToLocal(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rc.Close() })
	mr.Close()

	local := NewTokenBucket(1)
	local.now = fixedClock(time.Unix(1_700_000_000, 0))
	local.lastSec = 1_700_000_000
	h := RateLimit(NewRedisWindow(rc, 100), "redis", local)(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestWrap_DisabledByDefault(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	h := Wrap(okHandler, nil)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestWrap_EnabledWithQPS(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_QPS", "1")
	h := Wrap(okHandler, nil)
	codes := map[int]int{}
	// 同一秒内至多放行 1 次；跨秒边界时可能放行 2 次
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[rec.Code]++
	}
	assert.Positive(t, codes[http.StatusTooManyRequests])
}
