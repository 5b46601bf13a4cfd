package middleware

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"zodiac-api/internal/logger"
	"zodiac-api/internal/metrics"
)

// Limiter：按键判断本次请求是否放行
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// TokenBucket：进程内每秒令牌桶，所有访客共享一个桶
// 约束：不排队，超额直接拒绝；每个整秒重置
type TokenBucket struct {
	capacity int
	tokens   int
	lastSec  int64
	now      func() time.Time
	mu       sync.Mutex
}

func NewTokenBucket(qps int) *TokenBucket {
	return &TokenBucket{capacity: qps, tokens: qps, lastSec: time.Now().Unix(), now: time.Now}
}

func (tb *TokenBucket) Allow(_ context.Context, _ string) (bool, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	nowSec := tb.now().Unix()
	if tb.lastSec != nowSec {
		tb.lastSec = nowSec
		tb.tokens = tb.capacity
	}
	if tb.tokens > 0 {
		tb.tokens--
		return true, nil
	}
	return false, nil
}

// RedisWindow：基于 Redis INCR 的每访客每秒固定窗口，多实例部署时共享计数
type RedisWindow struct {
	rc     *redis.Client
	limit  int
	prefix string
	now    func() time.Time
}

func NewRedisWindow(rc *redis.Client, limit int) *RedisWindow {
	return &RedisWindow{rc: rc, limit: limit, prefix: "rl:", now: time.Now}
}

func (rw *RedisWindow) key(visitor string) string {
	return rw.prefix + visitor + ":" + strconv.FormatInt(rw.now().Unix(), 10)
}

// Allow：Redis 异常时返回 (true, err)，由调用方决定是否降级
func (rw *RedisWindow) Allow(ctx context.Context, visitor string) (bool, error) {
	k := rw.key(visitor)
	pipe := rw.rc.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, 2*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return incr.Val() <= int64(rw.limit), nil
}

// RateLimit：primary 出错时降级到 fallback；fallback 为 nil 时放行
func RateLimit(primary Limiter, primaryName string, fallback Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			visitor := VisitorIP(r)
			backend := primaryName
			ok, err := primary.Allow(ctx, visitor)
			if err != nil {
				logger.L().Warn("rate_limit_backend_error", "backend", primaryName, "err", err)
				ok, backend = true, "local"
				if fallback != nil {
					ok, _ = fallback.Allow(ctx, visitor)
				}
			}
			if !ok {
				metrics.RateLimitedTotal.WithLabelValues(backend).Inc()
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Wrap：RATE_LIMIT_ENABLED=true 时启用限流，RATE_LIMIT_QPS 默认 200
// rc 非空时按访客在 Redis 中计数，否则使用进程内令牌桶
func Wrap(next http.Handler, rc *redis.Client) http.Handler {
	if os.Getenv("RATE_LIMIT_ENABLED") != "true" {
		return next
	}
	qps := 200
	if s := os.Getenv("RATE_LIMIT_QPS"); s != "" {
		if n, e := strconv.Atoi(s); e == nil && n > 0 {
			qps = n
		}
	}
	local := NewTokenBucket(qps)
	if rc == nil {
		logger.L().Info("rate_limit_enabled", "backend", "local", "qps", qps)
		return RateLimit(local, "local", nil)(next)
	}
	logger.L().Info("rate_limit_enabled", "backend", "redis", "qps", qps)
	return RateLimit(NewRedisWindow(rc, qps), "redis", local)(next)
}
