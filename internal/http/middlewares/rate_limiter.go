package middlewares

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter decides whether one more request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	clients map[string]*clientBucket
	now     func() time.Time
}

type clientBucket struct {
	count     int
	windowEnd time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*clientBucket),
		now:     time.Now,
	}
}

func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[key]

	if !ok || now.After(b.windowEnd) {
		rl.clients[key] = &clientBucket{
			count:     1,
			windowEnd: now.Add(rl.window),
		}
		return true, 0, nil
	}

	if b.count >= rl.limit {
		return false, b.windowEnd.Sub(now), nil
	}

	b.count++
	return true, 0, nil
}

// WindowCounter is the storage primitive behind RedisRateLimiter.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RedisRateLimiter shares fixed windows between replicas.
type RedisRateLimiter struct {
	counter WindowCounter
	limit   int
	window  time.Duration
	prefix  string
}

func NewRedisRateLimiter(counter WindowCounter, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		counter: counter,
		limit:   limit,
		window:  window,
		prefix:  "eventmanager:ratelimit:",
	}
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	count, ttl, err := rl.counter.IncrWindow(ctx, rl.prefix+key, rl.window)
	if err != nil {
		return true, 0, err
	}

	if count > int64(rl.limit) {
		return false, ttl, nil
	}

	return true, 0, nil
}

// RateLimit enforces l per derived key. A limiter error lets the request
// through and is logged.
func RateLimit(l Limiter, keyFn func(*gin.Context) string, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			key = clientIP(c)
		}

		allowed, retryAfter, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			log.WarnContext(c.Request.Context(), "rate limiter unavailable", "err", err)
		}

		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 0 {
				secs = 0
			}

			c.Header("Retry-After", strconv.Itoa(secs))
			AbortWithError(c, http.StatusTooManyRequests, "Too Many Requests", "Too many requests. Please try again shortly.")
			return
		}

		c.Next()
	}
}

func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

func clientIP(c *gin.Context) string {
	// Gin's ClientIP respects X-Forwarded-For / X-Real-IP if configured.
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)

	if err == nil && host != "" {
		return host
	}

	return ip
}
