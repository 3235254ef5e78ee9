package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ajharbinger/pomegranate-waitlist/internal/logger"
)

// Limiter decides whether another request under key fits in the current window
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Window() time.Duration
}

// MemoryLimiter is a fixed-window limiter local to one process
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	buckets map[string]*bucket
}

type bucket struct {
	start time.Time
	count int
}

// NewMemoryLimiter allows limit requests per key per window
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow implements Limiter
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.Sub(b.start) >= l.window {
		// Drop expired windows so idle clients do not pile up
		for k, old := range l.buckets {
			if now.Sub(old.start) >= l.window {
				delete(l.buckets, k)
			}
		}
		l.buckets[key] = &bucket{start: now, count: 1}
		return true, nil
	}
	if b.count >= l.limit {
		return false, nil
	}
	b.count++
	return true, nil
}

// Window implements Limiter
func (l *MemoryLimiter) Window() time.Duration { return l.window }

// RedisLimiter is a fixed-window limiter shared by every instance using the
// same Redis.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisClient parses redisURL and verifies connectivity
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// NewRedisLimiter allows limit requests per key per window
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "waitlist:ratelimit:",
	}
}

// Allow implements Limiter
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowID := time.Now().UnixNano() / int64(l.window)
	redisKey := l.prefix + key + ":" + strconv.FormatInt(windowID, 10)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	return incr.Val() <= int64(l.limit), nil
}

// Window implements Limiter
func (l *RedisLimiter) Window() time.Duration { return l.window }

// RateLimitingMiddleware rejects clients that exceed limiter with 429. Limiter
// failures let the request through.
func RateLimitingMiddleware(limiter Limiter, log logger.Logger) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(limiter.Window().Seconds()))

	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn("Rate limiter unavailable, allowing request", "error", err, "client_ip", c.ClientIP())
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
