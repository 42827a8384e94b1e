package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"neighborhelp-backend/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// hitStore keeps the timestamps of recent hits per key
type hitStore interface {
	// Count drops hits older than windowStart and returns how many remain
	// along with the oldest of them.
	Count(ctx context.Context, key string, windowStart time.Time) (int, time.Time, error)
	// Add records a hit at the given time
	Add(ctx context.Context, key string, at time.Time, ttl time.Duration) error
}

// RateLimiter is a sliding window limiter over a Redis sorted set, one set
// per client IP and route. Only admitted requests count against the window.
type RateLimiter struct {
	hits      hitStore
	limit     int
	window    time.Duration
	keyPrefix string
	log       logging.Logger
	now       func() time.Time
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration, log logging.Logger) *RateLimiter {
	return newRateLimiter(&redisHits{client: redisClient}, limit, window, log)
}

func newRateLimiter(hits hitStore, limit int, window time.Duration, log logging.Logger) *RateLimiter {
	return &RateLimiter{
		hits:      hits,
		limit:     limit,
		window:    window,
		keyPrefix: "ratelimit:",
		log:       log,
		now:       time.Now,
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.key(c)

		allowed, remaining, resetTime := rl.allowRequest(c.Request.Context(), key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retryAfter := int(math.Ceil(resetTime.Sub(rl.now()).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.String(http.StatusTooManyRequests, "Rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}

// key identifies the client by gin's ClientIP, which only reads forwarding
// headers from the engine's trusted proxies.
func (rl *RateLimiter) key(c *gin.Context) string {
	return rl.keyPrefix + c.FullPath() + ":" + c.ClientIP()
}

// allowRequest reports whether the hit fits in the window and records it
// if so. Concurrent hits may overshoot the limit by the number in flight.
// Store errors let the request through.
func (rl *RateLimiter) allowRequest(ctx context.Context, key string) (bool, int, time.Time) {
	now := rl.now()

	count, oldest, err := rl.hits.Count(ctx, key, now.Add(-rl.window))
	if err != nil {
		rl.log.Warn(ctx, "rate limiter unavailable", "error", err)
		return true, rl.limit, now.Add(rl.window)
	}

	if count >= rl.limit {
		resetTime := now.Add(rl.window)
		if !oldest.IsZero() {
			resetTime = oldest.Add(rl.window)
		}
		return false, 0, resetTime
	}

	if err := rl.hits.Add(ctx, key, now, rl.window); err != nil {
		rl.log.Warn(ctx, "rate limiter unavailable", "error", err)
		return true, rl.limit, now.Add(rl.window)
	}

	remaining := rl.limit - count - 1
	if remaining < 0 {
		remaining = 0
	}

	return true, remaining, now.Add(rl.window)
}

// redisHits stores hits as sorted set members scored by UnixNano
type redisHits struct {
	client *redis.Client
}

func (r *redisHits) Count(ctx context.Context, key string, windowStart time.Time) (int, time.Time, error) {
	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	zcard := pipe.ZCard(ctx, key)
	first := pipe.ZRangeWithScores(ctx, key, 0, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	var oldest time.Time
	if members := first.Val(); len(members) > 0 {
		oldest = time.Unix(0, int64(members[0].Score))
	}
	return int(zcard.Val()), oldest, nil
}

func (r *redisHits) Add(ctx context.Context, key string, at time.Time, ttl time.Duration) error {
	pipe := r.client.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(at.UnixNano()),
		Member: fmt.Sprintf("%d-%s", at.UnixNano(), uuid.NewString()),
	})
	pipe.Expire(ctx, key, ttl)

	_, err := pipe.Exec(ctx)
	return err
}
