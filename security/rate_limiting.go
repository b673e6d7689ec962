package security

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles sensitive endpoints per client IP using a Redis
// fixed-window counter.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
	}
}

// LoginRateLimit is a route middleware for the admin login endpoint.
func (r *RateLimiter) LoginRateLimit() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		allowed, err := r.Allow(e.Request.Context(), "login", e.RealIP())
		if err != nil {
			// Redis trouble must not lock admins out
			return e.Next()
		}
		if !allowed {
			return e.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Too many login attempts. Please try again later.",
			})
		}
		return e.Next()
	}
}

// Allow counts a hit against the scope/ip window and reports whether the
// request is still within the limit.
func (r *RateLimiter) Allow(ctx context.Context, scope, ip string) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, ip)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		r.redis.Expire(ctx, key, r.window)
	}
	return count <= int64(r.limit), nil
}
