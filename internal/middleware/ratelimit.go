package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	Redis  *redis.Client
	Prefix string
	Limit  int
	Window time.Duration
}

func NewRateLimiter(r *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{Redis: r, Prefix: prefix, Limit: limit, Window: window}
}

// ByKey throttles per derived key. With no Redis configured the limiter
// passes everything through.
func (r *RateLimiter) ByKey(keyFunc func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r.Redis == nil {
			return c.Next()
		}
		redisKey := fmt.Sprintf("%s:%s", r.Prefix, keyFunc(c))
		ctx := context.Background()
		count, err := r.Redis.Incr(ctx, redisKey).Result()
		if err != nil {
			// Redis being down must not take the API with it
			return c.Next()
		}
		if count == 1 {
			r.Redis.Expire(ctx, redisKey, r.Window)
		}
		if count > int64(r.Limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"status": "error", "message": "rate limit exceeded"})
		}
		return c.Next()
	}
}

// ByIP is the common per-client throttle.
func (r *RateLimiter) ByIP() fiber.Handler {
	return r.ByKey(func(c *fiber.Ctx) string { return c.IP() })
}
