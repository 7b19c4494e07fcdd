package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/pbdsce/Zenith-sub000/dto"
)

// RateLimit caps requests per (path, client IP) inside a rolling window,
// counting in Redis so replicas share state. A nil client or a Redis error
// fails open; throttling is protection, not a dependency.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) fiber.Handler {
	if rdb == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("rl:%s:%s", c.Path(), c.IP())

		n, err := rdb.Incr(c.Context(), key).Result()
		if err != nil {
			log.Println("rate limit unavailable:", err)
			return c.Next()
		}
		if n == 1 {
			rdb.Expire(c.Context(), key, window)
		}
		if n > int64(limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Error("too many requests, slow down"))
		}
		return c.Next()
	}
}
