package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"todoapi/internal/transport/http/response"
)

// RateLimitPolicy is a named request budget: Limit requests per Window,
// counted per client IP. Policies keep the limiter configuration out of
// the handlers so the core stays testable without it.
type RateLimitPolicy struct {
	Name   string
	Limit  int
	Window time.Duration
}

// RateLimit enforces a policy using Redis fixed-window counters, so the
// budget holds across replicas. A zero or negative limit disables the
// policy. When failOpen is set, a Redis outage admits traffic instead
// of rejecting it.
func RateLimit(client *redisv9.Client, policy RateLimitPolicy, failOpen bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy.Limit <= 0 || policy.Window <= 0 || client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := int64(policy.Window.Seconds())
		bucket := time.Now().Unix() / window
		key := fmt.Sprintf("ratelimit:%s:%s:%d", policy.Name, c.ClientIP(), bucket)

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("rate limiter redis incr failed: %v", err)
			if failOpen {
				c.Next()
				return
			}
			response.AbortError(c, http.StatusServiceUnavailable, "service unavailable")
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, policy.Window).Err(); err != nil {
				log.Printf("rate limiter redis expire failed: %v", err)
			}
		}

		if count > int64(policy.Limit) {
			response.AbortError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		c.Next()
	}
}
