package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// LoginRateLimit allows maxAttempts login calls per client IP per window.
// A nil client disables the check.
func LoginRateLimit(client *redis.Client, maxAttempts int64, window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:login:%s", c.ClientIP())
		ctx := c.Request.Context()
		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down must not lock operators out.
			logrus.WithError(err).Warn("login rate limiter unavailable")
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, window)
		}
		if count > maxAttempts {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, try again later"})
			return
		}
		c.Next()
	}
}
