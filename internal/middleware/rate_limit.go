package middleware

import (
	"fmt"
	"net/http"
	"time"

	"event-registration-api/config"
	"event-registration-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegistrationRateLimit throttles registration attempts with a fixed window
// in Redis, keyed by client IP and event. The window state is shared across
// server instances. Redis being down fails open; losing throttling is better
// than refusing registrations.
func RegistrationRateLimit(rdb *redis.Client, cfg config.RateLimitConfig) gin.HandlerFunc {
	window := time.Duration(cfg.WindowSec) * time.Second
	log := logger.WithComponent("middleware")

	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:register:%s:%s", c.ClientIP(), c.Param("event_id"))

		count, err := rdb.Incr(c, key).Result()
		if err != nil {
			log.Warn("rate limiter unavailable, failing open")
			c.Next()
			return
		}
		if count == 1 {
			// a counter without a TTL would throttle this client forever
			if err := rdb.Expire(c, key, window).Err(); err != nil {
				log.Warn("rate limiter window not set, failing open")
				rdb.Del(c, key)
				c.Next()
				return
			}
		}

		if count > int64(cfg.Requests) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many registration attempts. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
