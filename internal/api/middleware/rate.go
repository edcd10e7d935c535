package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/osa911/teamchat/internal/api/dto/common"
	"github.com/osa911/teamchat/internal/utils"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// RateLimitMiddleware creates a new rate limiting middleware with the given configuration
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)
	limit := strconv.Itoa(int(math.Ceil(config.RPS)))

	return func(c *gin.Context) {
		now := time.Now()
		c.Header("X-RateLimit-Limit", limit)

		if !limiter.AllowN(now, 1) {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(untilNextToken(limiter, now, config.RPS).Seconds()))))
			utils.HandleError(c, http.StatusTooManyRequests, common.ErrCodeTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.TokensAt(now))))
		c.Next()
	}
}

func untilNextToken(limiter *rate.Limiter, now time.Time, rps float64) time.Duration {
	missing := 1 - limiter.TokensAt(now)
	if missing <= 0 || rps <= 0 {
		return 0
	}
	return time.Duration(missing / rps * float64(time.Second))
}
