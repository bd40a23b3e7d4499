package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/utkarshshahi0/crud-assesment/internal/redis"
	"github.com/utkarshshahi0/crud-assesment/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware applies per-IP rate limiting to login attempts and
// application submissions. A nil limiter disables limiting entirely.
func RateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		path := c.Request.URL.Path

		var result *redis.RateLimitResult
		var err error
		switch {
		case isAuthEndpoint(path):
			result, err = limiter.AllowAuth(c.Request.Context(), clientIP)
		case c.Request.Method == http.MethodPost && strings.HasPrefix(path, "/api/applications"):
			result, err = limiter.AllowSubmit(c.Request.Context(), clientIP)
		default:
			c.Next()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("rate limit error", "INTERNAL_ERROR"))
			c.Abort()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limit exceeded", "RATE_LIMITED"))
			c.Abort()
			return
		}

		c.Next()
	}
}

func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}

func isAuthEndpoint(path string) bool {
	return path == "/v1/auth/login"
}
