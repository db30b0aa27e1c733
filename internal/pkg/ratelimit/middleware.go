package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Middleware limits requests per client IP and answers over-limit calls with
// the API's fail envelope.
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		if !l.Allow(key) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "fail",
				"message": "Too many requests from this IP, please try again later",
			})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(l.Remaining(key)))
		c.Next()
	}
}
