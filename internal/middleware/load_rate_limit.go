package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewLoadRateLimitMiddleware creates a stricter rate limiting middleware for load endpoints.
// Every load reaches the upstream provider, so it allows 20 requests per minute per IP address.
func NewLoadRateLimitMiddleware() gin.HandlerFunc {
	return NewLoadRateLimitMiddlewareWithConfig(20, 1*time.Minute)
}

// NewLoadRateLimitMiddlewareWithConfig creates a rate limiting middleware with custom configuration
func NewLoadRateLimitMiddlewareWithConfig(limit int64, period time.Duration) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: period,
		Limit:  limit,
	}

	store := memory.NewStore()
	instance := limiter.New(store, rate)
	middleware := mgin.NewMiddleware(instance)

	return middleware
}
