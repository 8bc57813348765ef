package ratelimit

import (
	"context"
	"fmt"
	"net/http"

	"forms-server/internal/observability"

	"github.com/gin-gonic/gin"
)

// Checker decides whether a request identified by key may proceed
type Checker interface {
	CheckRateLimit(ctx context.Context, key string) (RateLimitResult, error)
}

// Middleware limits requests per client IP. Checker failures let the request through.
func Middleware(checker Checker, logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		clientIP := observability.GetRealClientIP(c)

		result, err := checker.CheckRateLimit(ctx, clientIP)
		if err != nil {
			logger.WarnWithError(ctx, "rate limit check failed, allowing request", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

		if !result.Allowed {
			retryAfter := (result.RetryAfterMs + 999) / 1000
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			logger.Warn(observability.WithFields(ctx,
				observability.Field{Key: "client_ip", Value: clientIP},
				observability.Field{Key: "retry_after_ms", Value: result.RetryAfterMs},
			), "rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"code":        "RATE_LIMIT_EXCEEDED",
				"limit":       result.Limit,
				"retry_after": retryAfter,
				"reset_at":    result.ResetAt.Unix(),
			})
			return
		}

		c.Next()
	}
}
