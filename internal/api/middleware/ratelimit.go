package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/modemobile/todo-rewards/internal/api/shared/errors"
	"github.com/modemobile/todo-rewards/internal/logger"
	"github.com/modemobile/todo-rewards/internal/ratelimit"
)

const (
	rateLimitLimitHeader     = "X-RateLimit-Limit"
	rateLimitRemainingHeader = "X-RateLimit-Remaining"
)

// RateLimit enforces the per-client request budget, keyed by client IP
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Allow(c.ClientIP())

		c.Header(rateLimitLimitHeader, strconv.Itoa(decision.Limit))
		c.Header(rateLimitRemainingHeader, strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Warn("Rate limit exceeded",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
				zap.Duration("retry_after", decision.RetryAfter),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierrors.NewErrorResponse(apierrors.NewRateLimitedError("Too many requests")))
			return
		}

		c.Next()
	}
}
