package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/pkg/logger"
	"github.com/mentorlink/backend/internal/pkg/ratelimit"
)

// RateLimit counts requests per caller in a fixed window. Authenticated
// callers are keyed by user ID, anonymous ones by client IP. A disabled
// limiter passes everything through.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if userID := c.GetInt64(ContextUserID); userID > 0 {
			key = fmt.Sprintf("user:%d", userID)
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Redis trouble must not take the API down
			logger.Warn().Err(err).Msg("Rate limit check failed, letting request through")
			c.Next()
			return
		}

		if !allowed {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeRateLimited, "Too many requests").
				WithSeverity(dto.ErrorSeverityWarning)

			if retryAfter, err := limiter.RetryAfter(c.Request.Context(), key); err == nil && retryAfter > 0 {
				c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			}

			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
