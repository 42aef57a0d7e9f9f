package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/promptfolio-backend/internal/logger"
	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/promptfolio-backend/internal/ratelimit"
)

// RateLimitMiddleware ограничивает число запросов на пользователя.
// Анонимные запросы делят общий ключ "anonymous". Ставится после OptionalAuthMiddleware.
func RateLimitMiddleware(l *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ratelimit.AnonymousKey
		if raw, ok := c.Get(ContextUserIDKey); ok {
			if userID, ok := raw.(uuid.UUID); ok {
				key = userID.String()
			}
		}

		res, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Error("rate limit: хранилище счётчиков недоступно")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", res.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", res.Reset))

		if res.Reached {
			abortWithError(c, apperror.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}
