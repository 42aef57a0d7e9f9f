package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
)

// UUIDValidator проверяет, что параметр пути с указанным именем является валидным UUID.
// Использование: api.GET("/portfolios/:id", UUIDValidator("id"), handler.Get)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			abortWithError(c, apperror.New(apperror.ErrCodeBadRequest, paramName+" is required"))
			return
		}

		if _, err := uuid.Parse(idStr); err != nil {
			abortWithError(c, apperror.New(apperror.ErrCodeBadRequest, paramName+" must be a valid UUID"))
			return
		}

		c.Next()
	}
}
