package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/promptfolio-backend/internal/logger"
	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
)

const internalErrorMessage = "Internal server error"

// ErrorBody тело ответа с ошибкой.
func ErrorBody(appErr *apperror.AppError) gin.H {
	body := gin.H{"error": appErr.Message}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	if appErr.RequiresSetup {
		body["requiresSetup"] = true
	}
	return body
}

// abortWithError прерывает цепочку и отдаёт ошибку клиенту.
func abortWithError(c *gin.Context, appErr *apperror.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, ErrorBody(appErr))
}

// ErrorHandler обрабатывает ошибки централизованно.
// AppError отдаётся клиенту как есть, остальные ошибки маскируются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		fields := logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}

		appErr, ok := apperror.As(err)
		if !ok {
			logger.Log.WithFields(fields).Error("Request error")
			appErr = apperror.Wrap(err, apperror.ErrCodeInternal, internalErrorMessage)
		} else if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Log.WithFields(fields).Error("Request error")
		} else {
			logger.Log.WithFields(fields).Debug("Request rejected")
		}

		// Ответ уже ушёл (например, начат стрим).
		if c.Writer.Written() {
			return
		}

		c.JSON(appErr.HTTPStatus, ErrorBody(appErr))
	}
}

// Recovery превращает панику в JSON ответ 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.WithFields(logrus.Fields{
			"panic":  recovered,
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	})
}
