package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware обрабатывает CORS заголовки и preflight запросы.
// Функции вызываются из браузера с любого origin, поэтому origin не ограничивается.
func CORSMiddleware(allowedHeaders []string) gin.HandlerFunc {
	headers := strings.Join(allowedHeaders, ", ")
	if headers == "" {
		headers = "authorization, x-client-info, apikey, content-type"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", headers)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
