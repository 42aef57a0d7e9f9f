package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/promptfolio-backend/internal/pkg/apperror"
)

var errInvalidBody = apperror.New(apperror.ErrCodeBadRequest, "Invalid request body")

// bindJSON читает тело запроса. Пустое тело считается пустым объектом.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(errInvalidBody.WithDetails(err.Error()))
		return false
	}
	return true
}

// pipeEventStream отдаёт поток шлюза клиенту как есть, сбрасывая буфер после каждого чанка.
func pipeEventStream(c *gin.Context, body io.Reader) error {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, werr := c.Writer.Write(buf[:n]); werr != nil {
				return werr
			}
			c.Writer.Flush()
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
