package middleware

import (
	"net/http"

	"form-template-api/internal/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into a 500 envelope. Nothing is written
// when the handler already started the response.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.Error("Panic recovered",
				zap.Any("panic", rec),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("route", c.FullPath()),
				zap.Stack("stacktrace"),
			)
			if !c.Writer.Written() {
				response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
			}
			c.Abort()
		}()

		c.Next()
	}
}
