package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PanicRecoveryGin turns a panic in a handler into a 500 with the same error
// body the handlers use, and marks the request span as failed.
func PanicRecoveryGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			ctx := c.Request.Context()

			slog.ErrorContext(ctx, "panic recovered",
				slog.String("event", "app.panic"),
				slog.Any("error", rec),
				slog.String("method", c.Request.Method),
				slog.String("path", c.FullPath()),
				slog.String("stack", string(debug.Stack())),
			)

			span := trace.SpanFromContext(ctx)
			span.SetStatus(codes.Error, "panic")

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "an internal error occurred",
			})
		}()

		c.Next()
	}
}
