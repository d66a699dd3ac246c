package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinMiddleware logs one line per request with low-cardinality fields, trace
// correlation when a span is active, and masked request detail on failures.
func GinMiddleware(log *zap.Logger) gin.HandlerFunc {
	base := log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		access := WithTrace(c.Request.Context(), base)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields,
				zap.String("errors", c.Errors.String()),
				zap.Any("request", SafeFieldsFromRequest(c.Request)),
			)
			access.Warn("request failed", fields...)
			return
		}
		access.Info("request", fields...)
	}
}
