package middleware

import (
	"time"

	"chargesphere/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger attaches a request-scoped zap logger under "logger" and logs each request once it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		logger := utils.GetLogger().With(
			zap.String("requestID", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Set("logger", logger)

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if id, ok := UserID(c); ok {
			fields = append(fields, zap.String("userID", id.Hex()))
		}
		if c.Writer.Status() >= 500 {
			logger.Error("Request completed", fields...)
			return
		}
		logger.Info("Request completed", fields...)
	}
}
