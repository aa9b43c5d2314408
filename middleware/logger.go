package middleware

import (
	"time"

	"auracare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CtxLogger holds a request-scoped logger for handlers.
const CtxLogger = "logger"

// RequestLogger logs every request once it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ip := getClientIP(c)
		c.Set(CtxLogger, utils.GetLogger().With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		))

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", ip),
		}
		if userID := c.GetString(CtxUserID); userID != "" {
			fields = append(fields, zap.String("userID", userID))
		}
		switch {
		case status >= 500:
			utils.GetLogger().Error("request", fields...)
		case status >= 400:
			utils.GetLogger().Warn("request", fields...)
		default:
			utils.GetLogger().Info("request", fields...)
		}
	}
}
