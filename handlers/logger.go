package handlers

import (
	"auracare/middleware"
	"auracare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request-scoped logger set by middleware.RequestLogger,
// or the global one when the middleware did not run.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(middleware.CtxLogger); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
