package handlers

import (
	"net/http"

	"auracare/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest dependency health snapshot.
type HealthHandler struct {
	Monitor *utils.HealthMonitor
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.Monitor.Status()
	if status.CheckedAt.IsZero() {
		status = h.Monitor.Check(c.Request.Context())
	}
	if !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, utils.Envelope{Success: false, Data: status, Message: "degraded"})
		return
	}
	utils.JSONSuccess(c, http.StatusOK, status, "ok")
}
