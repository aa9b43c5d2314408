package handlers

import (
	"net/http"

	"auracare/models"
	"auracare/services/admin"
	"auracare/services/forecast"
	"auracare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Service  admin.AdminService
	Forecast forecast.ForecastService
}

// ListSalons handles GET /api/admin/salons?status=.
func (h *AdminHandler) ListSalons(c *gin.Context) {
	page, err := h.Service.ListSalons(c.Request.Context(), c.Query("status"), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

// ApproveSalon handles PATCH /api/admin/salons/:id/approve.
func (h *AdminHandler) ApproveSalon(c *gin.Context) {
	s, err := h.Service.ApproveSalon(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, s)
}

// RejectSalon handles PATCH /api/admin/salons/:id/reject.
func (h *AdminHandler) RejectSalon(c *gin.Context) {
	var req models.SalonStatusRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	s, err := h.Service.RejectSalon(c.Request.Context(), currentUserID(c), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, s)
}

// SuspendSalon handles PATCH /api/admin/salons/:id/suspend.
func (h *AdminHandler) SuspendSalon(c *gin.Context) {
	var req models.SalonStatusRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	s, err := h.Service.SuspendSalon(c.Request.Context(), currentUserID(c), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, s)
}

// ListUsers handles GET /api/admin/users?role=.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := h.Service.ListUsers(c.Request.Context(), c.Query("role"), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

// Finance handles GET /api/admin/finance?from=&to=.
func (h *AdminHandler) Finance(c *gin.Context) {
	from, err := queryTime(c, "from")
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := queryTime(c, "to")
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.Service.FinanceSummary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, summary)
}

// ForecastHealth handles GET /api/admin/forecast/health.
func (h *AdminHandler) ForecastHealth(c *gin.Context) {
	if err := h.Forecast.Health(c.Request.Context()); err != nil {
		getLogger(c).Warn("forecast service unhealthy", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Forecast service is unavailable")
		return
	}
	respondOK(c, gin.H{"status": "ok"})
}
