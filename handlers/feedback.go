package handlers

import (
	"auracare/models"
	"auracare/services/feedback"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler serves internal staff feedback.
type FeedbackHandler struct {
	Service feedback.FeedbackService
}

// Submit handles POST /api/internal-feedback.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req models.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}
	fb, err := h.Service.Submit(c.Request.Context(), currentUserID(c), currentRole(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, fb, "Feedback recorded")
}

// List handles GET /api/internal-feedback?staffId=.
func (h *FeedbackHandler) List(c *gin.Context) {
	page, err := h.Service.ListForSalon(c.Request.Context(), currentUserID(c), c.Query("staffId"), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

// Summary handles GET /api/internal-feedback/staff/:staffId/summary.
func (h *FeedbackHandler) Summary(c *gin.Context) {
	summary, err := h.Service.StaffSummary(c.Request.Context(), currentUserID(c), c.Param("staffId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, summary)
}
