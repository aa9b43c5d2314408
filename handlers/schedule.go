package handlers

import (
	"auracare/models"
	"auracare/services/schedule"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler serves staff schedule requests and their review by owners.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

// Create handles POST /api/schedule-requests.
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req models.ScheduleRequestInput
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.Service.CreateRequest(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, created, "Request submitted")
}

// ListMine handles GET /api/schedule-requests/mine.
func (h *ScheduleHandler) ListMine(c *gin.Context) {
	reqs, err := h.Service.ListMyRequests(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, reqs)
}

// ListPending handles GET /api/schedule-requests/pending.
func (h *ScheduleHandler) ListPending(c *gin.Context) {
	reqs, err := h.Service.ListPendingForSalon(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, reqs)
}

// Review handles PATCH /api/schedule-requests/:id/review.
func (h *ScheduleHandler) Review(c *gin.Context) {
	var req models.ScheduleReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	reviewed, err := h.Service.Review(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, reviewed)
}
