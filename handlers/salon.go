package handlers

import (
	"net/http"

	"auracare/models"
	"auracare/services/salon"
	"auracare/utils"

	"github.com/gin-gonic/gin"
)

// SalonHandler serves the owner's salon profile, catalogue, staff and
// cancellation policy, plus the public salon listings.
type SalonHandler struct {
	Salons   salon.SalonService
	Catalog  salon.CatalogService
	Staff    salon.StaffService
	Policies salon.PolicyService
}

// ListPublic handles GET /api/salon/public.
func (h *SalonHandler) ListPublic(c *gin.Context) {
	page, err := h.Salons.ListApprovedSalons(c.Request.Context(), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

// ListPublicServices handles GET /api/salon/public/:id/services.
func (h *SalonHandler) ListPublicServices(c *gin.Context) {
	services, err := h.Salons.ListPublicServices(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, services)
}

// Register handles POST /api/salon.
func (h *SalonHandler) Register(c *gin.Context) {
	var req models.SalonRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Salons.RegisterSalon(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, s, "Salon submitted for approval")
}

// GetMine handles GET /api/salon/me.
func (h *SalonHandler) GetMine(c *gin.Context) {
	s, err := h.Salons.GetMySalon(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, s)
}

// UpdateMine handles PUT /api/salon/me.
func (h *SalonHandler) UpdateMine(c *gin.Context) {
	var req models.SalonUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Salons.UpdateMySalon(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, s)
}

// ListServices handles GET /api/salon/services.
func (h *SalonHandler) ListServices(c *gin.Context) {
	services, err := h.Catalog.ListServices(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, services)
}

// CreateService handles POST /api/salon/services.
func (h *SalonHandler) CreateService(c *gin.Context) {
	var req models.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.Catalog.CreateService(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, svc, "Service created")
}

// UpdateService handles PUT /api/salon/services/:id.
func (h *SalonHandler) UpdateService(c *gin.Context) {
	var req models.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.Catalog.UpdateService(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, svc)
}

// DeleteService handles DELETE /api/salon/services/:id.
func (h *SalonHandler) DeleteService(c *gin.Context) {
	if err := h.Catalog.DeleteService(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil, "Service deleted")
}

// ListStaff handles GET /api/salon/staff.
func (h *SalonHandler) ListStaff(c *gin.Context) {
	staff, err := h.Staff.ListStaff(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, staff)
}

// AddStaff handles POST /api/salon/staff.
func (h *SalonHandler) AddStaff(c *gin.Context) {
	var req models.StaffRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.Staff.AddStaff(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, st, "Staff member added")
}

// UpdateStaff handles PUT /api/salon/staff/:id.
func (h *SalonHandler) UpdateStaff(c *gin.Context) {
	var req models.StaffUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.Staff.UpdateStaff(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, st)
}

// RemoveStaff handles DELETE /api/salon/staff/:id.
func (h *SalonHandler) RemoveStaff(c *gin.Context) {
	if err := h.Staff.RemoveStaff(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil, "Staff member removed")
}

// GetPolicy handles GET /api/salon/cancellation-policy.
func (h *SalonHandler) GetPolicy(c *gin.Context) {
	policy, err := h.Policies.GetCancellationPolicy(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, policy)
}

// UpsertPolicy handles PUT /api/salon/cancellation-policy.
func (h *SalonHandler) UpsertPolicy(c *gin.Context) {
	var req models.CancellationPolicyRequest
	if !bindJSON(c, &req) {
		return
	}
	policy, err := h.Policies.UpsertCancellationPolicy(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, policy)
}
