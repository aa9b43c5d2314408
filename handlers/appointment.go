package handlers

import (
	"auracare/models"
	"auracare/services/appointment"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler serves bookings for customers, salon owners and staff.
type AppointmentHandler struct {
	Service appointment.AppointmentService
}

func actor(c *gin.Context) appointment.Actor {
	return appointment.Actor{UserID: currentUserID(c), Role: currentRole(c)}
}

// Book handles POST /api/appointments.
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req models.BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Service.Book(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, appt, "Appointment booked")
}

// ListMine handles GET /api/appointments/mine.
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	page, err := h.Service.ListForCustomer(c.Request.Context(), currentUserID(c), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

// Cancel handles POST /api/appointments/:id/cancel and POST /api/salon/appointments/:id/cancel.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req models.CancelAppointmentRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	appt, err := h.Service.Cancel(c.Request.Context(), actor(c), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, appt)
}

// ListForSalon handles GET /api/salon/appointments?status=.
func (h *AppointmentHandler) ListForSalon(c *gin.Context) {
	page, err := h.Service.ListForSalon(c.Request.Context(), currentUserID(c), c.Query("status"), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

// UpdateStatus handles PATCH /api/salon/appointments/:id/status.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req models.AppointmentStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Service.UpdateStatus(c.Request.Context(), currentUserID(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, appt)
}

// ReassignStaff handles PATCH /api/salon/appointments/:id/staff.
func (h *AppointmentHandler) ReassignStaff(c *gin.Context) {
	var req models.ReassignStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Service.ReassignStaff(c.Request.Context(), currentUserID(c), c.Param("id"), req.StaffID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, appt)
}

// ListForStaff handles GET /api/staff/me/appointments.
func (h *AppointmentHandler) ListForStaff(c *gin.Context) {
	page, err := h.Service.ListForStaff(c.Request.Context(), currentUserID(c), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}
