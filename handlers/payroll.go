package handlers

import (
	"auracare/models"
	"auracare/services/payroll"

	"github.com/gin-gonic/gin"
)

// PayrollHandler serves the owner's payslips.
type PayrollHandler struct {
	Service payroll.PayrollService
}

// List handles GET /api/salon/payroll?period=YYYY-MM.
func (h *PayrollHandler) List(c *gin.Context) {
	slips, err := h.Service.List(c.Request.Context(), currentUserID(c), c.Query("period"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, slips)
}

// Generate handles POST /api/salon/payroll/generate.
func (h *PayrollHandler) Generate(c *gin.Context) {
	var req models.GeneratePayrollRequest
	if !bindJSON(c, &req) {
		return
	}
	slips, err := h.Service.Generate(c.Request.Context(), currentUserID(c), req.Period)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, slips, "Payroll drafts generated")
}

// Approve handles PATCH /api/salon/payroll/:id/approve.
func (h *PayrollHandler) Approve(c *gin.Context) {
	slip, err := h.Service.Approve(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, slip)
}

// MarkPaid handles PATCH /api/salon/payroll/:id/paid.
func (h *PayrollHandler) MarkPaid(c *gin.Context) {
	slip, err := h.Service.MarkPaid(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, slip)
}
