package models

import "time"

const (
	PayrollDraft    = "draft"
	PayrollApproved = "approved"
	PayrollPaid     = "paid"

	// PayrollWorkingDays is the number of paid working days per month used for leave deductions.
	PayrollWorkingDays = 26
)

// PayrollInput holds the figures a payslip is computed from.
type PayrollInput struct {
	BasicSalary       float64 `json:"basicSalary"`
	Allowances        float64 `json:"allowances"`
	PFRatePercent     float64 `json:"pfRatePercent"`
	ProfessionalTax   float64 `json:"professionalTax"`
	LeaveDays         int     `json:"leaveDays"`
	ProductDeductions float64 `json:"productDeductions"`
}

type PayrollBreakdown struct {
	GrossPay        float64 `bson:"grossPay" json:"grossPay"`
	PFDeduction     float64 `bson:"pfDeduction" json:"pfDeduction"`
	LeaveDeduction  float64 `bson:"leaveDeduction" json:"leaveDeduction"`
	TotalDeductions float64 `bson:"totalDeductions" json:"totalDeductions"`
	NetPay          float64 `bson:"netPay" json:"netPay"`
}

// Payroll is one staff member's payslip for a YYYY-MM period.
type Payroll struct {
	ID                string    `bson:"id" json:"id"`
	SalonID           string    `bson:"salonId" json:"salonId"`
	StaffID           string    `bson:"staffId" json:"staffId"`
	StaffName         string    `bson:"staffName" json:"staffName"`
	Period            string    `bson:"period" json:"period"`
	BasicSalary       float64   `bson:"basicSalary" json:"basicSalary"`
	Allowances        float64   `bson:"allowances" json:"allowances"`
	PFRatePercent     float64   `bson:"pfRatePercent" json:"pfRatePercent"`
	ProfessionalTax   float64   `bson:"professionalTax" json:"professionalTax"`
	LeaveDays         int       `bson:"leaveDays" json:"leaveDays"`
	ProductDeductions float64   `bson:"productDeductions" json:"productDeductions"`
	PayrollBreakdown  `bson:",inline"`
	Status            string    `bson:"status" json:"status"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

type GeneratePayrollRequest struct {
	Period string `json:"period" binding:"required"`
}
