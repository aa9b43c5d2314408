package payrollRepo

import (
	"context"

	"auracare/models"
)

// PayrollRepository defines methods for payslip data access.
type PayrollRepository interface {
	GetByID(ctx context.Context, id string) (*models.Payroll, error)
	// GetForStaff returns the payslip of a staff member for a period, or nil.
	GetForStaff(ctx context.Context, salonID, staffID, period string) (*models.Payroll, error)
	// Save inserts or overwrites a payslip by id.
	Save(ctx context.Context, p *models.Payroll) error
	ListBySalon(ctx context.Context, salonID, period string) ([]models.Payroll, error)
}
