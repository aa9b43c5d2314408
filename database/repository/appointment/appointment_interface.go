package appointmentRepo

import (
	"context"
	"time"

	"auracare/models"
)

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error
	ListByCustomer(ctx context.Context, customerID string, q models.PageQuery) ([]models.Appointment, int64, error)
	// ListBySalon pages a salon's appointments, optionally filtered by status.
	ListBySalon(ctx context.Context, salonID, status string, q models.PageQuery) ([]models.Appointment, int64, error)
	ListByStaff(ctx context.Context, staffID string, q models.PageQuery) ([]models.Appointment, int64, error)
	// HasOverlap reports whether the staff member has a pending or confirmed
	// appointment intersecting [start, end), ignoring excludeID.
	HasOverlap(ctx context.Context, staffID string, start, end time.Time, excludeID string) (bool, error)
	// RevenueBySalon aggregates appointments starting in [from, to) per salon.
	RevenueBySalon(ctx context.Context, from, to time.Time) ([]models.SalonRevenue, error)
	// MonthlyRevenue returns completed revenue per YYYY-MM since the given time, oldest first.
	MonthlyRevenue(ctx context.Context, salonID string, since time.Time) ([]models.MonthlyRevenue, error)
}

// BlockingStatuses are the statuses that occupy a staff member's time.
var BlockingStatuses = []string{models.AppointmentPending, models.AppointmentConfirmed}
