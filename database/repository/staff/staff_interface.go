package staffRepo

import (
	"context"

	"auracare/models"
)

// StaffRepository defines methods for staff data access.
type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	// GetByUserID returns the staff record linked to a login, or nil.
	GetByUserID(ctx context.Context, userID string) (*models.Staff, error)
	// GetByEmail returns an unlinked or linked staff record by its email, or nil.
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
	// LinkUser sets userId only while it is still empty.
	LinkUser(ctx context.Context, id, userID string) (bool, error)
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, id string) error
	// ListBySalon returns the salon's staff sorted by name.
	ListBySalon(ctx context.Context, salonID string, activeOnly bool) ([]models.Staff, error)
	// ListIDsBySalon returns the ids of every staff member of the salon.
	ListIDsBySalon(ctx context.Context, salonID string) ([]string, error)
}
