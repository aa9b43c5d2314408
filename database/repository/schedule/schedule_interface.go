package scheduleRepo

import (
	"context"
	"time"

	"auracare/models"
)

// ScheduleRequestRepository defines methods for staff schedule requests.
type ScheduleRequestRepository interface {
	Create(ctx context.Context, req *models.ScheduleRequest) error
	GetByID(ctx context.Context, id string) (*models.ScheduleRequest, error)
	Update(ctx context.Context, req *models.ScheduleRequest) error
	// ListByStaff returns a staff member's requests, newest first.
	ListByStaff(ctx context.Context, staffID string) ([]models.ScheduleRequest, error)
	// ListPendingBySalon matches requests that carry the salonId.
	ListPendingBySalon(ctx context.Context, salonID string) ([]models.ScheduleRequest, error)
	// ListPendingByStaffIDs matches requests by their staffId, whether or not salonId was stored.
	ListPendingByStaffIDs(ctx context.Context, staffIDs []string) ([]models.ScheduleRequest, error)
	// ListApprovedLeave returns approved leave of the given staff that intersects [from, to].
	ListApprovedLeave(ctx context.Context, staffIDs []string, from, to time.Time) ([]models.ScheduleRequest, error)
}
