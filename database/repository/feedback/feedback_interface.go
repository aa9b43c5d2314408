package feedbackRepo

import (
	"context"

	"auracare/models"
)

// FeedbackRepository defines methods for internal staff feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *models.InternalStaffFeedback) error
	// ListBySalon pages a salon's feedback, newest first, optionally for one staff member.
	ListBySalon(ctx context.Context, salonID, staffID string, q models.PageQuery) ([]models.InternalStaffFeedback, int64, error)
	// SummaryForStaff returns the count and average rating for a staff member.
	SummaryForStaff(ctx context.Context, salonID, staffID string) (*models.FeedbackSummary, error)
}
