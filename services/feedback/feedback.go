package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/services/salon"

	"github.com/google/uuid"
)

// FeedbackService records internal feedback about staff members.
type FeedbackService interface {
	Submit(ctx context.Context, authorID, authorRole string, req models.FeedbackRequest) (*models.InternalStaffFeedback, error)
	ListForSalon(ctx context.Context, ownerID, staffID string, q models.PageQuery) (*models.Page[models.InternalStaffFeedback], error)
	StaffSummary(ctx context.Context, ownerID, staffID string) (*models.FeedbackSummary, error)
}

type DefaultFeedbackService struct {
	Feedback repository.FeedbackRepository
	Staff    repository.StaffRepository
	Resolver salon.Resolver
	Now      func() time.Time
}

func (s *DefaultFeedbackService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultFeedbackService) Submit(ctx context.Context, authorID, authorRole string, req models.FeedbackRequest) (*models.InternalStaffFeedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}
	subject, err := s.Staff.GetByID(ctx, req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	if subject == nil || subject.SalonID == "" {
		return nil, apperr.NotFound("staff member not found")
	}

	var authorSalon string
	switch authorRole {
	case models.RoleSalon:
		owned, err := s.Resolver.ResolveSalonForOwner(ctx, authorID)
		if err != nil {
			return nil, err
		}
		authorSalon = owned.ID
	case models.RoleStaff:
		colleague, err := s.Resolver.ResolveStaffForUser(ctx, authorID)
		if err != nil {
			return nil, err
		}
		if colleague.ID == subject.ID {
			return nil, apperr.Validation("staff cannot leave feedback about themselves")
		}
		authorSalon = colleague.SalonID
	default:
		return nil, apperr.Forbidden("only salon owners and staff can leave internal feedback")
	}
	if authorSalon != subject.SalonID {
		return nil, apperr.Forbidden("staff member works at another salon")
	}

	fb := &models.InternalStaffFeedback{
		ID:        uuid.New().String(),
		SalonID:   subject.SalonID,
		StaffID:   subject.ID,
		AuthorID:  authorID,
		Category:  strings.TrimSpace(req.Category),
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		Anonymous: req.Anonymous,
		CreatedAt: s.now(),
	}
	if err := s.Feedback.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	return redact(*fb), nil
}

// redact blanks the author of anonymous feedback.
func redact(fb models.InternalStaffFeedback) *models.InternalStaffFeedback {
	if fb.Anonymous {
		fb.AuthorID = ""
	}
	return &fb
}

func (s *DefaultFeedbackService) ListForSalon(ctx context.Context, ownerID, staffID string, q models.PageQuery) (*models.Page[models.InternalStaffFeedback], error) {
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items, total, err := s.Feedback.ListBySalon(ctx, owned.ID, staffID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	for i := range items {
		items[i] = *redact(items[i])
	}
	return models.NewPage(items, total, q), nil
}

func (s *DefaultFeedbackService) StaffSummary(ctx context.Context, ownerID, staffID string) (*models.FeedbackSummary, error) {
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	subject, err := s.Staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	if subject == nil {
		return nil, apperr.NotFound("staff member not found")
	}
	if subject.SalonID != owned.ID {
		return nil, apperr.Forbidden("staff member works at another salon")
	}
	summary, err := s.Feedback.SummaryForStaff(ctx, owned.ID, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarise feedback: %w", err)
	}
	return summary, nil
}
