package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/services/notification"
	"auracare/services/salon"
	"auracare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleService handles staff leave, block-time and shift-swap requests.
type ScheduleService interface {
	CreateRequest(ctx context.Context, staffUserID string, input models.ScheduleRequestInput) (*models.ScheduleRequest, error)
	ListMyRequests(ctx context.Context, staffUserID string) ([]models.ScheduleRequest, error)
	// ListPendingForSalon returns the salon's pending requests, newest first,
	// including requests stored without a salonId.
	ListPendingForSalon(ctx context.Context, ownerID string) ([]models.ScheduleRequest, error)
	Review(ctx context.Context, ownerID, requestID string, review models.ScheduleReviewRequest) (*models.ScheduleRequest, error)
}

// DefaultScheduleService is the production implementation.
type DefaultScheduleService struct {
	Requests repository.ScheduleRequestRepository
	Staff    repository.StaffRepository
	Resolver salon.Resolver
	Notifier notification.Notifier
	Now      func() time.Time
}

func (s *DefaultScheduleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

var requestTypes = map[string]bool{
	models.ScheduleLeave:     true,
	models.ScheduleBlockTime: true,
	models.ScheduleShiftSwap: true,
}

func (s *DefaultScheduleService) CreateRequest(ctx context.Context, staffUserID string, input models.ScheduleRequestInput) (*models.ScheduleRequest, error) {
	if !requestTypes[input.Type] {
		return nil, apperr.Validation("type must be one of leave, block_time or shift_swap")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, apperr.Validation("startDate and endDate are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperr.Validation("endDate cannot be before startDate")
	}

	staff, err := s.Resolver.ResolveStaffForUser(ctx, staffUserID)
	if err != nil {
		return nil, err
	}

	req := &models.ScheduleRequest{
		ID:        uuid.New().String(),
		StaffID:   staff.ID,
		SalonID:   staff.SalonID,
		Type:      input.Type,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Reason:    strings.TrimSpace(input.Reason),
		Status:    models.SchedulePending,
	}

	if input.Type == models.ScheduleShiftSwap {
		if input.SwapWithStaffID == "" {
			return nil, apperr.Validation("swapWithStaffId is required for a shift swap")
		}
		if input.SwapWithStaffID == staff.ID {
			return nil, apperr.Validation("cannot swap a shift with yourself")
		}
		other, err := s.Staff.GetByID(ctx, input.SwapWithStaffID)
		if err != nil {
			return nil, fmt.Errorf("failed to load swap partner: %w", err)
		}
		if other == nil || other.SalonID != staff.SalonID {
			return nil, apperr.Validation("swap partner must work at the same salon")
		}
		req.SwapWithStaffID = other.ID
	}

	if err := s.Requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create schedule request: %w", err)
	}
	utils.GetLogger().Info("schedule request created",
		zap.String("requestID", req.ID),
		zap.String("staffID", staff.ID),
		zap.String("type", req.Type),
	)
	return req, nil
}

func (s *DefaultScheduleService) ListMyRequests(ctx context.Context, staffUserID string) ([]models.ScheduleRequest, error) {
	staff, err := s.Resolver.ResolveStaffForUser(ctx, staffUserID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.Requests.ListByStaff(ctx, staff.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule requests: %w", err)
	}
	return reqs, nil
}

func (s *DefaultScheduleService) ListPendingForSalon(ctx context.Context, ownerID string) ([]models.ScheduleRequest, error) {
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	bySalon, err := s.Requests.ListPendingBySalon(ctx, owned.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests by salon: %w", err)
	}
	staffIDs, err := s.Staff.ListIDsBySalon(ctx, owned.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salon staff: %w", err)
	}
	byStaff, err := s.Requests.ListPendingByStaffIDs(ctx, staffIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests by staff: %w", err)
	}

	return mergeRequests(bySalon, byStaff), nil
}

// mergeRequests de-duplicates by id and orders newest first.
func mergeRequests(lists ...[]models.ScheduleRequest) []models.ScheduleRequest {
	seen := map[string]bool{}
	out := []models.ScheduleRequest{}
	for _, list := range lists {
		for _, r := range list {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *DefaultScheduleService) Review(ctx context.Context, ownerID, requestID string, review models.ScheduleReviewRequest) (*models.ScheduleRequest, error) {
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	req, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule request: %w", err)
	}
	if req == nil {
		return nil, apperr.NotFound("schedule request not found")
	}

	staff, err := s.Staff.GetByID(ctx, req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	if !belongsToSalon(req, staff, owned.ID) {
		return nil, apperr.Forbidden("schedule request belongs to another salon")
	}
	if req.Status != models.SchedulePending {
		return nil, apperr.Conflict("schedule request was already %s", req.Status)
	}

	at := s.now()
	req.Status = models.ScheduleRejected
	if review.Approve {
		req.Status = models.ScheduleApproved
	}
	req.ReviewedBy = ownerID
	req.ReviewedAt = &at
	req.ReviewNote = strings.TrimSpace(review.Note)
	if req.SalonID == "" {
		req.SalonID = owned.ID
	}
	if err := s.Requests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to update schedule request: %w", err)
	}

	if staff != nil {
		notification.ScheduleReviewed(ctx, s.Notifier, staff.UserID, req)
	}
	return req, nil
}

func belongsToSalon(req *models.ScheduleRequest, staff *models.Staff, salonID string) bool {
	if req.SalonID != "" {
		return req.SalonID == salonID
	}
	return staff != nil && staff.SalonID == salonID
}
