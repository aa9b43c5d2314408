package salon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SalonService defines salon profile operations.
type SalonService interface {
	RegisterSalon(ctx context.Context, ownerID string, req models.SalonRequest) (*models.Salon, error)
	GetMySalon(ctx context.Context, ownerID string) (*models.Salon, error)
	UpdateMySalon(ctx context.Context, ownerID string, req models.SalonUpdateRequest) (*models.Salon, error)
	ListApprovedSalons(ctx context.Context, q models.PageQuery) (*models.Page[models.Salon], error)
	ListPublicServices(ctx context.Context, salonID string) ([]models.Service, error)
	// SetStatus applies an admin decision. Allowed moves are pending to
	// approved or rejected, approved to suspended, and suspended or rejected
	// back to approved.
	SetStatus(ctx context.Context, adminID, salonID, status, reason string) (*models.Salon, error)
}

// DefaultSalonService implements SalonService, CatalogService, StaffService and PolicyService.
type DefaultSalonService struct {
	Salons   repository.SalonRepository
	Users    repository.UserRepository
	Staff    repository.StaffRepository
	Services repository.ServiceRepository
	Policies repository.CancellationPolicyRepository
	Resolver *DefaultResolver
	Now      func() time.Time
}

func (s *DefaultSalonService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultSalonService) RegisterSalon(ctx context.Context, ownerID string, req models.SalonRequest) (*models.Salon, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("salon name is required")
	}

	existing, err := s.Salons.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing salon: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("this account already has a salon")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		owner, err := s.Users.GetByID(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load owner: %w", err)
		}
		if owner != nil {
			email = owner.Email
		}
	}
	if email != "" {
		taken, err := s.Salons.GetByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check salon email: %w", err)
		}
		if taken != nil {
			return nil, apperr.Conflict("a salon with this email already exists")
		}
	}

	salon := &models.Salon{
		ID:      uuid.New().String(),
		OwnerID: ownerID,
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		Status:  models.SalonStatusPending,
	}
	if err := s.Salons.Create(ctx, salon); err != nil {
		return nil, fmt.Errorf("failed to create salon: %w", err)
	}
	s.Resolver.Invalidate(ctx, ownerID)
	utils.GetLogger().Info("salon registered", zap.String("salonID", salon.ID), zap.String("ownerID", ownerID))
	return salon, nil
}

func (s *DefaultSalonService) GetMySalon(ctx context.Context, ownerID string) (*models.Salon, error) {
	return s.Resolver.ResolveSalonForOwner(ctx, ownerID)
}

func (s *DefaultSalonService) UpdateMySalon(ctx context.Context, ownerID string, req models.SalonUpdateRequest) (*models.Salon, error) {
	salon, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Validation("salon name cannot be empty")
		}
		salon.Name = name
	}
	if req.Phone != nil {
		salon.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		salon.Address = strings.TrimSpace(*req.Address)
	}

	if err := s.Salons.Update(ctx, salon); err != nil {
		return nil, fmt.Errorf("failed to update salon: %w", err)
	}
	s.Resolver.Invalidate(ctx, ownerID)
	return salon, nil
}

func (s *DefaultSalonService) ListApprovedSalons(ctx context.Context, q models.PageQuery) (*models.Page[models.Salon], error) {
	salons, total, err := s.Salons.List(ctx, models.SalonStatusApproved, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list salons: %w", err)
	}
	return models.NewPage(salons, total, q), nil
}

func (s *DefaultSalonService) ListPublicServices(ctx context.Context, salonID string) ([]models.Service, error) {
	salon, err := s.Salons.GetByID(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load salon: %w", err)
	}
	if salon == nil || salon.Status != models.SalonStatusApproved {
		return nil, apperr.NotFound("salon not found")
	}
	services, err := s.Services.ListBySalon(ctx, salonID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

var statusMoves = map[string][]string{
	models.SalonStatusApproved:  {models.SalonStatusPending, models.SalonStatusSuspended, models.SalonStatusRejected},
	models.SalonStatusRejected:  {models.SalonStatusPending},
	models.SalonStatusSuspended: {models.SalonStatusApproved},
}

func (s *DefaultSalonService) SetStatus(ctx context.Context, adminID, salonID, status, reason string) (*models.Salon, error) {
	from, ok := statusMoves[status]
	if !ok {
		return nil, apperr.Validation("unsupported salon status %q", status)
	}
	salon, err := s.Salons.GetByID(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load salon: %w", err)
	}
	if salon == nil {
		return nil, apperr.NotFound("salon not found")
	}
	if !contains(from, salon.Status) {
		return nil, apperr.Conflict("salon cannot move from %s to %s", salon.Status, status)
	}

	salon.Status = status
	salon.StatusReason = strings.TrimSpace(reason)
	if status == models.SalonStatusApproved {
		at := s.now()
		salon.ApprovedBy = adminID
		salon.ApprovedAt = &at
		salon.StatusReason = ""
	}
	if err := s.Salons.Update(ctx, salon); err != nil {
		return nil, fmt.Errorf("failed to update salon status: %w", err)
	}
	s.Resolver.Invalidate(ctx, salon.OwnerID)
	utils.GetLogger().Info("salon status changed",
		zap.String("salonID", salon.ID),
		zap.String("status", status),
		zap.String("adminID", adminID),
	)
	return salon, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
