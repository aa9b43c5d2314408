package salon

import (
	"context"
	"fmt"
	"strings"

	"auracare/models"
	"auracare/services/apperr"

	"github.com/google/uuid"
)

// CatalogService manages the service menu of the owner's salon.
type CatalogService interface {
	CreateService(ctx context.Context, ownerID string, req models.ServiceRequest) (*models.Service, error)
	ListServices(ctx context.Context, ownerID string) ([]models.Service, error)
	UpdateService(ctx context.Context, ownerID, serviceID string, req models.ServiceRequest) (*models.Service, error)
	DeleteService(ctx context.Context, ownerID, serviceID string) error
}

func validateService(req models.ServiceRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperr.Validation("service name is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return apperr.Validation("service category is required")
	}
	if req.Price <= 0 {
		return apperr.Validation("price must be greater than zero")
	}
	if req.DurationMinutes <= 0 {
		return apperr.Validation("durationMinutes must be greater than zero")
	}
	return nil
}

func (s *DefaultSalonService) CreateService(ctx context.Context, ownerID string, req models.ServiceRequest) (*models.Service, error) {
	if err := validateService(req); err != nil {
		return nil, err
	}
	salon, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	svc := &models.Service{
		ID:              uuid.New().String(),
		SalonID:         salon.ID,
		Name:            strings.TrimSpace(req.Name),
		Category:        strings.TrimSpace(req.Category),
		DurationMinutes: req.DurationMinutes,
		Price:           models.RoundMoney(req.Price),
		Active:          req.Active == nil || *req.Active,
	}
	if err := s.Services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *DefaultSalonService) ListServices(ctx context.Context, ownerID string) ([]models.Service, error) {
	salon, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	services, err := s.Services.ListBySalon(ctx, salon.ID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *DefaultSalonService) ownedService(ctx context.Context, ownerID, serviceID string) (*models.Service, error) {
	salon, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if svc == nil {
		return nil, apperr.NotFound("service not found")
	}
	if svc.SalonID != salon.ID {
		return nil, apperr.Forbidden("service belongs to another salon")
	}
	return svc, nil
}

func (s *DefaultSalonService) UpdateService(ctx context.Context, ownerID, serviceID string, req models.ServiceRequest) (*models.Service, error) {
	if err := validateService(req); err != nil {
		return nil, err
	}
	svc, err := s.ownedService(ctx, ownerID, serviceID)
	if err != nil {
		return nil, err
	}

	svc.Name = strings.TrimSpace(req.Name)
	svc.Category = strings.TrimSpace(req.Category)
	svc.DurationMinutes = req.DurationMinutes
	svc.Price = models.RoundMoney(req.Price)
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if err := s.Services.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

func (s *DefaultSalonService) DeleteService(ctx context.Context, ownerID, serviceID string) error {
	if _, err := s.ownedService(ctx, ownerID, serviceID); err != nil {
		return err
	}
	if err := s.Services.Delete(ctx, serviceID); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}
