package serviceRepo

import (
	"context"

	"auracare/models"
)

// ServiceRepository defines methods for a salon's service menu.
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// GetByIDs returns the services that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]models.Service, error)
	ListBySalon(ctx context.Context, salonID string, activeOnly bool) ([]models.Service, error)
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
}
