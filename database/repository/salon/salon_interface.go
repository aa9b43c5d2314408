package salonRepo

import (
	"context"

	"auracare/models"
)

// SalonRepository defines methods for salon data access.
type SalonRepository interface {
	Create(ctx context.Context, salon *models.Salon) error
	GetByID(ctx context.Context, id string) (*models.Salon, error)
	// GetByOwnerID returns the salon linked to an owner user, or nil.
	GetByOwnerID(ctx context.Context, ownerID string) (*models.Salon, error)
	// GetByEmail matches the salon's lower-cased contact email.
	GetByEmail(ctx context.Context, email string) (*models.Salon, error)
	// Update overwrites the stored salon.
	Update(ctx context.Context, salon *models.Salon) error
	// LinkOwner sets ownerId only while it is still empty. It reports whether the link was made.
	LinkOwner(ctx context.Context, id, ownerID string) (bool, error)
	// List returns one page of salons, optionally filtered by status.
	List(ctx context.Context, status string, q models.PageQuery) ([]models.Salon, int64, error)
	// ListByStatus returns every salon with the given status.
	ListByStatus(ctx context.Context, status string) ([]models.Salon, error)
}
