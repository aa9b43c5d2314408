package customerRepo

import (
	"context"

	"auracare/models"
)

// CustomerRepository defines methods for customer profile access.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	// GetByUserID returns the profile owned by a user, or nil.
	GetByUserID(ctx context.Context, userID string) (*models.Customer, error)
}
