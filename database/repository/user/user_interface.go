package userRepo

import (
	"context"

	"auracare/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record. Emails are unique.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID. It returns nil when no user matches.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its lower-cased email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns one page of users, optionally filtered by role.
	List(ctx context.Context, role string, q models.PageQuery) ([]models.User, int64, error)
	// UpdateFCMToken stores the push token of a user's device.
	UpdateFCMToken(ctx context.Context, id, token string) error
}
