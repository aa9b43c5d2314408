package policyRepo

import (
	"context"

	"auracare/models"
)

// CancellationPolicyRepository stores at most one policy per salon.
type CancellationPolicyRepository interface {
	// GetBySalon returns the stored policy, or nil when the salon never saved one.
	GetBySalon(ctx context.Context, salonID string) (*models.CancellationPolicy, error)
	Upsert(ctx context.Context, policy *models.CancellationPolicy) error
}
