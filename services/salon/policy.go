package salon

import (
	"context"
	"fmt"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/apperr"

	"github.com/google/uuid"
)

// PolicyService manages the owner's cancellation policy.
type PolicyService interface {
	GetCancellationPolicy(ctx context.Context, ownerID string) (*models.CancellationPolicy, error)
	UpsertCancellationPolicy(ctx context.Context, ownerID string, req models.CancellationPolicyRequest) (*models.CancellationPolicy, error)
}

// EffectivePolicy returns the salon's stored policy, or the default one.
func EffectivePolicy(ctx context.Context, policies repository.CancellationPolicyRepository, salonID string) (*models.CancellationPolicy, error) {
	policy, err := policies.GetBySalon(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cancellation policy: %w", err)
	}
	if policy == nil {
		return models.DefaultCancellationPolicy(salonID), nil
	}
	return policy, nil
}

func (s *DefaultSalonService) GetCancellationPolicy(ctx context.Context, ownerID string) (*models.CancellationPolicy, error) {
	salon, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return EffectivePolicy(ctx, s.Policies, salon.ID)
}

func (s *DefaultSalonService) UpsertCancellationPolicy(ctx context.Context, ownerID string, req models.CancellationPolicyRequest) (*models.CancellationPolicy, error) {
	if req.FreeCancellationHours < 0 {
		return nil, apperr.Validation("freeCancellationHours cannot be negative")
	}
	if !isPercent(req.LateCancellationFeePercent) || !isPercent(req.NoShowFeePercent) {
		return nil, apperr.Validation("fee percentages must be between 0 and 100")
	}

	salon, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	policy, err := s.Policies.GetBySalon(ctx, salon.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cancellation policy: %w", err)
	}
	if policy == nil {
		policy = &models.CancellationPolicy{ID: uuid.New().String(), SalonID: salon.ID, Active: true}
	}
	policy.FreeCancellationHours = req.FreeCancellationHours
	policy.LateCancellationFeePercent = req.LateCancellationFeePercent
	policy.NoShowFeePercent = req.NoShowFeePercent
	if req.Active != nil {
		policy.Active = *req.Active
	}

	if err := s.Policies.Upsert(ctx, policy); err != nil {
		return nil, fmt.Errorf("failed to save cancellation policy: %w", err)
	}
	return policy, nil
}

func isPercent(v float64) bool {
	return v >= 0 && v <= 100
}
