package salon

import (
	"context"
	"fmt"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/utils"

	"go.uber.org/zap"
)

// Resolver finds the salon an authenticated owner manages and the staff
// record behind a staff login.
type Resolver interface {
	ResolveSalonForOwner(ctx context.Context, userID string) (*models.Salon, error)
	ResolveStaffForUser(ctx context.Context, userID string) (*models.Staff, error)
}

// DefaultResolver looks salons up by ownerId and falls back to the owner's
// email for salons created before owner linking. Results are cached per owner.
type DefaultResolver struct {
	Salons repository.SalonRepository
	Users  repository.UserRepository
	Staff  repository.StaffRepository
	Cache  *utils.JSONCache
}

func (r *DefaultResolver) ResolveSalonForOwner(ctx context.Context, userID string) (*models.Salon, error) {
	var cached models.Salon
	if hit, err := r.Cache.Get(ctx, userID, &cached); err != nil {
		utils.GetLogger().Warn("salon cache read failed", zap.String("userID", userID), zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	salon, err := r.Salons.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load salon by owner: %w", err)
	}
	if salon == nil {
		salon, err = r.resolveByEmail(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	if err := r.Cache.Set(ctx, userID, salon); err != nil {
		utils.GetLogger().Warn("salon cache write failed", zap.String("userID", userID), zap.Error(err))
	}
	return salon, nil
}

func (r *DefaultResolver) resolveByEmail(ctx context.Context, userID string) (*models.Salon, error) {
	user, err := r.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("salon not found for this account")
	}

	salon, err := r.Salons.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load salon by email: %w", err)
	}
	// A salon already linked to another owner is never handed out by email.
	if salon == nil || (salon.OwnerID != "" && salon.OwnerID != userID) {
		return nil, apperr.NotFound("salon not found for this account")
	}

	if salon.OwnerID == "" {
		linked, err := r.Salons.LinkOwner(ctx, salon.ID, userID)
		if err != nil {
			utils.GetLogger().Warn("failed to back-fill salon owner", zap.String("salonID", salon.ID), zap.Error(err))
		} else if linked {
			utils.GetLogger().Info("linked salon to owner by email", zap.String("salonID", salon.ID), zap.String("userID", userID))
		}
		salon.OwnerID = userID
	}
	return salon, nil
}

// Invalidate drops the cached salon of an owner.
func (r *DefaultResolver) Invalidate(ctx context.Context, userID string) {
	if r == nil || userID == "" {
		return
	}
	if err := r.Cache.Delete(ctx, userID); err != nil {
		utils.GetLogger().Warn("salon cache invalidation failed", zap.String("userID", userID), zap.Error(err))
	}
}

// ResolveStaffForUser finds the staff record linked to a login, falling back to
// an unlinked record with the login's email and linking it.
func (r *DefaultResolver) ResolveStaffForUser(ctx context.Context, userID string) (*models.Staff, error) {
	staff, err := r.Staff.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff by user: %w", err)
	}
	if staff != nil {
		return staff, nil
	}

	user, err := r.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("staff record not found for this account")
	}
	staff, err = r.Staff.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff by email: %w", err)
	}
	if staff == nil || (staff.UserID != "" && staff.UserID != userID) {
		return nil, apperr.NotFound("staff record not found for this account")
	}
	if staff.UserID == "" {
		if _, err := r.Staff.LinkUser(ctx, staff.ID, userID); err != nil {
			utils.GetLogger().Warn("failed to link staff to user", zap.String("staffID", staff.ID), zap.Error(err))
		}
		staff.UserID = userID
	}
	return staff, nil
}
