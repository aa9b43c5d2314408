package admin

import (
	"context"
	"fmt"
	"time"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/apperr"
)

// StatusSetter applies salon status decisions.
type StatusSetter interface {
	SetStatus(ctx context.Context, adminID, salonID, status, reason string) (*models.Salon, error)
}

// AdminService covers salon moderation, user listings and platform finance.
type AdminService interface {
	ListSalons(ctx context.Context, status string, q models.PageQuery) (*models.Page[models.Salon], error)
	ApproveSalon(ctx context.Context, adminID, salonID string) (*models.Salon, error)
	RejectSalon(ctx context.Context, adminID, salonID, reason string) (*models.Salon, error)
	SuspendSalon(ctx context.Context, adminID, salonID, reason string) (*models.Salon, error)
	ListUsers(ctx context.Context, role string, q models.PageQuery) (*models.Page[models.User], error)
	// FinanceSummary defaults to the month ending now when from or to is zero.
	FinanceSummary(ctx context.Context, from, to time.Time) (*models.FinanceSummary, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Salons       repository.SalonRepository
	Users        repository.UserRepository
	Appointments repository.AppointmentRepository
	GiftCards    repository.GiftCardRepository
	Status       StatusSetter
	Now          func() time.Time
}

var salonStatuses = map[string]bool{
	models.SalonStatusPending:   true,
	models.SalonStatusApproved:  true,
	models.SalonStatusRejected:  true,
	models.SalonStatusSuspended: true,
}

var userRoles = map[string]bool{
	models.RoleCustomer: true,
	models.RoleSalon:    true,
	models.RoleStaff:    true,
	models.RoleAdmin:    true,
}

func (s *DefaultAdminService) ListSalons(ctx context.Context, status string, q models.PageQuery) (*models.Page[models.Salon], error) {
	if status != "" && !salonStatuses[status] {
		return nil, apperr.Validation("unknown salon status %q", status)
	}
	salons, total, err := s.Salons.List(ctx, status, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list salons: %w", err)
	}
	return models.NewPage(salons, total, q), nil
}

func (s *DefaultAdminService) ApproveSalon(ctx context.Context, adminID, salonID string) (*models.Salon, error) {
	return s.decide(ctx, adminID, salonID, models.SalonStatusApproved, "")
}

func (s *DefaultAdminService) RejectSalon(ctx context.Context, adminID, salonID, reason string) (*models.Salon, error) {
	return s.decide(ctx, adminID, salonID, models.SalonStatusRejected, reason)
}

func (s *DefaultAdminService) SuspendSalon(ctx context.Context, adminID, salonID, reason string) (*models.Salon, error) {
	return s.decide(ctx, adminID, salonID, models.SalonStatusSuspended, reason)
}

func (s *DefaultAdminService) decide(ctx context.Context, adminID, salonID, status, reason string) (*models.Salon, error) {
	if salonID == "" {
		return nil, apperr.Validation("salon id is required")
	}
	return s.Status.SetStatus(ctx, adminID, salonID, status, reason)
}

func (s *DefaultAdminService) ListUsers(ctx context.Context, role string, q models.PageQuery) (*models.Page[models.User], error) {
	if role != "" && !userRoles[role] {
		return nil, apperr.Validation("unknown role %q", role)
	}
	users, total, err := s.Users.List(ctx, role, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return models.NewPage(users, total, q), nil
}

func (s *DefaultAdminService) FinanceSummary(ctx context.Context, from, to time.Time) (*models.FinanceSummary, error) {
	if to.IsZero() {
		to = time.Now()
		if s.Now != nil {
			to = s.Now()
		}
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}
	if !from.Before(to) {
		return nil, apperr.Validation("from must be before to")
	}

	rows, err := s.Appointments.RevenueBySalon(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	liability, err := s.GiftCards.ActiveLiability(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum gift card liability: %w", err)
	}

	summary := &models.FinanceSummary{
		From:              from,
		To:                to,
		GiftCardLiability: liability,
		Salons:            rows,
	}
	if summary.Salons == nil {
		summary.Salons = []models.SalonRevenue{}
	}
	for _, row := range rows {
		summary.TotalRevenue += row.Revenue
		summary.TotalAppointments += row.Appointments
		summary.CancellationFees += row.CancellationFees
	}
	summary.TotalRevenue = models.RoundMoney(summary.TotalRevenue)
	summary.CancellationFees = models.RoundMoney(summary.CancellationFees)
	return summary, nil
}
