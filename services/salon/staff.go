package salon

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"auracare/models"
	"auracare/services/apperr"

	"github.com/google/uuid"
)

// StaffService manages the employees of the owner's salon.
type StaffService interface {
	AddStaff(ctx context.Context, ownerID string, req models.StaffRequest) (*models.Staff, error)
	ListStaff(ctx context.Context, ownerID string) ([]models.Staff, error)
	UpdateStaff(ctx context.Context, ownerID, staffID string, req models.StaffUpdateRequest) (*models.Staff, error)
	RemoveStaff(ctx context.Context, ownerID, staffID string) error
}

// normalizeSkills trims, drops blanks and de-duplicates case-insensitively.
// Any spelling of "all" becomes the SkillAll sentinel.
func normalizeSkills(skills []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" || seen[key] {
			continue
		}
		seen[key] = true
		if key == strings.ToLower(models.SkillAll) {
			skill = models.SkillAll
		}
		out = append(out, skill)
	}
	return out
}

func validatePay(basic, allowances, product float64) error {
	if basic < 0 || allowances < 0 || product < 0 {
		return apperr.Validation("salary fields cannot be negative")
	}
	return nil
}

func (s *DefaultSalonService) AddStaff(ctx context.Context, ownerID string, req models.StaffRequest) (*models.Staff, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return nil, apperr.Validation("staff name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("a valid staff email is required")
	}
	if err := validatePay(req.BasicSalary, req.Allowances, req.ProductDeductions); err != nil {
		return nil, err
	}

	salon, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	existing, err := s.Staff.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff email: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("a staff member with this email already exists")
	}

	staff := &models.Staff{
		ID:                uuid.New().String(),
		SalonID:           salon.ID,
		Name:              name,
		Email:             email,
		Phone:             strings.TrimSpace(req.Phone),
		Role:              strings.TrimSpace(req.Role),
		Skills:            normalizeSkills(req.Skills),
		BasicSalary:       req.BasicSalary,
		Allowances:        req.Allowances,
		ProductDeductions: req.ProductDeductions,
		Status:            models.StaffStatusActive,
	}
	// Link a staff login that registered before the owner added the record.
	if user, err := s.Users.GetByEmail(ctx, email); err == nil && user != nil && user.Role == models.RoleStaff {
		staff.UserID = user.ID
	}

	if err := s.Staff.Create(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	return staff, nil
}

func (s *DefaultSalonService) ListStaff(ctx context.Context, ownerID string) ([]models.Staff, error) {
	salon, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	staff, err := s.Staff.ListBySalon(ctx, salon.ID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (s *DefaultSalonService) ownedStaff(ctx context.Context, ownerID, staffID string) (*models.Staff, error) {
	salon, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	staff, err := s.Staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	if staff == nil {
		return nil, apperr.NotFound("staff member not found")
	}
	if staff.SalonID != salon.ID {
		return nil, apperr.Forbidden("staff member belongs to another salon")
	}
	return staff, nil
}

func (s *DefaultSalonService) UpdateStaff(ctx context.Context, ownerID, staffID string, req models.StaffUpdateRequest) (*models.Staff, error) {
	staff, err := s.ownedStaff(ctx, ownerID, staffID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Validation("staff name cannot be empty")
		}
		staff.Name = name
	}
	if req.Phone != nil {
		staff.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		staff.Role = strings.TrimSpace(*req.Role)
	}
	if req.Skills != nil {
		staff.Skills = normalizeSkills(*req.Skills)
	}
	if req.BasicSalary != nil {
		staff.BasicSalary = *req.BasicSalary
	}
	if req.Allowances != nil {
		staff.Allowances = *req.Allowances
	}
	if req.ProductDeductions != nil {
		staff.ProductDeductions = *req.ProductDeductions
	}
	if req.Status != nil {
		switch *req.Status {
		case models.StaffStatusActive, models.StaffStatusInactive:
			staff.Status = *req.Status
		default:
			return nil, apperr.Validation("status must be active or inactive")
		}
	}
	if err := validatePay(staff.BasicSalary, staff.Allowances, staff.ProductDeductions); err != nil {
		return nil, err
	}

	if err := s.Staff.Update(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to update staff: %w", err)
	}
	return staff, nil
}

func (s *DefaultSalonService) RemoveStaff(ctx context.Context, ownerID, staffID string) error {
	if _, err := s.ownedStaff(ctx, ownerID, staffID); err != nil {
		return err
	}
	if err := s.Staff.Delete(ctx, staffID); err != nil {
		return fmt.Errorf("failed to remove staff: %w", err)
	}
	return nil
}
