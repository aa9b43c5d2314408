package payroll

import (
	"context"
	"fmt"
	"time"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/services/salon"
	"auracare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PayrollService generates and settles monthly payslips.
type PayrollService interface {
	Generate(ctx context.Context, ownerID, period string) ([]models.Payroll, error)
	List(ctx context.Context, ownerID, period string) ([]models.Payroll, error)
	Approve(ctx context.Context, ownerID, payrollID string) (*models.Payroll, error)
	MarkPaid(ctx context.Context, ownerID, payrollID string) (*models.Payroll, error)
	// GenerateForAllSalons drafts payslips for every approved salon and
	// returns how many salons were processed.
	GenerateForAllSalons(ctx context.Context, period string) (int, error)
}

// DefaultPayrollService is the production implementation. PFRatePercent and
// ProfessionalTax come from configuration.
type DefaultPayrollService struct {
	Payrolls        repository.PayrollRepository
	Staff           repository.StaffRepository
	Schedules       repository.ScheduleRequestRepository
	Salons          repository.SalonRepository
	Resolver        salon.Resolver
	PFRatePercent   float64
	ProfessionalTax float64
	Now             func() time.Time
}

func (s *DefaultPayrollService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultPayrollService) Generate(ctx context.Context, ownerID, period string) ([]models.Payroll, error) {
	if _, _, err := ParsePeriod(period); err != nil {
		return nil, apperr.Validation("period must be YYYY-MM")
	}
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.generateForSalon(ctx, owned.ID, period); err != nil {
		return nil, err
	}
	slips, err := s.Payrolls.ListBySalon(ctx, owned.ID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll: %w", err)
	}
	return slips, nil
}

func (s *DefaultPayrollService) generateForSalon(ctx context.Context, salonID, period string) error {
	from, to, err := ParsePeriod(period)
	if err != nil {
		return err
	}
	staff, err := s.Staff.ListBySalon(ctx, salonID, true)
	if err != nil {
		return fmt.Errorf("failed to list staff: %w", err)
	}
	if len(staff) == 0 {
		return nil
	}

	ids := make([]string, 0, len(staff))
	for _, st := range staff {
		ids = append(ids, st.ID)
	}
	leave, err := s.Schedules.ListApprovedLeave(ctx, ids, from, to)
	if err != nil {
		return fmt.Errorf("failed to load approved leave: %w", err)
	}
	spans := make(map[string][]DateRange, len(staff))
	for _, req := range leave {
		spans[req.StaffID] = append(spans[req.StaffID], DateRange{Start: req.StartDate, End: req.EndDate})
	}
	leaveDays := make(map[string]int, len(spans))
	for id, rs := range spans {
		leaveDays[id] = MergedLeaveDays(rs, from, to)
	}

	now := s.now()
	for _, st := range staff {
		existing, err := s.Payrolls.GetForStaff(ctx, salonID, st.ID, period)
		if err != nil {
			return fmt.Errorf("failed to load payslip: %w", err)
		}
		if existing != nil && existing.Status != models.PayrollDraft {
			continue
		}

		slip := &models.Payroll{
			ID:                uuid.New().String(),
			SalonID:           salonID,
			StaffID:           st.ID,
			StaffName:         st.Name,
			Period:            period,
			BasicSalary:       st.BasicSalary,
			Allowances:        st.Allowances,
			PFRatePercent:     s.PFRatePercent,
			ProfessionalTax:   s.ProfessionalTax,
			LeaveDays:         leaveDays[st.ID],
			ProductDeductions: st.ProductDeductions,
			Status:            models.PayrollDraft,
			CreatedAt:         now,
		}
		if existing != nil {
			slip.ID = existing.ID
			slip.CreatedAt = existing.CreatedAt
		}
		slip.PayrollBreakdown = Compute(models.PayrollInput{
			BasicSalary:       slip.BasicSalary,
			Allowances:        slip.Allowances,
			PFRatePercent:     slip.PFRatePercent,
			ProfessionalTax:   slip.ProfessionalTax,
			LeaveDays:         slip.LeaveDays,
			ProductDeductions: slip.ProductDeductions,
		})
		slip.UpdatedAt = now

		if err := s.Payrolls.Save(ctx, slip); err != nil {
			return fmt.Errorf("failed to save payslip: %w", err)
		}
	}

	utils.GetLogger().Info("payroll drafts generated",
		zap.String("salonID", salonID),
		zap.String("period", period),
		zap.Int("staff", len(staff)),
	)
	return nil
}

func (s *DefaultPayrollService) List(ctx context.Context, ownerID, period string) ([]models.Payroll, error) {
	if period != "" {
		if _, _, err := ParsePeriod(period); err != nil {
			return nil, apperr.Validation("period must be YYYY-MM")
		}
	}
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	slips, err := s.Payrolls.ListBySalon(ctx, owned.ID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll: %w", err)
	}
	return slips, nil
}

func (s *DefaultPayrollService) Approve(ctx context.Context, ownerID, payrollID string) (*models.Payroll, error) {
	return s.advance(ctx, ownerID, payrollID, models.PayrollDraft, models.PayrollApproved)
}

func (s *DefaultPayrollService) MarkPaid(ctx context.Context, ownerID, payrollID string) (*models.Payroll, error) {
	return s.advance(ctx, ownerID, payrollID, models.PayrollApproved, models.PayrollPaid)
}

func (s *DefaultPayrollService) advance(ctx context.Context, ownerID, payrollID, from, to string) (*models.Payroll, error) {
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	slip, err := s.Payrolls.GetByID(ctx, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payslip: %w", err)
	}
	if slip == nil {
		return nil, apperr.NotFound("payslip not found")
	}
	if slip.SalonID != owned.ID {
		return nil, apperr.Forbidden("payslip belongs to another salon")
	}
	if slip.Status != from {
		return nil, apperr.Conflict("payslip is %s, expected %s", slip.Status, from)
	}

	slip.Status = to
	slip.UpdatedAt = s.now()
	if err := s.Payrolls.Save(ctx, slip); err != nil {
		return nil, fmt.Errorf("failed to update payslip: %w", err)
	}
	return slip, nil
}

func (s *DefaultPayrollService) GenerateForAllSalons(ctx context.Context, period string) (int, error) {
	salons, err := s.Salons.ListByStatus(ctx, models.SalonStatusApproved)
	if err != nil {
		return 0, fmt.Errorf("failed to list salons: %w", err)
	}
	done := 0
	for _, sl := range salons {
		if err := s.generateForSalon(ctx, sl.ID, period); err != nil {
			utils.GetLogger().Error("payroll generation failed",
				zap.String("salonID", sl.ID),
				zap.String("period", period),
				zap.Error(err),
			)
			continue
		}
		done++
	}
	return done, nil
}
