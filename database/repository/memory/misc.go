package memory

import (
	"context"
	"sort"
	"time"

	"auracare/models"
)

type FeedbackRepo struct{ t *table[models.InternalStaffFeedback] }

func NewFeedbackRepo() *FeedbackRepo {
	return &FeedbackRepo{t: newTable[models.InternalStaffFeedback]()}
}

func (r *FeedbackRepo) Create(_ context.Context, fb *models.InternalStaffFeedback) error {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}
	r.t.insert(fb.ID, *fb)
	return nil
}

func (r *FeedbackRepo) ListBySalon(_ context.Context, salonID, staffID string, q models.PageQuery) ([]models.InternalStaffFeedback, int64, error) {
	rows := r.t.filter(func(f *models.InternalStaffFeedback) bool {
		return f.SalonID == salonID && (staffID == "" || f.StaffID == staffID)
	})
	sortNewest(rows, func(f *models.InternalStaffFeedback) time.Time { return f.CreatedAt })
	items, total := page(rows, q)
	return items, total, nil
}

func (r *FeedbackRepo) SummaryForStaff(_ context.Context, salonID, staffID string) (*models.FeedbackSummary, error) {
	rows := r.t.filter(func(f *models.InternalStaffFeedback) bool {
		return f.SalonID == salonID && f.StaffID == staffID
	})
	summary := &models.FeedbackSummary{StaffID: staffID, Count: int64(len(rows))}
	if len(rows) == 0 {
		return summary, nil
	}
	sum := 0
	for _, f := range rows {
		sum += f.Rating
	}
	summary.AverageRating = models.RoundMoney(float64(sum) / float64(len(rows)))
	return summary, nil
}

// PolicyRepo keys policies by salon id.
type PolicyRepo struct{ t *table[models.CancellationPolicy] }

func NewPolicyRepo() *PolicyRepo { return &PolicyRepo{t: newTable[models.CancellationPolicy]()} }

func (r *PolicyRepo) GetBySalon(_ context.Context, salonID string) (*models.CancellationPolicy, error) {
	return r.t.get(salonID), nil
}

func (r *PolicyRepo) Upsert(_ context.Context, p *models.CancellationPolicy) error {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	r.t.insert(p.SalonID, *p)
	return nil
}

type PayrollRepo struct{ t *table[models.Payroll] }

func NewPayrollRepo() *PayrollRepo { return &PayrollRepo{t: newTable[models.Payroll]()} }

func (r *PayrollRepo) GetByID(_ context.Context, id string) (*models.Payroll, error) {
	return r.t.get(id), nil
}

func (r *PayrollRepo) GetForStaff(_ context.Context, salonID, staffID, period string) (*models.Payroll, error) {
	return r.t.find(func(p *models.Payroll) bool {
		return p.SalonID == salonID && p.StaffID == staffID && p.Period == period
	}), nil
}

func (r *PayrollRepo) Save(_ context.Context, p *models.Payroll) error {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	r.t.insert(p.ID, *p)
	return nil
}

func (r *PayrollRepo) ListBySalon(_ context.Context, salonID, period string) ([]models.Payroll, error) {
	rows := r.t.filter(func(p *models.Payroll) bool {
		return p.SalonID == salonID && (period == "" || p.Period == period)
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Period != rows[j].Period {
			return rows[i].Period > rows[j].Period
		}
		return rows[i].StaffName < rows[j].StaffName
	})
	return rows, nil
}
