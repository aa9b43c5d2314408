package memory

import (
	"context"
	"sort"
	"time"

	appointmentRepo "auracare/database/repository/appointment"
	"auracare/models"
)

type AppointmentRepo struct{ t *table[models.Appointment] }

func NewAppointmentRepo() *AppointmentRepo {
	return &AppointmentRepo{t: newTable[models.Appointment]()}
}

func (r *AppointmentRepo) Create(_ context.Context, a *models.Appointment) error {
	stamp(&a.CreatedAt, &a.UpdatedAt)
	r.t.insert(a.ID, *a)
	return nil
}

func (r *AppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	return r.t.get(id), nil
}

func (r *AppointmentRepo) Update(_ context.Context, a *models.Appointment) error {
	a.UpdatedAt = time.Now()
	return r.t.replace(a.ID, *a)
}

func (r *AppointmentRepo) list(match func(*models.Appointment) bool, q models.PageQuery) ([]models.Appointment, int64, error) {
	appts := r.t.filter(match)
	sortNewest(appts, func(a *models.Appointment) time.Time { return a.StartTime })
	items, total := page(appts, q)
	return items, total, nil
}

func (r *AppointmentRepo) ListByCustomer(_ context.Context, customerID string, q models.PageQuery) ([]models.Appointment, int64, error) {
	return r.list(func(a *models.Appointment) bool { return a.CustomerID == customerID }, q)
}

func (r *AppointmentRepo) ListBySalon(_ context.Context, salonID, status string, q models.PageQuery) ([]models.Appointment, int64, error) {
	return r.list(func(a *models.Appointment) bool {
		return a.SalonID == salonID && (status == "" || a.Status == status)
	}, q)
}

func (r *AppointmentRepo) ListByStaff(_ context.Context, staffID string, q models.PageQuery) ([]models.Appointment, int64, error) {
	return r.list(func(a *models.Appointment) bool { return a.StaffID == staffID }, q)
}

func (r *AppointmentRepo) HasOverlap(_ context.Context, staffID string, start, end time.Time, excludeID string) (bool, error) {
	hit := r.t.find(func(a *models.Appointment) bool {
		return a.StaffID == staffID &&
			a.ID != excludeID &&
			contains(appointmentRepo.BlockingStatuses, a.Status) &&
			a.StartTime.Before(end) && a.EndTime.After(start)
	})
	return hit != nil, nil
}

func (r *AppointmentRepo) RevenueBySalon(_ context.Context, from, to time.Time) ([]models.SalonRevenue, error) {
	bySalon := map[string]*models.SalonRevenue{}
	for _, a := range r.t.filter(func(a *models.Appointment) bool {
		return !a.StartTime.Before(from) && a.StartTime.Before(to)
	}) {
		switch a.Status {
		case models.AppointmentCompleted, models.AppointmentCancelled, models.AppointmentNoShow:
		default:
			continue
		}
		row, ok := bySalon[a.SalonID]
		if !ok {
			row = &models.SalonRevenue{SalonID: a.SalonID}
			bySalon[a.SalonID] = row
		}
		if a.Status == models.AppointmentCompleted {
			row.Revenue += a.TotalAmount
			row.Appointments++
		}
		row.CancellationFees += a.CancellationFee
	}

	out := make([]models.SalonRevenue, 0, len(bySalon))
	for _, row := range bySalon {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].SalonID < out[j].SalonID
	})
	return out, nil
}

func (r *AppointmentRepo) MonthlyRevenue(_ context.Context, salonID string, since time.Time) ([]models.MonthlyRevenue, error) {
	byMonth := map[string]float64{}
	for _, a := range r.t.filter(func(a *models.Appointment) bool {
		return a.SalonID == salonID && a.Status == models.AppointmentCompleted && !a.StartTime.Before(since)
	}) {
		byMonth[a.StartTime.UTC().Format("2006-01")] += a.TotalAmount
	}

	out := make([]models.MonthlyRevenue, 0, len(byMonth))
	for month, revenue := range byMonth {
		out = append(out, models.MonthlyRevenue{Month: month, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
