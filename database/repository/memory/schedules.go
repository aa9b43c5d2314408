package memory

import (
	"context"
	"time"

	"auracare/models"
)

type ScheduleRequestRepo struct{ t *table[models.ScheduleRequest] }

func NewScheduleRequestRepo() *ScheduleRequestRepo {
	return &ScheduleRequestRepo{t: newTable[models.ScheduleRequest]()}
}

func (r *ScheduleRequestRepo) Create(_ context.Context, req *models.ScheduleRequest) error {
	stamp(&req.CreatedAt, &req.UpdatedAt)
	r.t.insert(req.ID, *req)
	return nil
}

func (r *ScheduleRequestRepo) GetByID(_ context.Context, id string) (*models.ScheduleRequest, error) {
	return r.t.get(id), nil
}

func (r *ScheduleRequestRepo) Update(_ context.Context, req *models.ScheduleRequest) error {
	req.UpdatedAt = time.Now()
	return r.t.replace(req.ID, *req)
}

func (r *ScheduleRequestRepo) newest(match func(*models.ScheduleRequest) bool) []models.ScheduleRequest {
	reqs := r.t.filter(match)
	sortNewest(reqs, func(x *models.ScheduleRequest) time.Time { return x.CreatedAt })
	return reqs
}

func (r *ScheduleRequestRepo) ListByStaff(_ context.Context, staffID string) ([]models.ScheduleRequest, error) {
	return r.newest(func(x *models.ScheduleRequest) bool { return x.StaffID == staffID }), nil
}

func (r *ScheduleRequestRepo) ListPendingBySalon(_ context.Context, salonID string) ([]models.ScheduleRequest, error) {
	return r.newest(func(x *models.ScheduleRequest) bool {
		return x.SalonID == salonID && x.Status == models.SchedulePending
	}), nil
}

func (r *ScheduleRequestRepo) ListPendingByStaffIDs(_ context.Context, staffIDs []string) ([]models.ScheduleRequest, error) {
	return r.newest(func(x *models.ScheduleRequest) bool {
		return contains(staffIDs, x.StaffID) && x.Status == models.SchedulePending
	}), nil
}

func (r *ScheduleRequestRepo) ListApprovedLeave(_ context.Context, staffIDs []string, from, to time.Time) ([]models.ScheduleRequest, error) {
	return r.t.filter(func(x *models.ScheduleRequest) bool {
		return contains(staffIDs, x.StaffID) &&
			x.Type == models.ScheduleLeave &&
			x.Status == models.ScheduleApproved &&
			!x.StartDate.After(to) && !x.EndDate.Before(from)
	}), nil
}
