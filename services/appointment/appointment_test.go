package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"auracare/database/repository"
	"auracare/database/repository/memory"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/services/salon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu      sync.Mutex
	userIDs []string
}

func (r *recordingNotifier) Notify(_ context.Context, userID, _, _ string, _ map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userIDs = append(r.userIDs, userID)
	return nil
}

type recordingReminders struct {
	ids []string
}

func (r *recordingReminders) ScheduleReminder(_ context.Context, appt *models.Appointment) error {
	r.ids = append(r.ids, appt.ID)
	return nil
}

type harness struct {
	svc       *DefaultAppointmentService
	set       *repository.Set
	notifier  *recordingNotifier
	reminders *recordingReminders
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	set := memory.NewSet()

	require.NoError(t, set.Salons.Create(ctx, &models.Salon{ID: "s1", OwnerID: "owner-1", Email: "a@glow.io", Status: models.SalonStatusApproved}))
	require.NoError(t, set.Salons.Create(ctx, &models.Salon{ID: "s2", OwnerID: "owner-2", Email: "b@glow.io", Status: models.SalonStatusPending}))
	require.NoError(t, set.Customers.Create(ctx, &models.Customer{ID: "c1", UserID: "u-c1"}))
	require.NoError(t, set.Customers.Create(ctx, &models.Customer{ID: "c2", UserID: "u-c2"}))
	for _, svc := range []models.Service{
		{ID: "cut", SalonID: "s1", Name: "Cut", Category: "Hair", DurationMinutes: 45, Price: 40, Active: true},
		{ID: "mani", SalonID: "s1", Name: "Manicure", Category: "Nails", DurationMinutes: 30, Price: 25.5, Active: true},
		{ID: "old", SalonID: "s1", Name: "Perm", Category: "Hair", DurationMinutes: 60, Price: 80, Active: false},
		{ID: "foreign", SalonID: "s2", Name: "Cut", Category: "Hair", DurationMinutes: 30, Price: 30, Active: true},
	} {
		svc := svc
		require.NoError(t, set.Services.Create(ctx, &svc))
	}
	for _, st := range []models.Staff{
		{ID: "hair", SalonID: "s1", UserID: "u-hair", Email: "hair@glow.io", Skills: []string{"Hair"}, Status: models.StaffStatusActive},
		{ID: "all", SalonID: "s1", UserID: "u-all", Email: "all@glow.io", Skills: []string{"All"}, Status: models.StaffStatusActive},
		{ID: "off", SalonID: "s1", Email: "off@glow.io", Skills: []string{"All"}, Status: models.StaffStatusInactive},
		{ID: "away", SalonID: "s2", Email: "away@glow.io", Skills: []string{"All"}},
	} {
		st := st
		require.NoError(t, set.Staff.Create(ctx, &st))
	}

	h := &harness{set: set, notifier: &recordingNotifier{}, reminders: &recordingReminders{}}
	h.svc = &DefaultAppointmentService{
		Appointments: set.Appointments,
		Services:     set.Services,
		Staff:        set.Staff,
		Customers:    set.Customers,
		Salons:       set.Salons,
		Policies:     set.Policies,
		Resolver:     &salon.DefaultResolver{Salons: set.Salons, Users: set.Users, Staff: set.Staff},
		Notifier:     h.notifier,
		Reminders:    h.reminders,
		Now:          func() time.Time { return now },
	}
	return h
}

func (h *harness) book(t *testing.T, staffID string, start time.Time, services ...string) *models.Appointment {
	t.Helper()
	appt, err := h.svc.Book(context.Background(), "u-c1", models.BookAppointmentRequest{
		SalonID: "s1", StaffID: staffID, ServiceIDs: services, StartTime: start,
	})
	require.NoError(t, err)
	return appt
}

func TestBook(t *testing.T) {
	h := newHarness(t)
	start := now.Add(48 * time.Hour)

	appt := h.book(t, "all", start, "cut", "mani", "cut")
	assert.Equal(t, "c1", appt.CustomerID)
	assert.Equal(t, models.AppointmentPending, appt.Status)
	assert.Len(t, appt.Services, 2, "duplicate service ids are booked once")
	assert.Equal(t, start.Add(75*time.Minute), appt.EndTime)
	assert.Equal(t, 65.5, appt.TotalAmount)
	assert.Equal(t, []string{appt.ID}, h.reminders.ids)
	assert.Equal(t, []string{"u-all"}, h.notifier.userIDs)
}

func TestBook_Rejections(t *testing.T) {
	h := newHarness(t)
	start := now.Add(24 * time.Hour)
	h.book(t, "hair", start, "cut")

	tests := []struct {
		name string
		req  models.BookAppointmentRequest
		kind error
	}{
		{"past start", models.BookAppointmentRequest{SalonID: "s1", ServiceIDs: []string{"cut"}, StartTime: now.Add(-time.Minute)}, apperr.ErrValidation},
		{"no services", models.BookAppointmentRequest{SalonID: "s1", StartTime: start}, apperr.ErrValidation},
		{"unknown salon", models.BookAppointmentRequest{SalonID: "nope", ServiceIDs: []string{"cut"}, StartTime: start}, apperr.ErrNotFound},
		{"salon not approved", models.BookAppointmentRequest{SalonID: "s2", ServiceIDs: []string{"foreign"}, StartTime: start}, apperr.ErrValidation},
		{"service from another salon", models.BookAppointmentRequest{SalonID: "s1", ServiceIDs: []string{"foreign"}, StartTime: start}, apperr.ErrValidation},
		{"inactive service", models.BookAppointmentRequest{SalonID: "s1", ServiceIDs: []string{"old"}, StartTime: start}, apperr.ErrValidation},
		{"staff lacks skill", models.BookAppointmentRequest{SalonID: "s1", StaffID: "hair", ServiceIDs: []string{"mani"}, StartTime: start.Add(5 * time.Hour)}, apperr.ErrValidation},
		{"inactive staff", models.BookAppointmentRequest{SalonID: "s1", StaffID: "off", ServiceIDs: []string{"cut"}, StartTime: start}, apperr.ErrValidation},
		{"staff of another salon", models.BookAppointmentRequest{SalonID: "s1", StaffID: "away", ServiceIDs: []string{"cut"}, StartTime: start}, apperr.ErrForbidden},
		{"unknown staff", models.BookAppointmentRequest{SalonID: "s1", StaffID: "ghost", ServiceIDs: []string{"cut"}, StartTime: start}, apperr.ErrNotFound},
		{"overlapping slot", models.BookAppointmentRequest{SalonID: "s1", StaffID: "hair", ServiceIDs: []string{"cut"}, StartTime: start.Add(30 * time.Minute)}, apperr.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Book(context.Background(), "u-c1", tt.req)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	appt := h.book(t, "hair", now.Add(24*time.Hour), "cut")

	_, err := h.svc.UpdateStatus(ctx, "owner-1", appt.ID, models.AppointmentCompleted)
	assert.ErrorIs(t, err, apperr.ErrConflict, "pending cannot complete")

	_, err = h.svc.UpdateStatus(ctx, "owner-2", appt.ID, models.AppointmentConfirmed)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = h.svc.UpdateStatus(ctx, "owner-1", appt.ID, "lost")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	confirmed, err := h.svc.UpdateStatus(ctx, "owner-1", appt.ID, models.AppointmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, confirmed.Status)

	noShow, err := h.svc.UpdateStatus(ctx, "owner-1", appt.ID, models.AppointmentNoShow)
	require.NoError(t, err)
	assert.Equal(t, 40.0, noShow.CancellationFee, "default policy charges 100% on no-show")
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("customer inside the free window pays the late fee", func(t *testing.T) {
		h := newHarness(t)
		appt := h.book(t, "hair", now.Add(10*time.Hour), "cut")

		cancelled, err := h.svc.Cancel(ctx, Actor{UserID: "u-c1", Role: models.RoleCustomer}, appt.ID, "sick")
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentCancelled, cancelled.Status)
		assert.Equal(t, 20.0, cancelled.CancellationFee)
		assert.Equal(t, models.RoleCustomer, cancelled.CancelledBy)
	})

	t.Run("customer outside the window pays nothing", func(t *testing.T) {
		h := newHarness(t)
		appt := h.book(t, "", now.Add(72*time.Hour), "cut")

		cancelled, err := h.svc.Cancel(ctx, Actor{UserID: "u-c1", Role: models.RoleCustomer}, appt.ID, "")
		require.NoError(t, err)
		assert.Zero(t, cancelled.CancellationFee)
	})

	t.Run("owner cancellations are free and notify the customer", func(t *testing.T) {
		h := newHarness(t)
		appt := h.book(t, "", now.Add(time.Hour), "cut")

		cancelled, err := h.svc.Cancel(ctx, Actor{UserID: "owner-1", Role: models.RoleSalon}, appt.ID, "closed")
		require.NoError(t, err)
		assert.Zero(t, cancelled.CancellationFee)
		assert.Contains(t, h.notifier.userIDs, "u-c1")
	})

	t.Run("other customers are forbidden and closed appointments conflict", func(t *testing.T) {
		h := newHarness(t)
		appt := h.book(t, "", now.Add(time.Hour), "cut")

		_, err := h.svc.Cancel(ctx, Actor{UserID: "u-c2", Role: models.RoleCustomer}, appt.ID, "")
		assert.ErrorIs(t, err, apperr.ErrForbidden)

		_, err = h.svc.Cancel(ctx, Actor{UserID: "u-c1", Role: models.RoleCustomer}, appt.ID, "")
		require.NoError(t, err)
		_, err = h.svc.Cancel(ctx, Actor{UserID: "u-c1", Role: models.RoleCustomer}, appt.ID, "")
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestReassignStaff(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	start := now.Add(24 * time.Hour)
	appt := h.book(t, "", start, "cut", "mani")
	h.book(t, "all", start.Add(3*time.Hour), "cut")

	_, err := h.svc.ReassignStaff(ctx, "owner-1", appt.ID, "hair")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, apperr.Message(err), "Nails")

	_, err = h.svc.ReassignStaff(ctx, "owner-1", appt.ID, "off")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = h.svc.ReassignStaff(ctx, "owner-2", appt.ID, "all")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = h.svc.ReassignStaff(ctx, "owner-1", appt.ID, "away")
	assert.ErrorIs(t, err, apperr.ErrForbidden, "staff of another salon")

	reassigned, err := h.svc.ReassignStaff(ctx, "owner-1", appt.ID, "all")
	require.NoError(t, err)
	assert.Equal(t, "all", reassigned.StaffID)
	assert.Contains(t, h.notifier.userIDs, "u-all")

	clash := h.book(t, "", start.Add(3*time.Hour+15*time.Minute), "cut")
	_, err = h.svc.ReassignStaff(ctx, "owner-1", clash.ID, "all")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.book(t, "hair", now.Add(24*time.Hour), "cut")
	h.book(t, "", now.Add(48*time.Hour), "mani")

	mine, err := h.svc.ListForCustomer(ctx, "u-c1", models.PageQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, mine.Items, 1)
	assert.Equal(t, int64(2), mine.Pagination.Total)
	assert.Equal(t, 2, mine.Pagination.TotalPages)

	bySalon, err := h.svc.ListForSalon(ctx, "owner-1", models.AppointmentPending, models.PageQuery{})
	require.NoError(t, err)
	assert.Len(t, bySalon.Items, 2)

	byStaff, err := h.svc.ListForStaff(ctx, "u-hair", models.PageQuery{})
	require.NoError(t, err)
	assert.Len(t, byStaff.Items, 1)

	_, err = h.svc.ListForSalon(ctx, "owner-1", "weird", models.PageQuery{})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
