package salon

import (
	"context"
	"testing"

	"auracare/models"
	"auracare/services/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.salon(t, "s1", "u1", "a@glow.io", models.SalonStatusApproved)
	f.salon(t, "s2", "u2", "b@glow.io", models.SalonStatusApproved)

	svc, err := f.svc.CreateService(ctx, "u1", models.ServiceRequest{
		Name: "Balayage", Category: "Hair", DurationMinutes: 90, Price: 120.456,
	})
	require.NoError(t, err)
	assert.True(t, svc.Active)
	assert.Equal(t, 120.46, svc.Price)

	inactive := false
	updated, err := f.svc.UpdateService(ctx, "u1", svc.ID, models.ServiceRequest{
		Name: "Balayage", Category: "Hair", DurationMinutes: 120, Price: 150, Active: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, 120, updated.DurationMinutes)

	_, err = f.svc.UpdateService(ctx, "u2", svc.ID, models.ServiceRequest{
		Name: "x", Category: "y", DurationMinutes: 1, Price: 1,
	})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, f.svc.DeleteService(ctx, "u1", svc.ID))
	list, err := f.svc.ListServices(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestServiceValidation(t *testing.T) {
	f := newFixture(t)
	f.salon(t, "s1", "u1", "a@glow.io", models.SalonStatusApproved)

	tests := []struct {
		name string
		req  models.ServiceRequest
	}{
		{"zero price", models.ServiceRequest{Name: "Cut", Category: "Hair", DurationMinutes: 30}},
		{"zero duration", models.ServiceRequest{Name: "Cut", Category: "Hair", Price: 10}},
		{"no category", models.ServiceRequest{Name: "Cut", DurationMinutes: 30, Price: 10}},
		{"no name", models.ServiceRequest{Category: "Hair", DurationMinutes: 30, Price: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateService(context.Background(), "u1", tt.req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestStaffManagement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.salon(t, "s1", "u1", "a@glow.io", models.SalonStatusApproved)
	f.user(t, "u-lee", "lee@glow.io", models.RoleStaff)

	staff, err := f.svc.AddStaff(ctx, "u1", models.StaffRequest{
		Name: "Lee", Email: "Lee@Glow.io", Skills: []string{" Hair ", "hair", "", "all"}, BasicSalary: 26000,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hair", models.SkillAll}, staff.Skills)
	assert.Equal(t, "u-lee", staff.UserID, "existing staff login is linked")
	assert.Equal(t, models.StaffStatusActive, staff.Status)

	_, err = f.svc.AddStaff(ctx, "u1", models.StaffRequest{Name: "Lee 2", Email: "lee@glow.io"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	inactive := models.StaffStatusInactive
	skills := []string{"Nails"}
	updated, err := f.svc.UpdateStaff(ctx, "u1", staff.ID, models.StaffUpdateRequest{Status: &inactive, Skills: &skills})
	require.NoError(t, err)
	assert.False(t, updated.IsActive())
	assert.Equal(t, []string{"Nails"}, updated.Skills)

	negative := -1.0
	_, err = f.svc.UpdateStaff(ctx, "u1", staff.ID, models.StaffUpdateRequest{BasicSalary: &negative})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	bogus := "retired"
	_, err = f.svc.UpdateStaff(ctx, "u1", staff.ID, models.StaffUpdateRequest{Status: &bogus})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	require.NoError(t, f.svc.RemoveStaff(ctx, "u1", staff.ID))
	assert.ErrorIs(t, f.svc.RemoveStaff(ctx, "u1", staff.ID), apperr.ErrNotFound)
}

func TestCancellationPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.salon(t, "s1", "u1", "a@glow.io", models.SalonStatusApproved)

	policy, err := f.svc.GetCancellationPolicy(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 24, policy.FreeCancellationHours)
	assert.Equal(t, 50.0, policy.LateCancellationFeePercent)
	assert.Equal(t, 100.0, policy.NoShowFeePercent)

	saved, err := f.svc.UpsertCancellationPolicy(ctx, "u1", models.CancellationPolicyRequest{
		FreeCancellationHours: 12, LateCancellationFeePercent: 25, NoShowFeePercent: 80,
	})
	require.NoError(t, err)
	assert.True(t, saved.Active)

	again, err := f.svc.UpsertCancellationPolicy(ctx, "u1", models.CancellationPolicyRequest{
		FreeCancellationHours: 6, LateCancellationFeePercent: 10, NoShowFeePercent: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)

	got, err := f.svc.GetCancellationPolicy(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 6, got.FreeCancellationHours)

	_, err = f.svc.UpsertCancellationPolicy(ctx, "u1", models.CancellationPolicyRequest{LateCancellationFeePercent: 101})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.svc.UpsertCancellationPolicy(ctx, "u1", models.CancellationPolicyRequest{FreeCancellationHours: -1})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
