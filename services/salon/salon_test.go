package salon

import (
	"context"
	"testing"
	"time"

	"auracare/database/repository"
	"auracare/database/repository/memory"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	set *repository.Set
	svc *DefaultSalonService
	mr  *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	set := memory.NewSet()
	resolver := &DefaultResolver{
		Salons: set.Salons,
		Users:  set.Users,
		Staff:  set.Staff,
		Cache:  utils.NewJSONCache(client, utils.SalonOwnerCachePrefix, time.Minute),
	}
	return &fixture{
		set: set,
		mr:  mr,
		svc: &DefaultSalonService{
			Salons:   set.Salons,
			Users:    set.Users,
			Staff:    set.Staff,
			Services: set.Services,
			Policies: set.Policies,
			Resolver: resolver,
		},
	}
}

func (f *fixture) user(t *testing.T, id, email, role string) {
	t.Helper()
	require.NoError(t, f.set.Users.Create(context.Background(), &models.User{ID: id, Email: email, Role: role}))
}

func (f *fixture) salon(t *testing.T, id, ownerID, email, status string) {
	t.Helper()
	require.NoError(t, f.set.Salons.Create(context.Background(), &models.Salon{
		ID: id, OwnerID: ownerID, Email: email, Name: "Salon " + id, Status: status,
	}))
}

func TestResolveSalonForOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("by owner id, then cached", func(t *testing.T) {
		f := newFixture(t)
		f.user(t, "u1", "owner@glow.io", models.RoleSalon)
		f.salon(t, "s1", "u1", "owner@glow.io", models.SalonStatusApproved)

		got, err := f.svc.Resolver.ResolveSalonForOwner(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "s1", got.ID)
		assert.True(t, f.mr.Exists(utils.SalonOwnerCachePrefix+"u1"))
	})

	t.Run("email fallback back-fills the owner", func(t *testing.T) {
		f := newFixture(t)
		f.user(t, "u1", "Owner@Glow.io", models.RoleSalon)
		f.salon(t, "s1", "", "owner@glow.io", models.SalonStatusApproved)

		got, err := f.svc.Resolver.ResolveSalonForOwner(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "s1", got.ID)
		assert.Equal(t, "u1", got.OwnerID)

		stored, _ := f.set.Salons.GetByOwnerID(ctx, "u1")
		require.NotNil(t, stored)
		assert.Equal(t, "s1", stored.ID)
	})

	t.Run("salon owned by someone else is not matched by email", func(t *testing.T) {
		f := newFixture(t)
		f.user(t, "u1", "owner@glow.io", models.RoleSalon)
		f.salon(t, "s1", "u2", "owner@glow.io", models.SalonStatusApproved)

		_, err := f.svc.Resolver.ResolveSalonForOwner(ctx, "u1")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("no salon", func(t *testing.T) {
		f := newFixture(t)
		f.user(t, "u1", "owner@glow.io", models.RoleSalon)

		_, err := f.svc.Resolver.ResolveSalonForOwner(ctx, "u1")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("redis outage falls through to the database", func(t *testing.T) {
		f := newFixture(t)
		f.user(t, "u1", "owner@glow.io", models.RoleSalon)
		f.salon(t, "s1", "u1", "owner@glow.io", models.SalonStatusApproved)
		f.mr.Close()

		got, err := f.svc.Resolver.ResolveSalonForOwner(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "s1", got.ID)
	})
}

func TestRegisterAndUpdateSalon(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "u1", "owner@glow.io", models.RoleSalon)

	salon, err := f.svc.RegisterSalon(ctx, "u1", models.SalonRequest{Name: "Glow"})
	require.NoError(t, err)
	assert.Equal(t, models.SalonStatusPending, salon.Status)
	assert.Equal(t, "owner@glow.io", salon.Email)

	_, err = f.svc.RegisterSalon(ctx, "u1", models.SalonRequest{Name: "Glow again"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// Prime the cache, then make sure the update is visible.
	_, err = f.svc.GetMySalon(ctx, "u1")
	require.NoError(t, err)
	name := "Glow Studio"
	_, err = f.svc.UpdateMySalon(ctx, "u1", models.SalonUpdateRequest{Name: &name})
	require.NoError(t, err)

	got, err := f.svc.GetMySalon(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Glow Studio", got.Name)

	empty := " "
	_, err = f.svc.UpdateMySalon(ctx, "u1", models.SalonUpdateRequest{Name: &empty})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fixed := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	f.svc.Now = func() time.Time { return fixed }
	f.salon(t, "s1", "u1", "a@glow.io", models.SalonStatusPending)

	_, err := f.svc.SetStatus(ctx, "admin", "s1", models.SalonStatusSuspended, "")
	assert.ErrorIs(t, err, apperr.ErrConflict, "pending salons cannot be suspended")

	salon, err := f.svc.SetStatus(ctx, "admin", "s1", models.SalonStatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, "admin", salon.ApprovedBy)
	assert.Equal(t, fixed, *salon.ApprovedAt)

	salon, err = f.svc.SetStatus(ctx, "admin", "s1", models.SalonStatusSuspended, "unpaid fees")
	require.NoError(t, err)
	assert.Equal(t, "unpaid fees", salon.StatusReason)

	_, err = f.svc.SetStatus(ctx, "admin", "s1", "closed", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.svc.SetStatus(ctx, "admin", "missing", models.SalonStatusApproved, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPublicListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.salon(t, "s1", "u1", "a@glow.io", models.SalonStatusApproved)
	f.salon(t, "s2", "u2", "b@glow.io", models.SalonStatusPending)
	require.NoError(t, f.set.Services.Create(ctx, &models.Service{ID: "v1", SalonID: "s1", Name: "Cut", Active: true}))
	require.NoError(t, f.set.Services.Create(ctx, &models.Service{ID: "v2", SalonID: "s1", Name: "Old", Active: false}))

	page, err := f.svc.ListApprovedSalons(ctx, models.PageQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "s1", page.Items[0].ID)
	assert.Equal(t, int64(1), page.Pagination.Total)

	services, err := f.svc.ListPublicServices(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "v1", services[0].ID)

	_, err = f.svc.ListPublicServices(ctx, "s2")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestResolveStaffForUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "u-lee", "lee@glow.io", models.RoleStaff)
	require.NoError(t, f.set.Staff.Create(ctx, &models.Staff{ID: "st1", SalonID: "s1", Email: "lee@glow.io"}))

	staff, err := f.svc.Resolver.ResolveStaffForUser(ctx, "u-lee")
	require.NoError(t, err)
	assert.Equal(t, "st1", staff.ID)

	linked, _ := f.set.Staff.GetByUserID(ctx, "u-lee")
	require.NotNil(t, linked)

	f.user(t, "u-x", "x@glow.io", models.RoleStaff)
	_, err = f.svc.Resolver.ResolveStaffForUser(ctx, "u-x")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
