package auth

import (
	"context"
	"testing"
	"time"

	"auracare/database/repository/memory"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*DefaultAuthService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	set := memory.NewSet()
	return &DefaultAuthService{
		Users:     set.Users,
		Customers: set.Customers,
		Staff:     set.Staff,
		JWT:       utils.NewJWTManager("test-secret", time.Hour),
		Revoker:   utils.NewTokenRevoker(client),
		HashCost:  bcrypt.MinCost,
	}, mr
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	resp, err := svc.Register(ctx, models.RegisterRequest{
		Name: "Ana", Email: " Ana@Example.com ", Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, models.RoleCustomer, resp.User.Role)

	customer, err := svc.Customers.GetByUserID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, customer, "customers get a booking profile")

	claims, err := svc.JWT.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)

	_, err = svc.Register(ctx, models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"short password", models.RegisterRequest{Name: "A", Email: "a@x.io", Password: "short"}},
		{"bad email", models.RegisterRequest{Name: "A", Email: "nope", Password: "longenough"}},
		{"missing name", models.RegisterRequest{Email: "a@x.io", Password: "longenough"}},
		{"admin is not self-service", models.RegisterRequest{Name: "A", Email: "a@x.io", Password: "longenough", Role: models.RoleAdmin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestRegister_StaffLinksExistingRecord(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	require.NoError(t, svc.Staff.Create(ctx, &models.Staff{ID: "st1", SalonID: "s1", Email: "lee@glow.io"}))

	resp, err := svc.Register(ctx, models.RegisterRequest{
		Name: "Lee", Email: "LEE@glow.io", Password: "supersecret", Role: models.RoleStaff,
	})
	require.NoError(t, err)

	staff, _ := svc.Staff.GetByUserID(ctx, resp.User.ID)
	require.NotNil(t, staff)
	assert.Equal(t, "st1", staff.ID)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, err := svc.Register(ctx, models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "ANA@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLogout_RevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, mr := newTestService(t)
	resp, err := svc.Register(ctx, models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))

	revoked, err := svc.Revoker.IsRevoked(ctx, utils.HashToken(resp.Token))
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL(utils.RevokedTokenPrefix + utils.HashToken(resp.Token))
	assert.True(t, ttl > 0 && ttl <= time.Hour)

	assert.ErrorIs(t, svc.Logout(ctx, "garbage"), apperr.ErrUnauthorized)
}

func TestMeAndDeviceToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	resp, err := svc.Register(ctx, models.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateDeviceToken(ctx, resp.User.ID, "fcm-123"))
	me, err := svc.Me(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "fcm-123", me.FCMToken)

	_, err = svc.Me(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, svc.UpdateDeviceToken(ctx, resp.User.ID, " "), apperr.ErrValidation)
}
