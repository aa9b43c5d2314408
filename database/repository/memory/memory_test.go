package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"auracare/database/repository"
	"auracare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo()

	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "Ana@Example.com"}))
	err := repo.Create(ctx, &models.User{ID: "u2", Email: "ana@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, " ANA@example.com ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
}

func TestSalonRepo_LinkOwnerOnlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewSalonRepo()
	require.NoError(t, repo.Create(ctx, &models.Salon{ID: "s1", Email: "glow@salon.io"}))

	linked, err := repo.LinkOwner(ctx, "s1", "owner-1")
	require.NoError(t, err)
	assert.True(t, linked)

	linked, err = repo.LinkOwner(ctx, "s1", "owner-2")
	require.NoError(t, err)
	assert.False(t, linked)

	got, _ := repo.GetByOwnerID(ctx, "owner-1")
	require.NotNil(t, got)
	assert.Equal(t, "s1", got.ID)
}

func TestAppointmentRepo_HasOverlap(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepo()
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.Appointment{
		ID: "a1", StaffID: "st1", StartTime: start, EndTime: start.Add(time.Hour), Status: models.AppointmentConfirmed,
	}))
	require.NoError(t, repo.Create(ctx, &models.Appointment{
		ID: "a2", StaffID: "st1", StartTime: start.Add(3 * time.Hour), EndTime: start.Add(4 * time.Hour), Status: models.AppointmentCancelled,
	}))

	tests := []struct {
		name       string
		start, end time.Time
		exclude    string
		want       bool
	}{
		{"inside", start.Add(15 * time.Minute), start.Add(30 * time.Minute), "", true},
		{"touching end", start.Add(time.Hour), start.Add(2 * time.Hour), "", false},
		{"touching start", start.Add(-time.Hour), start, "", false},
		{"excluded self", start, start.Add(time.Hour), "a1", false},
		{"cancelled ignored", start.Add(3 * time.Hour), start.Add(4 * time.Hour), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.HasOverlap(ctx, "st1", tt.start, tt.end, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGiftCardRepo_RedeemIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewGiftCardRepo()
	require.NoError(t, repo.Create(ctx, &models.GiftCard{
		ID: "g1", Code: "ABC", Balance: 10000, Status: models.GiftCardActive, ExpiresAt: time.Now().Add(time.Hour),
	}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			card, err := repo.Redeem(ctx, "ABC", models.GiftCardRedemption{Amount: 3000, At: time.Now()})
			if err == nil && card != nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, successes)
	card, _ := repo.GetByCode(ctx, "ABC")
	assert.Equal(t, models.Money(1000), card.Balance)
	assert.Len(t, card.Redemptions, 3)
}

func TestAppointmentRepo_RevenueBySalon(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepo()
	at := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	for _, a := range []models.Appointment{
		{ID: "1", SalonID: "s1", StartTime: at, Status: models.AppointmentCompleted, TotalAmount: 80},
		{ID: "2", SalonID: "s1", StartTime: at, Status: models.AppointmentNoShow, TotalAmount: 50, CancellationFee: 50},
		{ID: "3", SalonID: "s2", StartTime: at, Status: models.AppointmentCompleted, TotalAmount: 120},
		{ID: "4", SalonID: "s2", StartTime: at, Status: models.AppointmentPending, TotalAmount: 500},
		{ID: "5", SalonID: "s2", StartTime: at.AddDate(0, 2, 0), Status: models.AppointmentCompleted, TotalAmount: 999},
	} {
		a := a
		require.NoError(t, repo.Create(ctx, &a))
	}

	rows, err := repo.RevenueBySalon(ctx, at.AddDate(0, 0, -10), at.AddDate(0, 0, 10))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.SalonRevenue{SalonID: "s2", Revenue: 120, Appointments: 1}, rows[0])
	assert.Equal(t, models.SalonRevenue{SalonID: "s1", Revenue: 80, Appointments: 1, CancellationFees: 50}, rows[1])
}
