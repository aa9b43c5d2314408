package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"auracare/database/repository/memory"
	"auracare/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, m)
	return "msg-1", nil
}

func TestFCMNotifier(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepo()
	require.NoError(t, users.Create(ctx, &models.User{ID: "u1", Email: "a@x.io", Role: models.RoleStaff, FCMToken: "tok-1"}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "u2", Email: "b@x.io", Role: models.RoleCustomer}))

	t.Run("sends to the stored token with the user's role", func(t *testing.T) {
		sender := &fakeSender{}
		n, err := NewFCMNotifier(users, sender)
		require.NoError(t, err)

		require.NoError(t, n.Notify(ctx, "u1", "Hi", "Body", map[string]string{"type": "x"}))
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "tok-1", sender.sent[0].Token)
		assert.Equal(t, models.RoleStaff, sender.sent[0].Data["role"])
		assert.Equal(t, "x", sender.sent[0].Data["type"])
	})

	t.Run("users without a token are skipped", func(t *testing.T) {
		sender := &fakeSender{}
		n, _ := NewFCMNotifier(users, sender)

		require.NoError(t, n.Notify(ctx, "u2", "Hi", "Body", nil))
		require.NoError(t, n.Notify(ctx, "", "Hi", "Body", nil))
		assert.Empty(t, sender.sent)
	})

	t.Run("send failures are returned", func(t *testing.T) {
		n, _ := NewFCMNotifier(users, &fakeSender{err: errors.New("quota")})
		assert.Error(t, n.Notify(ctx, "u1", "Hi", "Body", nil))
	})

	t.Run("requires dependencies", func(t *testing.T) {
		_, err := NewFCMNotifier(nil, &fakeSender{})
		assert.Error(t, err)
	})
}

type recorder struct {
	userIDs []string
	titles  []string
}

func (r *recorder) Notify(_ context.Context, userID, title, _ string, _ map[string]string) error {
	r.userIDs = append(r.userIDs, userID)
	r.titles = append(r.titles, title)
	return nil
}

func TestScheduleReviewed(t *testing.T) {
	rec := &recorder{}
	req := &models.ScheduleRequest{
		ID: "r1", Type: models.ScheduleBlockTime, Status: models.ScheduleApproved,
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
	}

	ScheduleReviewed(context.Background(), rec, "u9", req)
	ScheduleReviewed(context.Background(), rec, "", req)

	assert.Equal(t, []string{"u9"}, rec.userIDs)
	assert.Equal(t, "Your block time request was approved", rec.titles[0])
}
