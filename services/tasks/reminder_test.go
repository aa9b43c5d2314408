package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"auracare/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{ID: "x"}, nil
}

func processAt(t *testing.T, opts []asynq.Option) time.Time {
	for _, o := range opts {
		if o.Type() == asynq.ProcessAtOpt {
			return o.Value().(time.Time)
		}
	}
	t.Fatal("no ProcessAt option")
	return time.Time{}
}

func TestReminderScheduler(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	start := now.Add(5 * time.Hour)

	t.Run("fires lead before start", func(t *testing.T) {
		q := &fakeEnqueuer{}
		s := &ReminderScheduler{Client: q, Lead: 2 * time.Hour, Now: func() time.Time { return now }}

		require.NoError(t, s.ScheduleReminder(context.Background(), &models.Appointment{ID: "a1", StartTime: start}))
		require.Len(t, q.tasks, 1)
		assert.Equal(t, TypeAppointmentReminder, q.tasks[0].Type())
		assert.Equal(t, start.Add(-2*time.Hour), processAt(t, q.opts[0]))

		var p models.AppointmentReminderPayload
		require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &p))
		assert.Equal(t, "a1", p.AppointmentID)
	})

	t.Run("late bookings fire now", func(t *testing.T) {
		q := &fakeEnqueuer{}
		s := &ReminderScheduler{Client: q, Lead: 8 * time.Hour, Now: func() time.Time { return now }}

		require.NoError(t, s.ScheduleReminder(context.Background(), &models.Appointment{ID: "a2", StartTime: start}))
		assert.Equal(t, now, processAt(t, q.opts[0]))
	})

	t.Run("duplicate task ids are not an error", func(t *testing.T) {
		s := &ReminderScheduler{Client: &fakeEnqueuer{err: asynq.ErrTaskIDConflict}, Lead: time.Hour, Now: func() time.Time { return now }}
		assert.NoError(t, s.ScheduleReminder(context.Background(), &models.Appointment{ID: "a3", StartTime: start}))
	})
}
