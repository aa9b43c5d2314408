package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auracare/models"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "appointment:reminder"

// NewReminderTask builds the reminder task for an appointment. The task id is
// derived from the appointment so rescheduling never enqueues a duplicate.
func NewReminderTask(payload models.AppointmentReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.AppointmentID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// Enqueuer is the part of *asynq.Client the scheduler uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler enqueues appointment reminders Lead before their start.
type ReminderScheduler struct {
	Client Enqueuer
	Lead   time.Duration
	Now    func() time.Time
}

func NewReminderScheduler(client Enqueuer, lead time.Duration) *ReminderScheduler {
	return &ReminderScheduler{Client: client, Lead: lead, Now: time.Now}
}

// ScheduleReminder fires immediately when the lead window has already begun.
func (s *ReminderScheduler) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	fireAt := appt.StartTime.Add(-s.Lead)
	if now := s.Now(); fireAt.Before(now) {
		fireAt = now
	}
	task, opts, err := NewReminderTask(models.AppointmentReminderPayload{
		AppointmentID: appt.ID,
		StartTime:     appt.StartTime,
	}, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder for appointment %s: %w", appt.ID, err)
	}
	return nil
}
