package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/notification"
	"auracare/services/tasks"
	"auracare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderWorker delivers appointment reminders queued by tasks.ReminderScheduler.
type ReminderWorker struct {
	Appointments repository.AppointmentRepository
	Customers    repository.CustomerRepository
	Notifier     notification.Notifier
	Now          func() time.Time
}

func (w *ReminderWorker) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// NewReminderServer builds the asynq server for the reminder queue.
func NewReminderServer(opt asynq.RedisClientOpt, concurrency int) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 10
	}
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{"default": 1},
		Logger:      utils.GetLogger().Sugar().Named("asynq"),
	})
}

// Mux routes reminder tasks to the worker.
func (w *ReminderWorker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentReminder, w.HandleReminder)
	return mux
}

// StartReminderWorker starts srv in the background, retrying with a linear
// backoff while Redis is unreachable.
func StartReminderWorker(srv *asynq.Server, mux *asynq.ServeMux) {
	logger := utils.GetLogger().Named("reminder-worker")
	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Start(mux)
			if err == nil {
				logger.Info("reminder worker started")
				return
			}
			logger.Warn("failed to start reminder worker",
				zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
		logger.Error("reminder worker gave up; reminders will queue until restart")
	}()
}

// HandleReminder notifies the customer if the appointment is still going ahead.
// Appointments that were deleted, cancelled or already finished are skipped.
func (w *ReminderWorker) HandleReminder(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p models.AppointmentReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("invalid reminder payload", zap.Error(err))
		return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	appt, err := w.Appointments.GetByID(ctx, p.AppointmentID)
	if err != nil {
		return fmt.Errorf("failed to load appointment %s: %w", p.AppointmentID, err)
	}
	if appt == nil {
		logger.Debug("reminder for missing appointment", zap.String("appointmentID", p.AppointmentID))
		return nil
	}
	if appt.Status != models.AppointmentPending && appt.Status != models.AppointmentConfirmed {
		logger.Debug("reminder skipped",
			zap.String("appointmentID", appt.ID), zap.String("status", appt.Status))
		return nil
	}
	// Rescheduled since this task was queued; the newer task covers it.
	if !p.StartTime.IsZero() && !p.StartTime.Equal(appt.StartTime) {
		return nil
	}

	customer, err := w.Customers.GetByID(ctx, appt.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to load customer %s: %w", appt.CustomerID, err)
	}
	if customer == nil {
		logger.Warn("reminder for unknown customer", zap.String("customerID", appt.CustomerID))
		return nil
	}

	notification.AppointmentReminder(ctx, w.Notifier, customer.UserID, appt, w.now())
	logger.Info("appointment reminder sent", zap.String("appointmentID", appt.ID))
	return nil
}
