package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auracare/models"
	"auracare/utils"

	"go.uber.org/zap"
)

const dateLayout = "Mon 2 Jan 2006"

// ScheduleReviewed tells a staff member the outcome of a schedule request.
func ScheduleReviewed(ctx context.Context, n Notifier, staffUserID string, req *models.ScheduleRequest) {
	kind := strings.ReplaceAll(req.Type, "_", " ")
	title := fmt.Sprintf("Your %s request was %s", kind, req.Status)
	body := fmt.Sprintf("%s to %s", req.StartDate.Format(dateLayout), req.EndDate.Format(dateLayout))
	if req.ReviewNote != "" {
		body += ". Note: " + req.ReviewNote
	}
	send(ctx, n, staffUserID, title, body, map[string]string{
		"type":      "schedule_review",
		"requestId": req.ID,
		"status":    req.Status,
	})
}

// StaffAssigned tells a staff member they now hold an appointment.
func StaffAssigned(ctx context.Context, n Notifier, staffUserID string, appt *models.Appointment) {
	body := fmt.Sprintf("%s at %s (%s)",
		appt.StartTime.Format(dateLayout),
		appt.StartTime.Format("15:04"),
		strings.Join(appt.Categories(), ", "),
	)
	send(ctx, n, staffUserID, "New appointment assigned", body, map[string]string{
		"type":          "appointment_assigned",
		"appointmentId": appt.ID,
	})
}

// AppointmentReminder reminds a customer of an upcoming appointment.
func AppointmentReminder(ctx context.Context, n Notifier, customerUserID string, appt *models.Appointment, now time.Time) {
	until := appt.StartTime.Sub(now).Round(time.Minute)
	body := fmt.Sprintf("Your appointment starts in %s at %s", until, appt.StartTime.Format("15:04"))
	send(ctx, n, customerUserID, "Appointment reminder", body, map[string]string{
		"type":          "appointment_reminder",
		"appointmentId": appt.ID,
		"role":          models.RoleCustomer,
	})
}

// AppointmentCancelled tells the other party that an appointment was cancelled.
func AppointmentCancelled(ctx context.Context, n Notifier, userID string, appt *models.Appointment) {
	body := fmt.Sprintf("The appointment on %s at %s was cancelled",
		appt.StartTime.Format(dateLayout), appt.StartTime.Format("15:04"))
	send(ctx, n, userID, "Appointment cancelled", body, map[string]string{
		"type":          "appointment_cancelled",
		"appointmentId": appt.ID,
	})
}

// send never fails the caller's operation; delivery errors are logged.
func send(ctx context.Context, n Notifier, userID, title, body string, data map[string]string) {
	if n == nil || userID == "" {
		return
	}
	if err := n.Notify(ctx, userID, title, body, data); err != nil {
		utils.GetLogger().Warn("notification failed", zap.String("userID", userID), zap.Error(err))
	}
}
