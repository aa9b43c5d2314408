package appointment

import (
	"strings"
	"time"

	"auracare/models"
)

// MissingSkills returns the categories not covered by skills, compared
// case-insensitively. A staff member holding SkillAll covers everything.
func MissingSkills(skills, categories []string) []string {
	have := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == strings.ToLower(models.SkillAll) {
			return nil
		}
		have[skill] = true
	}
	var missing []string
	for _, category := range categories {
		if !have[strings.ToLower(strings.TrimSpace(category))] {
			missing = append(missing, category)
		}
	}
	return missing
}

var transitions = map[string][]string{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled, models.AppointmentNoShow},
}

// CanTransition reports whether an appointment may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsOpen reports whether the appointment can still be changed.
func IsOpen(status string) bool {
	return status == models.AppointmentPending || status == models.AppointmentConfirmed
}

// LateCancellationFee is charged when a customer cancels inside the policy's free window.
func LateCancellationFee(policy *models.CancellationPolicy, appt *models.Appointment, at time.Time) float64 {
	if policy == nil || !policy.Active {
		return 0
	}
	window := time.Duration(policy.FreeCancellationHours) * time.Hour
	if appt.StartTime.Sub(at) >= window {
		return 0
	}
	return models.RoundMoney(appt.TotalAmount * policy.LateCancellationFeePercent / 100)
}

// NoShowFee is charged when the salon marks the appointment as a no-show.
func NoShowFee(policy *models.CancellationPolicy, appt *models.Appointment) float64 {
	if policy == nil || !policy.Active {
		return 0
	}
	return models.RoundMoney(appt.TotalAmount * policy.NoShowFeePercent / 100)
}
