package models

import "time"

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// AppointmentService is the snapshot of a Service taken at booking time.
type AppointmentService struct {
	ServiceID       string  `bson:"serviceId" json:"serviceId"`
	Name            string  `bson:"name" json:"name"`
	Category        string  `bson:"category" json:"category"`
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
}

// Appointment links a customer, a salon, a staff member and one or more services.
type Appointment struct {
	ID              string               `bson:"id" json:"id"`
	CustomerID      string               `bson:"customerId" json:"customerId"`
	SalonID         string               `bson:"salonId" json:"salonId"`
	StaffID         string               `bson:"staffId,omitempty" json:"staffId,omitempty"`
	Services        []AppointmentService `bson:"services" json:"services"`
	StartTime       time.Time            `bson:"startTime" json:"startTime"`
	EndTime         time.Time            `bson:"endTime" json:"endTime"`
	Status          string               `bson:"status" json:"status"`
	TotalAmount     float64              `bson:"totalAmount" json:"totalAmount"`
	CancellationFee float64              `bson:"cancellationFee" json:"cancellationFee"`
	CancelledBy     string               `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancelReason    string               `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	Notes           string               `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Categories returns the distinct service categories on the appointment, in order of first appearance.
func (a *Appointment) Categories() []string {
	seen := make(map[string]bool, len(a.Services))
	var out []string
	for _, s := range a.Services {
		if s.Category == "" || seen[s.Category] {
			continue
		}
		seen[s.Category] = true
		out = append(out, s.Category)
	}
	return out
}

type BookAppointmentRequest struct {
	SalonID    string    `json:"salonId" binding:"required"`
	StaffID    string    `json:"staffId"`
	ServiceIDs []string  `json:"serviceIds" binding:"required"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	Notes      string    `json:"notes"`
}

type AppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ReassignStaffRequest struct {
	StaffID string `json:"staffId" binding:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// AppointmentReminderPayload is the task payload for a scheduled appointment reminder.
type AppointmentReminderPayload struct {
	AppointmentID string    `json:"appointmentId"`
	StartTime     time.Time `json:"startTime"`
}
