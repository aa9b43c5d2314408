package models

import "time"

const (
	ScheduleLeave     = "leave"
	ScheduleBlockTime = "block_time"
	ScheduleShiftSwap = "shift_swap"

	SchedulePending  = "pending"
	ScheduleApproved = "approved"
	ScheduleRejected = "rejected"
)

// ScheduleRequest is a staff-submitted leave, block-time or shift-swap request
// awaiting the salon owner's decision. SalonID is not always populated.
type ScheduleRequest struct {
	ID              string     `bson:"id" json:"id"`
	StaffID         string     `bson:"staffId" json:"staffId"`
	SalonID         string     `bson:"salonId,omitempty" json:"salonId,omitempty"`
	Type            string     `bson:"type" json:"type"`
	StartDate       time.Time  `bson:"startDate" json:"startDate"`
	EndDate         time.Time  `bson:"endDate" json:"endDate"`
	Reason          string     `bson:"reason,omitempty" json:"reason,omitempty"`
	SwapWithStaffID string     `bson:"swapWithStaffId,omitempty" json:"swapWithStaffId,omitempty"`
	Status          string     `bson:"status" json:"status"`
	ReviewedBy      string     `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ReviewNote      string     `bson:"reviewNote,omitempty" json:"reviewNote,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updatedAt"`
}

type ScheduleRequestInput struct {
	Type            string    `json:"type" binding:"required"`
	StartDate       time.Time `json:"startDate" binding:"required"`
	EndDate         time.Time `json:"endDate" binding:"required"`
	Reason          string    `json:"reason"`
	SwapWithStaffID string    `json:"swapWithStaffId"`
}

type ScheduleReviewRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}
