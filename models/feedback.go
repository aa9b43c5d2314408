package models

import "time"

// InternalStaffFeedback is feedback about a staff member written inside the salon.
type InternalStaffFeedback struct {
	ID        string    `bson:"id" json:"id"`
	SalonID   string    `bson:"salonId" json:"salonId"`
	StaffID   string    `bson:"staffId" json:"staffId"`
	AuthorID  string    `bson:"authorId" json:"authorId,omitempty"`
	Category  string    `bson:"category,omitempty" json:"category,omitempty"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Anonymous bool      `bson:"anonymous" json:"anonymous"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type FeedbackRequest struct {
	StaffID   string `json:"staffId" binding:"required"`
	Category  string `json:"category"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
	Anonymous bool   `json:"anonymous"`
}

type FeedbackSummary struct {
	StaffID       string  `bson:"_id" json:"staffId"`
	Count         int64   `bson:"count" json:"count"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
}
