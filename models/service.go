package models

import "time"

// Service is an item on a salon's menu.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	SalonID         string    `bson:"salonId" json:"salonId"`
	Name            string    `bson:"name" json:"name"`
	Category        string    `bson:"category" json:"category"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Price           float64   `bson:"price" json:"price"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

type ServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Active          *bool   `json:"active"`
}
