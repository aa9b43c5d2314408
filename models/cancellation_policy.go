package models

import "time"

type CancellationPolicy struct {
	ID                         string    `bson:"id" json:"id"`
	SalonID                    string    `bson:"salonId" json:"salonId"`
	FreeCancellationHours      int       `bson:"freeCancellationHours" json:"freeCancellationHours"`
	LateCancellationFeePercent float64   `bson:"lateCancellationFeePercent" json:"lateCancellationFeePercent"`
	NoShowFeePercent           float64   `bson:"noShowFeePercent" json:"noShowFeePercent"`
	Active                     bool      `bson:"active" json:"active"`
	CreatedAt                  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt                  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DefaultCancellationPolicy applies to salons that never stored a policy.
func DefaultCancellationPolicy(salonID string) *CancellationPolicy {
	return &CancellationPolicy{
		SalonID:                    salonID,
		FreeCancellationHours:      24,
		LateCancellationFeePercent: 50,
		NoShowFeePercent:           100,
		Active:                     true,
	}
}

type CancellationPolicyRequest struct {
	FreeCancellationHours      int     `json:"freeCancellationHours"`
	LateCancellationFeePercent float64 `json:"lateCancellationFeePercent"`
	NoShowFeePercent           float64 `json:"noShowFeePercent"`
	Active                     *bool   `json:"active"`
}
