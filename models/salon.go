package models

import "time"

const (
	SalonStatusPending   = "pending"
	SalonStatusApproved  = "approved"
	SalonStatusRejected  = "rejected"
	SalonStatusSuspended = "suspended"
)

// Salon is a business offering services, owned by a user with role salon.
// OwnerID may be empty for salons created before owner linking; see salon.ResolveSalonForOwner.
type Salon struct {
	ID           string     `bson:"id" json:"id"`
	OwnerID      string     `bson:"ownerId" json:"ownerId"`
	Name         string     `bson:"name" json:"name"`
	Email        string     `bson:"email" json:"email"`
	Phone        string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string     `bson:"address,omitempty" json:"address,omitempty"`
	Status       string     `bson:"status" json:"status"`
	StatusReason string     `bson:"statusReason,omitempty" json:"statusReason,omitempty"`
	ApprovedBy   string     `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

type SalonRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type SalonUpdateRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type SalonStatusRequest struct {
	Reason string `json:"reason"`
}
