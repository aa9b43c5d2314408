package models

import "time"

const (
	GiftCardActive    = "active"
	GiftCardRedeemed  = "redeemed"
	GiftCardExpired   = "expired"
	GiftCardCancelled = "cancelled"
)

type GiftCardRedemption struct {
	AppointmentID string    `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	Amount        Money     `bson:"amount" json:"amount"`
	At            time.Time `bson:"at" json:"at"`
}

type GiftCard struct {
	ID             string               `bson:"id" json:"id"`
	Code           string               `bson:"code" json:"code"`
	SalonID        string               `bson:"salonId" json:"salonId"`
	PurchaserID    string               `bson:"purchaserId" json:"purchaserId"`
	RecipientEmail string               `bson:"recipientEmail,omitempty" json:"recipientEmail,omitempty"`
	Amount         Money                `bson:"amount" json:"amount"`
	Balance        Money                `bson:"balance" json:"balance"`
	Currency       string               `bson:"currency" json:"currency"`
	Status         string               `bson:"status" json:"status"`
	ExpiresAt      time.Time            `bson:"expiresAt" json:"expiresAt"`
	Redemptions    []GiftCardRedemption `bson:"redemptions" json:"redemptions"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type IssueGiftCardRequest struct {
	SalonID        string  `json:"salonId" binding:"required"`
	Amount         float64 `json:"amount" binding:"required"`
	Currency       string  `json:"currency"`
	RecipientEmail string  `json:"recipientEmail"`
	ValidityDays   int     `json:"validityDays"`
}

type RedeemGiftCardRequest struct {
	Code          string  `json:"code" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	AppointmentID string  `json:"appointmentId"`
}
