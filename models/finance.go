package models

import "time"

// SalonRevenue aggregates completed and fee-bearing appointments for one salon.
type SalonRevenue struct {
	SalonID          string  `bson:"_id" json:"salonId"`
	Revenue          float64 `bson:"revenue" json:"revenue"`
	Appointments     int64   `bson:"appointments" json:"appointments"`
	CancellationFees float64 `bson:"cancellationFees" json:"cancellationFees"`
}

type FinanceSummary struct {
	From              time.Time      `json:"from"`
	To                time.Time      `json:"to"`
	TotalRevenue      float64        `json:"totalRevenue"`
	TotalAppointments int64          `json:"totalAppointments"`
	CancellationFees  float64        `json:"cancellationFees"`
	GiftCardLiability Money          `json:"giftCardLiability"`
	Salons            []SalonRevenue `json:"salons"`
}

// MonthlyRevenue is one point of a salon's revenue history.
type MonthlyRevenue struct {
	Month   string  `bson:"_id" json:"month"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}
