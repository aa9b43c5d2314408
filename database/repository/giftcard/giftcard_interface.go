package giftCardRepo

import (
	"context"
	"time"

	"auracare/models"
)

// GiftCardRepository defines methods for gift card data access.
type GiftCardRepository interface {
	// Create inserts a card. Codes are unique.
	Create(ctx context.Context, card *models.GiftCard) error
	GetByCode(ctx context.Context, code string) (*models.GiftCard, error)
	ListBySalon(ctx context.Context, salonID string) ([]models.GiftCard, error)
	ListByPurchaser(ctx context.Context, purchaserID string) ([]models.GiftCard, error)
	// Redeem atomically debits an active, unexpired card holding at least the
	// redemption amount and returns the updated card. It returns nil when the
	// card does not satisfy those conditions.
	Redeem(ctx context.Context, code string, redemption models.GiftCardRedemption) (*models.GiftCard, error)
	// SetStatus moves a card from one status to another; it reports whether a card moved.
	SetStatus(ctx context.Context, code, from, to string) (bool, error)
	// ExpireBefore marks active cards past their expiry as expired.
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
	// ActiveLiability sums the balances of active cards.
	ActiveLiability(ctx context.Context) (models.Money, error)
}
