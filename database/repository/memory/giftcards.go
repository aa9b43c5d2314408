package memory

import (
	"context"
	"sync"
	"time"

	"auracare/database/repository"
	"auracare/models"
)

// GiftCardRepo keys cards by code. A single mutex makes Redeem atomic.
type GiftCardRepo struct {
	mu    sync.Mutex
	cards map[string]models.GiftCard
}

func NewGiftCardRepo() *GiftCardRepo {
	return &GiftCardRepo{cards: make(map[string]models.GiftCard)}
}

func cloneCard(c models.GiftCard) *models.GiftCard {
	c.Redemptions = append([]models.GiftCardRedemption{}, c.Redemptions...)
	return &c
}

func (r *GiftCardRepo) Create(_ context.Context, card *models.GiftCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cards[card.Code]; ok {
		return repository.ErrDuplicate
	}
	stamp(&card.CreatedAt, &card.UpdatedAt)
	if card.Redemptions == nil {
		card.Redemptions = []models.GiftCardRedemption{}
	}
	r.cards[card.Code] = *cloneCard(*card)
	return nil
}

func (r *GiftCardRepo) GetByCode(_ context.Context, code string) (*models.GiftCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.cards[code]
	if !ok {
		return nil, nil
	}
	return cloneCard(card), nil
}

func (r *GiftCardRepo) list(match func(*models.GiftCard) bool) []models.GiftCard {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.GiftCard{}
	for _, c := range r.cards {
		if match(&c) {
			out = append(out, *cloneCard(c))
		}
	}
	sortNewest(out, func(c *models.GiftCard) time.Time { return c.CreatedAt })
	return out
}

func (r *GiftCardRepo) ListBySalon(_ context.Context, salonID string) ([]models.GiftCard, error) {
	return r.list(func(c *models.GiftCard) bool { return c.SalonID == salonID }), nil
}

func (r *GiftCardRepo) ListByPurchaser(_ context.Context, purchaserID string) ([]models.GiftCard, error) {
	return r.list(func(c *models.GiftCard) bool { return c.PurchaserID == purchaserID }), nil
}

func (r *GiftCardRepo) Redeem(_ context.Context, code string, red models.GiftCardRedemption) (*models.GiftCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.cards[code]
	if !ok || card.Status != models.GiftCardActive || !card.ExpiresAt.After(red.At) || card.Balance < red.Amount {
		return nil, nil
	}
	card.Balance -= red.Amount
	card.Redemptions = append(append([]models.GiftCardRedemption{}, card.Redemptions...), red)
	card.UpdatedAt = red.At
	r.cards[code] = card
	return cloneCard(card), nil
}

func (r *GiftCardRepo) SetStatus(_ context.Context, code, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.cards[code]
	if !ok || card.Status != from {
		return false, nil
	}
	card.Status = to
	card.UpdatedAt = time.Now()
	r.cards[code] = card
	return true, nil
}

func (r *GiftCardRepo) ExpireBefore(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for code, card := range r.cards {
		if card.Status == models.GiftCardActive && !card.ExpiresAt.After(now) {
			card.Status = models.GiftCardExpired
			card.UpdatedAt = now
			r.cards[code] = card
			n++
		}
	}
	return n, nil
}

func (r *GiftCardRepo) ActiveLiability(_ context.Context) (models.Money, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total models.Money
	for _, card := range r.cards {
		if card.Status == models.GiftCardActive {
			total += card.Balance
		}
	}
	return total, nil
}
