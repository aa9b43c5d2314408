package giftcard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/services/salon"
	"auracare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultValidityDays = 365
	DefaultCurrency     = "INR"
	codeLength          = 12
	issueAttempts       = 3
)

// GiftCardService issues and redeems prepaid salon gift cards.
type GiftCardService interface {
	Issue(ctx context.Context, purchaserID string, req models.IssueGiftCardRequest) (*models.GiftCard, error)
	GetByCode(ctx context.Context, code string) (*models.GiftCard, error)
	ListForSalon(ctx context.Context, ownerID string) ([]models.GiftCard, error)
	ListMine(ctx context.Context, userID string) ([]models.GiftCard, error)
	Redeem(ctx context.Context, ownerID string, req models.RedeemGiftCardRequest) (*models.GiftCard, error)
	Cancel(ctx context.Context, ownerID, code string) (*models.GiftCard, error)
	// ExpireSweep marks every active card past its expiry as expired.
	ExpireSweep(ctx context.Context) (int64, error)
}

// DefaultGiftCardService is the production implementation.
type DefaultGiftCardService struct {
	Cards    repository.GiftCardRepository
	Salons   repository.SalonRepository
	Resolver salon.Resolver
	Now      func() time.Time
}

func (s *DefaultGiftCardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NewCode returns 12 upper-case alphanumerics taken from a random UUID.
func NewCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:codeLength])
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *DefaultGiftCardService) Issue(ctx context.Context, purchaserID string, req models.IssueGiftCardRequest) (*models.GiftCard, error) {
	amount := models.ToMoney(req.Amount)
	if amount <= 0 {
		return nil, apperr.Validation("amount must be greater than zero")
	}
	if req.ValidityDays < 0 {
		return nil, apperr.Validation("validityDays cannot be negative")
	}
	target, err := s.Salons.GetByID(ctx, req.SalonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load salon: %w", err)
	}
	if target == nil {
		return nil, apperr.NotFound("salon not found")
	}
	if target.Status != models.SalonStatusApproved {
		return nil, apperr.Validation("salon is not accepting gift cards")
	}

	days := req.ValidityDays
	if days == 0 {
		days = DefaultValidityDays
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	now := s.now()

	card := &models.GiftCard{
		ID:             uuid.New().String(),
		SalonID:        target.ID,
		PurchaserID:    purchaserID,
		RecipientEmail: strings.ToLower(strings.TrimSpace(req.RecipientEmail)),
		Amount:         amount,
		Balance:        amount,
		Currency:       currency,
		Status:         models.GiftCardActive,
		ExpiresAt:      now.AddDate(0, 0, days),
		Redemptions:    []models.GiftCardRedemption{},
	}
	for attempt := 1; ; attempt++ {
		card.Code = NewCode()
		err = s.Cards.Create(ctx, card)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicate) || attempt == issueAttempts {
			return nil, fmt.Errorf("failed to issue gift card: %w", err)
		}
	}

	utils.GetLogger().Info("gift card issued",
		zap.String("salonID", card.SalonID),
		zap.String("purchaserID", purchaserID),
		zap.Stringer("amount", card.Amount),
	)
	return card, nil
}

func (s *DefaultGiftCardService) GetByCode(ctx context.Context, code string) (*models.GiftCard, error) {
	card, err := s.Cards.GetByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("failed to load gift card: %w", err)
	}
	if card == nil {
		return nil, apperr.NotFound("gift card not found")
	}
	return card, nil
}

func (s *DefaultGiftCardService) ListForSalon(ctx context.Context, ownerID string) ([]models.GiftCard, error) {
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cards, err := s.Cards.ListBySalon(ctx, owned.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gift cards: %w", err)
	}
	return cards, nil
}

func (s *DefaultGiftCardService) ListMine(ctx context.Context, userID string) ([]models.GiftCard, error) {
	cards, err := s.Cards.ListByPurchaser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gift cards: %w", err)
	}
	return cards, nil
}

// ownedCard loads a card issued for the owner's salon.
func (s *DefaultGiftCardService) ownedCard(ctx context.Context, ownerID, code string) (*models.GiftCard, error) {
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	card, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if card.SalonID != owned.ID {
		return nil, apperr.Forbidden("gift card belongs to another salon")
	}
	return card, nil
}

func (s *DefaultGiftCardService) Redeem(ctx context.Context, ownerID string, req models.RedeemGiftCardRequest) (*models.GiftCard, error) {
	amount := models.ToMoney(req.Amount)
	if amount <= 0 {
		return nil, apperr.Validation("amount must be greater than zero")
	}
	card, err := s.ownedCard(ctx, ownerID, req.Code)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if card.Status != models.GiftCardActive {
		return nil, apperr.Conflict("gift card is %s", card.Status)
	}
	if !card.ExpiresAt.After(now) {
		return nil, apperr.Conflict("gift card expired on %s", card.ExpiresAt.Format("2006-01-02"))
	}
	if amount > card.Balance {
		return nil, apperr.Validation("amount exceeds the remaining balance of %s", card.Balance)
	}

	updated, err := s.Cards.Redeem(ctx, card.Code, models.GiftCardRedemption{
		AppointmentID: strings.TrimSpace(req.AppointmentID),
		Amount:        amount,
		At:            now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to redeem gift card: %w", err)
	}
	if updated == nil {
		// Another redemption won the race for the balance.
		return nil, apperr.Conflict("gift card balance changed, please retry")
	}

	if updated.Balance <= 0 {
		moved, err := s.Cards.SetStatus(ctx, updated.Code, models.GiftCardActive, models.GiftCardRedeemed)
		if err != nil {
			utils.GetLogger().Warn("failed to close redeemed gift card", zap.String("code", updated.Code), zap.Error(err))
		} else if moved {
			updated.Status = models.GiftCardRedeemed
		}
	}

	utils.GetLogger().Info("gift card redeemed",
		zap.String("salonID", updated.SalonID),
		zap.Stringer("amount", amount),
		zap.Stringer("balance", updated.Balance),
	)
	return updated, nil
}

func (s *DefaultGiftCardService) Cancel(ctx context.Context, ownerID, code string) (*models.GiftCard, error) {
	card, err := s.ownedCard(ctx, ownerID, code)
	if err != nil {
		return nil, err
	}
	moved, err := s.Cards.SetStatus(ctx, card.Code, models.GiftCardActive, models.GiftCardCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel gift card: %w", err)
	}
	if !moved {
		return nil, apperr.Conflict("gift card is %s", card.Status)
	}
	card.Status = models.GiftCardCancelled
	return card, nil
}

func (s *DefaultGiftCardService) ExpireSweep(ctx context.Context) (int64, error) {
	n, err := s.Cards.ExpireBefore(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire gift cards: %w", err)
	}
	if n > 0 {
		utils.GetLogger().Info("gift cards expired", zap.Int64("count", n))
	}
	return n, nil
}
