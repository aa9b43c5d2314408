package handlers

import (
	"auracare/models"
	"auracare/services/giftcard"

	"github.com/gin-gonic/gin"
)

type GiftCardHandler struct {
	Service giftcard.GiftCardService
}

// Issue handles POST /api/gift-card.
func (h *GiftCardHandler) Issue(c *gin.Context) {
	var req models.IssueGiftCardRequest
	if !bindJSON(c, &req) {
		return
	}
	card, err := h.Service.Issue(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, card, "Gift card issued")
}

// ListMine handles GET /api/gift-card/mine.
func (h *GiftCardHandler) ListMine(c *gin.Context) {
	cards, err := h.Service.ListMine(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, cards)
}

// GetByCode handles GET /api/gift-card/code/:code.
func (h *GiftCardHandler) GetByCode(c *gin.Context) {
	card, err := h.Service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"code":      card.Code,
		"salonId":   card.SalonID,
		"balance":   card.Balance,
		"currency":  card.Currency,
		"status":    card.Status,
		"expiresAt": card.ExpiresAt,
	})
}

// ListForSalon handles GET /api/gift-card/salon.
func (h *GiftCardHandler) ListForSalon(c *gin.Context) {
	cards, err := h.Service.ListForSalon(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, cards)
}

// Redeem handles POST /api/gift-card/redeem.
func (h *GiftCardHandler) Redeem(c *gin.Context) {
	var req models.RedeemGiftCardRequest
	if !bindJSON(c, &req) {
		return
	}
	card, err := h.Service.Redeem(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, card)
}

// Cancel handles POST /api/gift-card/:code/cancel.
func (h *GiftCardHandler) Cancel(c *gin.Context) {
	card, err := h.Service.Cancel(c.Request.Context(), currentUserID(c), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, card)
}
