package handlers

import (
	"auracare/middleware"
	"auracare/models"
	"auracare/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login and session endpoints.
type AuthHandler struct {
	Service auth.AuthService
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("user registered", zap.String("userID", resp.User.ID), zap.String("role", resp.User.Role))
	respondCreated(c, resp, "Registration successful")
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.Service.Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Service.Logout(c.Request.Context(), c.GetString(middleware.CtxToken)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"loggedOut": true})
}

// UpdateDeviceToken handles PUT /api/auth/fcm-token.
func (h *AuthHandler) UpdateDeviceToken(c *gin.Context) {
	var req models.DeviceTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.UpdateDeviceToken(c.Request.Context(), currentUserID(c), req.FCMToken); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"updated": true})
}
