package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AuthService defines account registration and session operations.
type AuthService interface {
	// Register creates the account and returns a session token for it.
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	// Login verifies credentials and returns a session token.
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	// Me returns the current user.
	Me(ctx context.Context, userID string) (*models.User, error)
	// Logout revokes the token until it would have expired.
	Logout(ctx context.Context, token string) error
	// UpdateDeviceToken stores the FCM token used for push notifications.
	UpdateDeviceToken(ctx context.Context, userID, fcmToken string) error
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Users     repository.UserRepository
	Customers repository.CustomerRepository
	Staff     repository.StaffRepository
	JWT       *utils.JWTManager
	Revoker   *utils.TokenRevoker
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
}

var selfServiceRoles = map[string]bool{
	models.RoleCustomer: true,
	models.RoleSalon:    true,
	models.RoleStaff:    true,
}

func (s *DefaultAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("a valid email is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLength)
	}
	if !selfServiceRoles[role] {
		return nil, apperr.Validation("role must be one of customer, salon or staff")
	}

	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("a user with this email already exists")
	}

	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("a user with this email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	switch role {
	case models.RoleCustomer:
		customer := &models.Customer{
			ID:     uuid.New().String(),
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Phone:  user.Phone,
		}
		if err := s.Customers.Create(ctx, customer); err != nil {
			return nil, fmt.Errorf("failed to create customer profile: %w", err)
		}
	case models.RoleStaff:
		s.linkStaffRecord(ctx, user)
	}

	utils.GetLogger().Info("user registered", zap.String("userID", user.ID), zap.String("role", role))
	return s.issue(user)
}

// linkStaffRecord attaches the login to a staff record the owner created with the same email.
func (s *DefaultAuthService) linkStaffRecord(ctx context.Context, user *models.User) {
	if s.Staff == nil {
		return
	}
	staff, err := s.Staff.GetByEmail(ctx, user.Email)
	if err != nil || staff == nil {
		return
	}
	if _, err := s.Staff.LinkUser(ctx, staff.ID, user.ID); err != nil {
		utils.GetLogger().Warn("failed to link staff record", zap.String("staffID", staff.ID), zap.Error(err))
	}
}

func (s *DefaultAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	return s.issue(user)
}

func (s *DefaultAuthService) issue(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := s.JWT.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *DefaultAuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (s *DefaultAuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return apperr.Unauthorized("invalid token")
	}
	return s.Revoker.Revoke(ctx, utils.HashToken(token), time.Until(claims.ExpiresAt))
}

func (s *DefaultAuthService) UpdateDeviceToken(ctx context.Context, userID, fcmToken string) error {
	fcmToken = strings.TrimSpace(fcmToken)
	if fcmToken == "" {
		return apperr.Validation("fcmToken is required")
	}
	if err := s.Users.UpdateFCMToken(ctx, userID, fcmToken); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return fmt.Errorf("failed to update device token: %w", err)
	}
	return nil
}
