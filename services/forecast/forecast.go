package forecast

import (
	"context"
	"fmt"
	"time"

	"auracare/database/repository"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/services/salon"
	"auracare/utils"

	"go.uber.org/zap"
)

const (
	historyMonths  = 12
	DefaultHorizon = 3
	MaxHorizon     = 12
)

// Predictor is the part of Client the service depends on.
type Predictor interface {
	Health(ctx context.Context) error
	Predict(ctx context.Context, salonID string, history []models.MonthlyRevenue, horizon int) ([]Prediction, error)
}

// Forecast is a salon's revenue history with the predicted months appended.
type Forecast struct {
	SalonID     string                  `json:"salonId"`
	History     []models.MonthlyRevenue `json:"history"`
	Predictions []Prediction            `json:"predictions"`
}

type ForecastService interface {
	SalonForecast(ctx context.Context, ownerID string, horizon int) (*Forecast, error)
	Health(ctx context.Context) error
}

type DefaultForecastService struct {
	Appointments repository.AppointmentRepository
	Resolver     salon.Resolver
	Predictor    Predictor
	Now          func() time.Time
}

func (s *DefaultForecastService) SalonForecast(ctx context.Context, ownerID string, horizon int) (*Forecast, error) {
	if horizon == 0 {
		horizon = DefaultHorizon
	}
	if horizon < 1 || horizon > MaxHorizon {
		return nil, apperr.Validation("horizon must be between 1 and %d", MaxHorizon)
	}
	owned, err := s.Resolver.ResolveSalonForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	now = now.UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -historyMonths, 0)
	history, err := s.Appointments.MonthlyRevenue(ctx, owned.ID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue history: %w", err)
	}
	if history == nil {
		history = []models.MonthlyRevenue{}
	}

	predictions, err := s.Predictor.Predict(ctx, owned.ID, history, horizon)
	if err != nil {
		utils.GetLogger().Error("forecast request failed", zap.String("salonID", owned.ID), zap.Error(err))
		return nil, err
	}
	return &Forecast{SalonID: owned.ID, History: history, Predictions: predictions}, nil
}

func (s *DefaultForecastService) Health(ctx context.Context) error {
	return s.Predictor.Health(ctx)
}
