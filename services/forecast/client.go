package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"auracare/models"
)

// Prediction is one forecast point returned by the forecasting service.
type Prediction struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type predictRequest struct {
	SalonID string                  `json:"salonId"`
	History []models.MonthlyRevenue `json:"history"`
	Horizon int                     `json:"horizon"`
}

type predictResponse struct {
	Predictions []Prediction `json:"predictions"`
}

// UpstreamError reports a forecasting service that could not be reached or
// answered with a non-2xx status. Status is zero for transport failures.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("forecast service returned %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("forecast service unreachable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client talks to the revenue forecasting microservice.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Health returns an error unless GET /health answers 2xx.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &UpstreamError{Err: err}
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// Predict posts the revenue history of a salon and returns horizon months of forecast.
func (c *Client) Predict(ctx context.Context, salonID string, history []models.MonthlyRevenue, horizon int) ([]Prediction, error) {
	if history == nil {
		history = []models.MonthlyRevenue{}
	}
	body, err := json.Marshal(predictRequest{SalonID: salonID, History: history, Horizon: horizon})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("failed to decode forecast: %w", err)}
	}
	if out.Predictions == nil {
		out.Predictions = []Prediction{}
	}
	return out.Predictions, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &UpstreamError{Status: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(snippet)))}
}
