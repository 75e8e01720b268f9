// Package api is the HTTP client for the momentum backend. Calls are single
// attempt with no retry; failures surface as TransportError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperr "github.com/momentum-app/momentum/internal/errors"
	"github.com/momentum-app/momentum/internal/models"
)

// ReflectionRecord is the wire shape of a stored reflection. The backend
// uses success/improvement as field names; the client translates to the
// canonical successes/improvements on the way in and out.
type ReflectionRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Date        time.Time `json:"date"`
	Success     string    `json:"success"`
	Improvement string    `json:"improvement"`
	Journal     string    `json:"journal"`
}

// HabitSnapshot is the payload for the write-only habit sync endpoint.
type HabitSnapshot struct {
	UserID string         `json:"userId"`
	Habits []models.Habit `json:"habits"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &apperr.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperr.TransportError{Status: resp.StatusCode}
	}
	return nil
}

// SaveReflection sends a reflection to the backend for the given user.
func (c *Client) SaveReflection(ctx context.Context, userID string, r models.Reflection) error {
	payload := ReflectionRecord{
		ID:          r.ID,
		UserID:      userID,
		Date:        r.Date,
		Success:     r.Successes,
		Improvement: r.Improvements,
		Journal:     r.Journal,
	}
	return c.post(ctx, "/api/reflections", payload)
}

// Reflections fetches the user's reflections, ordered most-recent-first by
// the backend.
func (c *Client) Reflections(ctx context.Context, userID string) ([]models.Reflection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/reflections/"+userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &apperr.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apperr.TransportError{Status: resp.StatusCode}
	}

	var records []ReflectionRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &apperr.TransportError{Err: err}
	}

	reflections := make([]models.Reflection, 0, len(records))
	for _, rec := range records {
		reflections = append(reflections, models.Reflection{
			ID:           rec.ID,
			Date:         rec.Date,
			Successes:    rec.Success,
			Improvements: rec.Improvement,
			Journal:      rec.Journal,
		})
	}
	return reflections, nil
}

// SyncHabits uploads the full habit collection as a write-only snapshot.
func (c *Client) SyncHabits(ctx context.Context, userID string, habits []models.Habit) error {
	return c.post(ctx, "/api/habits", HabitSnapshot{UserID: userID, Habits: habits})
}

// Health probes the backend's document-store connectivity.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &apperr.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &apperr.TransportError{Status: resp.StatusCode}
	}
	return nil
}
