// Package rating talks to the external rating microservice. The
// booking core never depends on this service being up: read paths
// degrade to "no ratings available".
package rating

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

var ErrAlreadyRated = errors.New("user has already rated this event")

type Rating struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	UserID    uuid.UUID `json:"user_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type Summary struct {
	EventID      uuid.UUID `json:"event_id"`
	AverageScore *float64  `json:"average_score"`
	TotalRatings int64     `json:"total_ratings"`
	Ratings      []Rating  `json:"ratings"`
}

type CreateRequest struct {
	EventID uuid.UUID `json:"event_id"`
	UserID  uuid.UUID `json:"user_id"`
	Score   int       `json:"score"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) CreateRating(ctx context.Context, req CreateRequest) (*Rating, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ratings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusConflict:
		return nil, ErrAlreadyRated
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("rating service returned %d", resp.StatusCode)
	}

	var rating Rating
	if err := json.NewDecoder(resp.Body).Decode(&rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

func (c *Client) SummaryForEvent(ctx context.Context, eventID uuid.UUID) (*Summary, error) {
	url := fmt.Sprintf("%s/ratings/event/%s", c.baseURL, eventID)
	var summary Summary
	if err := c.getJSON(ctx, url, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) HasUserRated(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	url := fmt.Sprintf("%s/ratings/event/%s/user/%s", c.baseURL, eventID, userID)
	var rated bool
	if err := c.getJSON(ctx, url, &rated); err != nil {
		return false, err
	}
	return rated, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("rating service returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
