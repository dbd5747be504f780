package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// DefaultAPIBase is the public tarot API.
const DefaultAPIBase = "https://tarotapi.dev/api/v1"

// Client fetches cards from the tarot API.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Logger   *slog.Logger
	MaxTries uint
	BackOff  backoff.BackOff
}

// NewClient returns a client for baseURL, DefaultAPIBase when empty.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBase
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Logger:   logger,
		MaxTries: 4,
	}
}

type cardsResponse struct {
	NHits int       `json:"nhits"`
	Cards []APICard `json:"cards"`
}

// FetchCards downloads every card. Server errors and transport failures are
// retried with exponential backoff; client errors are not.
func (c *Client) FetchCards(ctx context.Context) ([]APICard, error) {
	b := c.BackOff
	if b == nil {
		b = backoff.NewExponentialBackOff()
	}

	attempt := 0
	cards, err := backoff.Retry(ctx, func() ([]APICard, error) {
		attempt++
		cards, err := c.fetch(ctx)
		if err != nil {
			c.Logger.Warn("tarot API request failed", "attempt", attempt, "error", err)
		}
		return cards, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(c.MaxTries))
	if err != nil {
		return nil, fmt.Errorf("error fetching cards: %w", err)
	}
	c.Logger.Info("fetched cards from API", "count", len(cards))
	return cards, nil
}

func (c *Client) fetch(ctx context.Context) ([]APICard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/cards", nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("API request failed: %s", resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("API request failed: %s", resp.Status))
	}

	var body cardsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("error decoding API response: %v", err))
	}
	return body.Cards, nil
}
