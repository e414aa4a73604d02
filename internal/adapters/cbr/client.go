package cbr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrMissingUSDRate = errors.New("USD rate is missing in response")

// StatusError is returned when the rate service answers with anything but 200.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from rate service: %s", e.StatusCode, e.Status)
}

type Client struct {
	http *http.Client
	url  string
}

type valute struct {
	CharCode string   `json:"CharCode"`
	Nominal  int      `json:"Nominal"`
	Value    *float64 `json:"Value"`
}

type dailyResponse struct {
	Date   string            `json:"Date"`
	Valute map[string]valute `json:"Valute"`
}

func (c *Client) GetUSDRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var body dailyResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	usd, ok := body.Valute["USD"]
	if !ok || usd.Value == nil {
		return 0, ErrMissingUSDRate
	}

	return *usd.Value, nil
}

func NewClient(httpClient *http.Client, url string) *Client {
	return &Client{http: httpClient, url: url}
}
