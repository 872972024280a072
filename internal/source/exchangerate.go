package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RateClient fetches currency exchange rates from exchangerate-api.com.
type RateClient struct {
	BaseURL string
	Client  *http.Client
	log     zerolog.Logger
}

// NewRateClient creates an exchangerate-api.com client.
func NewRateClient(log zerolog.Logger) *RateClient {
	return &RateClient{
		BaseURL: "https://api.exchangerate-api.com/v4/latest",
		Client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("source", "exchangerate").Logger(),
	}
}

// GetRate fetches the conversion rate from one currency to another.
func (c *RateClient) GetRate(ctx context.Context, from, to string) (float64, error) {
	if from == to {
		return 1.0, nil
	}

	url := fmt.Sprintf("%s/%s", c.BaseURL, from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("exchangerate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("exchangerate: status %d", resp.StatusCode)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("exchangerate decode: %w", err)
	}

	rate, ok := body.Rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("exchangerate: no %s rate in response", to)
	}

	c.log.Debug().Str("from", from).Str("to", to).Float64("rate", rate).Msg("fetched rate")
	return rate, nil
}
