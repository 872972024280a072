package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"goldwatch/internal/model"
)

// GoldAPIFetcher implements PriceFetcher using goldapi.io. It requires an
// access token; without one every fetch reports unavailable so the chain
// moves on to the next tier.
type GoldAPIFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	log     zerolog.Logger
}

// NewGoldAPIFetcher creates a goldapi.io fetcher.
func NewGoldAPIFetcher(apiKey string, log zerolog.Logger) *GoldAPIFetcher {
	return &GoldAPIFetcher{
		BaseURL: "https://www.goldapi.io/api",
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("source", "goldapi").Logger(),
	}
}

func (f *GoldAPIFetcher) Name() string { return "goldapi" }

// goldAPIResponse is the subset of the goldapi.io payload we use.
type goldAPIResponse struct {
	Price float64 `json:"price"`
	Ch    float64 `json:"ch"`
	Chp   float64 `json:"chp"`
}

func (f *GoldAPIFetcher) fetchMetal(ctx context.Context, symbol string) (*model.PriceQuote, error) {
	url := fmt.Sprintf("%s/%s/EUR", f.BaseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-access-token", f.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("goldapi %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("goldapi %s: status %d", symbol, resp.StatusCode)
	}

	var body goldAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("goldapi %s decode: %w", symbol, err)
	}
	if body.Price <= 0 {
		return nil, fmt.Errorf("goldapi %s: no price in response", symbol)
	}

	return &model.PriceQuote{
		Price:            body.Price,
		PricePerGram:     body.Price / model.GramsPerTroyOunce,
		Change24h:        model.Float(body.Ch),
		ChangePercent24h: model.Float(body.Chp),
		Currency:         "EUR",
	}, nil
}

// FetchPrices fetches XAU/EUR and XAG/EUR concurrently. Either call failing
// fails the whole tier.
func (f *GoldAPIFetcher) FetchPrices(ctx context.Context) (*model.PriceQuote, *model.PriceQuote, error) {
	if f.APIKey == "" {
		return nil, nil, fmt.Errorf("goldapi: no API key configured")
	}

	type result struct {
		quote *model.PriceQuote
		err   error
	}
	goldCh := make(chan result, 1)
	silverCh := make(chan result, 1)

	go func() {
		q, err := f.fetchMetal(ctx, "XAU")
		goldCh <- result{q, err}
	}()
	go func() {
		q, err := f.fetchMetal(ctx, "XAG")
		silverCh <- result{q, err}
	}()

	goldRes := <-goldCh
	silverRes := <-silverCh
	if goldRes.err != nil {
		return nil, nil, goldRes.err
	}
	if silverRes.err != nil {
		return nil, nil, silverRes.err
	}

	f.log.Debug().
		Float64("gold", goldRes.quote.Price).
		Float64("silver", silverRes.quote.Price).
		Msg("fetched spot prices")
	return goldRes.quote, silverRes.quote, nil
}
