package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"goldwatch/internal/model"
)

// CoinGeckoFetcher implements CryptoFetcher using the public CoinGecko API.
type CoinGeckoFetcher struct {
	BaseURL string
	Client  *http.Client
	log     zerolog.Logger
}

// NewCoinGeckoFetcher creates a CoinGecko fetcher.
func NewCoinGeckoFetcher(log zerolog.Logger) *CoinGeckoFetcher {
	return &CoinGeckoFetcher{
		BaseURL: "https://api.coingecko.com/api/v3",
		Client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("source", "coingecko").Logger(),
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// coinMarket is one element of the /coins/markets response.
type coinMarket struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	CurrentPrice             float64 `json:"current_price"`
	PriceChange24h           float64 `json:"price_change_24h"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	MarketCap                float64 `json:"market_cap"`
	Image                    string  `json:"image"`
}

// FetchTop fetches the top 10 coins by market cap, priced in EUR.
func (f *CoinGeckoFetcher) FetchTop(ctx context.Context) ([]model.CryptoQuote, error) {
	u := f.BaseURL + "/coins/markets?vs_currency=eur&order=market_cap_desc&per_page=10&page=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko markets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko markets: status %d", resp.StatusCode)
	}

	var markets []coinMarket
	if err := json.NewDecoder(resp.Body).Decode(&markets); err != nil {
		return nil, fmt.Errorf("coingecko markets decode: %w", err)
	}

	quotes := make([]model.CryptoQuote, 0, len(markets))
	for _, m := range markets {
		quotes = append(quotes, model.CryptoQuote{
			ID:               m.ID,
			Symbol:           m.Symbol,
			Name:             m.Name,
			Price:            m.CurrentPrice,
			Change24h:        m.PriceChange24h,
			ChangePercent24h: m.PriceChangePercentage24h,
			MarketCap:        m.MarketCap,
			Image:            m.Image,
		})
	}
	return quotes, nil
}

// FetchCoin looks up a single coin outside the cached top list. Only the EUR
// price and 24h percent change are available on this endpoint.
func (f *CoinGeckoFetcher) FetchCoin(ctx context.Context, id string) (float64, float64, error) {
	u := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=eur&include_24hr_change=true",
		f.BaseURL, url.QueryEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("coingecko price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("coingecko price: status %d", resp.StatusCode)
	}

	var body map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, fmt.Errorf("coingecko price decode: %w", err)
	}

	coin, ok := body[id]
	if !ok {
		return 0, 0, fmt.Errorf("coingecko: unknown coin %q", id)
	}
	return coin["eur"], coin["eur_24h_change"], nil
}
