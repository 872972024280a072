package source

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"goldwatch/internal/model"
)

// PriceChain tries each fetcher in priority order, first success wins.
type PriceChain struct {
	Fetchers []PriceFetcher
	log      zerolog.Logger
}

// NewPriceChain creates a fallback chain over the given fetchers.
func NewPriceChain(log zerolog.Logger, fetchers ...PriceFetcher) *PriceChain {
	return &PriceChain{
		Fetchers: fetchers,
		log:      log.With().Str("source", "chain").Logger(),
	}
}

func (c *PriceChain) Name() string { return "chain" }

// FetchPrices returns the first tier's successful result.
func (c *PriceChain) FetchPrices(ctx context.Context) (*model.PriceQuote, *model.PriceQuote, error) {
	var lastErr error
	for _, f := range c.Fetchers {
		gold, silver, err := f.FetchPrices(ctx)
		if err == nil {
			return gold, silver, nil
		}
		lastErr = err
		c.log.Warn().Err(err).Str("tier", f.Name()).Msg("price tier unavailable, falling through")
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no price fetchers configured")
	}
	return nil, nil, lastErr
}
