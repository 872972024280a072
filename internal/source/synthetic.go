package source

import (
	"context"
	"math/rand"
	"sync"

	"github.com/rs/zerolog"

	"goldwatch/internal/model"
)

// Free-tier approximation parameters, in USD per troy ounce.
const (
	defaultUSDToEUR = 0.92

	goldBaseUSD     = 2650.0
	goldJitterUSD   = 10.0
	goldChangeUSD   = 15.0
	silverBaseUSD   = 31.0
	silverJitterUSD = 0.25
	silverChangeUSD = 0.25
)

// SyntheticFetcher is the free-tier price source: it fetches a USD→EUR rate
// and synthesizes approximate spot prices with bounded random jitter. An
// exchange-rate failure degrades to a default rate, so this tier never fails.
type SyntheticFetcher struct {
	Rates *RateClient
	log   zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSyntheticFetcher creates a synthetic fetcher. The random source is
// injectable so tests can seed it for exact output.
func NewSyntheticFetcher(rates *RateClient, rng *rand.Rand, log zerolog.Logger) *SyntheticFetcher {
	return &SyntheticFetcher{
		Rates: rates,
		rng:   rng,
		log:   log.With().Str("source", "synthetic").Logger(),
	}
}

func (f *SyntheticFetcher) Name() string { return "synthetic" }

// jitter returns a uniform value in [-spread, spread].
func (f *SyntheticFetcher) jitter(spread float64) float64 {
	return (f.rng.Float64()*2 - 1) * spread
}

// FetchPrices synthesizes gold and silver quotes in EUR. It never returns an
// error.
func (f *SyntheticFetcher) FetchPrices(ctx context.Context) (*model.PriceQuote, *model.PriceQuote, error) {
	rate := defaultUSDToEUR
	if r, err := f.Rates.GetRate(ctx, "USD", "EUR"); err != nil {
		f.log.Warn().Err(err).Float64("fallback", rate).Msg("exchange rate unavailable, using default")
	} else {
		rate = r
	}

	f.mu.Lock()
	goldUSD := goldBaseUSD + f.jitter(goldJitterUSD)
	goldChange := f.jitter(goldChangeUSD)
	silverUSD := silverBaseUSD + f.jitter(silverJitterUSD)
	silverChange := f.jitter(silverChangeUSD)
	f.mu.Unlock()

	gold := quoteFromUSD(goldUSD, goldChange, rate)
	silver := quoteFromUSD(silverUSD, silverChange, rate)

	f.log.Debug().Float64("gold", gold.Price).Float64("silver", silver.Price).
		Float64("rate", rate).Msg("synthesized quotes")
	return gold, silver, nil
}

func quoteFromUSD(priceUSD, changeUSD, rate float64) *model.PriceQuote {
	price := priceUSD * rate
	change := changeUSD * rate
	changePct := changeUSD / priceUSD * 100
	return &model.PriceQuote{
		Price:            price,
		PricePerGram:     price / model.GramsPerTroyOunce,
		Change24h:        model.Float(change),
		ChangePercent24h: model.Float(changePct),
		Currency:         "EUR",
	}
}
