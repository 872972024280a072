// Package refresh orchestrates fetching from the upstream sources into the
// in-memory caches and the history store. Refreshers own every cache
// mutation; readers elsewhere only observe.
package refresh

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"goldwatch/internal/cache"
	"goldwatch/internal/history"
	"goldwatch/internal/model"
	"goldwatch/internal/source"
)

// Refresher drives all three refresh cycles. A failed price or crypto cycle
// leaves the previous cache untouched (stale-but-valid); there are no retries
// and concurrent stale-triggered refreshes are not deduplicated.
type Refresher struct {
	Prices source.PriceFetcher
	News   source.NewsFetcher
	Crypto source.CryptoFetcher

	PriceCache  *cache.PriceCache
	NewsCache   *cache.NewsCache
	CryptoCache *cache.CryptoCache
	History     *history.Store

	Now func() time.Time
	log zerolog.Logger
}

// Config collects the Refresher collaborators.
type Config struct {
	Prices source.PriceFetcher
	News   source.NewsFetcher
	Crypto source.CryptoFetcher

	PriceCache  *cache.PriceCache
	NewsCache   *cache.NewsCache
	CryptoCache *cache.CryptoCache
	History     *history.Store

	Log zerolog.Logger
}

// New creates a Refresher.
func New(cfg Config) *Refresher {
	return &Refresher{
		Prices:      cfg.Prices,
		News:        cfg.News,
		Crypto:      cfg.Crypto,
		PriceCache:  cfg.PriceCache,
		NewsCache:   cfg.NewsCache,
		CryptoCache: cfg.CryptoCache,
		History:     cfg.History,
		Now:         time.Now,
		log:         cfg.Log.With().Str("component", "refresh").Logger(),
	}
}

// RefreshPrices runs one price fetch cycle: fetch through the fallback chain,
// append to history for both instruments, replace the price cache wholesale.
func (r *Refresher) RefreshPrices(ctx context.Context) error {
	gold, silver, err := r.Prices.FetchPrices(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("price refresh failed, keeping stale cache")
		return err
	}

	now := r.Now()
	var goldPrice, silverPrice float64
	if gold != nil {
		goldPrice = gold.Price
		r.History.Append(model.Gold, gold.Price, now)
	}
	if silver != nil {
		silverPrice = silver.Price
		r.History.Append(model.Silver, silver.Price, now)
	}
	r.PriceCache.Set(gold, silver, now)

	r.log.Debug().Float64("gold", goldPrice).Float64("silver", silverPrice).Msg("prices refreshed")
	return nil
}

// RefreshNews runs one news fetch cycle. The fetcher substitutes placeholders
// per instrument, so this always stamps a fresh lastUpdate.
func (r *Refresher) RefreshNews(ctx context.Context) error {
	items, err := r.News.FetchNews(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("news refresh failed, keeping stale cache")
		return err
	}
	r.NewsCache.Set(items, r.Now())
	r.log.Debug().Msg("news refreshed")
	return nil
}

// RefreshCrypto runs one crypto fetch cycle. On failure the previous cache is
// retained.
func (r *Refresher) RefreshCrypto(ctx context.Context) error {
	top, err := r.Crypto.FetchTop(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("crypto refresh failed, keeping stale cache")
		return err
	}
	r.CryptoCache.Set(top, r.Now())
	r.log.Debug().Int("coins", len(top)).Msg("crypto refreshed")
	return nil
}

// EnsureMarketFresh refreshes the price and news caches synchronously when
// they are past their staleness thresholds. Fresh caches are served as-is.
func (r *Refresher) EnsureMarketFresh(ctx context.Context) {
	now := r.Now()
	if r.PriceCache.Stale(now, cache.PriceMaxAge) {
		_ = r.RefreshPrices(ctx)
	}
	if r.NewsCache.Stale(now, cache.PriceMaxAge) {
		_ = r.RefreshNews(ctx)
	}
}

// EnsureCryptoFresh refreshes the crypto cache synchronously when stale.
func (r *Refresher) EnsureCryptoFresh(ctx context.Context) {
	if r.CryptoCache.Stale(r.Now(), cache.CryptoMaxAge) {
		_ = r.RefreshCrypto(ctx)
	}
}

// RefreshAll runs every cycle once, synchronously. Used at boot so the first
// request is never served from an empty cache.
func (r *Refresher) RefreshAll(ctx context.Context) {
	_ = r.RefreshPrices(ctx)
	_ = r.RefreshNews(ctx)
	_ = r.RefreshCrypto(ctx)
}
