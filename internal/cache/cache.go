// Package cache holds the latest fetched market data in memory. Each cache is
// wholesale-replaced by its refresh routine and carries a lastUpdate instant
// that drives the staleness policy: a never-populated cache is infinitely
// stale, and a failed refresh leaves the previous contents untouched.
package cache

import (
	"sync"
	"time"

	"goldwatch/internal/model"
)

const (
	// PriceMaxAge is the staleness threshold for the price and news caches.
	PriceMaxAge = 5 * time.Minute
	// CryptoMaxAge is the request-time staleness threshold for crypto data.
	// The background refresh runs more often than this.
	CryptoMaxAge = 5 * time.Minute
	// MaxNewsItems caps how many headlines are kept per instrument.
	MaxNewsItems = 5
)

func stale(lastUpdate *time.Time, now time.Time, maxAge time.Duration) bool {
	if lastUpdate == nil {
		return true
	}
	return now.Sub(*lastUpdate) > maxAge
}

// PriceCache holds the most recent gold and silver quotes.
type PriceCache struct {
	mu         sync.RWMutex
	gold       *model.PriceQuote
	silver     *model.PriceQuote
	lastUpdate *time.Time
}

// NewPriceCache returns an empty price cache.
func NewPriceCache() *PriceCache { return &PriceCache{} }

// Set replaces the cached quotes and stamps lastUpdate.
func (c *PriceCache) Set(gold, silver *model.PriceQuote, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gold = gold
	c.silver = silver
	c.lastUpdate = &now
}

// Get returns the cached quotes and the last update instant.
func (c *PriceCache) Get() (gold, silver *model.PriceQuote, lastUpdate *time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gold, c.silver, c.lastUpdate
}

// Quote returns the cached quote for a single instrument, or nil.
func (c *PriceCache) Quote(inst model.Instrument) *model.PriceQuote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch inst {
	case model.Gold:
		return c.gold
	case model.Silver:
		return c.silver
	}
	return nil
}

// Stale reports whether the cache needs a refresh before serving.
func (c *PriceCache) Stale(now time.Time, maxAge time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return stale(c.lastUpdate, now, maxAge)
}

// NewsCache holds up to MaxNewsItems recent headlines per instrument.
type NewsCache struct {
	mu         sync.RWMutex
	items      map[model.Instrument][]model.NewsItem
	lastUpdate *time.Time
}

// NewNewsCache returns an empty news cache.
func NewNewsCache() *NewsCache {
	return &NewsCache{items: make(map[model.Instrument][]model.NewsItem)}
}

// Set replaces the cached headlines and stamps lastUpdate. Per-instrument
// lists are truncated to MaxNewsItems.
func (c *NewsCache) Set(items map[model.Instrument][]model.NewsItem, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	capped := make(map[model.Instrument][]model.NewsItem, len(items))
	for inst, list := range items {
		if len(list) > MaxNewsItems {
			list = list[:MaxNewsItems]
		}
		capped[inst] = list
	}
	c.items = capped
	c.lastUpdate = &now
}

// Get returns the headlines for an instrument.
func (c *NewsCache) Get(inst model.Instrument) []model.NewsItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items[inst]
}

// LastUpdate returns the last update instant, nil if never populated.
func (c *NewsCache) LastUpdate() *time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdate
}

// Stale reports whether the cache needs a refresh before serving.
func (c *NewsCache) Stale(now time.Time, maxAge time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return stale(c.lastUpdate, now, maxAge)
}

// CryptoCache holds the top coins by market cap plus an id-keyed index.
type CryptoCache struct {
	mu         sync.RWMutex
	top        []model.CryptoQuote
	byID       map[string]model.CryptoQuote
	lastUpdate *time.Time
}

// NewCryptoCache returns an empty crypto cache.
func NewCryptoCache() *CryptoCache {
	return &CryptoCache{byID: make(map[string]model.CryptoQuote)}
}

// Set replaces the top list, rebuilds the id index, and stamps lastUpdate.
func (c *CryptoCache) Set(top []model.CryptoQuote, now time.Time) {
	byID := make(map[string]model.CryptoQuote, len(top))
	for _, q := range top {
		byID[q.ID] = q
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.top = top
	c.byID = byID
	c.lastUpdate = &now
}

// Top returns the cached top coins ordered by descending market cap.
func (c *CryptoCache) Top() []model.CryptoQuote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.CryptoQuote, len(c.top))
	copy(out, c.top)
	return out
}

// Lookup returns the quotes for the requested ids, silently omitting unknown
// ones. With no ids it returns the full index.
func (c *CryptoCache) Lookup(ids []string) map[string]model.CryptoQuote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]model.CryptoQuote)
	if len(ids) == 0 {
		for id, q := range c.byID {
			out[id] = q
		}
		return out
	}
	for _, id := range ids {
		if q, ok := c.byID[id]; ok {
			out[id] = q
		}
	}
	return out
}

// LastUpdate returns the last update instant, nil if never populated.
func (c *CryptoCache) LastUpdate() *time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdate
}

// Stale reports whether the cache needs a refresh before serving.
func (c *CryptoCache) Stale(now time.Time, maxAge time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return stale(c.lastUpdate, now, maxAge)
}
