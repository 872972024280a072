// Package source contains the upstream data adapters. Price fetching is a
// tiered fallback chain: an authenticated spot-price API, then a synthetic
// generator fed by a free exchange-rate API, then fixed last-resort values.
package source

import (
	"context"

	"goldwatch/internal/model"
)

// PriceFetcher fetches current gold and silver spot quotes.
type PriceFetcher interface {
	FetchPrices(ctx context.Context) (gold, silver *model.PriceQuote, err error)
	Name() string
}

// NewsFetcher fetches recent headlines per instrument. Implementations fall
// back to placeholder headlines per instrument rather than failing.
type NewsFetcher interface {
	FetchNews(ctx context.Context) (map[model.Instrument][]model.NewsItem, error)
	Name() string
}

// CryptoFetcher fetches cryptocurrency market data.
type CryptoFetcher interface {
	FetchTop(ctx context.Context) ([]model.CryptoQuote, error)
	FetchCoin(ctx context.Context, id string) (price, changePercent24h float64, err error)
	Name() string
}
