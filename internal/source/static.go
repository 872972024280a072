package source

import (
	"context"

	"goldwatch/internal/model"
)

// StaticFetcher is the last-resort price tier: fixed EUR values with
// placeholder change figures. It never fails.
type StaticFetcher struct{}

func (StaticFetcher) Name() string { return "static" }

// FetchPrices returns the fixed quotes.
func (StaticFetcher) FetchPrices(_ context.Context) (*model.PriceQuote, *model.PriceQuote, error) {
	gold := &model.PriceQuote{
		Price:            2450,
		PricePerGram:     78.77,
		Change24h:        model.Float(0),
		ChangePercent24h: model.Float(0),
		Currency:         "EUR",
	}
	silver := &model.PriceQuote{
		Price:            28.5,
		PricePerGram:     0.92,
		Change24h:        model.Float(0),
		ChangePercent24h: model.Float(0),
		Currency:         "EUR",
	}
	return gold, silver, nil
}
