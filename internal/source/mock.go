package source

import (
	"context"

	"goldwatch/internal/model"
)

// MockPriceFetcher returns controllable fixed data for development and testing.
type MockPriceFetcher struct {
	Gold   *model.PriceQuote
	Silver *model.PriceQuote
	Err    error
	Calls  int
}

func (m *MockPriceFetcher) Name() string { return "mock" }

func (m *MockPriceFetcher) FetchPrices(_ context.Context) (*model.PriceQuote, *model.PriceQuote, error) {
	m.Calls++
	if m.Err != nil {
		return nil, nil, m.Err
	}
	return m.Gold, m.Silver, nil
}

// MockNewsFetcher returns a fixed headline set.
type MockNewsFetcher struct {
	Items map[model.Instrument][]model.NewsItem
	Calls int
}

func (m *MockNewsFetcher) Name() string { return "mock" }

func (m *MockNewsFetcher) FetchNews(_ context.Context) (map[model.Instrument][]model.NewsItem, error) {
	m.Calls++
	return m.Items, nil
}

// MockCryptoFetcher returns a fixed coin list.
type MockCryptoFetcher struct {
	Top       []model.CryptoQuote
	CoinPrice float64
	CoinPct   float64
	Err       error
	Calls     int
}

func (m *MockCryptoFetcher) Name() string { return "mock" }

func (m *MockCryptoFetcher) FetchTop(_ context.Context) ([]model.CryptoQuote, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Top, nil
}

func (m *MockCryptoFetcher) FetchCoin(_ context.Context, _ string) (float64, float64, error) {
	if m.Err != nil {
		return 0, 0, m.Err
	}
	return m.CoinPrice, m.CoinPct, nil
}
