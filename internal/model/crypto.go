package model

// CryptoQuote is a market snapshot for a single cryptocurrency.
type CryptoQuote struct {
	ID               string  `json:"id"`
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Change24h        float64 `json:"change24h"`
	ChangePercent24h float64 `json:"changePercent24h"`
	MarketCap        float64 `json:"marketCap"`
	Image            string  `json:"image"`
}
