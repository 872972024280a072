package model

import "time"

// Instrument identifies a tracked asset.
type Instrument string

const (
	Gold   Instrument = "gold"
	Silver Instrument = "silver"
)

// Instruments lists every supported instrument.
var Instruments = []Instrument{Gold, Silver}

// GramsPerTroyOunce converts spot prices (quoted per troy ounce) to per-gram prices.
const GramsPerTroyOunce = 31.1035

// PriceQuote is a single fetched price snapshot for an instrument.
// Change fields are nil when the upstream source does not report them.
type PriceQuote struct {
	Price            float64  `json:"price"`
	PricePerGram     float64  `json:"pricePerGram"`
	Change24h        *float64 `json:"change24h"`
	ChangePercent24h *float64 `json:"changePercent24h"`
	Currency         string   `json:"currency"`
}

// HistorySample is one retained price observation.
type HistorySample struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Float returns a pointer to v, for the nullable quote fields.
func Float(v float64) *float64 { return &v }
