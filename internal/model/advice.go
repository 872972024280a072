package model

// Recommendation is the action suggested by the advice engine.
type Recommendation string

const (
	Buy  Recommendation = "BUY"
	Hold Recommendation = "HOLD"
	Sell Recommendation = "SELL"
)

// Advice is the final output of the advice engine. It is computed on demand
// from the current quote and price history and is never stored.
type Advice struct {
	Recommendation Recommendation `json:"recommendation"`
	Confidence     int            `json:"confidence"`
	Reasons        []string       `json:"reasons"`
}
