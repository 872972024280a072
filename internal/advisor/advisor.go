// Package advisor derives a BUY/HOLD/SELL recommendation from the current
// quote and recent price history. It is a pure reader: no I/O, no randomness,
// and identical inputs always produce identical advice.
package advisor

import (
	"goldwatch/internal/cache"
	"goldwatch/internal/history"
	"goldwatch/internal/model"
)

// Engine evaluates instruments against the price cache and history store.
type Engine struct {
	prices  *cache.PriceCache
	history *history.Store
}

// New creates an advice engine.
func New(prices *cache.PriceCache, hist *history.Store) *Engine {
	return &Engine{prices: prices, history: hist}
}

// insufficientData is returned until a quote and at least two history samples
// exist for the instrument.
func insufficientData() model.Advice {
	return model.Advice{
		Recommendation: model.Hold,
		Confidence:     50,
		Reasons:        []string{"Insufficient data for analysis"},
	}
}

// Calculate computes advice for an instrument. Factors are applied in a fixed
// order: 24h momentum, weekly trend, gold/silver ratio (silver only), then a
// constant sentiment line.
func (e *Engine) Calculate(inst model.Instrument) model.Advice {
	quote := e.prices.Quote(inst)
	if quote == nil || e.history.Len(inst) < 2 {
		return insufficientData()
	}

	score := 0
	var reasons []string

	s, reason := scoreMomentum(quote)
	score += s
	reasons = append(reasons, reason)

	oldest, _ := e.history.Oldest(inst)
	newest, _ := e.history.Newest(inst)
	s, reason = scoreWeeklyTrend(oldest, newest)
	score += s
	reasons = append(reasons, reason)

	if inst == model.Silver {
		if gold := e.prices.Quote(model.Gold); gold != nil {
			s, reason = scoreRatio(gold.Price, quote.Price)
			score += s
			reasons = append(reasons, reason)
		}
	}

	reasons = append(reasons, sentimentNote)

	return mapScore(score, reasons)
}

// mapScore turns the accumulated factor score into a recommendation.
func mapScore(score int, reasons []string) model.Advice {
	switch {
	case score >= 2:
		conf := 50 + score*10
		if conf > 80 {
			conf = 80
		}
		return model.Advice{Recommendation: model.Buy, Confidence: conf, Reasons: reasons}
	case score <= -2:
		conf := 50 - score*10
		if conf > 80 {
			conf = 80
		}
		return model.Advice{Recommendation: model.Sell, Confidence: conf, Reasons: reasons}
	default:
		return model.Advice{Recommendation: model.Hold, Confidence: 60, Reasons: reasons}
	}
}
