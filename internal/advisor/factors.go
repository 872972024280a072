package advisor

import (
	"fmt"

	"goldwatch/internal/model"
)

const sentimentNote = "Precious metals remain a favored safe haven amid macro uncertainty"

// scoreMomentum scores the 24h percent change. A drop beyond -2% is a buy
// opportunity (+2), a rise beyond +2% suggests profit-taking (-1).
func scoreMomentum(q *model.PriceQuote) (int, string) {
	chp := 0.0
	if q.ChangePercent24h != nil {
		chp = *q.ChangePercent24h
	}
	switch {
	case chp < -2:
		return 2, fmt.Sprintf("Price dropped %.1f%% in 24h - potential buying opportunity", -chp)
	case chp > 2:
		return -1, fmt.Sprintf("Price rose %.1f%% in 24h - consider taking profits", chp)
	default:
		return 0, fmt.Sprintf("Price stable over the last 24h (%+.1f%%)", chp)
	}
}

// scoreWeeklyTrend scores the move over the retained history window, oldest
// surviving sample versus most recent.
func scoreWeeklyTrend(oldest, newest model.HistorySample) (int, string) {
	trend := (newest.Price - oldest.Price) / oldest.Price * 100
	switch {
	case trend < -5:
		return 2, fmt.Sprintf("Down %.1f%% over the past week - accumulation zone", -trend)
	case trend > 5:
		return -1, fmt.Sprintf("Up %.1f%% over the past week - extended rally", trend)
	default:
		return 0, fmt.Sprintf("Consolidating over the past week (%+.1f%%)", trend)
	}
}

// scoreRatio scores the gold/silver ratio, applied to silver only. A ratio
// above 85 marks silver as historically undervalued, below 70 as relatively
// expensive.
func scoreRatio(goldPrice, silverPrice float64) (int, string) {
	ratio := goldPrice / silverPrice
	switch {
	case ratio > 85:
		return 1, fmt.Sprintf("Gold/silver ratio at %.1f - silver undervalued historically", ratio)
	case ratio < 70:
		return -1, fmt.Sprintf("Gold/silver ratio at %.1f - silver relatively expensive", ratio)
	default:
		return 0, fmt.Sprintf("Gold/silver ratio at %.1f - normal range", ratio)
	}
}
