package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldwatch/internal/model"
)

func TestPriceCache_NeverPopulatedIsStale(t *testing.T) {
	c := NewPriceCache()
	assert.True(t, c.Stale(time.Now(), PriceMaxAge))
}

func TestPriceCache_StalenessBoundary(t *testing.T) {
	c := NewPriceCache()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.Set(&model.PriceQuote{Price: 2400}, &model.PriceQuote{Price: 28}, at)

	// Exactly at the threshold is still fresh; strictly beyond is stale.
	assert.False(t, c.Stale(at.Add(PriceMaxAge), PriceMaxAge))
	assert.True(t, c.Stale(at.Add(PriceMaxAge+time.Second), PriceMaxAge))
}

func TestPriceCache_WholesaleReplace(t *testing.T) {
	c := NewPriceCache()
	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.Set(&model.PriceQuote{Price: 2400}, &model.PriceQuote{Price: 28}, t1)

	t2 := t1.Add(time.Minute)
	c.Set(&model.PriceQuote{Price: 2410}, nil, t2)

	gold, silver, last := c.Get()
	require.NotNil(t, gold)
	assert.Equal(t, 2410.0, gold.Price)
	assert.Nil(t, silver, "replace is wholesale, not a merge")
	require.NotNil(t, last)
	assert.Equal(t, t2, *last)
}

func TestPriceCache_Quote(t *testing.T) {
	c := NewPriceCache()
	c.Set(&model.PriceQuote{Price: 2400}, &model.PriceQuote{Price: 28}, time.Now())

	require.NotNil(t, c.Quote(model.Gold))
	assert.Equal(t, 28.0, c.Quote(model.Silver).Price)
	assert.Nil(t, c.Quote(model.Instrument("platinum")))
}

func TestNewsCache_CapsPerInstrument(t *testing.T) {
	c := NewNewsCache()
	items := make([]model.NewsItem, 9)
	for i := range items {
		items[i] = model.NewsItem{Title: "headline"}
	}
	c.Set(map[model.Instrument][]model.NewsItem{model.Gold: items}, time.Now())

	assert.Len(t, c.Get(model.Gold), MaxNewsItems)
	assert.Empty(t, c.Get(model.Silver))
}

func TestCryptoCache_LookupSubset(t *testing.T) {
	c := NewCryptoCache()
	c.Set([]model.CryptoQuote{
		{ID: "bitcoin", Symbol: "btc", Price: 60000},
		{ID: "ethereum", Symbol: "eth", Price: 3000},
	}, time.Now())

	got := c.Lookup([]string{"bitcoin", "doesnotexist"})
	require.Len(t, got, 1)
	assert.Equal(t, "btc", got["bitcoin"].Symbol)

	all := c.Lookup(nil)
	assert.Len(t, all, 2)
}

func TestCryptoCache_TopIsACopy(t *testing.T) {
	c := NewCryptoCache()
	c.Set([]model.CryptoQuote{{ID: "bitcoin", Price: 60000}}, time.Now())

	top := c.Top()
	top[0].Price = 0
	assert.Equal(t, 60000.0, c.Top()[0].Price)
}
