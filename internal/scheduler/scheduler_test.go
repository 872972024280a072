package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldwatch/internal/cache"
	"goldwatch/internal/history"
	"goldwatch/internal/model"
	"goldwatch/internal/refresh"
	"goldwatch/internal/source"
)

func TestRegisterAllAndRunNow(t *testing.T) {
	r := refresh.New(refresh.Config{
		Prices: &source.MockPriceFetcher{
			Gold:   &model.PriceQuote{Price: 2400},
			Silver: &model.PriceQuote{Price: 28.5},
		},
		News:        &source.MockNewsFetcher{},
		Crypto:      &source.MockCryptoFetcher{Top: []model.CryptoQuote{{ID: "bitcoin"}}},
		PriceCache:  cache.NewPriceCache(),
		NewsCache:   cache.NewNewsCache(),
		CryptoCache: cache.NewCryptoCache(),
		History:     history.NewStore(),
		Log:         zerolog.Nop(),
	})

	s := New(context.Background(), r, zerolog.Nop())
	require.NoError(t, s.RegisterAll())
	assert.Len(t, s.Cron.Entries(), 3)

	s.RunAllNow()
	assert.False(t, r.PriceCache.Stale(time.Now(), cache.PriceMaxAge))
	assert.False(t, r.CryptoCache.Stale(time.Now(), cache.CryptoMaxAge))
	assert.False(t, r.NewsCache.Stale(time.Now(), cache.PriceMaxAge))
}
