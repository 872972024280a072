package source

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldwatch/internal/model"
)

func rateServer(t *testing.T, rate float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"rates":{"EUR":%g}}`, rate)
	}))
}

func TestSynthetic_NeverFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rates := NewRateClient(zerolog.Nop())
	rates.BaseURL = srv.URL

	f := NewSyntheticFetcher(rates, rand.New(rand.NewSource(1)), zerolog.Nop())
	gold, silver, err := f.FetchPrices(context.Background())
	require.NoError(t, err)
	require.NotNil(t, gold)
	require.NotNil(t, silver)
}

func TestSynthetic_BoundedJitterAndConversion(t *testing.T) {
	srv := rateServer(t, 0.9)
	defer srv.Close()

	rates := NewRateClient(zerolog.Nop())
	rates.BaseURL = srv.URL

	f := NewSyntheticFetcher(rates, rand.New(rand.NewSource(42)), zerolog.Nop())
	for i := 0; i < 50; i++ {
		gold, silver, err := f.FetchPrices(context.Background())
		require.NoError(t, err)

		assert.GreaterOrEqual(t, gold.Price, (goldBaseUSD-goldJitterUSD)*0.9)
		assert.LessOrEqual(t, gold.Price, (goldBaseUSD+goldJitterUSD)*0.9)
		assert.GreaterOrEqual(t, silver.Price, (silverBaseUSD-silverJitterUSD)*0.9)
		assert.LessOrEqual(t, silver.Price, (silverBaseUSD+silverJitterUSD)*0.9)

		assert.InDelta(t, gold.Price/model.GramsPerTroyOunce, gold.PricePerGram, 1e-9)
		assert.Equal(t, "EUR", gold.Currency)
	}
}

func TestSynthetic_SeededRandIsDeterministic(t *testing.T) {
	srv := rateServer(t, 0.92)
	defer srv.Close()

	run := func() (float64, float64) {
		rates := NewRateClient(zerolog.Nop())
		rates.BaseURL = srv.URL
		f := NewSyntheticFetcher(rates, rand.New(rand.NewSource(7)), zerolog.Nop())
		gold, silver, err := f.FetchPrices(context.Background())
		require.NoError(t, err)
		return gold.Price, silver.Price
	}

	g1, s1 := run()
	g2, s2 := run()
	assert.Equal(t, g1, g2)
	assert.Equal(t, s1, s2)
}

func TestSynthetic_DefaultRateOnMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rates":{}}`)
	}))
	defer srv.Close()

	rates := NewRateClient(zerolog.Nop())
	rates.BaseURL = srv.URL

	f := NewSyntheticFetcher(rates, rand.New(rand.NewSource(3)), zerolog.Nop())
	gold, _, err := f.FetchPrices(context.Background())
	require.NoError(t, err)

	// With the default 0.92 rate the gold price must sit inside the jittered band.
	assert.GreaterOrEqual(t, gold.Price, (goldBaseUSD-goldJitterUSD)*defaultUSDToEUR)
	assert.LessOrEqual(t, gold.Price, (goldBaseUSD+goldJitterUSD)*defaultUSDToEUR)
}
