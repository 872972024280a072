package source

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldwatch/internal/model"
)

func TestChain_FirstSuccessWins(t *testing.T) {
	primary := &MockPriceFetcher{Gold: &model.PriceQuote{Price: 2400}, Silver: &model.PriceQuote{Price: 28}}
	secondary := &MockPriceFetcher{Gold: &model.PriceQuote{Price: 1}, Silver: &model.PriceQuote{Price: 1}}

	chain := NewPriceChain(zerolog.Nop(), primary, secondary)
	gold, _, err := chain.FetchPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2400.0, gold.Price)
	assert.Equal(t, 0, secondary.Calls, "secondary tier must not be consulted")
}

func TestChain_FallsThroughOnFailure(t *testing.T) {
	primary := &MockPriceFetcher{Err: errors.New("credential missing")}
	secondary := &MockPriceFetcher{Gold: &model.PriceQuote{Price: 2438}, Silver: &model.PriceQuote{Price: 28.5}}

	chain := NewPriceChain(zerolog.Nop(), primary, secondary)
	gold, silver, err := chain.FetchPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2438.0, gold.Price)
	assert.Equal(t, 28.5, silver.Price)
	assert.Equal(t, 1, primary.Calls)
}

func TestChain_AllTiersFail(t *testing.T) {
	a := &MockPriceFetcher{Err: errors.New("down")}
	b := &MockPriceFetcher{Err: errors.New("also down")}

	chain := NewPriceChain(zerolog.Nop(), a, b)
	_, _, err := chain.FetchPrices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "also down")
}

func TestChain_StaticTierAlwaysSucceeds(t *testing.T) {
	chain := NewPriceChain(zerolog.Nop(), &MockPriceFetcher{Err: errors.New("down")}, StaticFetcher{})
	gold, silver, err := chain.FetchPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2450.0, gold.Price)
	assert.Equal(t, 78.77, gold.PricePerGram)
	assert.Equal(t, 28.5, silver.Price)
	assert.Equal(t, 0.92, silver.PricePerGram)
}
