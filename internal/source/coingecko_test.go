package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinGecko_FetchTop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "eur", r.URL.Query().Get("vs_currency"))
		fmt.Fprint(w, `[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":61000.5,"price_change_24h":1200.0,"price_change_percentage_24h":2.0,"market_cap":1200000000000,"image":"https://img/btc.png"},
			{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3100.25,"price_change_24h":-50.0,"price_change_percentage_24h":-1.6,"market_cap":370000000000,"image":"https://img/eth.png"}
		]`)
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(zerolog.Nop())
	f.BaseURL = srv.URL

	top, err := f.FetchTop(context.Background())
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "bitcoin", top[0].ID)
	assert.Equal(t, 61000.5, top[0].Price)
	assert.Equal(t, -1.6, top[1].ChangePercent24h)
	assert.Equal(t, "https://img/eth.png", top[1].Image)
}

func TestCoinGecko_FetchCoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "dogecoin", r.URL.Query().Get("ids"))
		fmt.Fprint(w, `{"dogecoin":{"eur":0.11,"eur_24h_change":-3.2}}`)
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(zerolog.Nop())
	f.BaseURL = srv.URL

	price, pct, err := f.FetchCoin(context.Background(), "dogecoin")
	require.NoError(t, err)
	assert.Equal(t, 0.11, price)
	assert.Equal(t, -3.2, pct)
}

func TestCoinGecko_UnknownCoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(zerolog.Nop())
	f.BaseURL = srv.URL

	_, _, err := f.FetchCoin(context.Background(), "doesnotexist")
	require.Error(t, err)
}

func TestCoinGecko_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(zerolog.Nop())
	f.BaseURL = srv.URL

	_, err := f.FetchTop(context.Background())
	require.Error(t, err)
}
