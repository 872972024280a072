package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"goldwatch/internal/model"
)

// dashboardHistoryLimit caps how many history samples each instrument exposes
// on the dashboard endpoint.
const dashboardHistoryLimit = 24

type pricesPayload struct {
	Gold       *model.PriceQuote `json:"gold"`
	Silver     *model.PriceQuote `json:"silver"`
	LastUpdate *time.Time        `json:"lastUpdate"`
}

type newsPayload struct {
	Gold       []model.NewsItem `json:"gold"`
	Silver     []model.NewsItem `json:"silver"`
	LastUpdate *time.Time       `json:"lastUpdate"`
}

type advicePayload struct {
	Gold   model.Advice `json:"gold"`
	Silver model.Advice `json:"silver"`
}

type historyPayload struct {
	Gold   []model.HistorySample `json:"gold"`
	Silver []model.HistorySample `json:"silver"`
}

type cryptoPayload struct {
	Top10      []model.CryptoQuote          `json:"top10"`
	Prices     map[string]model.CryptoQuote `json:"prices"`
	LastUpdate *time.Time                   `json:"lastUpdate"`
}

type dashboardResponse struct {
	Prices  pricesPayload  `json:"prices"`
	News    newsPayload    `json:"news"`
	Advice  advicePayload  `json:"advice"`
	History historyPayload `json:"history"`
	Crypto  cryptoPayload  `json:"crypto"`
}

// handleDashboard serves the full dashboard snapshot, refreshing any stale
// cache synchronously first. The first request after boot therefore performs
// a full fetch cycle rather than crashing on empty caches.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.refresher.EnsureMarketFresh(ctx)
	s.refresher.EnsureCryptoFresh(ctx)

	gold, silver, priceLast := s.refresher.PriceCache.Get()

	resp := dashboardResponse{
		Prices: pricesPayload{Gold: gold, Silver: silver, LastUpdate: priceLast},
		News: newsPayload{
			Gold:       s.refresher.NewsCache.Get(model.Gold),
			Silver:     s.refresher.NewsCache.Get(model.Silver),
			LastUpdate: s.refresher.NewsCache.LastUpdate(),
		},
		Advice: advicePayload{
			Gold:   s.advisor.Calculate(model.Gold),
			Silver: s.advisor.Calculate(model.Silver),
		},
		History: historyPayload{
			Gold:   s.history.Recent(model.Gold, dashboardHistoryLimit),
			Silver: s.history.Recent(model.Silver, dashboardHistoryLimit),
		},
		Crypto: cryptoPayload{
			Top10:      s.refresher.CryptoCache.Top(),
			Prices:     s.refresher.CryptoCache.Lookup(nil),
			LastUpdate: s.refresher.CryptoCache.LastUpdate(),
		},
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleCryptoPrices serves coin quotes from the cache only; unknown ids are
// omitted rather than erroring, and no refresh is forced.
func (s *Server) handleCryptoPrices(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if raw := r.URL.Query().Get("ids"); raw != "" {
		ids = splitCSV(raw)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"prices": s.refresher.CryptoCache.Lookup(ids),
	})
}

// handleRefresh forces a synchronous price + news refresh. Crypto stays on
// its background cadence.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.refresher.RefreshPrices(ctx); err != nil {
		s.log.Warn().Err(err).Msg("manual price refresh failed")
	}
	if err := s.refresher.RefreshNews(ctx); err != nil {
		s.log.Warn().Err(err).Msg("manual news refresh failed")
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.now().UTC(),
	})
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
