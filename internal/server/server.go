// Package server provides the HTTP server and routing for goldwatch.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"goldwatch/internal/advisor"
	"goldwatch/internal/history"
	"goldwatch/internal/refresh"
)

// Config holds server configuration.
type Config struct {
	Log       zerolog.Logger
	Refresher *refresh.Refresher
	Advisor   *advisor.Engine
	History   *history.Store
	Port      int
	WebDir    string
}

// Server is the HTTP API surface in front of the caches.
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	refresher *refresh.Refresher
	advisor   *advisor.Engine
	history   *history.Store
	now       func() time.Time
}

// New creates an HTTP server with all routes registered.
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		refresher: cfg.Refresher,
		advisor:   cfg.Advisor,
		history:   cfg.History,
		now:       time.Now,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/crypto/prices", s.handleCryptoPrices)
		r.Post("/refresh", s.handleRefresh)
	})

	if cfg.WebDir != "" {
		if _, err := os.Stat(cfg.WebDir); err == nil {
			s.router.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))
		} else {
			s.log.Warn().Str("dir", cfg.WebDir).Msg("web dir not found, static serving disabled")
		}
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Router exposes the chi mux, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
