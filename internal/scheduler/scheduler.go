package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"goldwatch/internal/refresh"
)

// Refresh cadences per data type.
const (
	PriceInterval  = 5 * time.Minute
	CryptoInterval = 2 * time.Minute
	NewsInterval   = 30 * time.Minute
)

// Scheduler runs the periodic background refreshes. Each tick is
// fire-and-forget: an in-flight refresh completes even if a newer one fires.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher *refresh.Refresher
	Ctx       context.Context
	log       zerolog.Logger
}

// New creates a Scheduler.
func New(ctx context.Context, r *refresh.Refresher, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(),
		Refresher: r,
		Ctx:       ctx,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the price, crypto, and news refresh jobs.
func (s *Scheduler) RegisterAll() error {
	jobs := []struct {
		name     string
		interval time.Duration
		run      func(context.Context) error
	}{
		{"prices", PriceInterval, s.Refresher.RefreshPrices},
		{"crypto", CryptoInterval, s.Refresher.RefreshCrypto},
		{"news", NewsInterval, s.Refresher.RefreshNews},
	}
	for _, job := range jobs {
		job := job
		spec := fmt.Sprintf("@every %s", job.interval)
		if _, err := s.Cron.AddFunc(spec, func() {
			if err := job.run(s.Ctx); err != nil {
				s.log.Warn().Err(err).Str("job", job.name).Msg("scheduled refresh failed")
			}
		}); err != nil {
			return fmt.Errorf("register %s job: %w", job.name, err)
		}
	}
	return nil
}

// RunAllNow executes every refresh once, synchronously. Called at boot before
// the server starts accepting requests.
func (s *Scheduler) RunAllNow() {
	s.Refresher.RefreshAll(s.Ctx)
	s.log.Info().Msg("initial refresh complete")
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}
