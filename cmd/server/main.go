package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"goldwatch/internal/advisor"
	"goldwatch/internal/cache"
	"goldwatch/internal/config"
	"goldwatch/internal/history"
	"goldwatch/internal/refresh"
	"goldwatch/internal/scheduler"
	"goldwatch/internal/server"
	"goldwatch/internal/source"
	"goldwatch/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("config validation")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().Msg("goldwatch starting")

	// State owned by the refresh routines; everything else only reads.
	priceCache := cache.NewPriceCache()
	newsCache := cache.NewNewsCache()
	cryptoCache := cache.NewCryptoCache()
	hist := history.NewStore()

	// Price fallback chain: authenticated spot API, synthetic free tier,
	// fixed last-resort values.
	rates := source.NewRateClient(log)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	priceChain := source.NewPriceChain(log,
		source.NewGoldAPIFetcher(cfg.GoldAPI.APIKey, log),
		source.NewSyntheticFetcher(rates, rng, log),
		source.StaticFetcher{},
	)
	if cfg.GoldAPI.APIKey == "" {
		log.Warn().Msg("no GOLD_API_KEY configured, prices will come from the free tier")
	}
	if cfg.News.APIKey == "" {
		log.Warn().Msg("no NEWS_API_KEY configured, headlines will be placeholders")
	}

	refresher := refresh.New(refresh.Config{
		Prices:      priceChain,
		News:        source.NewNewsAPIFetcher(cfg.News.APIKey, log),
		Crypto:      source.NewCoinGeckoFetcher(log),
		PriceCache:  priceCache,
		NewsCache:   newsCache,
		CryptoCache: cryptoCache,
		History:     hist,
		Log:         log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, refresher, log)
	if err := sched.RegisterAll(); err != nil {
		log.Fatal().Err(err).Msg("register refresh jobs")
	}

	// Populate every cache before accepting traffic.
	sched.RunAllNow()
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:       log,
		Refresher: refresher,
		Advisor:   advisor.New(priceCache, hist),
		History:   hist,
		Port:      cfg.Server.Port,
		WebDir:    cfg.Server.WebDir,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("goldwatch stopped")
}
