package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	httpadapter "github.com/rozgarmap/district-stats/internal/adapter/http"
	kafkaadapter "github.com/rozgarmap/district-stats/internal/adapter/kafka"
	"github.com/rozgarmap/district-stats/internal/adapter/nominatim"
	"github.com/rozgarmap/district-stats/internal/catalog"
	"github.com/rozgarmap/district-stats/internal/config"
	"github.com/rozgarmap/district-stats/internal/domain"
	"github.com/rozgarmap/district-stats/internal/ingest"
	"github.com/rozgarmap/district-stats/internal/locate"
	"github.com/rozgarmap/district-stats/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog store (DATABASE_URL selects Postgres, otherwise in-memory).
	var store catalog.Store
	if cfg.DatabaseURL != "" {
		pg, err := catalog.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		store = pg
		logger.Info("using postgres catalog store")
	} else {
		store = catalog.NewMemoryStore()
		logger.Info("using in-memory catalog store")
	}

	// Reverse geocoder (feature-flagged via GEOCODER_ENABLED).
	var geocoder domain.Geocoder
	if cfg.GeocoderEnabled {
		geocoder = nominatim.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent, cfg.GeocoderTimeout, metrics, logger)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("reverse geocoding enabled", "base_url", cfg.GeocoderBaseURL, "timeout", cfg.GeocoderTimeout)
	} else {
		metrics.GeocodeEnabled.Set(0)
		logger.Info("reverse geocoding disabled, static fallback only")
	}

	cache := locate.NewCache(cfg.LocationCacheTTL, clock)
	resolver := locate.NewResolver(geocoder, cache, logger, metrics)
	matcher := catalog.NewMatcher(store, logger, metrics)

	// Sync-event publishing (feature-flagged via KAFKA_BROKERS).
	var publisher ingest.Publisher
	var kafkaWriter *kafkaadapter.Writer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaWriter = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaSyncTopic, logger)
		publisher = kafkaWriter
		logger.Info("sync-event publishing enabled", "topic", cfg.KafkaSyncTopic)
	} else {
		logger.Info("sync-event publishing disabled")
	}

	statsClient := ingest.NewClient(cfg.StatsAPIURL, cfg.StatsAPIKey, cfg.StatsAPITimeout, logger)
	syncer := ingest.NewSyncer(statsClient, store, publisher, clock, logger, metrics)
	scheduler := ingest.NewScheduler(syncer, clock, cfg.StatsSyncHour, cfg.StatsBackupEvery, logger)

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	srv := httpadapter.NewServer(cfg.HTTPAddr, store, matcher, resolver, syncer, syncer, limiter, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if cfg.SyncOnStart {
		go func() {
			if err := syncer.Sync(ctx); err != nil {
				logger.Error("startup sync failed", "error", err)
			}
		}()
	}

	go scheduler.Run(ctx)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
