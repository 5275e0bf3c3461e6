// Command sync runs a single catalog refresh and exits. Useful for seeding a
// database before first deploy or forcing a refresh out of schedule.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	kafkaadapter "github.com/rozgarmap/district-stats/internal/adapter/kafka"
	"github.com/rozgarmap/district-stats/internal/catalog"
	"github.com/rozgarmap/district-stats/internal/config"
	"github.com/rozgarmap/district-stats/internal/ingest"
	"github.com/rozgarmap/district-stats/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required; a one-shot sync into the in-memory store would be lost")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := catalog.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var publisher ingest.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		writer := kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaSyncTopic, logger)
		defer writer.Close()
		publisher = writer
	}

	client := ingest.NewClient(cfg.StatsAPIURL, cfg.StatsAPIKey, cfg.StatsAPITimeout, logger)
	syncer := ingest.NewSyncer(client, store, publisher, clockwork.NewRealClock(), logger, metrics)

	if err := syncer.Sync(ctx); err != nil {
		logger.Error("sync failed", "error", err)
		os.Exit(1)
	}
}
