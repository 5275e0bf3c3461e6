package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/jonboulle/clockwork"

	"github.com/rozgarmap/district-stats/internal/catalog"
	"github.com/rozgarmap/district-stats/internal/domain"
	"github.com/rozgarmap/district-stats/internal/observability"
)

// Publisher receives the refreshed catalog after a successful sync.
type Publisher interface {
	PublishRecords(ctx context.Context, records []domain.District) error
}

// Syncer refreshes the district catalog from the statistics API. A nil
// publisher disables downstream notification.
type Syncer struct {
	client    *Client
	store     catalog.Store
	publisher Publisher
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	synced atomic.Bool
}

// NewSyncer creates a catalog syncer.
func NewSyncer(client *Client, store catalog.Store, publisher Publisher, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Syncer {
	return &Syncer{
		client:    client,
		store:     store,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// Sync fetches a full snapshot and replaces the catalog with it. Publishing
// the refreshed records is best effort and never fails the sync.
func (s *Syncer) Sync(ctx context.Context) error {
	start := s.clock.Now()

	records, err := s.client.FetchRecords(ctx)
	if err != nil {
		s.metrics.SyncRuns.WithLabelValues("error").Inc()
		return fmt.Errorf("fetch snapshot: %w", err)
	}

	districts := ToDistricts(records, s.clock.Now())
	if len(districts) == 0 {
		s.metrics.SyncRuns.WithLabelValues("error").Inc()
		return errors.New("snapshot contained no usable districts")
	}

	if err := s.store.ReplaceAll(ctx, districts); err != nil {
		s.metrics.SyncRuns.WithLabelValues("error").Inc()
		return fmt.Errorf("replace catalog: %w", err)
	}

	s.synced.Store(true)
	s.metrics.SyncRuns.WithLabelValues("success").Inc()
	s.metrics.SyncDuration.Observe(s.clock.Since(start).Seconds())
	s.metrics.CatalogRecords.Set(float64(len(districts)))
	s.logger.Info("catalog refreshed", "districts", len(districts), "duration", s.clock.Since(start))

	if s.publisher != nil {
		if err := s.publisher.PublishRecords(ctx, districts); err != nil {
			s.logger.Warn("failed to publish refreshed catalog", "error", err)
		}
	}

	return nil
}

// CheckReadiness reports whether the catalog can serve queries: either this
// process has completed a sync, or a previous run left records in the store.
func (s *Syncer) CheckReadiness(ctx context.Context) error {
	if s.synced.Load() {
		return nil
	}
	n, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count catalog: %w", err)
	}
	if n == 0 {
		return errors.New("catalog is empty and no sync has completed")
	}
	return nil
}
