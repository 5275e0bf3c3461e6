// Package locate resolves a latitude/longitude pair to the best-matching
// administrative district, combining an upstream reverse-geocoding provider,
// a deterministic offline fallback table, and a short-lived result cache.
package locate

import (
	"context"
	"log/slog"
	"time"

	"github.com/rozgarmap/district-stats/internal/domain"
	"github.com/rozgarmap/district-stats/internal/observability"
)

// Resolver orchestrates coordinate resolution: bounds validation, cache
// lookup, upstream geocoding, offline fallback, normalization, cache write.
type Resolver struct {
	geocoder domain.Geocoder // nil disables the upstream step
	cache    *Cache
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewResolver creates a Resolver. Pass a nil geocoder to resolve from the
// offline fallback table only.
func NewResolver(geocoder domain.Geocoder, cache *Cache, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
	}
}

// Resolve produces a location guess for the coordinate, or false when the
// coordinate is out of domain or no source covers it. Upstream failures are
// logged and absorbed by the fallback path; Resolve never returns an error.
func (r *Resolver) Resolve(ctx context.Context, lat, lng float64) (domain.LocationGuess, bool) {
	start := time.Now()

	if !domain.InBounds(lat, lng) {
		r.logger.Debug("coordinate outside national bounds", "lat", lat, "lng", lng)
		r.metrics.ResolveRequests.WithLabelValues("rejected").Inc()
		return domain.LocationGuess{}, false
	}

	if guess, ok := r.cache.Get(lat, lng); ok {
		r.metrics.ResolveRequests.WithLabelValues("cache_hit").Inc()
		return guess, true
	}

	guess, outcome := r.lookup(ctx, lat, lng)
	if guess.IsZero() {
		r.logger.Warn("no source could resolve coordinate", "lat", lat, "lng", lng)
		r.metrics.ResolveRequests.WithLabelValues("none").Inc()
		return domain.LocationGuess{}, false
	}

	guess = domain.CleanGuess(guess)
	r.cache.Put(lat, lng, guess)

	r.metrics.ResolveRequests.WithLabelValues(outcome).Inc()
	r.metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	r.logger.Debug("coordinate resolved",
		"lat", lat, "lng", lng,
		"district", guess.District, "state", guess.State,
		"source", outcome,
	)
	return guess, true
}

// lookup tries the upstream geocoder and falls back to the static region
// tables. The upstream is preferred for accuracy; the tables guarantee a
// deterministic offline answer for covered in-country coordinates.
func (r *Resolver) lookup(ctx context.Context, lat, lng float64) (domain.LocationGuess, string) {
	if r.geocoder != nil {
		guess, err := r.geocoder.ReverseGeocode(ctx, lat, lng)
		if err != nil {
			r.logger.Warn("reverse geocoding failed, using fallback",
				"lat", lat, "lng", lng, "error", err)
		} else if !guess.IsZero() {
			return guess, "upstream"
		}
	}

	if guess, ok := FallbackLookup(lat, lng); ok {
		return guess, "fallback"
	}
	return domain.LocationGuess{}, ""
}
