package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rozgarmap/district-stats/internal/domain"
	"github.com/rozgarmap/district-stats/internal/observability"
)

// stateLimit caps the tier-4 state query; any in-state record is better than
// nothing, but there is no point ranking more than a handful.
const stateLimit = 3

// Matcher maps a location guess onto the single best catalog record using an
// ordered sequence of strategies, stopping at the first hit:
//
//  1. exact: full name match, ignoring state
//  2. partial: record name contained in the guess name, within the guess's
//     state (guess "Chennai Urban" finds record "Chennai")
//  3. variation: Urban/Rural/District suffix variants of the name, exact
//     within the guess's state
//  4. state: up to stateLimit in-state records, preferring one whose name
//     contains the guess's name (the reverse containment of tier 2), else
//     the first
type Matcher struct {
	store   Store
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewMatcher creates a Matcher over the given catalog store.
func NewMatcher(store Store, logger *slog.Logger, metrics *observability.Metrics) *Matcher {
	return &Matcher{store: store, logger: logger, metrics: metrics}
}

// Match returns the catalog record for the guess, or (nil, nil) when no tier
// produces one. An error means a store query failed, not a failed match.
func (m *Matcher) Match(ctx context.Context, guess domain.LocationGuess) (*domain.District, error) {
	type tier struct {
		name string
		find func(context.Context, domain.LocationGuess) (*domain.District, error)
	}
	tiers := []tier{
		{"exact", m.matchExact},
		{"partial", m.matchPartial},
		{"variation", m.matchVariations},
		{"state", m.matchState},
	}

	for _, t := range tiers {
		record, err := t.find(ctx, guess)
		if err != nil {
			return nil, fmt.Errorf("matcher tier %s: %w", t.name, err)
		}
		if record != nil {
			m.metrics.MatchResults.WithLabelValues(t.name).Inc()
			m.logger.Debug("catalog match",
				"tier", t.name,
				"guess_district", guess.District, "guess_state", guess.State,
				"matched", record.Name,
			)
			return record, nil
		}
	}

	m.metrics.MatchResults.WithLabelValues("none").Inc()
	m.logger.Debug("no catalog match",
		"guess_district", guess.District, "guess_state", guess.State)
	return nil, nil
}

func (m *Matcher) matchExact(ctx context.Context, guess domain.LocationGuess) (*domain.District, error) {
	return m.store.FindByName(ctx, guess.District)
}

func (m *Matcher) matchPartial(ctx context.Context, guess domain.LocationGuess) (*domain.District, error) {
	return m.store.FindByNameInState(ctx, guess.District, guess.State)
}

func (m *Matcher) matchVariations(ctx context.Context, guess domain.LocationGuess) (*domain.District, error) {
	variations := []string{
		strings.ReplaceAll(guess.District, " Urban", ""),
		strings.ReplaceAll(guess.District, " Rural", ""),
		strings.ReplaceAll(guess.District, " District", ""),
		guess.District + " Urban",
		guess.District + " Rural",
	}

	seen := map[string]bool{guess.District: true} // tier 3 retries nothing tier 1 already tried
	for _, v := range variations {
		if seen[v] {
			continue
		}
		seen[v] = true
		record, err := m.store.FindExactInState(ctx, v, guess.State)
		if err != nil || record != nil {
			return record, err
		}
	}
	return nil, nil
}

func (m *Matcher) matchState(ctx context.Context, guess domain.LocationGuess) (*domain.District, error) {
	// without a state any record would do, which is worse than no match
	if guess.State == "" {
		return nil, nil
	}
	records, err := m.store.ListByState(ctx, guess.State, stateLimit)
	if err != nil || len(records) == 0 {
		return nil, err
	}

	for i := range records {
		if containsFold(records[i].Name, guess.District) {
			return &records[i], nil
		}
	}
	return &records[0], nil
}
