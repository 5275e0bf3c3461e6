// Package catalog stores district statistics records and maps location
// guesses onto them.
package catalog

import (
	"context"

	"github.com/rozgarmap/district-stats/internal/domain"
)

// Store is the query surface the matcher and the read API need. Lookup
// methods return (nil, nil) when nothing matches; an error always means the
// store itself failed. All name and state comparisons are case-insensitive.
type Store interface {
	// FindByName matches the full district name, ignoring state.
	FindByName(ctx context.Context, name string) (*domain.District, error)

	// FindByNameInState matches records whose name is contained in name as
	// a substring, within states containing state as a substring.
	FindByNameInState(ctx context.Context, name, state string) (*domain.District, error)

	// FindExactInState matches the full district name within states
	// containing state as a substring.
	FindExactInState(ctx context.Context, name, state string) (*domain.District, error)

	// ListByState returns up to limit records whose state contains state
	// as a substring.
	ListByState(ctx context.Context, state string, limit int) ([]domain.District, error)

	// Read-API queries.
	ListNames(ctx context.Context) ([]string, error)
	ListNamesByState(ctx context.Context, state string) ([]string, error)
	ListStates(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)

	// ReplaceAll swaps the catalog contents wholesale; the statistics
	// resource is a full snapshot, so sync always replaces.
	ReplaceAll(ctx context.Context, records []domain.District) error
}
