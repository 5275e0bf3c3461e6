//go:build nominatim

package nominatim

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rozgarmap/district-stats/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real Nominatim API and are subject to its usage policy
// (1 request/second, identifying User-Agent).
// Run with: go test -tags=nominatim ./internal/adapter/nominatim/ -v -count=1

func smokeClient() *Client {
	return NewClient(
		"https://nominatim.openstreetmap.org/reverse",
		"district-stats-smoke/1.0 (contact: admin@rozgarmap.in)",
		15*time.Second,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestSmoke_ReverseGeocode_Delhi(t *testing.T) {
	guess, err := smokeClient().ReverseGeocode(context.Background(), 28.6139, 77.2090)
	require.NoError(t, err)

	assert.False(t, guess.IsZero())
	assert.Equal(t, "Delhi", guess.State)
	assert.NotEmpty(t, guess.FormattedAddress)
}

func TestSmoke_ReverseGeocode_Varanasi(t *testing.T) {
	guess, err := smokeClient().ReverseGeocode(context.Background(), 25.3176, 82.9739)
	require.NoError(t, err)

	assert.False(t, guess.IsZero())
	assert.Equal(t, "Uttar Pradesh", guess.State)
	assert.NotContains(t, guess.District, "District", "suffix should be stripped")
}
