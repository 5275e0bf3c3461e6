package locate

import (
	"testing"

	"github.com/rozgarmap/district-stats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackLookup_DelhiCenter(t *testing.T) {
	guess, ok := FallbackLookup(28.6139, 77.2090)
	require.True(t, ok)

	assert.Equal(t, "Central Delhi", guess.District)
	assert.Equal(t, "Delhi", guess.State)
	assert.Equal(t, "Central Delhi, Delhi, India", guess.FormattedAddress)
}

func TestFallbackLookup_CityBoxes(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		district string
		state    string
	}{
		{"Mumbai", 19.0760, 72.8777, "Mumbai Suburban", "Maharashtra"},
		{"Bengaluru", 12.9716, 77.5946, "Bengaluru Urban", "Karnataka"},
		{"Chennai", 13.0827, 80.2707, "Chennai", "Tamil Nadu"},
		{"Kolkata", 22.5726, 88.3639, "Kolkata", "West Bengal"},
		{"Hyderabad", 17.3850, 78.4867, "Hyderabad", "Telangana"},
		{"Varanasi", 25.3176, 82.9739, "Varanasi", "Uttar Pradesh"},
		{"Guwahati", 26.1838, 91.7500, "Kamrup Metropolitan", "Assam"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guess, ok := FallbackLookup(tt.lat, tt.lng)
			require.True(t, ok)
			assert.Equal(t, tt.district, guess.District)
			assert.Equal(t, tt.state, guess.State)
		})
	}
}

func TestFallbackLookup_StateBroadTier(t *testing.T) {
	// Mysuru: inside the Karnataka state box but no city box.
	guess, ok := FallbackLookup(12.2958, 76.6394)
	require.True(t, ok)
	assert.Equal(t, "Bengaluru Urban", guess.District)
	assert.Equal(t, "Karnataka", guess.State)
}

// The Bengaluru Urban city box [12.83,13.14]x[77.46,77.78] overlaps the
// Bengaluru Rural box [13.00,13.10]x[77.55,77.65]. Urban is declared earlier,
// so a coordinate inside both always resolves to Urban; and both sit inside
// the Karnataka broad box, which must never win over a city box.
func TestFallbackLookup_OverlapPrecedence(t *testing.T) {
	guess, ok := FallbackLookup(13.05, 77.60)
	require.True(t, ok)
	assert.Equal(t, "Bengaluru Urban", guess.District)
}

func TestFallbackLookup_NoCoverage(t *testing.T) {
	// In-domain but over the Bay of Bengal: no declared region contains it.
	guess, ok := FallbackLookup(15.0, 85.0)
	assert.False(t, ok)
	assert.Equal(t, domain.LocationGuess{}, guess)
}

func TestFallbackLookup_OutOfDomain(t *testing.T) {
	_, ok := FallbackLookup(0, 0)
	assert.False(t, ok)

	_, ok = FallbackLookup(51.5, -0.12)
	assert.False(t, ok)
}
