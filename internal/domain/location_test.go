package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDistrictName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing District", "Varanasi District", "Varanasi"},
		{"trailing lowercase district", "Varanasi district", "Varanasi"},
		{"trailing Zilla", "Pune Zilla", "Pune"},
		{"leading District", "District Shimla", "Shimla"},
		{"surrounding whitespace", "  Jaipur  ", "Jaipur"},
		{"no suffix", "Bengaluru Urban", "Bengaluru Urban"},
		{"District as part of the name", "Districtville", "Districtville"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDistrictName(tt.in))
		})
	}
}

func TestCleanGuess(t *testing.T) {
	g := CleanGuess(LocationGuess{
		District:         " Varanasi District ",
		State:            " Uttar Pradesh ",
		FormattedAddress: "Varanasi, Uttar Pradesh, India",
	})

	assert.Equal(t, "Varanasi", g.District)
	assert.Equal(t, "Uttar Pradesh", g.State)
	assert.Equal(t, "Varanasi, Uttar Pradesh, India", g.FormattedAddress)
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(28.6139, 77.2090), "Delhi")
	assert.True(t, InBounds(8.5241, 76.9366), "Thiruvananthapuram")
	assert.False(t, InBounds(0, 0), "null island")
	assert.False(t, InBounds(51.5074, -0.1278), "London")
	assert.False(t, InBounds(28.6139, 120.0), "in-range lat, out-of-range lng")
	assert.False(t, InBounds(45.0, 77.2090), "out-of-range lat, in-range lng")
}

func TestLocationGuessIsZero(t *testing.T) {
	assert.True(t, LocationGuess{}.IsZero())
	assert.True(t, LocationGuess{District: "Pune"}.IsZero(), "state missing")
	assert.True(t, LocationGuess{State: "Maharashtra"}.IsZero(), "district missing")
	assert.False(t, LocationGuess{District: "Pune", State: "Maharashtra"}.IsZero())
}
