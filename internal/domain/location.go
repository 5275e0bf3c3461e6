package domain

import (
	"regexp"
	"strings"
)

// National bounding box; see the package doc for why it overshoots the border.
const (
	MinLatitude  = 6.0
	MaxLatitude  = 37.0
	MinLongitude = 68.0
	MaxLongitude = 97.0
)

// LocationGuess is the normalized output of coordinate resolution.
// A guess is only valid when both District and State are populated;
// producers must discard partial results rather than return them.
type LocationGuess struct {
	District         string `json:"district"`
	State            string `json:"state"`
	FormattedAddress string `json:"formatted_address"`
}

// IsZero reports whether the guess carries no usable location.
func (g LocationGuess) IsZero() bool {
	return g.District == "" || g.State == ""
}

// InBounds reports whether the coordinate lies inside the national bounding box.
func InBounds(lat, lng float64) bool {
	return lat >= MinLatitude && lat <= MaxLatitude &&
		lng >= MinLongitude && lng <= MaxLongitude
}

var (
	districtSuffix = regexp.MustCompile(`\s+(District|district|Zilla)$`)
	districtPrefix = regexp.MustCompile(`^(District|district)\s+`)
)

// CleanDistrictName strips the trailing "District"/"Zilla" and leading
// "District" tokens that geocoding providers attach to district names.
func CleanDistrictName(name string) string {
	name = strings.TrimSpace(name)
	name = districtSuffix.ReplaceAllString(name, "")
	name = districtPrefix.ReplaceAllString(name, "")
	return name
}

// CleanGuess trims and normalizes the district and state names of a guess.
// The formatted address is left as the provider produced it.
func CleanGuess(g LocationGuess) LocationGuess {
	g.District = CleanDistrictName(g.District)
	g.State = strings.TrimSpace(g.State)
	return g
}
