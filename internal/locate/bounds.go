package locate

import (
	"fmt"

	"github.com/rozgarmap/district-stats/internal/domain"
)

// BoundedRegion is a rectangular latitude/longitude box labeled with the
// district and state it approximates.
type BoundedRegion struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	State          string
	District       string
}

// Contains reports whether the coordinate lies inside the box, inclusive.
func (r BoundedRegion) Contains(lat, lng float64) bool {
	return lat >= r.MinLat && lat <= r.MaxLat && lng >= r.MinLng && lng <= r.MaxLng
}

// cityRegions are tight boxes around major urban districts. Declaration order
// is the tie-break: a coordinate inside two overlapping boxes resolves to the
// earlier entry.
var cityRegions = []BoundedRegion{
	// Major metros
	{28.40, 28.88, 76.84, 77.34, "Delhi", "Central Delhi"},
	{19.01, 19.27, 72.77, 73.01, "Maharashtra", "Mumbai Suburban"},
	{12.83, 13.14, 77.46, 77.78, "Karnataka", "Bengaluru Urban"},
	{12.91, 13.23, 80.12, 80.32, "Tamil Nadu", "Chennai"},
	{22.46, 22.65, 88.26, 88.42, "West Bengal", "Kolkata"},
	{17.27, 17.56, 78.25, 78.61, "Telangana", "Hyderabad"},

	// State capitals
	{26.81, 27.03, 75.68, 75.93, "Rajasthan", "Jaipur"},
	{22.96, 23.15, 72.46, 72.68, "Gujarat", "Ahmedabad"},
	{18.43, 18.64, 73.73, 73.95, "Maharashtra", "Pune"},
	{15.29, 15.60, 73.76, 74.14, "Goa", "North Goa"},
	{25.29, 25.47, 82.93, 83.03, "Uttar Pradesh", "Varanasi"},
	{26.44, 26.55, 80.29, 80.41, "Uttar Pradesh", "Kanpur Nagar"},
	{28.58, 28.75, 77.05, 77.28, "Uttar Pradesh", "Ghaziabad"},

	// Additional major cities
	{23.00, 23.30, 72.50, 72.70, "Gujarat", "Ahmedabad"},
	{21.10, 21.20, 79.05, 79.15, "Maharashtra", "Nagpur"},
	{13.00, 13.10, 77.55, 77.65, "Karnataka", "Bengaluru Rural"},
	{11.00, 11.10, 76.95, 77.05, "Tamil Nadu", "Coimbatore"},
	{26.15, 26.25, 91.73, 91.83, "Assam", "Kamrup Metropolitan"},
}

// stateRegions are broad boxes covering whole states, mapped to the state's
// most prominent district. Tried only after every city box misses.
var stateRegions = []BoundedRegion{
	{8.0, 13.0, 74.0, 78.0, "Karnataka", "Bengaluru Urban"},
	{11.0, 14.0, 78.0, 81.0, "Tamil Nadu", "Chennai"},
	{15.0, 20.0, 73.0, 81.0, "Maharashtra", "Mumbai Suburban"},
	{20.0, 25.0, 68.0, 75.0, "Gujarat", "Ahmedabad"},
	{24.0, 31.0, 68.0, 78.0, "Rajasthan", "Jaipur"},
	{24.0, 31.0, 77.0, 85.0, "Uttar Pradesh", "Lucknow"},
	{21.0, 28.0, 85.0, 89.0, "West Bengal", "Kolkata"},
}

// FallbackLookup classifies a coordinate against the static region tables,
// city-precision boxes first, then the broad state boxes. The first
// containing box wins. Returns false for coordinates outside the national
// bounding box or in no declared region.
func FallbackLookup(lat, lng float64) (domain.LocationGuess, bool) {
	if !domain.InBounds(lat, lng) {
		return domain.LocationGuess{}, false
	}

	for _, r := range cityRegions {
		if r.Contains(lat, lng) {
			return regionGuess(r), true
		}
	}
	for _, r := range stateRegions {
		if r.Contains(lat, lng) {
			return regionGuess(r), true
		}
	}
	return domain.LocationGuess{}, false
}

func regionGuess(r BoundedRegion) domain.LocationGuess {
	return domain.LocationGuess{
		District:         r.District,
		State:            r.State,
		FormattedAddress: fmt.Sprintf("%s, %s, India", r.District, r.State),
	}
}
