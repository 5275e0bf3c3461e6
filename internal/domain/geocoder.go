package domain

import "context"

// Geocoder resolves a coordinate to a place description via an external
// provider. A zero-value guess with a nil error means the provider answered
// but had no usable result for the coordinate.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (LocationGuess, error)
}
