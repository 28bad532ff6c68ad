// Package fare derives trip fares from travelled distance.
package fare

// Pricing constants in the deployment currency's base unit.
const (
	BaseFare  = 50.0
	RatePerKm = 10.0
)

// Estimate returns the estimated fare for the given distance in kilometres.
// The distance must be non-negative; it is always derived from a haversine
// computation upstream.
func Estimate(distanceKm float64) float64 {
	return BaseFare + distanceKm*RatePerKm
}
