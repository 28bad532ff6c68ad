// Package geo provides pure great-circle geometry helpers.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Point represents a coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the great-circle distance in kilometres between two
// points using the haversine formula. Identical points return 0.
func DistanceKm(a Point, b Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	rLatA := toRadians(a.Lat)
	rLatB := toRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLatA)*math.Cos(rLatB)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
