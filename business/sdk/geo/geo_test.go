package geo

import (
	"math"
	"testing"
)

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a         Point
		b         Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         Point{Lat: 12.9716, Lon: 77.5946},
			b:         Point{Lat: 12.9716, Lon: 77.5946},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "MG Road to Indiranagar Bengaluru (~8.3km)",
			a:         Point{Lat: 12.9716, Lon: 77.5946},
			b:         Point{Lat: 12.9498, Lon: 77.6682},
			wantKm:    8.34,
			tolerance: 0.05,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			a:         Point{Lat: 40.7128, Lon: -74.0060},
			b:         Point{Lat: 34.0522, Lon: -118.2437},
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("DistanceKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	a := Point{Lat: 25.0, Lon: 121.0}
	b := Point{Lat: 26.0, Lon: 122.0}

	d1 := DistanceKm(a, b)
	d2 := DistanceKm(b, a)

	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
}
