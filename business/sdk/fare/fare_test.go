package fare

import (
	"math"
	"testing"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name       string
		distanceKm float64
		want       float64
	}{
		{name: "zero distance is base fare", distanceKm: 0, want: 50},
		{name: "one kilometre", distanceKm: 1, want: 60},
		{name: "ten kilometres", distanceKm: 10, want: 150},
		{name: "fractional distance", distanceKm: 10.1, want: 151},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.distanceKm)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Estimate(%f) = %f, want %f", tt.distanceKm, got, tt.want)
			}
		})
	}
}
