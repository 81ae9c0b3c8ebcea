package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	// Casablanca city center to the coastline, roughly 3 km.
	d := HaversineKm(33.5731, -7.5898, 33.5950, -7.6100)
	assert.InDelta(t, 3.1, d, 0.5)

	// Zero distance.
	assert.Equal(t, 0.0, HaversineKm(33.5731, -7.5898, 33.5731, -7.5898))
}

func TestBearing_CardinalDirections(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		want                   float64
	}{
		{"due north", 33.0, -7.0, 34.0, -7.0, 0},
		{"due east", 0.0, -7.0, 0.0, -6.0, 90},
		{"due south", 34.0, -7.0, 33.0, -7.0, 180},
		{"due west", 0.0, -6.0, 0.0, -7.0, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.want, got, 0.5)
		})
	}
}

func TestHeadingDelta_ShortestArc(t *testing.T) {
	tests := []struct {
		from, to, want float64
	}{
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{90, 270, 180},
		{45, 45, 0},
		{359, 1, 2},
	}

	for _, tt := range tests {
		got := HeadingDelta(tt.from, tt.to)
		assert.InDelta(t, tt.want, got, 1e-9, "HeadingDelta(%v, %v)", tt.from, tt.to)
		assert.LessOrEqual(t, math.Abs(got), 180.0)
	}
}

func TestNormalizeHeading(t *testing.T) {
	assert.Equal(t, 5.0, NormalizeHeading(365))
	assert.Equal(t, 355.0, NormalizeHeading(-5))
	assert.Equal(t, 0.0, NormalizeHeading(720))
	assert.Equal(t, 180.0, NormalizeHeading(180))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 0.0, Lerp(0, 10, 0))
	assert.Equal(t, 10.0, Lerp(0, 10, 1))
}
