package tracking

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/driveops/fleet-rental/internal/geo"
	"github.com/driveops/fleet-rental/internal/models"
)

func fixAt(lat, lng, heading float64) models.GPSLocation {
	return models.GPSLocation{Lat: lat, Lng: lng, Heading: heading}
}

func TestInterpolator_LinearPosition(t *testing.T) {
	start := time.Now()
	ip := NewInterpolator(fixAt(0, 0, 0))
	ip.Retarget(fixAt(10, 20, 0), start, time.Second)

	lat, lng, _ := ip.At(start.Add(500 * time.Millisecond))
	assert.InDelta(t, 5.0, lat, 1e-9)
	assert.InDelta(t, 10.0, lng, 1e-9)
}

func TestInterpolator_SnapsToTargetAtCompletion(t *testing.T) {
	start := time.Now()
	ip := NewInterpolator(fixAt(0, 0, 90))
	ip.Retarget(fixAt(1, 2, 180), start, time.Second)

	lat, lng, heading := ip.At(start.Add(time.Second))
	assert.Equal(t, 1.0, lat)
	assert.Equal(t, 2.0, lng)
	assert.Equal(t, 180.0, heading)
	assert.True(t, ip.Done(start.Add(time.Second)))

	// Well past the duration the value stays pinned to the target.
	lat, lng, heading = ip.At(start.Add(time.Minute))
	assert.Equal(t, 1.0, lat)
	assert.Equal(t, 2.0, lng)
	assert.Equal(t, 180.0, heading)
}

func TestInterpolator_HeadingShortestArc(t *testing.T) {
	// 350 -> 10 must cross the 0/360 boundary, never swing through 180.
	start := time.Now()
	ip := NewInterpolator(fixAt(0, 0, 350))
	ip.Retarget(fixAt(0, 0, 10), start, time.Second)

	var traversal float64
	_, _, prev := ip.At(start)
	for i := 1; i <= 100; i++ {
		_, _, h := ip.At(start.Add(time.Duration(i) * 10 * time.Millisecond))
		traversal += math.Abs(geo.HeadingDelta(prev, h))
		prev = h
	}

	assert.LessOrEqual(t, traversal, 20.0+1e-6, "interpolation took the long way around")
	_, _, final := ip.At(start.Add(time.Second))
	assert.InDelta(t, 10.0, final, 1e-9)
}

func TestInterpolator_HeadingShortestArcDescending(t *testing.T) {
	start := time.Now()
	ip := NewInterpolator(fixAt(0, 0, 10))
	ip.Retarget(fixAt(0, 0, 350), start, time.Second)

	_, _, mid := ip.At(start.Add(500 * time.Millisecond))
	// Halfway between 10 and 350 on the short arc is 0 (== 360), not 180.
	assert.True(t, mid >= 350 || mid <= 10, "midpoint %v crossed the long way", mid)
}

func TestInterpolator_MidFlightRetargetIsContinuous(t *testing.T) {
	start := time.Now()
	ip := NewInterpolator(fixAt(0, 0, 0))
	ip.Retarget(fixAt(10, 10, 90), start, time.Second)

	// A new fix lands halfway through the animation.
	half := start.Add(500 * time.Millisecond)
	displayedLat, displayedLng, displayedHeading := ip.At(half)
	ip.Retarget(fixAt(-5, -5, 270), half, time.Second)

	lat, lng, heading := ip.At(half)
	assert.InDelta(t, displayedLat, lat, 1e-9, "retarget must not jump the marker")
	assert.InDelta(t, displayedLng, lng, 1e-9)
	assert.InDelta(t, displayedHeading, heading, 1e-9)

	// And the animation now heads for the new target.
	lat, lng, _ = ip.At(half.Add(time.Second))
	assert.Equal(t, -5.0, lat)
	assert.Equal(t, -5.0, lng)
}

func TestInterpolator_VehiclesAreIndependent(t *testing.T) {
	start := time.Now()
	a := NewInterpolator(fixAt(0, 0, 0))
	b := NewInterpolator(fixAt(50, 50, 0))

	a.Retarget(fixAt(1, 1, 0), start, time.Second)
	// b never retargets; it must stay at rest wherever it is.
	lat, lng, _ := b.At(start.Add(700 * time.Millisecond))
	assert.Equal(t, 50.0, lat)
	assert.Equal(t, 50.0, lng)
}
