package tracking

import (
	"time"

	"github.com/driveops/fleet-rental/internal/geo"
	"github.com/driveops/fleet-rental/internal/models"
)

// Interpolator animates one marker between discrete fixes. Latitude and
// longitude move linearly, heading along the shortest circular arc, over
// the tick duration. Each vehicle owns its interpolator; there is no shared
// clock.
//
// Progress is a pure function of wall-clock time, so callers can sample At
// on every rendering frame regardless of frame rate.
type Interpolator struct {
	startLat, startLng, startHeading    float64
	targetLat, targetLng, targetHeading float64
	startTime                           time.Time
	duration                            time.Duration
}

// NewInterpolator starts at rest on the given fix.
func NewInterpolator(fix models.GPSLocation) *Interpolator {
	h := geo.NormalizeHeading(fix.Heading)
	return &Interpolator{
		startLat: fix.Lat, startLng: fix.Lng, startHeading: h,
		targetLat: fix.Lat, targetLng: fix.Lng, targetHeading: h,
	}
}

// Retarget begins animating toward a new fix. The currently displayed
// position — possibly mid-flight — becomes the new start, never the
// previous target, so motion stays continuous when fixes arrive faster
// than an animation completes. The target heading is reached by the
// shortest arc around the 0/360 boundary.
func (ip *Interpolator) Retarget(fix models.GPSLocation, now time.Time, duration time.Duration) {
	lat, lng, heading := ip.At(now)

	ip.startLat, ip.startLng, ip.startHeading = lat, lng, heading
	ip.targetLat, ip.targetLng = fix.Lat, fix.Lng
	ip.targetHeading = heading + geo.HeadingDelta(heading, fix.Heading)
	ip.startTime = now
	ip.duration = duration
}

// At returns the displayed position for the given instant. Once the
// animation has run its full duration the result is exactly the target.
func (ip *Interpolator) At(now time.Time) (lat, lng, heading float64) {
	t := ip.progress(now)
	if t >= 1 {
		return ip.targetLat, ip.targetLng, geo.NormalizeHeading(ip.targetHeading)
	}
	return geo.Lerp(ip.startLat, ip.targetLat, t),
		geo.Lerp(ip.startLng, ip.targetLng, t),
		geo.NormalizeHeading(geo.Lerp(ip.startHeading, ip.targetHeading, t))
}

// Done reports whether the current animation has finished.
func (ip *Interpolator) Done(now time.Time) bool {
	return ip.progress(now) >= 1
}

func (ip *Interpolator) progress(now time.Time) float64 {
	if ip.duration <= 0 {
		return 1
	}
	t := float64(now.Sub(ip.startTime)) / float64(ip.duration)
	if t < 0 {
		return 0
	}
	return t
}
