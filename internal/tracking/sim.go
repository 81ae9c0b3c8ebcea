package tracking

import (
	"math/rand"
	"time"

	"github.com/driveops/fleet-rental/internal/geo"
	"github.com/driveops/fleet-rental/internal/models"
)

// Default map center (Casablanca).
const (
	CenterLat = 33.5731
	CenterLng = -7.5898
)

// Routes are the canned closed-loop routes synthetic vehicles walk. Each
// route ends where it starts so the cursor can wrap seamlessly.
var Routes = [][]models.LatLng{
	// Downtown loop
	{
		{Lat: 33.5731, Lng: -7.5898}, {Lat: 33.5745, Lng: -7.5920},
		{Lat: 33.5760, Lng: -7.5950}, {Lat: 33.5780, Lng: -7.5980},
		{Lat: 33.5800, Lng: -7.5950}, {Lat: 33.5785, Lng: -7.5910},
		{Lat: 33.5750, Lng: -7.5880}, {Lat: 33.5731, Lng: -7.5898},
	},
	// Coastline
	{
		{Lat: 33.5950, Lng: -7.6100}, {Lat: 33.5960, Lng: -7.6150},
		{Lat: 33.5980, Lng: -7.6200}, {Lat: 33.6000, Lng: -7.6250},
		{Lat: 33.6020, Lng: -7.6300}, {Lat: 33.6000, Lng: -7.6250},
		{Lat: 33.5980, Lng: -7.6200}, {Lat: 33.5950, Lng: -7.6100},
	},
}

// Synthetic speeds stay in a plausible city band, km/h.
const (
	simSpeedBase = 30.0
	simSpeedSpan = 40.0
)

// RouteIndex deterministically assigns a route to a vehicle identifier.
// The 32-bit string hash is stable across restarts, so the same car always
// walks the same loop.
func RouteIndex(id string) int {
	var h int32
	for _, c := range id {
		h = h<<5 - h + int32(c)
	}
	idx := int(h)
	if idx < 0 {
		idx = -idx
	}
	return idx % len(Routes)
}

// Simulator advances synthetic vehicles along their assigned routes, one
// waypoint per tick.
type Simulator struct {
	cursors map[string]int
}

// NewSimulator creates a simulator with every cursor at the route start.
func NewSimulator() *Simulator {
	return &Simulator{cursors: make(map[string]int)}
}

// NextFix moves the vehicle's cursor one waypoint forward (wrapping at the
// loop end) and returns the resulting fix. Heading is the great-circle
// bearing from the previous waypoint to the new one.
func (s *Simulator) NextFix(carID string, now time.Time) models.GPSLocation {
	route := Routes[RouteIndex(carID)]
	cur := s.cursors[carID]
	next := (cur + 1) % len(route)
	s.cursors[carID] = next

	a := route[cur]
	b := route[next]

	return models.GPSLocation{
		Lat:       b.Lat,
		Lng:       b.Lng,
		Heading:   geo.Bearing(a.Lat, a.Lng, b.Lat, b.Lng),
		Speed:     simSpeedBase + rand.Float64()*simSpeedSpan,
		Timestamp: now.UnixMilli(),
	}
}
