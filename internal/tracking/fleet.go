package tracking

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/driveops/fleet-rental/internal/geo"
	"github.com/driveops/fleet-rental/internal/models"
)

// SpeedAlertKmh is the speed above which a fix raises a speeding alert.
const SpeedAlertKmh = 120.0

const alertLimit = 100

// Fleet holds the live tracking state for the session: one TrackingVehicle
// per tracked car, the active geofences and the alert feed. It is rebuilt
// from the car list on startup and never persisted.
type Fleet struct {
	mu       sync.RWMutex
	order    []string
	vehicles map[string]*models.TrackingVehicle

	geofences []models.Geofence
	inside    map[string]map[string]bool // vehicle id -> geofence id -> inside
	alerts    []models.AlertEvent
}

// NewFleet builds the tracked set: cars that are currently booked plus any
// car carrying a GPS device, placed at the map center with no fix yet.
func NewFleet(cars []models.Car) *Fleet {
	f := &Fleet{
		vehicles: make(map[string]*models.TrackingVehicle),
		inside:   make(map[string]map[string]bool),
	}
	for _, c := range cars {
		if c.Status != models.CarBooked && c.TraccarDeviceID == "" {
			continue
		}
		f.order = append(f.order, c.ID)
		f.vehicles[c.ID] = &models.TrackingVehicle{
			Car:        c,
			DriverName: "Driver",
			CurrentLocation: models.GPSLocation{
				Lat:       CenterLat,
				Lng:       CenterLng,
				Timestamp: time.Now().UnixMilli(),
			},
		}
	}
	return f
}

// Vehicles returns a snapshot copy of every tracked vehicle in insertion
// order.
func (f *Fleet) Vehicles() []models.TrackingVehicle {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]models.TrackingVehicle, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.vehicles[id])
	}
	return out
}

// Vehicle returns a snapshot copy of one vehicle.
func (f *Fleet) Vehicle(id string) (models.TrackingVehicle, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.vehicles[id]
	if !ok {
		return models.TrackingVehicle{}, false
	}
	return *v, true
}

// Update records a new fix for a vehicle: current location, bounded history,
// ignition, online flag and last-update time. Unknown ids are ignored.
func (f *Fleet) Update(id string, fix models.GPSLocation, ignition bool, now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return
	}
	v.AppendFix(fix)
	v.IgnitionOn = ignition
	v.Online = true
	v.LastUpdate = now
	f.checkAlerts(v, fix)
}

// SetLevels stores battery and fuel percentages reported by the provider.
func (f *Fleet) SetLevels(id string, battery, fuel float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.vehicles[id]; ok {
		v.BatteryLevel = battery
		v.FuelLevel = fuel
	}
}

// MarkStale flags vehicles offline when their last fix is older than the
// given age. Vehicles with no fix yet stay in their unknown (offline) state.
func (f *Fleet) MarkStale(now time.Time, maxAge time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.vehicles {
		if v.Online && now.Sub(v.LastUpdate) > maxAge {
			v.Online = false
		}
	}
}

// AddGeofence registers a zone to watch. Missing ids and colors get
// defaults.
func (f *Fleet) AddGeofence(g models.Geofence) models.Geofence {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Name == "" {
		g.Name = fmt.Sprintf("Zone %d", len(f.geofences)+1)
	}
	if g.Color == "" {
		g.Color = "#F59E0B"
	}
	f.geofences = append(f.geofences, g)
	return g
}

// Geofences returns a snapshot of the registered zones.
func (f *Fleet) Geofences() []models.Geofence {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]models.Geofence, len(f.geofences))
	copy(out, f.geofences)
	return out
}

// ClearGeofences removes every zone and forgets containment state.
func (f *Fleet) ClearGeofences() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.geofences = nil
	f.inside = make(map[string]map[string]bool)
}

// Alerts returns a snapshot of the alert feed, newest last.
func (f *Fleet) Alerts() []models.AlertEvent {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]models.AlertEvent, len(f.alerts))
	copy(out, f.alerts)
	return out
}

// checkAlerts evaluates geofence containment transitions and the speed
// threshold for a fresh fix. Caller holds the write lock.
func (f *Fleet) checkAlerts(v *models.TrackingVehicle, fix models.GPSLocation) {
	states := f.inside[v.ID]
	if states == nil {
		states = make(map[string]bool)
		f.inside[v.ID] = states
	}

	for _, g := range f.geofences {
		if !g.Active {
			continue
		}
		in := geo.HaversineM(fix.Lat, fix.Lng, g.Center.Lat, g.Center.Lng) <= g.Radius
		was := states[g.ID]
		states[g.ID] = in
		if in == was {
			continue
		}
		typ := models.AlertGeofenceEnter
		verb := "entered"
		if !in {
			typ = models.AlertGeofenceExit
			verb = "left"
		}
		f.pushAlert(models.AlertEvent{
			ID:        uuid.NewString(),
			VehicleID: v.ID,
			Type:      typ,
			Message:   fmt.Sprintf("%s %s %s %s", v.Brand, v.Model, verb, g.Name),
			Timestamp: fix.Timestamp,
		})
	}

	if fix.Speed > SpeedAlertKmh {
		f.pushAlert(models.AlertEvent{
			ID:        uuid.NewString(),
			VehicleID: v.ID,
			Type:      models.AlertSpeeding,
			Message:   fmt.Sprintf("%s %s at %.0f km/h", v.Brand, v.Model, fix.Speed),
			Timestamp: fix.Timestamp,
		})
	}
}

func (f *Fleet) pushAlert(a models.AlertEvent) {
	f.alerts = append(f.alerts, a)
	if len(f.alerts) > alertLimit {
		f.alerts = f.alerts[len(f.alerts)-alertLimit:]
	}
}
