package models

import "time"

// GPSLocation is a single timestamped position fix.
type GPSLocation struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Heading   float64 `json:"heading"` // degrees, 0-360, circular
	Speed     float64 `json:"speed"`   // km/h
	Timestamp int64   `json:"timestamp"`
}

// HistoryLimit bounds the per-vehicle fix history.
const HistoryLimit = 50

// TrackingVehicle is a car augmented with live position state. It is never
// persisted; the tracking engine rebuilds it from the car list each session.
type TrackingVehicle struct {
	Car
	CurrentLocation GPSLocation   `json:"current_location"`
	History         []GPSLocation `json:"history"`
	DriverName      string        `json:"driver_name,omitempty"`
	IgnitionOn      bool          `json:"ignition_on"`
	BatteryLevel    float64       `json:"battery_level"`
	FuelLevel       float64       `json:"fuel_level"`
	Online          bool          `json:"online"`
	LastUpdate      time.Time     `json:"last_update,omitempty"`
}

// AppendFix records a new fix, evicting the oldest when the history is full.
func (v *TrackingVehicle) AppendFix(fix GPSLocation) {
	v.CurrentLocation = fix
	v.History = append(v.History, fix)
	if len(v.History) > HistoryLimit {
		v.History = v.History[len(v.History)-HistoryLimit:]
	}
}

// LatLng is a plain coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geofence is a circular zone watched by the tracking view. Geofences live
// only in memory.
type Geofence struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Center LatLng  `json:"center"`
	Radius float64 `json:"radius"` // meters
	Color  string  `json:"color"`
	Active bool    `json:"active"`
}

// AlertEventType classifies tracking alerts.
type AlertEventType string

const (
	AlertGeofenceEnter AlertEventType = "geofence_enter"
	AlertGeofenceExit  AlertEventType = "geofence_exit"
	AlertSpeeding      AlertEventType = "speeding"
)

// AlertEvent is a tracking-engine alert, e.g. a vehicle crossing a geofence.
type AlertEvent struct {
	ID        string         `json:"id"`
	VehicleID string         `json:"vehicle_id"`
	Type      AlertEventType `json:"type"`
	Message   string         `json:"message"`
	Timestamp int64          `json:"timestamp"`
	Read      bool           `json:"read"`
}
