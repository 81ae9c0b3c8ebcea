package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/driveops/fleet-rental/internal/models"
)

func testCars() []models.Car {
	return []models.Car{
		{ID: "car-1", Brand: "Tesla", Model: "Model 3", Status: models.CarBooked},
		{ID: "car-2", Brand: "BMW", Model: "X5", Status: models.CarAvailable, TraccarDeviceID: "imei-2"},
		{ID: "car-3", Brand: "Ford", Model: "Mustang", Status: models.CarAvailable},
	}
}

func TestNewFleet_TracksBookedAndDeviceCars(t *testing.T) {
	fleet := NewFleet(testCars())

	vehicles := fleet.Vehicles()
	assert.Len(t, vehicles, 2)
	assert.Equal(t, "car-1", vehicles[0].ID, "booked car is tracked")
	assert.Equal(t, "car-2", vehicles[1].ID, "device-equipped car is tracked")

	_, ok := fleet.Vehicle("car-3")
	assert.False(t, ok, "idle car without device is not tracked")

	// No fix yet: unknown state, placed at the map center.
	assert.False(t, vehicles[0].Online)
	assert.Equal(t, CenterLat, vehicles[0].CurrentLocation.Lat)
}

func TestFleet_UpdateRecordsFix(t *testing.T) {
	fleet := NewFleet(testCars())
	now := time.Now()
	fix := models.GPSLocation{Lat: 33.58, Lng: -7.59, Heading: 45, Speed: 50, Timestamp: now.UnixMilli()}

	fleet.Update("car-1", fix, true, now)

	v, ok := fleet.Vehicle("car-1")
	assert.True(t, ok)
	assert.True(t, v.Online)
	assert.True(t, v.IgnitionOn)
	assert.Equal(t, fix, v.CurrentLocation)
	assert.Len(t, v.History, 1)
	assert.Equal(t, now, v.LastUpdate)

	// Unknown vehicles are ignored, not created.
	fleet.Update("ghost", fix, true, now)
	assert.Len(t, fleet.Vehicles(), 2)
}

func TestFleet_MarkStale(t *testing.T) {
	fleet := NewFleet(testCars())
	now := time.Now()
	fleet.Update("car-1", models.GPSLocation{Timestamp: now.UnixMilli()}, true, now)

	// Within the allowed age the vehicle stays online.
	fleet.MarkStale(now.Add(8*time.Second), 9*time.Second)
	v, _ := fleet.Vehicle("car-1")
	assert.True(t, v.Online)

	// Past it the vehicle goes offline until the next fix.
	fleet.MarkStale(now.Add(10*time.Second), 9*time.Second)
	v, _ = fleet.Vehicle("car-1")
	assert.False(t, v.Online)

	fleet.Update("car-1", models.GPSLocation{}, true, now.Add(11*time.Second))
	v, _ = fleet.Vehicle("car-1")
	assert.True(t, v.Online)
}

func TestFleet_GeofenceEnterExitAlerts(t *testing.T) {
	fleet := NewFleet(testCars())
	fleet.AddGeofence(models.Geofence{
		ID:     "hq",
		Name:   "HQ Zone",
		Center: models.LatLng{Lat: 33.5731, Lng: -7.5898},
		Radius: 500,
		Active: true,
	})
	now := time.Now()

	// First fix inside the zone: enter alert.
	fleet.Update("car-1", models.GPSLocation{Lat: 33.5731, Lng: -7.5898, Timestamp: 1}, true, now)
	alerts := fleet.Alerts()
	assert.Len(t, alerts, 1)
	assert.Equal(t, models.AlertGeofenceEnter, alerts[0].Type)
	assert.Equal(t, "car-1", alerts[0].VehicleID)

	// Still inside: no duplicate.
	fleet.Update("car-1", models.GPSLocation{Lat: 33.5732, Lng: -7.5898, Timestamp: 2}, true, now)
	assert.Len(t, fleet.Alerts(), 1)

	// Far outside: exit alert.
	fleet.Update("car-1", models.GPSLocation{Lat: 33.65, Lng: -7.5898, Timestamp: 3}, true, now)
	alerts = fleet.Alerts()
	assert.Len(t, alerts, 2)
	assert.Equal(t, models.AlertGeofenceExit, alerts[1].Type)
}

func TestFleet_InactiveGeofenceIgnored(t *testing.T) {
	fleet := NewFleet(testCars())
	fleet.AddGeofence(models.Geofence{
		ID:     "off",
		Center: models.LatLng{Lat: 33.5731, Lng: -7.5898},
		Radius: 500,
		Active: false,
	})

	fleet.Update("car-1", models.GPSLocation{Lat: 33.5731, Lng: -7.5898}, true, time.Now())
	assert.Empty(t, fleet.Alerts())
}

func TestFleet_SpeedingAlert(t *testing.T) {
	fleet := NewFleet(testCars())
	now := time.Now()

	fleet.Update("car-1", models.GPSLocation{Speed: 135, Lat: 40, Lng: 0}, true, now)

	alerts := fleet.Alerts()
	assert.Len(t, alerts, 1)
	assert.Equal(t, models.AlertSpeeding, alerts[0].Type)
}

func TestFleet_ClearGeofences(t *testing.T) {
	fleet := NewFleet(testCars())
	fleet.AddGeofence(models.Geofence{Center: models.LatLng{Lat: 1}, Radius: 100, Active: true})
	assert.Len(t, fleet.Geofences(), 1)

	fleet.ClearGeofences()
	assert.Empty(t, fleet.Geofences())
}

func TestFleet_AddGeofenceDefaults(t *testing.T) {
	fleet := NewFleet(nil)
	g := fleet.AddGeofence(models.Geofence{Center: models.LatLng{Lat: 1, Lng: 2}, Radius: 300, Active: true})

	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "Zone 1", g.Name)
	assert.NotEmpty(t, g.Color)
}
