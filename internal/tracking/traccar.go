package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// KnotsToKmh converts Traccar speeds (knots) to km/h.
const KnotsToKmh = 1.852

// TraccarDevice is one entry of the provider's device directory.
type TraccarDevice struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	UniqueID string `json:"uniqueId"`
}

// TraccarAttributes carries the position attributes the dashboard shows.
type TraccarAttributes struct {
	Ignition     bool    `json:"ignition"`
	BatteryLevel float64 `json:"batteryLevel"`
	FuelLevel    float64 `json:"fuelLevel"`
}

// TraccarPosition is one live position record.
type TraccarPosition struct {
	DeviceID   int               `json:"deviceId"`
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
	Course     float64           `json:"course"`
	Speed      float64           `json:"speed"` // knots
	Attributes TraccarAttributes `json:"attributes"`
}

// TraccarClient talks to a Traccar server over its REST API with basic auth.
type TraccarClient struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

// NewTraccarClient builds a client for the given server. The URL may omit
// the scheme and carry a trailing slash; both are normalized.
func NewTraccarClient(url, username, password string) *TraccarClient {
	if !strings.HasPrefix(url, "http") {
		url = "http://" + url
	}
	url = strings.TrimSuffix(url, "/")
	return &TraccarClient{
		baseURL:  url,
		username: username,
		password: password,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Devices fetches the device directory (internal id to unique id mapping).
func (c *TraccarClient) Devices(ctx context.Context) ([]TraccarDevice, error) {
	var devices []TraccarDevice
	if err := c.get(ctx, "/api/devices", &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// Positions fetches the latest known position of every device.
func (c *TraccarClient) Positions(ctx context.Context) ([]TraccarPosition, error) {
	var positions []TraccarPosition
	if err := c.get(ctx, "/api/positions", &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

func (c *TraccarClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("traccar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("traccar status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// DeviceDirectory is an explicit bidirectional map between Traccar internal
// ids and the unique device identifiers configured on cars.
type DeviceDirectory struct {
	byID     map[int]string
	byUnique map[string]int
}

// NewDeviceDirectory indexes a device list both ways.
func NewDeviceDirectory(devices []TraccarDevice) *DeviceDirectory {
	d := &DeviceDirectory{
		byID:     make(map[int]string, len(devices)),
		byUnique: make(map[string]int, len(devices)),
	}
	for _, dev := range devices {
		d.byID[dev.ID] = dev.UniqueID
		d.byUnique[dev.UniqueID] = dev.ID
	}
	return d
}

// UniqueID resolves an internal device id to its unique identifier.
func (d *DeviceDirectory) UniqueID(id int) (string, bool) {
	u, ok := d.byID[id]
	return u, ok
}

// InternalID resolves a unique identifier to the provider's internal id.
func (d *DeviceDirectory) InternalID(uniqueID string) (int, bool) {
	id, ok := d.byUnique[uniqueID]
	return id, ok
}

// Len returns the number of known devices.
func (d *DeviceDirectory) Len() int {
	return len(d.byID)
}
