package tracking

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/driveops/fleet-rental/internal/models"
)

// Mode says where position fixes come from.
type Mode string

const (
	// ModeTraccar polls a real Traccar server.
	ModeTraccar Mode = "traccar"
	// ModeSynthetic walks canned routes when no provider is configured.
	ModeSynthetic Mode = "synthetic"
)

// Tick interval bounds, runtime adjustable within them.
const (
	MinInterval     = 1 * time.Second
	MaxInterval     = 10 * time.Second
	DefaultInterval = 3 * time.Second
)

// staleTicks is how many missed tick intervals mark a vehicle offline.
const staleTicks = 3

// Engine drives the per-tick position updates for the fleet, in exactly one
// of the two modes. The mode is fixed at construction: a non-nil Traccar
// client selects the external feed, nil selects synthetic routes.
type Engine struct {
	fleet  *Fleet
	client *TraccarClient
	sim    *Simulator
	pub    Publisher

	mu         sync.Mutex
	interval   time.Duration
	reset      chan time.Duration
	directory  *DeviceDirectory
	connFailed bool
}

// NewEngine builds an engine over the fleet. pub may be nil for no fix
// stream.
func NewEngine(fleet *Fleet, client *TraccarClient, pub Publisher, interval time.Duration) *Engine {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &Engine{
		fleet:    fleet,
		client:   client,
		sim:      NewSimulator(),
		pub:      pub,
		interval: clampInterval(interval),
		reset:    make(chan time.Duration, 1),
	}
}

// Mode returns the engine's fix source.
func (e *Engine) Mode() Mode {
	if e.client != nil {
		return ModeTraccar
	}
	return ModeSynthetic
}

// Interval returns the current tick period.
func (e *Engine) Interval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interval
}

// SetInterval changes the tick period, clamped to [MinInterval,
// MaxInterval]. The running loop replaces its ticker before the next tick,
// so the old cadence never overlaps the new one. Returns the applied value.
func (e *Engine) SetInterval(d time.Duration) time.Duration {
	d = clampInterval(d)
	e.mu.Lock()
	e.interval = d
	e.mu.Unlock()

	// Collapse pending resets so only the latest applies.
	select {
	case <-e.reset:
	default:
	}
	e.reset <- d
	return d
}

// ConnectionFailed reports whether the device-directory fetch failed, which
// the UI surfaces as a persistent offline indicator.
func (e *Engine) ConnectionFailed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.connFailed
}

// Run loops until the context is cancelled. In external-feed mode the
// device directory is fetched once before the first poll.
func (e *Engine) Run(ctx context.Context) {
	if e.client != nil {
		e.fetchDirectory(ctx)
	}

	ticker := time.NewTicker(e.Interval())
	defer ticker.Stop()

	log.WithFields(log.Fields{
		"mode":     e.Mode(),
		"interval": e.Interval(),
		"vehicles": len(e.fleet.Vehicles()),
	}).Info("Tracking engine started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Tracking engine stopped")
			return
		case d := <-e.reset:
			ticker.Stop()
			ticker = time.NewTicker(d)
		case <-ticker.C:
			e.Tick(ctx, time.Now())
		}
	}
}

// Tick performs one update pass over the fleet against a single captured
// snapshot: no vehicle's update depends on another's within the pass.
func (e *Engine) Tick(ctx context.Context, now time.Time) {
	if e.client != nil {
		e.pollTraccar(ctx, now)
		e.fleet.MarkStale(now, time.Duration(staleTicks)*e.Interval())
		return
	}
	e.advanceSynthetic(now)
}

func (e *Engine) fetchDirectory(ctx context.Context) {
	devices, err := e.client.Devices(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		log.WithError(err).Warn("Failed to fetch Traccar device directory")
		e.connFailed = true
		return
	}
	e.directory = NewDeviceDirectory(devices)
	e.connFailed = false
}

func (e *Engine) pollTraccar(ctx context.Context, now time.Time) {
	positions, err := e.client.Positions(ctx)
	if err != nil {
		// Vehicle state is left untouched for this tick; the next poll
		// retries naturally.
		log.WithError(err).Warn("Traccar position poll failed")
		return
	}

	byDevice := make(map[int]TraccarPosition, len(positions))
	for _, p := range positions {
		byDevice[p.DeviceID] = p
	}

	e.mu.Lock()
	directory := e.directory
	e.mu.Unlock()
	if directory == nil {
		return
	}

	for _, v := range e.fleet.Vehicles() {
		if v.TraccarDeviceID == "" {
			continue
		}
		internalID, ok := directory.InternalID(v.TraccarDeviceID)
		if !ok {
			// Unknown to the directory: stale, not an error. It may
			// resolve after the device is registered server-side.
			continue
		}
		pos, ok := byDevice[internalID]
		if !ok {
			continue
		}

		fix := models.GPSLocation{
			Lat:       pos.Latitude,
			Lng:       pos.Longitude,
			Heading:   pos.Course,
			Speed:     pos.Speed * KnotsToKmh,
			Timestamp: now.UnixMilli(),
		}
		battery := pos.Attributes.BatteryLevel
		if battery == 0 {
			battery = 100
		}
		fuel := pos.Attributes.FuelLevel
		if fuel == 0 {
			fuel = 50
		}

		e.fleet.Update(v.ID, fix, pos.Attributes.Ignition, now)
		e.fleet.SetLevels(v.ID, battery, fuel)
		e.pub.PublishFix(v.ID, fix)
	}
}

func (e *Engine) advanceSynthetic(now time.Time) {
	for _, v := range e.fleet.Vehicles() {
		// Cars with a real device are reserved for the provider feed
		// and never simulated.
		if v.TraccarDeviceID != "" {
			continue
		}
		fix := e.sim.NextFix(v.ID, now)
		e.fleet.Update(v.ID, fix, true, now)
		e.pub.PublishFix(v.ID, fix)
	}
}

func clampInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultInterval
	}
	if d < MinInterval {
		return MinInterval
	}
	if d > MaxInterval {
		return MaxInterval
	}
	return d
}
