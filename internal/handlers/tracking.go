package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/driveops/fleet-rental/internal/models"
	"github.com/driveops/fleet-rental/internal/tracking"
)

// TrackingHandler serves the live tracking surface: vehicle snapshots,
// engine status, the tick interval and geofences.
type TrackingHandler struct {
	fleet  *tracking.Fleet
	engine *tracking.Engine
}

// NewTrackingHandler creates a handler over the fleet and its engine.
func NewTrackingHandler(fleet *tracking.Fleet, engine *tracking.Engine) *TrackingHandler {
	return &TrackingHandler{fleet: fleet, engine: engine}
}

// Vehicles handles GET /api/tracking/vehicles.
func (h *TrackingHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.fleet.Vehicles())
}

// StatusResponse describes the tracking engine's current state.
type StatusResponse struct {
	Mode             tracking.Mode `json:"mode"`
	IntervalMs       int64         `json:"interval_ms"`
	Vehicles         int           `json:"vehicles"`
	ConnectionFailed bool          `json:"connection_failed"`
}

// Status handles GET /api/tracking/status.
func (h *TrackingHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{
		Mode:             h.engine.Mode(),
		IntervalMs:       h.engine.Interval().Milliseconds(),
		Vehicles:         len(h.fleet.Vehicles()),
		ConnectionFailed: h.engine.ConnectionFailed(),
	})
}

// Interval handles POST /api/tracking/interval. The requested period is
// clamped to the engine's bounds and the applied value is returned.
func (h *TrackingHandler) Interval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		IntervalMs int64 `json:"interval_ms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.IntervalMs <= 0 {
		http.Error(w, "interval_ms must be positive", http.StatusBadRequest)
		return
	}

	applied := h.engine.SetInterval(time.Duration(req.IntervalMs) * time.Millisecond)
	writeJSON(w, http.StatusOK, map[string]int64{"interval_ms": applied.Milliseconds()})
}

// Geofences routes /api/tracking/geofences: list, add, clear.
func (h *TrackingHandler) Geofences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.fleet.Geofences())

	case http.MethodPost:
		var g models.Geofence
		if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if g.Radius <= 0 {
			http.Error(w, "Radius must be positive", http.StatusBadRequest)
			return
		}
		g.Active = true
		writeJSON(w, http.StatusCreated, h.fleet.AddGeofence(g))

	case http.MethodDelete:
		h.fleet.ClearGeofences()
		writeJSON(w, http.StatusOK, map[string]string{"message": "Geofences cleared"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Alerts handles GET /api/tracking/alerts.
func (h *TrackingHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.fleet.Alerts())
}
