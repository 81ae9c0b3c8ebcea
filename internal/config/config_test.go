package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "rental", cfg.MongoDB)
	assert.Equal(t, 3000*time.Millisecond, cfg.TrackingInterval)
	assert.Equal(t, "@every 5m", cfg.ReconcileSchedule)
	assert.False(t, cfg.TraccarConfigured())
}

func TestTraccarConfigured_RequiresAllCredentials(t *testing.T) {
	os.Clearenv()
	os.Setenv("TRACCAR_URL", "http://tracker.example.com")
	os.Setenv("TRACCAR_USERNAME", "admin")

	cfg := Load()
	assert.False(t, cfg.TraccarConfigured(), "missing password must keep synthetic mode")

	os.Setenv("TRACCAR_PASSWORD", "secret")
	cfg = Load()
	assert.True(t, cfg.TraccarConfigured())
}

func TestLoad_TrackingInterval(t *testing.T) {
	os.Clearenv()
	os.Setenv("TRACKING_INTERVAL_MS", "1500")

	cfg := Load()
	assert.Equal(t, 1500*time.Millisecond, cfg.TrackingInterval)

	os.Setenv("TRACKING_INTERVAL_MS", "not-a-number")
	cfg = Load()
	assert.Equal(t, 3000*time.Millisecond, cfg.TrackingInterval)
}
