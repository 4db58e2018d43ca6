package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "helios", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.InDelta(t, 12.0, cfg.Lighting.TimeOfDay, 1e-6)
	assert.False(t, cfg.Lighting.NightLights)
	assert.Equal(t, "orbit", cfg.Camera.Mode)
	assert.Equal(t, 3, cfg.Surface.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.Assets.EnvironmentTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "helios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 1920
  height: 1080
lighting:
  time_of_day: 18.5
  night_lights: true
camera:
  mode: fly
surface:
  max_retries: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 1080, cfg.Window.Height)
	assert.InDelta(t, 18.5, cfg.Lighting.TimeOfDay, 1e-6)
	assert.True(t, cfg.Lighting.NightLights)
	assert.Equal(t, "fly", cfg.Camera.Mode)
	assert.Equal(t, 5, cfg.Surface.MaxRetries)
	assert.Equal(t, "helios", cfg.Window.Title, "unset keys keep their defaults")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HELIOS_WINDOW_WIDTH", "800")
	t.Setenv("HELIOS_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Window.Width = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Camera.Mode = "helicopter"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Camera.Radius = -1
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Surface.MaxRetries = 0
	assert.Error(t, cfg.Validate())
}
