// package config loads viewer settings from an optional config file and
// HELIOS_-prefixed environment variables, with defaults that bring up a
// working viewer with no configuration at all.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// WindowConfig controls the platform window.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// LightingConfig controls the starting lighting state.
type LightingConfig struct {
	// TimeOfDay is the starting clock time in hours [0, 24).
	TimeOfDay float32 `mapstructure:"time_of_day"`

	// NightLights enables the artificial night lighting at startup.
	NightLights bool `mapstructure:"night_lights"`
}

// CameraConfig controls the starting camera pose and navigation mode.
type CameraConfig struct {
	// Mode is the navigation mode, "orbit" or "fly".
	Mode string `mapstructure:"mode"`

	// Radius is the starting distance from the target in world units.
	Radius float32 `mapstructure:"radius"`
}

// SurfaceConfig controls render-surface recovery.
type SurfaceConfig struct {
	// MaxRetries is the automatic reinitialization budget after a surface
	// loss.
	MaxRetries int `mapstructure:"max_retries"`
}

// AssetsConfig controls asset loading.
type AssetsConfig struct {
	// EnvironmentTimeout bounds how long an environment image read may take.
	EnvironmentTimeout time.Duration `mapstructure:"environment_timeout"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is the zerolog level name ("debug", "info", "warn", "error").
	Level string `mapstructure:"level"`
}

// Config is the full viewer configuration.
type Config struct {
	Window   WindowConfig   `mapstructure:"window"`
	Lighting LightingConfig `mapstructure:"lighting"`
	Camera   CameraConfig   `mapstructure:"camera"`
	Surface  SurfaceConfig  `mapstructure:"surface"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Log      LogConfig      `mapstructure:"log"`
}

// setDefaults registers the out-of-the-box configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "helios")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)

	v.SetDefault("lighting.time_of_day", 12.0)
	v.SetDefault("lighting.night_lights", false)

	v.SetDefault("camera.mode", "orbit")
	v.SetDefault("camera.radius", 12.0)

	v.SetDefault("surface.max_retries", 3)

	v.SetDefault("assets.environment_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
}

// Load reads the configuration from the given file path, layered under
// HELIOS_-prefixed environment variables. An empty path loads defaults and
// environment only.
//
// Parameters:
//   - path: config file path, or "" for none
//
// Returns:
//   - *Config: the resolved configuration
//   - error: error if the file cannot be read or parsed, or validation fails
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HELIOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the viewer cannot start with.
//
// Returns:
//   - error: the first validation failure, or nil
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window dimensions must be positive, got %dx%d",
			c.Window.Width, c.Window.Height)
	}
	switch c.Camera.Mode {
	case "orbit", "fly":
	default:
		return fmt.Errorf("config: unknown camera mode %q", c.Camera.Mode)
	}
	if c.Camera.Radius <= 0 {
		return fmt.Errorf("config: camera radius must be positive, got %v", c.Camera.Radius)
	}
	if c.Surface.MaxRetries < 1 {
		return fmt.Errorf("config: surface max_retries must be at least 1, got %d",
			c.Surface.MaxRetries)
	}
	return nil
}
