package config

import (
	"time"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .vitals.yaml configuration file.
type Config struct {
	Version    int             `yaml:"version" mapstructure:"version"`
	Source     SourceConfig    `yaml:"source" mapstructure:"source"`
	Dashboard  DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Thresholds ThresholdConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Render     RenderConfig    `yaml:"render" mapstructure:"render"`
}

// SourceConfig says where snapshots come from.
type SourceConfig struct {
	// URL is the base URL of the telemetry backend, e.g. http://nas:5000.
	URL string `yaml:"url" mapstructure:"url"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// SSH, when set, tunnels backend requests through this host.
	// Can be: hostname, user@hostname, or SSH config alias.
	SSH string `yaml:"ssh" mapstructure:"ssh"`

	// Local collects from this machine instead of a backend.
	Local bool `yaml:"local" mapstructure:"local"`

	Retry RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// RetryConfig controls retries of failed backend requests.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay" mapstructure:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay" mapstructure:"max_delay"`
}

// DashboardConfig controls the refresh cycle and the terminal dashboard.
type DashboardConfig struct {
	// Interval between live refreshes.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// RangeHours is the initial history window.
	RangeHours int `yaml:"range_hours" mapstructure:"range_hours"`

	// HistorySize is the capacity of each rolling sample buffer.
	HistorySize int `yaml:"history_size" mapstructure:"history_size"`

	// Skin selects the colour palette: "synthwave" or "classic".
	Skin string `yaml:"skin" mapstructure:"skin"`

	// Segments is the number of cells in disk bars.
	Segments int `yaml:"segments" mapstructure:"segments"`
}

// ThresholdConfig holds local threshold overrides. The backend's own
// thresholds are layered on top of these.
type ThresholdConfig struct {
	Temperature ThresholdValues `yaml:"temperature" mapstructure:"temperature"`
	Memory      ThresholdValues `yaml:"memory" mapstructure:"memory"`
	Disk        ThresholdValues `yaml:"disk" mapstructure:"disk"`
}

// ThresholdValues defines warning and critical percentages.
// A zero field means "use the built-in default".
type ThresholdValues struct {
	Warning  float64 `yaml:"warning,omitempty" mapstructure:"warning"`
	Critical float64 `yaml:"critical,omitempty" mapstructure:"critical"`
}

// RenderConfig controls PNG export.
type RenderConfig struct {
	OutDir string  `yaml:"out_dir" mapstructure:"out_dir"`
	Width  int     `yaml:"width" mapstructure:"width"`
	Height int     `yaml:"height" mapstructure:"height"`
	Scale  float64 `yaml:"scale" mapstructure:"scale"`
}

// Overrides converts the configured values into classifier overrides,
// leaving zero fields unset.
func (t ThresholdConfig) Overrides() metrics.Overrides {
	out := make(metrics.Overrides)
	add := func(kind metrics.Kind, v ThresholdValues) {
		var o metrics.ThresholdOverride
		if v.Warning != 0 {
			o.Warning = metrics.Some(v.Warning)
		}
		if v.Critical != 0 {
			o.Critical = metrics.Some(v.Critical)
		}
		if o.Warning.Valid || o.Critical.Valid {
			out[kind] = o
		}
	}
	add(metrics.KindTemperature, t.Temperature)
	add(metrics.KindMemory, t.Memory)
	add(metrics.KindDisk, t.Disk)
	return out
}

// ThresholdSet returns the built-in thresholds with the configured
// overrides applied.
func (c *Config) ThresholdSet() metrics.ThresholdSet {
	return metrics.DefaultThresholds().Apply(c.Thresholds.Overrides())
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Source: SourceConfig{
			URL:     "http://localhost:5000",
			Timeout: 10 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:  3,
				InitialDelay: 500 * time.Millisecond,
				MaxDelay:     5 * time.Second,
			},
		},
		Dashboard: DashboardConfig{
			Interval:    60 * time.Second,
			RangeHours:  24,
			HistorySize: metrics.DefaultCapacity,
			Skin:        "synthwave",
			Segments:    24,
		},
		Render: RenderConfig{
			OutDir: "vitals-out",
			Width:  320,
			Height: 200,
			Scale:  2,
		},
	}
}
