package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/render"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig, "Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but vitals only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest vitals release.")
	}

	if err := validateSource(cfg.Source); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'source' section in your .vitals.yaml.")
	}
	if err := validateDashboard(cfg.Dashboard); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'dashboard' section in your .vitals.yaml.")
	}
	for _, entry := range []struct {
		name string
		vals ThresholdValues
	}{
		{"temperature", cfg.Thresholds.Temperature},
		{"memory", cfg.Thresholds.Memory},
		{"disk", cfg.Thresholds.Disk},
	} {
		if err := validateThresholds(entry.name, entry.vals); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'thresholds' section in your .vitals.yaml.")
		}
	}
	if err := cfg.ThresholdSet().Validate(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"A single override is combined with the built-in default for the other bound. Set both.")
	}
	if err := validateRender(cfg.Render); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'render' section in your .vitals.yaml.")
	}
	return nil
}

func validateSource(src SourceConfig) error {
	if !src.Local {
		if strings.TrimSpace(src.URL) == "" {
			return fmt.Errorf("source.url is empty - set it to the backend address, e.g. http://nas:5000, or set source.local: true")
		}
		u, err := url.Parse(src.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("source.url '%s' needs to be an http:// or https:// URL", src.URL)
		}
	}
	if src.Timeout < 0 {
		return fmt.Errorf("source.timeout can't be negative")
	}
	if src.Retry.MaxAttempts < 0 {
		return fmt.Errorf("source.retry.max_attempts can't be negative (got %d)", src.Retry.MaxAttempts)
	}
	if src.Retry.MaxDelay > 0 && src.Retry.InitialDelay > src.Retry.MaxDelay {
		return fmt.Errorf("source.retry.initial_delay (%s) is longer than max_delay (%s)", src.Retry.InitialDelay, src.Retry.MaxDelay)
	}
	if strings.ContainsAny(src.SSH, " \t") {
		return fmt.Errorf("source.ssh '%s' contains whitespace - use a host, user@host or SSH config alias", src.SSH)
	}
	return nil
}

func validateDashboard(d DashboardConfig) error {
	if d.Interval < time.Second {
		return fmt.Errorf("dashboard.interval needs to be at least 1s (got %s)", d.Interval)
	}
	if d.RangeHours < 1 || d.RangeHours > 2160 {
		return fmt.Errorf("dashboard.range_hours needs to be 1-2160 (got %d)", d.RangeHours)
	}
	if d.HistorySize < 2 {
		return fmt.Errorf("dashboard.history_size needs to be at least 2 (got %d)", d.HistorySize)
	}
	if _, ok := render.PaletteByName(d.Skin); !ok {
		return fmt.Errorf("dashboard.skin '%s' isn't a known skin - pick one of: %s", d.Skin, strings.Join(render.PaletteNames(), ", "))
	}
	if d.Segments < 1 {
		return fmt.Errorf("dashboard.segments needs to be at least 1 (got %d)", d.Segments)
	}
	return nil
}

func validateThresholds(name string, thresh ThresholdValues) error {
	// Only validate if non-zero (0 means use default)
	if thresh.Warning < 0 || thresh.Warning > 100 {
		return fmt.Errorf("thresholds.%s.warning needs to be 0-100 (got %g)", name, thresh.Warning)
	}
	if thresh.Critical < 0 || thresh.Critical > 100 {
		return fmt.Errorf("thresholds.%s.critical needs to be 0-100 (got %g)", name, thresh.Critical)
	}
	if thresh.Warning > 0 && thresh.Critical > 0 && thresh.Warning >= thresh.Critical {
		return fmt.Errorf("thresholds.%s.warning (%g) is higher than critical (%g) - should be the other way around", name, thresh.Warning, thresh.Critical)
	}
	return nil
}

func validateRender(r RenderConfig) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("render.width and render.height need to be positive (got %dx%d)", r.Width, r.Height)
	}
	if r.Scale <= 0 {
		return fmt.Errorf("render.scale needs to be greater than 0 (got %g)", r.Scale)
	}
	if strings.TrimSpace(r.OutDir) == "" {
		return fmt.Errorf("render.out_dir is empty")
	}
	return nil
}
