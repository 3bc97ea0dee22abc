package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/vitals/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".vitals.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/vitals"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. VITALS_SOURCE_URL.
	EnvPrefix = "VITALS"
)

// Load reads config from path, layered over the defaults and under
// VITALS_* environment variables. An empty path loads defaults and
// environment only.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'vitals init' to create a config file, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+displayPath(path))
	}
	cfg.Render.OutDir = ExpandTilde(cfg.Render.OutDir)
	return cfg, nil
}

// LoadOrDefault finds and loads the config, or returns defaults (with
// environment overrides) when there is no config file.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// newViper registers every key with its default so that environment
// variables are picked up by Unmarshal even when the file omits them.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("source.url", def.Source.URL)
	v.SetDefault("source.timeout", def.Source.Timeout)
	v.SetDefault("source.ssh", def.Source.SSH)
	v.SetDefault("source.local", def.Source.Local)
	v.SetDefault("source.retry.max_attempts", def.Source.Retry.MaxAttempts)
	v.SetDefault("source.retry.initial_delay", def.Source.Retry.InitialDelay)
	v.SetDefault("source.retry.max_delay", def.Source.Retry.MaxDelay)
	v.SetDefault("dashboard.interval", def.Dashboard.Interval)
	v.SetDefault("dashboard.range_hours", def.Dashboard.RangeHours)
	v.SetDefault("dashboard.history_size", def.Dashboard.HistorySize)
	v.SetDefault("dashboard.skin", def.Dashboard.Skin)
	v.SetDefault("dashboard.segments", def.Dashboard.Segments)
	for _, kind := range []string{"temperature", "memory", "disk"} {
		v.SetDefault("thresholds."+kind+".warning", 0)
		v.SetDefault("thresholds."+kind+".critical", 0)
	}
	v.SetDefault("render.out_dir", def.Render.OutDir)
	v.SetDefault("render.width", def.Render.Width)
	v.SetDefault("render.height", def.Render.Height)
	v.SetDefault("render.scale", def.Render.Scale)
	return v
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .vitals.yaml in current directory
// 3. ~/.config/vitals/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}
	if local := filepath.Join(cwd, ConfigFileName); fileExists(local) {
		return local, nil
	}

	if global := GlobalPath(); global != "" && fileExists(global) {
		return global, nil
	}
	return "", nil
}

// GlobalPath returns ~/.config/vitals/config.yaml, or "" without a home.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func displayPath(path string) string {
	if path == "" {
		return "the environment"
	}
	return path
}
