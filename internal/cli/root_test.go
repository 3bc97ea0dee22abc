package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/vitals/internal/config"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unknown command error", errors.New(`unknown command "foo" for "vitals"`), true},
		{"unknown flag error", errors.New(`unknown flag: --foo`), true},
		{"other error", errors.New("connection failed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"standard cobra format", errors.New(`unknown command "foo" for "vitals"`), "foo"},
		{"command with hyphen", errors.New(`unknown command "my-cmd" for "vitals"`), "my-cmd"},
		{"no quotes returns empty", errors.New("unknown command foo"), ""},
		{"single quote returns empty", errors.New(`unknown command "foo`), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	defer func() { urlFlag, localFlag = "", false }()

	tests := []struct {
		name      string
		url       string
		local     bool
		start     config.SourceConfig
		wantURL   string
		wantLocal bool
	}{
		{
			name:    "no flags keeps config",
			start:   config.SourceConfig{URL: "http://nas:5000"},
			wantURL: "http://nas:5000",
		},
		{
			name:    "url replaces config and leaves local mode",
			url:     "http://other:5000",
			start:   config.SourceConfig{URL: "http://nas:5000", Local: true},
			wantURL: "http://other:5000",
		},
		{
			name:      "local flag",
			local:     true,
			start:     config.SourceConfig{URL: "http://nas:5000"},
			wantURL:   "http://nas:5000",
			wantLocal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urlFlag, localFlag = tt.url, tt.local
			cfg := config.DefaultConfig()
			cfg.Source = tt.start

			applyFlagOverrides(cfg)
			assert.Equal(t, tt.wantURL, cfg.Source.URL)
			assert.Equal(t, tt.wantLocal, cfg.Source.Local)
		})
	}
}

func TestRunExitCodes(t *testing.T) {
	assert.Equal(t, 0, run([]string{"version", "--short"}))
	assert.Equal(t, 1, run([]string{"frobnicate"}))
}

func TestApplyDashboardFlags(t *testing.T) {
	defer func() { dashIntervalFlag, dashRangeFlag, dashSkinFlag = "", 0, "" }()

	dashIntervalFlag, dashRangeFlag, dashSkinFlag = "30s", 72, "classic"
	cfg := config.DefaultConfig()
	assert.NoError(t, applyDashboardFlags(cfg))
	assert.Equal(t, "30s", cfg.Dashboard.Interval.String())
	assert.Equal(t, 72, cfg.Dashboard.RangeHours)
	assert.Equal(t, "classic", skin(cfg).Name)

	dashIntervalFlag = "soon"
	assert.Error(t, applyDashboardFlags(config.DefaultConfig()))

	dashIntervalFlag, dashSkinFlag = "", "vaporwave"
	assert.Error(t, applyDashboardFlags(config.DefaultConfig()))
}
