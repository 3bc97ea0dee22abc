package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/dashboard"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/render"
	"github.com/rileyhilliard/vitals/internal/source"
)

// debugLogFile receives log output while the dashboard owns the terminal.
const debugLogFile = "vitals-debug.log"

var (
	dashIntervalFlag string
	dashRangeFlag    int
	dashSkinFlag     string
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"watch"},
	Short:   "Full-screen telemetry dashboard",
	Long: `Start the terminal dashboard. It refreshes the live snapshot every
interval and loads the history window on start and on range changes.

Keyboard shortcuts:
  r           Refresh now
  t           Cycle time range (1h, 6h, 24h, 3d, 7d, 30d)
  up/k        Scroll tables up
  down/j      Scroll tables down
  ?           Show help
  q / Ctrl+C  Quit

Examples:
  vitals dashboard
  vitals watch --url http://nas:5000
  vitals dashboard --interval 30s --range 72 --skin classic`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context())
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashIntervalFlag, "interval", "", "live refresh interval (e.g., 30s, 1m)")
	dashboardCmd.Flags().IntVar(&dashRangeFlag, "range", 0, "initial history window in hours")
	dashboardCmd.Flags().StringVar(&dashSkinFlag, "skin", "", "color palette (synthwave, classic)")
	rootCmd.AddCommand(dashboardCmd)
}

func dashboardCommand(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyDashboardFlags(cfg); err != nil {
		return err
	}

	// Log lines would corrupt the alt screen.
	if logger.DebugEnabled() {
		f, err := tea.LogToFile(debugLogFile, "vitals")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot open "+debugLogFile, "Unset "+logger.DebugEnv+" or run from a writable directory")
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	src, err := source.Open(ctx, cfg.Source, logger.NewEnvLogger("[source]"))
	if err != nil {
		return err
	}
	defer src.Close()

	pal := skin(cfg)
	notifier := dashboard.NewNotifier()
	orch := newOrchestrator(cfg, src, pal, logger.NewEnvLogger("[dashboard]"), notifier.Notify)

	p := tea.NewProgram(dashboard.NewModel(orch, notifier, pal), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// applyDashboardFlags layers the dashboard flags over the config and
// re-validates the result.
func applyDashboardFlags(cfg *config.Config) error {
	if dashIntervalFlag != "" {
		d, err := time.ParseDuration(dashIntervalFlag)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid interval: %s", dashIntervalFlag),
				"Use a valid duration like 30s, 1m, or 5m")
		}
		cfg.Dashboard.Interval = d
	}
	if dashRangeFlag != 0 {
		cfg.Dashboard.RangeHours = dashRangeFlag
	}
	if dashSkinFlag != "" {
		cfg.Dashboard.Skin = dashSkinFlag
	}
	return config.Validate(cfg)
}

// newOrchestrator wires an orchestrator from the resolved config.
func newOrchestrator(cfg *config.Config, src source.Source, pal render.Palette, log logger.Logger, onChange func()) *dashboard.Orchestrator {
	return dashboard.New(dashboard.Options{
		Source:      src,
		Palette:     pal,
		Thresholds:  cfg.ThresholdSet(),
		HistorySize: cfg.Dashboard.HistorySize,
		RangeHours:  cfg.Dashboard.RangeHours,
		Interval:    cfg.Dashboard.Interval,
		Segments:    cfg.Dashboard.Segments,
		Logger:      log,
		OnChange:    onChange,
	})
}

// skin resolves the configured palette. Validate has already rejected
// unknown names.
func skin(cfg *config.Config) render.Palette {
	if pal, ok := render.PaletteByName(cfg.Dashboard.Skin); ok {
		return pal
	}
	return render.Synthwave
}
