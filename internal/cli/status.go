package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/dashboard"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/metrics"
	"github.com/rileyhilliard/vitals/internal/source"
	"github.com/rileyhilliard/vitals/internal/ui"
)

// ExitCritical is returned by status when any metric is critical.
const ExitCritical = 2

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current classified metrics",
	Long: `Fetch one live snapshot and print every classified metric: CPU
temperature, memory, each disk and each container.

Exits with status 2 when any metric is critical, so it can gate scripts
and cron jobs.

Examples:
  vitals status
  vitals status --url http://nas:5000 --no-color`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return statusCommand(cmd.Context(), cfg, cmd.OutOrStdout(), stdoutIsTerminal())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusCommand(ctx context.Context, cfg *config.Config, out io.Writer, interactive bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	src, err := source.Open(ctx, cfg.Source, logger.NewEnvLogger("[source]"))
	if err != nil {
		return err
	}
	defer src.Close()

	orch := newOrchestrator(cfg, src, skin(cfg), logger.NewEnvLogger("[status]"), nil)

	var spinner *ui.Spinner
	if interactive {
		spinner = ui.NewSpinner("Fetching snapshot from " + describeSource(cfg.Source))
		spinner.SetOutput(func(s string) { fmt.Fprint(out, s) })
		spinner.Start()
	}
	err = orch.RefreshNow(ctx)
	if spinner != nil {
		if err != nil {
			spinner.Fail()
		} else {
			spinner.Success()
		}
	}
	if err != nil {
		return err
	}

	st := orch.State()
	levels := st.Levels()

	fmt.Fprint(out, ui.RenderHeader(ui.HeaderInfo{Version: formatVersion(version), Source: describeSource(cfg.Source)}))
	fmt.Fprint(out, ui.RenderLevelTable(levelRows(levels)))

	if dashboard.Worst(levels) == metrics.StatusCritical {
		return errors.NewExitError(ExitCritical)
	}
	return nil
}

func levelRows(levels []dashboard.Level) []ui.LevelRow {
	rows := make([]ui.LevelRow, 0, len(levels))
	for _, l := range levels {
		prec := 1
		if l.Kind == metrics.KindDisk {
			prec = 0
		}
		rows = append(rows, ui.LevelRow{
			Name:      l.Name,
			Value:     l.Value.Format(prec) + l.Unit,
			Status:    l.Status,
			Available: l.Available(),
			Detail:    l.Reason,
		})
	}
	return rows
}

// describeSource names where telemetry comes from, for headers and spinners.
func describeSource(src config.SourceConfig) string {
	switch {
	case src.Local:
		return "this machine"
	case src.SSH != "":
		return strings.TrimRight(src.URL, "/") + " via " + src.SSH
	default:
		return strings.TrimRight(src.URL, "/")
	}
}
