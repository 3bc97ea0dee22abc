package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/dashboard"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/render"
	"github.com/rileyhilliard/vitals/internal/source"
	"github.com/rileyhilliard/vitals/internal/ui"
)

// Charts need room for the title and axes whatever the widget size.
const (
	minChartWidth  = 640
	minChartHeight = 320
)

var (
	renderOutFlag   string
	renderHoursFlag int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the dashboard widgets as PNG files",
	Long: `Run one historical and one live cycle and write every widget to a PNG
file: gauges, waveforms, memory and disk bars, disk and container tiles,
plus full-window time-series charts.

Examples:
  vitals render
  vitals render --out ./shots --hours 168`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if renderOutFlag != "" {
			cfg.Render.OutDir = config.ExpandTilde(renderOutFlag)
		}
		if renderHoursFlag != 0 {
			cfg.Dashboard.RangeHours = renderHoursFlag
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		return renderCommand(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderOutFlag, "out", "", "output directory, overrides render.out_dir")
	renderCmd.Flags().IntVar(&renderHoursFlag, "hours", 0, "history window in hours")
	rootCmd.AddCommand(renderCmd)
}

// rasterSet owns the raster surfaces of one render run, keyed by the
// file name they are written to.
type rasterSet struct {
	width, height int
	scale         float64
	surfaces      map[string]*render.Raster
	err           error
}

func newRasterSet(cfg config.RenderConfig) *rasterSet {
	return &rasterSet{
		width:    cfg.Width,
		height:   cfg.Height,
		scale:    cfg.Scale,
		surfaces: make(map[string]*render.Raster),
	}
}

// get returns the surface for name, creating it at w x h logical units.
// Creation failures are kept for write to report.
func (r *rasterSet) get(name string, w, h int) render.Surface {
	if s, ok := r.surfaces[name]; ok {
		return s
	}
	s, err := render.NewRaster(w, h, r.scale)
	if err != nil {
		if r.err == nil {
			r.err = errors.WrapWithCode(err, errors.ErrRender, "Cannot allocate "+name, "")
		}
		return nil
	}
	r.surfaces[name] = s
	return s
}

func (r *rasterSet) bindings(charts render.ChartSink) dashboard.Bindings {
	w, h := r.width, r.height
	wide := 2 * w
	bar := max(h/5, 24)
	tile := max(h*3/5, 48)

	return dashboard.Bindings{
		TemperatureGauge: r.get("gauge-temperature", w, h),
		MemoryGauge:      r.get("gauge-memory", w, h),
		MemoryBar:        r.get("bar-memory", wide, bar),
		TemperatureWave:  r.get("wave-temperature", wide, h),
		LoadWave:         r.get("wave-load", wide, h),
		MemoryWave:       r.get("wave-memory", wide, h),
		Disk: func(mount string) render.Surface {
			return r.get("bar-disk-"+slug(mount), wide, bar)
		},
		DiskTile: func(mount string) render.Surface {
			return r.get("tile-disk-"+slug(mount), tile, tile)
		},
		Container: func(name string) render.Surface {
			return r.get("tile-container-"+slug(name), tile, tile)
		},
		Charts: charts,
	}
}

// write encodes every surface as dir/<name>.png in name order.
func (r *rasterSet) write(dir string) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	names := make([]string, 0, len(r.surfaces))
	for name := range r.surfaces {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name+".png")
		if err := writePNG(path, r.surfaces[name]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(path string, s *render.Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Cannot create "+path, "Check that the output directory is writable")
	}
	defer f.Close()
	if err := s.WritePNG(f); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender, "Cannot encode "+path, "")
	}
	return nil
}

// slug turns a mount point or container name into a file name part.
func slug(s string) string {
	s = strings.Trim(s, "/")
	if s == "" {
		return "root"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, s)
}

func renderCommand(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dir := cfg.Render.OutDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Cannot create output directory "+dir, "Check the path in render.out_dir")
	}

	src, err := source.Open(ctx, cfg.Source, logger.NewEnvLogger("[source]"))
	if err != nil {
		return err
	}
	defer src.Close()

	pal := skin(cfg)
	rasters := newRasterSet(cfg.Render)
	charts := &render.PNGCharts{
		Dir:     dir,
		Width:   max(chartPixels(2*cfg.Render.Width, cfg.Render.Scale), minChartWidth),
		Height:  max(chartPixels(cfg.Render.Height, cfg.Render.Scale), minChartHeight),
		Palette: pal,
	}

	orch := newOrchestrator(cfg, src, pal, logger.NewEnvLogger("[render]"), nil)
	orch.Initialize(ctx, rasters.bindings(charts))
	st := orch.State()

	written, err := rasters.write(dir)
	written = append(written, charts.Written()...)
	for _, path := range written {
		fmt.Fprintf(out, "%s %s\n", ui.SymbolSuccess, path)
	}
	if err != nil {
		return err
	}

	if st.HistoryErr != nil {
		fmt.Fprintf(out, "%s history incomplete: %s\n", ui.SymbolFail, firstLine(st.HistoryErr))
	}
	if st.Err != nil {
		return st.Err
	}
	return nil
}

func chartPixels(logical int, scale float64) int {
	return int(float64(logical) * max(scale, 1))
}

func firstLine(err error) string {
	line, _, _ := strings.Cut(err.Error(), "\n")
	return strings.TrimSpace(strings.TrimPrefix(line, ui.SymbolFail))
}
