package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/metrics"
)

// ChartSeries is one named line of a time-series chart.
type ChartSeries struct {
	ID      metrics.SeriesID
	Name    string
	Samples []metrics.Sample
}

// TimeChart is a multi-series line chart over a time window.
type TimeChart struct {
	Key    string
	Title  string
	Unit   string
	Bounds Bounds
	Hours  int
	Series []ChartSeries
}

// ChartSink receives time-series charts to display or export.
type ChartSink interface {
	Plot(c TimeChart) error
}

// AxisFormat returns the time label layout for a window: clock time up to
// a day, calendar dates beyond that.
func AxisFormat(hours int) string {
	if hours <= 24 {
		return "15:04"
	}
	return "Jan 2"
}

// BuildChart converts a TimeChart into a go-chart definition. Gaps split a
// series into separate line segments.
func BuildChart(c TimeChart, pal Palette, width, height int) chart.Chart {
	var series []chart.Series
	var all []metrics.Sample
	for _, s := range c.Series {
		all = append(all, s.Samples...)
		style := chart.Style{
			StrokeColor: pal.Series(s.ID),
			StrokeWidth: 2,
		}
		if len(c.Series) == 1 {
			style.FillColor = WithAlpha(pal.Series(s.ID), 0x30)
		}
		for _, run := range Runs(s.Samples) {
			seg := s.Samples[run[0]:run[1]]
			xs := make([]time.Time, 0, len(seg)+1)
			ys := make([]float64, 0, len(seg)+1)
			for _, p := range seg {
				xs = append(xs, p.Time.Local())
				ys = append(ys, p.Value.Value)
			}
			// go-chart needs two points per series
			if len(seg) == 1 {
				xs = append(xs, seg[0].Time.Local().Add(time.Second))
				ys = append(ys, seg[0].Value.Value)
			}
			series = append(series, chart.TimeSeries{Name: s.Name, XValues: xs, YValues: ys, Style: style})
		}
	}

	lo, hi := WaveformRange(all, c.Bounds)
	if len(series) == 0 {
		end := time.Now()
		start := end.Add(-time.Duration(maxInt(c.Hours, 1)) * time.Hour)
		series = append(series, chart.TimeSeries{
			Name:    "no data",
			XValues: []time.Time{start, end},
			YValues: []float64{c.Bounds.Floor, c.Bounds.Floor},
			Style:   chart.Style{StrokeColor: pal.Muted, StrokeWidth: 1},
		})
	}

	axisStyle := chart.Style{FontColor: pal.Muted, StrokeColor: pal.Grid}
	return chart.Chart{
		Title:      chartTitle(c),
		TitleStyle: chart.Style{FontColor: pal.Text},
		Width:      width,
		Height:     height,
		Background: chart.Style{FillColor: pal.Background, Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Canvas:     chart.Style{FillColor: pal.Panel},
		XAxis: chart.XAxis{
			Style:          axisStyle,
			ValueFormatter: chart.TimeValueFormatterWithFormat(AxisFormat(c.Hours)),
		},
		YAxis: chart.YAxis{
			Name:  c.Unit,
			Style: axisStyle,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
}

func chartTitle(c TimeChart) string {
	if len(c.Series) < 2 {
		return c.Title
	}
	names := make([]string, len(c.Series))
	for i, s := range c.Series {
		names[i] = s.Name
	}
	return fmt.Sprintf("%s (%s)", c.Title, strings.Join(names, " / "))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// RenderChartPNG writes a chart as PNG.
func RenderChartPNG(w io.Writer, c TimeChart, pal Palette, width, height int) error {
	ch := BuildChart(c, pal, width, height)
	if err := ch.Render(chart.PNG, w); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			fmt.Sprintf("Cannot render %s chart", c.Key), "")
	}
	return nil
}

// PNGCharts is a ChartSink that writes one PNG file per chart key.
type PNGCharts struct {
	Dir     string
	Width   int
	Height  int
	Palette Palette
	written []string
}

// Plot writes Dir/<key>.png.
func (p *PNGCharts) Plot(c TimeChart) error {
	path := filepath.Join(p.Dir, "chart-"+c.Key+".png")
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Cannot create chart file "+path, "Check that the output directory is writable")
	}
	defer f.Close()

	if err := RenderChartPNG(f, c, p.Palette, p.Width, p.Height); err != nil {
		return err
	}
	p.written = append(p.written, path)
	return nil
}

// Written lists the files produced so far.
func (p *PNGCharts) Written() []string {
	return p.written
}
