package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

func TestAxisFormat(t *testing.T) {
	assert.Equal(t, "15:04", AxisFormat(1))
	assert.Equal(t, "15:04", AxisFormat(24))
	assert.Equal(t, "Jan 2", AxisFormat(25))
	assert.Equal(t, "Jan 2", AxisFormat(720))
}

func TestBuildChart_SplitsAtGaps(t *testing.T) {
	c := TimeChart{
		Key:    "temperature",
		Title:  "CPU Temperature",
		Bounds: TemperatureBounds,
		Hours:  6,
		Series: []ChartSeries{{ID: metrics.SeriesTemperature, Name: "cpu", Samples: series(40, 42, nil, 45, nil, 47)}},
	}

	ch := BuildChart(c, Synthwave, 800, 300)
	require.Len(t, ch.Series, 3)

	last, ok := ch.Series[2].(chart.TimeSeries)
	require.True(t, ok)
	assert.Len(t, last.XValues, 2, "a lone point is padded to a segment")
	assert.Equal(t, []float64{47, 47}, last.YValues)

	assert.Equal(t, "CPU Temperature", ch.Title)
	assert.Equal(t, 20.0, ch.YAxis.Range.GetMin())
	assert.Equal(t, 100.0, ch.YAxis.Range.GetMax())
}

func TestBuildChart_MultiSeriesTitle(t *testing.T) {
	c := TimeChart{
		Key:    "load",
		Title:  "Load",
		Bounds: LoadBounds,
		Hours:  48,
		Series: []ChartSeries{
			{ID: metrics.SeriesLoad1, Name: "1m", Samples: series(0.5, 2.5)},
			{ID: metrics.SeriesLoad5, Name: "5m", Samples: series(0.4, 1.5)},
			{ID: metrics.SeriesLoad15, Name: "15m", Samples: series(0.3, 1.0)},
		},
	}

	ch := BuildChart(c, Classic, 800, 300)
	assert.Len(t, ch.Series, 3)
	assert.Equal(t, "Load (1m / 5m / 15m)", ch.Title)
	assert.Equal(t, 2.5, ch.YAxis.Range.GetMax())

	first := ch.Series[0].(chart.TimeSeries)
	assert.Equal(t, Classic.Load1, first.Style.StrokeColor)
	assert.True(t, first.Style.FillColor.IsZero(), "no area fill when several series overlap")
}

func TestBuildChart_NoData(t *testing.T) {
	ch := BuildChart(TimeChart{Key: "memory", Bounds: PercentBounds, Hours: 1}, Synthwave, 400, 200)
	require.Len(t, ch.Series, 1)
	assert.Equal(t, "no data", ch.Series[0].GetName())
}

func TestRenderChartPNG(t *testing.T) {
	c := TimeChart{
		Key:    "memory",
		Title:  "Memory",
		Unit:   "%",
		Bounds: PercentBounds,
		Hours:  1,
		Series: []ChartSeries{{ID: metrics.SeriesMemory, Name: "used", Samples: series(41, 43, 44, 40)}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderChartPNG(&buf, c, Synthwave, 640, 240))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestPNGCharts_Plot(t *testing.T) {
	dir := t.TempDir()
	sink := &PNGCharts{Dir: dir, Width: 640, Height: 240, Palette: Classic}

	err := sink.Plot(TimeChart{
		Key:    "temperature",
		Title:  "CPU Temperature",
		Bounds: TemperatureBounds,
		Hours:  24,
		Series: []ChartSeries{{ID: metrics.SeriesTemperature, Name: "cpu", Samples: series(50, 52, 51)}},
	})
	require.NoError(t, err)

	want := filepath.Join(dir, "chart-temperature.png")
	assert.Equal(t, []string{want}, sink.Written())
	info, err := os.Stat(want)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPNGCharts_BadDir(t *testing.T) {
	sink := &PNGCharts{Dir: filepath.Join(t.TempDir(), "missing"), Width: 100, Height: 100, Palette: Classic}
	err := sink.Plot(TimeChart{Key: "memory", Bounds: PercentBounds, Hours: 1})
	require.Error(t, err)
	assert.Empty(t, sink.Written())
}
