package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// series builds samples one minute apart; nil entries are gaps.
func series(values ...interface{}) []metrics.Sample {
	out := make([]metrics.Sample, len(values))
	for i, v := range values {
		at := t0.Add(time.Duration(i) * time.Minute)
		switch n := v.(type) {
		case nil:
			out[i] = metrics.Gap(at)
		case int:
			out[i] = metrics.At(at, float64(n))
		case float64:
			out[i] = metrics.At(at, n)
		}
	}
	return out
}

func TestWaveformRange(t *testing.T) {
	tests := []struct {
		name    string
		samples []metrics.Sample
		bounds  Bounds
		lo, hi  float64
	}{
		{"inside bounds", series(40, 60), TemperatureBounds, 20, 100},
		{"above ceiling", series(40, 120), TemperatureBounds, 20, 120},
		{"below floor", series(5, 60), TemperatureBounds, 5, 100},
		{"no samples", nil, TemperatureBounds, 20, 100},
		{"gaps ignored", series(nil, 50, nil), PercentBounds, 0, 100},
		{"load grows past one", series(0.2, 3.5), LoadBounds, 0, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := WaveformRange(tt.samples, tt.bounds)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestRuns(t *testing.T) {
	tests := []struct {
		name    string
		samples []metrics.Sample
		want    [][2]int
	}{
		{"all real", series(1, 2, 3), [][2]int{{0, 3}}},
		{"gap in middle", series(1, 2, nil, 3, 4), [][2]int{{0, 2}, {3, 5}}},
		{"leading and trailing gaps", series(nil, 1, 2, nil), [][2]int{{1, 3}}},
		{"isolated sample", series(1, nil, 2, 3), [][2]int{{0, 1}, {2, 4}}},
		{"zero is real", series(0, 0), [][2]int{{0, 2}}},
		{"only gaps", series(nil, nil), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Runs(tt.samples))
		})
	}
}

func strokesOf(rec *Recorder, c interface{}) []Op {
	var out []Op
	for _, op := range rec.Filter(OpStroke) {
		if op.Color == c {
			out = append(out, op)
		}
	}
	return out
}

func TestDrawWaveform_GapBreaksLine(t *testing.T) {
	rec := NewRecorder(200, 100, 1)
	DrawWaveform(rec, Synthwave, Waveform{
		Samples: series(10, 20, nil, 30, 40),
		Bounds:  PercentBounds,
		Color:   Synthwave.Memory,
	})

	lines := strokesOf(rec, Synthwave.Memory)
	require.Len(t, lines, 2, "one line per run")
	assert.Len(t, rec.Filter(OpFill), 2, "one area per run")

	_, firstMax := lines[0].Path.Bounds()
	secondMin, _ := lines[1].Path.Bounds()
	assert.Less(t, firstMax.X, secondMin.X, "nothing is drawn across the gap")
}

func TestDrawWaveform_IsolatedSampleIsTick(t *testing.T) {
	rec := NewRecorder(200, 100, 1)
	DrawWaveform(rec, Synthwave, Waveform{
		Samples: series(50, nil, nil, 50),
		Bounds:  PercentBounds,
		Color:   Synthwave.Memory,
	})

	lines := strokesOf(rec, Synthwave.Memory)
	require.Len(t, lines, 2)
	assert.Empty(t, rec.Filter(OpFill))

	// gaps are never drawn at zero: no point reaches the bottom of the plot
	_, h := rec.Size()
	for _, l := range lines {
		_, maxPt := l.Path.Bounds()
		assert.Less(t, maxPt.Y, h*0.9)
	}
}

func TestDrawWaveform_ZeroIsDrawnAtZero(t *testing.T) {
	rec := NewRecorder(200, 100, 1)
	DrawWaveform(rec, Synthwave, Waveform{
		Samples: series(0, 0, 0, 0),
		Bounds:  PercentBounds,
		Color:   Synthwave.Memory,
	})

	lines := strokesOf(rec, Synthwave.Memory)
	require.Len(t, lines, 1)

	// pad is 3% of the shorter side, so the zero line sits at 100 - 3
	for _, pt := range lines[0].Path.Subpaths()[0].Points {
		assert.InDelta(t, 97.0, pt.Y, 1e-9)
	}
}

func TestDrawWaveform_SyntheticBaseline(t *testing.T) {
	tests := []struct {
		name    string
		samples []metrics.Sample
		bounds  Bounds
		wantY   float64
	}{
		// plot spans y 17..97 (label 14, pad 3) over 0..100
		{"single sample", series(50), PercentBounds, 57},
		{"no samples sits at floor", nil, TemperatureBounds, 97},
		{"one real among gaps", series(nil, 25, nil), PercentBounds, 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder(200, 100, 1)
			DrawWaveform(rec, Classic, Waveform{Samples: tt.samples, Bounds: tt.bounds, Color: Classic.Memory})

			lines := strokesOf(rec, Classic.Memory)
			require.Len(t, lines, 1)
			pts := lines[0].Path.Subpaths()[0].Points
			require.Len(t, pts, 2)
			assert.InDelta(t, tt.wantY, pts[0].Y, 1e-9)
			assert.InDelta(t, pts[0].Y, pts[1].Y, 1e-9, "baseline is flat")
			assert.Len(t, rec.Filter(OpFill), 1)
		})
	}
}

func TestDrawWaveform_Caption(t *testing.T) {
	rec := NewRecorder(200, 100, 1)
	DrawWaveform(rec, Synthwave, Waveform{
		Samples:   series(38.2, 41.75, nil),
		Bounds:    TemperatureBounds,
		Label:     "CPU TEMP",
		Unit:      "°C",
		Precision: 1,
	})

	assert.Equal(t, []string{"CPU TEMP  41.8°C"}, rec.Texts())
	assert.Len(t, strokesOf(rec, Synthwave.Temperature), 1, "default line colour")
}

func TestDrawWaveform_SmoothLineStaysInRange(t *testing.T) {
	rec := NewRecorder(300, 120, 1)
	DrawWaveform(rec, Synthwave, Waveform{
		Samples: series(0, 100, 0, 100, 0),
		Bounds:  PercentBounds,
		Color:   Synthwave.Memory,
	})

	lines := strokesOf(rec, Synthwave.Memory)
	require.Len(t, lines, 1)
	minPt, maxPt := lines[0].Path.Bounds()
	assert.GreaterOrEqual(t, minPt.Y, 17.0-1e-9)
	assert.LessOrEqual(t, maxPt.Y, 117.0+1e-9)
}
