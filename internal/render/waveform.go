package render

import (
	"image/color"
	"math"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

// Fixed auto-range bounds per series. The visible range always covers them
// so one outlier cannot flatten the rest of the trace.
var (
	TemperatureBounds = Bounds{Floor: 20, Ceiling: 100}
	PercentBounds     = Bounds{Floor: 0, Ceiling: 100}
	LoadBounds        = Bounds{Floor: 0, Ceiling: 1}
)

// Bounds are the minimum visible range of a waveform.
type Bounds struct {
	Floor, Ceiling float64
}

// BoundsFor returns the range bounds used for a series.
func BoundsFor(id metrics.SeriesID) Bounds {
	switch id {
	case metrics.SeriesTemperature:
		return TemperatureBounds
	case metrics.SeriesMemory:
		return PercentBounds
	default:
		return LoadBounds
	}
}

// Waveform is the input for DrawWaveform.
type Waveform struct {
	Samples   []metrics.Sample
	Bounds    Bounds
	Color     color.Color
	Label     string
	Unit      string
	Precision int
}

// WaveformRange returns [min(samples, floor), max(samples, ceiling)].
// Gaps are ignored.
func WaveformRange(samples []metrics.Sample, b Bounds) (lo, hi float64) {
	lo, hi = b.Floor, b.Ceiling
	for _, s := range samples {
		if !s.Value.Valid {
			continue
		}
		lo = math.Min(lo, s.Value.Value)
		hi = math.Max(hi, s.Value.Value)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// Runs splits samples into maximal runs of consecutive real values and
// returns their index ranges [start, end). A gap ends a run; nothing is
// interpolated across it.
func Runs(samples []metrics.Sample) [][2]int {
	var runs [][2]int
	start := -1
	for i, s := range samples {
		switch {
		case s.Value.Valid && start < 0:
			start = i
		case !s.Value.Valid && start >= 0:
			runs = append(runs, [2]int{start, i})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, [2]int{start, len(samples)})
	}
	return runs
}

func realCount(samples []metrics.Sample) int {
	n := 0
	for _, s := range samples {
		if s.Value.Valid {
			n++
		}
	}
	return n
}

// DrawWaveform draws a smoothed area and line chart of the samples, oldest
// on the left. With fewer than two real samples it draws a flat baseline at
// the single value, or at the floor when there is none.
func DrawWaveform(s Surface, pal Palette, wf Waveform) {
	w, h := s.Size()
	s.Clear(pal.Panel)
	if w <= 0 || h <= 0 {
		return
	}

	labelH := math.Min(h*0.2, 14)
	pad := math.Max(1, math.Min(w, h)*0.03)
	x0, x1 := pad, w-pad
	y0, y1 := labelH+pad, h-pad
	if y1 <= y0 {
		y0 = 0
	}

	lo, hi := WaveformRange(wf.Samples, wf.Bounds)
	yFor := func(v float64) float64 {
		return y1 - (v-lo)/(hi-lo)*(y1-y0)
	}

	for i := 1; i <= 3; i++ {
		gy := y0 + (y1-y0)*float64(i)/4
		s.Stroke(NewPath().MoveTo(x0, gy).LineTo(x1, gy), pal.Grid, 1)
	}

	lineColor := wf.Color
	if lineColor == nil {
		lineColor = pal.Temperature
	}
	areaColor := WithAlpha(lineColor, 0x40)

	caption := wf.Label
	if latest, ok := latestValue(wf.Samples); ok {
		caption += "  " + latest.Format(wf.Precision) + wf.Unit
	}

	if realCount(wf.Samples) < 2 {
		base := wf.Bounds.Floor
		if v, ok := latestValue(wf.Samples); ok {
			base = v.Value
		}
		y := yFor(base)
		s.Fill(NewPath().MoveTo(x0, y).LineTo(x1, y).LineTo(x1, y1).LineTo(x0, y1).Close(), areaColor)
		s.Stroke(NewPath().MoveTo(x0, y).LineTo(x1, y), lineColor, 1.5)
		drawCaption(s, pal, caption, pad, labelH)
		return
	}

	n := len(wf.Samples)
	xFor := func(i int) float64 {
		return x0 + (x1-x0)*float64(i)/float64(n-1)
	}

	for _, run := range Runs(wf.Samples) {
		pts := make([]Point, 0, run[1]-run[0])
		for i := run[0]; i < run[1]; i++ {
			pts = append(pts, Point{X: xFor(i), Y: yFor(wf.Samples[i].Value.Value)})
		}
		if len(pts) == 1 {
			// an isolated sample between gaps: a short tick, not a line to a neighbour
			tick := (x1 - x0) / float64(n) / 2
			s.Stroke(NewPath().MoveTo(pts[0].X-tick, pts[0].Y).LineTo(pts[0].X+tick, pts[0].Y), lineColor, 1.5)
			continue
		}

		line := smoothLine(pts)
		area := smoothLine(pts)
		area.LineTo(pts[len(pts)-1].X, y1).LineTo(pts[0].X, y1).Close()
		s.Fill(area, areaColor)
		s.Stroke(line, lineColor, 1.5)
	}

	drawCaption(s, pal, caption, pad, labelH)
}

// smoothLine passes a quadratic curve through the midpoints between samples.
// The curve stays inside the samples' bounding box, so it never overshoots
// the plotted range.
func smoothLine(pts []Point) *Path {
	p := NewPath().MoveTo(pts[0].X, pts[0].Y)
	if len(pts) == 2 {
		return p.LineTo(pts[1].X, pts[1].Y)
	}
	for i := 1; i < len(pts)-1; i++ {
		mid := Point{X: (pts[i].X + pts[i+1].X) / 2, Y: (pts[i].Y + pts[i+1].Y) / 2}
		p.QuadTo(pts[i].X, pts[i].Y, mid.X, mid.Y)
	}
	last := pts[len(pts)-1]
	return p.LineTo(last.X, last.Y)
}

func latestValue(samples []metrics.Sample) (metrics.Num, bool) {
	for i := len(samples) - 1; i >= 0; i-- {
		if samples[i].Value.Valid {
			return samples[i].Value, true
		}
	}
	return metrics.Num{}, false
}

func drawCaption(s Surface, pal Palette, caption string, pad, labelH float64) {
	if caption == "" {
		return
	}
	s.Text(pad, pad+labelH/2, caption, TextStyle{Color: pal.Text, Size: labelH * 0.8, Align: AlignLeft})
}
