package render

import (
	"math"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

// Arc gauge geometry in degrees. The arc leaves a 90° opening at the bottom.
const (
	GaugeStart = 135.0
	GaugeSweep = 270.0
	GaugeTicks = 11
)

// Gauge is the input for DrawGauge.
type Gauge struct {
	Value     metrics.Num
	Max       float64
	Status    metrics.Status
	Label     string
	Unit      string
	Precision int
}

// GaugeFraction clamps value into [0, max] and returns it as a fraction of max.
func GaugeFraction(value, max float64) float64 {
	if max <= 0 || math.IsNaN(value) {
		return 0
	}
	return math.Min(math.Max(value, 0), max) / max
}

// GaugeAngle returns the end angle of the filled arc for value.
func GaugeAngle(value, max float64) float64 {
	return GaugeStart + GaugeSweep*GaugeFraction(value, max)
}

// DrawGauge draws a 270° arc gauge. The fill never passes the arc ends; the
// centre label shows the reading as delivered.
func DrawGauge(s Surface, pal Palette, g Gauge) {
	w, h := s.Size()
	s.Clear(pal.Panel)

	size := math.Min(w, h)
	if size <= 0 {
		return
	}
	thickness := size * 0.09
	r := size/2 - thickness
	cx, cy := w/2, h/2+r*0.08

	s.Stroke(NewPath().Arc(cx, cy, r, GaugeStart, GaugeSweep), pal.Track, thickness)

	for i := 0; i < GaugeTicks; i++ {
		angle := GaugeStart + GaugeSweep*float64(i)/float64(GaugeTicks-1)
		inner := Polar(cx, cy, r-thickness*1.1, angle)
		outer := Polar(cx, cy, r-thickness*0.7, angle)
		s.Stroke(NewPath().MoveTo(inner.X, inner.Y).LineTo(outer.X, outer.Y), pal.Muted, math.Max(1, thickness*0.15))
	}

	valueText := "--"
	if g.Value.Valid {
		if frac := GaugeFraction(g.Value.Value, g.Max); frac > 0 {
			s.Stroke(NewPath().Arc(cx, cy, r, GaugeStart, GaugeSweep*frac), pal.Status(g.Status), thickness)
		}
		valueText = g.Value.Format(g.Precision) + g.Unit
	}

	s.Text(cx, cy, valueText, TextStyle{Color: pal.Text, Size: size * 0.16, Align: AlignCenter})
	if g.Label != "" {
		s.Text(cx, cy+r*0.72, g.Label, TextStyle{Color: pal.Muted, Size: size * 0.09, Align: AlignCenter})
	}
}
