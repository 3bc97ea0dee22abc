package render

import (
	"math"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

// HeatTile is the input for DrawHeatTile.
type HeatTile struct {
	Label   string
	Percent metrics.Num
	Status  metrics.Status
	Badge   Badge
	Caption string
}

// TileFillHeight returns the filled height of a tile of height h.
func TileFillHeight(percent, h float64) float64 {
	if math.IsNaN(percent) {
		return 0
	}
	return math.Min(math.Max(percent, 0), 100) / 100 * h
}

const tileGradientSteps = 6

// DrawHeatTile draws a tile filled from the bottom to the given percent.
// The unfilled part uses the palette's empty colour and the filled part the
// status colour, blended towards the empty colour near the fill line.
func DrawHeatTile(s Surface, pal Palette, t HeatTile) {
	w, h := s.Size()
	s.Clear(pal.Panel)
	if w <= 0 || h <= 0 {
		return
	}

	s.Fill(Rect(0, 0, w, h), pal.Empty)

	if t.Percent.Valid {
		fillH := TileFillHeight(t.Percent.Value, h)
		top := h - fillH
		status := pal.Status(t.Status)
		band := math.Min(fillH, h*0.25)

		if solid := fillH - band; solid > 0 {
			s.Fill(Rect(0, h-solid, w, solid), status)
		}
		step := band / tileGradientSteps
		for i := 0; i < tileGradientSteps && step > 0; i++ {
			// i = 0 is the strip touching the fill line
			mix := 0.5 * float64(tileGradientSteps-i) / tileGradientSteps
			s.Fill(Rect(0, top+float64(i)*step, w, step), Mix(status, pal.Empty, mix))
		}
	}

	size := math.Min(w, h)
	s.Text(w/2, h/2, t.Percent.Format(0)+"%", TextStyle{Color: pal.Text, Size: size * 0.22, Align: AlignCenter})
	if t.Label != "" {
		s.Text(size*0.06, size*0.1, t.Label, TextStyle{Color: pal.Text, Size: size * 0.13, Align: AlignLeft})
	}
	if t.Caption != "" {
		s.Text(w/2, h-size*0.1, t.Caption, TextStyle{Color: pal.Muted, Size: size * 0.11, Align: AlignCenter})
	}

	if t.Badge != BadgeNone {
		r := size * 0.11
		cx, cy := w-r*1.4, r*1.4
		s.Fill(NewPath().Arc(cx, cy, r, 0, 360).Close(), pal.Badge(t.Badge))
		s.Text(cx, cy, t.Badge.Glyph(), TextStyle{Color: pal.Background, Size: r * 1.4, Align: AlignCenter})
	}
}
