package render

import (
	"math"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

// DefaultSegments is the default number of cells in a segmented bar.
const DefaultSegments = 24

// Band is the colour zone of a segmented bar cell. Bands come from the
// cell's position in the bar and are unrelated to threshold classification.
type Band int

const (
	BandLow Band = iota
	BandMid
	BandHigh
)

// BandFor returns the zone of cell i in an n-cell bar: below 0.6 of the way
// along is low, below 0.85 is mid, the rest is high.
func BandFor(i, n int) Band {
	if n <= 0 {
		return BandLow
	}
	ratio := float64(i) / float64(n)
	switch {
	case ratio < 0.6:
		return BandLow
	case ratio < 0.85:
		return BandMid
	default:
		return BandHigh
	}
}

// FilledCells returns round(percent/100 * n), with percent clamped to 0-100.
func FilledCells(percent float64, n int) int {
	if n <= 0 || math.IsNaN(percent) {
		return 0
	}
	p := math.Min(math.Max(percent, 0), 100)
	return int(math.Round(p / 100 * float64(n)))
}

// SegmentedBar is the input for DrawSegmentedBar.
type SegmentedBar struct {
	Percent metrics.Num
	Cells   int
	Label   string
}

// DrawSegmentedBar draws a row of cells. Cell i is lit when i < filled and
// takes the colour of its own band.
func DrawSegmentedBar(s Surface, pal Palette, b SegmentedBar) {
	w, h := s.Size()
	s.Clear(pal.Panel)
	if w <= 0 || h <= 0 {
		return
	}

	n := b.Cells
	if n <= 0 {
		n = DefaultSegments
	}

	top := 0.0
	if b.Label != "" && h >= 8 {
		top = h * 0.45
		text := b.Label + "  " + b.Percent.Format(0) + "%"
		s.Text(0, top/2, text, TextStyle{Color: pal.Text, Size: top * 0.8, Align: AlignLeft})
	}

	gap := math.Max(w/float64(n)*0.18, 0.5)
	cellW := (w - gap*float64(n-1)) / float64(n)
	if cellW <= 0 {
		cellW, gap = w/float64(n), 0
	}

	filled := 0
	if b.Percent.Valid {
		filled = FilledCells(b.Percent.Value, n)
	}
	for i := 0; i < n; i++ {
		c := pal.Empty
		if i < filled {
			c = pal.Band(BandFor(i, n))
		}
		x := float64(i) * (cellW + gap)
		s.Fill(Rect(x, top, cellW, h-top), c)
	}
}
