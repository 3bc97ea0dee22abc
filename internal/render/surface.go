package render

import "image/color"

// Align is the horizontal anchor of a text label.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle controls how a label is drawn.
type TextStyle struct {
	Color color.Color
	// Size is the line height in logical units.
	Size  float64
	Align Align
}

// Surface is a drawing target with a logical coordinate space.
// The origin is the top-left corner and y grows downwards. Angles used by
// the primitives follow the same orientation, so 90° points down.
type Surface interface {
	// Size returns the logical width and height.
	Size() (width, height float64)
	// Scale returns device pixels per logical unit.
	Scale() float64
	Clear(c color.Color)
	Fill(p *Path, c color.Color)
	Stroke(p *Path, c color.Color, width float64)
	// Text draws s with its vertical centre at y, anchored at x per style.Align.
	Text(x, y float64, s string, style TextStyle)
}
