package render

import "image/color"

// OpKind identifies a recorded drawing command.
type OpKind string

const (
	OpClear  OpKind = "clear"
	OpFill   OpKind = "fill"
	OpStroke OpKind = "stroke"
	OpText   OpKind = "text"
)

// Op is one recorded drawing command.
type Op struct {
	Kind  OpKind
	Path  *Path
	Color color.Color
	Width float64
	X, Y  float64
	Text  string
	Style TextStyle
}

// Recorder is a Surface that records commands instead of drawing them.
type Recorder struct {
	width, height float64
	scale         float64
	Ops           []Op
}

// NewRecorder creates a Recorder with the given logical size and scale.
func NewRecorder(width, height, scale float64) *Recorder {
	if scale <= 0 {
		scale = 1
	}
	return &Recorder{width: width, height: height, scale: scale}
}

// Resize changes the logical size for subsequent calls.
func (r *Recorder) Resize(width, height float64) {
	r.width, r.height = width, height
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }
func (r *Recorder) Scale() float64           { return r.scale }

func (r *Recorder) Clear(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: c})
}

func (r *Recorder) Fill(p *Path, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Path: p, Color: c})
}

func (r *Recorder) Stroke(p *Path, c color.Color, width float64) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Path: p, Color: c, Width: width})
}

func (r *Recorder) Text(x, y float64, s string, style TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: x, Y: y, Text: s, Style: style})
}

// Reset drops all recorded commands.
func (r *Recorder) Reset() {
	r.Ops = nil
}

// Filter returns the recorded commands of one kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings of all text commands in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Filter(OpText) {
		out = append(out, op.Text)
	}
	return out
}
