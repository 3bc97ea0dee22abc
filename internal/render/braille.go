package render

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and each dot is one bit.
const brailleBase = '\u2800'

// brailleDots maps [row][col] within a cell to the dot's bit offset.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

type brailleCell struct {
	bits      uint8
	color     color.Color
	text      rune
	textColor color.Color
}

// Braille is a Surface that rasterizes onto terminal braille cells. Each
// cell holds 2x4 dots, so a cols x rows grid has a logical size of
// (2*cols) x (4*rows) with one dot per logical unit. A cell takes the colour
// of the last shape that touched it.
type Braille struct {
	cols, rows int
	cells      []brailleCell
	bg         color.Color
}

// NewBraille creates a grid of cols x rows terminal cells.
func NewBraille(cols, rows int) *Braille {
	b := &Braille{}
	b.Resize(cols, rows)
	return b
}

// Resize changes the grid size and clears it.
func (b *Braille) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	b.cols, b.rows = cols, rows
	b.cells = make([]brailleCell, cols*rows)
}

// Cells returns the grid size in terminal cells.
func (b *Braille) Cells() (cols, rows int) {
	return b.cols, b.rows
}

func (b *Braille) Size() (float64, float64) { return float64(b.cols * 2), float64(b.rows * 4) }
func (b *Braille) Scale() float64           { return 1 }

func (b *Braille) Clear(c color.Color) {
	clear(b.cells)
	b.bg = c
}

func (b *Braille) dot(x, y int, c color.Color) {
	if x < 0 || y < 0 || x >= b.cols*2 || y >= b.rows*4 {
		return
	}
	cell := &b.cells[(y/4)*b.cols+x/2]
	cell.bits |= 1 << brailleDots[y%4][x%2]
	cell.color = c
}

// Fill uses an even-odd scanline fill sampled at dot centres.
func (b *Braille) Fill(p *Path, c color.Color) {
	type edge struct{ a, b Point }
	var edges []edge
	for _, sp := range p.Subpaths() {
		pts := sp.Points
		for i := range pts {
			edges = append(edges, edge{pts[i], pts[(i+1)%len(pts)]})
		}
	}
	if len(edges) == 0 {
		return
	}

	var xs []float64
	for y := 0; y < b.rows*4; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for _, e := range edges {
			if (e.a.Y <= yc) == (e.b.Y <= yc) {
				continue
			}
			t := (yc - e.a.Y) / (e.b.Y - e.a.Y)
			xs = append(xs, e.a.X+t*(e.b.X-e.a.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			start := int(math.Ceil(xs[i] - 0.5))
			end := int(math.Ceil(xs[i+1] - 0.5))
			for x := start; x < end; x++ {
				b.dot(x, y, c)
			}
		}
	}
}

func (b *Braille) Stroke(p *Path, c color.Color, width float64) {
	radius := int(math.Round(width/2)) - 1
	if radius < 0 {
		radius = 0
	}
	stamp := func(x, y float64) {
		cx, cy := int(math.Floor(x)), int(math.Floor(y))
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				b.dot(cx+dx, cy+dy, c)
			}
		}
	}

	for _, sp := range p.Subpaths() {
		pts := sp.Points
		if sp.Closed && len(pts) > 1 {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		if len(pts) == 1 {
			stamp(pts[0].X, pts[0].Y)
		}
		for i := 0; i+1 < len(pts); i++ {
			a, z := pts[i], pts[i+1]
			steps := int(math.Ceil(math.Max(math.Abs(z.X-a.X), math.Abs(z.Y-a.Y))))
			for s := 0; s <= steps; s++ {
				t := 0.0
				if steps > 0 {
					t = float64(s) / float64(steps)
				}
				stamp(a.X+(z.X-a.X)*t, a.Y+(z.Y-a.Y)*t)
			}
		}
	}
}

// Text writes runes straight into cells; the size hint is ignored.
func (b *Braille) Text(x, y float64, s string, style TextStyle) {
	runes := []rune(s)
	if len(runes) == 0 || b.cols == 0 || b.rows == 0 {
		return
	}
	row := int(math.Floor(y / 4))
	col := int(math.Floor(x / 2))
	switch style.Align {
	case AlignCenter:
		col -= len(runes) / 2
	case AlignRight:
		col -= len(runes)
	}
	if row < 0 || row >= b.rows {
		return
	}
	for i, r := range runes {
		cx := col + i
		if cx < 0 || cx >= b.cols {
			continue
		}
		cell := &b.cells[row*b.cols+cx]
		cell.text = r
		cell.textColor = style.Color
	}
}

func (cell brailleCell) glyph() rune {
	if cell.text != 0 {
		return cell.text
	}
	if cell.bits == 0 {
		return ' '
	}
	return brailleBase + rune(cell.bits)
}

// Plain returns the grid without colour, one line per row.
func (b *Braille) Plain() string {
	lines := make([]string, b.rows)
	for r := 0; r < b.rows; r++ {
		var sb strings.Builder
		for c := 0; c < b.cols; c++ {
			sb.WriteRune(b.cells[r*b.cols+c].glyph())
		}
		lines[r] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// Render returns the grid styled with lipgloss. Neighbouring cells with
// the same colour share one styled run.
func (b *Braille) Render() string {
	base := lipgloss.NewStyle()
	if b.bg != nil {
		base = base.Background(lipgloss.Color(Hex(b.bg)))
	}

	lines := make([]string, b.rows)
	for r := 0; r < b.rows; r++ {
		var line, run strings.Builder
		runFg := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := base
			if runFg != "" {
				style = style.Foreground(lipgloss.Color(runFg))
			}
			line.WriteString(style.Render(run.String()))
			run.Reset()
		}

		for c := 0; c < b.cols; c++ {
			cell := b.cells[r*b.cols+c]
			fg := ""
			switch {
			case cell.text != 0 && cell.textColor != nil:
				fg = Hex(cell.textColor)
			case cell.bits != 0 && cell.color != nil:
				fg = Hex(cell.color)
			}
			if fg != runFg {
				flush()
				runFg = fg
			}
			run.WriteRune(cell.glyph())
		}
		flush()
		lines[r] = line.String()
	}
	return strings.Join(lines, "\n")
}
