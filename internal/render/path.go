package render

import "math"

// Point is a position in logical units.
type Point struct {
	X, Y float64
}

// Subpath is a polyline, optionally closed back to its first point.
type Subpath struct {
	Points []Point
	Closed bool
}

// Path is a sequence of polylines. Curves and arcs are flattened as they
// are added so every Surface only has to handle straight segments.
type Path struct {
	subpaths []Subpath
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// Rect returns a closed rectangle path.
func Rect(x, y, w, h float64) *Path {
	return NewPath().MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) *Path {
	p.subpaths = append(p.subpaths, Subpath{Points: []Point{{x, y}}})
	return p
}

// LineTo adds a straight segment. Without a current point it acts as MoveTo.
func (p *Path) LineTo(x, y float64) *Path {
	cur := p.current()
	if cur == nil {
		return p.MoveTo(x, y)
	}
	cur.Points = append(cur.Points, Point{x, y})
	return p
}

const curveSteps = 12

// QuadTo adds a quadratic Bézier segment with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	cur := p.current()
	if cur == nil {
		return p.MoveTo(x, y)
	}
	start := cur.Points[len(cur.Points)-1]
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		u := 1 - t
		cur.Points = append(cur.Points, Point{
			X: u*u*start.X + 2*u*t*cx + t*t*x,
			Y: u*u*start.Y + 2*u*t*cy + t*t*y,
		})
	}
	return p
}

// Arc adds a circular arc around (cx, cy). startDeg and sweepDeg are in
// degrees, clockwise on screen. The arc joins the current subpath with a
// straight segment, or starts a new one if there is none.
func (p *Path) Arc(cx, cy, r, startDeg, sweepDeg float64) *Path {
	steps := int(math.Ceil(math.Abs(sweepDeg) / 4))
	if steps < 2 {
		steps = 2
	}
	for i := 0; i <= steps; i++ {
		pt := Polar(cx, cy, r, startDeg+sweepDeg*float64(i)/float64(steps))
		if i == 0 && p.current() == nil {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	return p
}

// Close marks the current subpath as closed.
func (p *Path) Close() *Path {
	if cur := p.current(); cur != nil {
		cur.Closed = true
	}
	return p
}

// Subpaths returns the flattened polylines.
func (p *Path) Subpaths() []Subpath {
	return p.subpaths
}

// Empty reports whether the path has no points.
func (p *Path) Empty() bool {
	return len(p.subpaths) == 0
}

// Bounds returns the bounding box of all points.
func (p *Path) Bounds() (minPt, maxPt Point) {
	first := true
	for _, sp := range p.subpaths {
		for _, pt := range sp.Points {
			if first {
				minPt, maxPt = pt, pt
				first = false
				continue
			}
			minPt.X = math.Min(minPt.X, pt.X)
			minPt.Y = math.Min(minPt.Y, pt.Y)
			maxPt.X = math.Max(maxPt.X, pt.X)
			maxPt.Y = math.Max(maxPt.Y, pt.Y)
		}
	}
	return minPt, maxPt
}

func (p *Path) current() *Subpath {
	if len(p.subpaths) == 0 {
		return nil
	}
	cur := &p.subpaths[len(p.subpaths)-1]
	if cur.Closed {
		return nil
	}
	return cur
}

// Polar returns the point at angle deg on a circle of radius r.
func Polar(cx, cy, r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{X: cx + r*math.Cos(rad), Y: cy + r*math.Sin(rad)}
}
