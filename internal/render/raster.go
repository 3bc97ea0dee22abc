package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster is a Surface backed by an RGBA image. Logical coordinates are
// multiplied by the scale to get device pixels.
type Raster struct {
	width, height float64
	scale         float64
	img           *image.RGBA
	gc            *drawing.RasterGraphicContext
}

// NewRaster creates a raster surface of width x height logical units.
func NewRaster(width, height int, scale float64) (*Raster, error) {
	r := &Raster{scale: scale}
	if r.scale <= 0 {
		r.scale = 1
	}
	if err := r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Resize reallocates the backing image for a new logical size.
func (r *Raster) Resize(width, height int) error {
	pw := int(math.Ceil(float64(width) * r.scale))
	ph := int(math.Ceil(float64(height) * r.scale))
	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return err
	}
	r.width, r.height = float64(width), float64(height)
	r.img, r.gc = img, gc
	return nil
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// WritePNG encodes the surface as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) Size() (float64, float64) { return r.width, r.height }
func (r *Raster) Scale() float64           { return r.scale }

func (r *Raster) Clear(c color.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) trace(p *Path) {
	r.gc.BeginPath()
	for _, sp := range p.Subpaths() {
		for i, pt := range sp.Points {
			x, y := pt.X*r.scale, pt.Y*r.scale
			if i == 0 {
				r.gc.MoveTo(x, y)
				continue
			}
			r.gc.LineTo(x, y)
		}
		if sp.Closed {
			r.gc.Close()
		}
	}
}

func (r *Raster) Fill(p *Path, c color.Color) {
	if p.Empty() {
		return
	}
	r.trace(p)
	r.gc.SetFillColor(c)
	r.gc.Fill()
}

func (r *Raster) Stroke(p *Path, c color.Color, width float64) {
	if p.Empty() {
		return
	}
	r.trace(p)
	r.gc.SetStrokeColor(c)
	r.gc.SetLineWidth(width * r.scale)
	r.gc.Stroke()
}

// Text renders with the 7x13 bitmap face and scales the glyphs to the
// requested size.
func (r *Raster) Text(x, y float64, s string, style TextStyle) {
	if s == "" {
		return
	}
	face := basicfont.Face7x13
	tw := font.MeasureString(face, s).Ceil()
	th := face.Metrics().Height.Ceil()
	if tw <= 0 || th <= 0 {
		return
	}

	glyphs := image.NewRGBA(image.Rect(0, 0, tw, th))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(style.Color),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	size := style.Size
	if size <= 0 {
		size = float64(th)
	}
	k := size * r.scale / float64(th)
	dw, dh := int(math.Round(float64(tw)*k)), int(math.Round(float64(th)*k))
	if dw <= 0 || dh <= 0 {
		return
	}

	px, py := x*r.scale, y*r.scale-float64(dh)/2
	switch style.Align {
	case AlignCenter:
		px -= float64(dw) / 2
	case AlignRight:
		px -= float64(dw)
	}
	dst := image.Rect(int(math.Round(px)), int(math.Round(py)), int(math.Round(px))+dw, int(math.Round(py))+dh)
	xdraw.ApproxBiLinear.Scale(r.img, dst, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}
