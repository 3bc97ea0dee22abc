package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

func TestRaster_ScaleSetsPixelSize(t *testing.T) {
	r, err := NewRaster(30, 20, 2)
	require.NoError(t, err)

	w, h := r.Size()
	assert.Equal(t, 30.0, w)
	assert.Equal(t, 20.0, h)
	assert.Equal(t, 60, r.Image().Bounds().Dx())
	assert.Equal(t, 40, r.Image().Bounds().Dy())

	require.NoError(t, r.Resize(10, 10))
	assert.Equal(t, 20, r.Image().Bounds().Dx())
}

func TestRaster_FillAndClear(t *testing.T) {
	r, err := NewRaster(10, 10, 2)
	require.NoError(t, err)

	r.Clear(color.Black)
	r.Fill(Rect(2, 2, 6, 6), color.RGBA{R: 255, A: 255})

	inside := r.Image().RGBAAt(10, 10)
	assert.Greater(t, inside.R, uint8(200))
	assert.Less(t, inside.G, uint8(50))

	outside := r.Image().RGBAAt(1, 1)
	assert.Equal(t, uint8(0), outside.R)
}

func TestRaster_TextDrawsPixels(t *testing.T) {
	r, err := NewRaster(60, 20, 1)
	require.NoError(t, err)
	r.Clear(color.Black)
	r.Text(30, 10, "42%", TextStyle{Color: color.White, Size: 13, Align: AlignCenter})

	lit := 0
	img := r.Image()
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if img.RGBAAt(x, y).R > 128 {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 0)
}

func TestRaster_WritePNG(t *testing.T) {
	r, err := NewRaster(40, 30, 1.5)
	require.NoError(t, err)
	DrawGauge(r, Classic, Gauge{Value: metrics.Some(64), Max: 100, Status: metrics.StatusWarning, Label: "CPU"})

	var buf bytes.Buffer
	require.NoError(t, r.WritePNG(&buf))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Width)
	assert.Equal(t, 45, cfg.Height)
}
