package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

func TestTileFillHeight(t *testing.T) {
	assert.InDelta(t, 50.0, TileFillHeight(50, 100), 1e-9)
	assert.InDelta(t, 0.0, TileFillHeight(-5, 100), 1e-9)
	assert.InDelta(t, 80.0, TileFillHeight(120, 80), 1e-9)
	assert.InDelta(t, 17.0, TileFillHeight(17, 100), 1e-9)
}

func TestDrawHeatTile_FillMatchesPercent(t *testing.T) {
	rec := NewRecorder(60, 100, 1)
	DrawHeatTile(rec, Synthwave, HeatTile{
		Label:   "/data",
		Percent: metrics.Some(50),
		Status:  metrics.StatusCritical,
	})

	fills := rec.Filter(OpFill)
	require.Len(t, fills, 1+1+tileGradientSteps)
	assert.Equal(t, Synthwave.Empty, fills[0].Color, "background is the empty colour")

	solid := fills[1]
	assert.Equal(t, Synthwave.Critical, solid.Color)
	minPt, maxPt := solid.Path.Bounds()
	assert.InDelta(t, 75.0, minPt.Y, 1e-9)
	assert.InDelta(t, 100.0, maxPt.Y, 1e-9)

	// the gradient strips cover the rest of the filled part up to the fill line
	top, _ := fills[2].Path.Bounds()
	assert.InDelta(t, 50.0, top.Y, 1e-9)
	for _, strip := range fills[2:] {
		assert.NotEqual(t, Synthwave.Empty, strip.Color)
	}

	assert.Contains(t, rec.Texts(), "50%")
	assert.Contains(t, rec.Texts(), "/data")
}

func TestDrawHeatTile_Edges(t *testing.T) {
	tests := []struct {
		name      string
		percent   metrics.Num
		wantFills int
		wantText  string
	}{
		{"absent", metrics.Num{}, 1, "--%"},
		{"zero", metrics.Some(0), 1, "0%"},
		{"full", metrics.Some(100), 2 + tileGradientSteps, "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder(60, 100, 1)
			DrawHeatTile(rec, Classic, HeatTile{Percent: tt.percent, Status: metrics.StatusOK})
			assert.Len(t, rec.Filter(OpFill), tt.wantFills)
			assert.Equal(t, tt.wantText, rec.Texts()[0])
		})
	}
}

func TestDrawHeatTile_Badge(t *testing.T) {
	tests := []struct {
		badge Badge
		color interface{}
		glyph string
	}{
		{BadgePass, Synthwave.Pass, "+"},
		{BadgeFail, Synthwave.Fail, "x"},
		{BadgeUnknown, Synthwave.Unknown, "?"},
	}

	for _, tt := range tests {
		t.Run(tt.badge.String(), func(t *testing.T) {
			rec := NewRecorder(80, 80, 1)
			DrawHeatTile(rec, Synthwave, HeatTile{Percent: metrics.Some(30), Badge: tt.badge})

			fills := rec.Filter(OpFill)
			assert.Equal(t, tt.color, fills[len(fills)-1].Color)
			texts := rec.Texts()
			assert.Equal(t, tt.glyph, texts[len(texts)-1])
		})
	}

	rec := NewRecorder(80, 80, 1)
	DrawHeatTile(rec, Synthwave, HeatTile{Percent: metrics.Some(30)})
	assert.Equal(t, []string{"30%"}, rec.Texts(), "no badge glyph without a badge")
}

func TestDrawUnavailable(t *testing.T) {
	rec := NewRecorder(100, 60, 1)
	DrawUnavailable(rec, Synthwave, "SMART", "smartctl not installed")

	assert.Equal(t, []string{"SMART", "unavailable", "smartctl not installed"}, rec.Texts())
	assert.Empty(t, rec.Filter(OpFill))
}
