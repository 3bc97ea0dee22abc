package render

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

// Palette is the set of colours a skin draws with.
type Palette struct {
	Name string

	Background drawing.Color
	Panel      drawing.Color
	Border     drawing.Color
	Track      drawing.Color
	Empty      drawing.Color
	Grid       drawing.Color

	Text  drawing.Color
	Muted drawing.Color

	OK       drawing.Color
	Warning  drawing.Color
	Critical drawing.Color

	BandLow  drawing.Color
	BandMid  drawing.Color
	BandHigh drawing.Color

	Pass    drawing.Color
	Fail    drawing.Color
	Unknown drawing.Color

	// Series colours for time-series views.
	Temperature drawing.Color
	Memory      drawing.Color
	Load1       drawing.Color
	Load5       drawing.Color
	Load15      drawing.Color
}

// Status returns the colour for a classified status.
func (p Palette) Status(s metrics.Status) drawing.Color {
	switch s {
	case metrics.StatusCritical:
		return p.Critical
	case metrics.StatusWarning:
		return p.Warning
	default:
		return p.OK
	}
}

// Band returns the colour of a segmented bar zone.
func (p Palette) Band(b Band) drawing.Color {
	switch b {
	case BandHigh:
		return p.BandHigh
	case BandMid:
		return p.BandMid
	default:
		return p.BandLow
	}
}

// Badge returns the colour of a health badge.
func (p Palette) Badge(b Badge) drawing.Color {
	switch b {
	case BadgePass:
		return p.Pass
	case BadgeFail:
		return p.Fail
	default:
		return p.Unknown
	}
}

// Series returns the line colour for a time series.
func (p Palette) Series(id metrics.SeriesID) drawing.Color {
	switch id {
	case metrics.SeriesTemperature:
		return p.Temperature
	case metrics.SeriesMemory:
		return p.Memory
	case metrics.SeriesLoad5:
		return p.Load5
	case metrics.SeriesLoad15:
		return p.Load15
	default:
		return p.Load1
	}
}

func hex(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

// Synthwave is the neon palette of the terminal dashboard.
var Synthwave = Palette{
	Name:        "synthwave",
	Background:  hex("#0A0A0F"),
	Panel:       hex("#12121A"),
	Border:      hex("#2A2A4A"),
	Track:       hex("#1E1E30"),
	Empty:       hex("#1A1A28"),
	Grid:        hex("#23233A"),
	Text:        hex("#FFFFFF"),
	Muted:       hex("#6B6B8D"),
	OK:          hex("#39FF14"),
	Warning:     hex("#FFAA00"),
	Critical:    hex("#FF0055"),
	BandLow:     hex("#39FF14"),
	BandMid:     hex("#FFAA00"),
	BandHigh:    hex("#FF0055"),
	Pass:        hex("#39FF14"),
	Fail:        hex("#FF0055"),
	Unknown:     hex("#B4B4D0"),
	Temperature: hex("#FF2E97"),
	Memory:      hex("#00FFFF"),
	Load1:       hex("#39FF14"),
	Load5:       hex("#FFAA00"),
	Load15:      hex("#BF40FF"),
}

// Classic matches the web dashboard's colours.
var Classic = Palette{
	Name:        "classic",
	Background:  hex("#1A1A2E"),
	Panel:       hex("#16213E"),
	Border:      hex("#2B3A5C"),
	Track:       hex("#2B3A5C"),
	Empty:       hex("#0F3460"),
	Grid:        hex("#2B3A5C"),
	Text:        hex("#EEEEEE"),
	Muted:       hex("#AAAAAA"),
	OK:          hex("#4ADE80"),
	Warning:     hex("#FBBF24"),
	Critical:    hex("#E94560"),
	BandLow:     hex("#4ADE80"),
	BandMid:     hex("#FBBF24"),
	BandHigh:    hex("#E94560"),
	Pass:        hex("#4ADE80"),
	Fail:        hex("#E94560"),
	Unknown:     hex("#AAAAAA"),
	Temperature: hex("#E94560"),
	Memory:      hex("#60A5FA"),
	Load1:       hex("#4ADE80"),
	Load5:       hex("#FBBF24"),
	Load15:      hex("#E94560"),
}

var palettes = map[string]Palette{
	Synthwave.Name: Synthwave,
	Classic.Name:   Classic,
}

// PaletteByName looks up a skin palette.
func PaletteByName(name string) (Palette, bool) {
	p, ok := palettes[strings.ToLower(name)]
	return p, ok
}

// PaletteNames lists the available palettes.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Hex formats a colour as #RRGGBB, the form lipgloss expects.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.Color, a uint8) drawing.Color {
	r, g, b, _ := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}

// Mix blends a towards b by t in [0, 1]. The result is opaque.
func Mix(a, b color.Color, t float64) drawing.Color {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	lerp := func(x, y uint32) uint8 {
		return uint8((float64(x>>8)*(1-t) + float64(y>>8)*t) + 0.5)
	}
	return drawing.Color{R: lerp(ar, br), G: lerp(ag, bg), B: lerp(ab, bb), A: 255}
}
