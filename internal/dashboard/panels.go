package dashboard

import "github.com/rileyhilliard/vitals/internal/render"

// Terminal layout, in cells.
const (
	defaultWidth = 100
	minWidth     = 40

	gaugeCols = 18
	gaugeRows = 7
	waveRows  = 6
	barRows   = 2
	tileCols  = 12
	tileRows  = 5
	tableRows = 8

	// panelChrome is the border plus right margin around every panel.
	panelChrome = 3
	// fixedRows is the height taken by everything above the tables.
	fixedRows = 32
)

// panels owns the braille surfaces the orchestrator draws on. The
// orchestrator reads and writes them under its lock, and so does the view.
type panels struct {
	width int

	tempGauge, memGauge         *render.Braille
	tempWave, loadWave, memWave *render.Braille
	memBar                      *render.Braille
	disks                       map[string]*render.Braille
	containers                  map[string]*render.Braille
}

func newPanels() *panels {
	return &panels{
		tempGauge:  render.NewBraille(gaugeCols, gaugeRows),
		memGauge:   render.NewBraille(gaugeCols, gaugeRows),
		tempWave:   render.NewBraille(1, waveRows),
		loadWave:   render.NewBraille(1, waveRows),
		memWave:    render.NewBraille(1, waveRows),
		memBar:     render.NewBraille(1, barRows),
		disks:      make(map[string]*render.Braille),
		containers: make(map[string]*render.Braille),
	}
}

// layout sizes every surface for a terminal width.
func (p *panels) layout(width int) {
	if width < minWidth {
		width = minWidth
	}
	p.width = width

	p.tempGauge.Resize(gaugeCols, gaugeRows)
	p.memGauge.Resize(gaugeCols, gaugeRows)
	p.tempWave.Resize(max(width-3*panelChrome-2*gaugeCols, 10), gaugeRows)

	half := max((width-2*panelChrome)/2, 10)
	p.loadWave.Resize(half, waveRows)
	p.memWave.Resize(half, waveRows)

	p.memBar.Resize(p.barCols(), barRows)
	for _, b := range p.disks {
		b.Resize(p.barCols(), barRows)
	}
	for _, t := range p.containers {
		t.Resize(tileCols, tileRows)
	}
}

func (p *panels) barCols() int {
	return max(p.width-panelChrome, 10)
}

func (p *panels) disk(mount string) render.Surface {
	b, ok := p.disks[mount]
	if !ok {
		b = render.NewBraille(p.barCols(), barRows)
		p.disks[mount] = b
	}
	return b
}

func (p *panels) container(name string) render.Surface {
	t, ok := p.containers[name]
	if !ok {
		t = render.NewBraille(tileCols, tileRows)
		p.containers[name] = t
	}
	return t
}

// bindings exposes the surfaces to the orchestrator. The terminal shows
// disks as bars only, and leaves charts to the PNG exporter.
func (p *panels) bindings() Bindings {
	return Bindings{
		TemperatureGauge: p.tempGauge,
		MemoryGauge:      p.memGauge,
		MemoryBar:        p.memBar,
		TemperatureWave:  p.tempWave,
		LoadWave:         p.loadWave,
		MemoryWave:       p.memWave,
		Disk:             p.disk,
		Container:        p.container,
	}
}
