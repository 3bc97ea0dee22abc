package dashboard

import (
	"fmt"

	"github.com/rileyhilliard/vitals/internal/metrics"
	"github.com/rileyhilliard/vitals/internal/render"
)

// Bindings connect widgets to the surfaces a presentation provides. A nil
// surface or lookup leaves that widget undrawn.
type Bindings struct {
	TemperatureGauge render.Surface
	MemoryGauge      render.Surface
	MemoryBar        render.Surface

	TemperatureWave render.Surface
	LoadWave        render.Surface
	MemoryWave      render.Surface

	// Disk and DiskTile return the surfaces for a mount point. Container
	// returns the tile for a container name. They may return nil.
	Disk      func(mount string) render.Surface
	DiskTile  func(mount string) render.Surface
	Container func(name string) render.Surface

	// Charts receives the full-window time-series charts.
	Charts render.ChartSink
}

func (o *Orchestrator) drawAll() {
	o.drawGauges()
	o.drawDisks()
	o.drawContainers()
	o.drawSeries()
}

func (o *Orchestrator) drawGauges() {
	b := o.bindings
	snap := o.snapshot

	if s := b.TemperatureGauge; s != nil {
		temps := snap.TemperatureReading()
		if !o.hasSnapshot || temps.OK() {
			v := snap.CPUTemperature()
			render.DrawGauge(s, o.pal, render.Gauge{
				Value:     v,
				Max:       100,
				Status:    classify(v, metrics.KindTemperature, o.thresholds),
				Label:     "CPU",
				Unit:      "°C",
				Precision: 1,
			})
		} else {
			render.DrawUnavailable(s, o.pal, "CPU", temps.Reason())
		}
	}

	mem, memOK := snap.Memory.Get()
	unavailable := o.hasSnapshot && !memOK
	if s := b.MemoryGauge; s != nil {
		if unavailable {
			render.DrawUnavailable(s, o.pal, "MEM", snap.Memory.Reason())
		} else {
			render.DrawGauge(s, o.pal, render.Gauge{
				Value:     mem.PercentUsed,
				Max:       100,
				Status:    classify(mem.PercentUsed, metrics.KindMemory, o.thresholds),
				Label:     "MEM",
				Unit:      "%",
				Precision: 1,
			})
		}
	}
	if s := b.MemoryBar; s != nil {
		if unavailable {
			render.DrawUnavailable(s, o.pal, "MEM", snap.Memory.Reason())
		} else {
			render.DrawSegmentedBar(s, o.pal, render.SegmentedBar{Percent: mem.PercentUsed, Cells: o.segments, Label: "RAM"})
		}
	}
}

func (o *Orchestrator) drawDisks() {
	b := o.bindings
	if b.Disk == nil && b.DiskTile == nil {
		return
	}
	surfaces := func(mount string) []render.Surface {
		var out []render.Surface
		if b.Disk != nil {
			out = append(out, b.Disk(mount))
		}
		if b.DiskTile != nil {
			out = append(out, b.DiskTile(mount))
		}
		return out
	}

	reading := o.snapshot.Disk
	disks, ok := reading.Get()
	if !ok {
		if o.hasSnapshot {
			o.markUnavailable(o.diskKeys, surfaces, reading.Reason())
		}
		return
	}
	o.diskKeys = o.trackKeys(o.diskKeys, keysOf(disks), surfaces)
	smart, _ := o.snapshot.SMART.Get()

	for _, entry := range disks {
		var bar, tile render.Surface
		if b.Disk != nil {
			bar = b.Disk(entry.Key)
		}
		if b.DiskTile != nil {
			tile = b.DiskTile(entry.Key)
		}

		d, ok := entry.Reading.Get()
		if !ok {
			for _, s := range []render.Surface{bar, tile} {
				if s != nil {
					render.DrawUnavailable(s, o.pal, entry.Key, entry.Reading.Reason())
				}
			}
			continue
		}
		if bar != nil {
			render.DrawSegmentedBar(bar, o.pal, render.SegmentedBar{Percent: d.PercentUsed, Cells: o.segments, Label: entry.Key})
		}
		if tile != nil {
			render.DrawHeatTile(tile, o.pal, render.HeatTile{
				Label:   entry.Key,
				Percent: d.PercentUsed,
				Status:  classify(d.PercentUsed, metrics.KindDisk, o.thresholds),
				Badge:   render.SmartBadge(d.Device, smart),
				Caption: fmt.Sprintf("%s/%sG", d.UsedGB.Format(0), d.TotalGB.Format(0)),
			})
		}
	}
}

// drawContainers fills each container tile by memory percent, classified
// with the memory thresholds.
func (o *Orchestrator) drawContainers() {
	if o.bindings.Container == nil {
		return
	}
	surfaces := func(name string) []render.Surface {
		return []render.Surface{o.bindings.Container(name)}
	}

	reading := o.snapshot.Docker
	containers, ok := reading.Get()
	if !ok {
		if o.hasSnapshot {
			o.markUnavailable(o.containerKeys, surfaces, reading.Reason())
		}
		return
	}
	o.containerKeys = o.trackKeys(o.containerKeys, keysOf(containers), surfaces)

	for _, entry := range containers {
		s := o.bindings.Container(entry.Key)
		if s == nil {
			continue
		}
		c, ok := entry.Reading.Get()
		if !ok {
			render.DrawUnavailable(s, o.pal, entry.Key, entry.Reading.Reason())
			continue
		}
		render.DrawHeatTile(s, o.pal, render.HeatTile{
			Label:   entry.Key,
			Percent: c.MemoryPercent,
			Status:  classify(c.MemoryPercent, metrics.KindMemory, o.thresholds),
			Badge:   render.ContainerBadge(c.Health),
			Caption: string(c.Status),
		})
	}
}

// markUnavailable draws the placeholder on every surface bound to keys.
func (o *Orchestrator) markUnavailable(keys []string, surfaces func(string) []render.Surface, reason string) {
	for _, k := range keys {
		for _, s := range surfaces(k) {
			if s != nil {
				render.DrawUnavailable(s, o.pal, k, reason)
			}
		}
	}
}

// trackKeys returns the keys of the current map. Keys drawn before but
// no longer reported are marked unavailable.
func (o *Orchestrator) trackKeys(prev, current []string, surfaces func(string) []render.Surface) []string {
	seen := make(map[string]bool, len(current))
	for _, k := range current {
		seen[k] = true
	}
	var gone []string
	for _, k := range prev {
		if !seen[k] {
			gone = append(gone, k)
		}
	}
	o.markUnavailable(gone, surfaces, "not reported")
	return current
}

func keysOf[T any](entries []metrics.Keyed[T]) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// drawSeries redraws the waveforms from the sample buffers.
func (o *Orchestrator) drawSeries() {
	b := o.bindings
	waves := []struct {
		surface render.Surface
		id      metrics.SeriesID
		label   string
		unit    string
		prec    int
	}{
		{b.TemperatureWave, metrics.SeriesTemperature, "CPU TEMP", "°C", 1},
		{b.LoadWave, metrics.SeriesLoad1, "LOAD 1M", "", 2},
		{b.MemoryWave, metrics.SeriesMemory, "MEMORY", "%", 1},
	}
	for _, w := range waves {
		if w.surface == nil {
			continue
		}
		render.DrawWaveform(w.surface, o.pal, render.Waveform{
			Samples:   o.buffers[w.id].ToArray(),
			Bounds:    render.BoundsFor(w.id),
			Color:     o.pal.Series(w.id),
			Label:     w.label,
			Unit:      w.unit,
			Precision: w.prec,
		})
	}
}

// plotCharts sends kind's full history window to the chart sink.
func (o *Orchestrator) plotCharts(kind metrics.HistoryKind) {
	if o.bindings.Charts == nil {
		return
	}
	for _, c := range o.chartsFor(kind) {
		if err := o.bindings.Charts.Plot(c); err != nil {
			o.log.Warn("%s chart not plotted: %v", c.Key, err)
		}
	}
}

func (o *Orchestrator) chartsFor(kind metrics.HistoryKind) []render.TimeChart {
	series := func(id metrics.SeriesID, name string) render.ChartSeries {
		return render.ChartSeries{ID: id, Name: name, Samples: o.history[id]}
	}
	switch kind {
	case metrics.HistoryCPU:
		return []render.TimeChart{
			{
				Key:    "temperature",
				Title:  "CPU Temperature",
				Unit:   "°C",
				Bounds: render.BoundsFor(metrics.SeriesTemperature),
				Hours:  o.hours,
				Series: []render.ChartSeries{series(metrics.SeriesTemperature, "temperature")},
			},
			{
				Key:    "load",
				Title:  "Load",
				Bounds: render.BoundsFor(metrics.SeriesLoad1),
				Hours:  o.hours,
				Series: []render.ChartSeries{
					series(metrics.SeriesLoad1, "1m"),
					series(metrics.SeriesLoad5, "5m"),
					series(metrics.SeriesLoad15, "15m"),
				},
			},
		}
	case metrics.HistoryMemory:
		return []render.TimeChart{{
			Key:    "memory",
			Title:  "Memory",
			Unit:   "%",
			Bounds: render.BoundsFor(metrics.SeriesMemory),
			Hours:  o.hours,
			Series: []render.ChartSeries{series(metrics.SeriesMemory, "used")},
		}}
	}
	return nil
}

// classify maps an absent value to ok; the widget shows it as "--".
func classify(v metrics.Num, kind metrics.Kind, set metrics.ThresholdSet) metrics.Status {
	if !v.Valid {
		return metrics.StatusOK
	}
	return metrics.Classify(v.Value, kind, set)
}
