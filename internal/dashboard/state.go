package dashboard

import (
	"time"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

// State is a point-in-time copy of what the orchestrator holds.
type State struct {
	Snapshot    metrics.Snapshot
	HasSnapshot bool
	Thresholds  metrics.ThresholdSet
	Indicator   Indicator
	// Err is the last live cycle failure, nil while nominal.
	Err error
	// HistoryErr is the failure of the first history kind whose last
	// fetch failed, nil when every kind loaded.
	HistoryErr error
	// HistoryErrs holds the last failure of each history kind.
	HistoryErrs map[metrics.HistoryKind]error
	LastUpdated time.Time
	Hours       int
	Stats       metrics.Stats
	Series      map[metrics.SeriesID][]metrics.Sample
}

// State returns a copy of the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stateLocked()
}

func (o *Orchestrator) stateLocked() State {
	series := make(map[metrics.SeriesID][]metrics.Sample, len(o.buffers))
	for id, buf := range o.buffers {
		series[id] = buf.ToArray()
	}
	var historyErr error
	historyErrs := make(map[metrics.HistoryKind]error, len(o.historyErrs))
	for _, kind := range metrics.HistoryKinds() {
		if err, ok := o.historyErrs[kind]; ok {
			historyErrs[kind] = err
			if historyErr == nil {
				historyErr = err
			}
		}
	}
	return State{
		Snapshot:    o.snapshot,
		HasSnapshot: o.hasSnapshot,
		Thresholds:  o.thresholds,
		Indicator:   o.indicator,
		Err:         o.lastErr,
		HistoryErr:  historyErr,
		HistoryErrs: historyErrs,
		LastUpdated: o.lastUpdated,
		Hours:       o.hours,
		Stats:       o.stats,
		Series:      series,
	}
}

// Level is one classified metric of the current snapshot.
type Level struct {
	Name   string
	Kind   metrics.Kind
	Value  metrics.Num
	Unit   string
	Status metrics.Status
	// Reason is set when the reading is unavailable.
	Reason string
}

// Available reports whether the level has a value.
func (l Level) Available() bool {
	return l.Reason == "" && l.Value.Valid
}

// Levels classifies every monitored metric of the snapshot: the primary
// CPU temperature, memory, each disk and each container's memory use.
func (s State) Levels() []Level {
	if !s.HasSnapshot {
		return nil
	}
	snap := s.Snapshot
	level := func(name string, kind metrics.Kind, v metrics.Num, unit string) Level {
		l := Level{Name: name, Kind: kind, Value: v, Unit: unit, Status: classify(v, kind, s.Thresholds)}
		if !v.Valid {
			l.Reason = "no data"
		}
		return l
	}

	var out []Level
	if temps := snap.TemperatureReading(); temps.OK() {
		out = append(out, level("cpu temperature", metrics.KindTemperature, snap.CPUTemperature(), "°C"))
	} else {
		out = append(out, Level{Name: "cpu temperature", Kind: metrics.KindTemperature, Unit: "°C", Reason: temps.Reason()})
	}

	if mem, ok := snap.Memory.Get(); ok {
		out = append(out, level("memory", metrics.KindMemory, mem.PercentUsed, "%"))
	} else {
		out = append(out, Level{Name: "memory", Kind: metrics.KindMemory, Unit: "%", Reason: snap.Memory.Reason()})
	}

	if disks, ok := snap.Disk.Get(); ok {
		for _, e := range disks {
			name := "disk " + e.Key
			if d, ok := e.Reading.Get(); ok {
				out = append(out, level(name, metrics.KindDisk, d.PercentUsed, "%"))
			} else {
				out = append(out, Level{Name: name, Kind: metrics.KindDisk, Unit: "%", Reason: e.Reading.Reason()})
			}
		}
	}

	if containers, ok := snap.Docker.Get(); ok {
		for _, e := range containers {
			name := "container " + e.Key
			if c, ok := e.Reading.Get(); ok {
				out = append(out, level(name, metrics.KindMemory, c.MemoryPercent, "%"))
			} else {
				out = append(out, Level{Name: name, Kind: metrics.KindMemory, Unit: "%", Reason: e.Reading.Reason()})
			}
		}
	}
	return out
}

// Worst returns the most severe status among levels.
func Worst(levels []Level) metrics.Status {
	worst := metrics.StatusOK
	for _, l := range levels {
		if l.Status > worst {
			worst = l.Status
		}
	}
	return worst
}
