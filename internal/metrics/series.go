package metrics

import (
	"sort"
	"time"

	"github.com/rileyhilliard/vitals/internal/errors"
)

// SeriesID names a time series fed into a SampleBuffer.
type SeriesID string

const (
	SeriesTemperature SeriesID = "temperature"
	SeriesLoad1       SeriesID = "load_1min"
	SeriesLoad5       SeriesID = "load_5min"
	SeriesLoad15      SeriesID = "load_15min"
	SeriesMemory      SeriesID = "memory"
)

// AllSeries lists every series in display order.
func AllSeries() []SeriesID {
	return []SeriesID{SeriesTemperature, SeriesMemory, SeriesLoad1, SeriesLoad5, SeriesLoad15}
}

// HistoryKind is a metric type the backend keeps history for.
type HistoryKind string

const (
	HistoryCPU    HistoryKind = "cpu"
	HistoryMemory HistoryKind = "memory"
)

// HistoryKinds lists the kinds fetched by the historical cycle.
func HistoryKinds() []HistoryKind {
	return []HistoryKind{HistoryCPU, HistoryMemory}
}

// Series returns the series a history kind feeds.
func (k HistoryKind) Series() []SeriesID {
	switch k {
	case HistoryCPU:
		return []SeriesID{SeriesTemperature, SeriesLoad1, SeriesLoad5, SeriesLoad15}
	case HistoryMemory:
		return []SeriesID{SeriesMemory}
	}
	return nil
}

// Batch holds chronologically ordered samples per series.
type Batch map[SeriesID][]Sample

// Values extracts the current value of every series from a snapshot.
// Series whose reading is unavailable come back as absent Nums.
func (s Snapshot) Values() map[SeriesID]Num {
	out := make(map[SeriesID]Num, len(AllSeries()))
	out[SeriesTemperature] = s.CPUTemperature()

	if load, ok := s.LoadAverages().Get(); ok {
		out[SeriesLoad1] = load.One
		out[SeriesLoad5] = load.Five
		out[SeriesLoad15] = load.Fifteen
	} else {
		out[SeriesLoad1], out[SeriesLoad5], out[SeriesLoad15] = Num{}, Num{}, Num{}
	}

	if mem, ok := s.Memory.Get(); ok {
		out[SeriesMemory] = mem.PercentUsed
	} else {
		out[SeriesMemory] = Num{}
	}
	return out
}

// NormalizeHistory decodes a /api/history/{kind} payload into per-series
// samples. Points with unreadable data become gaps; points whose timestamp
// cannot be read are dropped since they have no position on the time axis.
// Only a payload that is not a {data: [...]} document is an error.
func NormalizeHistory(raw []byte, kind HistoryKind) (Batch, error) {
	root, err := parseTree(raw)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrData,
			"History payload is not valid JSON", "")
	}
	if reason, failed := root.errorReason(); failed {
		return nil, errors.New(errors.ErrData,
			"Backend rejected history request: "+reason, "")
	}
	data, ok := root.get("data")
	if !ok || data.kind != kindArray {
		return nil, errors.New(errors.ErrData,
			"History payload has no data list", "")
	}

	type point struct {
		at     time.Time
		values map[SeriesID]Num
	}
	points := make([]point, 0, len(data.items))
	for _, item := range data.items {
		tsNode, ok := item.get("timestamp")
		if !ok {
			continue
		}
		at, ok := tsNode.timestamp()
		if !ok {
			continue
		}
		points = append(points, point{at: at, values: pointValues(item, kind)})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].at.Before(points[j].at) })

	batch := make(Batch, len(kind.Series()))
	for _, id := range kind.Series() {
		samples := make([]Sample, len(points))
		for i, p := range points {
			samples[i] = Sample{Time: p.at, Value: p.values[id]}
		}
		batch[id] = samples
	}
	return batch, nil
}

func pointValues(item node, kind HistoryKind) map[SeriesID]Num {
	var snap Snapshot
	switch kind {
	case HistoryCPU:
		snap.CPU = readingAt(item, "data", decodeCPU)
	case HistoryMemory:
		snap.Memory = readingAt(item, "data", decodeMemory)
	}
	return snap.Values()
}
