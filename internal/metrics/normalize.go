package metrics

import (
	"strings"
	"time"
)

// MalformedReason is the failure reason used when a payload cannot be read at all.
const MalformedReason = "malformed payload"

// Normalize converts a /api/current payload into a Snapshot stamped with
// the current time. It never fails: unreadable sub-readings become missing,
// and a payload that is not a JSON object yields failed sub-readings.
func Normalize(raw []byte) Snapshot {
	return NormalizeAt(raw, time.Now())
}

// NormalizeAt is Normalize with an explicit fallback timestamp. A
// "timestamp" key in the payload takes precedence.
func NormalizeAt(raw []byte, now time.Time) Snapshot {
	root, err := parseTree(raw)
	if err != nil || root.kind != kindObject {
		return malformedSnapshot(now)
	}

	snap := Snapshot{Timestamp: now}
	if ts, ok := root.get("timestamp"); ok {
		if t, ok := ts.timestamp(); ok {
			snap.Timestamp = t
		}
	}

	snap.CPU = readingAt(root, "cpu", decodeCPU)
	snap.Memory = readingAt(root, "memory", decodeMemory)
	snap.Disk = readingAt(root, "disk", keyedDecoder(decodeDisk))
	snap.SMART = readingAt(root, "smart", keyedDecoder(decodeSmart))
	snap.Docker = readingAt(root, "docker", decodeContainers)
	snap.Processes = readingAt(root, "processes", decodeProcesses)
	if th, ok := root.get("thresholds"); ok {
		snap.Thresholds = decodeOverrides(th)
	}
	return snap
}

func malformedSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Timestamp: now,
		Malformed: true,
		CPU:       Err[CPU](MalformedReason),
		Memory:    Err[Memory](MalformedReason),
		Disk:      Err[[]Keyed[Disk]](MalformedReason),
		SMART:     Err[[]Keyed[Smart]](MalformedReason),
		Docker:    Err[[]Keyed[Container]](MalformedReason),
		Processes: Err[[]Process](MalformedReason),
	}
}

// readingAt decodes parent[key]. Absent or null keys are Missing, error
// objects are Failed, and anything decode rejects is Missing.
func readingAt[T any](parent node, key string, decode func(node) (T, bool)) Reading[T] {
	n, ok := parent.get(key)
	if !ok {
		return Reading[T]{}
	}
	return readingOf(n, decode)
}

func readingOf[T any](n node, decode func(node) (T, bool)) Reading[T] {
	if n.kind == kindNull {
		return Reading[T]{}
	}
	if reason, failed := n.errorReason(); failed {
		return Err[T](reason)
	}
	v, ok := decode(n)
	if !ok {
		return Reading[T]{}
	}
	return Ok(v)
}

// keyedDecoder lifts a per-entry decoder to a whole object, keeping key order.
func keyedDecoder[T any](decode func(key string, n node) (T, bool)) func(node) ([]Keyed[T], bool) {
	return func(n node) ([]Keyed[T], bool) {
		if n.kind != kindObject {
			return nil, false
		}
		out := make([]Keyed[T], 0, len(n.fields))
		for _, f := range n.fields {
			key := f.key
			out = append(out, Keyed[T]{
				Key:     key,
				Reading: readingOf(f.val, func(v node) (T, bool) { return decode(key, v) }),
			})
		}
		return out, true
	}
}

func decodeCPU(n node) (CPU, bool) {
	if n.kind != kindObject {
		return CPU{}, false
	}
	return CPU{
		Temperature: readingAt(n, "temperature", decodeZones),
		Load:        readingAt(n, "load", decodeLoad),
	}, true
}

func decodeZones(n node) ([]TempZone, bool) {
	if n.kind != kindObject {
		return nil, false
	}
	zones := make([]TempZone, 0, len(n.fields))
	for _, f := range n.fields {
		// Broken zones keep their place with an absent temperature, so the
		// first-zone fallback never skips past them.
		zone := TempZone{Name: f.key}
		if f.val.kind == kindObject {
			zone.Type = f.val.textAt("type")
			if _, failed := f.val.errorReason(); !failed {
				zone.Celsius = f.val.numberAt("temp_celsius")
			}
		}
		zones = append(zones, zone)
	}
	return zones, true
}

func decodeLoad(n node) (Load, bool) {
	if n.kind != kindObject {
		return Load{}, false
	}
	return Load{
		One:              n.numberAt("load_1min"),
		Five:             n.numberAt("load_5min"),
		Fifteen:          n.numberAt("load_15min"),
		RunningProcesses: n.textAt("running_processes"),
		UptimeSeconds:    n.numberAt("uptime_seconds"),
	}, true
}

func decodeMemory(n node) (Memory, bool) {
	if n.kind != kindObject {
		return Memory{}, false
	}
	return Memory{
		TotalMB:     n.numberAt("total_mb"),
		UsedMB:      n.numberAt("used_mb"),
		FreeMB:      n.numberAt("free_mb"),
		AvailableMB: n.numberAt("available_mb"),
		BuffersMB:   n.numberAt("buffers_mb"),
		CachedMB:    n.numberAt("cached_mb"),
		SwapTotalMB: n.numberAt("swap_total_mb"),
		SwapUsedMB:  n.numberAt("swap_used_mb"),
		PercentUsed: n.numberAt("percent_used"),
	}, true
}

func decodeDisk(mount string, n node) (Disk, bool) {
	if n.kind != kindObject {
		return Disk{}, false
	}
	return Disk{
		Mount:       mount,
		Device:      n.textAt("device"),
		FSType:      n.textAt("fstype"),
		TotalGB:     n.numberAt("total_gb"),
		UsedGB:      n.numberAt("used_gb"),
		AvailableGB: n.numberAt("available_gb"),
		PercentUsed: n.numberAt("percent_used"),
	}, true
}

func decodeSmart(device string, n node) (Smart, bool) {
	if n.kind != kindObject {
		return Smart{}, false
	}
	s := Smart{
		Device:             n.textAt("device"),
		Model:              n.textAt("model"),
		Serial:             n.textAt("serial"),
		HealthPassed:       n.boolAt("health_passed"),
		TemperatureCelsius: n.numberAt("temperature_celsius"),
		PowerOnHours:       n.numberAt("power_on_hours"),
	}
	if s.Device == "" {
		s.Device = device
	}
	return s, true
}

// decodeContainers accepts the name->container map. The backend sends
// {"info": "..."} when the daemon is up but has no containers.
func decodeContainers(n node) ([]Keyed[Container], bool) {
	if n.kind != kindObject {
		return nil, false
	}
	if info, ok := n.get("info"); ok && info.kind == kindString {
		return []Keyed[Container]{}, true
	}
	return keyedDecoder(decodeContainer)(n)
}

func decodeContainer(name string, n node) (Container, bool) {
	if n.kind != kindObject {
		return Container{}, false
	}
	return Container{
		Name:          name,
		ID:            n.textAt("id"),
		Image:         n.textAt("image"),
		Status:        parseContainerStatus(n.textAt("status")),
		Health:        parseContainerHealth(n.textAt("health")),
		CPUPercent:    n.numberAt("cpu_percent"),
		MemoryMB:      n.numberAt("memory_mb"),
		MemoryPercent: n.numberAt("memory_percent"),
		NetworkRxMB:   n.numberAt("network_rx_mb"),
		NetworkTxMB:   n.numberAt("network_tx_mb"),
		UptimeSeconds: n.numberAt("uptime_seconds"),
		RestartCount:  n.numberAt("restart_count"),
	}, true
}

func parseContainerStatus(s string) ContainerStatus {
	switch st := ContainerStatus(strings.ToLower(s)); st {
	case ContainerRunning, ContainerRestarting, ContainerPaused, ContainerExited, ContainerDead:
		return st
	}
	return ContainerUnknown
}

func parseContainerHealth(s string) ContainerHealth {
	switch h := ContainerHealth(strings.ToLower(s)); h {
	case HealthHealthy, HealthUnhealthy, HealthStarting:
		return h
	}
	return HealthNone
}

// decodeProcesses accepts a bare list or the backend's {"processes": [...]}.
func decodeProcesses(n node) ([]Process, bool) {
	if n.kind == kindObject {
		inner, ok := n.get("processes")
		if !ok {
			return nil, false
		}
		n = inner
	}
	if n.kind != kindArray {
		return nil, false
	}
	procs := make([]Process, 0, len(n.items))
	for _, item := range n.items {
		if item.kind != kindObject {
			continue
		}
		pid := item.numberAt("pid")
		procs = append(procs, Process{
			PID:        int(pid.Value),
			Name:       item.textAt("name"),
			MemMB:      item.numberAt("mem_mb"),
			MemPercent: item.numberAt("mem_percent"),
			CPUJiffies: item.numberAt("cpu_jiffies"),
		})
	}
	return procs, true
}

func decodeOverrides(n node) Overrides {
	if n.kind != kindObject {
		return nil
	}
	out := make(Overrides)
	for _, f := range n.fields {
		kind, ok := ParseKind(f.key)
		if !ok || f.val.kind != kindObject {
			continue
		}
		out[kind] = ThresholdOverride{
			Warning:  f.val.numberAt("warning"),
			Critical: f.val.numberAt("critical"),
		}
	}
	return out
}

// NormalizeStats decodes a /api/stats payload. Unreadable fields are absent.
func NormalizeStats(raw []byte) Stats {
	root, err := parseTree(raw)
	if err != nil || root.kind != kindObject {
		return Stats{}
	}
	return Stats{
		TotalRecords:   root.numberAt("total_records"),
		DatabaseSizeMB: root.numberAt("database_size_mb"),
	}
}

// PrimaryTemperature picks the zone that represents the CPU: the first zone
// whose type contains "cpu" or "x86", otherwise the first zone.
func PrimaryTemperature(zones []TempZone) (TempZone, bool) {
	if len(zones) == 0 {
		return TempZone{}, false
	}
	for _, z := range zones {
		if strings.Contains(z.Type, "cpu") || strings.Contains(z.Type, "x86") {
			return z, true
		}
	}
	return zones[0], true
}

// CPUTemperature returns the primary zone temperature, or an absent Num.
func (s Snapshot) CPUTemperature() Num {
	return cpuTemperature(s.CPU)
}

func cpuTemperature(r Reading[CPU]) Num {
	cpu, ok := r.Get()
	if !ok {
		return Num{}
	}
	zones, ok := cpu.Temperature.Get()
	if !ok {
		return Num{}
	}
	z, ok := PrimaryTemperature(zones)
	if !ok {
		return Num{}
	}
	return z.Celsius
}

// LoadAverages returns the load reading, flattening a failed or missing CPU
// reading into the load reading's own state.
func (s Snapshot) LoadAverages() Reading[Load] {
	cpu, ok := s.CPU.Get()
	if !ok {
		if s.CPU.State() == Failed {
			return Err[Load](s.CPU.Reason())
		}
		return Reading[Load]{}
	}
	return cpu.Load
}

// TemperatureReading is the zone reading flattened the same way.
func (s Snapshot) TemperatureReading() Reading[[]TempZone] {
	cpu, ok := s.CPU.Get()
	if !ok {
		if s.CPU.State() == Failed {
			return Err[[]TempZone](s.CPU.Reason())
		}
		return Reading[[]TempZone]{}
	}
	return cpu.Temperature
}
