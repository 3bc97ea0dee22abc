package source

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

const (
	mb = 1024 * 1024
	gb = 1024 * 1024 * 1024

	// DefaultLocalHistory keeps a day of one-minute samples.
	DefaultLocalHistory = 1440
	// topProcesses matches what the backend reports.
	topProcesses = 12
)

// ProcessInfo is the part of a process the snapshot reports.
type ProcessInfo struct {
	PID        int32
	Name       string
	RSS        uint64
	MemPercent float32
	CPUSeconds float64
}

// Collectors are the system probes used by Local. Nil fields fall back
// to gopsutil.
type Collectors struct {
	Temperatures func(ctx context.Context) ([]sensors.TemperatureStat, error)
	LoadAvg      func(ctx context.Context) (*load.AvgStat, error)
	LoadMisc     func(ctx context.Context) (*load.MiscStat, error)
	Uptime       func(ctx context.Context) (uint64, error)
	Virtual      func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	Swap         func(ctx context.Context) (*mem.SwapMemoryStat, error)
	Partitions   func(ctx context.Context) ([]disk.PartitionStat, error)
	Usage        func(ctx context.Context, path string) (*disk.UsageStat, error)
	Processes    func(ctx context.Context) ([]ProcessInfo, error)
}

func (c *Collectors) defaults() {
	if c.Temperatures == nil {
		c.Temperatures = sensors.TemperaturesWithContext
	}
	if c.LoadAvg == nil {
		c.LoadAvg = load.AvgWithContext
	}
	if c.LoadMisc == nil {
		c.LoadMisc = load.MiscWithContext
	}
	if c.Uptime == nil {
		c.Uptime = host.UptimeWithContext
	}
	if c.Virtual == nil {
		c.Virtual = mem.VirtualMemoryWithContext
	}
	if c.Swap == nil {
		c.Swap = mem.SwapMemoryWithContext
	}
	if c.Partitions == nil {
		c.Partitions = func(ctx context.Context) ([]disk.PartitionStat, error) {
			return disk.PartitionsWithContext(ctx, false)
		}
	}
	if c.Usage == nil {
		c.Usage = disk.UsageWithContext
	}
	if c.Processes == nil {
		c.Processes = topByRSS
	}
}

// LocalOptions configures a Local source.
type LocalOptions struct {
	Collectors Collectors
	// HistorySize bounds the in-session history. Defaults to DefaultLocalHistory.
	HistorySize int
	Now         func() time.Time
}

// Local reads this machine through gopsutil and answers with documents
// shaped like the backend's. It has no storage: history is whatever
// Current has collected since the source was opened.
type Local struct {
	probes Collectors
	now    func() time.Time
	limit  int

	mu      sync.Mutex
	history []record
}

type record struct {
	at     time.Time
	cpu    interface{}
	memory interface{}
}

// NewLocal creates a local source.
func NewLocal(opts LocalOptions) *Local {
	probes := opts.Collectors
	probes.defaults()
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	limit := opts.HistorySize
	if limit <= 0 {
		limit = DefaultLocalHistory
	}
	return &Local{probes: probes, now: now, limit: limit}
}

// Current collects a snapshot and records it for History. Probes fail
// independently; a failed probe becomes an {"error": ...} entry.
func (l *Local) Current(ctx context.Context) ([]byte, error) {
	at := l.now()
	cpu := l.cpu(ctx)
	memory := l.memory(ctx)

	doc := object{}.
		with("timestamp", at.UTC().Format(time.RFC3339Nano)).
		with("cpu", cpu).
		with("memory", memory).
		with("disk", l.disks(ctx)).
		with("smart", failure("SMART data needs the backend's smartctl collector")).
		with("docker", failure("container stats need the backend")).
		with("processes", l.processes(ctx))

	l.mu.Lock()
	l.history = append(l.history, record{at: at, cpu: cpu, memory: memory})
	if over := len(l.history) - l.limit; over > 0 {
		l.history = append(l.history[:0:0], l.history[over:]...)
	}
	l.mu.Unlock()

	return json.Marshal(doc)
}

// History returns the recorded samples of kind within the last hours.
func (l *Local) History(ctx context.Context, kind metrics.HistoryKind, hours int) ([]byte, error) {
	if kind != metrics.HistoryCPU && kind != metrics.HistoryMemory {
		return json.Marshal(failure(fmt.Sprintf("unknown metric type %q", kind)))
	}
	hours = ClampHours(hours)
	cutoff := l.now().Add(-time.Duration(hours) * time.Hour)

	l.mu.Lock()
	data := make([]object, 0, len(l.history))
	for _, r := range l.history {
		if r.at.Before(cutoff) {
			continue
		}
		v := r.cpu
		if kind == metrics.HistoryMemory {
			v = r.memory
		}
		data = append(data, object{}.with("timestamp", r.at.UTC().Format(time.RFC3339Nano)).with("data", v))
	}
	l.mu.Unlock()

	return json.Marshal(object{}.
		with("metric_type", string(kind)).
		with("hours", hours).
		with("data", data))
}

// Stats describes the in-session history.
func (l *Local) Stats(ctx context.Context) ([]byte, error) {
	l.mu.Lock()
	n := len(l.history)
	var oldest interface{}
	if n > 0 {
		oldest = l.history[0].at.UTC().Format(time.RFC3339Nano)
	}
	l.mu.Unlock()

	return json.Marshal(object{}.
		with("total_records", n*2).
		with("records_by_type", object{}.with("cpu", n).with("memory", n)).
		with("oldest_record", oldest).
		with("database_size_mb", 0))
}

func (l *Local) Close() error { return nil }

func (l *Local) cpu(ctx context.Context) object {
	var temps interface{}
	zones, err := l.probes.Temperatures(ctx)
	switch {
	case len(zones) > 0:
		// partial results come with a warning error; keep what was read
		z := object{}
		for _, t := range zones {
			z = z.with(t.SensorKey, object{}.with("type", t.SensorKey).with("temp_celsius", t.Temperature))
		}
		temps = z
	case err != nil:
		temps = failure(err.Error())
	default:
		temps = failure("no temperature sensors found")
	}

	var loadDoc interface{}
	if avg, err := l.probes.LoadAvg(ctx); err != nil {
		loadDoc = failure(err.Error())
	} else {
		ld := object{}.
			with("load_1min", avg.Load1).
			with("load_5min", avg.Load5).
			with("load_15min", avg.Load15)
		if misc, err := l.probes.LoadMisc(ctx); err == nil {
			ld = ld.with("running_processes", fmt.Sprintf("%d/%d", misc.ProcsRunning, misc.ProcsTotal))
		}
		if up, err := l.probes.Uptime(ctx); err == nil {
			ld = ld.with("uptime_seconds", up)
		}
		loadDoc = ld
	}

	return object{}.with("temperature", temps).with("load", loadDoc)
}

func (l *Local) memory(ctx context.Context) object {
	v, err := l.probes.Virtual(ctx)
	if err != nil {
		return failure(err.Error())
	}
	m := object{}.
		with("total_mb", v.Total/mb).
		with("used_mb", v.Used/mb).
		with("free_mb", v.Free/mb).
		with("available_mb", v.Available/mb).
		with("buffers_mb", v.Buffers/mb).
		with("cached_mb", v.Cached/mb).
		with("percent_used", round1(v.UsedPercent))
	if s, err := l.probes.Swap(ctx); err == nil {
		m = m.with("swap_total_mb", s.Total/mb).with("swap_used_mb", s.Used/mb)
	}
	return m
}

// disks reports physical filesystems, one entry per mountpoint.
func (l *Local) disks(ctx context.Context) object {
	parts, err := l.probes.Partitions(ctx)
	if err != nil {
		return failure(err.Error())
	}
	out := object{}
	seen := make(map[string]bool)
	for _, p := range parts {
		if seen[p.Mountpoint] || !strings.HasPrefix(p.Device, "/dev/") || strings.HasPrefix(p.Device, "/dev/loop") {
			continue
		}
		seen[p.Mountpoint] = true

		u, err := l.probes.Usage(ctx, p.Mountpoint)
		if err != nil {
			out = out.with(p.Mountpoint, failure(err.Error()))
			continue
		}
		out = out.with(p.Mountpoint, object{}.
			with("device", p.Device).
			with("fstype", p.Fstype).
			with("total_gb", round1(float64(u.Total)/gb)).
			with("used_gb", round1(float64(u.Used)/gb)).
			with("available_gb", round1(float64(u.Free)/gb)).
			with("percent_used", round1(u.UsedPercent)))
	}
	return out
}

func (l *Local) processes(ctx context.Context) object {
	procs, err := l.probes.Processes(ctx)
	if err != nil {
		return failure(err.Error())
	}
	list := make([]object, 0, len(procs))
	for _, p := range procs {
		list = append(list, object{}.
			with("pid", p.PID).
			with("name", p.Name).
			with("mem_mb", round1(float64(p.RSS)/mb)).
			with("mem_percent", round1(float64(p.MemPercent))).
			with("cpu_jiffies", int64(p.CPUSeconds*100)))
	}
	return object{}.with("processes", list)
}

// topByRSS lists the processes with the most resident memory. Processes
// that vanish or deny access while being read are skipped.
func topByRSS(ctx context.Context) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		memInfo, err := p.MemoryInfoWithContext(ctx)
		if err != nil || memInfo == nil {
			continue
		}
		info := ProcessInfo{PID: p.Pid, RSS: memInfo.RSS}
		info.Name, _ = p.NameWithContext(ctx)
		info.MemPercent, _ = p.MemoryPercentWithContext(ctx)
		if times, err := p.TimesWithContext(ctx); err == nil && times != nil {
			info.CPUSeconds = times.User + times.System
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].RSS > infos[j].RSS })
	if len(infos) > topProcesses {
		infos = infos[:topProcesses]
	}
	return infos, nil
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
