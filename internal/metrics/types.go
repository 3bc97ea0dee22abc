package metrics

import "time"

// Snapshot is one point-in-time bundle of all monitored metrics.
// Each sub-reading is independently fallible.
type Snapshot struct {
	Timestamp  time.Time
	CPU        Reading[CPU]
	Memory     Reading[Memory]
	Disk       Reading[[]Keyed[Disk]]
	SMART      Reading[[]Keyed[Smart]]
	Docker     Reading[[]Keyed[Container]]
	Processes  Reading[[]Process]
	Thresholds Overrides
	// Malformed is set when the payload was not a JSON object at all.
	Malformed bool
}

// CPU groups the thermal zones and load averages.
type CPU struct {
	Temperature Reading[[]TempZone]
	Load        Reading[Load]
}

// TempZone is a single thermal zone in delivered order.
type TempZone struct {
	Name    string
	Type    string
	Celsius Num
}

// Load holds system load averages.
type Load struct {
	One              Num
	Five             Num
	Fifteen          Num
	RunningProcesses string
	UptimeSeconds    Num
}

// Memory holds memory and swap usage in megabytes.
type Memory struct {
	TotalMB     Num
	UsedMB      Num
	FreeMB      Num
	AvailableMB Num
	BuffersMB   Num
	CachedMB    Num
	SwapTotalMB Num
	SwapUsedMB  Num
	PercentUsed Num
}

// Disk holds usage for one mount point.
type Disk struct {
	Mount       string
	Device      string
	FSType      string
	TotalGB     Num
	UsedGB      Num
	AvailableGB Num
	PercentUsed Num
}

// Smart holds drive health as reported by smartctl.
type Smart struct {
	Device             string
	Model              string
	Serial             string
	HealthPassed       *bool
	TemperatureCelsius Num
	PowerOnHours       Num
}

// PowerOnDays converts power-on hours to whole days.
func (s Smart) PowerOnDays() Num {
	if !s.PowerOnHours.Valid {
		return Num{}
	}
	return Some(float64(int(s.PowerOnHours.Value / 24)))
}

// ContainerStatus is the lifecycle state of a container.
type ContainerStatus string

const (
	ContainerRunning    ContainerStatus = "running"
	ContainerRestarting ContainerStatus = "restarting"
	ContainerPaused     ContainerStatus = "paused"
	ContainerExited     ContainerStatus = "exited"
	ContainerDead       ContainerStatus = "dead"
	ContainerUnknown    ContainerStatus = "unknown"
)

// ContainerHealth is the result of the container's own health check.
type ContainerHealth string

const (
	HealthHealthy   ContainerHealth = "healthy"
	HealthUnhealthy ContainerHealth = "unhealthy"
	HealthStarting  ContainerHealth = "starting"
	HealthNone      ContainerHealth = "none"
)

// Container holds the state and resource usage of one container.
type Container struct {
	Name          string
	ID            string
	Image         string
	Status        ContainerStatus
	Health        ContainerHealth
	CPUPercent    Num
	MemoryMB      Num
	MemoryPercent Num
	NetworkRxMB   Num
	NetworkTxMB   Num
	UptimeSeconds Num
	RestartCount  Num
}

// Process is one entry of the process table.
type Process struct {
	PID        int
	Name       string
	MemMB      Num
	MemPercent Num
	CPUJiffies Num
}

// Stats describes the backend's metric store.
type Stats struct {
	TotalRecords   Num
	DatabaseSizeMB Num
}
