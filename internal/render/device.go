package render

import (
	"regexp"
	"strings"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

// Badge is a small health marker drawn on a heat tile.
type Badge int

const (
	BadgeNone Badge = iota
	BadgePass
	BadgeFail
	BadgeUnknown
)

func (b Badge) String() string {
	switch b {
	case BadgePass:
		return "pass"
	case BadgeFail:
		return "fail"
	case BadgeUnknown:
		return "unknown"
	}
	return "none"
}

// Glyph is the character drawn inside the badge.
func (b Badge) Glyph() string {
	switch b {
	case BadgePass:
		return "+"
	case BadgeFail:
		return "x"
	case BadgeUnknown:
		return "?"
	}
	return ""
}

var (
	// nvme0n1p2 -> nvme0n1, mmcblk0p1 -> mmcblk0
	pPartition = regexp.MustCompile(`^((?:nvme\d+n\d+)|(?:mmcblk\d+)|(?:loop\d+))p\d+$`)
	// sda1 -> sda, xvdb3 -> xvdb
	digitPartition = regexp.MustCompile(`^((?:s|v|h|xv)d[a-z]+)\d+$`)
)

// BaseDevice strips the /dev/ prefix and any partition suffix from a
// device path, so /dev/nvme0n1p2 and nvme0n1 both become nvme0n1.
func BaseDevice(path string) string {
	name := strings.TrimSpace(path)
	name = strings.TrimPrefix(name, "/dev/")
	if m := pPartition.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	if m := digitPartition.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

// SmartBadge resolves the SMART health badge for a device path by base
// device name. Devices without SMART data get no badge; a SMART entry
// that failed or has a null health flag is unknown.
func SmartBadge(device string, smart []metrics.Keyed[metrics.Smart]) Badge {
	if device == "" {
		return BadgeNone
	}
	base := BaseDevice(device)
	for _, entry := range smart {
		reading, ok := entry.Reading.Get()
		matches := BaseDevice(entry.Key) == base || (ok && reading.Device != "" && BaseDevice(reading.Device) == base)
		if !matches {
			continue
		}
		if !ok || reading.HealthPassed == nil {
			return BadgeUnknown
		}
		if *reading.HealthPassed {
			return BadgePass
		}
		return BadgeFail
	}
	return BadgeNone
}

// ContainerBadge maps a container health check onto a badge.
func ContainerBadge(h metrics.ContainerHealth) Badge {
	switch h {
	case metrics.HealthHealthy:
		return BadgePass
	case metrics.HealthUnhealthy:
		return BadgeFail
	case metrics.HealthStarting:
		return BadgeUnknown
	}
	return BadgeNone
}
