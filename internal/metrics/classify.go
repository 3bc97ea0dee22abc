package metrics

import "fmt"

// Kind names a classified metric.
type Kind string

const (
	KindTemperature Kind = "temperature"
	KindMemory      Kind = "memory"
	KindDisk        Kind = "disk"
)

// Kinds returns all classified metric kinds in display order.
func Kinds() []Kind {
	return []Kind{KindTemperature, KindMemory, KindDisk}
}

// ParseKind maps a threshold key from the payload or config to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindTemperature, KindMemory, KindDisk:
		return Kind(s), true
	}
	return "", false
}

// Status is a derived severity. Higher values are more severe.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
)

func (s Status) String() string {
	switch s {
	case StatusWarning:
		return "warning"
	case StatusCritical:
		return "critical"
	default:
		return "ok"
	}
}

// Threshold is a warning/critical boundary pair. Both are inclusive.
type Threshold struct {
	Warning  float64 `yaml:"warning" mapstructure:"warning"`
	Critical float64 `yaml:"critical" mapstructure:"critical"`
}

// ThresholdSet holds one Threshold per Kind. It is a value type so a
// whole set is swapped at once.
type ThresholdSet struct {
	Temperature Threshold
	Memory      Threshold
	Disk        Threshold
}

// Built-in defaults, used for any kind or field nobody overrides.
var (
	DefaultTemperature = Threshold{Warning: 70, Critical: 85}
	DefaultMemory      = Threshold{Warning: 85, Critical: 95}
	DefaultDisk        = Threshold{Warning: 80, Critical: 95}
)

// DefaultThresholds returns the built-in threshold set.
func DefaultThresholds() ThresholdSet {
	return ThresholdSet{
		Temperature: DefaultTemperature,
		Memory:      DefaultMemory,
		Disk:        DefaultDisk,
	}
}

// For returns the threshold for kind. Each unset (zero) field falls back
// to the built-in default for that kind. Unknown kinds have no threshold.
func (s ThresholdSet) For(kind Kind) Threshold {
	var t, def Threshold
	switch kind {
	case KindTemperature:
		t, def = s.Temperature, DefaultTemperature
	case KindMemory:
		t, def = s.Memory, DefaultMemory
	case KindDisk:
		t, def = s.Disk, DefaultDisk
	default:
		return Threshold{}
	}
	if t.Warning == 0 {
		t.Warning = def.Warning
	}
	if t.Critical == 0 {
		t.Critical = def.Critical
	}
	return t
}

func (s *ThresholdSet) set(kind Kind, t Threshold) {
	switch kind {
	case KindTemperature:
		s.Temperature = t
	case KindMemory:
		s.Memory = t
	case KindDisk:
		s.Disk = t
	}
}

// ThresholdOverride is a partially specified threshold from the payload.
type ThresholdOverride struct {
	Warning  Num
	Critical Num
}

// Overrides are threshold entries delivered by the backend or config.
// Kinds and fields that are absent keep the value they are layered over.
type Overrides map[Kind]ThresholdOverride

// Apply returns a new set with o layered on top of s, field by field.
func (s ThresholdSet) Apply(o Overrides) ThresholdSet {
	out := s
	for _, kind := range Kinds() {
		ov, ok := o[kind]
		if !ok {
			continue
		}
		t := out.For(kind)
		if ov.Warning.Valid {
			t.Warning = ov.Warning.Value
		}
		if ov.Critical.Valid {
			t.Critical = ov.Critical.Value
		}
		out.set(kind, t)
	}
	return out
}

// Validate checks that every threshold is within 0-100 and ordered.
func (s ThresholdSet) Validate() error {
	for _, kind := range Kinds() {
		t := s.For(kind)
		if t.Warning < 0 || t.Warning > 100 {
			return fmt.Errorf("%s warning threshold must be 0-100, got %g", kind, t.Warning)
		}
		if t.Critical < 0 || t.Critical > 100 {
			return fmt.Errorf("%s critical threshold must be 0-100, got %g", kind, t.Critical)
		}
		if t.Warning >= t.Critical {
			return fmt.Errorf("%s warning threshold (%g) must be less than critical (%g)", kind, t.Warning, t.Critical)
		}
	}
	return nil
}

// Classify maps a value onto a Status using the threshold for kind.
// Critical is checked first, so a value meeting both bounds is critical.
func Classify(value float64, kind Kind, set ThresholdSet) Status {
	t := set.For(kind)
	if t == (Threshold{}) {
		return StatusOK
	}
	if value >= t.Critical {
		return StatusCritical
	}
	if value >= t.Warning {
		return StatusWarning
	}
	return StatusOK
}
