package metrics

import "strconv"

// ReadingState describes which branch of a Reading is populated.
type ReadingState int

const (
	// Missing means the payload did not carry the key or it was unreadable.
	Missing ReadingState = iota
	// Present means the reading carries data.
	Present
	// Failed means the backend reported an error for this reading.
	Failed
)

// String returns a human-readable state name.
func (s ReadingState) String() string {
	switch s {
	case Present:
		return "present"
	case Failed:
		return "failed"
	default:
		return "missing"
	}
}

// Reading is a sub-reading that either carries a value or a failure reason.
// The zero value is a Missing reading. A Reading never holds both.
type Reading[T any] struct {
	value  T
	reason string
	state  ReadingState
}

// Ok wraps a value in a present Reading.
func Ok[T any](v T) Reading[T] {
	return Reading[T]{value: v, state: Present}
}

// Err returns a failed Reading with the given reason.
func Err[T any](reason string) Reading[T] {
	if reason == "" {
		reason = "unavailable"
	}
	return Reading[T]{reason: reason, state: Failed}
}

// Get returns the value and whether the reading is present.
func (r Reading[T]) Get() (T, bool) {
	return r.value, r.state == Present
}

// State reports which branch is populated.
func (r Reading[T]) State() ReadingState {
	return r.state
}

// OK reports whether the reading carries data.
func (r Reading[T]) OK() bool {
	return r.state == Present
}

// Reason explains why the reading has no data. It is empty for present readings.
func (r Reading[T]) Reason() string {
	switch r.state {
	case Failed:
		return r.reason
	case Missing:
		return "no data"
	default:
		return ""
	}
}

// Num is a numeric field that may be absent from the payload.
// A real zero is Num{Value: 0, Valid: true}, distinct from the zero Num.
type Num struct {
	Value float64
	Valid bool
}

// Some returns a valid Num.
func Some(v float64) Num {
	return Num{Value: v, Valid: true}
}

// Or returns the value, or def when absent.
func (n Num) Or(def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Value
}

// Format renders the value with the given precision, or "--" when absent.
func (n Num) Format(prec int) string {
	if !n.Valid {
		return "--"
	}
	return strconv.FormatFloat(n.Value, 'f', prec, 64)
}

// Keyed pairs a map key from the payload with its reading, keeping the
// order in which the backend delivered the keys.
type Keyed[T any] struct {
	Key     string
	Reading Reading[T]
}
