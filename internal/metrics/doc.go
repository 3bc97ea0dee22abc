// Package metrics holds the telemetry model shared by every vitals skin.
//
// Raw backend payloads enter through Normalize, which is the only place that
// inspects loosely typed JSON. Everything downstream works with Snapshot and
// its Reading values, where each sub-reading is exactly one of present,
// failed (the backend sent {"error": "..."}) or missing.
//
// The package also provides the threshold Classifier and the SampleBuffer
// that feeds time-series rendering.
package metrics
