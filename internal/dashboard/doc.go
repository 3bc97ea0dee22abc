// Package dashboard drives the vitals widgets.
//
// The Orchestrator owns the current snapshot, the effective thresholds and
// the rolling sample buffers. It runs two cycles against a source.Source:
//
//	live        every interval and on RefreshNow; classifies the snapshot,
//	            pushes one sample per series and redraws every widget
//	historical  on Initialize and SetTimeRange; replaces the series buffers
//	            and redraws only the waveforms and charts
//
// A failed live cycle keeps the last good snapshot on screen and flips the
// indicator to error. Every fetch carries a sequence number and a response
// older than the newest applied one for the same resource is dropped.
//
// Widgets draw onto surfaces supplied through Bindings, so the same
// orchestrator serves the Bubble Tea dashboard in this package (braille
// surfaces) and the PNG exporter in internal/cli (raster surfaces).
package dashboard
