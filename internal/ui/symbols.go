package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess     = "✓" // Step completed
	SymbolFail        = "✗" // Step failed or metric critical
	SymbolOK          = "●" // Metric within thresholds
	SymbolWarning     = "▲" // Metric at or above the warning threshold
	SymbolUnavailable = "○" // No data for the metric
)
