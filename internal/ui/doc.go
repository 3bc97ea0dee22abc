// Package ui provides the line-oriented terminal output used by the vitals
// CLI: semantic ANSI colors, status symbols, tables, a header and a fetch
// spinner. The full-screen dashboard lives in internal/dashboard and uses
// the skin palettes from internal/render instead.
//
// Use DisableColors() to switch to monochrome output (for --no-color).
package ui
