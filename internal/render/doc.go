// Package render draws vitals widgets onto abstract 2D surfaces.
//
// The primitives (arc gauge, waveform, segmented bar, heat tile) are plain
// functions. They keep no state between calls and recompute all geometry
// from the surface's logical size every time, so a resized surface simply
// gets a differently sized drawing on the next call.
//
// Three Surface implementations ship with the package:
//
//   - Raster draws anti-aliased shapes into an image via go-chart's drawing package.
//   - Braille maps shapes onto a grid of terminal braille cells.
//   - Recorder keeps the drawing commands for inspection in tests.
package render
