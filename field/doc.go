// Package field provides a single-line, touch-driven text input surface as
// a Bubble Tea component backed by the buffer package.
//
// The package turns raw pointer events into tap, pan, and long-press
// gestures, routes each gesture to exactly one edit/selection plan, keeps
// the cursor inside the horizontal viewport, blinks the cursor, and runs
// the cut/copy/paste popup as an animated, exclusive overlay.
//
// Geometry is expressed in float64 units. A touch host passes pixels and a
// font-backed Measurer; the terminal rendering in View treats CellSize
// units as one cell.
package field
