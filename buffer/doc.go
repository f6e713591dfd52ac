// Package buffer implements the single-line text model behind a tapfield
// input surface: content, cursor, and an optional selection span.
//
// All offsets count grapheme clusters (user-perceived characters).
// Ranges are (Start, Len) spans; the covered clusters are [Start, Start+Len).
// No operation fails: out-of-range indices are clamped.
package buffer
