package buffer

import (
	"strings"

	"github.com/iw2rmb/tapfield/internal/grapheme"
)

type selectionState struct {
	active bool
	r      Range
}

// Buffer is the pure input-surface state: text, cursor, and selection.
//
// Version increments on every observable change (text, cursor, or
// selection); TextVersion only when the text itself changes.
type Buffer struct {
	clusters []string

	version     uint64
	textVersion uint64

	cursor int
	sel    selectionState
}

func New(text string) *Buffer {
	return &Buffer{clusters: grapheme.Split(sanitize(text))}
}

func (b *Buffer) Text() string { return grapheme.Join(b.clusters) }

// Len returns the number of clusters in the buffer.
func (b *Buffer) Len() int { return len(b.clusters) }

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) TextVersion() uint64 { return b.textVersion }

func (b *Buffer) Cursor() int { return b.cursor }

// Clusters returns a copy of the buffer's grapheme clusters.
func (b *Buffer) Clusters() []string {
	return append([]string(nil), b.clusters...)
}

// ClusterAt returns the cluster at index, if any.
func (b *Buffer) ClusterAt(index int) (string, bool) {
	if index < 0 || index >= len(b.clusters) {
		return "", false
	}
	return b.clusters[index], true
}

// Slice returns the text of clusters [start, end), clamped to bounds.
func (b *Buffer) Slice(start, end int) string {
	start = clampInt(start, 0, len(b.clusters))
	end = clampInt(end, start, len(b.clusters))
	return grapheme.Join(b.clusters[start:end])
}

// SetCursor moves the cursor to index, clamped to [0, Len()].
// The selection is left untouched; callers clear it explicitly.
func (b *Buffer) SetCursor(index int) {
	next := clampInt(index, 0, len(b.clusters))
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
}

// Selection returns the active selection. Empty selections are inactive.
func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active || b.sel.r.IsEmpty() {
		return Range{}, false
	}
	return b.sel.r, true
}

func (b *Buffer) HasSelection() bool {
	_, ok := b.Selection()
	return ok
}

// SelectedText returns the text covered by the active selection, or "".
func (b *Buffer) SelectedText() string {
	r, ok := b.Selection()
	if !ok {
		return ""
	}
	return b.Slice(r.Start, r.End())
}

// SetSelection selects length clusters starting at start. The span is
// clamped to the buffer; a span that clamps to empty clears the selection.
func (b *Buffer) SetSelection(start, length int) {
	r := ClampRange(Range{Start: start, Len: length}, len(b.clusters))
	next := selectionState{active: true, r: r}
	if r.IsEmpty() {
		next = selectionState{}
	}

	prev, prevOK := b.Selection()
	if prevOK == next.active && (!prevOK || prev == next.r) {
		return
	}
	b.sel = next
	b.version++
}

// SelectAll selects the whole text. It is a no-op on an empty buffer.
func (b *Buffer) SelectAll() {
	r := WholeRange(b.clusters)
	b.SetSelection(r.Start, r.Len)
}

func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	wasVisible := !b.sel.r.IsEmpty()
	b.sel = selectionState{}
	if wasVisible {
		b.version++
	}
}

// sanitize folds line breaks into spaces; the buffer is single-line.
func sanitize(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
