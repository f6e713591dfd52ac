package buffer

import "github.com/iw2rmb/tapfield/internal/grapheme"

// InsertText inserts s at the cursor, or replaces the active selection.
// The cursor ends up after the inserted text and the selection is cleared.
func (b *Buffer) InsertText(s string) {
	s = sanitize(s)
	if s == "" {
		b.DeleteSelection()
		return
	}

	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor}
	}
	b.replaceRange(r, grapheme.Split(s))
}

// DeleteBackward applies backspace semantics: the selection if one is
// active, else the cluster before the cursor. At offset 0 it does nothing.
func (b *Buffer) DeleteBackward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}
	if b.cursor == 0 {
		return
	}
	b.replaceRange(Range{Start: b.cursor - 1, Len: 1}, nil)
}

// DeleteForward removes the cluster after the cursor, or the selection.
func (b *Buffer) DeleteForward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}
	if b.cursor >= len(b.clusters) {
		return
	}
	b.replaceRange(Range{Start: b.cursor, Len: 1}, nil)
}

// DeleteSelection deletes the active selection, if any, leaving the cursor
// at the selection start.
func (b *Buffer) DeleteSelection() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	b.replaceRange(r, nil)
}

// Clear empties the buffer; equivalent to selecting everything and
// deleting it.
func (b *Buffer) Clear() {
	b.SelectAll()
	b.DeleteBackward()
}

func (b *Buffer) replaceRange(r Range, ins []string) {
	r = ClampRange(r, len(b.clusters))
	if r.IsEmpty() && len(ins) == 0 {
		return
	}

	out := make([]string, 0, len(b.clusters)-r.Len+len(ins))
	out = append(out, b.clusters[:r.Start]...)
	out = append(out, ins...)
	out = append(out, b.clusters[r.End():]...)

	b.clusters = out
	b.cursor = r.Start + len(ins)
	b.sel = selectionState{}
	b.version++
	b.textVersion++
}
