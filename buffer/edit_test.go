package buffer

import "testing"

func assertInvariants(t *testing.T, b *Buffer) {
	t.Helper()
	if c := b.Cursor(); c < 0 || c > b.Len() {
		t.Fatalf("cursor %d outside [0,%d]", c, b.Len())
	}
	if r, ok := b.Selection(); ok {
		if r.Start < 0 || r.End() > b.Len() || r.Len <= 0 {
			t.Fatalf("selection %v outside buffer of %d", r, b.Len())
		}
	}
}

func TestBuffer_InsertText_IntoEmpty(t *testing.T) {
	b := New("")
	b.InsertText("hello")
	if got := b.Text(); got != "hello" {
		t.Fatalf("text: got %q, want %q", got, "hello")
	}
	if got := b.Cursor(); got != 5 {
		t.Fatalf("cursor: got %d, want 5", got)
	}
	if got := b.TextVersion(); got != 1 {
		t.Fatalf("text version: got %d, want 1", got)
	}
}

func TestBuffer_InsertText_ReplacesSelection(t *testing.T) {
	b := New("the quick fox")
	b.SetSelection(4, 5)

	b.InsertText("X")
	if got, want := b.Text(), "the X fox"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got := b.Cursor(); got != 5 {
		t.Fatalf("cursor: got %d, want 5", got)
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
}

func TestBuffer_InsertText_Graphemes(t *testing.T) {
	b := New("ab")
	b.SetCursor(1)
	b.InsertText("é\U0001F44D")
	if got := b.Cursor(); got != 3 {
		t.Fatalf("cursor after cluster insert: got %d, want 3", got)
	}
	if got := b.Len(); got != 4 {
		t.Fatalf("len: got %d, want 4", got)
	}
}

func TestBuffer_InsertText_EmptyDeletesSelection(t *testing.T) {
	b := New("hello")
	b.SetSelection(1, 3)
	b.InsertText("")
	if got := b.Text(); got != "ho" {
		t.Fatalf("text: got %q, want %q", got, "ho")
	}
	if got := b.Cursor(); got != 1 {
		t.Fatalf("cursor: got %d, want 1", got)
	}
}

func TestBuffer_DeleteBackward(t *testing.T) {
	b := New("abc")
	b.SetCursor(2)
	b.DeleteBackward()
	if got := b.Text(); got != "ac" {
		t.Fatalf("text: got %q, want %q", got, "ac")
	}
	if got := b.Cursor(); got != 1 {
		t.Fatalf("cursor: got %d, want 1", got)
	}
}

func TestBuffer_DeleteBackward_AtStartIsNoop(t *testing.T) {
	b := New("")
	v := b.Version()
	b.DeleteBackward()
	if b.Text() != "" || b.Cursor() != 0 || b.Version() != v {
		t.Fatalf("delete on empty buffer changed state: text=%q cursor=%d version=%d", b.Text(), b.Cursor(), b.Version())
	}

	b = New("abc")
	v = b.Version()
	b.DeleteBackward()
	if b.Text() != "abc" || b.Version() != v {
		t.Fatalf("delete at offset 0 changed state: text=%q version=%d", b.Text(), b.Version())
	}
}

func TestBuffer_DeleteBackward_RemovesSelection(t *testing.T) {
	b := New("the quick fox")
	b.SetCursor(12)
	b.SetSelection(4, 6)
	b.DeleteBackward()
	if got, want := b.Text(), "the fox"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got := b.Cursor(); got != 4 {
		t.Fatalf("cursor: got %d, want 4", got)
	}
	if b.HasSelection() {
		t.Fatalf("expected selection cleared")
	}
}

func TestBuffer_DeleteForward(t *testing.T) {
	b := New("abc")
	b.SetCursor(1)
	b.DeleteForward()
	if got := b.Text(); got != "ac" {
		t.Fatalf("text: got %q, want %q", got, "ac")
	}
	b.SetCursor(2)
	b.DeleteForward()
	if got := b.Text(); got != "ac" {
		t.Fatalf("delete forward at end: got %q, want %q", got, "ac")
	}
}

func TestBuffer_Clear(t *testing.T) {
	b := New("hello world")
	b.SetCursor(3)
	b.Clear()
	if b.Text() != "" || b.Cursor() != 0 || b.HasSelection() {
		t.Fatalf("clear: text=%q cursor=%d sel=%v", b.Text(), b.Cursor(), b.HasSelection())
	}
	b.Clear()
	if b.Text() != "" {
		t.Fatalf("clear on empty: got %q", b.Text())
	}
}

func TestBuffer_InvariantsHoldAcrossEditSequence(t *testing.T) {
	b := New("")
	steps := []func(){
		func() { b.InsertText("one two") },
		func() { b.SetCursor(-3) },
		func() { b.DeleteBackward() },
		func() { b.SetSelection(2, 40) },
		func() { b.InsertText("Z") },
		func() { b.SetCursor(100) },
		func() { b.DeleteBackward() },
		func() { b.SelectWord(0) },
		func() { b.DeleteForward() },
		func() { b.SetSelection(-5, 2) },
		func() { b.Clear() },
		func() { b.DeleteBackward() },
	}
	for i, step := range steps {
		hadSel := b.HasSelection()
		before := b.TextVersion()
		step()
		assertInvariants(t, b)
		if hadSel && b.TextVersion() != before && b.HasSelection() {
			t.Fatalf("step %d: edit with selection left a selection behind", i)
		}
	}
}
