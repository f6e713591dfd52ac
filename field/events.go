package field

import "github.com/iw2rmb/tapfield/buffer"

// ChangeEvent is the render snapshot passed to Config.OnChange whenever the
// buffer, the selection, or the viewport changes.
type ChangeEvent struct {
	Version uint64
	Text    string
	Cursor  int

	Selection       buffer.Range
	SelectionActive bool

	Offset float64
	// CursorFrame is the cursor glyph rect in field-local units.
	CursorFrame   Rect
	CursorVisible bool
}

// Snapshot returns the current render state.
func (m Model) Snapshot() ChangeEvent {
	return (&m).snapshot()
}

func (m *Model) snapshot() ChangeEvent {
	ev := ChangeEvent{
		Offset:        m.offset,
		CursorFrame:   m.cursorFrame(),
		CursorVisible: m.cursorVisible(),
	}
	if m.buf == nil {
		return ev
	}
	ev.Version = m.buf.Version()
	ev.Text = m.buf.Text()
	ev.Cursor = m.buf.Cursor()
	if r, ok := m.buf.Selection(); ok {
		ev.Selection = r
		ev.SelectionActive = true
	}
	return ev
}

// emitChange calls OnChange if the buffer or viewport moved since the last
// emission.
func (m *Model) emitChange() {
	if m.buf == nil || m.cfg.OnChange == nil {
		return
	}
	ver := m.buf.Version()
	if ver == m.lastEmitVersion && m.offset == m.lastEmitOffset {
		return
	}
	m.lastEmitVersion = ver
	m.lastEmitOffset = m.offset
	m.cfg.OnChange(m.snapshot())
}
