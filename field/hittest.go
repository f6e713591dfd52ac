package field

// ensureLayout returns the boundary layout for the current text, rebuilding
// it when the text version moved.
func (m *Model) ensureLayout() textLayout {
	if m.buf == nil {
		return textLayout{valid: true, bounds: []float64{0}}
	}
	ver := m.buf.TextVersion()
	if m.layout.valid && m.layout.version == ver {
		return m.layout
	}
	l := buildTextLayout(m.buf.Clusters(), m.cfg.Measurer)
	l.version = ver
	m.layout = l
	return l
}

// CharacterIndexAt maps a field-local point to the nearest character
// boundary, taking the scroll offset into account. Points past the rendered
// text map to the text length.
func (m Model) CharacterIndexAt(p Point) int {
	return (&m).characterIndexAt(p)
}

func (m *Model) characterIndexAt(p Point) int {
	l := m.ensureLayout()
	x := p.X + m.offset
	if x > l.width() {
		return len(l.clusters)
	}
	return l.indexForX(x)
}

// beyondText reports whether p lies to the right of all rendered text.
func (m *Model) beyondText(p Point) bool {
	return p.X+m.offset > m.ensureLayout().width()
}

// lineRect is the rectangle of the text line, vertically centered.
func (m Model) lineRect() Rect {
	h := m.cfg.Metrics.LineHeight
	return Rect{X: 0, Y: (m.height - h) / 2, W: m.width, H: h}
}

// CursorFrame returns the cursor glyph rectangle in field-local units.
func (m Model) CursorFrame() Rect {
	return (&m).cursorFrame()
}

func (m *Model) cursorFrame() Rect {
	line := m.lineRect()
	x := 0.0
	if m.buf != nil {
		x = m.ensureLayout().xForIndex(m.buf.Cursor())
	}
	return Rect{
		X: x - m.offset,
		Y: line.Y,
		W: m.cfg.Metrics.CursorWidth,
		H: line.H,
	}
}

func (m *Model) onCursor(p Point) bool {
	slop := m.cfg.Metrics.CursorHitSlop
	return m.cursorFrame().Outset(slop, slop).Contains(p)
}
