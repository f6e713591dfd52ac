package field

// ComputeOffset returns the horizontal scroll offset that keeps a cursor at
// cursorX visible inside viewWidth.
//
// The reveal is greedy: the viewport moves only far enough to show the
// cursor, landing it on the leading edge when scrolling left and padding
// units inside the trailing edge when scrolling right. The result is always
// within [0, max(totalWidth-viewWidth, 0)].
func ComputeOffset(cursorX, totalWidth, viewWidth, currentOffset, padding float64) float64 {
	next := currentOffset

	inView := cursorX - currentOffset
	if inView < 0 {
		next = cursorX
	} else if inView > viewWidth {
		next = cursorX - viewWidth + padding
		if next > cursorX {
			next = cursorX
		}
	}

	maxOffset := totalWidth - viewWidth
	if maxOffset < 0 {
		maxOffset = 0
	}
	return clampFloat(next, 0, maxOffset)
}

func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	l := m.ensureLayout()
	m.offset = ComputeOffset(
		l.xForIndex(m.buf.Cursor()),
		l.width(),
		m.width,
		m.offset,
		m.cfg.Metrics.RevealPadding,
	)
}

// Offset returns the current horizontal scroll offset.
func (m Model) Offset() float64 { return m.offset }
