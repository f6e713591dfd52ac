package field

import (
	tea "github.com/charmbracelet/bubbletea"
)

// updateMouse adapts terminal mouse events to PointerMsg. Cells map to their
// centers in field units; coordinates are relative to the field's top-left
// cell.
func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var phase PointerPhase

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.mouseDown = true
		phase = PointerDown
	case tea.MouseActionMotion:
		if !m.mouseDown {
			return m, nil
		}
		phase = PointerMove
	case tea.MouseActionRelease:
		if !m.mouseDown {
			return m, nil
		}
		m.mouseDown = false
		phase = PointerUp
	default:
		return m, nil
	}

	return m.handlePointer(PointerMsg{
		Phase: phase,
		Point: m.cellCenter(msg.X, msg.Y),
		At:    m.cfg.Clock(),
	})
}

func (m Model) cellCenter(col, row int) Point {
	cell := m.cfg.CellSize
	return Point{X: (float64(col) + 0.5) * cell, Y: (float64(row) + 0.5) * cell}
}
