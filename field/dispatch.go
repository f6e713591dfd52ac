package field

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handlePointer(msg PointerMsg) (Model, tea.Cmd) {
	if m.buf == nil {
		return m, nil
	}

	// Presses that start on a popup button never reach the recognizer.
	if m.popupPress || (msg.Phase == PointerDown && m.popupButtonHit(msg.Point)) {
		return m.handlePopupPress(msg)
	}

	cmd := m.route(m.gestures.Handle(msg))
	return m, tea.Batch(cmd, m.scheduleGestureDeadline())
}

func (m *Model) popupButtonHit(p Point) bool {
	switch m.popup.Phase() {
	case PopupAppearing, PopupVisible:
	default:
		return false
	}
	_, ok := m.popup.Layout().ButtonAt(p, m.cfg.Metrics.PopupArrowHeight)
	return ok
}

func (m Model) handlePopupPress(msg PointerMsg) (Model, tea.Cmd) {
	switch msg.Phase {
	case PointerDown:
		m.popupPress = true
		return m, nil
	case PointerCancel:
		m.popupPress = false
		return m, nil
	case PointerUp:
		m.popupPress = false
		a, ok := m.popup.Layout().ButtonAt(msg.Point, m.cfg.Metrics.PopupArrowHeight)
		if !ok {
			return m, nil
		}
		from := m.popup.Phase()
		a, ok = m.popup.Invoke(a)
		if !ok {
			return m, nil
		}
		m.log.Debug("popup action", "action", a.String(), "from", from.String())
		cmd := m.perform(a)
		return m, tea.Batch(m.popupFrame(), cmd)
	default:
		return m, nil
	}
}

// scheduleGestureDeadline arms a single timer for the recognizer's next
// deadline. Any earlier timer is invalidated.
func (m *Model) scheduleGestureDeadline() tea.Cmd {
	m.gestureTag++
	deadline, ok := m.gestures.NextDeadline()
	if !ok {
		return nil
	}
	d := deadline.Sub(m.cfg.Clock())
	if d < 0 {
		d = 0
	}
	id, tag := m.id, m.gestureTag
	return tea.Tick(d, func(time.Time) tea.Msg {
		return gestureDeadlineMsg{id: id, tag: tag, at: deadline}
	})
}

// route plans and applies each gesture in order. The context is taken
// fresh for every gesture since earlier plans may have moved the cursor.
func (m *Model) route(gestures []Gesture) tea.Cmd {
	var cmds []tea.Cmd
	for _, g := range gestures {
		plan := Route(g, m.routeContext(g.Point))
		m.log.Debug("gesture", "kind", g.Kind.String(), "x", g.Point.X, "y", g.Point.Y, "steps", len(plan))
		cmds = append(cmds, m.apply(plan))
	}
	return tea.Batch(cmds...)
}

func (m *Model) routeContext(p Point) RouteContext {
	return RouteContext{
		Clusters:     m.ensureLayout().clusters,
		Index:        m.characterIndexAt(p),
		BeyondText:   m.beyondText(p),
		OnCursor:     m.onCursor(p),
		HasSelection: m.buf.HasSelection(),
		PopupShown:   m.popup.Shown(),
	}
}

// apply executes a routed plan against the buffer and the field state.
func (m *Model) apply(plan []Outcome) tea.Cmd {
	if len(plan) == 0 {
		return nil
	}
	var cmds []tea.Cmd
	for _, o := range plan {
		switch o.Kind {
		case OutcomeFocus:
			m.focused = true
			if m.cfg.Host != nil {
				m.cfg.Host.ChangeFocus()
			}
		case OutcomeMoveCursor, OutcomeDragMove:
			m.buf.SetCursor(o.Index)
		case OutcomeSelectRange:
			m.buf.SetSelection(o.Range.Start, o.Range.Len)
		case OutcomeSelectAll:
			m.buf.SelectAll()
		case OutcomeClearSelection:
			m.buf.ClearSelection()
		case OutcomeShowCursor:
			m.wantBlink = true
		case OutcomeHideCursor:
			m.blink.Hide()
		case OutcomeShowPopup:
			cmds = append(cmds, m.showPopup(o.Point))
		case OutcomeHidePopup:
			cmds = append(cmds, m.hidePopup())
		case OutcomeDragBegin:
			m.dragging = true
			m.blink.Hide()
		case OutcomeDragEnd:
			m.buf.SetCursor(o.Index)
			m.dragging = false
			m.wantBlink = true
		case OutcomeMagnify:
			if m.cfg.OnMagnify != nil {
				m.cfg.OnMagnify(o.Point)
			}
		}
	}
	cmds = append(cmds, m.settle())
	return tea.Batch(cmds...)
}
