package field

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/tapfield/internal/grapheme"
)

// View renders the field into a block of terminal cells: the text line at
// the vertical center and the popup, when shown, composited above it.
func (m Model) View() string {
	base := (&m).renderField()
	if v, ok := (&m).renderPopup(base); ok {
		return v
	}
	return base
}

func (m *Model) gridSize() (cols, rows int) {
	cell := m.cfg.CellSize
	cols = int(math.Floor(m.width/cell + 1e-9))
	rows = maxInt(int(math.Floor(m.height/cell+1e-9)), 1)
	return cols, rows
}

func (m *Model) renderField() string {
	cols, rows := m.gridSize()
	if cols <= 0 {
		return strings.Repeat("\n", rows-1)
	}

	lineRow := clampInt(int(math.Floor(m.lineRect().Y/m.cfg.CellSize+1e-9)), 0, rows-1)
	blank := strings.Repeat(" ", cols)

	out := make([]string, rows)
	for i := range out {
		out[i] = blank
	}
	out[lineRow] = m.renderLine(cols)
	return strings.Join(out, "\n")
}

// renderLine draws the clusters that fit fully inside the viewport.
func (m *Model) renderLine(cols int) string {
	l := m.ensureLayout()
	cell := m.cfg.CellSize
	st := m.cfg.Style

	sel, hasSel := m.buf.Selection()
	cursor := m.buf.Cursor()
	showCursor := m.cursorVisible()
	left := m.offset / cell

	var sb strings.Builder
	used := 0
	pad := func(to int) {
		if to > used {
			sb.WriteString(st.Text.Render(strings.Repeat(" ", to-used)))
			used = to
		}
	}

	// A cursor parked on the trailing edge takes over the last column.
	endX := int(math.Round(l.width()/cell - left))
	endCursor := showCursor && cursor == len(l.clusters)
	limit := cols
	if endCursor && endX == cols {
		endX = cols - 1
		limit = cols - 1
	}

	for i, c := range l.clusters {
		x0 := l.bounds[i]/cell - left
		x1 := l.bounds[i+1]/cell - left
		if x0 < -1e-9 {
			continue
		}
		if x1 > float64(limit)+1e-9 {
			break
		}
		pad(int(math.Round(x0)))

		style := st.Text
		if hasSel && sel.Contains(i) {
			style = st.Selection
		}
		if showCursor && i == cursor {
			style = st.Cursor
		}
		sb.WriteString(style.Render(c))
		used += maxInt(grapheme.Width(c), 1)
	}

	if endCursor {
		if x := endX; x >= 0 && x < cols {
			pad(x)
			sb.WriteString(st.Cursor.Render(" "))
			used++
		}
	}

	pad(cols)
	return sb.String()
}

func (m *Model) renderPopup(base string) (string, bool) {
	if !m.popup.Shown() {
		return "", false
	}
	cell := m.cfg.CellSize
	cols, _ := m.gridSize()
	layout := m.popup.Layout()

	scale := clampFloat(m.popup.Scale(), 0, 1)
	fullW := int(math.Round(layout.Frame.W / cell))
	w := int(math.Round(float64(fullW) * scale))
	frame := m.cfg.Style.Popup.GetHorizontalFrameSize()
	inner := w - frame
	if inner < len(popupActions) {
		return "", false
	}

	box := m.cfg.Style.Popup.Render(m.renderPopupButtons(inner))

	x := int(math.Round(layout.Frame.X/cell)) + (fullW-w)/2
	x = clampInt(x, 0, maxInt(cols-lipgloss.Width(box), 0))
	y := maxInt(int(math.Round(layout.Frame.Y/cell)), 0)

	return overlay.Composite(box, base, overlay.Left, overlay.Top, x, y), true
}

func (m *Model) renderPopupButtons(width int) string {
	n := len(popupActions)
	seg := width / n
	parts := make([]string, 0, n)
	for i, a := range popupActions {
		w := seg
		if i == n-1 {
			w = width - seg*(n-1)
		}
		parts = append(parts, m.cfg.Style.PopupButton.
			Width(w).
			MaxWidth(w).
			MaxHeight(1).
			Align(lipgloss.Center).
			Render(a.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
