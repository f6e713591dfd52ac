package field

import (
	tea "github.com/charmbracelet/bubbletea"
)

// perform runs a popup action. The popup has already been dismissed.
func (m *Model) perform(a PopupAction) tea.Cmd {
	switch a {
	case ActionCut:
		m.cutSelection()
	case ActionCopy:
		m.copySelection()
	case ActionPaste:
		m.pasteFromHost()
	}
	return m.settle()
}

func (m *Model) copySelection() {
	if m.cfg.Host == nil || m.buf == nil {
		return
	}
	s := m.buf.SelectedText()
	if s == "" {
		return
	}
	if err := m.cfg.Host.AddToPasteBoard(s); err != nil {
		m.log.Warn("copy to pasteboard failed", "error", err)
	}
}

// cutSelection keeps the text when the pasteboard write fails.
func (m *Model) cutSelection() {
	if m.cfg.Host == nil || m.buf == nil {
		return
	}
	s := m.buf.SelectedText()
	if s == "" {
		return
	}
	if err := m.cfg.Host.AddToPasteBoard(s); err != nil {
		m.log.Warn("cut to pasteboard failed", "error", err)
		return
	}
	m.buf.DeleteSelection()
	m.wantBlink = true
}

func (m *Model) pasteFromHost() {
	if m.cfg.Host == nil || m.buf == nil {
		return
	}
	s, err := m.cfg.Host.FetchFromPasteBoard()
	if err != nil {
		m.log.Warn("fetch from pasteboard failed", "error", err)
		return
	}
	if s == "" {
		return
	}
	m.buf.InsertText(s)
	m.wantBlink = true
}
