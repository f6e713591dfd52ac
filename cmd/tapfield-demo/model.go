package main

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tapfield/field"
	"github.com/iw2rmb/tapfield/internal/config"
)

type configReloadedMsg struct {
	cfg *config.Config
	err error
}

type status struct {
	events int
	last   field.ChangeEvent
	note   string
}

func (s *status) handleChange(ev field.ChangeEvent) {
	s.events++
	s.last = ev
}

type model struct {
	field  field.Model
	cfg    *config.Config
	status *status
	log    *slog.Logger

	termWidth int
}

func newModel(cfg *config.Config, host field.Host, log *slog.Logger) model {
	st := &status{}
	fc := cfg.FieldConfig(field.Config{
		Host:     host,
		Style:    field.DefaultStyle(),
		Logger:   log,
		OnChange: st.handleChange,
	})
	f := field.New(fc)
	st.last = f.Snapshot()
	return model{field: f, cfg: cfg, status: st, log: log}
}

func (m model) Init() tea.Cmd { return m.field.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.field = m.resize()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "ctrl+r":
			// Terminals report no key release, so held delete toggles.
			if m.field.DeleteRepeating() {
				m.field = m.field.EndDeleteRepeat()
				return m, nil
			}
			var cmd tea.Cmd
			m.field, cmd = m.field.BeginDeleteRepeat()
			return m, cmd
		case "ctrl+l":
			var cmd tea.Cmd
			m.field, cmd = m.field.ClearTextField()
			return m, cmd
		}

	case configReloadedMsg:
		if msg.err != nil {
			m.status.note = "config rejected: " + firstLine(msg.err.Error())
			if m.log != nil {
				m.log.Warn("config reload rejected", "error", msg.err)
			}
			return m, nil
		}
		m.cfg = msg.cfg
		m.field = m.resize()
		var changed bool
		m.field, changed = m.field.SetInputTraits(msg.cfg.Traits())
		m.status.note = "config reloaded"
		if changed {
			m.status.note += " (keyboard " + msg.cfg.Traits().Mode.String() + ")"
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

func (m model) resize() field.Model {
	w := m.cfg.Field.Width
	if m.termWidth > 0 && m.termWidth < w {
		w = m.termWidth
	}
	return m.field.SetSize(float64(w), float64(m.cfg.Field.Height))
}

func (m model) View() string {
	last := m.status.last
	selection := "none"
	if last.SelectionActive {
		selection = fmt.Sprintf("[%d, %d)", last.Selection.Start, last.Selection.End())
	}

	lines := []string{
		"",
		fmt.Sprintf("text: %q", m.field.ReturnText()),
		fmt.Sprintf("events: %d  cursor: %d  selection: %s  offset: %.0f",
			m.status.events, last.Cursor, selection, last.Offset),
		fmt.Sprintf("popup: %s  keyboard: %s", m.field.PopupPhase(), m.field.InputTraits().Mode),
		"ctrl+r held delete  ctrl+l clear  ctrl+q quit",
	}
	if m.status.note != "" {
		lines = append(lines, m.status.note)
	}
	return m.field.View() + strings.Join(lines, "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
