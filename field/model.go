package field

import (
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tapfield/buffer"
)

var lastID atomic.Int64

func nextID() int { return int(lastID.Add(1)) }

type gestureDeadlineMsg struct {
	id  int
	tag int
	at  time.Time
}

type popupFrameMsg struct {
	id  int
	tag int
}

// Model is a Bubble Tea component that owns a text buffer and turns pointer
// gestures and keystrokes into edits, selection, and popup commands.
//
// All state changes happen inside Update (or the edit methods the host
// calls from its own Update), so they are serialized on the program's event
// loop.
type Model struct {
	id  int
	cfg Config
	buf *buffer.Buffer
	log *slog.Logger

	focused bool

	width, height float64
	offset        float64
	layout        textLayout

	blink     blinker
	wantBlink bool
	dragging  bool

	gestures   Recognizer
	gestureTag int
	mouseDown  bool

	popup      PopupController
	popupPress bool

	repeat repeatDelete
	traits InputTraits

	lastTextVersion uint64
	lastCursor      int
	lastEmitVersion uint64
	lastEmitOffset  float64
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	id := nextID()
	m := Model{
		id:       id,
		cfg:      cfg,
		buf:      buffer.New(cfg.Text),
		log:      cfg.Logger.With("component", "field", "field_id", id),
		focused:  true,
		width:    cfg.Width,
		height:   cfg.Height,
		blink:    newBlinker(id, cfg.BlinkInterval),
		gestures: NewRecognizer(cfg.Gestures),
		popup:    NewPopupController(cfg.Popup),
		repeat:   newRepeatDelete(id, cfg.RepeatSteps),
		traits:   cfg.Traits,
	}
	if m.height <= 0 {
		m.height = cfg.Metrics.LineHeight
	}
	m.buf.SetCursor(m.buf.Len())
	m.lastTextVersion = m.buf.TextVersion()
	m.lastCursor = m.buf.Cursor()
	m.followCursor()
	m.blink.Start()
	m.lastEmitVersion = m.buf.Version()
	m.lastEmitOffset = m.offset
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	if m.blink.Running() {
		return m.blink.tick()
	}
	return nil
}

// SetSize sets the view size in units.
func (m Model) SetSize(width, height float64) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width, m.height = width, height
	m.followCursor()
	m.emitChange()
	return m
}

func (m Model) Size() (width, height float64) { return m.width, m.height }

func (m Model) Focus() (Model, tea.Cmd) {
	if m.focused {
		return m, nil
	}
	m.focused = true
	return m, m.settle()
}

// Blur hides the cursor and dismisses the popup.
func (m Model) Blur() (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	m.focused = false
	m.blink.Hide()
	m.dragging = false
	return m, m.hidePopup()
}

func (m Model) Focused() bool { return m.focused }

// Dragging reports whether a cursor drag is in progress.
func (m Model) Dragging() bool { return m.dragging }

// CursorVisible reports whether the cursor glyph is currently drawn.
func (m Model) CursorVisible() bool { return m.cursorVisible() }

func (m Model) cursorVisible() bool {
	if !m.focused || m.dragging || m.buf == nil || m.buf.HasSelection() {
		return false
	}
	return m.blink.Visible()
}

// PopupPhase returns the popup lifecycle state.
func (m Model) PopupPhase() PopupPhase { return m.popup.Phase() }

// PopupLayout returns the placed popup, valid while PopupPhase is not
// PopupHidden.
func (m Model) PopupLayout() PopupLayout { return m.popup.Layout() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PointerMsg:
		return m.handlePointer(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		return m.updateKey(msg)

	case blinkMsg:
		return m, m.blink.Update(msg)

	case gestureDeadlineMsg:
		if msg.id != m.id || msg.tag != m.gestureTag {
			return m, nil
		}
		cmd := m.route(m.gestures.Expire(msg.at))
		return m, tea.Batch(cmd, m.scheduleGestureDeadline())

	case popupFrameMsg:
		if msg.id != m.id || msg.tag != m.popup.Tag() || !m.popup.Animating() {
			return m, nil
		}
		from := m.popup.Phase()
		if m.popup.Advance(m.cfg.Popup.FrameInterval) {
			m.log.Debug("popup animation finished", "from", from.String(), "to", m.popup.Phase().String())
			return m, nil
		}
		return m, m.popupFrame()

	case repeatMsg:
		next, ok := m.repeat.Fire(msg, m.cfg.Clock())
		if !ok {
			return m, nil
		}
		m.buf.DeleteBackward()
		return m, tea.Batch(m.settle(), next)

	default:
		// The host may have mutated the buffer directly.
		return m, m.settle()
	}
}

// ReturnText returns the current contents; never nil-like, "" when empty.
func (m Model) ReturnText() string {
	if m.buf == nil {
		return ""
	}
	return m.buf.Text()
}

// InsertText is the per-keystroke insert entry point. It dismisses the
// popup, replaces any selection, and restarts the blink.
func (m Model) InsertText(s string) (Model, tea.Cmd) {
	cmd := m.hidePopup()
	m.buf.InsertText(s)
	m.wantBlink = true
	return m, tea.Batch(cmd, m.settle())
}

// DeleteBackward is the per-keystroke delete entry point.
func (m Model) DeleteBackward() (Model, tea.Cmd) {
	cmd := m.hidePopup()
	m.buf.DeleteBackward()
	m.wantBlink = true
	return m, tea.Batch(cmd, m.settle())
}

// ClearTextField selects everything and deletes it.
func (m Model) ClearTextField() (Model, tea.Cmd) {
	m.buf.SelectAll()
	return m.DeleteBackward()
}

// BeginDeleteRepeat deletes once and starts the accelerating held-delete
// timer. Any earlier repeat is replaced.
func (m Model) BeginDeleteRepeat() (Model, tea.Cmd) {
	m, cmd := m.DeleteBackward()
	return m, tea.Batch(cmd, m.repeat.Begin(m.cfg.Clock()))
}

func (m Model) EndDeleteRepeat() Model {
	m.repeat.End()
	return m
}

func (m Model) DeleteRepeating() bool { return m.repeat.Active() }

// settle reconciles derived state after the buffer may have changed:
// viewport, blink, and the render hook.
func (m *Model) settle() tea.Cmd {
	if m.buf == nil {
		return nil
	}
	textChanged, cursorChanged := m.syncFromBuffer()
	if textChanged || cursorChanged {
		m.followCursor()
	}
	cmd := m.reconcileBlink(textChanged || cursorChanged)
	m.emitChange()
	return cmd
}

func (m *Model) syncFromBuffer() (textChanged, cursorChanged bool) {
	tv, cur := m.buf.TextVersion(), m.buf.Cursor()
	textChanged = tv != m.lastTextVersion
	cursorChanged = cur != m.lastCursor
	m.lastTextVersion, m.lastCursor = tv, cur
	return textChanged, cursorChanged
}

func (m *Model) reconcileBlink(changed bool) tea.Cmd {
	want := m.wantBlink
	m.wantBlink = false

	if m.buf.HasSelection() {
		m.blink.Hide()
		return nil
	}
	if m.dragging || !m.focused {
		return nil
	}
	if changed || want || !m.blink.Running() {
		return m.blink.Start()
	}
	return nil
}

func (m *Model) showPopup(anchor Point) tea.Cmd {
	from := m.popup.Phase()
	layout := PlacePopup(anchor, m.width, m.height, m.cfg.Metrics)
	if !m.popup.Show(anchor, layout) {
		m.log.Debug("popup show ignored", "phase", from.String())
		return nil
	}
	m.log.Debug("popup transition", "from", from.String(), "to", m.popup.Phase().String())
	return m.popupFrame()
}

func (m *Model) hidePopup() tea.Cmd {
	from := m.popup.Phase()
	if !m.popup.Dismiss() {
		return nil
	}
	m.log.Debug("popup transition", "from", from.String(), "to", m.popup.Phase().String())
	return m.popupFrame()
}

func (m *Model) popupFrame() tea.Cmd {
	id, tag := m.id, m.popup.Tag()
	return tea.Tick(m.cfg.Popup.FrameInterval, func(time.Time) tea.Msg {
		return popupFrameMsg{id: id, tag: tag}
	})
}
