package field

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/tapfield/buffer"
)

type fakeHost struct {
	focusCalls int
	board      string
	writeErr   error
	readErr    error
}

func (h *fakeHost) ChangeFocus() { h.focusCalls++ }

func (h *fakeHost) AddToPasteBoard(s string) error {
	if h.writeErr != nil {
		return h.writeErr
	}
	h.board = s
	return nil
}

func (h *fakeHost) FetchFromPasteBoard() (string, error) { return h.board, h.readErr }

func newTestModel(text string, host Host) Model {
	return New(Config{
		Text:     text,
		Width:    20,
		Height:   1,
		Metrics:  CellMetrics(),
		Gestures: GestureConfig{TapSlop: 1},
		Host:     host,
		Clock:    func() time.Time { return t0 },
	})
}

func keyLeft() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyLeft} }

func pointer(m Model, phase PointerPhase, x float64, ms int) Model {
	m, _ = m.Update(PointerMsg{Phase: phase, Point: Point{X: x, Y: 0.5}, At: at(ms)})
	return m
}

func tapAt(m Model, x float64, ms int) Model {
	m = pointer(m, PointerDown, x, ms)
	return pointer(m, PointerUp, x, ms+10)
}

// flushGestures fires the pending recognizer deadline.
func flushGestures(m Model, ms int) Model {
	m, _ = m.Update(gestureDeadlineMsg{id: m.id, tag: m.gestureTag, at: at(ms)})
	return m
}

func settlePopup(m Model) Model {
	for i := 0; m.popup.Animating() && i < 1000; i++ {
		m, _ = m.Update(popupFrameMsg{id: m.id, tag: m.popup.Tag()})
	}
	return m
}

func pressPopup(m Model, x, y float64, ms int) Model {
	m, _ = m.Update(PointerMsg{Phase: PointerDown, Point: Point{X: x, Y: y}, At: at(ms)})
	m, _ = m.Update(PointerMsg{Phase: PointerUp, Point: Point{X: x, Y: y}, At: at(ms + 10)})
	return m
}

func TestModel_NewPlacesCursorAtEnd(t *testing.T) {
	m := newTestModel("hello", nil)
	if got := m.buf.Cursor(); got != 5 {
		t.Fatalf("cursor: got %d, want 5", got)
	}
	if !m.CursorVisible() {
		t.Fatalf("expected visible cursor on a focused field")
	}
	if m.Init() == nil {
		t.Fatalf("init should start the blink")
	}
}

func TestModel_SingleTapOnWordSelectsWord(t *testing.T) {
	host := &fakeHost{}
	m := newTestModel("hello world", host)

	m = tapAt(m, 1.5, 0)
	if _, ok := m.buf.Selection(); ok {
		t.Fatalf("single tap must wait for the tap window")
	}
	m = flushGestures(m, 1000)

	r, ok := m.buf.Selection()
	if !ok || r != (buffer.Range{Start: 0, Len: 5}) {
		t.Fatalf("selection: got (%v, %v), want ({0 5}, true)", r, ok)
	}
	if got := m.PopupPhase(); got != PopupAppearing {
		t.Fatalf("popup: got %v, want appearing", got)
	}
	if m.CursorVisible() {
		t.Fatalf("cursor must be hidden while a selection is active")
	}
	if host.focusCalls != 1 {
		t.Fatalf("focus calls: got %d, want 1", host.focusCalls)
	}
}

func TestModel_DoubleTapOnWhitespaceShowsCursor(t *testing.T) {
	m := newTestModel("hello world", nil)

	m = tapAt(m, 5.5, 0)
	m = tapAt(m, 5.5, 100)
	m = flushGestures(m, 1000)

	if m.buf.HasSelection() {
		t.Fatalf("double tap on whitespace must not select")
	}
	if got := m.buf.Cursor(); got != 5 {
		t.Fatalf("cursor: got %d, want 5", got)
	}
	if !m.CursorVisible() {
		t.Fatalf("expected visible cursor")
	}
	if got := m.PopupPhase(); got != PopupAppearing {
		t.Fatalf("popup: got %v, want appearing", got)
	}
}

func TestModel_DoubleTapOnWordSelectsWord(t *testing.T) {
	m := newTestModel("hello world", nil)

	m = tapAt(m, 7.5, 0)
	m = tapAt(m, 7.5, 100)
	m = flushGestures(m, 1000)

	if got := m.buf.SelectedText(); got != "world" {
		t.Fatalf("selected text: got %q, want %q", got, "world")
	}
}

func TestModel_TripleTapSelectsAll(t *testing.T) {
	m := newTestModel("ab cd", nil)

	m = tapAt(m, 1.5, 0)
	m = tapAt(m, 1.5, 100)
	m = tapAt(m, 1.5, 200)

	r, ok := m.buf.Selection()
	if !ok || r != (buffer.Range{Start: 0, Len: 5}) {
		t.Fatalf("selection: got (%v, %v), want ({0 5}, true)", r, ok)
	}
	if m.gestures.Pending() {
		t.Fatalf("triple tap must leave nothing pending")
	}
}

func TestModel_TapOnCursorTogglesPopup(t *testing.T) {
	m := newTestModel("hello", nil)

	m = tapAt(m, 5.5, 0)
	m = flushGestures(m, 1000)
	if got := m.PopupPhase(); got != PopupAppearing {
		t.Fatalf("first tap: got %v, want appearing", got)
	}
	m = settlePopup(m)
	if got := m.PopupPhase(); got != PopupVisible {
		t.Fatalf("after animation: got %v, want visible", got)
	}

	m = tapAt(m, 5.5, 2000)
	m = flushGestures(m, 3000)
	if got := m.PopupPhase(); got != PopupDisappearing {
		t.Fatalf("second tap: got %v, want disappearing", got)
	}
	if got := m.buf.Cursor(); got != 5 {
		t.Fatalf("cursor: got %d, want 5", got)
	}
}

func TestModel_TapBeyondTextMovesCursorToEnd(t *testing.T) {
	m := newTestModel("hello", nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if got := m.buf.Cursor(); got != 0 {
		t.Fatalf("cursor after home: got %d, want 0", got)
	}

	m = tapAt(m, 15.5, 0)
	m = flushGestures(m, 1000)
	if got := m.buf.Cursor(); got != 5 {
		t.Fatalf("cursor: got %d, want 5", got)
	}
	if m.buf.HasSelection() {
		t.Fatalf("tap beyond text must clear the selection")
	}
}

func TestModel_PanDragsCursor(t *testing.T) {
	m := newTestModel("hello world", nil)

	m = pointer(m, PointerDown, 2.5, 0)
	m = pointer(m, PointerMove, 4.5, 10)
	if !m.Dragging() || m.CursorVisible() {
		t.Fatalf("pan began: dragging=%v cursorVisible=%v, want true/false", m.Dragging(), m.CursorVisible())
	}

	m = pointer(m, PointerMove, 7.5, 20)
	if got := m.buf.Cursor(); got != 7 {
		t.Fatalf("cursor while dragging: got %d, want 7", got)
	}

	m = pointer(m, PointerUp, 7.5, 30)
	if m.Dragging() {
		t.Fatalf("drag should end on release")
	}
	if got := m.buf.Cursor(); got != 7 {
		t.Fatalf("cursor after drag: got %d, want 7", got)
	}
	if !m.CursorVisible() {
		t.Fatalf("cursor should reappear after the drag")
	}
}

func TestModel_PanIgnoredWhileSelectionActive(t *testing.T) {
	m := newTestModel("hello world", nil)
	m = tapAt(m, 1.5, 0)
	m = flushGestures(m, 1000)
	before := m.buf.Cursor()

	m = pointer(m, PointerDown, 3.5, 2000)
	m = pointer(m, PointerMove, 8.5, 2010)
	m = pointer(m, PointerUp, 8.5, 2020)

	if got := m.buf.Cursor(); got != before {
		t.Fatalf("cursor: got %d, want %d", got, before)
	}
	if got := m.buf.SelectedText(); got != "hello" {
		t.Fatalf("selection: got %q, want %q", got, "hello")
	}
	if m.Dragging() {
		t.Fatalf("no drag should start while a selection is active")
	}
}

func TestModel_LongPressCallsMagnify(t *testing.T) {
	var got []Point
	m := New(Config{
		Text:      "hello",
		Width:     20,
		Height:    1,
		Metrics:   CellMetrics(),
		OnMagnify: func(p Point) { got = append(got, p) },
	})

	m = pointer(m, PointerDown, 2.5, 0)
	m = flushGestures(m, 500)
	m = pointer(m, PointerUp, 2.5, 900)

	if len(got) != 1 || got[0] != (Point{X: 2.5, Y: 0.5}) {
		t.Fatalf("magnify calls: got %v, want one at (2.5, 0.5)", got)
	}
	if text := m.ReturnText(); text != "hello" {
		t.Fatalf("long press must not edit: got %q", text)
	}
}

func TestModel_PopupActions(t *testing.T) {
	// Popup frame for a tap at x=1.5 in a 20-wide field: x=1, y=-3,
	// 11.2 wide, buttons roughly 3.7 wide each.
	cases := []struct {
		name      string
		x         float64
		board     string
		wantText  string
		wantBoard string
	}{
		{name: "cut", x: 2, wantText: " world", wantBoard: "hello"},
		{name: "copy", x: 6, wantText: "hello world", wantBoard: "hello"},
		{name: "paste", x: 10, board: "XY", wantText: "XY world", wantBoard: "XY"},
	}

	for _, tc := range cases {
		host := &fakeHost{board: tc.board}
		m := newTestModel("hello world", host)
		m = tapAt(m, 1.5, 0)
		m = flushGestures(m, 1000)
		m = settlePopup(m)

		m = pressPopup(m, tc.x, -1.5, 2000)

		if got := m.ReturnText(); got != tc.wantText {
			t.Fatalf("%s: text got %q, want %q", tc.name, got, tc.wantText)
		}
		if host.board != tc.wantBoard {
			t.Fatalf("%s: pasteboard got %q, want %q", tc.name, host.board, tc.wantBoard)
		}
		if got := m.PopupPhase(); got != PopupDisappearing {
			t.Fatalf("%s: popup got %v, want disappearing", tc.name, got)
		}
		if m.gestures.Pending() {
			t.Fatalf("%s: popup press must not reach the recognizer", tc.name)
		}
	}
}

func TestModel_CutKeepsTextWhenPasteboardFails(t *testing.T) {
	host := &fakeHost{writeErr: errors.New("denied")}
	m := newTestModel("hello world", host)
	m = tapAt(m, 1.5, 0)
	m = flushGestures(m, 1000)
	m = settlePopup(m)

	m = pressPopup(m, 2, -1.5, 2000)
	if got := m.ReturnText(); got != "hello world" {
		t.Fatalf("text: got %q, want %q", got, "hello world")
	}
}

func TestModel_InsertDeleteClear(t *testing.T) {
	m := newTestModel("", nil)

	if got := m.ReturnText(); got != "" {
		t.Fatalf("empty text: got %q", got)
	}
	m, _ = m.DeleteBackward()
	if got := m.ReturnText(); got != "" {
		t.Fatalf("delete on empty: got %q", got)
	}

	m, _ = m.InsertText("abc")
	if got := m.ReturnText(); got != "abc" {
		t.Fatalf("after insert: got %q, want %q", got, "abc")
	}
	m, _ = m.DeleteBackward()
	if got := m.ReturnText(); got != "ab" {
		t.Fatalf("after delete: got %q, want %q", got, "ab")
	}

	m, _ = m.ClearTextField()
	if got := m.ReturnText(); got != "" {
		t.Fatalf("after clear: got %q", got)
	}
	if got := m.buf.Cursor(); got != 0 {
		t.Fatalf("cursor after clear: got %d, want 0", got)
	}
}

func TestModel_InsertReplacesSelectionAndDismissesPopup(t *testing.T) {
	m := newTestModel("hello world", nil)
	m = tapAt(m, 1.5, 0)
	m = flushGestures(m, 1000)

	m, _ = m.InsertText("X")
	if got := m.ReturnText(); got != "X world" {
		t.Fatalf("text: got %q, want %q", got, "X world")
	}
	if got := m.PopupPhase(); got != PopupDisappearing {
		t.Fatalf("popup: got %v, want disappearing", got)
	}
	if !m.CursorVisible() {
		t.Fatalf("cursor should be visible after an edit")
	}
}

func TestModel_KeysEditAndMove(t *testing.T) {
	m := newTestModel("ab", nil)

	m, _ = m.Update(keyLeft())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := m.ReturnText(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := m.buf.Cursor(); got != 2 {
		t.Fatalf("cursor after insert: got %d, want 2", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.ReturnText(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if got := m.ReturnText(); got != "a" {
		t.Fatalf("text after delete: got %q, want %q", got, "a")
	}
}

func TestModel_KeyCopyPaste(t *testing.T) {
	host := &fakeHost{}
	m := newTestModel("hello world", host)
	m.buf.SetSelection(6, 5)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if host.board != "world" {
		t.Fatalf("pasteboard: got %q, want %q", host.board, "world")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.ReturnText(); got != "hello world" {
		t.Fatalf("paste over selection: got %q, want %q", got, "hello world")
	}
	if got := m.buf.Cursor(); got != 11 {
		t.Fatalf("cursor after paste: got %d, want 11", got)
	}
}

func TestModel_BlurredFieldIgnoresKeys(t *testing.T) {
	m := newTestModel("ab", nil)
	m, _ = m.Blur()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := m.ReturnText(); got != "ab" {
		t.Fatalf("text: got %q, want %q", got, "ab")
	}
	if m.CursorVisible() {
		t.Fatalf("blurred field must hide the cursor")
	}
}

func TestModel_HeldDeleteRepeats(t *testing.T) {
	m := newTestModel("abcd", nil)

	m, _ = m.BeginDeleteRepeat()
	if got := m.ReturnText(); got != "abc" {
		t.Fatalf("first delete: got %q, want %q", got, "abc")
	}
	tick := repeatMsg{id: m.id, tag: m.repeat.tag}

	m, _ = m.Update(tick)
	if got := m.ReturnText(); got != "ab" {
		t.Fatalf("repeat delete: got %q, want %q", got, "ab")
	}

	m = m.EndDeleteRepeat()
	m, _ = m.Update(tick)
	if got := m.ReturnText(); got != "ab" {
		t.Fatalf("tick after release: got %q, want %q", got, "ab")
	}
}

func TestModel_HeldDeleteUsesFieldClock(t *testing.T) {
	now := t0
	m := New(Config{
		Text:    "abcdefgh",
		Width:   20,
		Height:  1,
		Metrics: CellMetrics(),
		Clock:   func() time.Time { return now },
	})

	m, _ = m.BeginDeleteRepeat()
	if got, want := m.repeat.interval, 100*time.Millisecond; got != want {
		t.Fatalf("initial interval: got %v, want %v", got, want)
	}

	cases := []struct {
		elapsed time.Duration
		want    time.Duration
	}{
		{elapsed: time.Second, want: 100 * time.Millisecond},
		{elapsed: 2 * time.Second, want: 80 * time.Millisecond},
		{elapsed: 4 * time.Second, want: 50 * time.Millisecond},
	}
	for _, tc := range cases {
		now = t0.Add(tc.elapsed)
		m, _ = m.Update(repeatMsg{id: m.id, tag: m.repeat.tag})
		if got := m.repeat.interval; got != tc.want {
			t.Fatalf("interval after %v: got %v, want %v", tc.elapsed, got, tc.want)
		}
	}
	if got := m.ReturnText(); got != "abcd" {
		t.Fatalf("text: got %q, want %q", got, "abcd")
	}
}

func TestModel_OnChange(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Width:    20,
		Height:   1,
		Metrics:  CellMetrics(),
		OnChange: func(ev ChangeEvent) { events = append(events, ev) },
	})

	m, _ = m.InsertText("hi")
	if len(events) != 1 {
		t.Fatalf("events: got %d, want 1", len(events))
	}
	if ev := events[0]; ev.Text != "hi" || ev.Cursor != 2 || ev.SelectionActive {
		t.Fatalf("event: got %+v", ev)
	}

	m, _ = m.Update(struct{}{})
	if len(events) != 1 {
		t.Fatalf("unchanged state must not emit: got %d events", len(events))
	}
}

func TestModel_MouseAdapter(t *testing.T) {
	m := newTestModel("hello world", nil)

	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m = flushGestures(m, 1000)

	if got := m.buf.SelectedText(); got != "hello" {
		t.Fatalf("selected text: got %q, want %q", got, "hello")
	}
}

func TestModel_SetInputTraits(t *testing.T) {
	m := newTestModel("", nil)

	traits := InputTraits{Mode: KeyboardEmail, ReturnKey: 4}
	m, changed := m.SetInputTraits(traits)
	if !changed || m.InputTraits() != traits {
		t.Fatalf("traits: got (%+v, %v), want (%+v, true)", m.InputTraits(), changed, traits)
	}
	if _, changed := m.SetInputTraits(traits); changed {
		t.Fatalf("identical traits must not report a change")
	}
	if got := ParseKeyboardMode("url"); got != KeyboardURL {
		t.Fatalf("ParseKeyboardMode(url): got %v, want %v", got, KeyboardURL)
	}
}
