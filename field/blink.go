package field

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultBlinkInterval = 500 * time.Millisecond

type blinkMsg struct {
	id  int
	tag int
}

// blinker toggles cursor visibility on a fixed interval. At most one tick
// is live: every Start or Stop bumps tag, and ticks carrying an older tag
// are dropped.
type blinker struct {
	id       int
	interval time.Duration

	visible bool
	running bool
	tag     int
}

func newBlinker(id int, interval time.Duration) blinker {
	if interval <= 0 {
		interval = defaultBlinkInterval
	}
	return blinker{id: id, interval: interval}
}

// Start shows the cursor and (re)starts blinking, cancelling any prior tick.
func (b *blinker) Start() tea.Cmd {
	b.tag++
	b.running = true
	b.visible = true
	return b.tick()
}

// Stop cancels blinking and leaves visibility as is.
func (b *blinker) Stop() {
	if b.running {
		b.tag++
	}
	b.running = false
}

// Hide cancels blinking and hides the cursor.
func (b *blinker) Hide() {
	b.Stop()
	b.visible = false
}

func (b *blinker) Visible() bool { return b.visible }

func (b *blinker) Running() bool { return b.running }

func (b *blinker) Update(msg blinkMsg) tea.Cmd {
	if msg.id != b.id || msg.tag != b.tag || !b.running {
		return nil
	}
	b.visible = !b.visible
	return b.tick()
}

func (b *blinker) tick() tea.Cmd {
	id, tag := b.id, b.tag
	return tea.Tick(b.interval, func(time.Time) tea.Msg {
		return blinkMsg{id: id, tag: tag}
	})
}
