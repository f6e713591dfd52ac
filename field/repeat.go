package field

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RepeatStep switches the repeat interval once a press has lasted After.
type RepeatStep struct {
	After    time.Duration
	Interval time.Duration
}

// DefaultRepeatSteps accelerates held delete: 100ms at first, 80ms after
// 1.5s, 50ms after 3s.
func DefaultRepeatSteps() []RepeatStep {
	return []RepeatStep{
		{After: 0, Interval: 100 * time.Millisecond},
		{After: 1500 * time.Millisecond, Interval: 80 * time.Millisecond},
		{After: 3 * time.Second, Interval: 50 * time.Millisecond},
	}
}

type repeatMsg struct {
	id  int
	tag int
}

// repeatDelete schedules held-delete firings from a monotonic step table.
// Every firing reschedules with the interval for the elapsed hold time.
type repeatDelete struct {
	id    int
	steps []RepeatStep

	active    bool
	startedAt time.Time
	tag       int

	// interval is the delay of the most recently scheduled firing.
	interval time.Duration
}

func newRepeatDelete(id int, steps []RepeatStep) repeatDelete {
	if len(steps) == 0 {
		steps = DefaultRepeatSteps()
	}
	return repeatDelete{id: id, steps: append([]RepeatStep(nil), steps...)}
}

// IntervalAt returns the interval for a hold of elapsed duration: the last
// step whose After has been reached.
func (r *repeatDelete) IntervalAt(elapsed time.Duration) time.Duration {
	interval := r.steps[0].Interval
	for _, s := range r.steps {
		if elapsed >= s.After {
			interval = s.Interval
		}
	}
	return interval
}

func (r *repeatDelete) Active() bool { return r.active }

func (r *repeatDelete) Begin(now time.Time) tea.Cmd {
	r.tag++
	r.active = true
	r.startedAt = now
	return r.schedule(r.IntervalAt(0))
}

// Fire accepts a tick. ok is false for stale ticks; otherwise next is the
// follow-up tick. now must come from the same clock that was passed to
// Begin.
func (r *repeatDelete) Fire(msg repeatMsg, now time.Time) (next tea.Cmd, ok bool) {
	if !r.active || msg.id != r.id || msg.tag != r.tag {
		return nil, false
	}
	return r.schedule(r.IntervalAt(now.Sub(r.startedAt))), true
}

func (r *repeatDelete) End() {
	if r.active {
		r.tag++
	}
	r.active = false
}

func (r *repeatDelete) schedule(d time.Duration) tea.Cmd {
	r.interval = d
	id, tag := r.id, r.tag
	return tea.Tick(d, func(time.Time) tea.Msg {
		return repeatMsg{id: id, tag: tag}
	})
}
