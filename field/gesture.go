package field

import (
	"math"
	"time"
)

// PointerPhase identifies a raw pointer event.
type PointerPhase uint8

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
	PointerCancel
)

// PointerMsg is a raw touch/pointer event in field-local units.
//
// Hosts send it through Update; At must be monotonic within one
// interaction.
type PointerMsg struct {
	Phase PointerPhase
	Point Point
	At    time.Time
}

// GestureKind is the classified result of one physical interaction.
type GestureKind uint8

const (
	GestureSingleTap GestureKind = iota
	GestureDoubleTap
	GestureTripleTap
	GesturePanBegan
	GesturePanChanged
	GesturePanEnded
	GesturePanCancelled
	GestureLongPressBegan
	GestureLongPressEnded
)

func (k GestureKind) String() string {
	switch k {
	case GestureSingleTap:
		return "single-tap"
	case GestureDoubleTap:
		return "double-tap"
	case GestureTripleTap:
		return "triple-tap"
	case GesturePanBegan:
		return "pan-began"
	case GesturePanChanged:
		return "pan-changed"
	case GesturePanEnded:
		return "pan-ended"
	case GesturePanCancelled:
		return "pan-cancelled"
	case GestureLongPressBegan:
		return "long-press-began"
	case GestureLongPressEnded:
		return "long-press-ended"
	default:
		return "unknown"
	}
}

// Gesture is a recognized gesture and the point it applies to.
type Gesture struct {
	Kind  GestureKind
	Point Point
}

// GestureConfig tunes recognition windows.
type GestureConfig struct {
	// TapInterval is the longest gap between taps of one multi-tap sequence.
	TapInterval time.Duration
	// LongPressDelay is how long a still press must be held to become a long
	// press.
	LongPressDelay time.Duration
	// TapSlop is how far a pointer may travel and still count as a tap.
	TapSlop float64
}

func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		TapInterval:    300 * time.Millisecond,
		LongPressDelay: 500 * time.Millisecond,
		TapSlop:        10,
	}
}

func normalizeGestureConfig(c GestureConfig) GestureConfig {
	d := DefaultGestureConfig()
	if c.TapInterval <= 0 {
		c.TapInterval = d.TapInterval
	}
	if c.LongPressDelay <= 0 {
		c.LongPressDelay = d.LongPressDelay
	}
	if c.TapSlop < 0 {
		c.TapSlop = 0
	}
	return c
}

// tapMatcher is one entry of the tap priority list.
type tapMatcher struct {
	kind GestureKind
	taps int
}

// tapPriority is ordered highest priority first. A matcher only wins once
// every matcher above it has failed.
var tapPriority = []tapMatcher{
	{kind: GestureTripleTap, taps: 3},
	{kind: GestureDoubleTap, taps: 2},
	{kind: GestureSingleTap, taps: 1},
}

var maxTaps = tapPriority[0].taps

// resolveTaps walks tapPriority for a sequence of count taps. windowClosed
// reports that no further tap can join the sequence. ok is false while a
// higher-arity matcher could still succeed.
func resolveTaps(count int, windowClosed bool) (kind GestureKind, ok bool) {
	if count <= 0 {
		return 0, false
	}
	if count > maxTaps {
		count = maxTaps
	}
	for _, m := range tapPriority {
		if count == m.taps {
			return m.kind, true
		}
		if count < m.taps && !windowClosed {
			return 0, false
		}
	}
	return 0, false
}

type pressState uint8

const (
	pressIdle pressState = iota
	pressDown
	pressPanning
	pressLong
)

// Recognizer turns PointerMsg sequences into gestures so that exactly one
// tap-family gesture fires per interaction.
//
// It is a pure state machine: Handle consumes pointer events, Expire is
// called once NextDeadline has passed.
type Recognizer struct {
	cfg GestureConfig

	state     pressState
	downAt    time.Time
	downPoint Point

	taps         int
	lastTapAt    time.Time
	lastTapPoint Point
}

func NewRecognizer(cfg GestureConfig) Recognizer {
	return Recognizer{cfg: normalizeGestureConfig(cfg)}
}

// Handle consumes one pointer event and returns the gestures it completes.
func (r *Recognizer) Handle(ev PointerMsg) []Gesture {
	var out []Gesture

	switch ev.Phase {
	case PointerDown:
		if r.state != pressIdle {
			// A down without an up: the previous press is lost.
			out = append(out, r.abortPress(ev.Point)...)
		}
		if r.taps > 0 && !r.continuesSequence(ev) {
			out = append(out, r.flushTaps()...)
		}
		r.state = pressDown
		r.downAt = ev.At
		r.downPoint = ev.Point

	case PointerMove:
		switch r.state {
		case pressDown:
			if distance(ev.Point, r.downPoint) > r.cfg.TapSlop {
				out = append(out, r.flushTaps()...)
				r.state = pressPanning
				out = append(out, Gesture{Kind: GesturePanBegan, Point: ev.Point})
			}
		case pressPanning:
			out = append(out, Gesture{Kind: GesturePanChanged, Point: ev.Point})
		}

	case PointerUp:
		switch r.state {
		case pressDown:
			if ev.At.Sub(r.downAt) >= r.cfg.LongPressDelay {
				out = append(out, r.flushTaps()...)
				out = append(out,
					Gesture{Kind: GestureLongPressBegan, Point: r.downPoint},
					Gesture{Kind: GestureLongPressEnded, Point: ev.Point},
				)
				break
			}
			r.taps++
			r.lastTapAt = ev.At
			r.lastTapPoint = r.downPoint
			if kind, ok := resolveTaps(r.taps, false); ok {
				out = append(out, Gesture{Kind: kind, Point: r.lastTapPoint})
				r.taps = 0
			}
		case pressPanning:
			out = append(out, Gesture{Kind: GesturePanEnded, Point: ev.Point})
		case pressLong:
			out = append(out, Gesture{Kind: GestureLongPressEnded, Point: ev.Point})
		}
		r.state = pressIdle

	case PointerCancel:
		out = append(out, r.abortPress(ev.Point)...)
		r.state = pressIdle
	}

	return out
}

// Expire resolves whatever deadline has passed at now.
func (r *Recognizer) Expire(now time.Time) []Gesture {
	var out []Gesture
	switch r.state {
	case pressDown:
		if !now.Before(r.downAt.Add(r.cfg.LongPressDelay)) {
			out = append(out, r.flushTaps()...)
			r.state = pressLong
			out = append(out, Gesture{Kind: GestureLongPressBegan, Point: r.downPoint})
		}
	case pressIdle:
		if r.taps > 0 && !now.Before(r.lastTapAt.Add(r.cfg.TapInterval)) {
			out = append(out, r.flushTaps()...)
		}
	}
	return out
}

// NextDeadline reports when Expire should next be called.
func (r *Recognizer) NextDeadline() (time.Time, bool) {
	switch {
	case r.state == pressDown:
		return r.downAt.Add(r.cfg.LongPressDelay), true
	case r.state == pressIdle && r.taps > 0:
		return r.lastTapAt.Add(r.cfg.TapInterval), true
	default:
		return time.Time{}, false
	}
}

// Pending reports whether an interaction is still being classified.
func (r *Recognizer) Pending() bool {
	return r.state != pressIdle || r.taps > 0
}

func (r *Recognizer) continuesSequence(ev PointerMsg) bool {
	return ev.At.Sub(r.lastTapAt) <= r.cfg.TapInterval &&
		distance(ev.Point, r.lastTapPoint) <= r.cfg.TapSlop
}

// flushTaps resolves the pending tap sequence with its window closed.
func (r *Recognizer) flushTaps() []Gesture {
	if r.taps == 0 {
		return nil
	}
	kind, ok := resolveTaps(r.taps, true)
	p := r.lastTapPoint
	r.taps = 0
	if !ok {
		return nil
	}
	return []Gesture{{Kind: kind, Point: p}}
}

func (r *Recognizer) abortPress(p Point) []Gesture {
	switch r.state {
	case pressPanning:
		return []Gesture{{Kind: GesturePanCancelled, Point: p}}
	case pressLong:
		return []Gesture{{Kind: GestureLongPressEnded, Point: p}}
	default:
		return nil
	}
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
