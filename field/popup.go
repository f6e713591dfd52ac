package field

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

// PopupPhase is the lifecycle state of the suggestion popup.
type PopupPhase uint8

const (
	PopupHidden PopupPhase = iota
	PopupAppearing
	PopupVisible
	PopupDisappearing
)

func (p PopupPhase) String() string {
	switch p {
	case PopupHidden:
		return "hidden"
	case PopupAppearing:
		return "appearing"
	case PopupVisible:
		return "visible"
	case PopupDisappearing:
		return "disappearing"
	default:
		return "unknown"
	}
}

// PopupAction is one of the popup's buttons.
type PopupAction uint8

const (
	ActionCut PopupAction = iota
	ActionCopy
	ActionPaste
)

var popupActions = [...]PopupAction{ActionCut, ActionCopy, ActionPaste}

func (a PopupAction) String() string {
	switch a {
	case ActionCut:
		return "Cut"
	case ActionCopy:
		return "Copy"
	case ActionPaste:
		return "Paste"
	default:
		return "?"
	}
}

// PopupConfig tunes the popup animations.
type PopupConfig struct {
	AppearDuration    time.Duration
	DisappearDuration time.Duration
	FrameInterval     time.Duration
	// Damping is the spring damping ratio of the appear animation.
	Damping float64
	// InitialVelocity is the appear spring's starting velocity as a fraction
	// of the total scale distance per second.
	InitialVelocity float64
	// MinScale is the scale the popup grows from and shrinks to.
	MinScale float64
}

func DefaultPopupConfig() PopupConfig {
	return PopupConfig{
		AppearDuration:    300 * time.Millisecond,
		DisappearDuration: 200 * time.Millisecond,
		FrameInterval:     time.Second / 60,
		Damping:           0.7,
		InitialVelocity:   0.5,
		MinScale:          0.1,
	}
}

func normalizePopupConfig(c PopupConfig) PopupConfig {
	d := DefaultPopupConfig()
	if c.AppearDuration <= 0 {
		c.AppearDuration = d.AppearDuration
	}
	if c.DisappearDuration <= 0 {
		c.DisappearDuration = d.DisappearDuration
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = d.FrameInterval
	}
	if c.Damping <= 0 {
		c.Damping = d.Damping
	}
	if c.MinScale <= 0 || c.MinScale >= 1 {
		c.MinScale = d.MinScale
	}
	return c
}

// PopupLayout is the placed popup frame and where its arrow points,
// measured from the frame's left edge.
type PopupLayout struct {
	Frame  Rect
	ArrowX float64
}

// PlacePopup positions a popup for anchor inside a view of viewW x viewH.
//
// The popup is PopupWidthRatio of the view width, horizontally centered on
// the anchor but clamped to [margin, screenWidth-width-margin], and sits
// PopupGap above the text line.
func PlacePopup(anchor Point, viewW, viewH float64, met Metrics) PopupLayout {
	width := viewW * met.PopupWidthRatio
	height := met.PopupHeight
	screenW := met.ScreenWidth
	if screenW <= 0 {
		screenW = viewW
	}

	x := anchor.X - width/2
	if x < met.PopupMargin {
		x = met.PopupMargin
	} else if x+width > screenW-met.PopupMargin {
		x = screenW - width - met.PopupMargin
	}

	lineY := (viewH - met.LineHeight) / 2
	y := lineY - height - met.PopupGap

	return PopupLayout{
		Frame:  Rect{X: x, Y: y, W: width, H: height},
		ArrowX: anchor.X - x,
	}
}

// ButtonAt returns the popup button under p. The arrow strip at the bottom
// of the frame is not part of any button.
func (l PopupLayout) ButtonAt(p Point, arrowHeight float64) (PopupAction, bool) {
	bubble := l.Frame
	bubble.H -= arrowHeight
	if bubble.W <= 0 || bubble.H <= 0 || !bubble.Contains(p) {
		return 0, false
	}
	w := bubble.W / float64(len(popupActions))
	idx := clampInt(int((p.X-bubble.X)/w), 0, len(popupActions)-1)
	return popupActions[idx], true
}

// PopupController owns the single suggestion popup.
//
// Lifecycle: Hidden -> Appearing -> Visible -> Disappearing -> Hidden.
// Show is ignored while an animation is in flight; on a Visible popup it
// dismisses instead. Animation time is driven externally through Advance.
type PopupController struct {
	cfg PopupConfig

	phase  PopupPhase
	anchor Point
	layout PopupLayout

	scale    float64
	velocity float64
	from     float64
	elapsed  time.Duration
	spring   harmonica.Spring

	// tag identifies the live animation; frames for older tags are stale.
	tag int
}

func NewPopupController(cfg PopupConfig) PopupController {
	cfg = normalizePopupConfig(cfg)
	return PopupController{cfg: cfg, scale: cfg.MinScale}
}

func (c *PopupController) Phase() PopupPhase { return c.phase }

func (c *PopupController) Anchor() Point { return c.anchor }

func (c *PopupController) Layout() PopupLayout { return c.layout }

// Scale is the current animation scale in [MinScale, 1] (spring overshoot
// may briefly exceed 1).
func (c *PopupController) Scale() float64 { return c.scale }

// Shown reports whether a popup instance exists.
func (c *PopupController) Shown() bool { return c.phase != PopupHidden }

// Animating reports whether an appear or disappear animation is in flight.
func (c *PopupController) Animating() bool {
	return c.phase == PopupAppearing || c.phase == PopupDisappearing
}

func (c *PopupController) Tag() int { return c.tag }

// Show starts the appear animation at anchor. It returns whether an
// animation started (appear, or disappear under toggle semantics).
func (c *PopupController) Show(anchor Point, layout PopupLayout) bool {
	switch c.phase {
	case PopupAppearing, PopupDisappearing:
		return false
	case PopupVisible:
		return c.Dismiss()
	}

	c.phase = PopupAppearing
	c.anchor = anchor
	c.layout = layout
	c.scale = c.cfg.MinScale
	c.velocity = c.cfg.InitialVelocity * (1 - c.cfg.MinScale)
	c.elapsed = 0
	c.spring = harmonica.NewSpring(
		c.cfg.FrameInterval.Seconds(),
		settleFrequency(c.cfg.AppearDuration, c.cfg.Damping),
		c.cfg.Damping,
	)
	c.tag++
	return true
}

// Dismiss starts the disappear animation. It is a no-op when hidden or
// already disappearing.
func (c *PopupController) Dismiss() bool {
	switch c.phase {
	case PopupHidden, PopupDisappearing:
		return false
	}
	c.phase = PopupDisappearing
	c.from = c.scale
	c.elapsed = 0
	c.tag++
	return true
}

// Invoke fires a button: the popup is dismissed first and the action is
// returned for the caller to perform. Buttons are dead while disappearing.
func (c *PopupController) Invoke(a PopupAction) (PopupAction, bool) {
	if c.phase != PopupAppearing && c.phase != PopupVisible {
		return 0, false
	}
	c.Dismiss()
	return a, true
}

// Advance moves the running animation forward by dt and reports whether it
// completed. Completion of the disappear animation destroys the popup.
func (c *PopupController) Advance(dt time.Duration) (done bool) {
	switch c.phase {
	case PopupAppearing:
		c.elapsed += dt
		if c.elapsed >= c.cfg.AppearDuration {
			c.scale, c.velocity = 1, 0
			c.phase = PopupVisible
			return true
		}
		c.scale, c.velocity = c.spring.Update(c.scale, c.velocity, 1)
		return false

	case PopupDisappearing:
		c.elapsed += dt
		if c.elapsed >= c.cfg.DisappearDuration {
			*c = PopupController{cfg: c.cfg, scale: c.cfg.MinScale, tag: c.tag}
			return true
		}
		t := float64(c.elapsed) / float64(c.cfg.DisappearDuration)
		// Ease-in: slow start, fast finish.
		c.scale = c.from - (c.from-c.cfg.MinScale)*t*t
		return false

	default:
		return false
	}
}

// settleFrequency picks an angular frequency that lets a spring with the
// given damping settle (within ~1%) inside d.
func settleFrequency(d time.Duration, damping float64) float64 {
	secs := d.Seconds()
	if secs <= 0 || damping <= 0 {
		return 6
	}
	return 4.6 / (damping * secs)
}
