package field

import (
	"log/slog"
	"reflect"
	"time"
)

// Config configures the field Model.
//
// Zero values select defaults.
type Config struct {
	// Initial text.
	Text string

	// View size in units. SetSize overrides both.
	Width, Height float64
	// CellSize is the number of units per terminal cell used by View and
	// by the tea.MouseMsg adapter.
	CellSize float64

	Metrics  Metrics
	Measurer Measurer

	Gestures      GestureConfig
	Popup         PopupConfig
	BlinkInterval time.Duration
	RepeatSteps   []RepeatStep

	Traits InputTraits

	Host   Host
	KeyMap KeyMap
	Style  Style

	// Logger receives debug records for gestures and popup transitions.
	Logger *slog.Logger

	// OnChange is the render hook.
	OnChange func(ChangeEvent)
	// OnMagnify is the long-press hook.
	OnMagnify func(Point)

	// Clock stamps adapted mouse events and times held delete; defaults to
	// time.Now.
	Clock func() time.Time
}

func normalizeConfig(cfg Config) Config {
	if cfg.CellSize <= 0 {
		cfg.CellSize = 1
	}
	cfg.Metrics = normalizeMetrics(cfg.Metrics)
	if cfg.Measurer == nil {
		cfg.Measurer = CellMeasurer{UnitsPerCell: cfg.CellSize}
	}
	cfg.Gestures = normalizeGestureConfig(cfg.Gestures)
	cfg.Popup = normalizePopupConfig(cfg.Popup)
	if cfg.BlinkInterval <= 0 {
		cfg.BlinkInterval = defaultBlinkInterval
	}
	if reflect.DeepEqual(cfg.KeyMap, KeyMap{}) {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return cfg
}
