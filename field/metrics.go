package field

import (
	"github.com/iw2rmb/tapfield/internal/grapheme"
)

// Measurer reports the horizontal advance of text in field units.
//
// Hosts with a real font pass a measurer backed by their text engine; the
// default CellMeasurer counts terminal cells.
type Measurer interface {
	Advance(text string) float64
}

// CellMeasurer measures text in terminal cells scaled by UnitsPerCell.
type CellMeasurer struct {
	UnitsPerCell float64
}

func (c CellMeasurer) Advance(text string) float64 {
	scale := c.UnitsPerCell
	if scale <= 0 {
		scale = 1
	}
	return float64(grapheme.StringWidth(text)) * scale
}

// Metrics holds the fixed geometry of the field and its popup.
type Metrics struct {
	LineHeight float64

	CursorWidth   float64
	CursorHitSlop float64

	// RevealPadding keeps a revealed cursor this far inside the trailing edge.
	RevealPadding float64

	PopupHeight      float64
	PopupMargin      float64
	PopupGap         float64
	PopupArrowHeight float64
	// PopupWidthRatio is the popup width as a fraction of the view width.
	PopupWidthRatio float64
	// ScreenWidth bounds popup placement; zero means the view width.
	ScreenWidth float64
}

// DefaultMetrics returns point-based metrics for a 20pt system font.
func DefaultMetrics() Metrics {
	return Metrics{
		LineHeight:       24,
		CursorWidth:      2,
		CursorHitSlop:    5,
		RevealPadding:    2,
		PopupHeight:      60,
		PopupMargin:      8,
		PopupGap:         5,
		PopupArrowHeight: 15,
		PopupWidthRatio:  0.8 * 0.7,
	}
}

// CellMetrics returns metrics for rendering in a terminal, one unit per cell.
func CellMetrics() Metrics {
	return Metrics{
		LineHeight:      1,
		CursorWidth:     1,
		RevealPadding:   1,
		PopupHeight:     3,
		PopupMargin:     1,
		PopupWidthRatio: 0.8 * 0.7,
	}
}

func normalizeMetrics(m Metrics) Metrics {
	if m == (Metrics{}) {
		return DefaultMetrics()
	}
	if m.LineHeight <= 0 {
		m.LineHeight = 1
	}
	if m.CursorWidth < 0 {
		m.CursorWidth = 0
	}
	if m.PopupWidthRatio <= 0 {
		m.PopupWidthRatio = 0.8 * 0.7
	}
	return m
}

// textLayout caches cluster boundary positions for one text version.
type textLayout struct {
	valid   bool
	version uint64

	clusters []string
	// bounds[i] is the x offset of the boundary before cluster i;
	// bounds[len(clusters)] is the total text width.
	bounds []float64
}

func buildTextLayout(clusters []string, meas Measurer) textLayout {
	bounds := make([]float64, len(clusters)+1)
	x := 0.0
	for i, c := range clusters {
		bounds[i] = x
		x += meas.Advance(c)
	}
	bounds[len(clusters)] = x
	return textLayout{valid: true, clusters: clusters, bounds: bounds}
}

func (l textLayout) width() float64 {
	if len(l.bounds) == 0 {
		return 0
	}
	return l.bounds[len(l.bounds)-1]
}

func (l textLayout) xForIndex(index int) float64 {
	if len(l.bounds) == 0 {
		return 0
	}
	return l.bounds[clampInt(index, 0, len(l.bounds)-1)]
}

// indexForX returns the cluster boundary nearest to x. Ties resolve to the
// left boundary; x past the text maps to the end.
func (l textLayout) indexForX(x float64) int {
	n := len(l.clusters)
	if n == 0 || x <= 0 {
		return 0
	}
	if x >= l.width() {
		return n
	}
	for i := 0; i < n; i++ {
		left, right := l.bounds[i], l.bounds[i+1]
		if x >= right {
			continue
		}
		if x-left <= right-x {
			return i
		}
		return i + 1
	}
	return n
}
