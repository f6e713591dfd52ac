package field

import (
	"github.com/iw2rmb/tapfield/buffer"
)

// OutcomeKind identifies one step of a gesture's plan.
type OutcomeKind uint8

const (
	// OutcomeFocus tells the host this surface is the live text target.
	OutcomeFocus OutcomeKind = iota
	OutcomeMoveCursor
	OutcomeSelectRange
	OutcomeSelectAll
	OutcomeClearSelection
	OutcomeShowCursor
	OutcomeHideCursor
	// OutcomeShowPopup shows the popup, or dismisses it when one is visible.
	OutcomeShowPopup
	OutcomeHidePopup
	OutcomeDragBegin
	OutcomeDragMove
	OutcomeDragEnd
	// OutcomeMagnify is the long-press hook; it never mutates the buffer.
	OutcomeMagnify
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFocus:
		return "focus"
	case OutcomeMoveCursor:
		return "move-cursor"
	case OutcomeSelectRange:
		return "select-range"
	case OutcomeSelectAll:
		return "select-all"
	case OutcomeClearSelection:
		return "clear-selection"
	case OutcomeShowCursor:
		return "show-cursor"
	case OutcomeHideCursor:
		return "hide-cursor"
	case OutcomeShowPopup:
		return "show-popup"
	case OutcomeHidePopup:
		return "hide-popup"
	case OutcomeDragBegin:
		return "drag-begin"
	case OutcomeDragMove:
		return "drag-move"
	case OutcomeDragEnd:
		return "drag-end"
	case OutcomeMagnify:
		return "magnify"
	default:
		return "unknown"
	}
}

// Outcome is one command produced by routing a gesture. Index, Range, and
// Point are meaningful only for the kinds that use them.
type Outcome struct {
	Kind  OutcomeKind
	Index int
	Range buffer.Range
	Point Point
}

// RouteContext is what the router needs to know about the field at the
// gesture's point.
type RouteContext struct {
	Clusters []string

	// Index is the character boundary under the gesture point.
	Index int
	// BeyondText is true when the point is right of all rendered text.
	BeyondText bool
	// OnCursor is true when the point is inside the cursor hit region.
	OnCursor bool

	HasSelection bool
	PopupShown   bool
}

// Route plans the commands for one gesture. It is pure; Model applies the
// plan in order.
func Route(g Gesture, ctx RouteContext) []Outcome {
	switch g.Kind {
	case GestureSingleTap:
		return routeSingleTap(g.Point, ctx)
	case GestureDoubleTap:
		return routeDoubleTap(g.Point, ctx)
	case GestureTripleTap:
		return []Outcome{
			{Kind: OutcomeFocus},
			{Kind: OutcomeMoveCursor, Index: ctx.Index},
			{Kind: OutcomeShowPopup, Point: g.Point},
			{Kind: OutcomeSelectAll},
		}
	case GesturePanBegan, GesturePanChanged, GesturePanEnded, GesturePanCancelled:
		return routePan(g, ctx)
	case GestureLongPressBegan:
		return []Outcome{
			{Kind: OutcomeFocus},
			{Kind: OutcomeMagnify, Point: g.Point},
		}
	default:
		return nil
	}
}

func routeSingleTap(p Point, ctx RouteContext) []Outcome {
	out := []Outcome{{Kind: OutcomeFocus}}

	// The cursor hit region wins over word/whitespace classification.
	if ctx.OnCursor {
		return append(out, Outcome{Kind: OutcomeShowPopup, Point: p})
	}

	if ctx.PopupShown {
		out = append(out, Outcome{Kind: OutcomeHidePopup})
	}
	out = append(out, Outcome{Kind: OutcomeMoveCursor, Index: ctx.Index})

	switch {
	case len(ctx.Clusters) == 0:
		out = append(out,
			Outcome{Kind: OutcomeShowPopup, Point: p},
			Outcome{Kind: OutcomeClearSelection},
			Outcome{Kind: OutcomeShowCursor},
		)
	case ctx.BeyondText || ctx.Index >= len(ctx.Clusters):
		out = append(out,
			Outcome{Kind: OutcomeClearSelection},
			Outcome{Kind: OutcomeShowCursor},
		)
	case buffer.IsWordAt(ctx.Clusters, ctx.Index):
		out = append(out,
			Outcome{Kind: OutcomeSelectRange, Range: buffer.WordRange(ctx.Clusters, ctx.Index)},
			Outcome{Kind: OutcomeShowPopup, Point: p},
		)
	default:
		out = append(out,
			Outcome{Kind: OutcomeShowPopup, Point: p},
			Outcome{Kind: OutcomeClearSelection},
			Outcome{Kind: OutcomeShowCursor},
		)
	}
	return out
}

func routeDoubleTap(p Point, ctx RouteContext) []Outcome {
	out := []Outcome{
		{Kind: OutcomeFocus},
		{Kind: OutcomeMoveCursor, Index: ctx.Index},
	}
	if len(ctx.Clusters) == 0 {
		return out
	}

	var word buffer.Range
	if ctx.Index >= len(ctx.Clusters) || buffer.IsWordAt(ctx.Clusters, ctx.Index) {
		word = buffer.WordRange(ctx.Clusters, ctx.Index)
	}
	if word.IsEmpty() {
		return append(out,
			Outcome{Kind: OutcomeClearSelection},
			Outcome{Kind: OutcomeShowCursor},
			Outcome{Kind: OutcomeShowPopup, Point: p},
		)
	}
	return append(out,
		Outcome{Kind: OutcomeSelectRange, Range: word},
		Outcome{Kind: OutcomeHideCursor},
		Outcome{Kind: OutcomeShowPopup, Point: p},
	)
}

func routePan(g Gesture, ctx RouteContext) []Outcome {
	if ctx.HasSelection {
		return nil
	}
	switch g.Kind {
	case GesturePanBegan:
		return []Outcome{
			{Kind: OutcomeFocus},
			{Kind: OutcomeHidePopup},
			{Kind: OutcomeDragBegin, Point: g.Point},
		}
	case GesturePanChanged:
		return []Outcome{{Kind: OutcomeDragMove, Index: ctx.Index, Point: g.Point}}
	default:
		return []Outcome{{Kind: OutcomeDragEnd, Index: ctx.Index, Point: g.Point}}
	}
}
