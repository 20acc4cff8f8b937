package graph

import (
	"github.com/wandb/wandb/graphkit/internal/geom"
)

// hitFunc maps a bounds-relative position to an element index.
type hitFunc func(s State, size geom.Size, pos geom.Point) (int, bool)

// interact is the state machine shared by both chart kinds.
//
// It never touches the cache; callers clear it when the outcome asks for
// a redraw.
func interact(
	cfg *config,
	s State,
	ev Event,
	bounds geom.Rect,
	cursor Cursor,
	hit hitFunc,
) (State, Outcome) {
	switch ev := ev.(type) {
	case CursorMoved:
		cursor = CursorAt(ev.Position)
		return hover(s, bounds, cursor, hit)

	case CursorLeft:
		return setHover(s, 0, false)

	case ButtonPressed:
		if ev.Button != ButtonLeft {
			return s, Outcome{}
		}
		if cursor.Available && !bounds.Contains(cursor.Position) {
			return s, Outcome{}
		}
		if idx, ok := s.Hovered(); ok {
			return s, Outcome{Notification: &Notification{Kind: ItemClicked, Index: idx}}
		}
		return s, Outcome{}

	case WheelScrolled:
		if cfg.externalZoom != nil || ev.DeltaY == 0 {
			return s, Outcome{}
		}
		if _, ok := cursor.In(bounds); !ok {
			return s, Outcome{}
		}

		current := cfg.effectiveZoom(s)
		next := current.Decrement(cfg.zoomLimits)
		if ev.DeltaY > 0 {
			next = current.Increment(cfg.zoomLimits)
		}
		if next.Equal(current) {
			return s, Outcome{}
		}

		s.Zoom = next
		// The window moved under the cursor, so re-resolve the hover
		// silently against the new zoom.
		s, _ = hover(s, bounds, cursor, hit)
		return s, Outcome{
			Notification: &Notification{Kind: ZoomChanged, Zoom: next},
			Redraw:       true,
		}
	}
	return s, Outcome{}
}

func hover(s State, bounds geom.Rect, cursor Cursor, hit hitFunc) (State, Outcome) {
	pos, ok := cursor.In(bounds)
	if !ok {
		return setHover(s, 0, false)
	}
	idx, ok := hit(s, bounds.Size(), pos)
	return setHover(s, idx, ok)
}

func setHover(s State, idx int, ok bool) (State, Outcome) {
	prev, had := s.Hovered()
	switch {
	case !ok && !had:
		return s, Outcome{}
	case !ok:
		return s.WithoutHover(), Outcome{Redraw: true}
	case had && prev == idx:
		return s, Outcome{}
	}
	return s.WithHovered(idx), Outcome{
		Notification: &Notification{Kind: ItemHovered, Index: idx},
		Redraw:       true,
	}
}
