// Package graph turns sample sequences into bar and line chart geometry
// and handles hover, click and wheel-zoom interaction.
//
// Charts are stateless apart from their configuration and geometry cache.
// Interaction state lives in a State value that the host owns and passes
// to every Update and Draw call.
package graph

import (
	"github.com/wandb/wandb/graphkit/internal/geom"
)

// Chart is implemented by *BarGraph and *LineGraph.
type Chart interface {
	// Update applies one input event. When the outcome asks for a redraw
	// the chart's cache has already been cleared.
	Update(s State, ev Event, bounds geom.Rect, cursor Cursor) (State, Outcome)

	// Draw returns the picture for s at the size of bounds, in
	// coordinates relative to the bounds origin.
	Draw(s State, theme Theme, bounds geom.Rect) geom.Geometry

	// Invalidate clears the cache after a change the chart cannot see,
	// such as new samples or a theme switch.
	Invalidate()
}

// mean returns the arithmetic mean, or 0 for no values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var s float64
	for _, v := range values {
		s += v
	}
	return s / float64(len(values))
}

func valueRange(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
