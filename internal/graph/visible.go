package graph

import (
	"math"

	"github.com/wandb/wandb/graphkit/internal/zoom"
)

// minZoomedCount is the smallest window shown while zoomed in.
const minZoomedCount = 5

// Window is the contiguous slice [Start, Start+Count) of samples on screen.
type Window struct {
	Start int
	Count int
}

// End returns the exclusive end index.
func (w Window) End() int { return w.Start + w.Count }

// VisibleRange returns the suffix of total samples shown at zoom z.
//
// base is the number of samples shown at 1x. Zooming in divides it,
// zooming out multiplies it. Full view shows everything. The window is
// always anchored to the most recent sample.
func VisibleRange(total int, z zoom.Zoom, base float64) Window {
	if total <= 0 {
		return Window{}
	}

	factor, ok := z.Factor()
	if !ok {
		return Window{Start: 0, Count: total}
	}
	if !(base >= 1) {
		base = 1
	}

	count := int(math.Round(math.Min(base/factor, float64(total))))
	if factor >= 1.0 {
		count = max(minZoomedCount, count)
	}
	count = min(max(count, 0), total)

	return Window{Start: total - count, Count: count}
}
