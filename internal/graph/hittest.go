package graph

import (
	"math"

	"github.com/wandb/wandb/graphkit/internal/geom"
)

// DefaultHoverRadius is how close, in frame units, the cursor must be to
// a line point to hover it.
const DefaultHoverRadius = 20.0

// HitBar returns the index of the bar under x, for count bars evenly
// spanning width.
func HitBar(x, width float64, count int) (int, bool) {
	if count <= 0 || !(width > 0) || x < 0 {
		return 0, false
	}
	idx := int(math.Floor(x / (width / float64(count))))
	if idx >= count {
		return 0, false
	}
	return idx, true
}

// NearestPoint returns the index of the point closest to cursor, if it
// lies within radius. Ties go to the lower index.
func NearestPoint(points []geom.Point, cursor geom.Point, radius float64) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, p := range points {
		if d := p.Distance(cursor); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist > radius {
		return 0, false
	}
	return best, true
}
