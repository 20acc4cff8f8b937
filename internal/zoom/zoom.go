// Package zoom implements the chart zoom level: a bounded magnification
// factor or the full-view sentinel.
package zoom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultMin is the smallest factor reachable by zooming out before
	// the view collapses to full view.
	DefaultMin = 0.1
	// DefaultMax is the largest factor reachable by zooming in.
	DefaultMax = 10.0

	fineStep   = 0.1
	coarseStep = 1.0
)

// Zoom is either a magnification factor or the full-view sentinel.
//
// The zero value is a factor of 1.0.
type Zoom struct {
	// factor is 0 in the zero value, which reads as 1x.
	factor float64
	full   bool
}

// Limits bounds the factor a Zoom may take.
type Limits struct {
	Min float64
	Max float64
}

// DefaultLimits returns the limits used when a chart is not configured.
func DefaultLimits() Limits {
	return Limits{Min: DefaultMin, Max: DefaultMax}
}

// Normalized returns limits with a positive minimum and Max >= Min.
func (l Limits) Normalized() Limits {
	if !(l.Min > 0) || math.IsInf(l.Min, 0) {
		l.Min = DefaultMin
	}
	if math.IsNaN(l.Max) || math.IsInf(l.Max, 0) {
		l.Max = DefaultMax
	}
	if l.Max < l.Min {
		l.Max = l.Min
	}
	return l
}

// Default returns a factor of 1.0.
func Default() Zoom { return Zoom{} }

// Full returns the full-view sentinel.
func Full() Zoom { return Zoom{full: true} }

// New returns a factor, clamped to at least DefaultMin.
func New(factor float64) Zoom {
	if math.IsNaN(factor) || factor < DefaultMin {
		factor = DefaultMin
	}
	return Zoom{factor: factor}
}

// IsFull reports whether z is the full-view sentinel.
func (z Zoom) IsFull() bool { return z.full }

// Factor returns the magnification factor and true, or 0 and false in
// full view.
func (z Zoom) Factor() (float64, bool) {
	if z.full {
		return 0, false
	}
	if z.factor == 0 {
		return 1.0, true
	}
	return z.factor, true
}

// ValueOr returns the factor, or def in full view.
func (z Zoom) ValueOr(def float64) float64 {
	if f, ok := z.Factor(); ok {
		return f
	}
	return def
}

// Increment zooms in by one step.
//
// Full view steps to the minimum factor. Factors at or above 1.0 grow by
// a coarse step, smaller factors by a fine step up to 1.0.
func (z Zoom) Increment(limits Limits) Zoom {
	limits = limits.Normalized()

	v, ok := z.Factor()
	if !ok {
		return Zoom{factor: limits.Min}
	}

	var next float64
	if v >= 1.0 {
		next = v + coarseStep
	} else {
		next = math.Min(fine(v, fineStep), 1.0)
	}
	return Zoom{factor: math.Min(next, limits.Max)}
}

// Decrement zooms out by one step.
//
// Stepping below the minimum factor collapses to full view. Full view
// stays full view.
func (z Zoom) Decrement(limits Limits) Zoom {
	limits = limits.Normalized()

	v, ok := z.Factor()
	if !ok {
		return z
	}

	if v <= 1.0 {
		if v <= limits.Min+epsilon {
			return Full()
		}
		next := fine(v, -fineStep)
		if next <= limits.Min+epsilon {
			return Full()
		}
		return Zoom{factor: math.Max(next, limits.Min)}
	}

	next := math.Max(v-coarseStep, 1.0)
	if next < limits.Min {
		return Full()
	}
	return Zoom{factor: next}
}

// Equal reports whether z and other describe the same zoom.
func (z Zoom) Equal(other Zoom) bool {
	a, aok := z.Factor()
	b, bok := other.Factor()
	return aok == bok && a == b
}

// String renders the zoom as "full", "2x" or "0.50x".
func (z Zoom) String() string {
	v, ok := z.Factor()
	if !ok {
		return "full"
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64) + "x"
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + "x"
}

// Parse reads a zoom written as "full", "2", "2x" or "0.5x".
func Parse(s string) (Zoom, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "full" {
		return Full(), nil
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "x"), 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return Zoom{}, fmt.Errorf("zoom: invalid zoom %q", s)
	}
	return New(v), nil
}

// Clamp returns z with its factor limited to limits. Full view is kept.
func (z Zoom) Clamp(limits Limits) Zoom {
	v, ok := z.Factor()
	if !ok {
		return z
	}
	limits = limits.Normalized()
	return Zoom{factor: math.Min(math.Max(v, limits.Min), limits.Max)}
}

// epsilon absorbs float error when comparing stepped factors.
const epsilon = 1e-9

// fine returns v+delta. Factors on the 0.1 grid stay on it, so repeated
// stepping does not accumulate float error.
func fine(v, delta float64) float64 {
	next := v + delta
	if math.Abs(v*10-math.Round(v*10)) < epsilon {
		next = math.Round(next*10) / 10
	}
	return next
}
