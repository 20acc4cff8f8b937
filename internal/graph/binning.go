package graph

import (
	"fmt"
	"math"
	"strings"
)

// Aggregator reduces the samples of one bin to a single bar.
type Aggregator int

const (
	Average Aggregator = iota
	Sum
	Max
)

func (a Aggregator) String() string {
	switch a {
	case Average:
		return "average"
	case Sum:
		return "sum"
	case Max:
		return "max"
	default:
		return fmt.Sprintf("Aggregator(%d)", int(a))
	}
}

// ParseAggregator accepts "average" (or "avg"), "sum" and "max".
func ParseAggregator(s string) (Aggregator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "average", "avg", "mean":
		return Average, nil
	case "sum":
		return Sum, nil
	case "max":
		return Max, nil
	}
	return 0, fmt.Errorf("graph: unknown aggregator %q", s)
}

func (a Aggregator) reduce(values []float64) float64 {
	switch a {
	case Sum:
		var s float64
		for _, v := range values {
			s += v
		}
		return s
	case Max:
		m := math.Inf(-1)
		for _, v := range values {
			m = math.Max(m, v)
		}
		return m
	default:
		var s float64
		for _, v := range values {
			s += v
		}
		return s / float64(len(values))
	}
}

// DesiredBins clamps the configured bin count to [1, items].
func DesiredBins(configured, items int) int {
	return min(max(configured, 1), max(1, items))
}

// Bin groups values into at most bins contiguous bins of ceil(len/bins)
// samples each and reduces every bin with agg. The last bin may be
// shorter. Empty input yields no bins.
func Bin(values []float64, bins int, agg Aggregator) []float64 {
	if len(values) == 0 {
		return nil
	}
	bins = DesiredBins(bins, len(values))
	width := (len(values) + bins - 1) / bins

	out := make([]float64, 0, bins)
	for start := 0; start < len(values); start += width {
		end := min(start+width, len(values))
		out = append(out, agg.reduce(values[start:end]))
	}
	return out
}
