package graph_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/graphkit/internal/geom"
	"github.com/wandb/wandb/graphkit/internal/graph"
	"github.com/wandb/wandb/graphkit/internal/zoom"
)

func TestVisibleRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int
		z     zoom.Zoom
		base  float64
		want  graph.Window
	}{
		{"empty", 0, zoom.Default(), 50, graph.Window{}},
		{"full view", 120, zoom.Full(), 50, graph.Window{Start: 0, Count: 120}},
		{"1x suffix", 120, zoom.Default(), 50, graph.Window{Start: 70, Count: 50}},
		{"zoomed in", 120, zoom.New(5), 50, graph.Window{Start: 110, Count: 10}},
		{"zoom floor", 120, zoom.New(10), 20, graph.Window{Start: 115, Count: 5}},
		{"zoomed out", 120, zoom.New(0.5), 50, graph.Window{Start: 20, Count: 100}},
		{"zoomed out past total", 120, zoom.New(0.2), 50, graph.Window{Start: 0, Count: 120}},
		{"fewer than window", 3, zoom.Default(), 50, graph.Window{Start: 0, Count: 3}},
		{"floor exceeds total", 3, zoom.New(10), 20, graph.Window{Start: 0, Count: 3}},
		{"bad base", 10, zoom.Default(), 0, graph.Window{Start: 5, Count: 5}},
		{"huge base zoomed out", 120, zoom.New(0.5), 1e300, graph.Window{Start: 0, Count: 120}},
		{"huge base zoomed in", 120, zoom.New(4), 1e300, graph.Window{Start: 0, Count: 120}},
		{"infinite base", 120, zoom.Default(), math.Inf(1), graph.Window{Start: 0, Count: 120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, graph.VisibleRange(tt.total, tt.z, tt.base))
		})
	}
}

func TestVisibleRange_Containment(t *testing.T) {
	t.Parallel()

	zooms := []zoom.Zoom{zoom.Full()}
	for z := zoom.Full(); ; {
		z = z.Increment(zoom.DefaultLimits())
		zooms = append(zooms, z)
		if v, _ := z.Factor(); v >= zoom.DefaultMax {
			break
		}
	}

	for total := range 40 {
		for _, z := range zooms {
			for _, base := range []float64{0, 1, 3, 7, 25, 100} {
				w := graph.VisibleRange(total, z, base)
				require.GreaterOrEqual(t, w.Start, 0)
				require.GreaterOrEqual(t, w.Count, 0)
				require.LessOrEqual(t, w.Count, total)
				require.LessOrEqual(t, w.End(), total)
				if total > 0 {
					require.Equal(t, total, w.End(), "window must end at the newest sample")
				}
			}
		}
	}
}

func TestBin_AverageScenario(t *testing.T) {
	t.Parallel()

	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.Equal(t, []float64{1.5, 3.5, 5.5, 7.5, 9.5}, graph.Bin(values, 5, graph.Average))
}

func TestBin_ShortLastBin(t *testing.T) {
	t.Parallel()

	values := []float64{1, 2, 3, 4, 5, 6, 7}
	got := graph.Bin(values, 3, graph.Average)
	assert.Equal(t, []float64{2, 5, 7}, got)
}

func TestBin_MaxOfNegatives(t *testing.T) {
	t.Parallel()

	got := graph.Bin([]float64{-5, -3, -9, -4}, 2, graph.Max)
	assert.Equal(t, []float64{-3, -4}, got)
}

func TestBin_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, graph.Bin(nil, 5, graph.Sum))
}

func TestBin_SumConservation(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 30; n++ {
		values := make([]float64, n)
		var total float64
		for i := range values {
			values[i] = math.Sin(float64(i)) * 10
			total += values[i]
		}
		for bins := -1; bins <= 35; bins++ {
			out := graph.Bin(values, bins, graph.Sum)
			var sum float64
			for _, v := range out {
				sum += v
			}
			assert.InDelta(t, total, sum, 1e-9, "n=%d bins=%d", n, bins)
			assert.LessOrEqual(t, len(out), graph.DesiredBins(bins, n))
			assert.LessOrEqual(t, len(out), n)
		}
	}
}

func TestDesiredBins(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, graph.DesiredBins(0, 10))
	assert.Equal(t, 10, graph.DesiredBins(50, 10))
	assert.Equal(t, 5, graph.DesiredBins(5, 10))
	assert.Equal(t, 1, graph.DesiredBins(5, 0))
}

func TestParseAggregator(t *testing.T) {
	t.Parallel()

	for _, a := range []graph.Aggregator{graph.Average, graph.Sum, graph.Max} {
		got, err := graph.ParseAggregator(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := graph.ParseAggregator("median")
	assert.Error(t, err)
}

func TestHitBar(t *testing.T) {
	t.Parallel()

	width := 1000.0
	barWidth := width / 10

	idx, ok := graph.HitBar(barWidth*2.5, width, 10)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = graph.HitBar(width, width, 10)
	assert.False(t, ok)
	_, ok = graph.HitBar(-1, width, 10)
	assert.False(t, ok)
	_, ok = graph.HitBar(10, width, 0)
	assert.False(t, ok)
}

func TestNearestPoint(t *testing.T) {
	t.Parallel()

	points := []geom.Point{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 60, Y: 0}}

	idx, ok := graph.NearestPoint(points, geom.Pt(28, 5), graph.DefaultHoverRadius)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = graph.NearestPoint(points, geom.Pt(30, 25), graph.DefaultHoverRadius)
	assert.False(t, ok)

	// Equidistant from 0 and 1: the lower index wins.
	idx, ok = graph.NearestPoint(points, geom.Pt(15, 0), graph.DefaultHoverRadius)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = graph.NearestPoint(nil, geom.Pt(0, 0), graph.DefaultHoverRadius)
	assert.False(t, ok)
}
