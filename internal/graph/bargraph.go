package graph

import (
	"iter"
	"math"

	"github.com/wandb/wandb/graphkit/internal/geom"
	"github.com/wandb/wandb/graphkit/internal/zoom"
)

// minBarHeight keeps zero-valued bars visible and hoverable.
const minBarHeight = 3.0

var averageColor = geom.RGB(0, 0.6, 1.0)

// BarGraph draws the visible window of samples as binned bars.
type BarGraph[T any] struct {
	samples iter.Seq[T]
	mapper  ValueMapper[T]
	cache   *geom.Cache
	cfg     config
}

// NewBarGraph returns a bar chart over samples. The cache is owned by the
// widget and must not be shared with another chart. A nil cache gets a
// private one.
func NewBarGraph[T any](
	samples iter.Seq[T],
	mapper ValueMapper[T],
	cache *geom.Cache,
	opts ...Option,
) *BarGraph[T] {
	if cache == nil {
		cache = &geom.Cache{}
	}
	return &BarGraph[T]{
		samples: samples,
		mapper:  mapper,
		cache:   cache,
		cfg:     newConfig(opts),
	}
}

// SetSamples replaces the sample sequence and invalidates the cache.
func (g *BarGraph[T]) SetSamples(samples iter.Seq[T]) {
	g.samples = samples
	g.cache.Clear()
}

// Invalidate clears the geometry cache.
func (g *BarGraph[T]) Invalidate() { g.cache.Clear() }

// ZoomLimits returns the configured zoom bounds.
func (g *BarGraph[T]) ZoomLimits() zoom.Limits { return g.cfg.zoomLimits }

// ExternalZoom returns the zoom set with WithExternalZoom, if any.
func (g *BarGraph[T]) ExternalZoom() (zoom.Zoom, bool) { return g.cfg.external() }

// Update applies one input event to s.
func (g *BarGraph[T]) Update(s State, ev Event, bounds geom.Rect, cursor Cursor) (State, Outcome) {
	s, out := interact(&g.cfg, s, ev, bounds, cursor, g.hit)
	if out.Redraw {
		g.cache.Clear()
	}
	return s, out
}

// Bars returns the binned values that would be drawn for s.
func (g *BarGraph[T]) Bars(s State) []float64 {
	all := collect(g.samples, g.mapper)
	w := VisibleRange(len(all), g.cfg.effectiveZoom(s), g.cfg.baseWindow)
	return Bin(all[w.Start:w.End()], g.cfg.bins, g.cfg.aggregator)
}

func (g *BarGraph[T]) hit(s State, size geom.Size, pos geom.Point) (int, bool) {
	v, ok := g.view(s, size)
	if !ok {
		return 0, false
	}
	return HitBar(pos.X, size.Width, v.layout.count)
}

// barLayout maps bar indices and values to frame coordinates. Drawing
// and hit-testing both go through it.
type barLayout struct {
	size   geom.Size
	margin float64
	max    float64
	count  int
	fill   float64
}

func (l barLayout) slot() float64 { return l.size.Width / float64(l.count) }

func (l barLayout) baseline() float64 { return l.size.Height - l.margin }

func (l barLayout) y(v float64) float64 {
	return l.baseline() - v*l.baseline()/l.max
}

func (l barLayout) column(i int) geom.Rect {
	return geom.Rect{X: float64(i) * l.slot(), Width: l.slot(), Height: l.baseline()}
}

func (l barLayout) bar(i int, v float64) geom.Rect {
	h := math.Max(v*l.baseline()/l.max, 0)
	if v == 0 {
		h = minBarHeight
	}
	slot := l.slot()
	inset := slot * (1 - l.fill) / 2
	return geom.Rect{
		X:      float64(i)*slot + inset,
		Y:      l.baseline() - h,
		Width:  slot - 2*inset,
		Height: h,
	}
}

type barView struct {
	window Window
	values []float64
	layout barLayout
	zoom   zoom.Zoom
}

func (g *BarGraph[T]) view(s State, size geom.Size) (barView, bool) {
	if size.Empty() || size.Height <= g.cfg.bottomMargin {
		return barView{}, false
	}

	z := g.cfg.effectiveZoom(s)
	all := collect(g.samples, g.mapper)
	w := VisibleRange(len(all), z, g.cfg.baseWindow)
	if w.Count == 0 {
		return barView{}, false
	}

	values := Bin(all[w.Start:w.End()], g.cfg.bins, g.cfg.aggregator)
	_, hi := valueRange(values)
	if hi <= 0 {
		return barView{}, false
	}

	return barView{
		window: w,
		values: values,
		zoom:   z,
		layout: barLayout{
			size:   size,
			margin: g.cfg.bottomMargin,
			max:    hi,
			count:  len(values),
			fill:   g.cfg.barFill,
		},
	}, true
}

// Draw returns the cached picture for s, re-recording it if needed.
func (g *BarGraph[T]) Draw(s State, theme Theme, bounds geom.Rect) geom.Geometry {
	return g.cache.Draw(bounds.Size(), func(f *geom.Frame) {
		v, ok := g.view(s, f.Size())
		if !ok {
			return
		}
		g.drawGrid(f, v, theme)
		g.drawBars(f, v, theme)
		g.drawAverage(f, v)
		g.drawIndexLabels(f, v, theme)
		if idx, ok := s.Hovered(); ok && idx < len(v.values) {
			g.drawHover(f, v, idx, theme)
		}
	})
}

func (g *BarGraph[T]) barColor(i int, value, avg float64, theme Theme) geom.Color {
	c := g.cfg.colors.Resolve(ColorParams{Index: i, Value: value, Average: avg, Theme: theme})
	if value == 0 {
		if _, ok := g.cfg.colors.(performanceScheme); ok {
			return theme.Muted
		}
	}
	return c
}

func (g *BarGraph[T]) drawBars(f *geom.Frame, v barView, theme Theme) {
	avg := mean(v.values)
	for i, value := range v.values {
		f.FillRect(v.layout.bar(i, value), g.barColor(i, value, avg, theme))
	}
}

func (g *BarGraph[T]) drawGrid(f *geom.Frame, v barView, theme Theme) {
	if !g.cfg.showGrid {
		return
	}
	l := v.layout
	line := theme.Text.ScaleAlpha(0.1)
	label := theme.Text.ScaleAlpha(0.6)

	const steps = 5
	for i := 0; i <= steps; i++ {
		y := l.baseline() * float64(i) / steps
		f.FillRect(geom.Rect{Y: y, Width: l.size.Width, Height: 1}, line)

		if g.cfg.showLabels {
			f.FillText(geom.Label{
				Text:     g.cfg.labels.FormatYAxis(l.max * (1 - float64(i)/steps)),
				Position: geom.Pt(5, y-2),
				Color:    label,
				Size:     g.cfg.textSize * 0.85,
				AlignY:   geom.AlignEnd,
			})
		}
	}

	f.FillRect(geom.Rect{Y: l.baseline(), Width: l.size.Width, Height: 2}, theme.Text.ScaleAlpha(0.3))

	vsteps := min(max(l.count/2, 1), 10)
	for i := 0; i <= vsteps; i++ {
		x := l.size.Width * float64(i) / float64(vsteps)
		f.FillRect(geom.Rect{X: x, Width: 1, Height: l.baseline()}, line)
	}
}

func (g *BarGraph[T]) drawAverage(f *geom.Frame, v barView) {
	avg := mean(v.values)
	if !g.cfg.showLabels || avg <= 0 {
		return
	}
	y := v.layout.y(avg)
	f.FillRect(geom.Rect{Y: y, Width: v.layout.size.Width, Height: 2}, averageColor.ScaleAlpha(0.7))
	f.FillText(geom.Label{
		Text:     g.cfg.labels.FormatAverage(avg),
		Position: geom.Pt(v.layout.size.Width-5, y-2),
		Color:    averageColor,
		Size:     g.cfg.textSize,
		AlignX:   geom.AlignEnd,
		AlignY:   geom.AlignEnd,
	})
}

// drawIndexLabels numbers the bars along the bottom margin, skipping
// labels that would overlap.
func (g *BarGraph[T]) drawIndexLabels(f *geom.Frame, v barView, theme Theme) {
	if !g.cfg.showLabels {
		return
	}
	l := v.layout
	widest := g.cfg.textWidth(formatFloat(float64(l.count-1), 0)) + g.cfg.textSize*0.6
	every := max(1, int(math.Ceil(widest/l.slot())))
	for i := 0; i < l.count; i += every {
		f.FillText(geom.Label{
			Text:     formatFloat(float64(i), 0),
			Position: geom.Pt(float64(i)*l.slot()+l.slot()/2, l.size.Height-5),
			Color:    theme.Text.ScaleAlpha(0.6),
			Size:     g.cfg.textSize * 0.85,
			AlignX:   geom.AlignCenter,
			AlignY:   geom.AlignEnd,
		})
	}
}

func (g *BarGraph[T]) drawHover(f *geom.Frame, v barView, idx int, theme Theme) {
	f.FillRect(v.layout.column(idx), geom.Black.ScaleAlpha(0.3))
	if !g.cfg.showLabels {
		return
	}

	value := v.values[idx]
	bar := v.layout.bar(idx, value)
	label := geom.Label{
		Text:     g.cfg.labels.FormatTooltip(value),
		Position: geom.Pt(bar.X+bar.Width/2, bar.Y-4),
		Color:    theme.Text,
		Size:     g.cfg.textSize,
		AlignX:   geom.AlignCenter,
		AlignY:   geom.AlignEnd,
	}
	if bar.Y-4 < g.cfg.textSize {
		label.Position.Y = bar.Y + 4
		label.AlignY = geom.AlignStart
	}
	f.FillText(label)
}
