package graph

import (
	"iter"

	"github.com/wandb/wandb/graphkit/internal/geom"
	"github.com/wandb/wandb/graphkit/internal/zoom"
)

// LineGraph draws the visible window of samples as a polyline.
type LineGraph[T any] struct {
	samples iter.Seq[T]
	mapper  ValueMapper[T]
	cache   *geom.Cache
	cfg     config
}

// NewLineGraph returns a line chart over samples. The cache is owned by
// the widget and must not be shared with another chart. A nil cache gets
// a private one.
func NewLineGraph[T any](
	samples iter.Seq[T],
	mapper ValueMapper[T],
	cache *geom.Cache,
	opts ...Option,
) *LineGraph[T] {
	if cache == nil {
		cache = &geom.Cache{}
	}
	return &LineGraph[T]{
		samples: samples,
		mapper:  mapper,
		cache:   cache,
		cfg:     newConfig(opts),
	}
}

// SetSamples replaces the sample sequence and invalidates the cache.
func (g *LineGraph[T]) SetSamples(samples iter.Seq[T]) {
	g.samples = samples
	g.cache.Clear()
}

// Invalidate clears the geometry cache.
func (g *LineGraph[T]) Invalidate() { g.cache.Clear() }

// ZoomLimits returns the configured zoom bounds.
func (g *LineGraph[T]) ZoomLimits() zoom.Limits { return g.cfg.zoomLimits }

// ExternalZoom returns the zoom set with WithExternalZoom, if any.
func (g *LineGraph[T]) ExternalZoom() (zoom.Zoom, bool) { return g.cfg.external() }

// Update applies one input event to s.
func (g *LineGraph[T]) Update(s State, ev Event, bounds geom.Rect, cursor Cursor) (State, Outcome) {
	s, out := interact(&g.cfg, s, ev, bounds, cursor, g.hit)
	if out.Redraw {
		g.cache.Clear()
	}
	return s, out
}

// Points returns where the visible samples are placed for s in a frame
// of the given size.
func (g *LineGraph[T]) Points(s State, size geom.Size) []geom.Point {
	v, ok := g.view(s, size)
	if !ok {
		return nil
	}
	return v.points
}

// Interactive reports whether points are drawn and hoverable at z. They
// are while z is a factor strictly above the zoom minimum.
func (g *LineGraph[T]) Interactive(z zoom.Zoom) bool {
	f, ok := z.Factor()
	return ok && f > g.cfg.zoomLimits.Min
}

func (g *LineGraph[T]) hit(s State, size geom.Size, pos geom.Point) (int, bool) {
	if !g.Interactive(g.cfg.effectiveZoom(s)) {
		return 0, false
	}
	v, ok := g.view(s, size)
	if !ok {
		return 0, false
	}
	return NearestPoint(v.points, pos, g.cfg.hoverRadius)
}

// lineLayout places sample i with value v inside the plot area. Drawing
// and hit-testing both go through it.
type lineLayout struct {
	area   geom.Rect
	lo, hi float64
	n      int
}

func (l lineLayout) x(i int) float64 {
	return l.area.X + float64(i)/float64(max(l.n-1, 1))*l.area.Width
}

func (l lineLayout) y(v float64) float64 {
	norm := (v - l.lo) / (l.hi - l.lo)
	return l.area.Y + l.area.Height - norm*l.area.Height
}

func (l lineLayout) point(i int, v float64) geom.Point {
	return geom.Pt(l.x(i), l.y(v))
}

type lineView struct {
	window Window
	values []float64
	points []geom.Point
	layout lineLayout
	zoom   zoom.Zoom
}

func (g *LineGraph[T]) view(s State, size geom.Size) (lineView, bool) {
	area := geom.RectOf(size).Inset(g.cfg.padding)
	if area.Width <= 0 || area.Height <= 0 {
		return lineView{}, false
	}

	z := g.cfg.effectiveZoom(s)
	all := collect(g.samples, g.mapper)
	w := VisibleRange(len(all), z, g.cfg.baseWindow)
	if w.Count == 0 {
		return lineView{}, false
	}

	values := all[w.Start:w.End()]
	lo, hi := valueRange(values)
	if hi == lo {
		return lineView{}, false
	}

	l := lineLayout{area: area, lo: lo, hi: hi, n: len(values)}
	points := make([]geom.Point, len(values))
	for i, v := range values {
		points[i] = l.point(i, v)
	}
	return lineView{window: w, values: values, points: points, layout: l, zoom: z}, true
}

// Draw returns the cached picture for s, re-recording it if needed.
func (g *LineGraph[T]) Draw(s State, theme Theme, bounds geom.Rect) geom.Geometry {
	return g.cache.Draw(bounds.Size(), func(f *geom.Frame) {
		v, ok := g.view(s, f.Size())
		if !ok {
			return
		}
		g.drawGrid(f, v, theme)
		g.drawLine(f, v, theme)
		if g.cfg.showPoints && g.Interactive(v.zoom) {
			hovered := -1
			if idx, ok := s.Hovered(); ok {
				hovered = idx
			}
			g.drawPoints(f, v, hovered, theme)
		}
		g.drawLabels(f, v, theme)
	})
}

func (g *LineGraph[T]) lineColor(theme Theme) geom.Color {
	if g.cfg.lineColor != nil {
		return *g.cfg.lineColor
	}
	return theme.Primary
}

func (g *LineGraph[T]) drawGrid(f *geom.Frame, v lineView, theme Theme) {
	if !g.cfg.showGrid {
		return
	}
	a := v.layout.area

	const lines = 10
	for i := 0; i <= lines; i++ {
		alpha := 0.05
		if i%2 == 0 {
			alpha = 0.15
		}
		c := theme.Text.ScaleAlpha(alpha)

		x := a.X + a.Width*float64(i)/lines
		f.StrokeLine(geom.Pt(x, a.Y), geom.Pt(x, a.Y+a.Height), c, 1)

		y := a.Y + a.Height*float64(i)/lines
		f.StrokeLine(geom.Pt(a.X, y), geom.Pt(a.X+a.Width, y), c, 1)
	}
	f.StrokeRect(a, theme.Text.ScaleAlpha(0.3), 1)
}

func (g *LineGraph[T]) drawLine(f *geom.Frame, v lineView, theme Theme) {
	if len(v.points) < 2 {
		return
	}
	width := g.cfg.lineWidth
	c := g.lineColor(theme)

	if g.cfg.shadow {
		shadow := make([]geom.Point, len(v.points))
		for i, p := range v.points {
			shadow[i] = p.Add(geom.Pt(1, 1))
		}
		f.StrokePath(shadow, geom.Black.ScaleAlpha(0.2), width+1)
	}
	f.StrokePath(v.points, c.ScaleAlpha(0.3), width+2)
	f.StrokePath(v.points, c, width)
}

func (g *LineGraph[T]) drawPoints(f *geom.Frame, v lineView, hovered int, theme Theme) {
	avg := mean(v.values)
	for i, p := range v.points {
		r := g.cfg.pointRadius
		if i == hovered {
			r += 3
		}
		fill := g.cfg.colors.Resolve(ColorParams{Index: i, Value: v.values[i], Average: avg, Theme: theme})

		f.FillCircle(p.Add(geom.Pt(1, 1)), r+1, geom.Black.ScaleAlpha(0.3))
		f.FillCircle(p, r+1, geom.White.ScaleAlpha(0.9))
		f.FillCircle(p, r, fill)
		f.FillCircle(p.Sub(geom.Pt(r/3, r/3)), r/3, geom.White.ScaleAlpha(0.6))
	}

	if hovered >= 0 && hovered < len(v.points) {
		g.drawTooltip(f, v.points[hovered], v.values[hovered], g.cfg.pointRadius+3, theme)
	}
}

// drawTooltip places a value box above p, kept inside the frame.
func (g *LineGraph[T]) drawTooltip(f *geom.Frame, p geom.Point, value, r float64, theme Theme) {
	text := g.cfg.labels.FormatTooltip(value)
	size := f.Size()
	w := g.cfg.textWidth(text) + 12
	h := g.cfg.textSize + 8

	box := geom.Rect{X: p.X - w/2, Y: p.Y - r - 8 - h, Width: w, Height: h}
	if box.Y < 0 {
		box.Y = p.Y + r + 8
	}
	box.X = max(0, min(box.X, size.Width-w))

	f.FillRect(box, theme.Background.ScaleAlpha(0.9))
	f.StrokeRect(box, g.lineColor(theme), 1)
	f.FillText(geom.Label{
		Text:     text,
		Position: geom.Pt(box.X+w/2, box.Y+h/2),
		Color:    theme.Text,
		Size:     g.cfg.textSize,
		AlignX:   geom.AlignCenter,
		AlignY:   geom.AlignCenter,
	})
}

func (g *LineGraph[T]) drawLabels(f *geom.Frame, v lineView, theme Theme) {
	if !g.cfg.showLabels {
		return
	}
	a := v.layout.area
	labels := g.cfg.labels

	// Dashed average line with its value boxed at the right edge.
	avg := mean(v.values)
	y := v.layout.y(avg)
	f.StrokeDashed(
		[]geom.Point{geom.Pt(a.X, y), geom.Pt(a.X+a.Width, y)},
		averageColor.ScaleAlpha(0.8), 1.5, 15, 5,
	)
	avgText := labels.FormatAverage(avg)
	w := g.cfg.textWidth(avgText) + 8
	h := g.cfg.textSize + 4
	box := geom.Rect{X: a.X + a.Width - w - 5, Y: y - h - 2, Width: w, Height: h}
	f.FillRect(box, theme.Background.ScaleAlpha(0.8))
	f.FillText(geom.Label{
		Text:     avgText,
		Position: geom.Pt(box.X+w/2, box.Y+h/2),
		Color:    averageColor,
		Size:     g.cfg.textSize,
		AlignX:   geom.AlignCenter,
		AlignY:   geom.AlignCenter,
	})

	// Y axis: five evenly spaced values from min to max.
	const ticks = 4
	for i := 0; i <= ticks; i++ {
		value := v.layout.lo + (v.layout.hi-v.layout.lo)*float64(i)/ticks
		f.FillText(geom.Label{
			Text:     labels.FormatYAxis(value),
			Position: geom.Pt(a.X-5, v.layout.y(value)),
			Color:    theme.Text.ScaleAlpha(0.7),
			Size:     g.cfg.textSize * 0.85,
			AlignX:   geom.AlignEnd,
			AlignY:   geom.AlignCenter,
		})
	}

	size := f.Size()
	if title := labels.FormatTitle(v.zoom); title != "" {
		f.FillText(geom.Label{
			Text:     title,
			Position: geom.Pt(size.Width/2, 2),
			Color:    theme.Text,
			Size:     g.cfg.textSize * 1.15,
			AlignX:   geom.AlignCenter,
			AlignY:   geom.AlignStart,
		})
	}
	f.FillText(geom.Label{
		Text:     labels.FormatSubtitle(v.zoom, v.window.Start, v.window.End(), v.window.Count),
		Position: geom.Pt(size.Width/2, size.Height-2),
		Color:    theme.Text.ScaleAlpha(0.6),
		Size:     g.cfg.textSize * 0.85,
		AlignX:   geom.AlignCenter,
		AlignY:   geom.AlignEnd,
	})
}
