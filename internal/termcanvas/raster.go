// Package termcanvas shows graph charts in a terminal.
//
// Geometry is drawn in braille dot units: one terminal cell is 2 units
// wide and 4 units tall, so a chart of cols×rows cells is laid out in a
// frame of 2*cols × 4*rows units.
package termcanvas

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/wandb/graphkit/internal/geom"
)

const (
	dotsPerCellX = 2
	dotsPerCellY = 4

	// Strokes and circles fainter than this are not drawn at all.
	minVisibleAlpha = 0.1
	// Fills fainter than this tint the cell background instead of
	// setting dots.
	minSolidAlpha = 0.5
)

// FrameSize returns the geometry frame size for a cols×rows cell area.
func FrameSize(cols, rows int) geom.Size {
	return geom.Size{Width: float64(cols * dotsPerCellX), Height: float64(rows * dotsPerCellY)}
}

// layer holds the dots of one color.
type layer struct {
	color geom.Color
	grid  *graph.BrailleGrid
}

// rasterizer draws one Geometry onto an ntcharts canvas.
type rasterizer struct {
	cols, rows int
	bg         geom.Color

	layers []*layer
	byHex  map[string]*layer
	tint   [][]*geom.Color
	labels []geom.Label
}

// Rasterize draws g onto a new cols×rows canvas.
//
// bg is the color translucent primitives are composited over.
func Rasterize(g geom.Geometry, cols, rows int, bg geom.Color) canvas.Model {
	m := canvas.New(cols, rows)
	if cols <= 0 || rows <= 0 {
		return m
	}

	r := &rasterizer{
		cols:  cols,
		rows:  rows,
		bg:    bg,
		byHex: make(map[string]*layer),
		tint:  make([][]*geom.Color, rows),
	}
	for i := range r.tint {
		r.tint[i] = make([]*geom.Color, cols)
	}

	for _, p := range g.Primitives {
		switch p := p.(type) {
		case geom.RectFill:
			r.fillRect(p)
		case geom.PathStroke:
			r.strokePath(p)
		case geom.CircleFill:
			r.fillCircle(p)
		case geom.Label:
			r.labels = append(r.labels, p)
		}
	}

	r.flush(&m)
	return m
}

func (r *rasterizer) layerFor(c geom.Color) *layer {
	flat := c.Over(r.bg)
	key := flat.Hex()
	if l, ok := r.byHex[key]; ok {
		return l
	}
	l := &layer{
		color: flat,
		grid: graph.NewBrailleGrid(r.cols, r.rows,
			0, float64(r.cols*dotsPerCellX-1), 0, float64(r.rows*dotsPerCellY-1)),
	}
	r.layers = append(r.layers, l)
	r.byHex[key] = l
	return l
}

func (r *rasterizer) inside(p canvas.Point) bool {
	return p.X >= 0 && p.Y >= 0 &&
		p.X < r.cols*dotsPerCellX && p.Y < r.rows*dotsPerCellY
}

func (l *layer) set(r *rasterizer, p canvas.Point) {
	if r.inside(p) {
		l.grid.Set(p)
	}
}

func dot(p geom.Point) canvas.Point {
	return canvas.Point{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

func (r *rasterizer) fillRect(p geom.RectFill) {
	if p.Color.A < minSolidAlpha {
		r.tintRect(p.Rect, p.Color)
		return
	}
	l := r.layerFor(p.Color)
	x0 := int(math.Round(p.Rect.X))
	y0 := int(math.Round(p.Rect.Y))
	x1 := max(int(math.Round(p.Rect.X+p.Rect.Width)), x0+1)
	y1 := max(int(math.Round(p.Rect.Y+p.Rect.Height)), y0+1)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			l.set(r, canvas.Point{X: x, Y: y})
		}
	}
}

// tintRect composites c over the background of every cell the rectangle
// touches.
func (r *rasterizer) tintRect(rect geom.Rect, c geom.Color) {
	c0 := max(int(rect.X)/dotsPerCellX, 0)
	r0 := max(int(rect.Y)/dotsPerCellY, 0)
	c1 := min(int(math.Ceil((rect.X+rect.Width)/dotsPerCellX)), r.cols)
	r1 := min(int(math.Ceil((rect.Y+rect.Height)/dotsPerCellY)), r.rows)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			base := r.bg
			if t := r.tint[row][col]; t != nil {
				base = *t
			}
			tinted := c.Over(base)
			r.tint[row][col] = &tinted
		}
	}
}

func (r *rasterizer) strokePath(p geom.PathStroke) {
	if p.Color.A < minVisibleAlpha || len(p.Points) < 2 {
		return
	}
	l := r.layerFor(p.Color)

	points := p.Points
	if p.Closed {
		points = append(append([]geom.Point(nil), points...), points[0])
	}

	dash := newDasher(p.Dash)
	for i := 1; i < len(points); i++ {
		for _, d := range graph.GetLinePoints(dot(points[i-1]), dot(points[i])) {
			if dash.on() {
				l.set(r, d)
			}
		}
	}
}

func (r *rasterizer) fillCircle(p geom.CircleFill) {
	if p.Color.A < minVisibleAlpha {
		return
	}
	l := r.layerFor(p.Color)
	center := dot(p.Center)
	radius := int(math.Round(p.Radius))
	if radius < 1 {
		l.set(r, center)
		return
	}
	for _, d := range graph.GetFullCirclePoints(center, radius) {
		l.set(r, d)
	}
}

func (r *rasterizer) cellStyle(fg *geom.Color, row, col int) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg != nil {
		s = s.Foreground(lipgloss.Color(fg.Hex()))
	}
	if t := r.tint[row][col]; t != nil {
		s = s.Background(lipgloss.Color(t.Hex()))
	}
	return s
}

func (r *rasterizer) flush(m *canvas.Model) {
	for _, l := range r.layers {
		for y, row := range l.grid.BraillePatterns() {
			for x, ch := range row {
				if ch == runes.BrailleBlockOffset || y >= r.rows || x >= r.cols {
					continue
				}
				graph.DrawBrailleRune(m, canvas.Point{X: x, Y: y}, ch, r.cellStyle(&l.color, y, x))
			}
		}
	}

	for row := range r.tint {
		for col, t := range r.tint[row] {
			if t == nil {
				continue
			}
			p := canvas.Point{X: col, Y: row}
			if m.Cell(p).Rune == 0 {
				m.SetCellStyle(p, r.cellStyle(nil, row, col))
			}
		}
	}

	for _, label := range r.labels {
		r.drawLabel(m, label)
	}
}

func (r *rasterizer) drawLabel(m *canvas.Model, l geom.Label) {
	text := []rune(l.Text)
	if len(text) > r.cols {
		text = text[:r.cols]
	}

	col := int(math.Round(l.Position.X / dotsPerCellX))
	switch l.AlignX {
	case geom.AlignCenter:
		col -= len(text) / 2
	case geom.AlignEnd:
		col -= len(text)
	}

	var row int
	switch l.AlignY {
	case geom.AlignEnd:
		row = int(math.Floor((l.Position.Y - 1) / dotsPerCellY))
	default:
		row = int(math.Floor(l.Position.Y / dotsPerCellY))
	}

	col = max(0, min(col, r.cols-len(text)))
	row = max(0, min(row, r.rows-1))

	fg := l.Color.Over(r.bg)
	for i, ch := range text {
		m.SetCell(canvas.Point{X: col + i, Y: row},
			canvas.NewCellWithStyle(ch, r.cellStyle(&fg, row, col+i)))
	}
}

// dasher walks an on/off dash pattern one dot at a time.
type dasher struct {
	pattern []int
	index   int
	left    int
}

func newDasher(lengths []float64) *dasher {
	d := &dasher{}
	for _, v := range lengths {
		// Dash lengths are given in frame units; a dot is one unit but
		// a cell is only two wide, so halve them to keep gaps visible.
		d.pattern = append(d.pattern, max(1, int(math.Round(v/2))))
	}
	if len(d.pattern) > 0 {
		d.left = d.pattern[0]
	}
	return d
}

func (d *dasher) on() bool {
	if len(d.pattern) == 0 {
		return true
	}
	for d.left == 0 {
		d.index = (d.index + 1) % len(d.pattern)
		d.left = d.pattern[d.index]
	}
	d.left--
	return d.index%2 == 0
}
