package geom

// Primitive is one recorded drawing operation.
//
// The set is closed: RectFill, PathStroke, CircleFill and Label.
type Primitive interface {
	primitive()
}

// RectFill fills an axis-aligned rectangle.
type RectFill struct {
	Rect  Rect
	Color Color
}

// PathStroke strokes a polyline.
type PathStroke struct {
	Points []Point
	Closed bool
	Color  Color
	Width  float64
	// Dash holds alternating on/off lengths. Nil means solid.
	Dash []float64
}

// CircleFill fills a circle.
type CircleFill struct {
	Center Point
	Radius float64
	Color  Color
}

// Align positions text relative to its anchor point.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Label places a line of text.
type Label struct {
	Text     string
	Position Point
	Color    Color
	// Size is the nominal font size in frame units.
	Size   float64
	AlignX Align
	AlignY Align
}

func (RectFill) primitive()   {}
func (PathStroke) primitive() {}
func (CircleFill) primitive() {}
func (Label) primitive()      {}

// Geometry is a recorded frame ready to be rasterized by a backend.
type Geometry struct {
	Size       Size
	Primitives []Primitive
}

// Empty reports whether nothing was drawn.
func (g Geometry) Empty() bool { return len(g.Primitives) == 0 }

// Frame records primitives for one draw pass.
type Frame struct {
	size  Size
	prims []Primitive
}

// NewFrame returns an empty frame of the given size.
func NewFrame(size Size) *Frame {
	return &Frame{size: size}
}

// Size returns the frame size.
func (f *Frame) Size() Size { return f.size }

// FillRect records a filled rectangle. Rectangles without area are
// dropped.
func (f *Frame) FillRect(r Rect, c Color) {
	if r.Width <= 0 || r.Height <= 0 || c.A <= 0 {
		return
	}
	f.prims = append(f.prims, RectFill{Rect: r, Color: c})
}

// StrokeLine records a straight segment.
func (f *Frame) StrokeLine(from, to Point, c Color, width float64) {
	f.StrokePath([]Point{from, to}, c, width)
}

// StrokePath records an open polyline.
func (f *Frame) StrokePath(points []Point, c Color, width float64) {
	if len(points) < 2 || c.A <= 0 {
		return
	}
	f.prims = append(f.prims, PathStroke{
		Points: append([]Point(nil), points...),
		Color:  c,
		Width:  width,
	})
}

// StrokeDashed records a dashed polyline with alternating on/off
// lengths.
func (f *Frame) StrokeDashed(points []Point, c Color, width float64, dash ...float64) {
	if len(points) < 2 || c.A <= 0 {
		return
	}
	f.prims = append(f.prims, PathStroke{
		Points: append([]Point(nil), points...),
		Color:  c,
		Width:  width,
		Dash:   append([]float64(nil), dash...),
	})
}

// StrokeRect records a closed rectangle outline.
func (f *Frame) StrokeRect(r Rect, c Color, width float64) {
	if c.A <= 0 {
		return
	}
	f.prims = append(f.prims, PathStroke{
		Points: []Point{
			{r.X, r.Y},
			{r.X + r.Width, r.Y},
			{r.X + r.Width, r.Y + r.Height},
			{r.X, r.Y + r.Height},
		},
		Closed: true,
		Color:  c,
		Width:  width,
	})
}

// FillCircle records a filled circle.
func (f *Frame) FillCircle(center Point, radius float64, c Color) {
	if radius <= 0 || c.A <= 0 {
		return
	}
	f.prims = append(f.prims, CircleFill{Center: center, Radius: radius, Color: c})
}

// FillText records a text label.
func (f *Frame) FillText(l Label) {
	if l.Text == "" || l.Color.A <= 0 {
		return
	}
	f.prims = append(f.prims, l)
}

// Geometry returns what has been recorded so far.
func (f *Frame) Geometry() Geometry {
	return Geometry{Size: f.size, Primitives: f.prims}
}
