// Package geom holds the backend-neutral drawing model: coordinates,
// colors, recorded primitives and the geometry cache.
package geom

import "math"

// Point is a position in frame coordinates, origin at the top left.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Empty reports whether the size has no drawable area.
func (s Size) Empty() bool { return !(s.Width > 0 && s.Height > 0) }

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// RectOf returns a rectangle at the origin with the given size.
func RectOf(s Size) Rect { return Rect{Width: s.Width, Height: s.Height} }

// Size returns the rectangle's size.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Origin returns the top left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Contains reports whether p lies inside r. The right and bottom edges
// are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Inset shrinks r by the given insets. The result never has a negative
// size.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Horizontal(),
		Height: r.Height - in.Vertical(),
	}
	out.Width = math.Max(out.Width, 0)
	out.Height = math.Max(out.Height, 0)
	return out
}

// Insets are per-edge paddings.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns insets of v on every edge.
func Uniform(v float64) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns Left + Right.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns Top + Bottom.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }
