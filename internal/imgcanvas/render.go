// Package imgcanvas rasterizes chart geometry into images.
package imgcanvas

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/wandb/wandb/graphkit/internal/geom"
	"github.com/wandb/wandb/graphkit/internal/graph"
)

// Renderer draws geometry with a fixed font.
type Renderer struct {
	face font.Face
}

// NewRenderer returns a renderer using face for labels, or the built-in
// 7x13 face if face is nil.
func NewRenderer(face font.Face) *Renderer {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &Renderer{face: face}
}

// Render draws g over a bg-filled image of g's size.
func (r *Renderer) Render(g geom.Geometry, bg geom.Color) image.Image {
	w := max(int(math.Ceil(g.Size.Width)), 1)
	h := max(int(math.Ceil(g.Size.Height)), 1)

	dc := gg.NewContext(w, h)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.SetFontFace(r.face)

	setColor(dc, bg)
	dc.Clear()

	for _, p := range g.Primitives {
		switch p := p.(type) {
		case geom.RectFill:
			setColor(dc, p.Color)
			dc.DrawRectangle(p.Rect.X, p.Rect.Y, p.Rect.Width, p.Rect.Height)
			dc.Fill()

		case geom.PathStroke:
			drawPath(dc, p)

		case geom.CircleFill:
			setColor(dc, p.Color)
			dc.DrawCircle(p.Center.X, p.Center.Y, p.Radius)
			dc.Fill()

		case geom.Label:
			setColor(dc, p.Color)
			dc.DrawStringAnchored(p.Text, p.Position.X, p.Position.Y, anchorX(p.AlignX), anchorY(p.AlignY))
		}
	}

	return dc.Image()
}

func drawPath(dc *gg.Context, p geom.PathStroke) {
	setColor(dc, p.Color)
	dc.SetLineWidth(p.Width)
	dc.SetDash(p.Dash...)

	dc.MoveTo(p.Points[0].X, p.Points[0].Y)
	for _, pt := range p.Points[1:] {
		dc.LineTo(pt.X, pt.Y)
	}
	if p.Closed {
		dc.ClosePath()
	}
	dc.Stroke()
	dc.SetDash()
}

func setColor(dc *gg.Context, c geom.Color) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

func anchorX(a geom.Align) float64 {
	switch a {
	case geom.AlignCenter:
		return 0.5
	case geom.AlignEnd:
		return 1
	}
	return 0
}

// anchorY converts a vertical alignment into gg's baseline-relative
// anchor, where 0 puts the baseline on the point and 1 hangs the text
// below it.
func anchorY(a geom.Align) float64 {
	switch a {
	case geom.AlignCenter:
		return 0.5
	case geom.AlignEnd:
		return 0
	}
	return 1
}

// RenderChart draws chart at width×height pixels and writes it as PNG.
func (r *Renderer) RenderChart(
	w io.Writer,
	chart graph.Chart,
	state graph.State,
	theme graph.Theme,
	width, height int,
) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("imgcanvas: invalid size %dx%d", width, height)
	}

	bounds := geom.RectOf(geom.Size{Width: float64(width), Height: float64(height)})
	g := chart.Draw(state, theme, bounds)
	g.Size = bounds.Size()
	img := r.Render(g, theme.Background)

	dc := gg.NewContextForImage(img)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("imgcanvas: encoding png: %w", err)
	}
	return nil
}
