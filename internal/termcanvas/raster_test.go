package termcanvas_test

import (
	"testing"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/wandb/wandb/graphkit/internal/geom"
	"github.com/wandb/wandb/graphkit/internal/termcanvas"
)

const fullBraille = '⣿'

func draw(cols, rows int, fn func(f *geom.Frame)) canvas.Model {
	f := geom.NewFrame(termcanvas.FrameSize(cols, rows))
	fn(f)
	return termcanvas.Rasterize(f.Geometry(), cols, rows, geom.Black)
}

func TestFrameSize(t *testing.T) {
	assert.Equal(t, geom.Size{Width: 160, Height: 96}, termcanvas.FrameSize(80, 24))
}

func TestRasterize_OpaqueRectFillsDots(t *testing.T) {
	c := draw(2, 1, func(f *geom.Frame) {
		f.FillRect(geom.Rect{Width: 4, Height: 4}, geom.White)
	})

	assert.Equal(t, fullBraille, c.Cell(canvas.Point{X: 0, Y: 0}).Rune)
	assert.Equal(t, fullBraille, c.Cell(canvas.Point{X: 1, Y: 0}).Rune)
}

func TestRasterize_TranslucentRectTintsBackground(t *testing.T) {
	c := draw(2, 1, func(f *geom.Frame) {
		f.FillRect(geom.Rect{Width: 2, Height: 4}, geom.White.WithAlpha(0.3))
	})

	tinted := c.Cell(canvas.Point{X: 0, Y: 0})
	assert.Zero(t, tinted.Rune)
	assert.NotEqual(t, lipgloss.NoColor{}, tinted.Style.GetBackground())

	plain := c.Cell(canvas.Point{X: 1, Y: 0})
	assert.Equal(t, lipgloss.NoColor{}, plain.Style.GetBackground())
}

func TestRasterize_FaintStrokeSkipped(t *testing.T) {
	c := draw(4, 1, func(f *geom.Frame) {
		f.StrokeLine(geom.Pt(0, 0), geom.Pt(7, 0), geom.White.WithAlpha(0.05), 1)
	})

	for x := range 4 {
		assert.Zero(t, c.Cell(canvas.Point{X: x, Y: 0}).Rune)
	}
}

func TestRasterize_DashedLineHasGaps(t *testing.T) {
	c := draw(20, 1, func(f *geom.Frame) {
		f.StrokeDashed([]geom.Point{geom.Pt(0, 0), geom.Pt(39, 0)}, geom.White, 1, 15, 5)
	})

	// 8 dots on, 3 off: cells 0-3 drawn, cell 4 covers dots 8 and 9.
	assert.NotZero(t, c.Cell(canvas.Point{X: 0, Y: 0}).Rune)
	assert.NotZero(t, c.Cell(canvas.Point{X: 3, Y: 0}).Rune)
	assert.Zero(t, c.Cell(canvas.Point{X: 4, Y: 0}).Rune)
}

func TestRasterize_Label(t *testing.T) {
	c := draw(10, 2, func(f *geom.Frame) {
		f.FillText(geom.Label{Text: "hi", Position: geom.Pt(4, 4), Color: geom.White})
	})

	assert.Equal(t, 'h', c.Cell(canvas.Point{X: 2, Y: 1}).Rune)
	assert.Equal(t, 'i', c.Cell(canvas.Point{X: 3, Y: 1}).Rune)
}

func TestRasterize_LabelClampedToCanvas(t *testing.T) {
	c := draw(5, 1, func(f *geom.Frame) {
		f.FillText(geom.Label{Text: "abc", Position: geom.Pt(10, 0), Color: geom.White})
	})

	assert.Equal(t, 'a', c.Cell(canvas.Point{X: 2, Y: 0}).Rune)
	assert.Equal(t, 'c', c.Cell(canvas.Point{X: 4, Y: 0}).Rune)
}

func TestRasterize_LabelAlignEnd(t *testing.T) {
	c := draw(10, 3, func(f *geom.Frame) {
		f.FillText(geom.Label{
			Text:     "ab",
			Position: geom.Pt(10, 8),
			Color:    geom.White,
			AlignX:   geom.AlignEnd,
			AlignY:   geom.AlignEnd,
		})
	})

	// Right edge at column 5, bottom edge on the boundary above row 2.
	assert.Equal(t, 'a', c.Cell(canvas.Point{X: 3, Y: 1}).Rune)
	assert.Equal(t, 'b', c.Cell(canvas.Point{X: 4, Y: 1}).Rune)
}

func TestRasterize_EmptyCanvas(t *testing.T) {
	assert.NotPanics(t, func() {
		termcanvas.Rasterize(geom.Geometry{}, 0, 0, geom.Black)
	})
}
