package geom

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

var (
	Black = RGB(0, 0, 0)
	White = RGB(1, 1, 1)
)

// RGB returns an opaque color.
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b, A: 1} }

// RGBA returns a color with the given alpha.
func RGBA(r, g, b, a float64) Color { return Color{R: r, G: g, B: b, A: a} }

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("geom: invalid color %q: %v", s, err)
	}
	return RGB(c.R, c.G, c.B), nil
}

// MustHex is ParseHex for package-level palettes. It panics on bad input.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the "#rrggbb" form, ignoring alpha.
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// ScaleAlpha multiplies the alpha by f.
func (c Color) ScaleAlpha(f float64) Color {
	c.A *= f
	return c
}

// Blend interpolates from c towards other in Lab space. t=0 is c, t=1 is
// other.
func (c Color) Blend(other Color, t float64) Color {
	b := c.colorful().BlendLab(other.colorful(), t).Clamped()
	return Color{R: b.R, G: b.G, B: b.B, A: c.A + (other.A-c.A)*t}
}

// Over composites c over bg and returns an opaque color. Backends without
// alpha support use it to flatten translucent fills.
func (c Color) Over(bg Color) Color {
	return Color{
		R: c.R*c.A + bg.R*(1-c.A),
		G: c.G*c.A + bg.G*(1-c.A),
		B: c.B*c.A + bg.B*(1-c.A),
		A: 1,
	}
}

// RGBA8 returns the components scaled to 0-255.
func (c Color) RGBA8() (r, g, b, a uint8) {
	cl := c.colorful().Clamped()
	return uint8(cl.R*255 + 0.5), uint8(cl.G*255 + 0.5),
		uint8(cl.B*255 + 0.5), uint8(clamp01(c.A)*255 + 0.5)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
