package graph

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/wandb/wandb/graphkit/internal/geom"
)

// ColorParams describes the element being colored.
type ColorParams struct {
	Index   int
	Value   float64
	Average float64
	Theme   Theme
}

// ColorScheme resolves the fill color of a bar or point.
type ColorScheme interface {
	Resolve(p ColorParams) geom.Color
}

// Fixed paints every element with one color.
type Fixed struct {
	Color geom.Color
}

func (f Fixed) Resolve(ColorParams) geom.Color { return f.Color }

// Cyclic cycles through Colors by element index. An empty list cycles
// the theme palette.
type Cyclic struct {
	Colors []geom.Color
}

func (c Cyclic) Resolve(p ColorParams) geom.Color {
	colors := c.Colors
	if len(colors) == 0 {
		colors = p.Theme.Palette
	}
	if len(colors) == 0 {
		return p.Theme.Primary
	}
	return colors[p.Index%len(colors)]
}

// Computed derives the color from the element parameters.
type Computed func(p ColorParams) geom.Color

func (f Computed) Resolve(p ColorParams) geom.Color { return f(p) }

var (
	performanceGood = geom.RGB(0.2, 0.8, 0.3)
	performanceBad  = geom.RGB(0.9, 0.3, 0.3)
	performanceOK   = geom.RGB(1.0, 0.7, 0.2)
	trafficYellow   = geom.RGB(1.0, 0.9, 0.0)
)

// performanceScheme is a named type so bar charts can recognize it and
// mute zero-valued bars.
type performanceScheme struct{}

func (performanceScheme) Resolve(p ColorParams) geom.Color {
	switch {
	case p.Value < p.Average*0.7:
		return performanceGood
	case p.Value > p.Average*1.3:
		return performanceBad
	default:
		return performanceOK
	}
}

// Performance colors elements green below 70% of the average, red above
// 130% and orange in between. It is the default scheme.
func Performance() ColorScheme { return performanceScheme{} }

// ThemeColors paints every element with the theme's primary color.
func ThemeColors() ColorScheme {
	return Computed(func(p ColorParams) geom.Color { return p.Theme.Primary })
}

// TrafficLight colors the first six elements green, the seventh yellow
// and the rest red.
func TrafficLight() ColorScheme {
	return Computed(func(p ColorParams) geom.Color {
		switch {
		case p.Index < 6:
			return performanceGood
		case p.Index == 6:
			return trafficYellow
		default:
			return performanceBad
		}
	})
}

// Gradient shades from green through yellow to red as the value grows
// from half the average to twice the average.
func Gradient() ColorScheme {
	green := geom.RGB(0.2, 0.8, 0.2)
	yellow := geom.RGB(1.0, 0.8, 0.2)
	red := geom.RGB(1.0, 0.2, 0.2)
	return Computed(func(p ColorParams) geom.Color {
		ratio := 1.0
		if p.Average != 0 {
			ratio = p.Value / p.Average
		}
		ratio = math.Max(0.5, math.Min(ratio, 2.0))
		t := ratio - 1.0
		if t <= 0 {
			return yellow.Blend(green, -t/0.5)
		}
		return yellow.Blend(red, t)
	})
}

// CloneScheme returns an independent copy of s. Fixed and Cyclic schemes
// are copied. Any other scheme, including Computed, cannot be copied and
// is replaced by Performance.
func CloneScheme(s ColorScheme) ColorScheme {
	switch s := s.(type) {
	case Fixed:
		return s
	case Cyclic:
		return Cyclic{Colors: slices.Clone(s.Colors)}
	case performanceScheme:
		return s
	default:
		return Performance()
	}
}

// SchemeByName returns a built-in scheme: "performance", "theme",
// "traffic_light", "gradient" or "palette".
func SchemeByName(name string) (ColorScheme, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "_")) {
	case "performance", "":
		return Performance(), nil
	case "theme", "theme_colors":
		return ThemeColors(), nil
	case "traffic_light":
		return TrafficLight(), nil
	case "gradient":
		return Gradient(), nil
	case "palette", "cyclic":
		return Cyclic{}, nil
	}
	return nil, fmt.Errorf("graph: unknown color scheme %q", name)
}
