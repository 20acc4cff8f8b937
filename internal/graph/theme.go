package graph

import (
	"strings"

	"github.com/wandb/wandb/graphkit/internal/geom"
)

// Theme is the palette charts resolve their default colors from.
type Theme struct {
	Name       string
	Background geom.Color
	Text       geom.Color
	Muted      geom.Color
	Primary    geom.Color
	Success    geom.Color
	Warning    geom.Color
	Danger     geom.Color
	// Palette is cycled by palette-based color schemes.
	Palette []geom.Color
}

// graphPalette runs from purple to gold.
var graphPalette = []geom.Color{
	geom.MustHex("#E281FE"),
	geom.MustHex("#E78DE3"),
	geom.MustHex("#E993D5"),
	geom.MustHex("#ED9FBB"),
	geom.MustHex("#F0A5AD"),
	geom.MustHex("#F2AB9F"),
	geom.MustHex("#F6B784"),
	geom.MustHex("#F8BD78"),
	geom.MustHex("#FBC36B"),
	geom.MustHex("#FFCF4F"),
}

var (
	DarkTheme = Theme{
		Name:       "dark",
		Background: geom.RGB(0.125, 0.133, 0.149),
		Text:       geom.RGB(0.9, 0.9, 0.9),
		Muted:      geom.RGB(0.7, 0.7, 0.7),
		Primary:    geom.RGB(0.2, 0.6, 1.0),
		Success:    geom.RGB(0.2, 0.8, 0.3),
		Warning:    geom.RGB(1.0, 0.7, 0.2),
		Danger:     geom.RGB(0.9, 0.3, 0.3),
		Palette:    graphPalette,
	}

	LightTheme = Theme{
		Name:       "light",
		Background: geom.RGB(1, 1, 1),
		Text:       geom.RGB(0.1, 0.1, 0.1),
		Muted:      geom.RGB(0.7, 0.7, 0.7),
		Primary:    geom.RGB(0.2, 0.6, 1.0),
		Success:    geom.RGB(0.2, 0.8, 0.3),
		Warning:    geom.RGB(1.0, 0.7, 0.2),
		Danger:     geom.RGB(0.9, 0.3, 0.3),
		Palette:    graphPalette,
	}
)

// ThemeByName returns the built-in theme with the given name. Unknown
// names fall back to DarkTheme.
func ThemeByName(name string) (Theme, bool) {
	switch strings.ToLower(name) {
	case "dark", "":
		return DarkTheme, true
	case "light":
		return LightTheme, true
	}
	return DarkTheme, false
}
