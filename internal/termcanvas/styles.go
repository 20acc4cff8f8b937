package termcanvas

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/wandb/graphkit/internal/geom"
	"github.com/wandb/wandb/graphkit/internal/graph"
)

const (
	// HeaderHeight is the number of rows above the chart area.
	HeaderHeight = 1
	// StatusBarHeight is the number of rows below the chart area.
	StatusBarHeight = 1
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			PaddingLeft(1)

	headerInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
			Background(lipgloss.AdaptiveColor{Light: "#45B7D1", Dark: "#1864AB"}).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#C92A2A")).
			Padding(0, 1)
)

// GraphOptions returns chart options scaled for braille dot units.
//
// They go before any caller options so callers can override them.
func GraphOptions() []graph.Option {
	return []graph.Option{
		graph.WithTextSize(10.0 / 3),
		graph.WithPadding(geom.Insets{Top: 8, Right: 4, Bottom: 8, Left: 14}),
		graph.WithBottomMargin(8),
		graph.WithHoverRadius(6),
		graph.WithPointRadius(1),
		graph.WithLineWidth(1),
	}
}
