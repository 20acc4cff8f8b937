package termcanvas

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/wandb/wandb/graphkit/internal/geom"
	"github.com/wandb/wandb/graphkit/internal/graph"
)

// CellToDot returns the frame position at the middle of cell (x, y).
func CellToDot(x, y int) geom.Point {
	return geom.Point{
		X: float64(x*dotsPerCellX + dotsPerCellX/2),
		Y: float64(y*dotsPerCellY + dotsPerCellY/2),
	}
}

// Origin is the screen cell of the chart area's top-left corner.
type Origin struct {
	X, Y int
}

// OriginOf returns the top-left corner of a marked zone, or fallback if
// the zone has not been scanned yet.
func OriginOf(zi *zone.ZoneInfo, fallback Origin) Origin {
	if zi.IsZero() {
		return fallback
	}
	return Origin{X: zi.StartX, Y: zi.StartY}
}

// TranslateMouse converts a terminal mouse message into chart events in
// frame coordinates relative to origin.
//
// Presses and wheel turns are preceded by a CursorMoved so the chart
// sees where they happened. Releases produce nothing.
func TranslateMouse(msg tea.MouseMsg, origin Origin) []graph.Event {
	moved := graph.CursorMoved{Position: CellToDot(msg.X-origin.X, msg.Y-origin.Y)}

	switch msg.Action {
	case tea.MouseActionMotion:
		return []graph.Event{moved}

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return []graph.Event{moved, graph.WheelScrolled{DeltaY: 1}}
		case tea.MouseButtonWheelDown:
			return []graph.Event{moved, graph.WheelScrolled{DeltaY: -1}}
		case tea.MouseButtonLeft:
			return []graph.Event{moved, graph.ButtonPressed{Button: graph.ButtonLeft}}
		case tea.MouseButtonMiddle:
			return []graph.Event{moved, graph.ButtonPressed{Button: graph.ButtonMiddle}}
		case tea.MouseButtonRight:
			return []graph.Event{moved, graph.ButtonPressed{Button: graph.ButtonRight}}
		}
	}

	return nil
}
