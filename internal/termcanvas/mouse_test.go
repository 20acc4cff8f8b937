package termcanvas_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/wandb/wandb/graphkit/internal/geom"
	"github.com/wandb/wandb/graphkit/internal/graph"
	"github.com/wandb/wandb/graphkit/internal/termcanvas"
)

func TestCellToDot(t *testing.T) {
	assert.Equal(t, geom.Pt(1, 2), termcanvas.CellToDot(0, 0))
	assert.Equal(t, geom.Pt(7, 10), termcanvas.CellToDot(3, 2))
}

func TestOriginOf_UnknownZoneUsesFallback(t *testing.T) {
	fallback := termcanvas.Origin{X: 0, Y: 1}
	assert.Equal(t, fallback, termcanvas.OriginOf(nil, fallback))
}

func TestTranslateMouse(t *testing.T) {
	origin := termcanvas.Origin{X: 2, Y: 1}
	moved := graph.CursorMoved{Position: geom.Pt(7, 10)}

	tests := []struct {
		name   string
		action tea.MouseAction
		button tea.MouseButton
		want   []graph.Event
	}{
		{"motion", tea.MouseActionMotion, tea.MouseButtonNone, []graph.Event{moved}},
		{"wheel up", tea.MouseActionPress, tea.MouseButtonWheelUp,
			[]graph.Event{moved, graph.WheelScrolled{DeltaY: 1}}},
		{"wheel down", tea.MouseActionPress, tea.MouseButtonWheelDown,
			[]graph.Event{moved, graph.WheelScrolled{DeltaY: -1}}},
		{"left press", tea.MouseActionPress, tea.MouseButtonLeft,
			[]graph.Event{moved, graph.ButtonPressed{Button: graph.ButtonLeft}}},
		{"right press", tea.MouseActionPress, tea.MouseButtonRight,
			[]graph.Event{moved, graph.ButtonPressed{Button: graph.ButtonRight}}},
		{"release", tea.MouseActionRelease, tea.MouseButtonLeft, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tea.MouseMsg{X: 5, Y: 3, Action: tt.action, Button: tt.button}
			assert.Equal(t, tt.want, termcanvas.TranslateMouse(msg, origin))
		})
	}
}
