package graph

import (
	"fmt"

	"github.com/wandb/wandb/graphkit/internal/geom"
	"github.com/wandb/wandb/graphkit/internal/zoom"
)

// State is the per-widget interaction state of a chart.
//
// The zero value shows the chart at 1x with nothing hovered.
type State struct {
	Zoom zoom.Zoom

	// hovered is the hovered index plus one, so zero means none.
	hovered int
}

// NewState returns a state at the given zoom with nothing hovered.
func NewState(z zoom.Zoom) State { return State{Zoom: z} }

// Hovered returns the hovered index.
func (s State) Hovered() (int, bool) {
	if s.hovered == 0 {
		return 0, false
	}
	return s.hovered - 1, true
}

// WithHovered returns s with index i hovered.
func (s State) WithHovered(i int) State {
	s.hovered = i + 1
	return s
}

// WithoutHover returns s with nothing hovered.
func (s State) WithoutHover() State {
	s.hovered = 0
	return s
}

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Event is an input event delivered by the host.
//
// The set is closed: CursorMoved, CursorLeft, ButtonPressed and
// WheelScrolled.
type Event interface {
	event()
}

// CursorMoved reports a new cursor position in host coordinates.
type CursorMoved struct {
	Position geom.Point
}

// CursorLeft reports that the cursor left the host surface.
type CursorLeft struct{}

// ButtonPressed reports a pointer button press at the current cursor.
type ButtonPressed struct {
	Button Button
}

// WheelScrolled reports a wheel movement. Positive DeltaY zooms in.
type WheelScrolled struct {
	DeltaY float64
}

func (CursorMoved) event()   {}
func (CursorLeft) event()    {}
func (ButtonPressed) event() {}
func (WheelScrolled) event() {}

// Cursor is the host's last known cursor position.
type Cursor struct {
	Position geom.Point
	// Available is false when the cursor is not over the host surface.
	Available bool
}

// CursorAt returns an available cursor at p.
func CursorAt(p geom.Point) Cursor { return Cursor{Position: p, Available: true} }

// In returns the cursor position relative to bounds, if the cursor is
// inside them.
func (c Cursor) In(bounds geom.Rect) (geom.Point, bool) {
	if !c.Available || !bounds.Contains(c.Position) {
		return geom.Point{}, false
	}
	return c.Position.Sub(bounds.Origin()), true
}

// NotificationKind identifies what a notification reports.
type NotificationKind int

const (
	ItemHovered NotificationKind = iota
	ItemClicked
	ZoomChanged
)

func (k NotificationKind) String() string {
	switch k {
	case ItemHovered:
		return "hovered"
	case ItemClicked:
		return "clicked"
	case ZoomChanged:
		return "zoom"
	default:
		return fmt.Sprintf("NotificationKind(%d)", int(k))
	}
}

// Notification tells the application about a user interaction.
type Notification struct {
	Kind NotificationKind
	// Index is the bar or point for ItemHovered and ItemClicked.
	Index int
	// Zoom is the new zoom for ZoomChanged.
	Zoom zoom.Zoom
}

// Outcome is the result of handling one event.
type Outcome struct {
	// Notification is nil when there is nothing to report.
	Notification *Notification
	// Redraw is set when the picture depends on something that changed.
	Redraw bool
}
