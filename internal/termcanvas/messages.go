// Messages for the Bubble Tea model
package termcanvas

import "github.com/wandb/wandb/graphkit/internal/graph"

// ReloadMsg carries new samples for the chart.
//
// Apply runs on the update goroutine and must hand the samples to the
// chart, typically through SetSamples.
type ReloadMsg struct {
	Apply func()
	Count int
}

// NotificationMsg is emitted as a command result for every chart
// notification, so an embedding model can react to it.
type NotificationMsg struct {
	graph.Notification
}

// ErrorMsg wraps an error.
type ErrorMsg struct {
	Err error
}

func (e ErrorMsg) Error() string {
	return e.Err.Error()
}
