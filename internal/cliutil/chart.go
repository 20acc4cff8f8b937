package cliutil

import (
	"fmt"
	"iter"
	"slices"

	"github.com/wandb/wandb/graphkit/internal/config"
	"github.com/wandb/wandb/graphkit/internal/graph"
	"github.com/wandb/wandb/graphkit/internal/samplesource"
	"github.com/wandb/wandb/graphkit/internal/zoom"
)

// SampleChart is a chart over loaded samples.
type SampleChart interface {
	graph.Chart
	SetSamples(samples iter.Seq[samplesource.Sample])
	ZoomLimits() zoom.Limits
}

// NewChart builds a chart of the given kind, either config.KindBar or
// config.KindLine.
func NewChart(
	kind string,
	samples []samplesource.Sample,
	opts ...graph.Option,
) (SampleChart, error) {
	mapper := graph.MapperFunc[samplesource.Sample](samplesource.Value)

	switch kind {
	case config.KindBar:
		return graph.NewBarGraph(slices.Values(samples), mapper, nil, opts...), nil
	case config.KindLine:
		return graph.NewLineGraph(slices.Values(samples), mapper, nil, opts...), nil
	default:
		return nil, fmt.Errorf("unknown chart kind %q, expected %q or %q",
			kind, config.KindBar, config.KindLine)
	}
}
