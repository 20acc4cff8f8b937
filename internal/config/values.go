package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/wandb/wandb/graphkit/internal/graph"
)

// parseValue converts a command-line value to the type stored for key.
func parseValue(key, value string) (any, error) {
	switch key {
	case KeyChartKind:
		if value != KindBar && value != KindLine {
			return nil, fmt.Errorf("config: %s must be %q or %q", key, KindBar, KindLine)
		}
		return value, nil

	case KeyChartBins, KeyRenderWidth, KeyRenderHeight:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("config: %s must be a positive integer, got %q", key, value)
		}
		return n, nil

	case KeyChartBaseWindow, KeyChartZoomMin, KeyChartZoomMax,
		KeyChartLineWidth, KeyChartPointRadius:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("config: %s must be a positive number, got %q", key, value)
		}
		return f, nil

	case KeyChartShowGrid, KeyChartShowLabels, KeyChartShowPoints:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("config: %s must be true or false, got %q", key, value)
		}
		return b, nil

	case KeyChartAggregator:
		agg, err := graph.ParseAggregator(value)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %v", key, err)
		}
		return agg.String(), nil

	case KeyChartColorScheme:
		if _, err := graph.SchemeByName(value); err != nil {
			return nil, fmt.Errorf("config: %s: %v", key, err)
		}
		return value, nil

	case KeyTheme:
		if _, ok := graph.ThemeByName(value); !ok {
			return nil, fmt.Errorf("config: unknown theme %q", value)
		}
		return value, nil

	case KeyWatchInterval:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: %s must be a positive duration, got %q", key, value)
		}
		return d.String(), nil

	case KeySentryDSN:
		return value, nil
	}

	return nil, fmt.Errorf("%w %q, valid keys are: %v", ErrInvalidKey, key, ValidKeys())
}
