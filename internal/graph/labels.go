package graph

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wandb/wandb/graphkit/internal/zoom"
)

// LabelFormatter produces every piece of text a chart draws, so callers
// can pick units and precision in one place.
type LabelFormatter interface {
	FormatYAxis(value float64) string
	FormatTooltip(value float64) string
	FormatAverage(value float64) string
	// FormatTitle returns the chart title, or "" for none.
	FormatTitle(z zoom.Zoom) string
	FormatSubtitle(z zoom.Zoom, start, end, count int) string
}

// DefaultLabels formats plain magnitudes with compact precision.
type DefaultLabels struct {
	// Title prefixes the zoom description. Empty disables the title.
	Title string
	// Unit is appended to values: "%" and "B" get special handling.
	Unit string
}

func (l DefaultLabels) FormatYAxis(value float64) string {
	return FormatValue(value, l.Unit)
}

func (l DefaultLabels) FormatTooltip(value float64) string {
	return FormatValue(value, l.Unit)
}

func (l DefaultLabels) FormatAverage(value float64) string {
	return "Avg: " + FormatValue(value, l.Unit)
}

func (l DefaultLabels) FormatTitle(z zoom.Zoom) string {
	if l.Title == "" {
		return ""
	}
	return fmt.Sprintf("%s (%s)", l.Title, describeZoom(z))
}

func (l DefaultLabels) FormatSubtitle(z zoom.Zoom, start, end, count int) string {
	return describeWindow(z, start, end, count)
}

// DurationLabels formats values given in seconds as milliseconds.
type DurationLabels struct {
	Title string
}

func (l DurationLabels) FormatYAxis(value float64) string {
	return formatFloat(value*1000, 0) + "ms"
}

func (l DurationLabels) FormatTooltip(value float64) string {
	return strconv.FormatFloat(value*1000, 'f', 2, 64) + "ms"
}

func (l DurationLabels) FormatAverage(value float64) string {
	return "avg: " + strconv.FormatFloat(value*1000, 'f', 1, 64) + "ms"
}

func (l DurationLabels) FormatTitle(z zoom.Zoom) string {
	title := l.Title
	if title == "" {
		title = "Performance Timeline"
	}
	return fmt.Sprintf("%s (%s)", title, describeZoom(z))
}

func (l DurationLabels) FormatSubtitle(z zoom.Zoom, start, end, count int) string {
	return describeWindow(z, start, end, count)
}

func describeZoom(z zoom.Zoom) string {
	v, ok := z.Factor()
	switch {
	case !ok:
		return "Full View"
	case v == math.Trunc(v):
		return fmt.Sprintf("Zoom: %dx", int(v))
	default:
		return fmt.Sprintf("Zoom: %.2fx", v)
	}
}

func describeWindow(z zoom.Zoom, _, _, count int) string {
	if z.IsFull() {
		return fmt.Sprintf("(Showing all %d points)", count)
	}
	return fmt.Sprintf("(Showing last %d points)", count)
}

// FormatValue renders a value for an axis or tooltip.
//
// Large magnitudes get k/M suffixes, small ones an m suffix, and the
// precision shrinks as the magnitude grows.
func FormatValue(value float64, unit string) string {
	if value == 0 {
		return "0" + unit
	}

	switch unit {
	case "%":
		return formatPercent(value)
	case "B":
		return formatBytes(value)
	}

	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	var s string
	switch {
	case value >= 1000000:
		s = formatFloat(value/1000000, 1) + "M"
	case value >= 1000:
		s = formatFloat(value/1000, 1) + "k"
	case value < 0.01:
		s = formatFloat(value*1000, 1) + "m"
	case value < 1:
		s = formatFloat(value, 2)
	case value < 10:
		s = formatFloat(value, 1)
	default:
		s = formatFloat(value, 0)
	}
	return sign + s + unit
}

func formatPercent(value float64) string {
	switch {
	case math.Abs(value) >= 100:
		return formatFloat(value, 0) + "%"
	case math.Abs(value) >= 10:
		return formatFloat(value, 1) + "%"
	default:
		return formatFloat(value, 2) + "%"
	}
}

// formatBytes formats byte values with binary prefixes.
func formatBytes(bytes float64) string {
	units := []string{"B", "KiB", "MiB", "GiB", "TiB"}
	unitIndex := 0
	value := bytes

	for unitIndex < len(units)-1 && math.Abs(value) >= 1024 {
		value /= 1024
		unitIndex++
	}

	if unitIndex == 0 {
		return formatFloat(value, 0) + units[unitIndex]
	}
	return formatFloat(value, 1) + units[unitIndex]
}

// formatFloat formats a float with the given decimals and trims
// trailing zeros after the decimal point.
func formatFloat(value float64, decimals int) string {
	formatted := strconv.FormatFloat(value, 'f', decimals, 64)

	if decimals > 0 && strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
	}

	if formatted == "" || formatted == "-0" {
		formatted = "0"
	}

	return formatted
}
