package graph

import (
	"math"

	"github.com/wandb/wandb/graphkit/internal/geom"
	"github.com/wandb/wandb/graphkit/internal/zoom"
)

const (
	// DefaultBaseWindow is the number of samples shown at 1x.
	DefaultBaseWindow = 50.0
	// DefaultBins is the default target bar count.
	DefaultBins = 50

	defaultLinePadding  = 40.0
	defaultBottomMargin = 40.0
	defaultLineWidth    = 2.0
	defaultPointRadius  = 4.0
	defaultBarFill      = 0.9
	defaultTextSize     = 12.0
)

// Option configures a chart. Options that do not apply to a chart kind
// are ignored by it.
type Option func(*config)

type config struct {
	showGrid   bool
	showLabels bool
	showPoints bool
	shadow     bool

	zoomLimits   zoom.Limits
	baseWindow   float64
	externalZoom *zoom.Zoom

	bins       int
	aggregator Aggregator
	barFill    float64

	lineWidth   float64
	lineColor   *geom.Color
	pointRadius float64

	colors       ColorScheme
	labels       LabelFormatter
	padding      geom.Insets
	bottomMargin float64
	hoverRadius  float64
	textSize     float64
}

func defaultConfig() config {
	return config{
		showGrid:     true,
		showLabels:   true,
		showPoints:   true,
		shadow:       true,
		zoomLimits:   zoom.DefaultLimits(),
		baseWindow:   DefaultBaseWindow,
		bins:         DefaultBins,
		aggregator:   Average,
		barFill:      defaultBarFill,
		lineWidth:    defaultLineWidth,
		pointRadius:  defaultPointRadius,
		colors:       Performance(),
		labels:       DefaultLabels{},
		padding:      geom.Uniform(defaultLinePadding),
		bottomMargin: defaultBottomMargin,
		hoverRadius:  DefaultHoverRadius,
		textSize:     defaultTextSize,
	}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	c.zoomLimits = c.zoomLimits.Normalized()
	if c.externalZoom != nil {
		z := c.externalZoom.Clamp(c.zoomLimits)
		c.externalZoom = &z
	}
	c.bins = max(c.bins, 1)
	if !(c.baseWindow >= 1) {
		c.baseWindow = 1
	}
	if c.colors == nil {
		c.colors = Performance()
	}
	if c.labels == nil {
		c.labels = DefaultLabels{}
	}
	c.barFill = math.Max(0.05, math.Min(c.barFill, 1))
	return c
}

// WithGrid toggles grid lines.
func WithGrid(show bool) Option { return func(c *config) { c.showGrid = show } }

// WithLabels toggles axis labels, the average line and titles.
func WithLabels(show bool) Option { return func(c *config) { c.showLabels = show } }

// WithPoints toggles point markers on line charts.
func WithPoints(show bool) Option { return func(c *config) { c.showPoints = show } }

// WithShadow toggles the drop shadow under line strokes.
func WithShadow(show bool) Option { return func(c *config) { c.shadow = show } }

// WithZoomLimits bounds the zoom factor.
func WithZoomLimits(l zoom.Limits) Option { return func(c *config) { c.zoomLimits = l } }

// WithBaseWindow sets the number of samples shown at 1x.
func WithBaseWindow(n float64) Option { return func(c *config) { c.baseWindow = n } }

// WithExternalZoom makes the chart display z and ignore wheel zooming.
// z is clamped to the zoom limits.
func WithExternalZoom(z zoom.Zoom) Option {
	return func(c *config) { c.externalZoom = &z }
}

// WithInternalZoom drops a previously set external zoom.
func WithInternalZoom() Option { return func(c *config) { c.externalZoom = nil } }

// WithBins sets the target bar count. Values below 1 are treated as 1.
func WithBins(n int) Option { return func(c *config) { c.bins = n } }

// WithAggregator sets how bins reduce their samples.
func WithAggregator(a Aggregator) Option { return func(c *config) { c.aggregator = a } }

// WithBarWidth sets the fraction of each bar slot the bar fills.
func WithBarWidth(fraction float64) Option { return func(c *config) { c.barFill = fraction } }

// WithLineWidth sets the line stroke width.
func WithLineWidth(w float64) Option { return func(c *config) { c.lineWidth = w } }

// WithLineColor overrides the theme's primary color for the line.
func WithLineColor(col geom.Color) Option {
	return func(c *config) { c.lineColor = &col }
}

// WithPointRadius sets the radius of line point markers.
func WithPointRadius(r float64) Option { return func(c *config) { c.pointRadius = r } }

// WithColorScheme sets how bars and points are colored.
func WithColorScheme(s ColorScheme) Option { return func(c *config) { c.colors = s } }

// WithLabelFormatter sets the text formatter.
func WithLabelFormatter(f LabelFormatter) Option { return func(c *config) { c.labels = f } }

// WithPadding sets the line chart padding around the plot area.
func WithPadding(in geom.Insets) Option { return func(c *config) { c.padding = in } }

// WithBottomMargin sets the space reserved below bars for labels.
func WithBottomMargin(m float64) Option { return func(c *config) { c.bottomMargin = m } }

// WithHoverRadius sets how close the cursor must be to hover a point.
func WithHoverRadius(r float64) Option { return func(c *config) { c.hoverRadius = r } }

// WithTextSize sets the nominal label font size in frame units.
func WithTextSize(s float64) Option { return func(c *config) { c.textSize = s } }

func (c *config) external() (zoom.Zoom, bool) {
	if c.externalZoom == nil {
		return zoom.Zoom{}, false
	}
	return *c.externalZoom, true
}

// effectiveZoom is the zoom that is drawn, always within the limits.
func (c *config) effectiveZoom(s State) zoom.Zoom {
	if c.externalZoom != nil {
		return *c.externalZoom
	}
	return s.Zoom.Clamp(c.zoomLimits)
}

// textWidth estimates the advance of s for a monospace face.
func (c *config) textWidth(s string) float64 {
	return float64(len([]rune(s))) * c.textSize * 0.6
}
