// Package config loads graphkit settings from a YAML file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wandb/wandb/graphkit/internal/graph"
	"github.com/wandb/wandb/graphkit/internal/observability"
	"github.com/wandb/wandb/graphkit/internal/zoom"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. GRAPHKIT_CHART_BINS.
	EnvPrefix = "GRAPHKIT"

	configDirName  = "graphkit"
	configFileName = "config.yaml"
)

// Keys accepted by SetValue.
const (
	KeyChartKind        = "chart.kind"
	KeyChartBins        = "chart.bins"
	KeyChartAggregator  = "chart.aggregator"
	KeyChartBaseWindow  = "chart.base_window"
	KeyChartZoomMin     = "chart.zoom_min"
	KeyChartZoomMax     = "chart.zoom_max"
	KeyChartShowGrid    = "chart.show_grid"
	KeyChartShowLabels  = "chart.show_labels"
	KeyChartShowPoints  = "chart.show_points"
	KeyChartLineWidth   = "chart.line_width"
	KeyChartPointRadius = "chart.point_radius"
	KeyChartColorScheme = "chart.color_scheme"
	KeyTheme            = "theme"
	KeyRenderWidth      = "render.width"
	KeyRenderHeight     = "render.height"
	KeyWatchInterval    = "watch.interval"
	KeySentryDSN        = "sentry.dsn"
)

const (
	KindBar  = "bar"
	KindLine = "line"
)

var defaults = map[string]any{
	KeyChartKind:        KindLine,
	KeyChartBins:        graph.DefaultBins,
	KeyChartAggregator:  graph.Average.String(),
	KeyChartBaseWindow:  graph.DefaultBaseWindow,
	KeyChartZoomMin:     zoom.DefaultMin,
	KeyChartZoomMax:     zoom.DefaultMax,
	KeyChartShowGrid:    true,
	KeyChartShowLabels:  true,
	KeyChartShowPoints:  true,
	KeyChartLineWidth:   2.0,
	KeyChartPointRadius: 4.0,
	KeyChartColorScheme: "performance",
	KeyTheme:            "dark",
	KeyRenderWidth:      800,
	KeyRenderHeight:     400,
	KeyWatchInterval:    "500ms",
	KeySentryDSN:        "",
}

// ChartConfig holds the chart settings.
type ChartConfig struct {
	Kind        string
	Bins        int
	Aggregator  string
	BaseWindow  float64
	ZoomMin     float64
	ZoomMax     float64
	ShowGrid    bool
	ShowLabels  bool
	ShowPoints  bool
	LineWidth   float64
	PointRadius float64
	ColorScheme string
}

// RenderConfig holds the image output size.
type RenderConfig struct {
	Width  int
	Height int
}

// DefaultPath returns $XDG_CONFIG_HOME/graphkit/config.yaml, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("config: finding home directory: %v", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

type ManagerParams struct {
	// Fs is where the config file lives. Nil uses the OS file system.
	Fs afero.Fs

	// Path of the config file. Empty uses DefaultPath.
	Path string

	Logger *observability.CoreLogger
}

// Manager gives thread-safe access to the configuration.
//
// Values come from, highest priority first: bound flags, GRAPHKIT_*
// environment variables, the config file, and defaults.
type Manager struct {
	mu     sync.RWMutex
	v      *viper.Viper
	fs     afero.Fs
	path   string
	logger *observability.CoreLogger
}

// NewManager reads the config file if it exists.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.Fs == nil {
		params.Fs = afero.NewOsFs()
	}
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}
	if params.Path == "" {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		params.Path = path
	}

	v := viper.New()
	v.SetFs(params.Fs)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(params.Path)
	v.SetConfigType("yaml")

	m := &Manager{
		v:      v,
		fs:     params.Fs,
		path:   params.Path,
		logger: params.Logger,
	}

	exists, err := afero.Exists(params.Fs, params.Path)
	if err != nil {
		return nil, fmt.Errorf("config: checking %s: %v", params.Path, err)
	}
	if !exists {
		m.logger.Debug(fmt.Sprintf("config: no config file at %s, using defaults", params.Path))
		return m, nil
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %v", params.Path, err)
	}
	m.logger.Debug(fmt.Sprintf("config: loaded %s", params.Path))

	return m, nil
}

// Path returns the config file location.
func (m *Manager) Path() string { return m.path }

// BindFlag makes a command-line flag override key when it is set.
func (m *Manager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("config: no flag to bind to %s", key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v.BindPFlag(key, flag)
}

// Chart returns the chart settings.
func (m *Manager) Chart() ChartConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return ChartConfig{
		Kind:        m.v.GetString(KeyChartKind),
		Bins:        m.v.GetInt(KeyChartBins),
		Aggregator:  m.v.GetString(KeyChartAggregator),
		BaseWindow:  m.v.GetFloat64(KeyChartBaseWindow),
		ZoomMin:     m.v.GetFloat64(KeyChartZoomMin),
		ZoomMax:     m.v.GetFloat64(KeyChartZoomMax),
		ShowGrid:    m.v.GetBool(KeyChartShowGrid),
		ShowLabels:  m.v.GetBool(KeyChartShowLabels),
		ShowPoints:  m.v.GetBool(KeyChartShowPoints),
		LineWidth:   m.v.GetFloat64(KeyChartLineWidth),
		PointRadius: m.v.GetFloat64(KeyChartPointRadius),
		ColorScheme: m.v.GetString(KeyChartColorScheme),
	}
}

// Render returns the image output size.
func (m *Manager) Render() RenderConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return RenderConfig{
		Width:  m.v.GetInt(KeyRenderWidth),
		Height: m.v.GetInt(KeyRenderHeight),
	}
}

// Theme returns the configured theme.
func (m *Manager) Theme() (graph.Theme, error) {
	m.mu.RLock()
	name := m.v.GetString(KeyTheme)
	m.mu.RUnlock()

	theme, ok := graph.ThemeByName(name)
	if !ok {
		return graph.Theme{}, fmt.Errorf("config: unknown theme %q", name)
	}
	return theme, nil
}

// WatchInterval returns how often watched files are polled.
func (m *Manager) WatchInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.GetDuration(KeyWatchInterval)
}

// SentryDSN returns the error reporting DSN. Empty disables reporting.
func (m *Manager) SentryDSN() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.GetString(KeySentryDSN)
}

// All returns every setting as a nested map.
func (m *Manager) All() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.AllSettings()
}

// GraphOptions converts the chart settings into chart options.
func (m *Manager) GraphOptions() ([]graph.Option, error) {
	c := m.Chart()

	agg, err := graph.ParseAggregator(c.Aggregator)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %v", KeyChartAggregator, err)
	}
	scheme, err := graph.SchemeByName(c.ColorScheme)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %v", KeyChartColorScheme, err)
	}

	return []graph.Option{
		graph.WithBins(c.Bins),
		graph.WithAggregator(agg),
		graph.WithBaseWindow(c.BaseWindow),
		graph.WithZoomLimits(zoom.Limits{Min: c.ZoomMin, Max: c.ZoomMax}),
		graph.WithGrid(c.ShowGrid),
		graph.WithLabels(c.ShowLabels),
		graph.WithPoints(c.ShowPoints),
		graph.WithLineWidth(c.LineWidth),
		graph.WithPointRadius(c.PointRadius),
		graph.WithColorScheme(scheme),
	}, nil
}

// ErrInvalidKey is returned by SetValue for keys it does not know.
var ErrInvalidKey = errors.New("config: invalid key")

// ValidKeys lists the keys SetValue accepts, in display order.
func ValidKeys() []string {
	return []string{
		KeyChartKind,
		KeyChartBins,
		KeyChartAggregator,
		KeyChartBaseWindow,
		KeyChartZoomMin,
		KeyChartZoomMax,
		KeyChartShowGrid,
		KeyChartShowLabels,
		KeyChartShowPoints,
		KeyChartLineWidth,
		KeyChartPointRadius,
		KeyChartColorScheme,
		KeyTheme,
		KeyRenderWidth,
		KeyRenderHeight,
		KeyWatchInterval,
		KeySentryDSN,
	}
}

// SetValue validates value for key, stores it and writes the config
// file.
func (m *Manager) SetValue(key, value string) error {
	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.v.Set(key, parsed)

	if err := m.fs.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("config: creating config directory: %v", err)
	}
	if err := m.v.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("config: writing %s: %v", m.path, err)
	}

	m.logger.Info(fmt.Sprintf("config: set %s = %v", key, parsed))
	return nil
}
