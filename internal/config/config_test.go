package config_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/graphkit/internal/config"
	"github.com/wandb/wandb/graphkit/internal/graph"
	"github.com/wandb/wandb/graphkit/internal/observabilitytest"
)

const configPath = "/home/user/.config/graphkit/config.yaml"

func newManager(t *testing.T, fs afero.Fs) *config.Manager {
	t.Helper()
	m, err := config.NewManager(config.ManagerParams{
		Fs:     fs,
		Path:   configPath,
		Logger: observabilitytest.NewTestLogger(t),
	})
	require.NoError(t, err)
	return m
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	m := newManager(t, afero.NewMemMapFs())

	assert.Equal(t, config.ChartConfig{
		Kind:        "line",
		Bins:        50,
		Aggregator:  "average",
		BaseWindow:  50,
		ZoomMin:     0.1,
		ZoomMax:     10,
		ShowGrid:    true,
		ShowLabels:  true,
		ShowPoints:  true,
		LineWidth:   2,
		PointRadius: 4,
		ColorScheme: "performance",
	}, m.Chart())
	assert.Equal(t, config.RenderConfig{Width: 800, Height: 400}, m.Render())
	assert.Equal(t, 500*time.Millisecond, m.WatchInterval())
	assert.Empty(t, m.SentryDSN())

	theme, err := m.Theme()
	require.NoError(t, err)
	assert.Equal(t, graph.DarkTheme.Name, theme.Name)
}

func TestYAMLOverridesDefaults(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, configPath, []byte(`
chart:
  kind: bar
  bins: 20
  aggregator: max
theme: light
render:
  width: 1024
`), 0o644))

	m := newManager(t, fs)

	chart := m.Chart()
	assert.Equal(t, "bar", chart.Kind)
	assert.Equal(t, 20, chart.Bins)
	assert.Equal(t, "max", chart.Aggregator)
	assert.True(t, chart.ShowGrid)
	assert.Equal(t, config.RenderConfig{Width: 1024, Height: 400}, m.Render())

	theme, err := m.Theme()
	require.NoError(t, err)
	assert.Equal(t, graph.LightTheme.Name, theme.Name)
}

func TestEnvOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, configPath, []byte("chart:\n  bins: 20\n"), 0o644))
	t.Setenv("GRAPHKIT_CHART_BINS", "7")
	t.Setenv("GRAPHKIT_WATCH_INTERVAL", "2s")

	m := newManager(t, fs)

	assert.Equal(t, 7, m.Chart().Bins)
	assert.Equal(t, 2*time.Second, m.WatchInterval())
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("GRAPHKIT_CHART_KIND", "line")
	m := newManager(t, afero.NewMemMapFs())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("kind", "line", "")
	require.NoError(t, m.BindFlag(config.KeyChartKind, flags.Lookup("kind")))
	require.NoError(t, flags.Parse([]string{"--kind", "bar"}))

	assert.Equal(t, "bar", m.Chart().Kind)
}

func TestBindFlag_Missing(t *testing.T) {
	t.Parallel()

	m := newManager(t, afero.NewMemMapFs())
	assert.Error(t, m.BindFlag(config.KeyChartKind, nil))
}

func TestInvalidYAML(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, configPath, []byte("chart: [unclosed\n"), 0o644))

	_, err := config.NewManager(config.ManagerParams{Fs: fs, Path: configPath})
	assert.ErrorContains(t, err, "config: reading")
}

func TestSetValue_PersistsAndReloads(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	m := newManager(t, fs)

	require.NoError(t, m.SetValue(config.KeyChartBins, "12"))
	require.NoError(t, m.SetValue(config.KeyChartAggregator, "mean"))
	require.NoError(t, m.SetValue(config.KeyWatchInterval, "1s"))
	assert.Equal(t, 12, m.Chart().Bins)

	reloaded := newManager(t, fs)
	assert.Equal(t, 12, reloaded.Chart().Bins)
	assert.Equal(t, "average", reloaded.Chart().Aggregator)
	assert.Equal(t, time.Second, reloaded.WatchInterval())
}

func TestSetValue_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key, value string
	}{
		{config.KeyChartKind, "pie"},
		{config.KeyChartBins, "0"},
		{config.KeyChartBins, "many"},
		{config.KeyChartZoomMax, "-1"},
		{config.KeyChartShowGrid, "maybe"},
		{config.KeyChartAggregator, "median"},
		{config.KeyChartColorScheme, "rainbow"},
		{config.KeyTheme, "solarized"},
		{config.KeyWatchInterval, "soon"},
	}

	m := newManager(t, afero.NewMemMapFs())
	for _, tt := range tests {
		assert.Error(t, m.SetValue(tt.key, tt.value), "%s=%s", tt.key, tt.value)
	}

	assert.ErrorIs(t, m.SetValue("chart.color", "red"), config.ErrInvalidKey)
}

func TestGraphOptions(t *testing.T) {
	t.Parallel()

	m := newManager(t, afero.NewMemMapFs())
	opts, err := m.GraphOptions()
	require.NoError(t, err)
	assert.NotEmpty(t, opts)
}

func TestGraphOptions_BadFileValue(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, configPath, []byte("chart:\n  aggregator: median\n"), 0o644))

	_, err := newManager(t, fs).GraphOptions()
	assert.ErrorContains(t, err, config.KeyChartAggregator)
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/xdg/graphkit/config.yaml", path)
}
