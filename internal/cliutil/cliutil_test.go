package cliutil_test

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/graphkit/internal/cliutil"
	"github.com/wandb/wandb/graphkit/internal/config"
	"github.com/wandb/wandb/graphkit/internal/graph"
	"github.com/wandb/wandb/graphkit/internal/samplesource"
)

func newOutputCmd(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{Use: "test"}
	cliutil.AddOutputFlags(cmd)
	cmd.SetOut(&out)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, &out
}

func TestHandleOutput(t *testing.T) {
	t.Parallel()

	data := map[string]string{"version": "1.2.3"}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"json by default", nil, "{\n  \"version\": \"1.2.3\"\n}\n"},
		{"yaml", []string{"--format", "yaml"}, "version: 1.2.3\n\n"},
		{"template", []string{"--template", "v{{.version}}"}, "v1.2.3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, out := newOutputCmd(t, tt.args...)
			require.NoError(t, cliutil.HandleOutput(cmd, data))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestHandleOutput_Errors(t *testing.T) {
	t.Parallel()

	cmd, _ := newOutputCmd(t, "--format", "xml")
	assert.ErrorContains(t, cliutil.HandleOutput(cmd, 1), "unknown output format")

	cmd, _ = newOutputCmd(t, "--template", "{{.version")
	assert.ErrorContains(t, cliutil.HandleOutput(cmd, 1), "failed to parse template")
}

func TestNewChart(t *testing.T) {
	t.Parallel()

	samples := []samplesource.Sample{{Line: 1, Value: 3}, {Line: 2, Value: 5}}

	bar, err := cliutil.NewChart(config.KindBar, samples)
	require.NoError(t, err)
	assert.IsType(t, &graph.BarGraph[samplesource.Sample]{}, bar)

	line, err := cliutil.NewChart(config.KindLine, samples)
	require.NoError(t, err)
	assert.IsType(t, &graph.LineGraph[samplesource.Sample]{}, line)

	_, err = cliutil.NewChart("pie", samples)
	assert.ErrorContains(t, err, "unknown chart kind")
}

func TestRuntimeInit(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte("chart:\n  kind: bar\n"), 0o644))

	rt := cliutil.NewRuntime(fs)
	cmd := &cobra.Command{Use: "graphkit"}
	rt.AddFlags(cmd.PersistentFlags())
	require.NoError(t, cmd.ParseFlags([]string{"--config", "/cfg.yaml", "--debug-log", "/debug.log"}))

	require.NoError(t, rt.Init(cmd))
	assert.Equal(t, "bar", rt.Config.Chart().Kind)

	rt.Logger.Info("hello")
	require.NoError(t, rt.Close())

	content, err := afero.ReadFile(fs, "/debug.log")
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"hello"`)
}

func TestRuntimeInit_BadConfig(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte("chart: [\n"), 0o644))

	rt := cliutil.NewRuntime(fs)
	rt.ConfigPath = "/cfg.yaml"
	cmd := &cobra.Command{Use: "graphkit", Annotations: map[string]string{
		cliutil.AnnotationInteractive: "true",
	}}

	assert.Error(t, rt.Init(cmd))
}
