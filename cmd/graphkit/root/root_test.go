package root_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/graphkit/cmd/graphkit/root"
)

func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := root.NewRootCmd(fs)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", "/etc/graphkit.yaml"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/latency.txt", []byte("1 2 3 4 5 6 7 8 9 10"), 0o644))

	out, err := execute(t, fs,
		"render", "/data/latency.txt",
		"--kind", "bar",
		"--width", "200",
		"--height", "120",
		"--zoom", "full",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote /data/latency.png")

	f, err := fs.Open("/data/latency.png")
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 120, cfg.Height)
}

func TestRender_CSVColumnAndOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/m.csv", []byte("step,loss\n1,0.9\n2,0.5\n"), 0o644))

	_, err := execute(t, fs, "render", "/m.csv", "--column", "loss", "-o", "/out/loss.png")
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "/out/loss.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRender_ZoomClampedToConfiguredLimits(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/graphkit.yaml", []byte("chart:\n  zoom_max: 4\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/data.txt", []byte("1 2 3 4 5 6 7 8 9 10"), 0o644))

	out, err := execute(t, fs, "render", "/data.txt", "--zoom", "50x")
	require.NoError(t, err)
	assert.Contains(t, out, "at zoom 4x")
}

func TestRender_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/empty.txt", []byte("# nothing\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/ok.txt", []byte("1 2"), 0o644))

	_, err := execute(t, fs, "render", "/missing.txt")
	assert.Error(t, err)

	_, err = execute(t, fs, "render", "/empty.txt")
	assert.ErrorContains(t, err, "no samples")

	_, err = execute(t, fs, "render", "/ok.txt", "--zoom", "sideways")
	assert.ErrorContains(t, err, "invalid zoom")

	_, err = execute(t, fs, "render", "/ok.txt", "--kind", "pie")
	assert.ErrorContains(t, err, "unknown chart kind")

	_, err = execute(t, fs, "render", "/ok.txt", "--theme", "neon")
	assert.ErrorContains(t, err, "unknown theme")
}

func TestConfigSetAndShow(t *testing.T) {
	fs := afero.NewMemMapFs()

	out, err := execute(t, fs, "config", "set", "chart.kind", "bar")
	require.NoError(t, err)
	assert.Equal(t, "Successfully set chart.kind = bar\n", out)

	out, err = execute(t, fs, "config", "show", "--template", "{{.chart.kind}}")
	require.NoError(t, err)
	assert.Equal(t, "bar\n", out)

	_, err = execute(t, fs, "config", "set", "chart.colour", "red")
	assert.ErrorContains(t, err, "invalid key")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, afero.NewMemMapFs(), "version", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "version:")
	assert.Contains(t, out, "gitCommit:")
}
