// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aclements/go-bayesplot/plot"
	"github.com/aclements/go-bayesplot/render"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, plot.DefaultMaxSubplots, c.Plot.MaxSubplots)
	assert.Equal(t, plot.DefaultColors, c.Plot.Colors)
	assert.Equal(t, "svg", c.Render.Backend)

	pc := c.PlotConfig(nil)
	if diff := cmp.Diff(plot.DefaultConfig(), pc); diff != "" {
		t.Errorf("PlotConfig mismatch (-want +got):\n%s", diff)
	}
	b, err := c.Backend(nil)
	require.NoError(t, err)
	assert.Equal(t, "svg", b.Name())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "bayesplot.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
plot:
  max_subplots: 8
  colors: ["#000000", "#ffffff"]
render:
  backend: gg
logging:
  level: debug
`), 0644))
	tomlPath := filepath.Join(dir, "bayesplot.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
[plot]
max_subplots = 8
colors = ["#000000", "#ffffff"]

[render]
backend = "gg"

[logging]
level = "debug"
`), 0644))

	for _, path := range []string{yamlPath, tomlPath} {
		c, err := Load(path)
		require.NoError(t, err, path)
		assert.Equal(t, 8, c.Plot.MaxSubplots)
		assert.Equal(t, []string{"#000000", "#ffffff"}, c.Plot.Colors)
		assert.Equal(t, "gg", c.Render.Backend)
		assert.Equal(t, "debug", c.Logging.Level)
		// Unset fields keep their defaults.
		assert.Equal(t, Default().Plot.LineWidth, c.Plot.LineWidth)
		assert.Equal(t, render.DefaultWidth, c.Render.Width)
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Default()
	want.Plot.KDEGridSize = 256
	want.Render.Height = 300
	for _, name := range []string{"a.yml", "sub/b.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, want.Save(path))
		got, err := Load(path)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: round trip mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
		return path
	}

	_, err := Load(write("c.json", "{}"))
	assert.ErrorIs(t, err, ErrFormat)
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = Load(write("bad.yaml", "plot: [1, 2"))
	assert.Error(t, err)
	_, err = Load(write("backend.yaml", "render:\n  backend: matplotlib\n"))
	assert.ErrorIs(t, err, render.ErrUnsupportedBackend)
	_, err = Load(write("level.toml", "[logging]\nlevel = \"loud\"\n"))
	assert.Error(t, err)
	_, err = Load(write("neg.toml", "[plot]\nmax_subplots = -1\n"))
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)
}

func TestLogger(t *testing.T) {
	c := Default()
	l, err := c.Logger(false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))

	l, err = c.Logger(true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	pc := c.PlotConfig(l)
	assert.Same(t, l, pc.Logger)
}
