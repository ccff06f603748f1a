package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarmvista/vista/engine/config"
	"github.com/swarmvista/vista/engine/render_surface"
)

func TestDefaultRender(t *testing.T) {
	cfg := config.DefaultRender()
	assert.Equal(t, float32(5.0), cfg.TrajectoryWidth)
	assert.Equal(t, 0, cfg.TailLength)
	assert.Equal(t, render_surface.Red, cfg.HighlightColor)
	assert.Equal(t, render_surface.Blue, cfg.RobotColor)
	assert.False(t, cfg.Debug)
}

func TestLoadRenderOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tail_length: 25\nicon_scale: 0.5\n"), 0o644))

	cfg, err := config.LoadRender(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.TailLength)
	assert.Equal(t, float32(0.5), cfg.IconScale)
	// Untouched keys keep their defaults.
	assert.Equal(t, float32(0.6), cfg.TrajectoryOpacity)
	assert.Equal(t, render_surface.Blue, cfg.RobotColor)
}

func TestLoadRenderMissingFile(t *testing.T) {
	_, err := config.LoadRender(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRenderBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tail_length: [oops\n"), 0o644))

	_, err := config.LoadRender(path)
	assert.Error(t, err)
}
