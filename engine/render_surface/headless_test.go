package render_surface_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarmvista/vista/engine/mesh"
	"github.com/swarmvista/vista/engine/render_surface"
)

func TestStyleDerivers(t *testing.T) {
	base := render_surface.DefaultStyle()
	assert.Equal(t, render_surface.Black, base.Color)
	assert.Equal(t, float32(1), base.Opacity)
	assert.True(t, base.Visible)

	derived := base.
		WithColor(render_surface.Red).
		WithOpacity(0.5).
		WithLineWidth(3).
		WithVisible(false)

	assert.Equal(t, render_surface.Red, derived.Color)
	assert.Equal(t, float32(0.5), derived.Opacity)
	assert.Equal(t, float32(3), derived.LineWidth)
	assert.False(t, derived.Visible)

	// Derivers copy, the base is untouched.
	assert.Equal(t, render_surface.Black, base.Color)
	assert.True(t, base.Visible)
}

func TestHeadlessActorLifecycle(t *testing.T) {
	s := render_surface.NewHeadless()
	m := mesh.NewSegment(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})

	a, err := s.CreateActor(m, render_surface.DefaultStyle().WithColor(render_surface.Blue))
	require.NoError(t, err)
	assert.Equal(t, 1, s.ActorCount())
	assert.Equal(t, render_surface.Blue, a.Color())
	assert.True(t, a.Visible())

	a.SetColor(render_surface.Red)
	a.SetOpacity(0.25)
	a.SetVisible(false)
	assert.Equal(t, render_surface.Red, a.Color())
	assert.Equal(t, float32(0.25), a.Opacity())
	assert.False(t, a.Visible())

	s.RemoveActor(a)
	assert.Equal(t, 0, s.ActorCount())
	// Removing again is a no-op.
	s.RemoveActor(a)
	assert.Equal(t, 0, s.ActorCount())
}

func TestHeadlessCounters(t *testing.T) {
	s := render_surface.NewHeadless()
	assert.Equal(t, 0, s.RenderCount())

	s.Render()
	s.Render()
	assert.Equal(t, 2, s.RenderCount())

	s.RecomputeDisplayedBounds()
	assert.Equal(t, 1, s.BoundsRecomputeCount())
}

func TestHeadlessCameraPreset(t *testing.T) {
	s := render_surface.NewHeadless()
	assert.Equal(t, render_surface.CameraPreset(""), s.CameraPresetApplied())

	require.NoError(t, s.SetCameraPreset(render_surface.PresetIso))
	assert.Equal(t, render_surface.PresetIso, s.CameraPresetApplied())

	err := s.SetCameraPreset("orbit")
	var unknown *render_surface.UnknownPresetError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, render_surface.CameraPreset("orbit"), unknown.Preset)
	// A failed set leaves the previous preset applied.
	assert.Equal(t, render_surface.PresetIso, s.CameraPresetApplied())
}

func TestHeadlessBackground(t *testing.T) {
	s := render_surface.NewHeadless()
	assert.Equal(t, render_surface.White, s.Background())
	s.SetBackground(render_surface.Grey)
	assert.Equal(t, render_surface.Grey, s.Background())
}

func TestFullViewport(t *testing.T) {
	assert.Equal(t, render_surface.Viewport{X: 0, Y: 0, Width: 1, Height: 1}, render_surface.FullViewport)
}
