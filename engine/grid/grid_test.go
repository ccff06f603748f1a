package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarmvista/vista/engine/canvas"
	"github.com/swarmvista/vista/engine/config"
	"github.com/swarmvista/vista/engine/focus"
	"github.com/swarmvista/vista/engine/grid"
	"github.com/swarmvista/vista/engine/render_surface"
	"github.com/swarmvista/vista/engine/simdata"
)

func planarDataset(t *testing.T, frames, robots int) *simdata.Dataset {
	t.Helper()
	p := &simdata.Series{
		Shape: []int{frames, robots, 2},
		Data:  make([]float32, frames*robots*2),
	}
	for f := 0; f < frames; f++ {
		for r := 0; r < robots; r++ {
			p.Data[(f*robots+r)*2] = float32(f)
		}
	}
	d := simdata.NewDataset()
	require.NoError(t, d.Add("p", p))
	return d
}

func newTestGrid(t *testing.T, cells int) (grid.Grid, []render_surface.HeadlessSurface) {
	t.Helper()
	fctx := focus.NewContext()
	surfaces := make([]render_surface.HeadlessSurface, cells)
	canvases := make([]canvas.Canvas, cells)
	for i := range canvases {
		surfaces[i] = render_surface.NewHeadless()
		c, err := canvas.New(canvas.KindCanvas2D, surfaces[i], config.DefaultRender(), fctx, canvas.DefaultArgs())
		require.NoError(t, err)
		canvases[i] = c
	}
	g, err := grid.NewGrid(1, cells, canvases, fctx)
	require.NoError(t, err)
	return g, surfaces
}

func TestNewGridValidation(t *testing.T) {
	fctx := focus.NewContext()
	_, err := grid.NewGrid(0, 1, nil, fctx)
	assert.Error(t, err)

	c, err := canvas.New(canvas.KindCanvas2D, render_surface.NewHeadless(), config.DefaultRender(), fctx, canvas.DefaultArgs())
	require.NoError(t, err)
	_, err = grid.NewGrid(2, 2, []canvas.Canvas{c}, fctx)
	assert.Error(t, err)
}

func TestCanvasAt(t *testing.T) {
	g, _ := newTestGrid(t, 2)

	c, err := g.CanvasAt(0, 1)
	require.NoError(t, err)
	assert.Equal(t, g.Canvases()[1], c)

	_, err = g.CanvasAt(1, 0)
	assert.Error(t, err)
	_, err = g.CanvasAt(0, 2)
	assert.Error(t, err)
}

func TestResetRewindsPaused(t *testing.T) {
	g, _ := newTestGrid(t, 1)
	assert.Equal(t, 0, g.Frames())

	require.NoError(t, g.Reset(planarDataset(t, 5, 2)))
	assert.Equal(t, 5, g.Frames())
	assert.Equal(t, 0, g.Index())
	assert.False(t, g.Playing())

	g.Play()
	g.SetIndex(3)
	require.NoError(t, g.Reset(planarDataset(t, 5, 2)))
	assert.Equal(t, 0, g.Index())
	assert.False(t, g.Playing())
}

func TestTickBeforeReset(t *testing.T) {
	g, _ := newTestGrid(t, 1)
	assert.ErrorIs(t, g.Tick(), grid.ErrNoData)
}

func TestSeekClamped(t *testing.T) {
	g, _ := newTestGrid(t, 1)
	require.NoError(t, g.Reset(planarDataset(t, 5, 2)))

	g.SetIndex(99)
	assert.Equal(t, 4, g.Index())
	g.SetIndex(-7)
	assert.Equal(t, 0, g.Index())

	g.Step(2)
	assert.Equal(t, 2, g.Index())
	g.Step(-5)
	assert.Equal(t, 0, g.Index())
	g.Step(100)
	assert.Equal(t, 4, g.Index())
}

func TestTickAppliesAndRenders(t *testing.T) {
	g, surfaces := newTestGrid(t, 2)
	require.NoError(t, g.Reset(planarDataset(t, 5, 2)))

	g.SetIndex(2)
	require.NoError(t, g.Tick())
	for _, s := range surfaces {
		assert.Equal(t, 1, s.RenderCount())
	}
	assert.Equal(t, canvas.StatePopulated, g.Canvases()[0].State())
	// Paused ticks hold their position.
	assert.Equal(t, 2, g.Index())
}

func TestPlaybackAdvancesAndPausesAtEnd(t *testing.T) {
	g, _ := newTestGrid(t, 1)
	require.NoError(t, g.Reset(planarDataset(t, 3, 2)))

	g.Play()
	require.True(t, g.Playing())

	require.NoError(t, g.Tick())
	assert.Equal(t, 1, g.Index())
	require.NoError(t, g.Tick())
	assert.Equal(t, 2, g.Index())
	assert.False(t, g.Playing())

	// At the end further ticks hold the last frame.
	require.NoError(t, g.Tick())
	assert.Equal(t, 2, g.Index())
}

func TestTogglePlayback(t *testing.T) {
	g, _ := newTestGrid(t, 1)
	require.NoError(t, g.Reset(planarDataset(t, 5, 2)))

	g.TogglePlayback()
	assert.True(t, g.Playing())
	g.TogglePlayback()
	assert.False(t, g.Playing())
}

func TestScrubSuspendsAndResumes(t *testing.T) {
	g, _ := newTestGrid(t, 1)
	require.NoError(t, g.Reset(planarDataset(t, 10, 2)))

	g.Play()
	g.BeginScrub()
	assert.False(t, g.Playing())
	g.SetIndex(7)
	require.NoError(t, g.Tick())
	assert.Equal(t, 7, g.Index())

	g.EndScrub()
	assert.True(t, g.Playing())

	// A scrub begun while paused stays paused afterwards.
	g.Pause()
	g.BeginScrub()
	g.EndScrub()
	assert.False(t, g.Playing())

	// EndScrub without a matching BeginScrub changes nothing.
	g.EndScrub()
	assert.False(t, g.Playing())
}

func TestTickReportsUpdateErrorAndStillRenders(t *testing.T) {
	g, surfaces := newTestGrid(t, 2)

	// The scene builds fine from "p" but the heading series is sized for a
	// different swarm, so every frame update is rejected.
	d := planarDataset(t, 5, 2)
	require.NoError(t, d.Add("theta", &simdata.Series{Shape: []int{5, 3}, Data: make([]float32, 15)}))
	require.NoError(t, g.Reset(d))

	err := g.Tick()
	var shape *canvas.ShapeError
	require.ErrorAs(t, err, &shape)

	// Canvases still render so the window keeps repainting.
	for _, s := range surfaces {
		assert.Equal(t, 1, s.RenderCount())
	}
}

func TestTickErrorStopsPlayback(t *testing.T) {
	g, _ := newTestGrid(t, 1)

	d := planarDataset(t, 5, 2)
	require.NoError(t, d.Add("theta", &simdata.Series{Shape: []int{5, 3}, Data: make([]float32, 15)}))
	require.NoError(t, g.Reset(d))

	g.Play()
	require.Error(t, g.Tick())
	assert.False(t, g.Playing())
	assert.Equal(t, 1, g.Index())

	// Replaying after the stop fails the same way instead of advancing.
	g.Play()
	require.Error(t, g.Tick())
	assert.False(t, g.Playing())
	assert.Equal(t, 2, g.Index())
}

func TestLayoutBuild(t *testing.T) {
	l := &grid.Layout{
		Shape: [2]int{1, 2},
		Canvases: []grid.CanvasSpec{
			{Kind: canvas.KindCanvas2D, Position: [2]int{0, 0}},
			{Kind: canvas.KindCanvas3D, Position: [2]int{0, 1}},
		},
	}

	var viewports []render_surface.Viewport
	factory := func(v render_surface.Viewport) render_surface.RenderSurface {
		viewports = append(viewports, v)
		return render_surface.NewHeadless()
	}

	g, err := l.Build(factory, config.DefaultRender())
	require.NoError(t, err)
	assert.Len(t, g.Canvases(), 2)
	assert.Equal(t, canvas.KindCanvas2D, g.Canvases()[0].Kind())
	assert.Equal(t, canvas.KindCanvas3D, g.Canvases()[1].Kind())

	require.Len(t, viewports, 2)
	assert.Equal(t, render_surface.Viewport{X: 0, Y: 0, Width: 0.5, Height: 1}, viewports[0])
	assert.Equal(t, render_surface.Viewport{X: 0.5, Y: 0, Width: 0.5, Height: 1}, viewports[1])
}

func TestLayoutBuildDataLabels(t *testing.T) {
	factory := func(render_surface.Viewport) render_surface.RenderSurface {
		return render_surface.NewHeadless()
	}

	// A layout naming no labels reads the standard series names.
	l := &grid.Layout{Shape: [2]int{1, 1}, Canvases: []grid.CanvasSpec{
		{Kind: canvas.KindCanvas2D, Position: [2]int{0, 0}},
	}}
	g, err := l.Build(factory, config.DefaultRender())
	require.NoError(t, err)
	assert.NoError(t, g.Reset(planarDataset(t, 3, 2)))

	// An overridden position label points the canvas at that series.
	src := planarDataset(t, 3, 2)
	p, err := src.Get("p")
	require.NoError(t, err)
	d := simdata.NewDataset()
	require.NoError(t, d.Add("pos", p))

	l.Canvases[0].Args.PositionLabel = "pos"
	g, err = l.Build(factory, config.DefaultRender())
	require.NoError(t, err)
	assert.NoError(t, g.Reset(d))
}

func TestLayoutBuildValidation(t *testing.T) {
	factory := func(render_surface.Viewport) render_surface.RenderSurface {
		return render_surface.NewHeadless()
	}

	t.Run("wrong canvas count", func(t *testing.T) {
		l := &grid.Layout{Shape: [2]int{2, 2}, Canvases: []grid.CanvasSpec{
			{Kind: canvas.KindCanvas2D, Position: [2]int{0, 0}},
		}}
		_, err := l.Build(factory, config.DefaultRender())
		assert.Error(t, err)
	})

	t.Run("position out of range", func(t *testing.T) {
		l := &grid.Layout{Shape: [2]int{1, 1}, Canvases: []grid.CanvasSpec{
			{Kind: canvas.KindCanvas2D, Position: [2]int{0, 1}},
		}}
		_, err := l.Build(factory, config.DefaultRender())
		assert.Error(t, err)
	})

	t.Run("duplicate cell", func(t *testing.T) {
		l := &grid.Layout{Shape: [2]int{1, 2}, Canvases: []grid.CanvasSpec{
			{Kind: canvas.KindCanvas2D, Position: [2]int{0, 0}},
			{Kind: canvas.KindCanvas2D, Position: [2]int{0, 0}},
		}}
		_, err := l.Build(factory, config.DefaultRender())
		assert.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		l := &grid.Layout{Shape: [2]int{1, 1}, Canvases: []grid.CanvasSpec{
			{Kind: "mystery", Position: [2]int{0, 0}},
		}}
		_, err := l.Build(factory, config.DefaultRender())
		assert.Error(t, err)
	})
}

func TestDefaultLayout(t *testing.T) {
	l := grid.DefaultLayout()
	g, err := l.Build(func(render_surface.Viewport) render_surface.RenderSurface {
		return render_surface.NewHeadless()
	}, config.DefaultRender())
	require.NoError(t, err)
	assert.Len(t, g.Canvases(), 1)
}
