package render_surface

import (
	"sync"

	"github.com/swarmvista/vista/engine/mesh"
)

// HeadlessSurface is a RenderSurface with no rendering backend. It keeps the
// full actor set and counts the operations applied to it, so scene logic can
// run on machines without a GPU or a display server.
type HeadlessSurface interface {
	RenderSurface

	// ActorCount returns the number of live actors on the surface.
	//
	// Returns:
	//   - int: the live actor count
	ActorCount() int

	// RenderCount returns how many frames have been rendered.
	//
	// Returns:
	//   - int: the render count
	RenderCount() int

	// BoundsRecomputeCount returns how many times the displayed bounds
	// were refit.
	//
	// Returns:
	//   - int: the refit count
	BoundsRecomputeCount() int

	// CameraPresetApplied returns the most recently applied camera preset,
	// or the empty string if none was set.
	//
	// Returns:
	//   - CameraPreset: the last applied preset
	CameraPresetApplied() CameraPreset

	// Background returns the current clear color.
	//
	// Returns:
	//   - Color: the background color
	Background() Color
}

type headlessSurface struct {
	mu         sync.Mutex
	actors     map[*headlessActor]struct{}
	renders    int
	refits     int
	preset     CameraPreset
	background Color
}

var _ HeadlessSurface = &headlessSurface{}

// NewHeadless creates a surface that records scene operations without
// drawing.
//
// Returns:
//   - HeadlessSurface: the new surface
func NewHeadless() HeadlessSurface {
	return &headlessSurface{
		actors:     make(map[*headlessActor]struct{}),
		background: White,
	}
}

func (h *headlessSurface) UploadMesh(m *mesh.Mesh) error {
	return nil
}

func (h *headlessSurface) CreateActor(m *mesh.Mesh, style Style) (Actor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	a := &headlessActor{
		mesh:      m,
		color:     style.Color,
		opacity:   style.Opacity,
		lineWidth: style.LineWidth,
		visible:   style.Visible,
	}
	h.actors[a] = struct{}{}
	return a, nil
}

func (h *headlessSurface) RemoveActor(a Actor) {
	ha, ok := a.(*headlessActor)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.actors, ha)
}

func (h *headlessSurface) SetCameraPreset(preset CameraPreset) error {
	switch preset {
	case PresetTopDown, PresetIso:
	default:
		return &UnknownPresetError{Preset: preset}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.preset = preset
	return nil
}

func (h *headlessSurface) SetBackground(c Color) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.background = c
}

func (h *headlessSurface) Render() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
	for a := range h.actors {
		a.mu.Lock()
		a.dirty = false
		a.mu.Unlock()
	}
}

func (h *headlessSurface) RecomputeDisplayedBounds() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refits++
}

func (h *headlessSurface) ActorCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.actors)
}

func (h *headlessSurface) RenderCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renders
}

func (h *headlessSurface) BoundsRecomputeCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refits
}

func (h *headlessSurface) CameraPresetApplied() CameraPreset {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.preset
}

func (h *headlessSurface) Background() Color {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.background
}

type headlessActor struct {
	mu        sync.Mutex
	mesh      *mesh.Mesh
	color     Color
	opacity   float32
	lineWidth float32
	visible   bool
	dirty     bool
}

var _ Actor = &headlessActor{}

func (a *headlessActor) Color() Color {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.color
}

func (a *headlessActor) SetColor(c Color) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.color = c
}

func (a *headlessActor) Opacity() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.opacity
}

func (a *headlessActor) SetOpacity(o float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.opacity = o
}

func (a *headlessActor) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

func (a *headlessActor) SetVisible(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.visible = v
}

func (a *headlessActor) SetLineWidth(w float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lineWidth = w
}

func (a *headlessActor) MarkDirty() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dirty = true
}
