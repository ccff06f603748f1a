package render_surface

import (
	"github.com/swarmvista/vista/engine/mesh"
)

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

var (
	// White is the default canvas background.
	White = Color{1, 1, 1, 1}
	// Black is the default grid and text color.
	Black = Color{0, 0, 0, 1}
	// Red is the default focus highlight and the X axis color.
	Red = Color{1, 0, 0, 1}
	// Green is the Y axis color.
	Green = Color{0, 1, 0, 1}
	// Blue is the default robot color and the Z axis color.
	Blue = Color{0, 0, 1, 1}
	// Grey is the fine-grid line color.
	Grey = Color{0.5, 0.5, 0.5, 1}
	// LightGrey is the translucent sphere shell color.
	LightGrey = Color{0.83, 0.83, 0.83, 1}
)

// Style holds the rendering hints applied to an actor when it is created:
// color, opacity, line width, and initial visibility.
type Style struct {
	Color     Color
	Opacity   float32
	LineWidth float32
	Visible   bool
}

// DefaultStyle returns the baseline style: opaque, visible, unit line width,
// black.
//
// Returns:
//   - Style: the default style
func DefaultStyle() Style {
	return Style{Color: Black, Opacity: 1, LineWidth: 1, Visible: true}
}

// WithColor returns a copy of the style with the color replaced.
//
// Parameters:
//   - c: the new color
//
// Returns:
//   - Style: the derived style
func (s Style) WithColor(c Color) Style {
	s.Color = c
	return s
}

// WithOpacity returns a copy of the style with the opacity replaced.
//
// Parameters:
//   - o: the new opacity in [0, 1]
//
// Returns:
//   - Style: the derived style
func (s Style) WithOpacity(o float32) Style {
	s.Opacity = o
	return s
}

// WithLineWidth returns a copy of the style with the line width replaced.
//
// Parameters:
//   - w: the new line width
//
// Returns:
//   - Style: the derived style
func (s Style) WithLineWidth(w float32) Style {
	s.LineWidth = w
	return s
}

// WithVisible returns a copy of the style with the visibility replaced.
//
// Parameters:
//   - v: the new visibility
//
// Returns:
//   - Style: the derived style
func (s Style) WithVisible(v bool) Style {
	s.Visible = v
	return s
}

// CameraPreset names one of the fixed camera placements a surface supports.
type CameraPreset string

const (
	// PresetTopDown is a parallel-projection top-down view of the XY plane,
	// used by 2D canvases.
	PresetTopDown CameraPreset = "xy"
	// PresetIso is a perspective isometric view rotated -90 degrees in
	// azimuth, used by 3D canvases.
	PresetIso CameraPreset = "iso"
)

// Actor is the on-surface representation of an uploaded mesh. Style state
// (color, opacity, visibility) lives here once the mesh is attached.
type Actor interface {
	// Color returns the actor's current color.
	//
	// Returns:
	//   - Color: the current color
	Color() Color

	// SetColor sets the actor's color.
	//
	// Parameters:
	//   - c: the new color
	SetColor(c Color)

	// Opacity returns the actor's current opacity.
	//
	// Returns:
	//   - float32: the opacity in [0, 1]
	Opacity() float32

	// SetOpacity sets the actor's opacity.
	//
	// Parameters:
	//   - o: the new opacity in [0, 1]
	SetOpacity(o float32)

	// Visible returns whether the actor is drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible sets whether the actor is drawn.
	//
	// Parameters:
	//   - v: true to draw the actor
	SetVisible(v bool)

	// SetLineWidth sets the line width hint for line topology.
	//
	// Parameters:
	//   - w: the line width
	SetLineWidth(w float32)

	// MarkDirty flags the actor's mesh geometry as changed so the surface
	// re-uploads it before the next render.
	MarkDirty()
}

// RenderSurface is the opaque 3D canvas capability the scene model renders
// through. Implementations own the native rendering toolkit; the scene core
// never references a backend by name. The render trigger is explicit and
// manual: mutations accumulate and one Render call paints the frame.
type RenderSurface interface {
	// UploadMesh stages or refreshes a mesh's geometry buffers on the
	// surface. Called implicitly by CreateActor; callable again after the
	// mesh's points change.
	//
	// Parameters:
	//   - m: the mesh to upload
	//
	// Returns:
	//   - error: error if the upload fails
	UploadMesh(m *mesh.Mesh) error

	// CreateActor uploads a mesh and creates its renderable presence with
	// the given initial style.
	//
	// Parameters:
	//   - m: the mesh to attach
	//   - style: initial color, opacity, line width, and visibility
	//
	// Returns:
	//   - Actor: the created actor handle
	//   - error: error if creation fails
	CreateActor(m *mesh.Mesh, style Style) (Actor, error)

	// RemoveActor detaches an actor from the surface and releases its
	// buffers. Removing an actor the surface does not own is a no-op.
	//
	// Parameters:
	//   - a: the actor to remove
	RemoveActor(a Actor)

	// SetCameraPreset places the camera at a named preset.
	//
	// Parameters:
	//   - preset: the preset to apply
	//
	// Returns:
	//   - error: error if the preset is unknown
	SetCameraPreset(preset CameraPreset) error

	// SetBackground sets the surface clear color.
	//
	// Parameters:
	//   - c: the background color
	SetBackground(c Color)

	// Render paints one frame with the current actor set. This is the only
	// way pixels change: per-object mutations are batched until the owning
	// canvas issues its one render per frame.
	Render()

	// RecomputeDisplayedBounds refits the displayed axis bounds (and the
	// camera framing derived from them) to the current actor geometry.
	// Cheap enough to call per frame after a reference grid recenter.
	RecomputeDisplayedBounds()
}
