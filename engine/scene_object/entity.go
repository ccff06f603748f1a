package scene_object

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/engine/render_surface"
)

// Transform describes an absolute placement recomputed from an entity's
// default geometry. Nil fields leave that component at its default. Rotation
// is applied first, then scaling, both about the resolved center, and the
// translation is added last.
type Transform struct {
	// Translation is the displacement added to the default geometry.
	Translation *mgl32.Vec3
	// Rotation is the rotation applied about the resolved center.
	Rotation *mgl32.Mat3
	// ScaleFactor is the uniform scale applied about the resolved center.
	ScaleFactor *float32
	// Center overrides the rotation and scale center. When nil a scene
	// object uses its default centroid, and a bundle resolves one shared
	// centroid for all of its children.
	Center *mgl32.Vec3
}

// Entity is the capability shared by everything that lives on a canvas:
// a single SceneObject or a SceneObjectBundle of them. The set of
// implementations is closed.
type Entity interface {
	// Attach creates the entity's renderable presence on a surface.
	//
	// Parameters:
	//   - surface: the surface to attach to
	//
	// Returns:
	//   - error: ErrAlreadyAttached if the entity is already attached
	Attach(surface render_surface.RenderSurface) error

	// Detach removes the entity's renderable presence from its surface.
	// A no-op when not attached.
	Detach()

	// SetColor applies a color to the entity. The first call snapshots the
	// prevailing color as the restore point for ResetColor. Bundles forward
	// only to children that participate in color styling.
	//
	// Parameters:
	//   - c: the color to apply
	SetColor(c render_surface.Color)

	// ResetColor restores the color captured by the first SetColor call.
	// A no-op when no snapshot exists.
	ResetColor()

	// SetOpacity applies an opacity. Bundles forward only to children that
	// participate in color styling.
	//
	// Parameters:
	//   - o: the opacity in [0, 1]
	SetOpacity(o float32)

	// SetVisibility shows or hides the entity. Bundles forward to every
	// child.
	//
	// Parameters:
	//   - visible: true to show the entity
	SetVisibility(visible bool)

	// SetLineWidth applies a line width to the entity's line topology.
	//
	// Parameters:
	//   - w: the line width
	SetLineWidth(w float32)

	// Transform places the entity absolutely, recomputing its geometry from
	// the default snapshot so repeated calls with the same transform are
	// idempotent.
	//
	// Parameters:
	//   - t: the placement to apply
	Transform(t Transform)

	// Translate moves the entity's current geometry by a delta.
	//
	// Parameters:
	//   - delta: the displacement to add
	Translate(delta mgl32.Vec3)

	// Rotate rotates the entity's current geometry about a center.
	//
	// Parameters:
	//   - r: the rotation to apply
	//   - center: the rotation center, or nil for the entity's centroid
	Rotate(r mgl32.Mat3, center *mgl32.Vec3)

	// Scale scales the entity's current geometry about a center.
	//
	// Parameters:
	//   - factor: the uniform scale factor
	//   - center: the scale center, or nil for the entity's centroid
	Scale(factor float32, center *mgl32.Vec3)

	// ComputeCentroid returns the mean of every point the entity currently
	// holds, recursing through bundles. An entity with no points reports
	// the origin.
	//
	// Returns:
	//   - mgl32.Vec3: the centroid
	ComputeCentroid() mgl32.Vec3

	// appendPoints appends every point the entity currently holds, closing
	// the implementation set to this package.
	appendPoints(dst []mgl32.Vec3) []mgl32.Vec3
}
