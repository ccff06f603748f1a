package scene_object

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/common"
	"github.com/swarmvista/vista/engine/mesh"
)

// Icon2D is a planar robot marker posed by position and heading.
type Icon2D interface {
	SceneObject

	// TransformTo places the icon's centroid at a position with the given
	// heading, recomputed from the default geometry so repeated calls with
	// the same pose are idempotent.
	//
	// Parameters:
	//   - position: the world position of the icon centroid
	//   - heading: the heading angle in radians about +Z
	TransformTo(position mgl32.Vec3, heading float32)
}

type icon2D struct {
	SceneObject
}

var _ Icon2D = &icon2D{}

// NewIcon2D creates a 2D robot icon of the given kind, normalized to unit
// extent about the origin.
//
// Parameters:
//   - kind: the icon kind to build
//   - scale: the icon's world extent
//   - opts: functional options configuring the initial style
//
// Returns:
//   - Icon2D: the new icon
//   - error: error if the kind is unknown
func NewIcon2D(kind mesh.IconKind, scale float32, opts ...SceneObjectBuilderOption) (Icon2D, error) {
	m, err := mesh.NewIcon(kind, 2)
	if err != nil {
		return nil, err
	}
	// Sized before snapshotting so absolute transforms keep the scale.
	common.ScalePointsAbout(m.Points, scale, mgl32.Vec3{})
	return &icon2D{SceneObject: NewSceneObject(m, opts...)}, nil
}

func (i *icon2D) TransformTo(position mgl32.Vec3, heading float32) {
	r := common.RotationZ(heading)
	// Rotation pivots on the default centroid, so offsetting the translation
	// by it lands the centroid exactly at position.
	t := position.Sub(i.DefaultCentroid())
	i.Transform(Transform{
		Translation: &t,
		Rotation:    &r,
	})
}

// Icon3D is a volumetric robot marker posed by position and a full rotation
// matrix.
type Icon3D interface {
	SceneObject

	// TransformTo places the icon's centroid at a position with the given
	// orientation, recomputed from the default geometry.
	//
	// Parameters:
	//   - position: the world position of the icon centroid
	//   - rotation: the orientation as a rotation matrix
	TransformTo(position mgl32.Vec3, rotation mgl32.Mat3)
}

type icon3D struct {
	SceneObject
}

var _ Icon3D = &icon3D{}

// NewIcon3D creates a 3D robot icon of the given kind, normalized to unit
// extent about the origin.
//
// Parameters:
//   - kind: the icon kind to build
//   - scale: the icon's world extent
//   - opts: functional options configuring the initial style
//
// Returns:
//   - Icon3D: the new icon
//   - error: error if the kind is unknown
func NewIcon3D(kind mesh.IconKind, scale float32, opts ...SceneObjectBuilderOption) (Icon3D, error) {
	m, err := mesh.NewIcon(kind, 3)
	if err != nil {
		return nil, err
	}
	common.ScalePointsAbout(m.Points, scale, mgl32.Vec3{})
	return &icon3D{SceneObject: NewSceneObject(m, opts...)}, nil
}

func (i *icon3D) TransformTo(position mgl32.Vec3, rotation mgl32.Mat3) {
	t := position.Sub(i.DefaultCentroid())
	i.Transform(Transform{
		Translation: &t,
		Rotation:    &rotation,
	})
}
