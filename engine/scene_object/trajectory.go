package scene_object

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/engine/mesh"
)

// Trajectory is a polyline whose point count changes every frame as the
// visible slice of a robot's path grows and shrinks.
type Trajectory interface {
	SceneObject

	// SetPoints rebuilds the polyline through the given points. Fewer than
	// two points yields an empty line.
	//
	// Parameters:
	//   - points: the path points in order
	SetPoints(points []mgl32.Vec3)
}

type trajectory struct {
	SceneObject
}

var _ Trajectory = &trajectory{}

// NewTrajectory creates an empty trajectory.
//
// Parameters:
//   - opts: functional options configuring the initial style
//
// Returns:
//   - Trajectory: the new trajectory
func NewTrajectory(opts ...SceneObjectBuilderOption) Trajectory {
	return &trajectory{
		SceneObject: NewSceneObject(mesh.NewPolyline(nil), opts...),
	}
}

func (t *trajectory) SetPoints(points []mgl32.Vec3) {
	t.ReplaceGeometry(mesh.NewPolyline(points))
}
