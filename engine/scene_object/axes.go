package scene_object

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/engine/mesh"
	"github.com/swarmvista/vista/engine/render_surface"
)

// AxesTriad is a body-frame marker of three colored segments: X red, Y
// green, Z blue.
type AxesTriad interface {
	SceneObjectBundle

	// TransformTo places the triad origin and aligns each axis with the
	// corresponding column of the rotation matrix.
	//
	// Parameters:
	//   - origin: the world position of the triad origin
	//   - rotation: the body orientation as a rotation matrix
	TransformTo(origin mgl32.Vec3, rotation mgl32.Mat3)
}

type axesTriad struct {
	SceneObjectBundle
	size float32
	axes [3]SceneObject
}

var _ AxesTriad = &axesTriad{}

var axisNames = [3]string{"x", "y", "z"}

var axisColors = [3]render_surface.Color{
	render_surface.Red,
	render_surface.Green,
	render_surface.Blue,
}

// NewAxesTriad creates a triad of unit axes at the origin.
//
// Parameters:
//   - size: the world length of each axis segment
//   - lineWidth: the segment line width
//
// Returns:
//   - AxesTriad: the new triad
func NewAxesTriad(size, lineWidth float32) AxesTriad {
	t := &axesTriad{
		SceneObjectBundle: NewSceneObjectBundle(),
		size:              size,
	}
	for i := 0; i < 3; i++ {
		var dir mgl32.Vec3
		dir[i] = size
		axis := NewSceneObject(
			mesh.NewSegment(mgl32.Vec3{}, dir),
			WithColor(axisColors[i]),
			WithLineWidth(lineWidth),
		)
		t.axes[i] = axis
		if err := t.AddChild(axisNames[i], axis); err != nil {
			panic(err)
		}
	}
	return t
}

func (t *axesTriad) TransformTo(origin mgl32.Vec3, rotation mgl32.Mat3) {
	for i, axis := range t.axes {
		tip := origin.Add(rotation.Col(i).Mul(t.size))
		axis.UpdateMeshPoints([]mgl32.Vec3{origin, tip})
	}
}
