package scene_object

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/engine/mesh"
)

// Vector is an arrow glyph for a single directed quantity such as a velocity
// or a control input.
type Vector interface {
	SceneObject

	// UpdateVector regenerates the arrow from a new origin and direction.
	// A zero direction collapses the arrow to nothing.
	//
	// Parameters:
	//   - origin: the arrow tail position
	//   - direction: the arrow extent
	UpdateVector(origin, direction mgl32.Vec3)
}

type vector struct {
	SceneObject
	scale float32
}

var _ Vector = &vector{}

// NewVector creates an arrow from an origin along a direction.
//
// Parameters:
//   - origin: the arrow tail position
//   - direction: the arrow extent
//   - scale: the barb size relative to the arrow length
//   - opts: functional options configuring the initial style
//
// Returns:
//   - Vector: the new vector
func NewVector(origin, direction mgl32.Vec3, scale float32, opts ...SceneObjectBuilderOption) Vector {
	return &vector{
		SceneObject: NewSceneObject(mesh.NewArrow(origin, direction, scale), opts...),
		scale:       scale,
	}
}

func (v *vector) UpdateVector(origin, direction mgl32.Vec3) {
	v.ReplaceGeometry(mesh.NewArrow(origin, direction, v.scale))
}

// VectorField is a bundle of arrows updated together, one per robot.
type VectorField interface {
	SceneObjectBundle

	// UpdateVectors regenerates every arrow in the field.
	//
	// Parameters:
	//   - origins: one tail position per arrow
	//   - directions: one extent per arrow
	//
	// Returns:
	//   - error: error if the slice lengths do not match the field size
	UpdateVectors(origins, directions []mgl32.Vec3) error
}

type vectorField struct {
	SceneObjectBundle
	vectors []Vector
}

var _ VectorField = &vectorField{}

// NewVectorField creates a field of n zero arrows.
//
// Parameters:
//   - n: the number of arrows
//   - scale: the barb size relative to arrow length
//   - opts: functional options configuring each arrow's initial style
//
// Returns:
//   - VectorField: the new field
func NewVectorField(n int, scale float32, opts ...SceneObjectBuilderOption) VectorField {
	f := &vectorField{
		SceneObjectBundle: NewSceneObjectBundle(),
		vectors:           make([]Vector, n),
	}
	for i := 0; i < n; i++ {
		v := NewVector(mgl32.Vec3{}, mgl32.Vec3{}, scale, opts...)
		f.vectors[i] = v
		if err := f.AddChild(fmt.Sprintf("vector_%d", i), v); err != nil {
			panic(err)
		}
	}
	return f
}

func (f *vectorField) UpdateVectors(origins, directions []mgl32.Vec3) error {
	if len(origins) != len(f.vectors) || len(directions) != len(f.vectors) {
		return fmt.Errorf("vector field holds %d arrows, got %d origins and %d directions",
			len(f.vectors), len(origins), len(directions))
	}
	for i, v := range f.vectors {
		v.UpdateVector(origins[i], directions[i])
	}
	return nil
}
