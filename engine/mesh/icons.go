package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// IconKind identifies a robot icon shape. The set of kinds is closed: icon
// constructors are registered in fixed lookup tables built at package init,
// and an unknown kind is a configuration error rather than a silent fallback.
type IconKind string

const (
	// IconDefault renders as a disk in 2D and a sphere in 3D.
	IconDefault IconKind = "default"
	// IconSingleIntegrator is an alias for the default shape.
	IconSingleIntegrator IconKind = "single_integrator"
	// IconUnicycle is a heading-revealing shape: a triangle in 2D, a cone on
	// a disc base in 3D, both pointing along +X.
	IconUnicycle IconKind = "unicycle"
	// IconCar is a rectangle in 2D and a box in 3D, long axis along +X.
	IconCar IconKind = "car"
	// IconFixedWing is a 2D-only swept-wing outline pointing along +X.
	IconFixedWing IconKind = "fixed_wing"
	// IconQuadrotor is a 3D-only body sphere with four propeller spheres.
	IconQuadrotor IconKind = "quadrotor"
)

var (
	icons2D map[IconKind]func() *Mesh
	icons3D map[IconKind]func() *Mesh
)

func init() {
	icons2D = map[IconKind]func() *Mesh{
		IconDefault:          newDisk2D,
		IconSingleIntegrator: newDisk2D,
		IconUnicycle:         newTriangle2D,
		IconCar:              newRectangle2D,
		IconFixedWing:        newFixedWing2D,
	}
	icons3D = map[IconKind]func() *Mesh{
		IconDefault:          newSphere3D,
		IconSingleIntegrator: newSphere3D,
		IconUnicycle:         newUnicycle3D,
		IconCar:              newCar3D,
		IconQuadrotor:        newQuadrotor3D,
	}
}

// NewIcon builds the robot icon mesh for the given kind and dimension,
// normalized to fit a unit bounding cube.
//
// Parameters:
//   - kind: the icon kind
//   - dims: 2 or 3
//
// Returns:
//   - *Mesh: the icon mesh
//   - error: error if the kind is unknown for the dimension
func NewIcon(kind IconKind, dims int) (*Mesh, error) {
	table := icons3D
	if dims == 2 {
		table = icons2D
	}
	ctor, ok := table[kind]
	if !ok {
		return nil, fmt.Errorf("unknown %dD robot icon kind %q", dims, kind)
	}
	m := ctor()
	m.NormalizeToUnitCube(dims)
	return m, nil
}

// IconKinds returns the known kinds for a dimension, for listings and
// configuration error messages.
//
// Parameters:
//   - dims: 2 or 3
//
// Returns:
//   - []IconKind: the registered kinds (unordered)
func IconKinds(dims int) []IconKind {
	table := icons3D
	if dims == 2 {
		table = icons2D
	}
	kinds := make([]IconKind, 0, len(table))
	for k := range table {
		kinds = append(kinds, k)
	}
	return kinds
}

func newDisk2D() *Mesh {
	const n = 50
	m := &Mesh{}
	m.Points = append(m.Points, mgl32.Vec3{})
	for i := 0; i < n; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(n)
		m.Points = append(m.Points, mgl32.Vec3{0.25 * math32.Cos(theta), 0.25 * math32.Sin(theta), 0})
	}
	for i := 1; i <= n; i++ {
		next := uint32(i%n + 1)
		m.Faces = append(m.Faces, 0, uint32(i), next)
	}
	return m
}

func newTriangle2D() *Mesh {
	return &Mesh{
		Points: []mgl32.Vec3{{0.5, 0, 0}, {0, 0.25, 0}, {0, -0.25, 0}},
		Faces:  []uint32{0, 1, 2},
	}
}

func newRectangle2D() *Mesh {
	return &Mesh{
		Points: []mgl32.Vec3{{-0.4, -0.2, 0}, {0.4, -0.2, 0}, {0.4, 0.2, 0}, {-0.4, 0.2, 0}},
		Faces:  []uint32{0, 1, 2, 0, 2, 3},
	}
}

func newFixedWing2D() *Mesh {
	return &Mesh{
		Points: []mgl32.Vec3{{0.5, 0, 0}, {-0.5, 0.25, 0}, {0, 0, 0}, {-0.5, -0.25, 0}},
		Faces:  []uint32{0, 1, 2, 0, 2, 3},
	}
}

func newSphere3D() *Mesh {
	return NewSphereShell(0.25, 32, 24)
}

// newCone builds a triangulated cone with its apex along direction +X.
func newCone(center mgl32.Vec3, height, radius float32, resolution int) *Mesh {
	m := &Mesh{}
	apex := center.Add(mgl32.Vec3{height / 2, 0, 0})
	baseX := center[0] - height/2
	m.Points = append(m.Points, apex)
	for i := 0; i < resolution; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(resolution)
		m.Points = append(m.Points, mgl32.Vec3{
			baseX,
			center[1] + radius*math32.Cos(theta),
			center[2] + radius*math32.Sin(theta),
		})
	}
	for i := 1; i <= resolution; i++ {
		next := uint32(i%resolution + 1)
		m.Faces = append(m.Faces, 0, uint32(i), next)
	}
	return m
}

// newDisc builds a filled disc in the YZ plane (normal +X).
func newDisc(outer float32, resolution int) *Mesh {
	m := &Mesh{}
	m.Points = append(m.Points, mgl32.Vec3{})
	for i := 0; i < resolution; i++ {
		theta := 2 * math32.Pi * float32(i) / float32(resolution)
		m.Points = append(m.Points, mgl32.Vec3{0, outer * math32.Cos(theta), outer * math32.Sin(theta)})
	}
	for i := 1; i <= resolution; i++ {
		next := uint32(i%resolution + 1)
		m.Faces = append(m.Faces, 0, uint32(i), next)
	}
	return m
}

func newUnicycle3D() *Mesh {
	m := newDisc(0.1, 60)
	m.Merge(newCone(mgl32.Vec3{0.2, 0, 0}, 0.4, 0.1, 50))
	return m
}

func newCar3D() *Mesh {
	box := &Mesh{
		Points: []mgl32.Vec3{
			{-0.3, -0.15, 0}, {0.3, -0.15, 0}, {0.3, 0.15, 0}, {-0.3, 0.15, 0},
			{-0.3, -0.15, 0.2}, {0.3, -0.15, 0.2}, {0.3, 0.15, 0.2}, {-0.3, 0.15, 0.2},
		},
		Faces: []uint32{
			0, 1, 2, 0, 2, 3,
			4, 6, 5, 4, 7, 6,
			0, 4, 5, 0, 5, 1,
			1, 5, 6, 1, 6, 2,
			2, 6, 7, 2, 7, 3,
			3, 7, 4, 3, 4, 0,
		},
	}
	return box
}

func newQuadrotor3D() *Mesh {
	const armLen = 0.3
	m := NewSphereShell(0.1, 24, 16)
	offsets := []mgl32.Vec3{
		{armLen, armLen, 0},
		{-armLen, armLen, 0},
		{-armLen, -armLen, 0},
		{armLen, -armLen, 0},
	}
	for _, off := range offsets {
		prop := NewSphereShell(0.05, 12, 12)
		prop.Translate(off)
		m.Merge(prop)
	}
	return m
}
