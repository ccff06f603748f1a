package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/swarmvista/vista/common"
)

// Mesh is an owned geometry buffer: a point set plus line and triangle
// topology indexing into it. Meshes are plain values with no GPU state; a
// render surface uploads them and tracks their on-surface representation
// separately.
type Mesh struct {
	// Points holds the vertex positions.
	Points []mgl32.Vec3

	// Lines holds line-segment topology as flat index pairs
	// (i0,j0, i1,j1, ...). Length is always even.
	Lines []uint32

	// Faces holds triangle-list topology as flat index triples.
	// Length is always a multiple of three.
	Faces []uint32
}

// New returns an empty mesh with no points or topology.
//
// Returns:
//   - *Mesh: the empty mesh
func New() *Mesh {
	return &Mesh{}
}

// Clone returns a deep copy of the mesh.
//
// Returns:
//   - *Mesh: an independent copy
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Points: make([]mgl32.Vec3, len(m.Points)),
		Lines:  make([]uint32, len(m.Lines)),
		Faces:  make([]uint32, len(m.Faces)),
	}
	copy(c.Points, m.Points)
	copy(c.Lines, m.Lines)
	copy(c.Faces, m.Faces)
	return c
}

// Centroid returns the geometric center of the point set, or the origin if
// the mesh is empty.
//
// Returns:
//   - mgl32.Vec3: the mean of all points
func (m *Mesh) Centroid() mgl32.Vec3 {
	return common.Centroid(m.Points)
}

// IsEmpty reports whether the mesh has no points.
//
// Returns:
//   - bool: true if the mesh holds no geometry
func (m *Mesh) IsEmpty() bool {
	return len(m.Points) == 0
}

// SegmentCount returns the number of line segments in the topology.
//
// Returns:
//   - int: segment count
func (m *Mesh) SegmentCount() int {
	return len(m.Lines) / 2
}

// Bounds returns the axis-aligned bounding box of the point set. An empty
// mesh yields two zero vectors.
//
// Returns:
//   - min: minimum corner
//   - max: maximum corner
func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	if len(m.Points) == 0 {
		return
	}
	min, max = m.Points[0], m.Points[0]
	for _, p := range m.Points[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return
}

// Merge appends another mesh's geometry to this one, offsetting the incoming
// topology indices past the existing points.
//
// Parameters:
//   - other: the mesh to append
func (m *Mesh) Merge(other *Mesh) {
	base := uint32(len(m.Points))
	m.Points = append(m.Points, other.Points...)
	for _, idx := range other.Lines {
		m.Lines = append(m.Lines, base+idx)
	}
	for _, idx := range other.Faces {
		m.Faces = append(m.Faces, base+idx)
	}
}

// Translate offsets every point in place.
//
// Parameters:
//   - t: translation vector
func (m *Mesh) Translate(t mgl32.Vec3) {
	common.TranslatePoints(m.Points, t)
}

// NormalizeToUnitCube scales and recenters the mesh in place so it fits a
// 1x1x1 cube centered on the origin. For dims == 2 only the X/Y extents
// participate in the scale computation, matching planar icons whose Z extent
// is degenerate.
//
// Parameters:
//   - dims: 2 or 3, the number of dimensions considered for scaling
func (m *Mesh) NormalizeToUnitCube(dims int) {
	if len(m.Points) == 0 {
		return
	}
	min, max := m.Bounds()

	scale := float32(0)
	n := 3
	if dims == 2 {
		n = 2
	}
	for k := 0; k < n; k++ {
		extent := max[k] - min[k]
		if extent <= 0 {
			continue
		}
		s := 1 / extent
		if scale == 0 || s < scale {
			scale = s
		}
	}
	if scale == 0 {
		scale = 1
	}

	center := min.Add(max).Mul(0.5)
	for i, p := range m.Points {
		m.Points[i] = p.Sub(center).Mul(scale)
	}
}
