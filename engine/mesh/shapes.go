package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/swarmvista/vista/common"
)

// NewPolyline builds an open polyline connecting consecutive points: N points
// yield N-1 two-point segments. With zero or one point the topology is empty,
// which is a valid mesh (a trajectory before the second frame).
//
// Parameters:
//   - points: the polyline points in order
//
// Returns:
//   - *Mesh: the polyline mesh
func NewPolyline(points []mgl32.Vec3) *Mesh {
	m := &Mesh{Points: make([]mgl32.Vec3, len(points))}
	copy(m.Points, points)
	m.Lines = PolylineTopology(len(points))
	return m
}

// PolylineTopology returns the flat segment-pair index list connecting n
// consecutive points. n <= 1 yields an empty (non-nil) list.
//
// Parameters:
//   - n: number of points
//
// Returns:
//   - []uint32: flat index pairs (0,1, 1,2, ...)
func PolylineTopology(n int) []uint32 {
	if n <= 1 {
		return []uint32{}
	}
	lines := make([]uint32, 0, 2*(n-1))
	for i := 0; i < n-1; i++ {
		lines = append(lines, uint32(i), uint32(i+1))
	}
	return lines
}

// NewSegment builds a single line segment between two points.
//
// Parameters:
//   - start: segment start
//   - end: segment end
//
// Returns:
//   - *Mesh: the two-point mesh
func NewSegment(start, end mgl32.Vec3) *Mesh {
	return &Mesh{
		Points: []mgl32.Vec3{start, end},
		Lines:  []uint32{0, 1},
	}
}

// NewArrow builds a line-based arrow from origin along direction. The shaft
// spans the full direction vector scaled by scale, and four head barbs angle
// back from the tip so the arrow reads from any view direction. Direction
// length encodes magnitude, so a changed direction requires a new arrow.
//
// Parameters:
//   - origin: arrow base point
//   - direction: direction and magnitude
//   - scale: additional uniform scale factor
//
// Returns:
//   - *Mesh: the arrow mesh
func NewArrow(origin, direction mgl32.Vec3, scale float32) *Mesh {
	dir := direction.Mul(scale)
	tip := origin.Add(dir)
	length := dir.Len()
	if length == 0 {
		return &Mesh{Points: []mgl32.Vec3{origin, tip}, Lines: []uint32{0, 1}}
	}

	unit := dir.Mul(1 / length)
	// Any vector not parallel to unit works as a seed for the barb plane.
	seed := mgl32.Vec3{0, 0, 1}
	if math32.Abs(unit.Dot(seed)) > 0.9 {
		seed = mgl32.Vec3{0, 1, 0}
	}
	side := unit.Cross(seed).Normalize()
	up := unit.Cross(side)

	barb := length * 0.2
	back := tip.Sub(unit.Mul(barb))
	m := &Mesh{
		Points: []mgl32.Vec3{
			origin, tip,
			back.Add(side.Mul(barb * 0.5)),
			back.Sub(side.Mul(barb * 0.5)),
			back.Add(up.Mul(barb * 0.5)),
			back.Sub(up.Mul(barb * 0.5)),
		},
		Lines: []uint32{0, 1, 1, 2, 1, 3, 1, 4, 1, 5},
	}
	return m
}

// NewPlane builds a flat rectangle in the XY plane centered on the origin,
// sized sizeX by sizeY, as two triangles. Used as the invisible bounds mesh
// behind 2D reference grids.
//
// Parameters:
//   - sizeX: extent along X
//   - sizeY: extent along Y
//
// Returns:
//   - *Mesh: the plane mesh
func NewPlane(sizeX, sizeY float32) *Mesh {
	hx, hy := sizeX/2, sizeY/2
	return &Mesh{
		Points: []mgl32.Vec3{
			{-hx, -hy, 0}, {hx, -hy, 0}, {hx, hy, 0}, {-hx, hy, 0},
		},
		Faces: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// NewBox builds an axis-aligned wireframe box centered on the origin with
// half-extents rx, ry, rz. Used as the invisible bounds mesh behind 3D
// reference grids.
//
// Parameters:
//   - rx: half extent along X
//   - ry: half extent along Y
//   - rz: half extent along Z
//
// Returns:
//   - *Mesh: the box mesh
func NewBox(rx, ry, rz float32) *Mesh {
	return &Mesh{
		Points: []mgl32.Vec3{
			{-rx, -ry, -rz}, {rx, -ry, -rz}, {rx, ry, -rz}, {-rx, ry, -rz},
			{-rx, -ry, rz}, {rx, -ry, rz}, {rx, ry, rz}, {-rx, ry, rz},
		},
		Lines: []uint32{
			0, 1, 1, 2, 2, 3, 3, 0,
			4, 5, 5, 6, 6, 7, 7, 4,
			0, 4, 1, 5, 2, 6, 3, 7,
		},
	}
}

// NewSphereShell builds a triangulated sphere of the given radius centered on
// the origin, used as the translucent backdrop of the attitude sphere grid.
//
// Parameters:
//   - radius: sphere radius
//   - thetaRes: longitudinal resolution
//   - phiRes: latitudinal resolution
//
// Returns:
//   - *Mesh: the sphere mesh
func NewSphereShell(radius float32, thetaRes, phiRes int) *Mesh {
	m := &Mesh{}
	for i := 0; i <= phiRes; i++ {
		phi := -math32.Pi/2 + math32.Pi*float32(i)/float32(phiRes)
		for j := 0; j <= thetaRes; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(thetaRes)
			m.Points = append(m.Points, mgl32.Vec3{
				radius * math32.Cos(phi) * math32.Cos(theta),
				radius * math32.Cos(phi) * math32.Sin(theta),
				radius * math32.Sin(phi),
			})
		}
	}
	cols := uint32(thetaRes + 1)
	for i := 0; i < phiRes; i++ {
		for j := 0; j < thetaRes; j++ {
			a := uint32(i)*cols + uint32(j)
			b := a + 1
			c := a + cols
			d := c + 1
			m.Faces = append(m.Faces, a, c, b, b, c, d)
		}
	}
	return m
}

// NewSphereGrid builds a wireframe sphere grid of latitude and longitude
// circles. Either step may be zero to omit that family of lines.
//
// Parameters:
//   - radius: sphere radius
//   - latStepDeg: degrees between latitude circles (0 = none)
//   - lonStepDeg: degrees between longitude half-circles (0 = none)
//   - resolution: points per circle
//
// Returns:
//   - *Mesh: the grid mesh
func NewSphereGrid(radius float32, latStepDeg, lonStepDeg, resolution int) *Mesh {
	m := &Mesh{}

	if latStepDeg > 0 {
		for phiDeg := -90 + latStepDeg; phiDeg < 90; phiDeg += latStepDeg {
			phi := mgl32.DegToRad(float32(phiDeg))
			start := uint32(len(m.Points))
			for i := 0; i < resolution; i++ {
				theta := 2 * math32.Pi * float32(i) / float32(resolution)
				m.Points = append(m.Points, mgl32.Vec3{
					radius * math32.Cos(phi) * math32.Cos(theta),
					radius * math32.Cos(phi) * math32.Sin(theta),
					radius * math32.Sin(phi),
				})
			}
			for i := 0; i < resolution-1; i++ {
				m.Lines = append(m.Lines, start+uint32(i), start+uint32(i)+1)
			}
			// close the circle
			m.Lines = append(m.Lines, start+uint32(resolution)-1, start)
		}
	}

	if lonStepDeg > 0 {
		for thetaDeg := 0; thetaDeg < 360; thetaDeg += lonStepDeg {
			theta := mgl32.DegToRad(float32(thetaDeg))
			start := uint32(len(m.Points))
			for i := 0; i < resolution; i++ {
				phi := -math32.Pi/2 + math32.Pi*float32(i)/float32(resolution-1)
				m.Points = append(m.Points, mgl32.Vec3{
					radius * math32.Cos(phi) * math32.Cos(theta),
					radius * math32.Cos(phi) * math32.Sin(theta),
					radius * math32.Sin(phi),
				})
			}
			for i := 0; i < resolution-1; i++ {
				m.Lines = append(m.Lines, start+uint32(i), start+uint32(i)+1)
			}
		}
	}

	return m
}

// NewGeodesic builds a polyline along the great circle between two lat/lon
// points on a sphere. Coincident or antipodal endpoints are rejected since
// the great circle is undefined or ambiguous there.
//
// Parameters:
//   - latlonStart: start point as (latitude, longitude) in degrees
//   - latlonEnd: end point as (latitude, longitude) in degrees
//   - radius: sphere radius
//   - n: number of points along the geodesic
//
// Returns:
//   - *Mesh: the geodesic polyline
//   - error: error if the endpoints are coincident or antipodal
func NewGeodesic(latlonStart, latlonEnd [2]float32, radius float32, n int) (*Mesh, error) {
	start := common.LatLonToXYZ(latlonStart[0], latlonStart[1], radius).Normalize()
	end := common.LatLonToXYZ(latlonEnd[0], latlonEnd[1], radius).Normalize()

	dot := common.Clamp(start.Dot(end), -1, 1)
	omega := math32.Acos(dot)

	const eps = 1e-6
	if omega < eps {
		return nil, fmt.Errorf("geodesic endpoints %v and %v are coincident", latlonStart, latlonEnd)
	}
	if math32.Pi-omega < eps {
		return nil, fmt.Errorf("geodesic endpoints %v and %v are antipodal", latlonStart, latlonEnd)
	}

	points := make([]mgl32.Vec3, n)
	for i := 0; i < n; i++ {
		t := float32(i) / float32(n-1)
		points[i] = common.Slerp(start, end, omega, t).Mul(radius)
	}
	return NewPolyline(points), nil
}

// Dashed rebuilds a polyline mesh as a dashed line, keeping runs of
// dashLength points and skipping the same number between dashes.
//
// Parameters:
//   - polyline: the source polyline mesh
//   - dashLength: number of points per dash
//
// Returns:
//   - *Mesh: the dashed mesh
func Dashed(polyline *Mesh, dashLength int) *Mesh {
	m := &Mesh{}
	n := len(polyline.Points)
	for i := 0; i < n-1; i += dashLength * 2 {
		end := i + dashLength
		if end > n {
			end = n
		}
		if end-i < 2 {
			continue
		}
		start := uint32(len(m.Points))
		m.Points = append(m.Points, polyline.Points[i:end]...)
		for j := 0; j < end-i-1; j++ {
			m.Lines = append(m.Lines, start+uint32(j), start+uint32(j)+1)
		}
	}
	return m
}
