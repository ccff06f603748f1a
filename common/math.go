package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RotationZ builds a 3x3 rotation matrix for a counterclockwise rotation by
// heading radians about the +Z axis. Used to orient planar robot icons from a
// scalar heading angle.
//
// Parameters:
//   - heading: rotation angle in radians
//
// Returns:
//   - mgl32.Mat3: the rotation matrix
func RotationZ(heading float32) mgl32.Mat3 {
	c := math32.Cos(heading)
	s := math32.Sin(heading)
	return mgl32.Mat3{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}
}

// Centroid returns the arithmetic mean of a point set, or the zero vector if
// the set is empty.
//
// Parameters:
//   - points: the points to average
//
// Returns:
//   - mgl32.Vec3: the mean point
func Centroid(points []mgl32.Vec3) mgl32.Vec3 {
	if len(points) == 0 {
		return mgl32.Vec3{}
	}
	var sum mgl32.Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float32(len(points)))
}

// RotatePointsAbout rotates every point in pts in place by r about center.
//
// Parameters:
//   - pts: points to rotate, mutated in place
//   - r: 3x3 rotation matrix
//   - center: pivot point
func RotatePointsAbout(pts []mgl32.Vec3, r mgl32.Mat3, center mgl32.Vec3) {
	for i, p := range pts {
		pts[i] = r.Mul3x1(p.Sub(center)).Add(center)
	}
}

// ScalePointsAbout uniformly scales every point in pts in place by factor
// about center.
//
// Parameters:
//   - pts: points to scale, mutated in place
//   - factor: uniform scale factor
//   - center: pivot point
func ScalePointsAbout(pts []mgl32.Vec3, factor float32, center mgl32.Vec3) {
	for i, p := range pts {
		pts[i] = p.Sub(center).Mul(factor).Add(center)
	}
}

// TranslatePoints offsets every point in pts in place by t.
//
// Parameters:
//   - pts: points to translate, mutated in place
//   - t: translation vector
func TranslatePoints(pts []mgl32.Vec3, t mgl32.Vec3) {
	for i, p := range pts {
		pts[i] = p.Add(t)
	}
}

// LatLonToXYZ converts latitude/longitude in degrees to a Cartesian point on
// a sphere of the given radius. Latitude runs -90 (south pole) to 90 (north
// pole); longitude 0-360 with 0 at the prime meridian.
//
// Parameters:
//   - latDeg: latitude in degrees
//   - lonDeg: longitude in degrees
//   - radius: sphere radius
//
// Returns:
//   - mgl32.Vec3: the Cartesian point
func LatLonToXYZ(latDeg, lonDeg, radius float32) mgl32.Vec3 {
	lat := mgl32.DegToRad(latDeg)
	lon := mgl32.DegToRad(lonDeg)
	return mgl32.Vec3{
		radius * math32.Cos(lat) * math32.Cos(lon),
		radius * math32.Cos(lat) * math32.Sin(lon),
		radius * math32.Sin(lat),
	}
}

// Slerp spherically interpolates between two unit vectors by t in [0, 1].
// omega is the precomputed angle between the vectors; callers are expected to
// have rejected coincident and antipodal endpoints where omega is degenerate.
//
// Parameters:
//   - a: start unit vector
//   - b: end unit vector
//   - omega: angle between a and b in radians
//   - t: interpolation parameter in [0, 1]
//
// Returns:
//   - mgl32.Vec3: the interpolated unit vector
func Slerp(a, b mgl32.Vec3, omega, t float32) mgl32.Vec3 {
	sin := math32.Sin(omega)
	return a.Mul(math32.Sin((1 - t) * omega)).Add(b.Mul(math32.Sin(t * omega))).Mul(1 / sin)
}

// Clamp bounds v to the closed interval [lo, hi].
//
// Parameters:
//   - v: value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
