package common_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/swarmvista/vista/common"
)

func TestRotationZ(t *testing.T) {
	r := common.RotationZ(mgl32.DegToRad(90))
	got := r.Mul3x1(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, got.X(), 1e-6)
	assert.InDelta(t, 1, got.Y(), 1e-6)
	assert.InDelta(t, 0, got.Z(), 1e-6)

	// Z is unchanged by a rotation about Z.
	got = common.RotationZ(1.23).Mul3x1(mgl32.Vec3{0, 0, 5})
	assert.InDelta(t, 5, got.Z(), 1e-6)
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{}, common.Centroid(nil))
	c := common.Centroid([]mgl32.Vec3{{0, 0, 0}, {2, 0, 0}})
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c)
}

func TestRotatePointsAbout(t *testing.T) {
	pts := []mgl32.Vec3{{2, 1, 0}}
	common.RotatePointsAbout(pts, common.RotationZ(mgl32.DegToRad(180)), mgl32.Vec3{1, 1, 0})
	assert.InDelta(t, 0, pts[0].X(), 1e-6)
	assert.InDelta(t, 1, pts[0].Y(), 1e-6)
}

func TestScalePointsAbout(t *testing.T) {
	pts := []mgl32.Vec3{{3, 0, 0}}
	common.ScalePointsAbout(pts, 2, mgl32.Vec3{1, 0, 0})
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, pts[0])
}

func TestTranslatePoints(t *testing.T) {
	pts := []mgl32.Vec3{{1, 2, 3}, {0, 0, 0}}
	common.TranslatePoints(pts, mgl32.Vec3{-1, 0, 1})
	assert.Equal(t, mgl32.Vec3{0, 2, 4}, pts[0])
	assert.Equal(t, mgl32.Vec3{-1, 0, 1}, pts[1])
}

func TestLatLonToXYZ(t *testing.T) {
	north := common.LatLonToXYZ(90, 0, 2)
	assert.InDelta(t, 0, north.X(), 1e-5)
	assert.InDelta(t, 0, north.Y(), 1e-5)
	assert.InDelta(t, 2, north.Z(), 1e-5)

	equator := common.LatLonToXYZ(0, 90, 1)
	assert.InDelta(t, 0, equator.X(), 1e-6)
	assert.InDelta(t, 1, equator.Y(), 1e-6)
	assert.InDelta(t, 0, equator.Z(), 1e-6)
}

func TestSlerpEndpoints(t *testing.T) {
	a := mgl32.Vec3{1, 0, 0}
	b := mgl32.Vec3{0, 1, 0}
	omega := mgl32.DegToRad(90)

	start := common.Slerp(a, b, omega, 0)
	assert.InDelta(t, 1, start.X(), 1e-6)

	mid := common.Slerp(a, b, omega, 0.5)
	assert.InDelta(t, 1, mid.Len(), 1e-6)
	assert.InDelta(t, mid.X(), mid.Y(), 1e-6)

	end := common.Slerp(a, b, omega, 1)
	assert.InDelta(t, 1, end.Y(), 1e-6)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0), common.Clamp(-1, 0, 1))
	assert.Equal(t, float32(1), common.Clamp(5, 0, 1))
	assert.Equal(t, float32(0.5), common.Clamp(0.5, 0, 1))
}
