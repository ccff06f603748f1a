package scene_object_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarmvista/vista/common"
	"github.com/swarmvista/vista/engine/mesh"
	"github.com/swarmvista/vista/engine/render_surface"
	"github.com/swarmvista/vista/engine/scene_object"
)

func newTestObject() scene_object.SceneObject {
	return scene_object.NewSceneObject(mesh.NewSegment(mgl32.Vec3{}, mgl32.Vec3{2, 0, 0}))
}

func TestAttachDetach(t *testing.T) {
	surface := render_surface.NewHeadless()
	obj := newTestObject()

	require.NoError(t, obj.Attach(surface))
	assert.Equal(t, 1, surface.ActorCount())

	assert.ErrorIs(t, obj.Attach(surface), scene_object.ErrAlreadyAttached)

	obj.Detach()
	assert.Equal(t, 0, surface.ActorCount())

	// Detach on a detached object is a no-op.
	obj.Detach()
	require.NoError(t, obj.Attach(surface))
}

func TestTransformIsAbsolute(t *testing.T) {
	obj := newTestObject()

	trans := mgl32.Vec3{5, 0, 0}
	obj.Transform(scene_object.Transform{Translation: &trans})
	obj.Transform(scene_object.Transform{Translation: &trans})

	// Applying the same transform twice lands in the same place: transforms
	// restart from the construction-time snapshot.
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, obj.Mesh().Points[0])
	assert.Equal(t, mgl32.Vec3{7, 0, 0}, obj.Mesh().Points[1])
}

func TestTransformRotateScaleAboutDefaultCentroid(t *testing.T) {
	obj := newTestObject()
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, obj.DefaultCentroid())

	factor := float32(2)
	obj.Transform(scene_object.Transform{ScaleFactor: &factor})
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, obj.Mesh().Points[0])
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, obj.Mesh().Points[1])

	// An explicit center overrides the default centroid.
	center := mgl32.Vec3{}
	obj.Transform(scene_object.Transform{ScaleFactor: &factor, Center: &center})
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, obj.Mesh().Points[0])
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, obj.Mesh().Points[1])
}

func TestIncrementalTranslateAccumulates(t *testing.T) {
	obj := newTestObject()
	obj.Translate(mgl32.Vec3{1, 0, 0})
	obj.Translate(mgl32.Vec3{1, 0, 0})
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, obj.Mesh().Points[0])
}

func TestRotateAboutOwnCentroid(t *testing.T) {
	obj := newTestObject()
	obj.Rotate(common.RotationZ(mgl32.DegToRad(180)), nil)
	assert.InDelta(t, 2, obj.Mesh().Points[0].X(), 1e-5)
	assert.InDelta(t, 0, obj.Mesh().Points[1].X(), 1e-5)
}

func TestSetColorResetColor(t *testing.T) {
	obj := scene_object.NewSceneObject(mesh.New(),
		scene_object.WithColor(render_surface.Green))

	obj.SetColor(render_surface.Red)
	assert.Equal(t, render_surface.Red, obj.Style().Color)

	// ResetColor restores the color the object had before the first SetColor,
	// not the package default.
	obj.ResetColor()
	assert.Equal(t, render_surface.Green, obj.Style().Color)

	// ResetColor before any SetColor is a no-op.
	fresh := scene_object.NewSceneObject(mesh.New(), scene_object.WithColor(render_surface.Blue))
	fresh.ResetColor()
	assert.Equal(t, render_surface.Blue, fresh.Style().Color)
}

func TestStylePropagatesToActor(t *testing.T) {
	surface := render_surface.NewHeadless()
	obj := newTestObject()
	require.NoError(t, obj.Attach(surface))

	obj.SetColor(render_surface.Red)
	obj.SetOpacity(0.5)
	obj.SetVisibility(false)

	style := obj.Style()
	assert.Equal(t, render_surface.Red, style.Color)
	assert.Equal(t, float32(0.5), style.Opacity)
	assert.False(t, style.Visible)
}

func TestUpdateMeshPointsMismatchIsIgnored(t *testing.T) {
	obj := newTestObject()
	before := obj.Mesh().Points[1]

	obj.UpdateMeshPoints([]mgl32.Vec3{{9, 9, 9}})
	assert.Equal(t, before, obj.Mesh().Points[1])
	assert.Len(t, obj.Mesh().Points, 2)

	obj.UpdateMeshPoints([]mgl32.Vec3{{1, 1, 1}, {2, 2, 2}})
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, obj.Mesh().Points[1])
}

func TestReplaceGeometryKeepsMeshIdentity(t *testing.T) {
	obj := newTestObject()
	m := obj.Mesh()

	obj.ReplaceGeometry(mesh.NewPolyline([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}))
	assert.Same(t, m, obj.Mesh())
	assert.Len(t, obj.Mesh().Points, 3)
	assert.Equal(t, 2, obj.Mesh().SegmentCount())
}

func TestComputeCentroid(t *testing.T) {
	empty := scene_object.NewSceneObject(mesh.New())
	assert.Equal(t, mgl32.Vec3{}, empty.ComputeCentroid())

	obj := newTestObject()
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, obj.ComputeCentroid())
}

func TestBundleChildRegistry(t *testing.T) {
	b := scene_object.NewSceneObjectBundle()
	require.NoError(t, b.AddChild("icon", newTestObject()))
	require.NoError(t, b.AddChild("trajectory", newTestObject()))

	assert.ErrorIs(t, b.AddChild("icon", newTestObject()), scene_object.ErrDuplicateName)
	assert.Equal(t, []string{"icon", "trajectory"}, b.ChildNames())

	_, err := b.Child("missing")
	assert.ErrorIs(t, err, scene_object.ErrNotFound)

	got, err := b.Child("icon")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestBundleColorBroadcastSkipsUnstyled(t *testing.T) {
	b := scene_object.NewSceneObjectBundle()
	styled := newTestObject()
	plain := scene_object.NewSceneObject(mesh.New(), scene_object.WithColor(render_surface.Green))
	require.NoError(t, b.AddChild("styled", styled))
	require.NoError(t, b.AddChild("axes", plain, scene_object.WithoutColorStyling()))

	b.SetColor(render_surface.Red)
	assert.Equal(t, render_surface.Red, styled.Style().Color)
	assert.Equal(t, render_surface.Green, plain.Style().Color)

	// Visibility broadcasts to every child regardless of styling.
	b.SetVisibility(false)
	assert.False(t, styled.Style().Visible)
	assert.False(t, plain.Style().Visible)
}

func TestBundleSharedCenterScale(t *testing.T) {
	b := scene_object.NewSceneObjectBundle()
	left := scene_object.NewSceneObject(mesh.NewSegment(mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{-1, 0, 0}))
	right := scene_object.NewSceneObject(mesh.NewSegment(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{2, 0, 0}))
	require.NoError(t, b.AddChild("left", left))
	require.NoError(t, b.AddChild("right", right))

	// Bundle centroid is the origin; scaling about it pushes the children
	// apart instead of scaling each about its own centroid.
	b.Scale(2, nil)
	assert.Equal(t, mgl32.Vec3{-4, 0, 0}, left.Mesh().Points[0])
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, right.Mesh().Points[1])
}

func TestBundleAttachDetach(t *testing.T) {
	surface := render_surface.NewHeadless()
	b := scene_object.NewSceneObjectBundle()
	require.NoError(t, b.AddChild("a", newTestObject()))
	require.NoError(t, b.AddChild("b", newTestObject()))

	require.NoError(t, b.Attach(surface))
	assert.Equal(t, 2, surface.ActorCount())
	b.Detach()
	assert.Equal(t, 0, surface.ActorCount())
}

func TestTrajectorySetPoints(t *testing.T) {
	trail := scene_object.NewTrajectory()
	assert.True(t, trail.Mesh().IsEmpty())

	trail.SetPoints([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}})
	assert.Equal(t, 2, trail.Mesh().SegmentCount())

	trail.SetPoints(nil)
	assert.True(t, trail.Mesh().IsEmpty())
}

func TestIcon2DTransformTo(t *testing.T) {
	icon, err := scene_object.NewIcon2D(mesh.IconUnicycle, 1)
	require.NoError(t, err)

	icon.TransformTo(mgl32.Vec3{3, 4, 0}, mgl32.DegToRad(90))
	c := icon.ComputeCentroid()
	assert.InDelta(t, 3, c.X(), 1e-5)
	assert.InDelta(t, 4, c.Y(), 1e-5)

	// Absolute pose: re-posing does not accumulate.
	icon.TransformTo(mgl32.Vec3{3, 4, 0}, mgl32.DegToRad(90))
	c2 := icon.ComputeCentroid()
	assert.InDelta(t, c.X(), c2.X(), 1e-5)
	assert.InDelta(t, c.Y(), c2.Y(), 1e-5)
}

func TestIconScaleAppliedBeforeSnapshot(t *testing.T) {
	icon, err := scene_object.NewIcon2D(mesh.IconCar, 2, scene_object.WithColor(render_surface.Blue))
	require.NoError(t, err)

	icon.TransformTo(mgl32.Vec3{10, 0, 0}, 0)
	min, max := icon.Mesh().Bounds()
	// The icon normalizes to a unit cube, so scale 2 keeps a 2-wide extent
	// through absolute pose updates.
	assert.InDelta(t, 2, max.X()-min.X(), 1e-5)
}

func TestVectorFieldLengthValidation(t *testing.T) {
	field := scene_object.NewVectorField(2, 1)
	assert.Equal(t, []string{"vector_0", "vector_1"}, field.ChildNames())

	err := field.UpdateVectors(
		[]mgl32.Vec3{{0, 0, 0}},
		[]mgl32.Vec3{{1, 0, 0}},
	)
	assert.Error(t, err)

	err = field.UpdateVectors(
		[]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}},
		[]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}},
	)
	assert.NoError(t, err)
}

func TestAxesTriadChildren(t *testing.T) {
	triad := scene_object.NewAxesTriad(1, 2)
	assert.Equal(t, []string{"x", "y", "z"}, triad.ChildNames())

	triad.TransformTo(mgl32.Vec3{1, 2, 3}, mgl32.Ident3())
	x, err := triad.Child("x")
	require.NoError(t, err)
	so, ok := x.(scene_object.SceneObject)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, so.Mesh().Points[0])
	assert.Equal(t, mgl32.Vec3{2, 2, 3}, so.Mesh().Points[1])
}

func TestSphereGridGeodesics(t *testing.T) {
	grid := scene_object.NewSphereGrid(1, 0.8)
	assert.Contains(t, grid.ChildNames(), "shell")

	require.NoError(t, grid.AddGeodesic("route", [2]float32{0, 0}, [2]float32{0, 90}, false))
	assert.ErrorIs(t, grid.AddGeodesic("route", [2]float32{0, 0}, [2]float32{45, 45}, false),
		scene_object.ErrDuplicateName)
	assert.Error(t, grid.AddGeodesic("bad", [2]float32{0, 0}, [2]float32{0, 180}, true))
}

func TestRobot2DPoseAndTrail(t *testing.T) {
	robot, err := scene_object.NewRobot2D(mesh.IconDefault, scene_object.DefaultRobotStyle())
	require.NoError(t, err)
	assert.Equal(t, []string{"icon", "trajectory"}, robot.ChildNames())

	robot.SetPose(mgl32.Vec3{2, 3, 0}, 0)
	icon, err := robot.Child("icon")
	require.NoError(t, err)
	c := icon.ComputeCentroid()
	assert.InDelta(t, 2, c.X(), 1e-4)
	assert.InDelta(t, 3, c.Y(), 1e-4)

	robot.SetTrail([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}})
	trail, err := robot.Child("trajectory")
	require.NoError(t, err)
	so, ok := trail.(scene_object.SceneObject)
	require.True(t, ok)
	assert.Equal(t, 1, so.Mesh().SegmentCount())
}

func TestRobot3DAxesFollowPose(t *testing.T) {
	robot, err := scene_object.NewRobot3D(mesh.IconDefault, scene_object.DefaultRobotStyle())
	require.NoError(t, err)
	assert.Equal(t, []string{"icon", "trajectory", "axes"}, robot.ChildNames())

	robot.SetPose(mgl32.Vec3{1, 1, 1}, mgl32.Ident3())
	axes, err := robot.Child("axes")
	require.NoError(t, err)
	triad, ok := axes.(scene_object.AxesTriad)
	require.True(t, ok)

	x, err := triad.Child("x")
	require.NoError(t, err)
	so := x.(scene_object.SceneObject)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, so.Mesh().Points[0])
}
