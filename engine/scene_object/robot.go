package scene_object

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/engine/mesh"
	"github.com/swarmvista/vista/engine/render_surface"
)

// RobotStyle collects the per-robot styling a canvas derives from its
// configuration.
type RobotStyle struct {
	Color             render_surface.Color
	IconScale         float32
	TrajectoryWidth   float32
	TrajectoryOpacity float32
	AxesSize          float32
	AxesLineWidth     float32
}

// DefaultRobotStyle returns the styling robots are created with when the
// caller supplies nothing.
//
// Returns:
//   - RobotStyle: the default robot styling
func DefaultRobotStyle() RobotStyle {
	return RobotStyle{
		Color:             render_surface.Blue,
		IconScale:         1,
		TrajectoryWidth:   5,
		TrajectoryOpacity: 0.6,
		AxesSize:          1,
		AxesLineWidth:     6,
	}
}

// Robot2D is one planar robot: an icon posed by position and heading plus
// the trajectory tail behind it.
type Robot2D interface {
	SceneObjectBundle

	// SetPose places the icon.
	//
	// Parameters:
	//   - position: the icon centroid position
	//   - heading: the heading angle in radians about +Z
	SetPose(position mgl32.Vec3, heading float32)

	// SetTrail rebuilds the trajectory through the given points.
	//
	// Parameters:
	//   - points: the path points in order
	SetTrail(points []mgl32.Vec3)
}

type robot2D struct {
	SceneObjectBundle
	icon  Icon2D
	trail Trajectory
}

var _ Robot2D = &robot2D{}

// NewRobot2D creates a planar robot with the given icon kind.
//
// Parameters:
//   - kind: the icon kind
//   - style: the robot styling
//
// Returns:
//   - Robot2D: the new robot
//   - error: error if the icon kind is unknown
func NewRobot2D(kind mesh.IconKind, style RobotStyle) (Robot2D, error) {
	icon, err := NewIcon2D(kind, style.IconScale, WithColor(style.Color))
	if err != nil {
		return nil, err
	}
	trail := NewTrajectory(
		WithColor(style.Color),
		WithLineWidth(style.TrajectoryWidth),
		WithOpacity(style.TrajectoryOpacity),
	)
	r := &robot2D{
		SceneObjectBundle: NewSceneObjectBundle(),
		icon:              icon,
		trail:             trail,
	}
	if err := r.AddChild("icon", icon); err != nil {
		return nil, err
	}
	if err := r.AddChild("trajectory", trail); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *robot2D) SetPose(position mgl32.Vec3, heading float32) {
	r.icon.TransformTo(position, heading)
}

func (r *robot2D) SetTrail(points []mgl32.Vec3) {
	r.trail.SetPoints(points)
}

// Robot3D is one spatial robot: an icon posed by position and rotation, the
// trajectory tail, and a body-frame axes triad. The triad keeps its own axis
// colors when the robot is recolored.
type Robot3D interface {
	SceneObjectBundle

	// SetPose places the icon and axes.
	//
	// Parameters:
	//   - position: the icon centroid position
	//   - rotation: the body orientation as a rotation matrix
	SetPose(position mgl32.Vec3, rotation mgl32.Mat3)

	// SetTrail rebuilds the trajectory through the given points.
	//
	// Parameters:
	//   - points: the path points in order
	SetTrail(points []mgl32.Vec3)
}

type robot3D struct {
	SceneObjectBundle
	icon  Icon3D
	trail Trajectory
	axes  AxesTriad
}

var _ Robot3D = &robot3D{}

// NewRobot3D creates a spatial robot with the given icon kind.
//
// Parameters:
//   - kind: the icon kind
//   - style: the robot styling
//
// Returns:
//   - Robot3D: the new robot
//   - error: error if the icon kind is unknown
func NewRobot3D(kind mesh.IconKind, style RobotStyle) (Robot3D, error) {
	icon, err := NewIcon3D(kind, style.IconScale, WithColor(style.Color))
	if err != nil {
		return nil, err
	}
	trail := NewTrajectory(
		WithColor(style.Color),
		WithLineWidth(style.TrajectoryWidth),
		WithOpacity(style.TrajectoryOpacity),
	)
	axes := NewAxesTriad(style.AxesSize, style.AxesLineWidth)
	r := &robot3D{
		SceneObjectBundle: NewSceneObjectBundle(),
		icon:              icon,
		trail:             trail,
		axes:              axes,
	}
	if err := r.AddChild("icon", icon); err != nil {
		return nil, err
	}
	if err := r.AddChild("trajectory", trail); err != nil {
		return nil, err
	}
	if err := r.AddChild("axes", axes, WithoutColorStyling()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *robot3D) SetPose(position mgl32.Vec3, rotation mgl32.Mat3) {
	r.icon.TransformTo(position, rotation)
	r.axes.TransformTo(position, rotation)
}

func (r *robot3D) SetTrail(points []mgl32.Vec3) {
	r.trail.SetPoints(points)
}
