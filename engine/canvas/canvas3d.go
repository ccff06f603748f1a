package canvas

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/engine/config"
	"github.com/swarmvista/vista/engine/focus"
	"github.com/swarmvista/vista/engine/render_surface"
	"github.com/swarmvista/vista/engine/scene_object"
	"github.com/swarmvista/vista/engine/simdata"
)

// canvas3D draws the swarm in space: one icon posed by position and rotation
// per robot, the trajectory tail, and a body-frame axes triad. Positions
// come from the configured position series ("p" by default) and
// orientations from the optional rotation series ("R" by default).
type canvas3D struct {
	*canvasBase
	cfg    config.Render
	fctx   focus.Context
	args   Args
	grid   ReferenceGrid
	robots []scene_object.Robot3D
}

func newCanvas3D(surface render_surface.RenderSurface, cfg config.Render, fctx focus.Context, args Args) (*canvas3D, error) {
	c := &canvas3D{
		canvasBase: newCanvasBase(KindCanvas3D, surface),
		cfg:        cfg,
		fctx:       fctx,
		args:       args,
	}
	_ = surface.SetCameraPreset(render_surface.PresetIso)
	surface.SetBackground(render_surface.White)

	// Scene furniture outlives log reloads; ResetScene rebuilds only the
	// per-robot objects.
	grid := NewReferenceGrid(args.GridExtent, 3)
	if err := c.AddObject("reference_grid", grid); err != nil {
		return nil, err
	}
	c.grid = grid
	fctx.OnChange(c.onFocusChange)
	return c, nil
}

func (c *canvas3D) onFocusChange(previous, current int) {
	c.mu.Lock()
	robots := c.robots
	c.mu.Unlock()

	if previous >= 0 && previous < len(robots) {
		robots[previous].ResetColor()
	}
	if current >= 0 && current < len(robots) {
		robots[current].SetColor(c.cfg.HighlightColor)
	}
}

func (c *canvas3D) robotStyle() scene_object.RobotStyle {
	return scene_object.RobotStyle{
		Color:             c.cfg.RobotColor,
		IconScale:         c.cfg.IconScale,
		TrajectoryWidth:   c.cfg.TrajectoryWidth,
		TrajectoryOpacity: c.cfg.TrajectoryOpacity,
		AxesSize:          c.cfg.IconScale * 1.5,
		AxesLineWidth:     c.cfg.AxesLineWidth,
	}
}

func (c *canvas3D) ResetScene(data *simdata.Dataset) error {
	positions, err := positionSeries(data, c.args.PositionLabel)
	if err != nil {
		return err
	}
	n := positions.Shape[1]

	c.mu.Lock()
	old := len(c.robots)
	c.robots = nil
	c.state = StateUninitialized
	c.mu.Unlock()
	for i := 0; i < old; i++ {
		c.RemoveByPrefix(fmt.Sprintf("robot_%d", i))
	}

	robots := make([]scene_object.Robot3D, n)
	for i := 0; i < n; i++ {
		r, err := scene_object.NewRobot3D(c.args.Icon, c.robotStyle())
		if err != nil {
			return err
		}
		if err := c.AddBundle(fmt.Sprintf("robot_%d", i), r); err != nil {
			return err
		}
		robots[i] = r
	}

	c.mu.Lock()
	c.robots = robots
	c.state = StateSceneBuilt
	c.mu.Unlock()

	if f := c.fctx.Focused(); f >= 0 && f < n {
		robots[f].SetColor(c.cfg.HighlightColor)
	}
	return nil
}

func (c *canvas3D) UpdateAllSceneObjects(data *simdata.Dataset, frame int) error {
	if c.State() == StateUninitialized {
		return ErrSceneNotInitialized
	}

	c.mu.Lock()
	robots := c.robots
	grid := c.grid
	c.mu.Unlock()

	positions, rotations, err := validateSpatialFrame(data, frame, len(robots), c.args)
	if err != nil {
		return err
	}

	centroid := mgl32.Vec3{}
	for i, r := range robots {
		pos, _ := positions.Vec3At(frame, i)
		rot := mgl32.Ident3()
		if rotations != nil {
			rot, _ = rotations.Rot3At(frame, i)
		}
		r.SetPose(pos, rot)
		r.SetTrail(c.tail(positions, frame, i))
		centroid = centroid.Add(pos)
	}
	if len(robots) > 0 {
		centroid = centroid.Mul(1 / float32(len(robots)))
	}
	grid.Recenter(centroid, c.surface)

	c.setState(StatePopulated)
	return nil
}

func (c *canvas3D) tail(positions *simdata.Series, frame, robot int) []mgl32.Vec3 {
	points, err := positions.PrefixVec3(frame, robot)
	if err != nil {
		return nil
	}
	if c.cfg.TailLength > 0 && len(points) > c.cfg.TailLength {
		points = points[len(points)-c.cfg.TailLength:]
	}
	return points
}

// validateSpatialFrame checks everything a spatial frame update reads
// before any scene object mutates.
func validateSpatialFrame(data *simdata.Dataset, frame, robots int, args Args) (*simdata.Series, *simdata.Series, error) {
	positions, err := positionSeries(data, args.PositionLabel)
	if err != nil {
		return nil, nil, err
	}
	if positions.Shape[1] != robots {
		return nil, nil, &ShapeError{
			Series: args.PositionLabel,
			Want:   fmt.Sprintf("[frames, %d, dims]", robots),
			Got:    positions.Shape,
		}
	}
	if frame < 0 || frame >= positions.Frames() {
		return nil, nil, fmt.Errorf("frame %d out of range [0, %d)", frame, positions.Frames())
	}

	var rotations *simdata.Series
	if data.Has(args.RotationLabel) {
		rotations, _ = data.Get(args.RotationLabel)
		if len(rotations.Shape) != 3 || rotations.Shape[1] != robots || rotations.Shape[2] != 9 {
			return nil, nil, &ShapeError{
				Series: args.RotationLabel,
				Want:   fmt.Sprintf("[frames, %d, 9]", robots),
				Got:    rotations.Shape,
			}
		}
	}
	return positions, rotations, nil
}
