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

// canvas2D draws the swarm in the plane: one icon posed by position and
// heading per robot, the trajectory tail behind it, and a reference grid
// holding the camera framing steady. Positions come from the configured
// position series ("p" by default) and headings from the optional heading
// series ("theta" by default).
type canvas2D struct {
	*canvasBase
	cfg    config.Render
	fctx   focus.Context
	args   Args
	grid   ReferenceGrid
	robots []scene_object.Robot2D
}

func newCanvas2D(surface render_surface.RenderSurface, cfg config.Render, fctx focus.Context, args Args) (*canvas2D, error) {
	c := &canvas2D{
		canvasBase: newCanvasBase(KindCanvas2D, surface),
		cfg:        cfg,
		fctx:       fctx,
		args:       args,
	}
	_ = surface.SetCameraPreset(render_surface.PresetTopDown)
	surface.SetBackground(render_surface.White)

	// Scene furniture outlives log reloads; ResetScene rebuilds only the
	// per-robot objects.
	grid := NewReferenceGrid(args.GridExtent, 2)
	if err := c.AddObject("reference_grid", grid); err != nil {
		return nil, err
	}
	c.grid = grid
	fctx.OnChange(c.onFocusChange)
	return c, nil
}

// onFocusChange restores the previously focused robot's color and paints
// the newly focused one with the highlight color.
func (c *canvas2D) onFocusChange(previous, current int) {
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

func (c *canvas2D) robotStyle() scene_object.RobotStyle {
	return scene_object.RobotStyle{
		Color:             c.cfg.RobotColor,
		IconScale:         c.cfg.IconScale,
		TrajectoryWidth:   c.cfg.TrajectoryWidth,
		TrajectoryOpacity: c.cfg.TrajectoryOpacity,
		AxesSize:          c.cfg.IconScale,
		AxesLineWidth:     c.cfg.AxesLineWidth,
	}
}

func (c *canvas2D) ResetScene(data *simdata.Dataset) error {
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

	robots := make([]scene_object.Robot2D, n)
	for i := 0; i < n; i++ {
		r, err := scene_object.NewRobot2D(c.args.Icon, c.robotStyle())
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

	// A robot focused before the rebuild keeps its highlight.
	if f := c.fctx.Focused(); f >= 0 && f < n {
		robots[f].SetColor(c.cfg.HighlightColor)
	}
	return nil
}

func (c *canvas2D) UpdateAllSceneObjects(data *simdata.Dataset, frame int) error {
	if c.State() == StateUninitialized {
		return ErrSceneNotInitialized
	}

	c.mu.Lock()
	robots := c.robots
	grid := c.grid
	c.mu.Unlock()

	positions, headings, err := validatePlanarFrame(data, frame, len(robots), c.args)
	if err != nil {
		return err
	}

	centroid := mgl32.Vec3{}
	for i, r := range robots {
		pos, _ := positions.Vec3At(frame, i)
		heading := float32(0)
		if headings != nil {
			heading, _ = headings.HeadingAt(frame, i)
		}
		r.SetPose(pos, heading)
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

// tail collects the trajectory points behind the current frame, capped to
// the configured tail length. The current frame itself is excluded.
func (c *canvas2D) tail(positions *simdata.Series, frame, robot int) []mgl32.Vec3 {
	points, err := positions.PrefixVec3(frame, robot)
	if err != nil {
		return nil
	}
	if c.cfg.TailLength > 0 && len(points) > c.cfg.TailLength {
		points = points[len(points)-c.cfg.TailLength:]
	}
	return points
}

// positionSeries resolves and shape-checks the position series under the
// configured label.
func positionSeries(data *simdata.Dataset, label string) (*simdata.Series, error) {
	positions, err := data.Get(label)
	if err != nil {
		return nil, &MissingLabelError{Label: label}
	}
	if len(positions.Shape) != 3 || positions.Shape[2] < 1 || positions.Shape[2] > 3 {
		return nil, &ShapeError{Series: label, Want: "[frames, robots, dims]", Got: positions.Shape}
	}
	return positions, nil
}

// validatePlanarFrame checks everything a planar frame update reads before
// any scene object mutates: the position series shape, the robot count the
// scene was built for, the frame range, and the optional heading series.
func validatePlanarFrame(data *simdata.Dataset, frame, robots int, args Args) (*simdata.Series, *simdata.Series, error) {
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

	var headings *simdata.Series
	if data.Has(args.HeadingLabel) {
		headings, _ = data.Get(args.HeadingLabel)
		if len(headings.Shape) != 2 || headings.Shape[1] != robots {
			return nil, nil, &ShapeError{
				Series: args.HeadingLabel,
				Want:   fmt.Sprintf("[frames, %d]", robots),
				Got:    headings.Shape,
			}
		}
	}
	return positions, headings, nil
}
