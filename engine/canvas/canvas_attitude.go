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

// AttitudeCanvas shows the orientation of one robot at a time as a
// body-frame triad inside a gridded sphere. Which robot is shown follows
// the shared focus context, and CycleFocus advances it.
type AttitudeCanvas interface {
	Canvas

	// CycleFocus focuses the next robot, wrapping past the last one. A
	// no-op before the scene is built.
	CycleFocus()
}

type attitudeCanvas struct {
	*canvasBase
	cfg    config.Render
	fctx   focus.Context
	args   Args
	triads []scene_object.AxesTriad
}

var _ AttitudeCanvas = &attitudeCanvas{}

func newAttitudeCanvas(surface render_surface.RenderSurface, cfg config.Render, fctx focus.Context, args Args) (*attitudeCanvas, error) {
	c := &attitudeCanvas{
		canvasBase: newCanvasBase(KindAttitude3D, surface),
		cfg:        cfg,
		fctx:       fctx,
		args:       args,
	}
	_ = surface.SetCameraPreset(render_surface.PresetIso)
	surface.SetBackground(render_surface.White)

	// The gridded sphere outlives log reloads; ResetScene rebuilds only
	// the per-robot triads.
	sphere := scene_object.NewSphereGrid(args.SphereRadius, cfg.GridLineWidth)
	if err := c.AddBundle("sphere_grid", sphere); err != nil {
		return nil, err
	}
	fctx.OnChange(c.onFocusChange)
	return c, nil
}

// onFocusChange swaps which robot's triad is visible.
func (c *attitudeCanvas) onFocusChange(previous, current int) {
	c.mu.Lock()
	triads := c.triads
	c.mu.Unlock()

	if previous >= 0 && previous < len(triads) {
		triads[previous].SetVisibility(false)
	}
	if current >= 0 && current < len(triads) {
		triads[current].SetVisibility(true)
	}
}

func (c *attitudeCanvas) ResetScene(data *simdata.Dataset) error {
	rotations, err := rotationSeries(data, c.args.RotationLabel)
	if err != nil {
		return err
	}
	n := rotations.Shape[1]

	c.mu.Lock()
	old := len(c.triads)
	c.triads = nil
	c.state = StateUninitialized
	c.mu.Unlock()
	for i := 0; i < old; i++ {
		c.RemoveByPrefix(fmt.Sprintf("attitude_%d", i))
	}

	triads := make([]scene_object.AxesTriad, n)
	for i := 0; i < n; i++ {
		triad := scene_object.NewAxesTriad(c.args.SphereRadius, c.cfg.AxesLineWidth)
		triad.SetVisibility(false)
		if err := c.AddBundle(fmt.Sprintf("attitude_%d", i), triad); err != nil {
			return err
		}
		triads[i] = triad
	}

	c.mu.Lock()
	c.triads = triads
	c.state = StateSceneBuilt
	c.mu.Unlock()

	// This view always shows somebody: default to the first robot when
	// nothing is focused yet.
	if c.fctx.Focused() == focus.None && n > 0 {
		c.fctx.SetFocused(0)
	} else {
		c.onFocusChange(focus.None, c.fctx.Focused())
	}
	return nil
}

func (c *attitudeCanvas) UpdateAllSceneObjects(data *simdata.Dataset, frame int) error {
	if c.State() == StateUninitialized {
		return ErrSceneNotInitialized
	}

	c.mu.Lock()
	triads := c.triads
	c.mu.Unlock()

	rotations, err := rotationSeries(data, c.args.RotationLabel)
	if err != nil {
		return err
	}
	if rotations.Shape[1] != len(triads) {
		return &ShapeError{
			Series: c.args.RotationLabel,
			Want:   fmt.Sprintf("[frames, %d, 9]", len(triads)),
			Got:    rotations.Shape,
		}
	}
	if frame < 0 || frame >= rotations.Frames() {
		return fmt.Errorf("frame %d out of range [0, %d)", frame, rotations.Frames())
	}

	for i, triad := range triads {
		rot, _ := rotations.Rot3At(frame, i)
		triad.TransformTo(mgl32.Vec3{}, rot)
	}

	c.setState(StatePopulated)
	return nil
}

func (c *attitudeCanvas) CycleFocus() {
	c.mu.Lock()
	n := len(c.triads)
	c.mu.Unlock()

	if n == 0 {
		return
	}
	current := c.fctx.Focused()
	c.fctx.SetFocused((current + 1) % n)
}

// rotationSeries resolves and shape-checks the rotation series under the
// configured label.
func rotationSeries(data *simdata.Dataset, label string) (*simdata.Series, error) {
	rotations, err := data.Get(label)
	if err != nil {
		return nil, &MissingLabelError{Label: label}
	}
	if len(rotations.Shape) != 3 || rotations.Shape[2] != 9 {
		return nil, &ShapeError{Series: label, Want: "[frames, robots, 9]", Got: rotations.Shape}
	}
	return rotations, nil
}
