package grid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/swarmvista/vista/engine/canvas"
	"github.com/swarmvista/vista/engine/config"
	"github.com/swarmvista/vista/engine/focus"
	"github.com/swarmvista/vista/engine/render_surface"
)

// CanvasSpec places one canvas in the grid.
type CanvasSpec struct {
	Kind     canvas.Kind `yaml:"kind"`
	Position [2]int      `yaml:"position"`
	Args     canvas.Args `yaml:"args"`
}

// Layout is the declarative grid description loaded from a layout file:
// the grid shape and one canvas per cell. Layout files are YAML, which
// also accepts the JSON layouts older runs were saved with.
type Layout struct {
	Shape    [2]int       `yaml:"shape"`
	Canvases []CanvasSpec `yaml:"canvases"`
}

// DefaultLayout returns a single planar canvas filling the window.
//
// Returns:
//   - *Layout: the default layout
func DefaultLayout() *Layout {
	return &Layout{
		Shape: [2]int{1, 1},
		Canvases: []CanvasSpec{
			{Kind: canvas.KindCanvas2D, Position: [2]int{0, 0}},
		},
	}
}

// LoadLayout reads a layout file.
//
// Parameters:
//   - path: the layout file path
//
// Returns:
//   - *Layout: the loaded layout
//   - error: error if the file cannot be read or parsed
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout %s: %w", path, err)
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout %s: %w", path, err)
	}
	return &l, nil
}

// SurfaceFactory creates the render surface for one grid cell's viewport.
type SurfaceFactory func(viewport render_surface.Viewport) render_surface.RenderSurface

// Build instantiates the layout: one surface and canvas per cell, all
// sharing a fresh focus context.
//
// Parameters:
//   - factory: creates each cell's surface
//   - cfg: the rendering configuration passed to every canvas
//
// Returns:
//   - Grid: the built grid
//   - error: error if the layout shape or cell placements are invalid
func (l *Layout) Build(factory SurfaceFactory, cfg config.Render) (Grid, error) {
	rows, cols := l.Shape[0], l.Shape[1]
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("layout shape %dx%d is empty", rows, cols)
	}
	if len(l.Canvases) != rows*cols {
		return nil, fmt.Errorf("layout shape %dx%d needs %d canvases, got %d", rows, cols, rows*cols, len(l.Canvases))
	}

	fctx := focus.NewContext()
	canvases := make([]canvas.Canvas, rows*cols)
	for _, spec := range l.Canvases {
		row, col := spec.Position[0], spec.Position[1]
		if row < 0 || row >= rows || col < 0 || col >= cols {
			return nil, fmt.Errorf("canvas position (%d, %d) out of range %dx%d", row, col, rows, cols)
		}
		cell := row*cols + col
		if canvases[cell] != nil {
			return nil, fmt.Errorf("two canvases placed at (%d, %d)", row, col)
		}

		viewport := render_surface.Viewport{
			X:      float32(col) / float32(cols),
			Y:      1 - float32(row+1)/float32(rows),
			Width:  1 / float32(cols),
			Height: 1 / float32(rows),
		}
		c, err := canvas.New(spec.Kind, factory(viewport), cfg, fctx, mergeArgs(spec.Args))
		if err != nil {
			return nil, err
		}
		canvases[cell] = c
	}

	return NewGrid(rows, cols, canvases, fctx)
}

// mergeArgs fills unset canvas arguments with the defaults, so layout files
// only name what they change.
func mergeArgs(args canvas.Args) canvas.Args {
	defaults := canvas.DefaultArgs()
	if args.Icon == "" {
		args.Icon = defaults.Icon
	}
	if args.GridExtent <= 0 {
		args.GridExtent = defaults.GridExtent
	}
	if args.SphereRadius <= 0 {
		args.SphereRadius = defaults.SphereRadius
	}
	if args.PositionLabel == "" {
		args.PositionLabel = defaults.PositionLabel
	}
	if args.HeadingLabel == "" {
		args.HeadingLabel = defaults.HeadingLabel
	}
	if args.RotationLabel == "" {
		args.RotationLabel = defaults.RotationLabel
	}
	return args
}
