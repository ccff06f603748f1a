package canvas

import (
	"github.com/swarmvista/vista/engine/config"
	"github.com/swarmvista/vista/engine/focus"
	"github.com/swarmvista/vista/engine/mesh"
	"github.com/swarmvista/vista/engine/render_surface"
)

// Kind names one of the canvas implementations. The set is closed: layouts
// select a kind by name and New refuses anything else.
type Kind string

const (
	// KindCanvas2D is the planar swarm view.
	KindCanvas2D Kind = "canvas_2d"
	// KindCanvas3D is the spatial swarm view.
	KindCanvas3D Kind = "canvas_3d"
	// KindAttitude3D is the attitude-sphere view of one focused robot.
	KindAttitude3D Kind = "attitude_3d"
)

// Args carries the per-canvas settings a layout may override.
type Args struct {
	// Icon is the robot icon kind.
	Icon mesh.IconKind `yaml:"icon"`
	// GridExtent is the reference grid half extent.
	GridExtent float32 `yaml:"grid_extent"`
	// SphereRadius is the attitude sphere radius.
	SphereRadius float32 `yaml:"sphere_radius"`
	// PositionLabel names the dataset series robot positions are read
	// from.
	PositionLabel string `yaml:"position_label"`
	// HeadingLabel names the planar heading series.
	HeadingLabel string `yaml:"heading_label"`
	// RotationLabel names the rotation matrix series.
	RotationLabel string `yaml:"rotation_label"`
}

// DefaultArgs returns the canvas argument defaults.
//
// Returns:
//   - Args: the defaults
func DefaultArgs() Args {
	return Args{
		Icon:          mesh.IconDefault,
		GridExtent:    10,
		SphereRadius:  1,
		PositionLabel: "p",
		HeadingLabel:  "theta",
		RotationLabel: "R",
	}
}

// New creates a canvas of the given kind drawing through a surface.
//
// Parameters:
//   - kind: the canvas kind
//   - surface: the surface to draw through
//   - cfg: the rendering configuration
//   - fctx: the focus context shared across the grid
//   - args: the layout's canvas arguments
//
// Returns:
//   - Canvas: the new canvas
//   - error: a ConfigError if the kind is unknown
func New(kind Kind, surface render_surface.RenderSurface, cfg config.Render, fctx focus.Context, args Args) (Canvas, error) {
	switch kind {
	case KindCanvas2D:
		return newCanvas2D(surface, cfg, fctx, args)
	case KindCanvas3D:
		return newCanvas3D(surface, cfg, fctx, args)
	case KindAttitude3D:
		return newAttitudeCanvas(surface, cfg, fctx, args)
	default:
		return nil, &ConfigError{Field: "kind", Reason: "unknown canvas kind " + string(kind)}
	}
}

// Kinds returns every canvas kind New accepts.
//
// Returns:
//   - []Kind: the supported kinds
func Kinds() []Kind {
	return []Kind{KindCanvas2D, KindCanvas3D, KindAttitude3D}
}
