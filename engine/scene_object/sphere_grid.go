package scene_object

import (
	"github.com/swarmvista/vista/engine/mesh"
	"github.com/swarmvista/vista/engine/render_surface"
)

// SphereGrid is the attitude-sphere backdrop: a translucent shell, a fine
// latitude/longitude grid, and any number of named geodesic arcs drawn on
// the surface.
type SphereGrid interface {
	SceneObjectBundle

	// AddGeodesic draws the great-circle arc between two latitude/longitude
	// coordinates on the sphere.
	//
	// Parameters:
	//   - name: the arc's child name within the bundle
	//   - start: the start coordinate as [lat, lon] in degrees
	//   - end: the end coordinate as [lat, lon] in degrees
	//   - dashed: true to draw the arc dashed
	//
	// Returns:
	//   - error: error if the endpoints are coincident or antipodal, or the
	//     name is taken
	AddGeodesic(name string, start, end [2]float32, dashed bool) error
}

type sphereGrid struct {
	SceneObjectBundle
	radius     float32
	dashLength int
	arcStyle   render_surface.Style
}

var _ SphereGrid = &sphereGrid{}

// NewSphereGrid creates the attitude-sphere backdrop. The shell and grid are
// excluded from broadcast color styling so focus highlighting only recolors
// the arcs layered on top.
//
// Parameters:
//   - radius: the sphere radius
//   - gridLineWidth: the fine grid line width
//
// Returns:
//   - SphereGrid: the new backdrop
func NewSphereGrid(radius, gridLineWidth float32) SphereGrid {
	g := &sphereGrid{
		SceneObjectBundle: NewSceneObjectBundle(),
		radius:            radius,
		dashLength:        4,
		arcStyle: render_surface.DefaultStyle().
			WithColor(render_surface.Black).
			WithLineWidth(gridLineWidth * 2),
	}

	shell := NewSceneObject(
		mesh.NewSphereShell(radius*0.995, 24, 48),
		WithColor(render_surface.LightGrey),
		WithOpacity(0.2),
	)
	if err := g.AddChild("shell", shell, WithoutColorStyling()); err != nil {
		panic(err)
	}

	grid := NewSceneObject(
		mesh.NewSphereGrid(radius, 30, 30, 60),
		WithColor(render_surface.Grey),
		WithLineWidth(gridLineWidth),
	)
	if err := g.AddChild("grid", grid, WithoutColorStyling()); err != nil {
		panic(err)
	}

	equator := NewSceneObject(
		mesh.NewSphereGrid(radius, 90, 360, 90),
		WithColor(render_surface.Black),
		WithLineWidth(gridLineWidth*1.5),
	)
	if err := g.AddChild("equator", equator, WithoutColorStyling()); err != nil {
		panic(err)
	}

	return g
}

func (g *sphereGrid) AddGeodesic(name string, start, end [2]float32, dashed bool) error {
	arc, err := mesh.NewGeodesic(start, end, g.radius, 64)
	if err != nil {
		return err
	}
	if dashed {
		arc = mesh.Dashed(arc, g.dashLength)
	}
	return g.AddChild(name, NewSceneObject(arc, WithStyle(g.arcStyle)))
}
