package canvas

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/engine/mesh"
	"github.com/swarmvista/vista/engine/render_surface"
	"github.com/swarmvista/vista/engine/scene_object"
)

// ReferenceGrid is the invisible extent marker that keeps a canvas's
// displayed bounds stable while robots move. It follows the swarm centroid
// in whole-cell steps, so the camera framing shifts discretely instead of
// jittering every frame.
type ReferenceGrid interface {
	scene_object.SceneObject

	// Recenter moves the grid so its center lands on the cell containing
	// the target, then refits the surface's displayed bounds. A no-op when
	// the target is still inside the current cell. The grid tracks the
	// target in whole-cell steps, not exactly, so the framing holds steady
	// and the bounds refit once per cell crossing instead of every frame.
	//
	// Parameters:
	//   - target: the point the grid should contain, typically the swarm
	//     centroid
	//   - surface: the surface whose bounds follow the grid
	Recenter(target mgl32.Vec3, surface render_surface.RenderSurface)
}

type referenceGrid struct {
	scene_object.SceneObject
	cellSize float32
	center   mgl32.Vec3
}

var _ ReferenceGrid = &referenceGrid{}

// NewReferenceGrid creates a flat extent marker for 2D canvases or a box for
// 3D canvases, centered on the origin and invisible.
//
// Parameters:
//   - extent: the grid's half extent per axis
//   - dims: 2 for a plane, 3 for a box
//
// Returns:
//   - ReferenceGrid: the new grid
func NewReferenceGrid(extent float32, dims int) ReferenceGrid {
	var m *mesh.Mesh
	if dims == 2 {
		m = mesh.NewPlane(2*extent, 2*extent)
	} else {
		m = mesh.NewBox(extent, extent, extent)
	}
	return &referenceGrid{
		SceneObject: scene_object.NewSceneObject(m, scene_object.WithVisible(false)),
		cellSize:    extent,
	}
}

func (g *referenceGrid) Recenter(target mgl32.Vec3, surface render_surface.RenderSurface) {
	var delta mgl32.Vec3
	moved := false
	for i := 0; i < 3; i++ {
		offset := target[i] - g.center[i]
		for offset > g.cellSize/2 {
			delta[i] += g.cellSize
			offset -= g.cellSize
			moved = true
		}
		for offset < -g.cellSize/2 {
			delta[i] -= g.cellSize
			offset += g.cellSize
			moved = true
		}
	}
	if !moved {
		return
	}
	g.center = g.center.Add(delta)
	g.Translate(delta)
	surface.RecomputeDisplayedBounds()
}
