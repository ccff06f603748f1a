package scene_object

import (
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/common"
	"github.com/swarmvista/vista/engine/mesh"
	"github.com/swarmvista/vista/engine/render_surface"
)

// SceneObject is a single mesh with styling, living on at most one surface
// at a time. It keeps a snapshot of the geometry it was created with, which
// absolute transforms are always recomputed from.
type SceneObject interface {
	Entity

	// Mesh returns the object's live mesh. Mutating it directly bypasses
	// the dirty tracking; prefer the update methods.
	//
	// Returns:
	//   - *mesh.Mesh: the live mesh
	Mesh() *mesh.Mesh

	// DefaultCentroid returns the centroid of the geometry snapshot taken
	// at construction.
	//
	// Returns:
	//   - mgl32.Vec3: the default centroid
	DefaultCentroid() mgl32.Vec3

	// Style returns the object's current style. Before attachment this is
	// the pending style the actor will be created with.
	//
	// Returns:
	//   - render_surface.Style: the current style
	Style() render_surface.Style

	// UpdateMeshPoints overwrites the mesh's point coordinates in place.
	// The topology is untouched, so the point count must match; a mismatch
	// is logged and ignored.
	//
	// Parameters:
	//   - points: the replacement coordinates, one per existing point
	UpdateMeshPoints(points []mgl32.Vec3)

	// ReplaceGeometry swaps in new points and topology atomically, for
	// objects whose point count changes over time.
	//
	// Parameters:
	//   - m: the replacement geometry
	ReplaceGeometry(m *mesh.Mesh)
}

type sceneObject struct {
	mu *sync.Mutex

	mesh            *mesh.Mesh
	defaultMesh     *mesh.Mesh
	defaultCentroid mgl32.Vec3

	style        render_surface.Style
	defaultColor *render_surface.Color

	surface render_surface.RenderSurface
	actor   render_surface.Actor
}

var _ SceneObject = &sceneObject{}

// NewSceneObject creates a scene object around a mesh, snapshotting the
// geometry as the default that absolute transforms restart from.
//
// Parameters:
//   - m: the object's geometry
//   - opts: functional options configuring the initial style
//
// Returns:
//   - SceneObject: the new object
func NewSceneObject(m *mesh.Mesh, opts ...SceneObjectBuilderOption) SceneObject {
	s := &sceneObject{
		mu:              &sync.Mutex{},
		mesh:            m,
		defaultMesh:     m.Clone(),
		defaultCentroid: m.Centroid(),
		style:           render_surface.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sceneObject) Attach(surface render_surface.RenderSurface) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.actor != nil {
		return ErrAlreadyAttached
	}
	actor, err := surface.CreateActor(s.mesh, s.style)
	if err != nil {
		return err
	}
	s.surface = surface
	s.actor = actor
	return nil
}

func (s *sceneObject) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.actor == nil {
		return
	}
	s.surface.RemoveActor(s.actor)
	s.surface = nil
	s.actor = nil
}

func (s *sceneObject) SetColor(c render_surface.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.defaultColor == nil {
		snapshot := s.style.Color
		s.defaultColor = &snapshot
	}
	s.style.Color = c
	if s.actor != nil {
		s.actor.SetColor(c)
	}
}

func (s *sceneObject) ResetColor() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.defaultColor == nil {
		return
	}
	s.style.Color = *s.defaultColor
	if s.actor != nil {
		s.actor.SetColor(s.style.Color)
	}
}

func (s *sceneObject) SetOpacity(o float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.style.Opacity = o
	if s.actor != nil {
		s.actor.SetOpacity(o)
	}
}

func (s *sceneObject) SetVisibility(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.style.Visible = visible
	if s.actor != nil {
		s.actor.SetVisible(visible)
	}
}

func (s *sceneObject) SetLineWidth(w float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.style.LineWidth = w
	if s.actor != nil {
		s.actor.SetLineWidth(w)
	}
}

func (s *sceneObject) Transform(t Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()

	points := make([]mgl32.Vec3, len(s.defaultMesh.Points))
	copy(points, s.defaultMesh.Points)

	center := s.defaultCentroid
	if t.Center != nil {
		center = *t.Center
	}
	if t.Rotation != nil {
		common.RotatePointsAbout(points, *t.Rotation, center)
	}
	if t.ScaleFactor != nil {
		common.ScalePointsAbout(points, *t.ScaleFactor, center)
	}
	if t.Translation != nil {
		common.TranslatePoints(points, *t.Translation)
	}

	s.mesh.Points = points
	s.markDirtyLocked()
}

func (s *sceneObject) Translate(delta mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	common.TranslatePoints(s.mesh.Points, delta)
	s.markDirtyLocked()
}

func (s *sceneObject) Rotate(r mgl32.Mat3, center *mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := common.Centroid(s.mesh.Points)
	if center != nil {
		c = *center
	}
	common.RotatePointsAbout(s.mesh.Points, r, c)
	s.markDirtyLocked()
}

func (s *sceneObject) Scale(factor float32, center *mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := common.Centroid(s.mesh.Points)
	if center != nil {
		c = *center
	}
	common.ScalePointsAbout(s.mesh.Points, factor, c)
	s.markDirtyLocked()
}

func (s *sceneObject) ComputeCentroid() mgl32.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return common.Centroid(s.mesh.Points)
}

func (s *sceneObject) Mesh() *mesh.Mesh {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mesh
}

func (s *sceneObject) DefaultCentroid() mgl32.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultCentroid
}

func (s *sceneObject) Style() render_surface.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

func (s *sceneObject) UpdateMeshPoints(points []mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(points) != len(s.mesh.Points) {
		slog.Warn("point count mismatch, mesh not updated",
			"have", len(s.mesh.Points),
			"got", len(points),
		)
		return
	}
	copy(s.mesh.Points, points)
	s.markDirtyLocked()
}

func (s *sceneObject) ReplaceGeometry(m *mesh.Mesh) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mesh.Points = m.Points
	s.mesh.Lines = m.Lines
	s.mesh.Faces = m.Faces
	s.markDirtyLocked()
}

func (s *sceneObject) appendPoints(dst []mgl32.Vec3) []mgl32.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(dst, s.mesh.Points...)
}

func (s *sceneObject) markDirtyLocked() {
	if s.actor != nil {
		s.actor.MarkDirty()
	}
}
