package scene_object

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/swarmvista/vista/common"
	"github.com/swarmvista/vista/engine/render_surface"
)

// SceneObjectBundle is an ordered collection of named child entities that is
// styled and transformed as one unit. Children may themselves be bundles.
// Transforms resolve a single shared centroid so every child moves about the
// same center rather than its own.
type SceneObjectBundle interface {
	Entity

	// AddChild registers a child under a name unique within the bundle.
	//
	// Parameters:
	//   - name: the child's name
	//   - child: the entity to add
	//   - opts: functional options configuring the child's participation
	//
	// Returns:
	//   - error: ErrDuplicateName if the name is taken
	AddChild(name string, child Entity, opts ...ChildBuilderOption) error

	// Child returns the child registered under a name.
	//
	// Parameters:
	//   - name: the child's name
	//
	// Returns:
	//   - Entity: the child
	//   - error: ErrNotFound if no child has the name
	Child(name string) (Entity, error)

	// ChildNames returns the children's names in insertion order.
	//
	// Returns:
	//   - []string: the names in insertion order
	ChildNames() []string
}

type child struct {
	entity Entity
	// styled children receive broadcast color and opacity changes;
	// structural children such as axes keep their own colors.
	styled bool
}

type sceneObjectBundle struct {
	mu    *sync.Mutex
	order []string
	kids  map[string]*child
}

var _ SceneObjectBundle = &sceneObjectBundle{}

// NewSceneObjectBundle creates an empty bundle.
//
// Returns:
//   - SceneObjectBundle: the new bundle
func NewSceneObjectBundle() SceneObjectBundle {
	return &sceneObjectBundle{
		mu:   &sync.Mutex{},
		kids: make(map[string]*child),
	}
}

// ChildBuilderOption is a functional option for configuring a child as it is
// added to a bundle.
type ChildBuilderOption func(*child)

// WithoutColorStyling excludes the child from broadcast color and opacity
// changes, keeping its own colors. Visibility still broadcasts.
//
// Returns:
//   - ChildBuilderOption: functional option to exclude the child
func WithoutColorStyling() ChildBuilderOption {
	return func(c *child) {
		c.styled = false
	}
}

func (b *sceneObjectBundle) AddChild(name string, e Entity, opts ...ChildBuilderOption) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.kids[name]; ok {
		return ErrDuplicateName
	}
	c := &child{entity: e, styled: true}
	for _, opt := range opts {
		opt(c)
	}
	b.order = append(b.order, name)
	b.kids[name] = c
	return nil
}

func (b *sceneObjectBundle) Child(name string) (Entity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.kids[name]
	if !ok {
		return nil, ErrNotFound
	}
	return c.entity, nil
}

func (b *sceneObjectBundle) ChildNames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]string, len(b.order))
	copy(names, b.order)
	return names
}

func (b *sceneObjectBundle) Attach(surface render_surface.RenderSurface) error {
	for _, c := range b.children() {
		if err := c.entity.Attach(surface); err != nil {
			return err
		}
	}
	return nil
}

func (b *sceneObjectBundle) Detach() {
	for _, c := range b.children() {
		c.entity.Detach()
	}
}

func (b *sceneObjectBundle) SetColor(col render_surface.Color) {
	for _, c := range b.children() {
		if c.styled {
			c.entity.SetColor(col)
		}
	}
}

func (b *sceneObjectBundle) ResetColor() {
	for _, c := range b.children() {
		if c.styled {
			c.entity.ResetColor()
		}
	}
}

func (b *sceneObjectBundle) SetOpacity(o float32) {
	for _, c := range b.children() {
		if c.styled {
			c.entity.SetOpacity(o)
		}
	}
}

func (b *sceneObjectBundle) SetVisibility(visible bool) {
	for _, c := range b.children() {
		c.entity.SetVisibility(visible)
	}
}

func (b *sceneObjectBundle) SetLineWidth(w float32) {
	for _, c := range b.children() {
		c.entity.SetLineWidth(w)
	}
}

func (b *sceneObjectBundle) Transform(t Transform) {
	// Resolve one center for the whole bundle so children rotate and scale
	// about the shared centroid instead of drifting apart.
	if t.Center == nil {
		center := b.ComputeCentroid()
		t.Center = &center
	}
	for _, c := range b.children() {
		c.entity.Transform(t)
	}
}

func (b *sceneObjectBundle) Translate(delta mgl32.Vec3) {
	for _, c := range b.children() {
		c.entity.Translate(delta)
	}
}

func (b *sceneObjectBundle) Rotate(r mgl32.Mat3, center *mgl32.Vec3) {
	if center == nil {
		c := b.ComputeCentroid()
		center = &c
	}
	for _, c := range b.children() {
		c.entity.Rotate(r, center)
	}
}

func (b *sceneObjectBundle) Scale(factor float32, center *mgl32.Vec3) {
	if center == nil {
		c := b.ComputeCentroid()
		center = &c
	}
	for _, c := range b.children() {
		c.entity.Scale(factor, center)
	}
}

func (b *sceneObjectBundle) ComputeCentroid() mgl32.Vec3 {
	return common.Centroid(b.appendPoints(nil))
}

func (b *sceneObjectBundle) appendPoints(dst []mgl32.Vec3) []mgl32.Vec3 {
	for _, c := range b.children() {
		dst = c.entity.appendPoints(dst)
	}
	return dst
}

// children snapshots the child list in insertion order so broadcasts run
// without holding the bundle lock.
func (b *sceneObjectBundle) children() []*child {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*child, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.kids[name])
	}
	return out
}
