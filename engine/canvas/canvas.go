package canvas

import (
	"strings"
	"sync"

	"github.com/swarmvista/vista/engine/render_surface"
	"github.com/swarmvista/vista/engine/scene_object"
	"github.com/swarmvista/vista/engine/simdata"
)

// State tracks where a canvas is in its scene lifecycle.
type State int

const (
	// StateUninitialized means ResetScene has not run; updates are refused.
	StateUninitialized State = iota
	// StateSceneBuilt means the scene objects exist but no frame has been
	// applied yet.
	StateSceneBuilt
	// StatePopulated means at least one frame has been applied.
	StatePopulated
)

// Canvas is one viewport of the grid: a registry of named scene objects
// driven frame by frame from a dataset. ResetScene builds the scene for a
// dataset's robot count, UpdateAllSceneObjects applies one frame, and
// Render paints. An update either applies to every object or, when the
// dataset cannot drive this canvas, to none.
type Canvas interface {
	// Kind returns the canvas kind this canvas was built as.
	//
	// Returns:
	//   - Kind: the canvas kind
	Kind() Kind

	// Surface returns the render surface the canvas draws through.
	//
	// Returns:
	//   - render_surface.RenderSurface: the surface
	Surface() render_surface.RenderSurface

	// ResetScene rebuilds the per-robot scene objects for a dataset,
	// leaving the canvas ready for frame updates. Persistent scene
	// furniture built when the canvas was created stays in place.
	//
	// Parameters:
	//   - data: the dataset the scene is sized from
	//
	// Returns:
	//   - error: error if the dataset cannot drive this canvas
	ResetScene(data *simdata.Dataset) error

	// UpdateAllSceneObjects applies one frame of the dataset to every
	// scene object. The dataset is validated against the built scene
	// before anything mutates, so a failed update changes nothing.
	//
	// Parameters:
	//   - data: the dataset to read
	//   - frame: the frame index to apply
	//
	// Returns:
	//   - error: ErrSceneNotInitialized before ResetScene, a
	//     MissingLabelError or ShapeError when the dataset does not fit
	UpdateAllSceneObjects(data *simdata.Dataset, frame int) error

	// Render paints one frame. Called once per grid tick.
	Render()

	// AddObject registers an entity under a name and attaches it to the
	// surface.
	//
	// Parameters:
	//   - name: the registry name
	//   - e: the entity to add
	//
	// Returns:
	//   - error: ErrDuplicateName if the name is taken
	AddObject(name string, e scene_object.Entity) error

	// AddBundle registers a bundle under its name and additionally
	// registers each child under "name.child", so callers can address
	// either the whole bundle or one part.
	//
	// Parameters:
	//   - name: the bundle's registry name
	//   - b: the bundle to add
	//
	// Returns:
	//   - error: ErrDuplicateName if any name is taken
	AddBundle(name string, b scene_object.SceneObjectBundle) error

	// RemoveObject detaches and forgets the entity under a name.
	//
	// Parameters:
	//   - name: the registry name
	//
	// Returns:
	//   - error: ErrNotFound if no object has the name
	RemoveObject(name string) error

	// RemoveByPrefix removes the object named prefix and every object
	// named "prefix.…".
	//
	// Parameters:
	//   - prefix: the registry name prefix
	RemoveByPrefix(prefix string)

	// Object returns the entity registered under a name.
	//
	// Parameters:
	//   - name: the registry name
	//
	// Returns:
	//   - scene_object.Entity: the entity
	//   - error: ErrNotFound if no object has the name
	Object(name string) (scene_object.Entity, error)

	// HasObjects reports whether any objects are registered.
	//
	// Returns:
	//   - bool: true if the registry is non-empty
	HasObjects() bool

	// State returns where the canvas is in its scene lifecycle.
	//
	// Returns:
	//   - State: the current state
	State() State
}

// entry distinguishes objects attached by the canvas from bundle children
// registered only as aliases; aliases are not detached on removal because
// removing their bundle detaches them.
type entry struct {
	entity scene_object.Entity
	alias  bool
}

type canvasBase struct {
	mu      *sync.Mutex
	kind    Kind
	surface render_surface.RenderSurface
	order   []string
	objects map[string]*entry
	state   State
}

func newCanvasBase(kind Kind, surface render_surface.RenderSurface) *canvasBase {
	return &canvasBase{
		mu:      &sync.Mutex{},
		kind:    kind,
		surface: surface,
		objects: make(map[string]*entry),
	}
}

func (c *canvasBase) Kind() Kind {
	return c.kind
}

func (c *canvasBase) Surface() render_surface.RenderSurface {
	return c.surface
}

func (c *canvasBase) Render() {
	c.surface.Render()
}

func (c *canvasBase) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *canvasBase) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

func (c *canvasBase) AddObject(name string, e scene_object.Entity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addLocked(name, e, false)
}

func (c *canvasBase) AddBundle(name string, b scene_object.SceneObjectBundle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.addLocked(name, b, false); err != nil {
		return err
	}
	for _, childName := range b.ChildNames() {
		childEntity, err := b.Child(childName)
		if err != nil {
			return err
		}
		if err := c.addLocked(name+"."+childName, childEntity, true); err != nil {
			return err
		}
	}
	return nil
}

func (c *canvasBase) addLocked(name string, e scene_object.Entity, alias bool) error {
	if _, ok := c.objects[name]; ok {
		return ErrDuplicateName
	}
	if !alias {
		if err := e.Attach(c.surface); err != nil {
			return err
		}
	}
	c.order = append(c.order, name)
	c.objects[name] = &entry{entity: e, alias: alias}
	return nil
}

func (c *canvasBase) RemoveObject(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(name)
}

func (c *canvasBase) removeLocked(name string) error {
	ent, ok := c.objects[name]
	if !ok {
		return ErrNotFound
	}
	if !ent.alias {
		ent.entity.Detach()
	}
	delete(c.objects, name)
	for i, held := range c.order {
		if held == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *canvasBase) RemoveByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, len(c.order))
	copy(names, c.order)
	for _, name := range names {
		if name == prefix || strings.HasPrefix(name, prefix+".") {
			_ = c.removeLocked(name)
		}
	}
}

func (c *canvasBase) Object(name string) (scene_object.Entity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.objects[name]
	if !ok {
		return nil, ErrNotFound
	}
	return ent.entity, nil
}

func (c *canvasBase) HasObjects() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.objects) > 0
}
