package canvas

import (
	"errors"
	"fmt"
)

var (
	// ErrSceneNotInitialized is returned when a canvas is asked to update
	// before ResetScene has built its scene objects.
	ErrSceneNotInitialized = errors.New("scene has not been initialized")

	// ErrDuplicateName is returned when an entity is registered under a
	// name the canvas already holds.
	ErrDuplicateName = errors.New("canvas already has an object with that name")

	// ErrNotFound is returned when a canvas is asked for an object it does
	// not hold.
	ErrNotFound = errors.New("no object with that name")
)

// ShapeError reports a series whose shape cannot drive this canvas.
type ShapeError struct {
	Series string
	Want   string
	Got    []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("series %q has shape %v, want %s", e.Series, e.Got, e.Want)
}

// MissingLabelError reports a series the dataset does not carry.
type MissingLabelError struct {
	Label string
}

func (e *MissingLabelError) Error() string {
	return fmt.Sprintf("dataset has no series %q", e.Label)
}

// ConfigError reports a canvas argument that cannot be applied.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bad canvas config %q: %s", e.Field, e.Reason)
}
