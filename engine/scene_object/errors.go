package scene_object

import "errors"

var (
	// ErrAlreadyAttached is returned when an entity is attached to a surface
	// while it still holds an actor on one.
	ErrAlreadyAttached = errors.New("entity is already attached to a surface")

	// ErrDuplicateName is returned when a child is added to a bundle under a
	// name the bundle already holds.
	ErrDuplicateName = errors.New("bundle already has a child with that name")

	// ErrNotFound is returned when a bundle is asked for a child it does not
	// hold.
	ErrNotFound = errors.New("no child with that name")
)
