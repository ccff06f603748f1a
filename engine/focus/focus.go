package focus

import "sync"

// None is the focused-robot index when no robot is focused.
const None = -1

// Observer is notified synchronously after the focused robot changes.
//
// Parameters:
//   - previous: the index focused before the change, or None
//   - current: the index focused now, or None
type Observer func(previous, current int)

// Context is the focused-robot state shared by every canvas in a grid.
// Setting the same index twice is a no-op, so observers only ever see real
// changes.
type Context interface {
	// Focused returns the focused robot index, or None.
	//
	// Returns:
	//   - int: the focused index
	Focused() int

	// SetFocused changes the focused robot and notifies every observer
	// synchronously. A no-op when the index is unchanged.
	//
	// Parameters:
	//   - index: the robot index to focus, or None to clear
	SetFocused(index int)

	// OnChange registers an observer for focus changes.
	//
	// Parameters:
	//   - obs: the observer to register
	OnChange(obs Observer)
}

type context struct {
	mu        sync.Mutex
	focused   int
	observers []Observer
}

var _ Context = &context{}

// NewContext creates a focus context with nothing focused.
//
// Returns:
//   - Context: the new context
func NewContext() Context {
	return &context{focused: None}
}

func (c *context) Focused() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focused
}

func (c *context) SetFocused(index int) {
	c.mu.Lock()
	if index == c.focused {
		c.mu.Unlock()
		return
	}
	previous := c.focused
	c.focused = index
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	// Notified outside the lock so an observer may read or change focus.
	for _, obs := range observers {
		obs(previous, index)
	}
}

func (c *context) OnChange(obs Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, obs)
}
