package scene_object

import "github.com/swarmvista/vista/engine/render_surface"

// SceneObjectBuilderOption is a functional option for configuring a
// SceneObject during construction.
type SceneObjectBuilderOption func(*sceneObject)

// WithStyle replaces the object's entire initial style.
//
// Parameters:
//   - style: the style the actor is created with
//
// Returns:
//   - SceneObjectBuilderOption: functional option to set the style
func WithStyle(style render_surface.Style) SceneObjectBuilderOption {
	return func(s *sceneObject) {
		s.style = style
	}
}

// WithColor sets the object's initial color.
//
// Parameters:
//   - c: the initial color
//
// Returns:
//   - SceneObjectBuilderOption: functional option to set the color
func WithColor(c render_surface.Color) SceneObjectBuilderOption {
	return func(s *sceneObject) {
		s.style.Color = c
	}
}

// WithOpacity sets the object's initial opacity.
//
// Parameters:
//   - o: the initial opacity in [0, 1]
//
// Returns:
//   - SceneObjectBuilderOption: functional option to set the opacity
func WithOpacity(o float32) SceneObjectBuilderOption {
	return func(s *sceneObject) {
		s.style.Opacity = o
	}
}

// WithLineWidth sets the object's initial line width.
//
// Parameters:
//   - w: the initial line width
//
// Returns:
//   - SceneObjectBuilderOption: functional option to set the line width
func WithLineWidth(w float32) SceneObjectBuilderOption {
	return func(s *sceneObject) {
		s.style.LineWidth = w
	}
}

// WithVisible sets whether the object starts visible.
//
// Parameters:
//   - visible: true to start visible
//
// Returns:
//   - SceneObjectBuilderOption: functional option to set the visibility
func WithVisible(visible bool) SceneObjectBuilderOption {
	return func(s *sceneObject) {
		s.style.Visible = visible
	}
}
