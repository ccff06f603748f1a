// Package config holds the rendering defaults shared by every canvas. A
// Render value is resolved once at startup and passed down by value, so no
// component can mutate another's settings mid-run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/swarmvista/vista/engine/render_surface"
)

// Render is the rendering configuration applied when a canvas builds its
// scene objects.
type Render struct {
	// TrajectoryWidth is the line width of robot trajectory tails.
	TrajectoryWidth float32 `yaml:"trajectory_width"`
	// TrajectoryOpacity is the opacity of robot trajectory tails.
	TrajectoryOpacity float32 `yaml:"trajectory_opacity"`
	// AxesLineWidth is the line width of body-frame axes triads.
	AxesLineWidth float32 `yaml:"axes_line_width"`
	// GridLineWidth is the line width of reference and sphere grids.
	GridLineWidth float32 `yaml:"grid_line_width"`
	// IconScale is the world extent of robot icons.
	IconScale float32 `yaml:"icon_scale"`
	// TailLength caps the number of trajectory points drawn behind each
	// robot. Zero draws the full history.
	TailLength int `yaml:"tail_length"`
	// HighlightColor is the color applied to the focused robot.
	HighlightColor render_surface.Color `yaml:"highlight_color"`
	// RobotColor is the color robots are created with.
	RobotColor render_surface.Color `yaml:"robot_color"`
	// Debug enables verbose logging.
	Debug bool `yaml:"debug"`
}

// DefaultRender returns the built-in rendering defaults.
//
// Returns:
//   - Render: the default configuration
func DefaultRender() Render {
	return Render{
		TrajectoryWidth:   5.0,
		TrajectoryOpacity: 0.6,
		AxesLineWidth:     6.0,
		GridLineWidth:     0.8,
		IconScale:         1.0,
		TailLength:        0,
		HighlightColor:    render_surface.Red,
		RobotColor:        render_surface.Blue,
	}
}

// LoadRender reads a YAML configuration file over the defaults, so a file
// only needs the keys it changes.
//
// Parameters:
//   - path: the configuration file path
//
// Returns:
//   - Render: the resolved configuration
//   - error: error if the file cannot be read or parsed
func LoadRender(path string) (Render, error) {
	cfg := DefaultRender()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
