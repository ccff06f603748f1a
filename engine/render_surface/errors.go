package render_surface

import "fmt"

// UnknownPresetError reports a camera preset name the surface does not
// support.
type UnknownPresetError struct {
	Preset CameraPreset
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown camera preset %q", e.Preset)
}
