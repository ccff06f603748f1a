// Package simdata loads and indexes logged simulation signals. A log is a
// set of named multi-dimensional series sampled on a shared frame axis;
// playback reads one frame at a time and trajectory tails read prefixes.
package simdata

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Series is one logged signal: Data holds float32 samples in row-major
// order over Shape, whose first axis is always the frame index.
type Series struct {
	Shape []int
	Data  []float32
}

// Frames returns the number of frames the series holds.
//
// Returns:
//   - int: the frame count
func (s *Series) Frames() int {
	if len(s.Shape) == 0 {
		return 0
	}
	return s.Shape[0]
}

// stride returns the number of samples per frame.
func (s *Series) stride() int {
	stride := 1
	for _, dim := range s.Shape[1:] {
		stride *= dim
	}
	return stride
}

// At returns the flat per-frame samples at a frame index.
//
// Parameters:
//   - frame: the frame index
//
// Returns:
//   - []float32: a view of the frame's samples
//   - error: error if the frame index is out of range
func (s *Series) At(frame int) ([]float32, error) {
	if frame < 0 || frame >= s.Frames() {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", frame, s.Frames())
	}
	stride := s.stride()
	return s.Data[frame*stride : (frame+1)*stride], nil
}

// Vec3At reads one robot's position at a frame from a series shaped
// [frames, robots, dims]. Logs with two spatial dimensions get Z = 0.
//
// Parameters:
//   - frame: the frame index
//   - robot: the robot index
//
// Returns:
//   - mgl32.Vec3: the position
//   - error: error if either index is out of range
func (s *Series) Vec3At(frame, robot int) (mgl32.Vec3, error) {
	if len(s.Shape) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("expected a [frames, robots, dims] series, got shape %v", s.Shape)
	}
	robots, dims := s.Shape[1], s.Shape[2]
	if robot < 0 || robot >= robots {
		return mgl32.Vec3{}, fmt.Errorf("robot %d out of range [0, %d)", robot, robots)
	}
	row, err := s.At(frame)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	var v mgl32.Vec3
	for d := 0; d < dims && d < 3; d++ {
		v[d] = row[robot*dims+d]
	}
	return v, nil
}

// HeadingAt reads one robot's heading angle at a frame from a series shaped
// [frames, robots].
//
// Parameters:
//   - frame: the frame index
//   - robot: the robot index
//
// Returns:
//   - float32: the heading in radians
//   - error: error if either index is out of range
func (s *Series) HeadingAt(frame, robot int) (float32, error) {
	if len(s.Shape) != 2 {
		return 0, fmt.Errorf("expected a [frames, robots] series, got shape %v", s.Shape)
	}
	robots := s.Shape[1]
	if robot < 0 || robot >= robots {
		return 0, fmt.Errorf("robot %d out of range [0, %d)", robot, robots)
	}
	row, err := s.At(frame)
	if err != nil {
		return 0, err
	}
	return row[robot], nil
}

// Rot3At reads one robot's rotation matrix at a frame from a series shaped
// [frames, robots, 9], with the nine samples in row-major order.
//
// Parameters:
//   - frame: the frame index
//   - robot: the robot index
//
// Returns:
//   - mgl32.Mat3: the rotation matrix
//   - error: error if either index is out of range or the shape does not
//     carry nine samples per robot
func (s *Series) Rot3At(frame, robot int) (mgl32.Mat3, error) {
	if len(s.Shape) != 3 || s.Shape[2] != 9 {
		return mgl32.Ident3(), fmt.Errorf("expected a [frames, robots, 9] series, got shape %v", s.Shape)
	}
	robots := s.Shape[1]
	if robot < 0 || robot >= robots {
		return mgl32.Ident3(), fmt.Errorf("robot %d out of range [0, %d)", robot, robots)
	}
	row, err := s.At(frame)
	if err != nil {
		return mgl32.Ident3(), err
	}
	var r mgl32.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Set(i, j, row[robot*9+i*3+j])
		}
	}
	return r, nil
}

// PrefixVec3 collects one robot's positions over frames [0, end), the tail
// drawn behind the robot at frame end.
//
// Parameters:
//   - end: the exclusive end frame
//   - robot: the robot index
//
// Returns:
//   - []mgl32.Vec3: the positions in frame order
//   - error: error if an index is out of range
func (s *Series) PrefixVec3(end, robot int) ([]mgl32.Vec3, error) {
	if end < 0 || end > s.Frames() {
		return nil, fmt.Errorf("end frame %d out of range [0, %d]", end, s.Frames())
	}
	points := make([]mgl32.Vec3, 0, end)
	for f := 0; f < end; f++ {
		v, err := s.Vec3At(f, robot)
		if err != nil {
			return nil, err
		}
		points = append(points, v)
	}
	return points, nil
}
