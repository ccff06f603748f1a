package simdata_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarmvista/vista/engine/simdata"
)

// positionSeries builds a [frames, robots, dims] series where robot r at
// frame f sits at (f, r) scaled by simple offsets, for easy assertions.
func positionSeries(frames, robots, dims int) *simdata.Series {
	s := &simdata.Series{
		Shape: []int{frames, robots, dims},
		Data:  make([]float32, frames*robots*dims),
	}
	for f := 0; f < frames; f++ {
		for r := 0; r < robots; r++ {
			base := (f*robots + r) * dims
			s.Data[base] = float32(f)
			if dims > 1 {
				s.Data[base+1] = float32(r)
			}
		}
	}
	return s
}

func TestSeriesFrames(t *testing.T) {
	assert.Equal(t, 0, (&simdata.Series{}).Frames())
	assert.Equal(t, 4, positionSeries(4, 2, 2).Frames())
}

func TestAt(t *testing.T) {
	s := positionSeries(3, 2, 2)

	row, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 1, 1}, row)

	_, err = s.At(3)
	assert.Error(t, err)
	_, err = s.At(-1)
	assert.Error(t, err)
}

func TestVec3At(t *testing.T) {
	s := positionSeries(3, 2, 2)

	v, err := s.Vec3At(2, 1)
	require.NoError(t, err)
	// 2D logs read with Z = 0.
	assert.Equal(t, mgl32.Vec3{2, 1, 0}, v)

	_, err = s.Vec3At(0, 2)
	assert.Error(t, err)

	flat := &simdata.Series{Shape: []int{3, 2}, Data: make([]float32, 6)}
	_, err = flat.Vec3At(0, 0)
	assert.Error(t, err)
}

func TestHeadingAt(t *testing.T) {
	s := &simdata.Series{Shape: []int{2, 3}, Data: []float32{0, 1, 2, 3, 4, 5}}

	h, err := s.HeadingAt(1, 2)
	require.NoError(t, err)
	assert.Equal(t, float32(5), h)

	_, err = s.HeadingAt(1, 3)
	assert.Error(t, err)
	_, err = positionSeries(2, 2, 2).HeadingAt(0, 0)
	assert.Error(t, err)
}

func TestRot3At(t *testing.T) {
	data := make([]float32, 2*1*9)
	// Frame 1 holds a 90-degree rotation about Z in row-major order.
	copy(data[9:], []float32{0, -1, 0, 1, 0, 0, 0, 0, 1})
	s := &simdata.Series{Shape: []int{2, 1, 9}, Data: data}

	r, err := s.Rot3At(1, 0)
	require.NoError(t, err)
	v := r.Mul3x1(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, v.X(), 1e-6)
	assert.InDelta(t, 1, v.Y(), 1e-6)

	_, err = s.Rot3At(2, 0)
	assert.Error(t, err)
	_, err = positionSeries(2, 1, 3).Rot3At(0, 0)
	assert.Error(t, err)
}

func TestPrefixVec3(t *testing.T) {
	s := positionSeries(4, 2, 2)

	tail, err := s.PrefixVec3(3, 0)
	require.NoError(t, err)
	require.Len(t, tail, 3)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, tail[0])
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, tail[2])

	empty, err := s.PrefixVec3(0, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = s.PrefixVec3(5, 0)
	assert.Error(t, err)
}

func TestDataset(t *testing.T) {
	d := simdata.NewDataset()
	assert.Equal(t, 0, d.Frames())

	require.NoError(t, d.Add("p", positionSeries(3, 2, 2)))
	assert.Equal(t, 3, d.Frames())
	assert.True(t, d.Has("p"))
	assert.False(t, d.Has("theta"))

	assert.Error(t, d.Add("p", positionSeries(3, 2, 2)))
	assert.Error(t, d.Add("theta", &simdata.Series{Shape: []int{5, 2}, Data: make([]float32, 10)}))

	require.NoError(t, d.Add("theta", &simdata.Series{Shape: []int{3, 2}, Data: make([]float32, 6)}))
	assert.Equal(t, []string{"p", "theta"}, d.Names())

	_, err := d.Get("missing")
	assert.Error(t, err)
}
