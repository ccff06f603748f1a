// Package grid arranges canvases into the window's rows and columns and
// drives them in lockstep from one playback position.
package grid

import (
	"errors"
	"fmt"
	"sync"

	"github.com/swarmvista/vista/engine/canvas"
	"github.com/swarmvista/vista/engine/focus"
	"github.com/swarmvista/vista/engine/simdata"
)

// ErrNoData is returned when playback is driven before a dataset is loaded.
var ErrNoData = errors.New("no dataset loaded")

// Grid is the set of canvases sharing one dataset, one frame index, and one
// focus context. All playback control is asynchronous with respect to
// rendering: control methods only move the playback position, and the next
// Tick applies whatever position they left behind, so the latest of several
// competing seeks wins.
type Grid interface {
	// Canvases returns every canvas in row-major order.
	//
	// Returns:
	//   - []canvas.Canvas: the canvases
	Canvases() []canvas.Canvas

	// CanvasAt returns the canvas at a cell.
	//
	// Parameters:
	//   - row: the cell row
	//   - col: the cell column
	//
	// Returns:
	//   - canvas.Canvas: the canvas
	//   - error: error if the cell is out of range
	CanvasAt(row, col int) (canvas.Canvas, error)

	// Focus returns the focus context every canvas shares.
	//
	// Returns:
	//   - focus.Context: the shared focus context
	Focus() focus.Context

	// Reset loads a dataset: every canvas rebuilds its scene and playback
	// rewinds to frame zero, paused.
	//
	// Parameters:
	//   - data: the dataset to load
	//
	// Returns:
	//   - error: the first canvas rebuild error
	Reset(data *simdata.Dataset) error

	// Frames returns the loaded dataset's frame count, zero before Reset.
	//
	// Returns:
	//   - int: the frame count
	Frames() int

	// Index returns the current playback position.
	//
	// Returns:
	//   - int: the frame index
	Index() int

	// SetIndex moves the playback position, clamped to the dataset.
	//
	// Parameters:
	//   - index: the frame index to seek to
	SetIndex(index int)

	// Step moves the playback position by a signed delta, clamped.
	//
	// Parameters:
	//   - delta: the number of frames to move
	Step(delta int)

	// Play starts advancing one frame per tick.
	Play()

	// Pause stops advancing.
	Pause()

	// TogglePlayback flips between playing and paused.
	TogglePlayback()

	// Playing reports whether playback is advancing.
	//
	// Returns:
	//   - bool: true when playing
	Playing() bool

	// BeginScrub suspends frame advancement while the user drags the
	// timeline, remembering whether playback was running.
	BeginScrub()

	// EndScrub resumes playback if it was running when the scrub began.
	EndScrub()

	// Tick advances the position when playing, applies the current frame
	// to every canvas, and renders each one once. Playback pauses on the
	// last frame and on an update error.
	//
	// Returns:
	//   - error: ErrNoData before Reset, or the first canvas update error
	Tick() error
}

type grid struct {
	mu       *sync.Mutex
	rows     int
	cols     int
	canvases []canvas.Canvas
	fctx     focus.Context

	data      *simdata.Dataset
	index     int
	playing   bool
	scrubbing bool
	resume    bool
}

var _ Grid = &grid{}

// NewGrid creates a grid over canvases laid out row-major.
//
// Parameters:
//   - rows: the number of rows
//   - cols: the number of columns
//   - canvases: the canvases in row-major order, one per cell
//   - fctx: the focus context the canvases share
//
// Returns:
//   - Grid: the new grid
//   - error: error if the canvas count does not fill the cells
func NewGrid(rows, cols int, canvases []canvas.Canvas, fctx focus.Context) (Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("grid shape %dx%d is empty", rows, cols)
	}
	if len(canvases) != rows*cols {
		return nil, fmt.Errorf("grid shape %dx%d needs %d canvases, got %d", rows, cols, rows*cols, len(canvases))
	}
	return &grid{
		mu:       &sync.Mutex{},
		rows:     rows,
		cols:     cols,
		canvases: canvases,
		fctx:     fctx,
	}, nil
}

func (g *grid) Canvases() []canvas.Canvas {
	out := make([]canvas.Canvas, len(g.canvases))
	copy(out, g.canvases)
	return out
}

func (g *grid) CanvasAt(row, col int) (canvas.Canvas, error) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil, fmt.Errorf("cell (%d, %d) out of range %dx%d", row, col, g.rows, g.cols)
	}
	return g.canvases[row*g.cols+col], nil
}

func (g *grid) Focus() focus.Context {
	return g.fctx
}

func (g *grid) Reset(data *simdata.Dataset) error {
	for _, c := range g.canvases {
		if err := c.ResetScene(data); err != nil {
			return err
		}
	}
	g.mu.Lock()
	g.data = data
	g.index = 0
	g.playing = false
	g.scrubbing = false
	g.mu.Unlock()
	return nil
}

func (g *grid) Frames() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.data == nil {
		return 0
	}
	return g.data.Frames()
}

func (g *grid) Index() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.index
}

func (g *grid) SetIndex(index int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.index = g.clampLocked(index)
}

func (g *grid) Step(delta int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.index = g.clampLocked(g.index + delta)
}

func (g *grid) clampLocked(index int) int {
	if g.data == nil || g.data.Frames() == 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= g.data.Frames() {
		return g.data.Frames() - 1
	}
	return index
}

func (g *grid) Play() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.playing = true
}

func (g *grid) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.playing = false
}

func (g *grid) TogglePlayback() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.playing = !g.playing
}

func (g *grid) Playing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playing
}

func (g *grid) BeginScrub() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.scrubbing {
		return
	}
	g.scrubbing = true
	g.resume = g.playing
	g.playing = false
}

func (g *grid) EndScrub() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.scrubbing {
		return
	}
	g.scrubbing = false
	g.playing = g.resume
}

func (g *grid) Tick() error {
	g.mu.Lock()
	if g.data == nil {
		g.mu.Unlock()
		return ErrNoData
	}
	if g.playing {
		g.index++
		if g.index >= g.data.Frames()-1 {
			g.index = g.clampLocked(g.index)
			g.playing = false
		}
	}
	data := g.data
	index := g.index
	g.mu.Unlock()

	var firstErr error
	for _, c := range g.canvases {
		if err := c.UpdateAllSceneObjects(data, index); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, c := range g.canvases {
		c.Render()
	}
	if firstErr != nil {
		// A log the scene cannot apply stops playback; the driver presents
		// the error instead of replaying it frame after frame.
		g.mu.Lock()
		g.playing = false
		g.mu.Unlock()
	}
	return firstErr
}
