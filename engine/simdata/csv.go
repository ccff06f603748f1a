package simdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// column is one CSV column resolved against the header grammar
// "series[robot].component": "p[2].x" is robot 2's X position in series "p",
// "theta[0]" is robot 0's scalar in series "theta", "R[1].m02" is row 0
// column 2 of robot 1's rotation matrix, and a bare name like "time" is a
// per-frame scalar.
type column struct {
	series string
	robot  int
	comp   int
}

func parseHeader(name string) (column, error) {
	open := strings.IndexByte(name, '[')
	if open < 0 {
		return column{series: name, robot: -1, comp: -1}, nil
	}
	closing := strings.IndexByte(name, ']')
	if closing < open {
		return column{}, fmt.Errorf("malformed column %q", name)
	}
	robot, err := strconv.Atoi(name[open+1 : closing])
	if err != nil || robot < 0 {
		return column{}, fmt.Errorf("malformed robot index in column %q", name)
	}
	c := column{series: name[:open], robot: robot, comp: -1}

	suffix := name[closing+1:]
	if suffix == "" {
		return c, nil
	}
	if !strings.HasPrefix(suffix, ".") {
		return column{}, fmt.Errorf("malformed column %q", name)
	}
	c.comp, err = parseComponent(suffix[1:])
	if err != nil {
		return column{}, fmt.Errorf("malformed column %q: %w", name, err)
	}
	return c, nil
}

func parseComponent(comp string) (int, error) {
	switch comp {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	}
	// Matrix entries are written "mRC" with row and column digits.
	if len(comp) == 3 && comp[0] == 'm' {
		row := int(comp[1] - '0')
		col := int(comp[2] - '0')
		if row >= 0 && row < 3 && col >= 0 && col < 3 {
			return row*3 + col, nil
		}
	}
	return 0, fmt.Errorf("unknown component %q", comp)
}

// csvRowChunk is the number of rows one parse task handles.
const csvRowChunk = 512

// LoadCSV reads a simulation log into a dataset. The first row names the
// columns in the "series[robot].component" grammar; every following row is
// one frame. Rows are parsed in parallel.
//
// Parameters:
//   - path: the log file path
//
// Returns:
//   - *Dataset: the loaded dataset
//   - error: error if the file cannot be read or a cell does not parse
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read log %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("log %s has no header row", path)
	}

	columns := make([]column, len(records[0]))
	for i, name := range records[0] {
		columns[i], err = parseHeader(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
	}

	rows := records[1:]
	dataset, err := allocateSeries(columns, len(rows))
	if err != nil {
		return nil, err
	}

	// Destination offsets are precomputed per column so the row tasks only
	// parse floats and store them.
	dests := make([]func(frame int, v float32), len(columns))
	for i, c := range columns {
		s, getErr := dataset.Get(c.series)
		if getErr != nil {
			return nil, getErr
		}
		stride := s.stride()
		offset := 0
		if c.robot >= 0 {
			comps := 1
			if len(s.Shape) == 3 {
				comps = s.Shape[2]
			}
			offset = c.robot * comps
			if c.comp >= 0 {
				offset += c.comp
			}
		}
		data := s.Data
		dests[i] = func(frame int, v float32) {
			data[frame*stride+offset] = v
		}
	}

	// Workers wind down on their own after the idle timeout.
	pool := worker.NewDynamicWorkerPool(runtime.NumCPU(), len(rows)/csvRowChunk+1, 1*time.Second)

	var wg sync.WaitGroup
	errs := make([]error, len(rows)/csvRowChunk+1)
	taskID := 0
	for start := 0; start < len(rows); start += csvRowChunk {
		end := min(start+csvRowChunk, len(rows))
		chunkStart, chunkEnd := start, end
		slot := taskID
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				errs[slot] = parseRows(rows[chunkStart:chunkEnd], chunkStart, columns, dests)
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return dataset, nil
}

func parseRows(rows [][]string, firstFrame int, columns []column, dests []func(frame int, v float32)) error {
	for r, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("row %d has %d cells, header has %d columns", firstFrame+r+1, len(row), len(columns))
		}
		for i, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 32)
			if err != nil {
				return fmt.Errorf("row %d column %d: %w", firstFrame+r+1, i, err)
			}
			dests[i](firstFrame+r, float32(v))
		}
	}
	return nil
}

// allocateSeries sizes one series per distinct header name: [frames] for
// bare scalars, [frames, robots] for indexed scalars, and
// [frames, robots, comps] when components appear.
func allocateSeries(columns []column, frames int) (*Dataset, error) {
	type extent struct {
		robots int
		comps  int
		scalar bool
	}
	extents := make(map[string]*extent)
	for _, c := range columns {
		e, ok := extents[c.series]
		if !ok {
			e = &extent{}
			extents[c.series] = e
		}
		if c.robot < 0 {
			e.scalar = true
			continue
		}
		if c.robot+1 > e.robots {
			e.robots = c.robot + 1
		}
		if c.comp+1 > e.comps {
			e.comps = c.comp + 1
		}
	}

	dataset := NewDataset()
	for name, e := range extents {
		var shape []int
		switch {
		case e.scalar && e.robots > 0:
			return nil, fmt.Errorf("series %q mixes indexed and bare columns", name)
		case e.scalar:
			shape = []int{frames}
		case e.comps > 0:
			shape = []int{frames, e.robots, e.comps}
		default:
			shape = []int{frames, e.robots}
		}
		size := 1
		for _, dim := range shape {
			size *= dim
		}
		if err := dataset.Add(name, &Series{Shape: shape, Data: make([]float32, size)}); err != nil {
			return nil, err
		}
	}
	return dataset, nil
}
