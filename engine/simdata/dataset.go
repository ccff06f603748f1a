package simdata

import (
	"fmt"
	"sort"
)

// Dataset is a set of named series sharing one frame axis.
type Dataset struct {
	series map[string]*Series
	frames int
}

// NewDataset creates an empty dataset.
//
// Returns:
//   - *Dataset: the new dataset
func NewDataset() *Dataset {
	return &Dataset{series: make(map[string]*Series)}
}

// Add registers a series under a name. Every series in a dataset must hold
// the same number of frames.
//
// Parameters:
//   - name: the series name
//   - s: the series
//
// Returns:
//   - error: error if the name is taken or the frame count disagrees
func (d *Dataset) Add(name string, s *Series) error {
	if _, ok := d.series[name]; ok {
		return fmt.Errorf("dataset already has a series named %q", name)
	}
	if len(d.series) == 0 {
		d.frames = s.Frames()
	} else if s.Frames() != d.frames {
		return fmt.Errorf("series %q has %d frames, dataset has %d", name, s.Frames(), d.frames)
	}
	d.series[name] = s
	return nil
}

// Get returns the series registered under a name.
//
// Parameters:
//   - name: the series name
//
// Returns:
//   - *Series: the series
//   - error: error if no series has the name
func (d *Dataset) Get(name string) (*Series, error) {
	s, ok := d.series[name]
	if !ok {
		return nil, fmt.Errorf("no series named %q", name)
	}
	return s, nil
}

// Has reports whether a series is registered under a name.
//
// Parameters:
//   - name: the series name
//
// Returns:
//   - bool: true if the series exists
func (d *Dataset) Has(name string) bool {
	_, ok := d.series[name]
	return ok
}

// Names returns the registered series names in sorted order.
//
// Returns:
//   - []string: the sorted names
func (d *Dataset) Names() []string {
	names := make([]string, 0, len(d.series))
	for name := range d.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Frames returns the shared frame count, zero when the dataset is empty.
//
// Returns:
//   - int: the frame count
func (d *Dataset) Frames() int {
	return d.frames
}
