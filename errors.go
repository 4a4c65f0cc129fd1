package gbsdata

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a sample index, after negative
	// indices are counted from the end, falls outside [0, Len()).
	ErrIndexOutOfRange = errors.New("sample index out of range")

	// ErrInvalidKey is returned by Select for a nil selection key or a key
	// with a zero step.
	ErrInvalidKey = errors.New("invalid selection key")

	// ErrInvalidAxis is returned by Counts for an axis other than AxisModes
	// or AxisSamples.
	ErrInvalidAxis = errors.New("invalid axis")
)

// LoadError indicates that a dataset could not be constructed: a backing
// file is absent, unreadable or structurally malformed. Construction is
// all or nothing, so a LoadError means no dataset instance exists.
//
// The underlying cause can be accessed via errors.Unwrap; errors.Is sees
// through it to fs.ErrNotExist and the npz and sparse sentinels.
type LoadError struct {
	Dataset string
	File    string
	Err     error
}

func (e *LoadError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("loading dataset %q: %v", e.Dataset, e.Err)
	}
	return fmt.Sprintf("loading dataset %q: file %q: %v", e.Dataset, e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func loadError(dataset, file string, err error) error {
	return &LoadError{Dataset: dataset, File: file, Err: err}
}
