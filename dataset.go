package gbsdata

import (
	"fmt"
	"io/fs"
	"iter"
	"math"

	"github.com/photonq/gbsdata/sparse"
)

// Axis selects the direction of Counts.
type Axis int

const (
	// AxisModes sums over all samples, one count per mode.
	AxisModes Axis = 0

	// AxisSamples sums over the modes of each sample, one count per sample.
	AxisSamples Axis = 1
)

func (a Axis) String() string {
	switch a {
	case AxisModes:
		return "modes"
	case AxisSamples:
		return "samples"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Dataset is a read-only collection of pre-generated photonic samples backed
// by a sparse sample matrix of shape Len() x Modes(). Row i holds the photon
// counts (or detector clicks, for threshold datasets) registered in each
// mode for the i-th sample.
//
// A Dataset is immutable once constructed and safe for concurrent use.
type Dataset struct {
	name      string
	nMean     float64
	threshold bool
	data      *sparse.CSR

	nSamples int
	modes    int
}

// loadBase reads the sample matrix and establishes every base invariant.
// Construction is all or nothing: any failure is returned as a *LoadError
// and no Dataset exists.
func loadBase(desc Descriptor, fsys fs.FS) (Dataset, error) {
	file := desc.Stem + ".npz"
	m, err := sparse.LoadFS(fsys, file)
	if err != nil {
		return Dataset{}, loadError(desc.Name, file, err)
	}
	if err := validateSamples(m); err != nil {
		return Dataset{}, loadError(desc.Name, file, err)
	}

	rows, cols := m.Dims()
	return Dataset{
		name:      desc.Name,
		nMean:     desc.NMean,
		threshold: desc.Threshold,
		data:      m,
		nSamples:  rows,
		modes:     cols,
	}, nil
}

// validateSamples rejects sample matrices whose stored values are not
// non-negative integers an int can hold. The total across the matrix must
// fit too, so axis sums stay exact. Photon counts and clicks are counts;
// anything else means the file is not a sample matrix.
func validateSamples(m *sparse.CSR) error {
	total := 0.0
	for _, v := range m.Values() {
		if v < 0 || v != math.Trunc(v) || math.IsInf(v, 0) {
			return fmt.Errorf("sample value %v is not a non-negative integer", v)
		}
		if v >= math.MaxInt64 {
			return fmt.Errorf("sample value %v overflows an integer count", v)
		}
		total += v
	}
	if total >= math.MaxInt64 {
		return fmt.Errorf("sample values sum to %v, overflowing integer counts", total)
	}
	return nil
}

// Name returns the dataset name, e.g. "planted".
func (d *Dataset) Name() string { return d.name }

// Len returns the number of samples.
func (d *Dataset) Len() int { return d.nSamples }

// Modes returns the number of modes in the device that generated the
// samples. For graph datasets this equals the number of graph nodes.
func (d *Dataset) Modes() int { return d.modes }

// NMean returns the theoretical mean photon number of the device.
func (d *Dataset) NMean() float64 { return d.nMean }

// Threshold reports whether samples come from threshold detectors, which
// register a click (1) or no click (0) per mode, rather than from
// photon-number-resolving detectors.
func (d *Dataset) Threshold() bool { return d.threshold }

// Data returns the raw sample matrix. The matrix is shared with the dataset
// and must not be modified.
func (d *Dataset) Data() *sparse.CSR { return d.data }

// row expands sample i, already normalized to [0, Len()), into a dense
// count vector.
func (d *Dataset) row(i int) []int {
	indptr, indices, values := d.data.Indptr(), d.data.Indices(), d.data.Values()
	out := make([]int, d.modes)
	for k := indptr[i]; k < indptr[i+1]; k++ {
		out[indices[k]] = int(values[k])
	}
	return out
}

// Sample returns the i-th sample as a dense per-mode count vector. Negative
// indices count from the end. Indices outside [-Len(), Len()) fail with
// ErrIndexOutOfRange.
func (d *Dataset) Sample(i int) ([]int, error) {
	idx, err := Index(i).indexes(d.nSamples)
	if err != nil {
		return nil, err
	}
	return d.row(idx[0]), nil
}

// Select returns the samples the key selects, in key order. An Index key
// yields one row; Span and Bounds keys yield the rows of the resolved
// range, which may be empty but never nil. A nil key fails with
// ErrInvalidKey.
func (d *Dataset) Select(key Key) ([][]int, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: nil key", ErrInvalidKey)
	}
	idx, err := key.indexes(d.nSamples)
	if err != nil {
		return nil, err
	}
	out := make([][]int, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.row(i))
	}
	return out, nil
}

// Counts sums the sample matrix along the given axis: AxisSamples yields
// the total photon or click count of each sample, AxisModes the total per
// mode across all samples.
func (d *Dataset) Counts(axis Axis) ([]int, error) {
	sums, err := d.data.SumAxis(int(axis))
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAxis, int(axis))
	}
	out := make([]int, len(sums))
	for i, v := range sums {
		out[i] = int(v)
	}
	return out, nil
}

// All returns an iterator over every sample in order. Each call returns an
// independent sequence, so concurrent or nested iteration over the same
// dataset does not interfere and a fresh call always restarts from the
// first sample.
func (d *Dataset) All() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		for i := range d.nSamples {
			if !yield(d.row(i)) {
				return
			}
		}
	}
}

// Enumerate is All with the sample position.
func (d *Dataset) Enumerate() iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		for i := range d.nSamples {
			if !yield(i, d.row(i)) {
				return
			}
		}
	}
}

// loadMatrix reads one auxiliary npz file for dataset construction.
func loadMatrix(fsys fs.FS, dataset, file string) (*sparse.CSR, error) {
	m, err := sparse.LoadFS(fsys, file)
	if err != nil {
		return nil, loadError(dataset, file, err)
	}
	return m, nil
}
