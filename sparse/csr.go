package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CSR is an immutable sparse matrix in compressed sparse row form: the
// nonzero values of row i are data[indptr[i]:indptr[i+1]], with their column
// positions in the corresponding slice of indices. It implements mat.Matrix,
// so it can be passed to gonum operations directly.
type CSR struct {
	rows, cols int
	data       []float64
	indices    []int
	indptr     []int
}

// New builds a CSR matrix from its three canonical arrays. The arrays are
// retained, not copied. New rejects anything that breaks the CSR invariants:
// indptr must be a non-decreasing sequence of rows+1 entries from 0 to
// len(data), and within each row the column indices must be strictly
// increasing and inside [0, cols).
func New(rows, cols int, data []float64, indices, indptr []int) (*CSR, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	if len(indices) != len(data) {
		return nil, fmt.Errorf("%w: %d indices for %d values", ErrInvalidIndices, len(indices), len(data))
	}
	if len(indptr) != rows+1 {
		return nil, fmt.Errorf("%w: %d entries for %d rows", ErrInvalidIndptr, len(indptr), rows)
	}
	if indptr[0] != 0 {
		return nil, fmt.Errorf("%w: starts at %d", ErrInvalidIndptr, indptr[0])
	}
	if indptr[rows] != len(data) {
		return nil, fmt.Errorf("%w: ends at %d, have %d values", ErrInvalidIndptr, indptr[rows], len(data))
	}

	for i := range rows {
		lo, hi := indptr[i], indptr[i+1]
		if hi < lo || hi > len(data) {
			return nil, fmt.Errorf("%w: row %d spans [%d, %d)", ErrInvalidIndptr, i, lo, hi)
		}
		prev := -1
		for _, j := range indices[lo:hi] {
			if j < 0 || j >= cols {
				return nil, fmt.Errorf("%w: column %d in row %d of a %dx%d matrix", ErrInvalidIndices, j, i, rows, cols)
			}
			if j <= prev {
				return nil, fmt.Errorf("%w: row %d not in strictly increasing column order", ErrInvalidIndices, i)
			}
			prev = j
		}
	}

	return &CSR{rows: rows, cols: cols, data: data, indices: indices, indptr: indptr}, nil
}

// FromDense compresses a row-major dense matrix, keeping only nonzeros.
func FromDense(rows, cols int, values []float64) (*CSR, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	if len(values) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for a %dx%d matrix", ErrInvalidShape, len(values), rows, cols)
	}

	m := &CSR{rows: rows, cols: cols, indptr: make([]int, rows+1)}
	for i := range rows {
		for j := range cols {
			if v := values[i*cols+j]; v != 0 {
				m.data = append(m.data, v)
				m.indices = append(m.indices, j)
			}
		}
		m.indptr[i+1] = len(m.data)
	}
	return m, nil
}

// Dims returns the matrix dimensions.
func (m *CSR) Dims() (rows, cols int) { return m.rows, m.cols }

// NNZ returns the number of stored nonzero values.
func (m *CSR) NNZ() int { return len(m.data) }

// At returns the element at row i, column j. It panics if the indices are
// out of range, matching the gonum mat.Matrix contract.
func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.rows {
		panic("sparse: row index out of range")
	}
	if j < 0 || j >= m.cols {
		panic("sparse: column index out of range")
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	for k := lo; k < hi; k++ {
		switch {
		case m.indices[k] == j:
			return m.data[k]
		case m.indices[k] > j:
			return 0
		}
	}
	return 0
}

// T returns the transpose, implementing mat.Matrix.
func (m *CSR) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// Row expands row i into a dense slice of length cols. It panics if i is
// out of range.
func (m *CSR) Row(i int) []float64 {
	if i < 0 || i >= m.rows {
		panic("sparse: row index out of range")
	}
	out := make([]float64, m.cols)
	for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
		out[m.indices[k]] = m.data[k]
	}
	return out
}

// SumAxis sums the matrix along one axis: 0 collapses rows (one sum per
// column), 1 collapses columns (one sum per row).
func (m *CSR) SumAxis(axis int) ([]float64, error) {
	switch axis {
	case 0:
		out := make([]float64, m.cols)
		for k, j := range m.indices {
			out[j] += m.data[k]
		}
		return out, nil
	case 1:
		out := make([]float64, m.rows)
		for i := range m.rows {
			for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
				out[i] += m.data[k]
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidAxis, axis)
}

// Dense expands the matrix into a gonum dense matrix. Intended for small
// matrices such as adjacency or transformation matrices; a 50000-sample
// matrix should stay sparse.
func (m *CSR) Dense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		// mat.NewDense rejects zero dimensions; gonum's empty matrix
		// stands in for the degenerate case.
		return &mat.Dense{}
	}
	d := mat.NewDense(m.rows, m.cols, nil)
	for i := range m.rows {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			d.Set(i, m.indices[k], m.data[k])
		}
	}
	return d
}

// Values returns the stored nonzero values in row-major order. The slice is
// shared with the matrix and must not be modified.
func (m *CSR) Values() []float64 { return m.data }

// Indices returns the column index of each stored value. The slice is shared
// with the matrix and must not be modified.
func (m *CSR) Indices() []int { return m.indices }

// Indptr returns the row pointer array of rows+1 entries. The slice is
// shared with the matrix and must not be modified.
func (m *CSR) Indptr() []int { return m.indptr }
