package sparse

import "errors"

var (
	// ErrInvalidShape is returned when a matrix dimension is negative or
	// does not match the stored shape member.
	ErrInvalidShape = errors.New("invalid matrix shape")

	// ErrInvalidIndptr is returned when the row pointer array is not a
	// non-decreasing sequence from 0 to nnz with rows+1 entries.
	ErrInvalidIndptr = errors.New("invalid row pointer array")

	// ErrInvalidIndices is returned when a column index is out of range,
	// out of order or duplicated within a row.
	ErrInvalidIndices = errors.New("invalid column index array")

	// ErrInvalidAxis is returned when an axis other than 0 or 1 is given.
	ErrInvalidAxis = errors.New("invalid axis")

	// ErrUnsupportedFormat is returned when an archive stores a sparse
	// format other than CSR.
	ErrUnsupportedFormat = errors.New("unsupported sparse format")
)
