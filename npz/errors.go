package npz

import "errors"

// Common errors returned by the npy/npz codec.
var (
	// ErrNotNPY is returned when a stream does not start with the npy magic.
	ErrNotNPY = errors.New("not an npy stream")

	// ErrUnsupportedVersion is returned for npy format versions other than 1.0, 2.0 and 3.0.
	ErrUnsupportedVersion = errors.New("unsupported npy version")

	// ErrBadHeader is returned when the npy header dictionary cannot be parsed.
	ErrBadHeader = errors.New("malformed npy header")

	// ErrUnsupportedDType is returned for dtypes outside the supported set
	// (bool, signed/unsigned integers, floats, fixed-width strings).
	ErrUnsupportedDType = errors.New("unsupported dtype")

	// ErrTruncated is returned when the payload is shorter or longer than the
	// header-declared shape requires.
	ErrTruncated = errors.New("payload size does not match header")

	// ErrShapeMismatch is returned by array constructors when the element
	// count implied by the shape differs from the number of values supplied.
	ErrShapeMismatch = errors.New("shape does not match value count")

	// ErrConversion is returned by typed accessors when a value cannot be
	// represented in the requested Go type without loss.
	ErrConversion = errors.New("value not representable")

	// ErrMemberMissing is returned when an archive has no member of the
	// requested name.
	ErrMemberMissing = errors.New("archive member not found")
)
