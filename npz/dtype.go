package npz

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// kind identifies a NumPy type class. The values match the type characters
// used in descr strings.
type kind byte

const (
	kindBool   kind = 'b'
	kindInt    kind = 'i'
	kindUint   kind = 'u'
	kindFloat  kind = 'f'
	kindBytes  kind = 'S' // fixed-width byte string
	kindString kind = 'U' // fixed-width UTF-32 string
)

// dtype is a parsed descr string such as "<i8" or "|S3".
type dtype struct {
	descr string
	kind  kind
	// n is the descr size field: bytes per element for numeric kinds and
	// byte strings, code points per element for 'U'.
	n     int
	order binary.ByteOrder
}

// itemSize returns the storage size of one element in bytes.
func (d dtype) itemSize() int {
	if d.kind == kindString {
		return 4 * d.n // UTF-32
	}
	return d.n
}

// parseDType parses a NumPy descr string. Structured, complex, object and
// datetime dtypes are rejected with ErrUnsupportedDType.
func parseDType(descr string) (dtype, error) {
	if len(descr) < 2 {
		return dtype{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
	}

	rest := descr
	var order binary.ByteOrder = binary.LittleEndian
	switch rest[0] {
	case '<', '|', '=':
		// '=' is native order; every platform this library targets is
		// little-endian, and NumPy only emits '=' for hand-built dtypes.
		rest = rest[1:]
	case '>':
		order = binary.BigEndian
		rest = rest[1:]
	}
	if len(rest) < 2 {
		return dtype{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
	}

	k := kind(rest[0])
	n, err := strconv.Atoi(rest[1:])
	if err != nil || n < 0 {
		return dtype{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
	}

	switch k {
	case kindBool:
		if n != 1 {
			return dtype{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
		}
	case kindInt, kindUint:
		if n != 1 && n != 2 && n != 4 && n != 8 {
			return dtype{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
		}
	case kindFloat:
		if n != 4 && n != 8 {
			return dtype{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
		}
	case kindBytes, kindString:
		// Zero-width strings are legal in NumPy.
	default:
		return dtype{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
	}

	return dtype{descr: descr, kind: k, n: n, order: order}, nil
}
