package npz

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// magic is the six-byte signature that opens every npy stream.
var magic = []byte("\x93NUMPY")

// maxElements caps the element count accepted from a header so a corrupt
// shape cannot trigger an enormous allocation before the payload check.
const maxElements = 1 << 40

// Array is a decoded npy array: element type, shape and raw payload.
//
// Arrays are immutable once decoded or constructed. Multi-dimensional
// payloads keep their stored element order; ColMajor reports Fortran-ordered
// data and is never silently transposed.
type Array struct {
	dt       dtype
	shape    []int
	colMajor bool
	raw      []byte
}

// DType returns the NumPy descr string, e.g. "<i8" or "|S3".
func (a *Array) DType() string { return a.dt.descr }

// Shape returns a copy of the array dimensions. A 0-d scalar has an empty
// shape and one element.
func (a *Array) Shape() []int {
	out := make([]int, len(a.shape))
	copy(out, a.shape)
	return out
}

// Size returns the number of elements.
func (a *Array) Size() int {
	n := 1
	for _, d := range a.shape {
		n *= d
	}
	return n
}

// ColMajor reports whether the payload is stored in Fortran (column-major)
// order.
func (a *Array) ColMajor() bool { return a.colMajor }

// Int64s converts the payload to int64 values. Bools widen to 0/1, unsigned
// values must fit in an int64, and floats must be integral; anything else
// fails with ErrConversion.
func (a *Array) Int64s() ([]int64, error) {
	n := a.Size()
	out := make([]int64, n)
	sz := a.dt.itemSize()

	switch a.dt.kind {
	case kindBool:
		for i := range n {
			if a.raw[i] != 0 {
				out[i] = 1
			}
		}
	case kindInt:
		for i := range n {
			out[i] = a.int64At(i * sz)
		}
	case kindUint:
		for i := range n {
			v := a.uint64At(i * sz)
			if v > math.MaxInt64 {
				return nil, fmt.Errorf("%w: uint value %d as int64", ErrConversion, v)
			}
			out[i] = int64(v)
		}
	case kindFloat:
		for i := range n {
			v := a.float64At(i * sz)
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Trunc(v) != v ||
				v < math.MinInt64 || v >= math.MaxInt64 {
				return nil, fmt.Errorf("%w: float value %v as int64", ErrConversion, v)
			}
			out[i] = int64(v)
		}
	default:
		return nil, fmt.Errorf("%w: %s as int64", ErrConversion, a.dt.descr)
	}
	return out, nil
}

// Float64s converts the payload to float64 values. Bools widen to 0/1;
// string dtypes fail with ErrConversion.
func (a *Array) Float64s() ([]float64, error) {
	n := a.Size()
	out := make([]float64, n)
	sz := a.dt.itemSize()

	switch a.dt.kind {
	case kindBool:
		for i := range n {
			if a.raw[i] != 0 {
				out[i] = 1
			}
		}
	case kindInt:
		for i := range n {
			out[i] = float64(a.int64At(i * sz))
		}
	case kindUint:
		for i := range n {
			out[i] = float64(a.uint64At(i * sz))
		}
	case kindFloat:
		for i := range n {
			out[i] = a.float64At(i * sz)
		}
	default:
		return nil, fmt.Errorf("%w: %s as float64", ErrConversion, a.dt.descr)
	}
	return out, nil
}

// Str returns the value of a single-element byte-string or unicode array
// with trailing NUL padding removed. This is how scipy stores the sparse
// format tag ("csr") inside an npz archive.
func (a *Array) Str() (string, error) {
	if a.Size() != 1 {
		return "", fmt.Errorf("%w: Str requires a single element, have %d", ErrConversion, a.Size())
	}
	switch a.dt.kind {
	case kindBytes:
		return strings.TrimRight(string(a.raw), "\x00"), nil
	case kindString:
		runes := make([]rune, 0, a.dt.n)
		for i := 0; i < a.dt.n; i++ {
			runes = append(runes, rune(a.dt.order.Uint32(a.raw[4*i:])))
		}
		for len(runes) > 0 && runes[len(runes)-1] == 0 {
			runes = runes[:len(runes)-1]
		}
		return string(runes), nil
	}
	return "", fmt.Errorf("%w: %s as string", ErrConversion, a.dt.descr)
}

func (a *Array) int64At(off int) int64 {
	switch a.dt.n {
	case 1:
		return int64(int8(a.raw[off]))
	case 2:
		return int64(int16(a.dt.order.Uint16(a.raw[off:])))
	case 4:
		return int64(int32(a.dt.order.Uint32(a.raw[off:])))
	default:
		return int64(a.dt.order.Uint64(a.raw[off:]))
	}
}

func (a *Array) uint64At(off int) uint64 {
	switch a.dt.n {
	case 1:
		return uint64(a.raw[off])
	case 2:
		return uint64(a.dt.order.Uint16(a.raw[off:]))
	case 4:
		return uint64(a.dt.order.Uint32(a.raw[off:]))
	default:
		return a.dt.order.Uint64(a.raw[off:])
	}
}

func (a *Array) float64At(off int) float64 {
	if a.dt.n == 4 {
		return float64(math.Float32frombits(a.dt.order.Uint32(a.raw[off:])))
	}
	return math.Float64frombits(a.dt.order.Uint64(a.raw[off:]))
}

// FromInt64s builds a little-endian "<i8" array for writing. The product of
// shape must equal len(values); an empty shape denotes a 0-d scalar.
func FromInt64s(shape []int, values []int64) (*Array, error) {
	if err := checkShape(shape, len(values)); err != nil {
		return nil, err
	}
	raw := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(raw[8*i:], uint64(v))
	}
	dt, _ := parseDType("<i8")
	return &Array{dt: dt, shape: cloneShape(shape), raw: raw}, nil
}

// FromFloat64s builds a little-endian "<f8" array for writing.
func FromFloat64s(shape []int, values []float64) (*Array, error) {
	if err := checkShape(shape, len(values)); err != nil {
		return nil, err
	}
	raw := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}
	dt, _ := parseDType("<f8")
	return &Array{dt: dt, shape: cloneShape(shape), raw: raw}, nil
}

// FromString builds a 0-d byte-string scalar ("|S<n>"), the layout scipy
// uses for the sparse format tag.
func FromString(s string) *Array {
	dt, _ := parseDType(fmt.Sprintf("|S%d", len(s)))
	return &Array{dt: dt, shape: []int{}, raw: []byte(s)}
}

func checkShape(shape []int, n int) error {
	want := 1
	for _, d := range shape {
		if d < 0 {
			return fmt.Errorf("%w: negative dimension %d", ErrShapeMismatch, d)
		}
		want *= d
	}
	if want != n {
		return fmt.Errorf("%w: shape %v holds %d elements, have %d", ErrShapeMismatch, shape, want, n)
	}
	return nil
}

func cloneShape(shape []int) []int {
	out := make([]int, len(shape))
	copy(out, shape)
	return out
}

// Decode reads one npy stream: magic, version, header dictionary, payload.
// The payload must match the header-declared size exactly.
func Decode(r io.Reader) (*Array, error) {
	var pre [8]byte
	if _, err := io.ReadFull(r, pre[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotNPY, err)
	}
	if string(pre[:6]) != string(magic) {
		return nil, ErrNotNPY
	}
	major, minor := pre[6], pre[7]

	var headerLen int
	switch {
	case major == 1:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
		}
		headerLen = int(binary.LittleEndian.Uint16(b[:]))
	case major == 2 || major == 3:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
		}
		headerLen = int(binary.LittleEndian.Uint32(b[:]))
	default:
		return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, major, minor)
	}

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	h, err := parseHeader(string(header))
	if err != nil {
		return nil, err
	}
	dt, err := parseDType(h.descr)
	if err != nil {
		return nil, err
	}

	count := 1
	for _, d := range h.shape {
		if d < 0 || (d > 0 && count > maxElements/d) {
			return nil, fmt.Errorf("%w: shape %v", ErrBadHeader, h.shape)
		}
		count *= d
	}

	itemSize := dt.itemSize()
	if itemSize > 0 && count > maxElements/itemSize {
		return nil, fmt.Errorf("%w: payload too large", ErrBadHeader)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	if want := count * itemSize; len(raw) != want {
		return nil, fmt.Errorf("%w: want %d bytes, have %d", ErrTruncated, want, len(raw))
	}

	return &Array{dt: dt, shape: h.shape, colMajor: h.fortran, raw: raw}, nil
}

// Encode writes the array as a version 1.0 npy stream (2.0 when the header
// dictionary alone exceeds the 1.0 length field). The preamble plus header
// is padded to a multiple of 64 bytes, matching what NumPy itself emits.
func Encode(w io.Writer, a *Array) error {
	fortran := "False"
	if a.colMajor {
		fortran = "True"
	}
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }",
		a.dt.descr, fortran, shapeRepr(a.shape))

	preamble := len(magic) + 2 + 2 // magic, version, uint16 length
	major := byte(1)
	if len(dict)+65 > math.MaxUint16 { // padding never exceeds 64 bytes
		major = 2
		preamble += 2 // uint32 length
	}
	pad := 64 - (preamble+len(dict)+1)%64
	if pad == 64 {
		pad = 0
	}
	header := dict + strings.Repeat(" ", pad) + "\n"

	buf := make([]byte, 0, preamble+len(header))
	buf = append(buf, magic...)
	buf = append(buf, major, 0)
	if major == 1 {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(header)))
	} else {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(header)))
	}
	buf = append(buf, header...)

	if _, err := w.Write(buf); err != nil {
		return err
	}
	_, err := w.Write(a.raw)
	return err
}

// shapeRepr renders a shape the way Python prints tuples: (), (5,), (3, 4).
func shapeRepr(shape []int) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d,)", shape[0])
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, d := range shape {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", d)
	}
	sb.WriteByte(')')
	return sb.String()
}
