package sparse

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/photonq/gbsdata/npz"
)

// Archive member names used by scipy.sparse.save_npz.
const (
	memberFormat  = "format"
	memberShape   = "shape"
	memberData    = "data"
	memberIndices = "indices"
	memberIndptr  = "indptr"
)

// Load reads a CSR matrix from an npz archive with the layout produced by
// scipy.sparse.save_npz: format, shape, data, indices and indptr members.
// Matrices saved in any other sparse format fail with ErrUnsupportedFormat.
func Load(r io.ReaderAt, size int64) (*CSR, error) {
	a, err := npz.Read(r, size)
	if err != nil {
		return nil, err
	}
	return fromArchive(a)
}

// LoadFile reads a scipy-layout CSR matrix from the local filesystem.
func LoadFile(path string) (*CSR, error) {
	a, err := npz.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fromArchive(a)
}

// LoadFS reads a scipy-layout CSR matrix from fsys.
func LoadFS(fsys fs.FS, name string) (*CSR, error) {
	a, err := npz.ReadFS(fsys, name)
	if err != nil {
		return nil, err
	}
	return fromArchive(a)
}

func fromArchive(a *npz.Archive) (*CSR, error) {
	format, err := memberStr(a, memberFormat)
	if err != nil {
		return nil, err
	}
	if format != "csr" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	shape, err := memberInts(a, memberShape)
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 {
		return nil, fmt.Errorf("%w: %d dimensions", ErrInvalidShape, len(shape))
	}

	data, err := memberFloats(a, memberData)
	if err != nil {
		return nil, err
	}
	indices, err := memberInts(a, memberIndices)
	if err != nil {
		return nil, err
	}
	indptr, err := memberInts(a, memberIndptr)
	if err != nil {
		return nil, err
	}

	return New(shape[0], shape[1], data, indices, indptr)
}

func memberStr(a *npz.Archive, name string) (string, error) {
	arr, err := a.Member(name)
	if err != nil {
		return "", err
	}
	s, err := arr.Str()
	if err != nil {
		return "", fmt.Errorf("member %q: %w", name, err)
	}
	return s, nil
}

func memberFloats(a *npz.Archive, name string) ([]float64, error) {
	arr, err := a.Member(name)
	if err != nil {
		return nil, err
	}
	vals, err := arr.Float64s()
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", name, err)
	}
	return vals, nil
}

func memberInts(a *npz.Archive, name string) ([]int, error) {
	arr, err := a.Member(name)
	if err != nil {
		return nil, err
	}
	vals, err := arr.Int64s()
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", name, err)
	}
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}
	return out, nil
}

// Save writes the matrix to w in the scipy.sparse.save_npz layout. Index
// arrays are widened to int64, which scipy reads back without loss.
func Save(w io.Writer, m *CSR) error {
	data, err := npz.FromFloat64s([]int{len(m.data)}, m.data)
	if err != nil {
		return err
	}
	indices, err := npz.FromInt64s([]int{len(m.indices)}, int64s(m.indices))
	if err != nil {
		return err
	}
	indptr, err := npz.FromInt64s([]int{len(m.indptr)}, int64s(m.indptr))
	if err != nil {
		return err
	}
	shape, err := npz.FromInt64s([]int{2}, []int64{int64(m.rows), int64(m.cols)})
	if err != nil {
		return err
	}

	return npz.Write(w, map[string]*npz.Array{
		memberFormat:  npz.FromString("csr"),
		memberShape:   shape,
		memberData:    data,
		memberIndices: indices,
		memberIndptr:  indptr,
	})
}

// SaveFile writes the matrix to path in the scipy.sparse.save_npz layout.
func SaveFile(path string, m *CSR) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func int64s(vals []int) []int64 {
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = int64(v)
	}
	return out
}
