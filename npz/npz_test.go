package npz

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMembers(t *testing.T) map[string]*Array {
	t.Helper()

	data, err := FromFloat64s([]int{3}, []float64{1, 2, 3})
	require.NoError(t, err)
	indices, err := FromInt64s([]int{3}, []int64{0, 2, 1})
	require.NoError(t, err)
	shape, err := FromInt64s([]int{2}, []int64{2, 3})
	require.NoError(t, err)

	return map[string]*Array{
		"format":  FromString("csr"),
		"data":    data,
		"indices": indices,
		"shape":   shape,
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testMembers(t)))

	a, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	// Member names come back without the ".npy" suffix, sorted by Write.
	assert.Equal(t, []string{"data", "format", "indices", "shape"}, a.Names())

	format, err := a.Member("format")
	require.NoError(t, err)
	s, err := format.Str()
	require.NoError(t, err)
	assert.Equal(t, "csr", s)

	shape, err := a.Member("shape")
	require.NoError(t, err)
	dims, err := shape.Int64s()
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, dims)

	_, err = a.Member("indptr")
	assert.ErrorIs(t, err, ErrMemberMissing)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.npz")
	require.NoError(t, WriteFile(path, testMembers(t)))

	a, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, a.Names(), 4)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.npz"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testMembers(t)))

	fsys := fstest.MapFS{
		"datasets/sample.npz": &fstest.MapFile{Data: buf.Bytes()},
	}

	a, err := ReadFS(fsys, "datasets/sample.npz")
	require.NoError(t, err)

	data, err := a.Member("data")
	require.NoError(t, err)
	vals, err := data.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, vals)
}

func TestReadNotAnArchive(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not a zip file")), 14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening archive")
}

func TestReadCorruptMember(t *testing.T) {
	var zbuf bytes.Buffer
	zw := zip.NewWriter(&zbuf)
	mw, err := zw.Create("bad.npy")
	require.NoError(t, err)
	_, err = mw.Write([]byte("garbage"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Read(bytes.NewReader(zbuf.Bytes()), int64(zbuf.Len()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotNPY)
	assert.Contains(t, err.Error(), `member "bad.npy"`)
}
