package npz

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Archive is a fully decoded npz container. All members are materialized
// eagerly so the backing file can be closed as soon as Read returns.
type Archive struct {
	names  []string
	arrays map[string]*Array
}

// Read decodes an npz archive from r. Member names are exposed without
// their ".npy" suffix, matching how NumPy and scipy address them.
func Read(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	a := &Archive{arrays: make(map[string]*Array, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", f.Name, err)
		}
		arr, err := Decode(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", f.Name, err)
		}
		name := strings.TrimSuffix(f.Name, ".npy")
		a.names = append(a.names, name)
		a.arrays[name] = arr
	}
	return a, nil
}

// ReadFile opens and decodes an npz archive from the local filesystem. The
// file handle is closed before ReadFile returns.
func ReadFile(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Read(f, info.Size())
}

// ReadFS decodes an npz archive addressed inside fsys. The whole file is
// buffered first because fs.File does not guarantee random access.
func ReadFS(fsys fs.FS, name string) (*Archive, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Names returns the member names in container order.
func (a *Archive) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Member returns the named array (without ".npy" suffix), or
// ErrMemberMissing.
func (a *Archive) Member(name string) (*Array, error) {
	arr, ok := a.arrays[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMemberMissing, name)
	}
	return arr, nil
}

// Write serializes members as a DEFLATE-compressed npz archive, the layout
// np.savez_compressed produces. Members are written in sorted name order so
// output is deterministic.
func Write(w io.Writer, members map[string]*Array) error {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(w)
	for _, name := range names {
		mw, err := zw.CreateHeader(&zip.FileHeader{
			Name:   name + ".npy",
			Method: zip.Deflate,
		})
		if err != nil {
			zw.Close()
			return fmt.Errorf("member %q: %w", name, err)
		}
		if err := Encode(mw, members[name]); err != nil {
			zw.Close()
			return fmt.Errorf("member %q: %w", name, err)
		}
	}
	return zw.Close()
}

// WriteFile writes an npz archive to path, creating or truncating it.
func WriteFile(path string, members map[string]*Array) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, members); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
