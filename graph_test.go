package gbsdata

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/photonq/gbsdata/sparse"
	"github.com/photonq/gbsdata/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAdjacency(t *testing.T) {
	d := loadTestGraph(t)
	fx := testutil.SmallGraph()

	adj := d.Adjacency()
	rows, cols := adj.Dims()
	require.Equal(t, d.Modes(), rows)
	require.Equal(t, d.Modes(), cols)

	for i := range rows {
		for j := range cols {
			assert.Equal(t, fx.Adjacency[i][j], adj.At(i, j))
		}
	}
}

func TestGraphLeafConstructors(t *testing.T) {
	// Every packaged graph dataset loads through the same path; exercise
	// each constructor against fixture files written under its stem.
	leaves := []struct {
		name      string
		stem      string
		load      func(...Option) (*GraphDataset, error)
		nMean     float64
		threshold bool
	}{
		{name: "Planted", stem: "planted", load: Planted, nMean: 8, threshold: true},
		{name: "TaceAs", stem: "TACE-AS", load: TaceAs, nMean: 8, threshold: true},
		{name: "PHat", stem: "p_hat300-1", load: PHat, nMean: 10, threshold: true},
		{name: "Mutag0", stem: "MUTAG_0", load: Mutag0, nMean: 6, threshold: false},
		{name: "Mutag1", stem: "MUTAG_1", load: Mutag1, nMean: 6, threshold: false},
		{name: "Mutag2", stem: "MUTAG_2", load: Mutag2, nMean: 6, threshold: false},
		{name: "Mutag3", stem: "MUTAG_3", load: Mutag3, nMean: 6, threshold: false},
	}

	for _, leaf := range leaves {
		t.Run(leaf.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, testutil.WriteGraph(dir, leaf.stem, testutil.SmallGraph()))

			d, err := leaf.load(WithDir(dir))
			require.NoError(t, err)

			assert.Equal(t, leaf.stem, d.Name())
			assert.Equal(t, leaf.nMean, d.NMean())
			assert.Equal(t, leaf.threshold, d.Threshold())
		})
	}
}

func TestLoadGraphCustomDescriptor(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, testutil.WriteGraph(dir, "mygraph", testutil.SmallGraph()))

	d, err := LoadGraph(Descriptor{
		Name:      "my graph",
		Stem:      "mygraph",
		NMean:     3.5,
		Threshold: true,
		Kind:      KindGraph,
	}, WithDir(dir))
	require.NoError(t, err)

	assert.Equal(t, "my graph", d.Name())
	assert.Equal(t, 3.5, d.NMean())
	assert.Equal(t, 6, d.Len())
}

func TestLoadGraphMissingFiles(t *testing.T) {
	t.Run("NoSampleFile", func(t *testing.T) {
		_, err := Planted(WithDir(t.TempDir()))

		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, "planted", le.Dataset)
		assert.Equal(t, "planted.npz", le.File)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("NoAdjacencyFile", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, testutil.WriteGraph(dir, "planted", testutil.SmallGraph()))
		require.NoError(t, os.Remove(filepath.Join(dir, "planted_A.npz")))

		_, err := Planted(WithDir(dir))

		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, "planted_A.npz", le.File)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestLoadGraphCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, testutil.WriteGraph(dir, "planted", testutil.SmallGraph()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planted.npz"), []byte("not an archive"), 0o644))

	_, err := Planted(WithDir(dir))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, zip.ErrFormat)
}

func TestLoadGraphRejectsNegativeSamples(t *testing.T) {
	fx := testutil.SmallGraph()
	fx.Samples[2][1] = -1

	dir := t.TempDir()
	require.NoError(t, testutil.WriteGraph(dir, "planted", fx))

	_, err := Planted(WithDir(dir))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "planted.npz", le.File)
	assert.Contains(t, le.Err.Error(), "non-negative integer")
}

func TestLoadGraphRejectsFractionalSamples(t *testing.T) {
	// Fractional values cannot come out of the int-based fixture, so write
	// the sample matrix directly.
	dir := t.TempDir()
	require.NoError(t, testutil.WriteGraph(dir, "planted", testutil.SmallGraph()))

	m, err := sparse.FromDense(1, 4, []float64{0.5, 0, 0, 0})
	require.NoError(t, err)
	require.NoError(t, sparse.SaveFile(filepath.Join(dir, "planted.npz"), m))

	_, err = Planted(WithDir(dir))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Err.Error(), "non-negative integer")
}

func TestLoadGraphRejectsOverflowingSamples(t *testing.T) {
	// Integral non-negative floats can still exceed what an integer count
	// holds, alone or summed along an axis. Such files must fail the load
	// instead of handing out wrapped-around counts.
	write := func(t *testing.T, values []float64) string {
		t.Helper()
		dir := t.TempDir()
		require.NoError(t, testutil.WriteGraph(dir, "planted", testutil.SmallGraph()))

		m, err := sparse.FromDense(1, 4, values)
		require.NoError(t, err)
		require.NoError(t, sparse.SaveFile(filepath.Join(dir, "planted.npz"), m))
		return dir
	}

	t.Run("SingleValue", func(t *testing.T) {
		_, err := Planted(WithDir(write(t, []float64{1e300, 0, 0, 0})))

		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, "planted.npz", le.File)
		assert.Contains(t, le.Err.Error(), "overflows")
	})

	t.Run("Total", func(t *testing.T) {
		// Each value fits, their sum does not.
		_, err := Planted(WithDir(write(t, []float64{1 << 62, 1 << 62, 0, 0})))

		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, "planted.npz", le.File)
		assert.Contains(t, le.Err.Error(), "overflowing")
	})
}

func TestLoadGraphRejectsBadAdjacency(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*testutil.GraphFixture)
		wantMsg string
	}{
		{
			name: "Asymmetric",
			mutate: func(fx *testutil.GraphFixture) {
				fx.Adjacency[0][1] = 1
				fx.Adjacency[1][0] = 0
			},
			wantMsg: "not symmetric",
		},
		{
			name: "NonzeroDiagonal",
			mutate: func(fx *testutil.GraphFixture) {
				fx.Adjacency[2][2] = 1
			},
			wantMsg: "diagonal",
		},
		{
			name: "WeightedEdge",
			mutate: func(fx *testutil.GraphFixture) {
				fx.Adjacency[0][1] = 2
				fx.Adjacency[1][0] = 2
			},
			wantMsg: "not 0 or 1",
		},
		{
			name: "WrongSize",
			mutate: func(fx *testutil.GraphFixture) {
				fx.Adjacency = [][]float64{
					{0, 1},
					{1, 0},
				}
			},
			wantMsg: "modes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := testutil.SmallGraph()
			tt.mutate(&fx)

			dir := t.TempDir()
			require.NoError(t, testutil.WriteGraph(dir, "planted", fx))

			_, err := Planted(WithDir(dir))

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, "planted_A.npz", le.File)
			assert.Contains(t, le.Err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadErrorMessage(t *testing.T) {
	err := loadError("planted", "planted.npz", errors.New("boom"))
	assert.Equal(t, `loading dataset "planted": file "planted.npz": boom`, err.Error())

	err = loadError("planted", "", errors.New("boom"))
	assert.Equal(t, `loading dataset "planted": boom`, err.Error())
}
