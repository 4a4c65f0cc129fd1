package testutil

import (
	"path/filepath"

	"github.com/photonq/gbsdata/sparse"
)

// GraphFixture is an in-memory graph dataset: sample rows plus the
// adjacency matrix of the generating graph.
type GraphFixture struct {
	Samples   [][]int
	Adjacency [][]float64
}

// MoleculeFixture is an in-memory molecule dataset: sample rows plus the
// vibronic input parameters.
type MoleculeFixture struct {
	Samples    [][]int
	W          []float64
	Wp         []float64
	Delta      []float64
	Duschinsky [][]float64
}

// SmallGraph returns a deterministic 6-sample, 4-mode fixture. The graph is
// the 4-cycle 0-1-2-3-0.
func SmallGraph() GraphFixture {
	return GraphFixture{
		Samples: [][]int{
			{0, 0, 0, 0},
			{1, 0, 1, 0},
			{0, 1, 0, 1},
			{1, 1, 0, 0},
			{0, 0, 0, 1},
			{1, 1, 1, 1},
		},
		Adjacency: [][]float64{
			{0, 1, 0, 1},
			{1, 0, 1, 0},
			{0, 1, 0, 1},
			{1, 0, 1, 0},
		},
	}
}

// SmallMolecule returns a deterministic 6-sample, 4-mode fixture with
// two-dimensional vibronic parameters, mirroring how the packaged molecule
// data stores fewer vibrational modes than optical modes.
func SmallMolecule() MoleculeFixture {
	return MoleculeFixture{
		Samples: [][]int{
			{0, 0, 0, 0},
			{2, 0, 1, 0},
			{0, 1, 0, 0},
			{1, 0, 0, 3},
			{0, 2, 1, 0},
			{1, 1, 1, 1},
		},
		W:     []float64{1001.5, 3765.2},
		Wp:    []float64{1001.1, 3760.1},
		Delta: []float64{0.84, -0.17},
		Duschinsky: [][]float64{
			{0.98, -0.2},
			{0.2, 0.98},
		},
	}
}

// WriteGraph writes the fixture under dir with the packaged file layout:
// samples in "<stem>.npz" and the adjacency matrix in "<stem>_A.npz".
func WriteGraph(dir, stem string, fx GraphFixture) error {
	if err := writeMatrix(filepath.Join(dir, stem+".npz"), intRows(fx.Samples)); err != nil {
		return err
	}
	return writeMatrix(filepath.Join(dir, stem+"_A.npz"), fx.Adjacency)
}

// WriteMolecule writes the fixture under dir with the packaged file layout:
// samples in "<stem>.npz", parameter vectors as single-row matrices in
// "<stem>_w.npz", "<stem>_wp.npz" and "<stem>_delta.npz", and the
// Duschinsky matrix in "<stem>_Ud.npz".
func WriteMolecule(dir, stem string, fx MoleculeFixture) error {
	if err := writeMatrix(filepath.Join(dir, stem+".npz"), intRows(fx.Samples)); err != nil {
		return err
	}
	if err := writeMatrix(filepath.Join(dir, stem+"_w.npz"), [][]float64{fx.W}); err != nil {
		return err
	}
	if err := writeMatrix(filepath.Join(dir, stem+"_wp.npz"), [][]float64{fx.Wp}); err != nil {
		return err
	}
	if err := writeMatrix(filepath.Join(dir, stem+"_delta.npz"), [][]float64{fx.Delta}); err != nil {
		return err
	}
	return writeMatrix(filepath.Join(dir, stem+"_Ud.npz"), fx.Duschinsky)
}

// writeMatrix saves rows as a scipy-layout CSR file, the format every
// dataset file uses.
func writeMatrix(path string, rows [][]float64) error {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}

	flat := make([]float64, 0, r*c)
	for _, row := range rows {
		flat = append(flat, row...)
	}

	m, err := sparse.FromDense(r, c, flat)
	if err != nil {
		return err
	}
	return sparse.SaveFile(path, m)
}

func intRows(rows [][]int) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = float64(v)
		}
	}
	return out
}
