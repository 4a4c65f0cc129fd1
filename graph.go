package gbsdata

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

// GraphDataset is a Dataset whose samples were generated from a graph
// encoded into the photonic device. It additionally carries the adjacency
// matrix of that graph.
type GraphDataset struct {
	Dataset

	adj *mat.Dense
}

// Adjacency returns the adjacency matrix of the generating graph, a
// symmetric Modes() x Modes() 0/1 matrix with a zero diagonal. The matrix
// is shared with the dataset and must not be modified.
func (d *GraphDataset) Adjacency() *mat.Dense { return d.adj }

// LoadGraph loads a graph dataset described by desc: the sample matrix from
// "<stem>.npz" and the adjacency matrix from "<stem>_A.npz". Use it with
// one of the packaged descriptors from List, or with your own descriptor to
// read a bundle with the same file layout.
func LoadGraph(desc Descriptor, opts ...Option) (*GraphDataset, error) {
	o := applyOptions(opts...)

	start := time.Now()
	d, err := loadGraph(desc, o)
	elapsed := time.Since(start)

	o.metrics.RecordLoad(desc.Name, elapsed, err)
	if err != nil {
		o.logger.LogLoad(desc.Name, 0, 0, elapsed, err)
		return nil, err
	}
	o.logger.LogLoad(desc.Name, d.Len(), d.Modes(), elapsed, nil)
	return d, nil
}

func loadGraph(desc Descriptor, o *options) (*GraphDataset, error) {
	fsys, err := o.source()
	if err != nil {
		return nil, loadError(desc.Name, "", err)
	}

	base, err := loadBase(desc, fsys)
	if err != nil {
		return nil, err
	}

	file := desc.Stem + "_A.npz"
	m, err := loadMatrix(fsys, desc.Name, file)
	if err != nil {
		return nil, err
	}
	adj := m.Dense()
	if err := validateAdjacency(adj, base.Modes()); err != nil {
		return nil, loadError(desc.Name, file, err)
	}

	return &GraphDataset{Dataset: base, adj: adj}, nil
}

// validateAdjacency checks the structural properties every generating graph
// has: one node per mode, undirected (symmetric), unweighted (0/1 entries)
// and loop-free (zero diagonal).
func validateAdjacency(adj *mat.Dense, modes int) error {
	rows, cols := adj.Dims()
	if rows != cols {
		return fmt.Errorf("adjacency matrix is %dx%d, not square", rows, cols)
	}
	if rows != modes {
		return fmt.Errorf("adjacency matrix is %dx%d for %d modes", rows, cols, modes)
	}

	for i := range rows {
		if v := adj.At(i, i); v != 0 {
			return fmt.Errorf("adjacency matrix has nonzero diagonal entry %v at node %d", v, i)
		}
		for j := i + 1; j < cols; j++ {
			v := adj.At(i, j)
			if v != 0 && v != 1 {
				return fmt.Errorf("adjacency matrix entry (%d,%d) is %v, not 0 or 1", i, j, v)
			}
			if v != adj.At(j, i) {
				return fmt.Errorf("adjacency matrix is not symmetric at (%d,%d)", i, j)
			}
		}
	}
	return nil
}

// Planted loads samples generated from a random 30-node graph with a dense
// 10-node subgraph planted inside. The graph joins a 20-node Erdős-Rényi
// graph (edge probability 0.5) to a 10-node graph (edge probability 0.875)
// through 8 randomly chosen vertex pairs; the planted clique sits in the
// final 10 nodes.
//
// 50000 threshold samples at mean photon number 8.
func Planted(opts ...Option) (*GraphDataset, error) {
	return LoadGraph(descPlanted, opts...)
}

// TaceAs loads samples generated from the binding interaction graph of the
// TACE-AS protein-molecule complex. Nodes are pairs of atoms in the target
// protein and the pharmaceutical molecule; edges join pairs at nearly equal
// distance, so cliques correspond to stable docking configurations. The
// graph has multiple maximum cliques of 8 nodes.
//
// 50000 threshold samples over 24 modes at mean photon number 8.
func TaceAs(opts ...Option) (*GraphDataset, error) {
	return LoadGraph(descTaceAs, opts...)
}

// PHat loads samples generated from the p_hat300-1 graph of the DIMACS
// maximum-clique benchmark, a 300-node random graph from the p-hat
// generator whose cliques are hard to find. The best known clique has size
// 8, at nodes 53, 123, 180, 218, 246, 267, 270 and 286.
//
// 50000 threshold samples at mean photon number 10.
func PHat(opts ...Option) (*GraphDataset, error) {
	return LoadGraph(descPHat, opts...)
}

// Mutag0 loads samples generated from the first graph of the MUTAG
// molecular dataset, used for graph similarity studies.
//
// 20000 photon-number-resolved samples over 17 modes at mean photon
// number 6.
func Mutag0(opts ...Option) (*GraphDataset, error) {
	return LoadGraph(descMutag0, opts...)
}

// Mutag1 loads samples generated from the second graph of the MUTAG
// molecular dataset.
//
// 20000 photon-number-resolved samples over 13 modes at mean photon
// number 6.
func Mutag1(opts ...Option) (*GraphDataset, error) {
	return LoadGraph(descMutag1, opts...)
}

// Mutag2 loads samples generated from the third graph of the MUTAG
// molecular dataset.
//
// 20000 photon-number-resolved samples over 13 modes at mean photon
// number 6.
func Mutag2(opts ...Option) (*GraphDataset, error) {
	return LoadGraph(descMutag2, opts...)
}

// Mutag3 loads samples generated from the fourth graph of the MUTAG
// molecular dataset.
//
// 20000 photon-number-resolved samples over 19 modes at mean photon
// number 6.
func Mutag3(opts ...Option) (*GraphDataset, error) {
	return LoadGraph(descMutag3, opts...)
}
