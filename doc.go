// Package gbsdata provides access to pre-generated datasets of photonic
// Gaussian boson sampling measurements.
//
// Each dataset is a sparse matrix of samples: one row per sample, one
// column per optical mode, each entry the number of photons (or, for
// threshold detectors, the 0/1 click) registered in that mode. Datasets
// were sampled from either a graph encoded into the device or the vibronic
// structure of a molecule, and carry the corresponding input alongside the
// samples: the graph adjacency matrix, or the molecular frequencies,
// Duschinsky matrix and displacements.
//
// # Quick Start
//
//	data, err := gbsdata.Planted()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sample, _ := data.Sample(3)            // one sample
//	first, _ := data.Select(gbsdata.Span{}.To(10)) // the first ten
//
//	for s := range data.All() {
//	    process(s)
//	}
//
// Metadata rides along:
//
//	data.NMean()     // 8, mean photon number of the device
//	data.Len()       // 50000 samples
//	data.Modes()     // 30 modes
//	data.Threshold() // true, samples are detector clicks
//
// Per-sample and per-mode totals come from Counts:
//
//	clicks, _ := data.Counts(gbsdata.AxisSamples) // clicks[3] == 11
//
// # Data files
//
// Sample files are scipy-layout npz archives, resolved from the WithFS or
// WithDir option, the GBSDATA_DIR environment variable or DefaultDir, in
// that order. The packaged descriptors are enumerated by List; LoadGraph
// and LoadMolecule accept custom descriptors for bundles that follow the
// same file layout.
//
// # Packaged datasets
//
//   - Planted, TaceAs, PHat: dense subgraph and maximum clique search
//   - Mutag0 to Mutag3: graph similarity
//   - Formic: vibronic spectrum of formic acid at zero temperature
//
// Samples were simulated without photon loss.
package gbsdata
