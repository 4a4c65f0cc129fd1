// Package sparse implements compressed sparse row (CSR) matrices with
// scipy-compatible persistence.
//
// A CSR matrix stores only its nonzero values, which suits photonic sample
// records where most detector modes register nothing. Load and Save speak
// the exact archive layout of scipy.sparse.save_npz, so matrices written by
// scipy load here unchanged and vice versa.
//
// CSR implements gonum's mat.Matrix, so small matrices can flow straight
// into gonum and large ones can be reduced without densifying via Row and
// SumAxis.
package sparse
