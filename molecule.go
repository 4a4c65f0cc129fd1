package gbsdata

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/photonq/gbsdata/sparse"
	"gonum.org/v1/gonum/mat"
)

// MoleculeDataset is a Dataset whose samples were generated from the
// vibronic structure of a molecule. It additionally carries the molecular
// input parameters of the sampling: the normal mode frequencies of the
// electronic ground state (w) and the excited state (wp) in inverse
// centimeters, the Duschinsky matrix, the displacement vector delta and the
// temperature of the simulation.
//
// The parameter dimension is the number of vibrational normal modes of the
// molecule, which is independent of Modes(): the device encodes each
// vibrational mode in more than one optical mode.
type MoleculeDataset struct {
	Dataset

	w, wp, delta []float64
	ud           *mat.Dense
	temperature  float64
}

// W returns the ground state normal mode frequencies in inverse
// centimeters. The slice is shared with the dataset and must not be
// modified; the same holds for Wp and Delta.
func (d *MoleculeDataset) W() []float64 { return d.w }

// Wp returns the excited state normal mode frequencies in inverse
// centimeters.
func (d *MoleculeDataset) Wp() []float64 { return d.wp }

// Duschinsky returns the Duschinsky matrix relating ground and excited
// state normal coordinates. The matrix is shared with the dataset and must
// not be modified.
func (d *MoleculeDataset) Duschinsky() *mat.Dense { return d.ud }

// Delta returns the displacement vector, with entries
// delta_i = sqrt(w_i/hbar) * d_i for Duschinsky displacement d.
func (d *MoleculeDataset) Delta() []float64 { return d.delta }

// Temperature returns the simulation temperature in kelvin.
func (d *MoleculeDataset) Temperature() float64 { return d.temperature }

// LoadMolecule loads a molecule dataset described by desc: the sample
// matrix from "<stem>.npz" and the molecular parameters from
// "<stem>_w.npz", "<stem>_wp.npz", "<stem>_Ud.npz" and "<stem>_delta.npz".
// The vector files store one row; the parameters must agree on the number
// of vibrational modes.
func LoadMolecule(desc Descriptor, opts ...Option) (*MoleculeDataset, error) {
	o := applyOptions(opts...)

	start := time.Now()
	d, err := loadMolecule(desc, o)
	elapsed := time.Since(start)

	o.metrics.RecordLoad(desc.Name, elapsed, err)
	if err != nil {
		o.logger.LogLoad(desc.Name, 0, 0, elapsed, err)
		return nil, err
	}
	o.logger.LogLoad(desc.Name, d.Len(), d.Modes(), elapsed, nil)
	return d, nil
}

func loadMolecule(desc Descriptor, o *options) (*MoleculeDataset, error) {
	fsys, err := o.source()
	if err != nil {
		return nil, loadError(desc.Name, "", err)
	}

	base, err := loadBase(desc, fsys)
	if err != nil {
		return nil, err
	}

	w, err := loadVector(fsys, desc, "_w.npz")
	if err != nil {
		return nil, err
	}
	wp, err := loadVector(fsys, desc, "_wp.npz")
	if err != nil {
		return nil, err
	}
	delta, err := loadVector(fsys, desc, "_delta.npz")
	if err != nil {
		return nil, err
	}

	udFile := desc.Stem + "_Ud.npz"
	m, err := loadMatrix(fsys, desc.Name, udFile)
	if err != nil {
		return nil, err
	}
	ud := m.Dense()

	if err := validateMolecule(w, wp, delta, ud); err != nil {
		return nil, loadError(desc.Name, udFile, err)
	}

	return &MoleculeDataset{
		Dataset:     base,
		w:           w,
		wp:          wp,
		delta:       delta,
		ud:          ud,
		temperature: desc.Temperature,
	}, nil
}

// loadVector reads a parameter vector stored as the first row of a sparse
// matrix, the layout scipy.sparse produces for a 1xk array.
func loadVector(fsys fs.FS, desc Descriptor, suffix string) ([]float64, error) {
	file := desc.Stem + suffix
	m, err := sparse.LoadFS(fsys, file)
	if err != nil {
		return nil, loadError(desc.Name, file, err)
	}
	rows, cols := m.Dims()
	if rows < 1 || cols < 1 {
		return nil, loadError(desc.Name, file, fmt.Errorf("parameter vector is empty"))
	}
	return m.Row(0), nil
}

// validateMolecule checks that the four parameters describe the same number
// of vibrational modes.
func validateMolecule(w, wp, delta []float64, ud *mat.Dense) error {
	k := len(w)
	rows, cols := ud.Dims()
	if rows != cols {
		return fmt.Errorf("Duschinsky matrix is %dx%d, not square", rows, cols)
	}
	if len(wp) != k || len(delta) != k || rows != k {
		return fmt.Errorf("inconsistent parameter dimensions: w %d, wp %d, delta %d, Duschinsky %dx%d",
			k, len(wp), len(delta), rows, cols)
	}
	return nil
}

// Formic loads samples generated from formic acid at zero temperature. The
// molecular parameters follow Huh et al., "Boson sampling for molecular
// vibronic spectra" (2015); the samples can be used to recover the vibronic
// absorption spectrum of the molecule.
//
// 20000 photon-number-resolved samples over 14 modes at mean photon
// number 1.56.
func Formic(opts ...Option) (*MoleculeDataset, error) {
	return LoadMolecule(descFormic, opts...)
}
