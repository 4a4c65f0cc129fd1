package gbsdata

// Kind distinguishes the two families of packaged datasets.
type Kind int

const (
	// KindGraph marks datasets sampled from a graph encoding.
	KindGraph Kind = iota

	// KindMolecule marks datasets sampled from a molecular vibronic
	// encoding.
	KindMolecule
)

func (k Kind) String() string {
	switch k {
	case KindGraph:
		return "graph"
	case KindMolecule:
		return "molecule"
	}
	return "unknown"
}

// Descriptor declares a dataset: its identity, the stem its files are named
// after and the sampling metadata that is not stored in the files. The
// sample and mode counts are properties of the backing files, not of the
// descriptor.
//
// Load a packaged descriptor with LoadGraph or LoadMolecule according to
// Kind, or declare your own descriptor to read a bundle with the same file
// layout.
type Descriptor struct {
	// Name identifies the dataset, e.g. "planted".
	Name string

	// Stem is the base name of the backing files: samples in
	// "<stem>.npz", the adjacency matrix in "<stem>_A.npz", molecular
	// parameters in "<stem>_w.npz" and friends.
	Stem string

	// NMean is the theoretical mean photon number of the device.
	NMean float64

	// Threshold reports whether the samples come from threshold
	// detectors.
	Threshold bool

	// Kind selects the loader the descriptor is meant for.
	Kind Kind

	// Temperature is the simulation temperature in kelvin. Only
	// meaningful for molecule datasets.
	Temperature float64
}

var (
	descPlanted = Descriptor{Name: "planted", Stem: "planted", NMean: 8, Threshold: true, Kind: KindGraph}
	descTaceAs  = Descriptor{Name: "TACE-AS", Stem: "TACE-AS", NMean: 8, Threshold: true, Kind: KindGraph}
	descPHat    = Descriptor{Name: "p_hat300-1", Stem: "p_hat300-1", NMean: 10, Threshold: true, Kind: KindGraph}
	descMutag0  = Descriptor{Name: "MUTAG_0", Stem: "MUTAG_0", NMean: 6, Threshold: false, Kind: KindGraph}
	descMutag1  = Descriptor{Name: "MUTAG_1", Stem: "MUTAG_1", NMean: 6, Threshold: false, Kind: KindGraph}
	descMutag2  = Descriptor{Name: "MUTAG_2", Stem: "MUTAG_2", NMean: 6, Threshold: false, Kind: KindGraph}
	descMutag3  = Descriptor{Name: "MUTAG_3", Stem: "MUTAG_3", NMean: 6, Threshold: false, Kind: KindGraph}
	descFormic  = Descriptor{Name: "formic", Stem: "formic", NMean: 1.56, Threshold: false, Kind: KindMolecule, Temperature: 0}
)

// registry lists the packaged datasets in documentation order.
var registry = []Descriptor{
	descPlanted,
	descTaceAs,
	descPHat,
	descMutag0,
	descMutag1,
	descMutag2,
	descMutag3,
	descFormic,
}

// List returns the descriptors of all packaged datasets in a stable order.
func List() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the packaged descriptor with the given name.
func Lookup(name string) (Descriptor, bool) {
	for _, d := range registry {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
