// Package npz reads and writes NumPy ".npy" arrays and ".npz" archives.
//
// An npz archive is a ZIP container (DEFLATE) whose members are npy streams;
// it is the format scipy.sparse uses to persist sparse matrices. The package
// supports the dtypes those files actually contain (bool, signed and
// unsigned integers, float32/64, fixed-width strings) in either byte order,
// npy format versions 1.0 through 3.0.
//
// Reading is strict: unknown header keys, unsupported dtypes and payload
// size mismatches are errors rather than best-effort guesses, so a corrupt
// dataset fails at load time instead of producing wrong samples later.
//
// Decoded arrays expose their payload through converting accessors:
//
//	arc, err := npz.ReadFile("planted.npz")
//	if err != nil { ... }
//	shape, err := arc.Member("shape")
//	if err != nil { ... }
//	dims, err := shape.Int64s()
//
// Writing produces version 1.0 headers and deterministic member order, and
// is what the test fixtures in this repository are built with.
package npz
