// Package testutil provides testing utilities for gbsdata.
//
// This package is intended for use in tests only. It provides small
// deterministic dataset fixtures and writers that lay them out on disk
// exactly like the packaged data files, so dataset loading can be tested
// without the real multi-megabyte sample archives.
//
// # Fixtures
//
//	fx := testutil.SmallGraph()
//	err := testutil.WriteGraph(dir, "planted", fx)
//
//	mfx := testutil.SmallMolecule()
//	err := testutil.WriteMolecule(dir, "formic", mfx)
package testutil
