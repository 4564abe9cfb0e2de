// Package testutil provides testing utilities for geo3d.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random geometry and computing exact
// nearest neighbors.
//
// # Random Geometry
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.Points(1000, -100, 100)   // uniform in a cube
//	boxes := rng.Boxes(1000, -100, 100, 5)
//	q := rng.Shape(geom.KindLseg, -100, 100)
//
// # Exact Search (Ground Truth)
//
//	results := testutil.BruteForceNearest(shapes, query, k)
package testutil
