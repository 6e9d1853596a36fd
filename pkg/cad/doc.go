// Package cad implements the core of a Cylindrical Algebraic Decomposition
// engine: a decision procedure for conjunctions of polynomial sign
// constraints over the reals.
//
// The package is organized around four cooperating subsystems, mirrored by
// the file layout: projection and elimination (arena.go, projection.go,
// elimination.go), lifting and sample construction (ran.go, sampleset.go,
// witness.go, sampletree.go), sample-tree management (sampletree.go,
// elimination.go's incremental operations), and search with conflict
// extraction (search.go, conflict.go, constraint.go).
//
// A CAD instance (cad.go) owns an arena, one elimination set per variable
// level, a sample tree, a constraint table, and its settings. It is not safe
// for concurrent use from multiple goroutines; see Settings and the
// interrupt-flag contract on Check for the supported cancellation model.
package cad
