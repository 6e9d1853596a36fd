package cad

// ConflictGraph is the bipartite sample/constraint incidence matrix built
// while searching an UNSAT instance (§4.9): Set(s, c) records that sample
// path s was tested against constraint c and failed it, which is the raw
// material a later minimal-unsatisfiable-subset extraction would consume.
// This module stops at recording the matrix; extraction itself is out of
// scope (see DESIGN.md).
type ConflictGraph struct {
	samples     []string // path keys, in first-seen order
	sampleIndex map[string]int
	bits        []map[int]bool // per sample, set of failed constraint ids
}

// NewConflictGraph creates an empty ConflictGraph.
func NewConflictGraph() *ConflictGraph {
	return &ConflictGraph{sampleIndex: map[string]int{}}
}

// NewSample registers a sample path (identified by its string key, e.g. the
// concatenation of its RAN.String() values) and returns its row index,
// allocating a new row only if the key hasn't been seen before.
func (g *ConflictGraph) NewSample(pathKey string) int {
	if i, ok := g.sampleIndex[pathKey]; ok {
		return i
	}
	i := len(g.samples)
	g.samples = append(g.samples, pathKey)
	g.sampleIndex[pathKey] = i
	g.bits = append(g.bits, map[int]bool{})
	return i
}

// ConstraintID is a typed accessor kept for symmetry with NewSample; a
// constraint's id is simply its ConstraintTable index.
func (g *ConflictGraph) ConstraintID(c Constraint) int { return c.ID }

// Set records that sample row sampleIdx failed constraint constraintID.
func (g *ConflictGraph) Set(sampleIdx, constraintID int) {
	g.bits[sampleIdx][constraintID] = true
}

// FailedConstraints returns the constraint ids recorded against a sample
// row.
func (g *ConflictGraph) FailedConstraints(sampleIdx int) []int {
	out := make([]int, 0, len(g.bits[sampleIdx]))
	for id := range g.bits[sampleIdx] {
		out = append(out, id)
	}
	return out
}

// SampleCount returns the number of distinct sample rows recorded.
func (g *ConflictGraph) SampleCount() int { return len(g.samples) }
