package cad

import (
	"sort"

	"github.com/ths-rwth/carl-sub000/pkg/cad/bignum"
)

// Node is one node of the Sample Tree (§4.6). The synthetic tree root has
// Depth 0 and an unused Sample; a node at Depth d holds the sample chosen
// for variable-order level d-1, and its Children are the samples chosen for
// level d given that this node's path holds.
type Node struct {
	Sample   RAN
	Depth    int
	Parent   *Node
	Children []*Node
}

// SampleTree is the per-CAD-instance tree of partial sample points explored
// during lifting (§4.6).
type SampleTree struct {
	Root *Node
}

// NewSampleTree creates a tree containing only the synthetic root.
func NewSampleTree() *SampleTree {
	return &SampleTree{Root: &Node{Depth: 0}}
}

// findChild returns the existing child of parent equal to r, if any.
func findChild(parent *Node, r RAN) *Node {
	for _, c := range parent.Children {
		if c.Sample.Equal(r) {
			return c
		}
	}
	return nil
}

// StoreSample attaches r as a child of parent, promoting an existing equal
// child's is-root flag rather than duplicating it (the same promotion rule
// SampleSet.Insert applies). Returns the (possibly pre-existing, possibly
// promoted) child node.
func (t *SampleTree) StoreSample(parent *Node, r RAN) *Node {
	if existing := findChild(parent, r); existing != nil {
		if r.IsNumeric() && !existing.Sample.IsNumeric() {
			existing.Sample = r
		}
		if r.IsRoot() && !existing.Sample.IsRoot() {
			existing.Sample = existing.Sample.WithRoot(true)
		}
		return existing
	}
	child := &Node{Sample: r, Depth: parent.Depth + 1, Parent: parent}
	parent.Children = append(parent.Children, child)
	sort.Slice(parent.Children, func(i, j int) bool {
		return parent.Children[i].Sample.Less(parent.Children[j].Sample)
	})
	return child
}

// ConstructPath walks from the root, creating or reusing nodes for each
// successive RAN in values, and returns the final node (the node at depth
// len(values)). This materializes one specific sample path without
// constructing the full SampleSet at any intermediate level -- the
// operation the Search Engine's trace-lifting phase needs to replay a
// previously found witness path.
func (t *SampleTree) ConstructPath(values []RAN) *Node {
	cur := t.Root
	for _, v := range values {
		cur = t.StoreSample(cur, v)
	}
	return cur
}

// SamplesAt returns node's children's samples in ascending real order (the
// order StoreSample keeps them in).
func (t *SampleTree) SamplesAt(node *Node) []RAN {
	out := make([]RAN, len(node.Children))
	for i, c := range node.Children {
		out[i] = c.Sample
	}
	return out
}

// PathValues returns the sequence of samples from the root to node
// (exclusive of the synthetic root itself).
func PathValues(node *Node) []RAN {
	var rev []RAN
	for n := node; n.Parent != nil; n = n.Parent {
		rev = append(rev, n.Sample)
	}
	out := make([]RAN, len(rev))
	for i, r := range rev {
		out[len(rev)-1-i] = r
	}
	return out
}

// PruneSubtree detaches node's children, discarding previously computed
// lifting results beneath it. The Search Engine in this module never calls
// this automatically -- SPEC_FULL.md's Sample Tree pruning question is
// resolved in favor of never evicting computed samples (see DESIGN.md) --
// it is exposed for callers that want to reclaim memory after a subtree is
// known to be permanently irrelevant (e.g. a variable's bounds changed).
func PruneSubtree(node *Node) {
	node.Children = nil
}

// LevelSamples computes the alternating root/witness sequence for one
// sample-tree level from a sorted ascending list of real roots (§4.6's
// per-level construction routine): a witness below the first root, then
// each root followed by a witness up to the next root (or, after the last
// root, a witness above it). If roots is empty, the whole line is one cell
// and a single arbitrary witness (zero) is returned.
//
// replaced reports, for diagnostic purposes, how many times the witness
// picked between two consecutive roots equalled one of them (which happens
// when the input holds the same root twice); the witness and the repeated
// root are then both left out. The half-bounded witnesses below the first
// and above the last root are not checked.
func LevelSamples(roots []RAN) (samples []RAN, replaced int) {
	if len(roots) == 0 {
		return []RAN{NewNumericRAN(bignum.Zero, false)}, 0
	}
	sorted := append([]RAN(nil), roots...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	samples = append(samples, PickWitnessBelow(sorted[0]))
	samples = append(samples, sorted[0].WithRoot(true))
	for i := 1; i < len(sorted); i++ {
		w := PickWitness(sorted[i-1], sorted[i])
		if w.Equal(sorted[i-1]) || w.Equal(sorted[i]) {
			replaced++
			continue
		}
		samples = append(samples, w)
		samples = append(samples, sorted[i].WithRoot(true))
	}
	samples = append(samples, PickWitnessAbove(sorted[len(sorted)-1]))
	return samples, replaced
}
