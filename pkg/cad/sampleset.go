package cad

// SampleComparator implements the §4.4 total order over RANs that orders a
// SampleSet (Check's lifting does not use it; it visits a node's children in
// ascending real order): integrality first (integers before non-integers),
// then rationality (rationals before irrationals), then representation
// bit-size (smaller first), then the is-root flag (non-root witnesses
// before roots, since a witness covers an open cell while a root covers
// only a point), and finally the RAN's natural real order. NaturalOrdering
// skips straight to the last rule.
type SampleComparator struct {
	Ordering SampleOrdering
}

// Less reports whether a should be preferred over (ordered before) b.
func (c SampleComparator) Less(a, b RAN) bool {
	if c.Ordering == NaturalOrdering {
		return a.Less(b)
	}
	if a.IsInteger() != b.IsInteger() {
		return a.IsInteger()
	}
	if a.IsNumeric() != b.IsNumeric() {
		return a.IsNumeric()
	}
	if sa, sb := a.BitSize(), b.BitSize(); sa != sb {
		return sa < sb
	}
	if a.IsRoot() != b.IsRoot() {
		return !a.IsRoot()
	}
	return a.Less(b)
}

// SampleSet holds the candidate lifting samples at one tree level: a
// deduplicated slice ordered by SampleComparator preference, most preferred
// first (§4.4). Sets at this scale (one per sample-tree node, populated
// from a single elimination polynomial's real roots plus a handful of
// witnesses) are small enough that a sorted slice, not a heap, is the
// simplest correct structure -- insertion and promotion are O(n), which is
// immaterial here.
type SampleSet struct {
	cmp SampleComparator
	s   []RAN
}

// NewSampleSet creates an empty SampleSet using the given comparator.
func NewSampleSet(cmp SampleComparator) *SampleSet {
	return &SampleSet{cmp: cmp}
}

// Len reports the number of distinct samples held.
func (ss *SampleSet) Len() int { return len(ss.s) }

// All returns every held sample, most preferred first.
func (ss *SampleSet) All() []RAN {
	out := make([]RAN, len(ss.s))
	copy(out, ss.s)
	return out
}

func (ss *SampleSet) insertSorted(r RAN) {
	i := 0
	for i < len(ss.s) && ss.cmp.Less(ss.s[i], r) {
		i++
	}
	ss.s = append(ss.s, RAN{})
	copy(ss.s[i+1:], ss.s[i:])
	ss.s[i] = r
}

// Insert adds r, applying the promotion rules: a numeric RAN replaces an
// equal interval RAN already present, and IsRoot()==true replaces an equal
// non-root witness (a root is strictly more informative than an
// arbitrarily-chosen witness at the same real value). Returns true if r was
// newly added (as opposed to replacing or being redundant with an existing
// entry).
func (ss *SampleSet) Insert(r RAN) bool {
	for i, cur := range ss.s {
		if !cur.Equal(r) {
			continue
		}
		promoted := cur
		if r.IsNumeric() && !cur.IsNumeric() {
			promoted = r
		}
		if r.IsRoot() && !promoted.IsRoot() {
			promoted = promoted.WithRoot(true)
		}
		ss.s = append(ss.s[:i], ss.s[i+1:]...)
		ss.insertSorted(promoted)
		return false
	}
	ss.insertSorted(r)
	return true
}

// Next peeks the preferred (first) sample without removing it.
func (ss *SampleSet) Next() (RAN, bool) {
	if len(ss.s) == 0 {
		return RAN{}, false
	}
	return ss.s[0], true
}

// Pop removes and returns the preferred sample.
func (ss *SampleSet) Pop() (RAN, bool) {
	r, ok := ss.Next()
	if ok {
		ss.s = ss.s[1:]
	}
	return r, ok
}

// Simplify rebuilds the set by re-inserting every held sample through
// Insert, re-sorting it and merging equal entries under the promotion
// rules.
func (ss *SampleSet) Simplify() {
	dedup := NewSampleSet(ss.cmp)
	for _, r := range ss.s {
		dedup.Insert(r)
	}
	*ss = *dedup
}

// IsOptimal reports whether r is the most-preferred sample currently held
// (i.e. popping would return it).
func (ss *SampleSet) IsOptimal(r RAN) bool {
	n, ok := ss.Next()
	return ok && n.Equal(r)
}
