package cad

import "github.com/cespare/xxhash/v2"

// PolyHandle is a stable, copyable reference to a UPolyValue owned by a
// PolynomialArena (§4.1). Handles count up from 0 in interning order;
// invalidHandle (-1) is never a valid handle.
type PolyHandle int

// invalidHandle marks "no polynomial" (e.g. a parent slot with no second
// parent).
const invalidHandle PolyHandle = -1

// PolynomialArena is the exclusive owning store for UPoly values produced
// during projection (§4.1). Two handles are equal iff the underlying
// polynomials are structurally equal; re-interning an existing polynomial
// returns its existing handle rather than allocating a new one.
//
// Structural-equality lookup is accelerated by hashing each polynomial's
// canonical string encoding with xxhash (github.com/cespare/xxhash/v2):
// the bucket is an O(1) amortized lookup, with a final structural Equal
// check guarding against hash collisions.
type PolynomialArena struct {
	values  []UPolyValue
	buckets map[uint64][]PolyHandle
}

// NewPolynomialArena creates an empty arena.
func NewPolynomialArena() *PolynomialArena {
	return &PolynomialArena{buckets: map[uint64][]PolyHandle{}}
}

// Intern returns the stable handle for p, allocating a new slot only if no
// structurally equal polynomial is already owned by the arena.
func (a *PolynomialArena) Intern(p UPolyValue) PolyHandle {
	key := xxhash.Sum64String(p.String())
	for _, h := range a.buckets[key] {
		if a.values[h].Equal(p) {
			return h
		}
	}
	h := PolyHandle(len(a.values))
	a.values = append(a.values, p)
	a.buckets[key] = append(a.buckets[key], h)
	return h
}

// Get dereferences a handle. It panics if the handle is out of range, which
// can only happen on a corrupted (foreign-arena) handle -- a programming
// bug, consistent with the fatal InvariantViolation treatment of corruption
// elsewhere in this package.
func (a *PolynomialArena) Get(h PolyHandle) UPolyValue {
	return a.values[h]
}

// Len returns the number of distinct polynomials owned by the arena.
func (a *PolynomialArena) Len() int { return len(a.values) }

// DestroyAll releases every polynomial owned by the arena. After DestroyAll,
// all previously issued handles are invalid.
func (a *PolynomialArena) DestroyAll() {
	a.values = nil
	a.buckets = map[uint64][]PolyHandle{}
}
