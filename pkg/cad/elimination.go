package cad

import (
	"sort"

	"github.com/ths-rwth/carl-sub000/pkg/cad/bignum"
)

// parentPair records a polynomial's projection provenance: one parent for a
// single-operator emission, two for a paired-resultant emission (Parent2 is
// invalidHandle in the single case).
type parentPair struct {
	Parent1, Parent2 PolyHandle
}

// EliminationStats is the read-only snapshot exposed for test harnesses
// (§6 "Read-only inspection"; SPEC_FULL.md §6.1 eager/lazy lifting
// counters).
type EliminationStats struct {
	PolynomialCount  int
	PairedQueueLen   int
	SingleQueueLen   int
	LiftingQueueLen  int
	EliminationSteps int
}

// EliminationSet is the per-level set of projection polynomials (§4.3): a
// deduplicated set of UPoly handles plus the paired/single elimination work
// queues, the lifting queue, and the provenance DAG linking each polynomial
// to the parent(s) it was projected from.
type EliminationSet struct {
	level   int
	mainVar int
	arena   *PolynomialArena

	present map[PolyHandle]bool
	parents map[PolyHandle][]parentPair
	// children maps a parent handle to the set of this level's handles it
	// produced, the inverse of parents.
	children map[PolyHandle]map[PolyHandle]bool

	pairedQueue  []PolyHandle
	singleQueue  []PolyHandle
	liftingQueue []PolyHandle
	resetState   []PolyHandle

	bounded bool
	steps   int
}

// NewEliminationSet creates an empty Elimination Set for the given level,
// whose polynomials are expressed as univariate in mainVar.
func NewEliminationSet(arena *PolynomialArena, level, mainVar int) *EliminationSet {
	return &EliminationSet{
		level:    level,
		mainVar:  mainVar,
		arena:    arena,
		present:  map[PolyHandle]bool{},
		parents:  map[PolyHandle][]parentPair{},
		children: map[PolyHandle]map[PolyHandle]bool{},
	}
}

// Level returns this set's level index.
func (e *EliminationSet) Level() int { return e.level }

// MainVar returns the variable id this set's polynomials are univariate in.
func (e *EliminationSet) MainVar() int { return e.mainVar }

// SetBounded marks that some of this set's polynomials are only valid
// within given variable bounds.
func (e *EliminationSet) SetBounded(v bool) { e.bounded = v }

// Bounded reports the bounded flag.
func (e *EliminationSet) Bounded() bool { return e.bounded }

// Contains reports whether h is a member of this set.
func (e *EliminationSet) Contains(h PolyHandle) bool { return e.present[h] }

// Polynomials returns the handles currently in the set, sorted by handle id
// for deterministic iteration.
func (e *EliminationSet) Polynomials() []PolyHandle {
	out := make([]PolyHandle, 0, len(e.present))
	for h := range e.present {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Stats returns a read-only snapshot of queue and set sizes.
func (e *EliminationSet) Stats() EliminationStats {
	return EliminationStats{
		PolynomialCount:  len(e.present),
		PairedQueueLen:   len(e.pairedQueue),
		SingleQueueLen:   len(e.singleQueue),
		LiftingQueueLen:  len(e.liftingQueue),
		EliminationSteps: e.steps,
	}
}

func removeFromQueue(q []PolyHandle, h PolyHandle) []PolyHandle {
	for i, x := range q {
		if x == h {
			return append(q[:i:i], q[i+1:]...)
		}
	}
	return q
}

func containsHandle(q []PolyHandle, h PolyHandle) bool {
	for _, x := range q {
		if x == h {
			return true
		}
	}
	return false
}

// Insert adds p (interning it in the shared arena) if not already present;
// appends parents to p's provenance bucket; if newly inserted, appends to
// the lifting and paired-elimination queues, and to the single-elimination
// queue unless avoidSingleQueue. Re-inserting an existing polynomial only
// augments its provenance and may add it (if absent) to the single queue.
func (e *EliminationSet) Insert(p UPolyValue, provenance []parentPair, avoidSingleQueue bool) (PolyHandle, bool) {
	h := e.arena.Intern(p)
	newly := !e.present[h]
	if newly {
		e.present[h] = true
		e.liftingQueue = append(e.liftingQueue, h)
		e.pairedQueue = append(e.pairedQueue, h)
		if !avoidSingleQueue {
			e.singleQueue = append(e.singleQueue, h)
		}
	} else if !avoidSingleQueue && !containsHandle(e.singleQueue, h) {
		e.singleQueue = append(e.singleQueue, h)
	}
	e.parents[h] = append(e.parents[h], provenance...)
	for _, pp := range provenance {
		for _, parent := range [2]PolyHandle{pp.Parent1, pp.Parent2} {
			if parent == invalidHandle {
				continue
			}
			if e.children[parent] == nil {
				e.children[parent] = map[PolyHandle]bool{}
			}
			e.children[parent][h] = true
		}
	}
	return h, newly
}

// Erase removes p and all its bookkeeping, returning 1 if it was present
// and 0 otherwise.
func (e *EliminationSet) Erase(p PolyHandle) int {
	if !e.present[p] {
		return 0
	}
	for _, pp := range e.parents[p] {
		for _, parent := range [2]PolyHandle{pp.Parent1, pp.Parent2} {
			if parent != invalidHandle && e.children[parent] != nil {
				delete(e.children[parent], p)
			}
		}
	}
	delete(e.present, p)
	delete(e.parents, p)
	delete(e.children, p)
	e.pairedQueue = removeFromQueue(e.pairedQueue, p)
	e.singleQueue = removeFromQueue(e.singleQueue, p)
	e.liftingQueue = removeFromQueue(e.liftingQueue, p)
	e.resetState = removeFromQueue(e.resetState, p)
	return 1
}

// RemoveByParent deletes from this set exactly the polynomials whose parent
// set becomes empty once parent is removed as a provenance source;
// polynomials with any other surviving parent remain, with their parent
// bucket updated. Returns the deleted polynomials' values.
func (e *EliminationSet) RemoveByParent(parent PolyHandle) []UPolyValue {
	childSet := e.children[parent]
	if len(childSet) == 0 {
		delete(e.children, parent)
		return nil
	}
	children := make([]PolyHandle, 0, len(childSet))
	for c := range childSet {
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })

	var deleted []UPolyValue
	for _, c := range children {
		kept := e.parents[c][:0:0]
		for _, pp := range e.parents[c] {
			if pp.Parent1 == parent || pp.Parent2 == parent {
				continue
			}
			kept = append(kept, pp)
		}
		e.parents[c] = kept
		if len(kept) == 0 {
			deleted = append(deleted, e.arena.Get(c))
			e.Erase(c)
		}
	}
	delete(e.children, parent)
	return deleted
}

// NextLiftingPosition peeks the front of the lifting queue.
func (e *EliminationSet) NextLiftingPosition() (PolyHandle, bool) {
	if len(e.liftingQueue) == 0 {
		return invalidHandle, false
	}
	return e.liftingQueue[0], true
}

// PopLiftingPosition removes and returns the front of the lifting queue.
func (e *EliminationSet) PopLiftingPosition() (PolyHandle, bool) {
	h, ok := e.NextLiftingPosition()
	if ok {
		e.liftingQueue = e.liftingQueue[1:]
	}
	return h, ok
}

// LiftingQueueEmpty reports whether the lifting queue has no pending
// positions.
func (e *EliminationSet) LiftingQueueEmpty() bool { return len(e.liftingQueue) == 0 }

func (e *EliminationSet) liftingOrderLess(a, b PolyHandle) bool {
	da, db := e.arena.Get(a).Degree(), e.arena.Get(b).Degree()
	if da != db {
		return da < db
	}
	return a < b
}

// ResetLiftingPositions refills the lifting queue. If full, it is rebuilt
// from the whole polynomial set sorted by the lifting order; otherwise it
// is restored from the saved reset state.
func (e *EliminationSet) ResetLiftingPositions(full bool) {
	if full {
		all := e.Polynomials()
		sort.Slice(all, func(i, j int) bool { return e.liftingOrderLess(all[i], all[j]) })
		e.liftingQueue = all
		return
	}
	cp := make([]PolyHandle, len(e.resetState))
	copy(cp, e.resetState)
	e.liftingQueue = cp
}

// SaveLiftingResetState snapshots the current lifting queue as the new
// reset state.
func (e *EliminationSet) SaveLiftingResetState() {
	e.resetState = append([]PolyHandle(nil), e.liftingQueue...)
}

// normalizeProjected makes a freshly projected polynomial square-free and
// primitive (monic, when its leading coefficient is a nonzero rational
// constant) before insertion, per §4.2/§4.3's insertion policy.
func normalizeProjected(p UPolyValue) UPolyValue {
	p = SquareFreePart(p)
	if p.IsZero() {
		return p
	}
	if lc, ok := p.LeadingCoeff().IsConstant(); ok && !lc.IsZero() {
		coeffs := make([]MPoly, len(p.Coeffs))
		for i, c := range p.Coeffs {
			coeffs[i] = c.divideExactByRational(lc)
		}
		return NewUPoly(p.MainVar, coeffs)
	}
	return p
}

// eliminateProjections runs Project for every polynomial this set should be
// paired against (for a paired step) or just on p alone (for a single
// step), normalizes each result, and inserts non-constant ones into dst.
func (e *EliminationSet) eliminateProjections(pHandle PolyHandle, dst *EliminationSet, settings Settings, paired bool, avoidSingleQueue bool) error {
	p := e.arena.Get(pHandle)
	var results []Projected
	if paired {
		for _, other := range e.Polynomials() {
			if other == pHandle {
				continue
			}
			oVal := e.arena.Get(other)
			proj, err := Project(settings.ProjectionOperator, pHandle, p, other, &oVal, dst.mainVar)
			if err != nil {
				return err
			}
			results = append(results, proj...)
		}
	} else {
		proj, err := Project(settings.ProjectionOperator, pHandle, p, invalidHandle, nil, dst.mainVar)
		if err != nil {
			return err
		}
		results = append(results, proj...)
	}
	for _, r := range results {
		norm := normalizeProjected(r.Poly)
		if norm.IsZero() {
			continue
		}
		if _, ok := norm.AsMPoly().IsConstant(); ok {
			// Constant-valued results never carry sign-invariance
			// information for dst's main variable and never re-enter
			// lifting.
			continue
		}
		if settings.ExcludeRootsWithNoWitness {
			if rc, ok := norm.RationalCoeffs(); ok && len(isolateRealRootsExact(rc)) == 0 {
				continue
			}
		}
		dst.Insert(norm, []parentPair{{Parent1: r.Parent1, Parent2: r.Parent2}}, avoidSingleQueue)
	}
	return nil
}

// EliminateInto computes every projection child of p (pairing it against
// every existing polynomial in this set for the paired operator, plus the
// single operator on p alone), inserts the results into dst, and pops p
// from both elimination queues.
func (e *EliminationSet) EliminateInto(pHandle PolyHandle, dst *EliminationSet, settings Settings) error {
	if err := e.eliminateProjections(pHandle, dst, settings, true, false); err != nil {
		return err
	}
	if err := e.eliminateProjections(pHandle, dst, settings, false, false); err != nil {
		return err
	}
	e.pairedQueue = removeFromQueue(e.pairedQueue, pHandle)
	e.singleQueue = removeFromQueue(e.singleQueue, pHandle)
	e.steps++
	return nil
}

// EliminateNextInto steps the work queues once. If synchronous and the next
// single- and paired-elimination polynomials coincide, both the paired and
// single projections are performed together (a full EliminateInto); this is
// the queue-discipline rule of §4.3/§9: children produced by a standalone
// paired step are marked avoid_single_queue=true (asynchronous), and a later
// synchronous catch-up is what lets their deferred single-elimination step
// run.
func (e *EliminationSet) EliminateNextInto(dst *EliminationSet, settings Settings, synchronous bool) error {
	if synchronous && len(e.pairedQueue) > 0 && len(e.singleQueue) > 0 && e.pairedQueue[0] == e.singleQueue[0] {
		return e.EliminateInto(e.pairedQueue[0], dst, settings)
	}
	if len(e.pairedQueue) > 0 {
		p := e.pairedQueue[0]
		if err := e.eliminateProjections(p, dst, settings, true, true); err != nil {
			return err
		}
		e.pairedQueue = e.pairedQueue[1:]
		e.steps++
		return nil
	}
	if len(e.singleQueue) > 0 {
		p := e.singleQueue[0]
		if err := e.eliminateProjections(p, dst, settings, false, false); err != nil {
			return err
		}
		e.singleQueue = e.singleQueue[1:]
		e.steps++
		return nil
	}
	return nil
}

// MakeSquarefree replaces every member polynomial by its square-free part,
// merging provenance when the reduction collapses two members onto the same
// handle.
func (e *EliminationSet) MakeSquarefree() {
	for _, h := range e.Polynomials() {
		sf := normalizeProjected(e.arena.Get(h))
		if sf.IsZero() || e.arena.Get(h).Equal(sf) {
			continue
		}
		newH := e.arena.Intern(sf)
		if newH == h {
			continue
		}
		e.migrate(h, newH)
	}
}

// MakePrimitive monic-normalizes every member polynomial whose leading
// coefficient is a nonzero rational constant.
func (e *EliminationSet) MakePrimitive() {
	for _, h := range e.Polynomials() {
		v := e.arena.Get(h)
		lc, ok := v.LeadingCoeff().IsConstant()
		if !ok || lc.IsZero() || lc.Equal(bignum.One) {
			continue
		}
		coeffs := make([]MPoly, len(v.Coeffs))
		for i, c := range v.Coeffs {
			coeffs[i] = c.divideExactByRational(lc)
		}
		newH := e.arena.Intern(NewUPoly(v.MainVar, coeffs))
		if newH != h {
			e.migrate(h, newH)
		}
	}
}

// migrate merges all bookkeeping for handle `from` onto handle `to` (used
// when a normalization collapses two distinct handles onto the same
// interned value) and removes `from`.
func (e *EliminationSet) migrate(from, to PolyHandle) {
	if !e.present[to] {
		e.present[to] = true
		e.liftingQueue = append(e.liftingQueue, to)
		e.pairedQueue = append(e.pairedQueue, to)
		e.singleQueue = append(e.singleQueue, to)
	}
	e.parents[to] = append(e.parents[to], e.parents[from]...)
	e.Erase(from)
}

// Factorize attempts to split polynomials with rational coefficients into
// rational-root linear factors (the rational root theorem), a pragmatic
// stand-in for full factorization into irreducibles (§6 "factorization").
// Polynomials with genuinely multivariate coefficients, or with no rational
// roots, are left unchanged.
func (e *EliminationSet) Factorize() {
	for _, h := range e.Polynomials() {
		v := e.arena.Get(h)
		rc, ok := v.RationalCoeffs()
		if !ok || len(rc) < 3 {
			continue
		}
		factors := rationalRootFactor(rc)
		if len(factors) <= 1 {
			continue
		}
		prov := e.parents[h]
		for _, f := range factors {
			fh, _ := e.Insert(FromRationalCoeffs(v.MainVar, f), prov, false)
			_ = fh
		}
		e.Erase(h)
	}
}

// RemoveConstants erases every member that is constant in this set's own
// main variable.
func (e *EliminationSet) RemoveConstants() {
	for _, h := range e.Polynomials() {
		if e.arena.Get(h).Degree() <= 0 {
			e.Erase(h)
		}
	}
}

// RemovePolynomialsWithoutRealRoots erases every rational-coefficient member
// with no real roots. Members with genuinely multivariate coefficients are
// left in place (their real-rootedness depends on the lifting point and
// cannot be decided here).
func (e *EliminationSet) RemovePolynomialsWithoutRealRoots() {
	for _, h := range e.Polynomials() {
		v := e.arena.Get(h)
		if v.Degree() <= 0 {
			continue
		}
		rc, ok := v.RationalCoeffs()
		if !ok {
			continue
		}
		if len(isolateRealRootsExact(rc)) == 0 {
			e.Erase(h)
		}
	}
}

// MoveConstants moves every member that is constant in this set's own main
// variable into dst, reinterpreted as a polynomial univariate in dst's main
// variable, because its solution behavior does not depend on the current
// variable.
func (e *EliminationSet) MoveConstants(dst *EliminationSet) {
	for _, h := range e.Polynomials() {
		v := e.arena.Get(h)
		if v.Degree() != 0 {
			// Degree > 0 depends on this set's main variable and stays;
			// degree -1 (the zero polynomial) carries no information and
			// is simply dropped.
			if v.IsZero() {
				e.Erase(h)
			}
			continue
		}
		reinterpreted := AsUnivariateIn(v.Coeffs[0], dst.mainVar)
		dst.Insert(reinterpreted, e.parents[h], false)
		e.Erase(h)
	}
}
