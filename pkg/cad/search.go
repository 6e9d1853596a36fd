package cad

import (
	"fmt"
	"strings"
)

// Status is the three-valued outcome of Check.
type Status int

const (
	// SAT means a full satisfying point was found.
	SAT Status = iota
	// UNSAT means the decomposition was fully explored with no satisfying
	// point.
	UNSAT
	// Unknown means Check was cancelled (an interrupt flag was observed) or
	// a recoverable numeric failure occurred before a definite answer was
	// reached.
	Unknown
)

func (s Status) String() string {
	switch s {
	case SAT:
		return "SAT"
	case UNSAT:
		return "UNSAT"
	default:
		return "Unknown"
	}
}

// CheckResult is Check's outcome: a Status, the satisfying point for SAT
// (as a variable-id -> RAN assignment), and the refined bounds Check
// computed from whatever Bounds the caller passed in (shrunk around the
// witness on SAT, widened around the infeasible box on UNSAT; nil if the
// caller passed no bounds). With no constraints installed, Bounds is the
// caller's bounds unchanged; with an empty variable order it is nil.
type CheckResult struct {
	Status  Status
	Witness map[int]RAN
	Bounds  Bounds
}

func cloneAssignment(m map[int]RAN) map[int]RAN {
	out := make(map[int]RAN, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (c *CAD) witnessToPath(witness map[int]RAN) []RAN {
	out := make([]RAN, c.order.Len())
	for i := 0; i < c.order.Len(); i++ {
		out[i] = witness[c.order.At(i).ID()]
	}
	return out
}

// pathKey renders the assignment at the first `upTo` variable-order levels
// as a stable string, used to key rows of the Conflict Graph.
func (c *CAD) pathKey(assignment map[int]RAN, upTo int) string {
	var b strings.Builder
	for i := 0; i < upTo; i++ {
		b.WriteString(assignment[c.order.At(i).ID()].String())
		b.WriteByte('|')
	}
	return b.String()
}

// populateChildren fills node's children with the alternating root/witness
// samples for variable-order level `level`, computed either by isolating
// the real roots of the base (fully-eliminated, rational-coefficient)
// level-0 set, or, at higher levels, by specializing each of that level's
// polynomials at the partial assignment built so far and isolating the
// real roots of the resulting rational-coefficient univariate polynomial,
// filtering out resultant-elimination artifacts with IsConsistentRoot
// (§4.6, see specialize.go's doc comment).
//
// Each call drains the level's lifting queue via
// NextLiftingPosition/PopLiftingPosition/LiftingQueueEmpty after a full
// ResetLiftingPositions (§4.3/§4.9's restart_lifting), rather than a single
// snapshot of Polynomials() taken the first time the node is visited: this
// is what lets a polynomial added via AddPolynomial after node's children
// already exist still reach lifting on the node's next visit, instead of
// sitting queued forever with no live call site ever draining it.
func (c *CAD) populateChildren(node *Node, level int, assignment map[int]RAN, bounds Bounds, checkBounds bool) error {
	set := c.levels[level]
	set.ResetLiftingPositions(true)
	set.SaveLiftingResetState()

	varID := c.order.At(level).ID()
	var bound Interval
	var hasBound bool
	if checkBounds {
		bound, hasBound = c.effectiveBound(bounds, varID)
	}

	var roots []RAN
	for !set.LiftingQueueEmpty() {
		h, ok := set.PopLiftingPosition()
		if !ok {
			break
		}
		v := c.arena.Get(h)
		var rc []Rational
		if level == 0 {
			rc, ok = v.RationalCoeffs()
			if !ok {
				return ErrNumericFailure.New(fmt.Sprintf("level-0 polynomial %d has no rational coefficients after elimination", h))
			}
		} else {
			var specialized UPolyValue
			specialized, ok = Specialize(v, assignment)
			if !ok {
				continue
			}
			rc, ok = specialized.RationalCoeffs()
			if !ok {
				continue
			}
		}
		for _, r := range isolateRealRootsExact(rc) {
			if level != 0 && !IsConsistentRoot(v, assignment, r) {
				continue
			}
			if hasBound && !bound.Overlaps(r.CurrentInterval()) {
				continue
			}
			roots = append(roots, r)
		}
	}
	samples, _ := LevelSamples(roots)
	for _, s := range samples {
		if hasBound && !bound.Overlaps(s.CurrentInterval()) {
			continue
		}
		c.tree.StoreSample(node, s)
	}
	return nil
}

// liftRec explores node's children at variable-order level `level`,
// extending assignment one variable at a time, pruning against constraints
// that become testable at this level (ConstraintTable.TestableAt), skipping
// candidates outside the effective bound when checkBounds is active, and
// recording failing paths into the Conflict Graph when configured.
func (c *CAD) liftRec(node *Node, level int, assignment map[int]RAN, bounds Bounds, checkBounds bool) (bool, map[int]RAN, error) {
	if c.interrupts.IsSet(level) {
		return false, nil, ErrCancelled.New()
	}
	if err := c.populateChildren(node, level, assignment, bounds, checkBounds); err != nil {
		return false, nil, err
	}
	n := c.order.Len()
	varID := c.order.At(level).ID()
	var sat bool
	var witness map[int]RAN
	varDecl := c.order.At(level)
	enforceIntegral := varDecl.IsInteger() && c.settings.IntegerHandling != NoIntegerHandling
	var bound Interval
	var hasBound bool
	if checkBounds {
		bound, hasBound = c.effectiveBound(bounds, varID)
	}
	for _, child := range node.Children {
		if enforceIntegral && !child.Sample.IsInteger() {
			// A scoped stand-in for sat_path-stack backtracking (§9): simply
			// skip non-integral candidates rather than descending into
			// them, instead of unwinding a saved index stack.
			continue
		}
		if hasBound && !bound.Overlaps(child.Sample.CurrentInterval()) {
			// §4.9 "when check_bounds is true, any sample outside the
			// corresponding bound is skipped".
			continue
		}
		assignment[varID] = child.Sample
		testableOK := true
		for _, idx := range c.constraints.TestableAt(level) {
			if !c.constraints.At(idx).HoldsAt(assignment) {
				testableOK = false
				break
			}
		}
		if testableOK {
			if level+1 == n {
				sat = true
				witness = cloneAssignment(assignment)
			} else {
				childSat, childWitness, err := c.liftRec(child, level+1, assignment, bounds, checkBounds)
				if err != nil {
					delete(assignment, varID)
					return false, nil, err
				}
				if childSat {
					sat = true
					witness = childWitness
				}
			}
		} else if c.settings.ComputeConflictGraph {
			row := c.conflict.NewSample(c.pathKey(assignment, level+1))
			for _, idx := range c.constraints.TestableAt(level) {
				if !c.constraints.At(idx).HoldsAt(assignment) {
					c.conflict.Set(row, c.constraints.At(idx).ID)
				}
			}
		}
		delete(assignment, varID)
		if sat && c.settings.EarlyLiftingPruning {
			break
		}
	}
	return sat, witness, nil
}

// Check runs the three-phase search of §4.9: trace lifting (replaying the
// last satisfying path found, if any, against the current constraints),
// then a sample walk over already-built Sample Tree nodes falling back to
// exhaustive lifting (computing new nodes via populateChildren) wherever
// the tree hasn't been explored yet. Check cancels mid-search and returns
// Unknown if a caller concurrently raises an interrupt flag (see
// InterruptFlags); that is the only supported cross-goroutine interaction,
// since the search itself runs on the calling goroutine alone.
//
// bounds restricts the variables it mentions to the given rational
// intervals; it may be nil. next, when true, skips the trace-lifting reuse
// of the previous witness and forces a fresh sample search (§4.9's "tries to
// compute a sample which was not found in previous runs before"); when
// false (the common, incremental case) a still-satisfying previous witness
// short-circuits the search. checkBounds, when true, makes bounds (merged
// with every installed constraint's own Constraint.Bound hint) authoritative
// during lifting: any candidate sample outside the effective bound is
// skipped rather than descended into. The returned CheckResult.Bounds is
// bounds shrunk around the witness on SAT, or widened on UNSAT, mirroring
// the original shrink_bounds/widen_bounds refinement.
func (c *CAD) Check(bounds Bounds, next bool, checkBounds bool) (CheckResult, error) {
	if c.constraints == nil {
		c.constraints = NewConstraintTable(nil, c.order)
	}
	if err := c.PrepareElimination(); err != nil {
		return CheckResult{Status: Unknown}, err
	}
	if err := c.checkInvariants(); err != nil {
		if c.settings.Debug {
			panic(err)
		}
		c.log.WithError(err).Warn("invariant violation detected; degrading to Unknown")
		return CheckResult{Status: Unknown}, nil
	}
	c.interrupts.Reset()

	if c.constraints.Len() == 0 {
		// §8 boundary behaviors: with no constraints, bounds are only
		// checked for self-consistency -- no solution point is computed,
		// matching the original's "corresponding to the empty list of
		// variables" remark.
		for _, iv := range bounds {
			if iv.Hi.Less(iv.Lo) {
				return CheckResult{Status: UNSAT, Bounds: bounds}, nil
			}
		}
		return CheckResult{Status: SAT, Witness: map[int]RAN{}, Bounds: bounds}, nil
	}

	if !next && len(c.lastSatPath) == c.order.Len() && c.order.Len() > 0 {
		assignment := map[int]RAN{}
		for i, r := range c.lastSatPath {
			assignment[c.order.At(i).ID()] = r
		}
		allHold := true
		for _, con := range c.constraints.All() {
			if !con.HoldsAt(assignment) {
				allHold = false
				break
			}
		}
		if allHold {
			result := CheckResult{Status: SAT, Witness: assignment}
			if bounds != nil {
				result.Bounds = ShrinkBounds(bounds, assignment)
			}
			return result, nil
		}
	}

	if c.order.Len() == 0 {
		for _, con := range c.constraints.All() {
			if !con.HoldsAt(map[int]RAN{}) {
				return CheckResult{Status: UNSAT}, nil
			}
		}
		return CheckResult{Status: SAT, Witness: map[int]RAN{}}, nil
	}

	sat, witness, err := c.liftRec(c.tree.Root, 0, map[int]RAN{}, bounds, checkBounds)
	if err != nil {
		if ErrCancelled.Is(err) || ErrNumericFailure.Is(err) {
			return CheckResult{Status: Unknown}, nil
		}
		return CheckResult{Status: Unknown}, err
	}
	if sat {
		c.lastSatPath = c.witnessToPath(witness)
		c.log.WithField("status", "SAT").Debug("check complete")
		result := CheckResult{Status: SAT, Witness: witness}
		if bounds != nil {
			result.Bounds = ShrinkBounds(bounds, witness)
		}
		return result, nil
	}
	c.log.WithField("status", "UNSAT").Debug("check complete")
	result := CheckResult{Status: UNSAT}
	if bounds != nil {
		result.Bounds = WidenBounds(bounds)
	}
	return result, nil
}
