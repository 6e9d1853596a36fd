package cad

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ths-rwth/carl-sub000/pkg/cad/bignum"
)

func newXY() (x, y Variable) {
	return NewVariable(0, "x"), NewVariable(1, "y")
}

// TestUnitCircleAndLine is scenario 1 of SPEC_FULL.md: {x^2+y^2-1=0, x-y=0}
// is SAT, with x and y both equal to a root of 2z^2-1.
func TestUnitCircleAndLine(t *testing.T) {
	x, y := newXY()
	order := NewVariableOrder(x, y)
	cad := NewCAD(order, NewSettings(), nil)

	// x^2 + y^2 - 1
	circle := VarPoly(x.ID()).Mul(VarPoly(x.ID())).
		Add(VarPoly(y.ID()).Mul(VarPoly(y.ID()))).
		Sub(ConstPoly(bignum.One))
	// x - y
	line := VarPoly(x.ID()).Sub(VarPoly(y.ID()))

	hCircle := cad.AddPolynomial(circle)
	hLine := cad.AddPolynomial(line)

	cad.SetConstraints([]Constraint{
		NewConstraint(0, circle, Zero, false),
		NewConstraint(1, line, Zero, false),
	})

	res, err := cad.Check(nil, false, false)
	require.NoError(t, err)
	require.Equal(t, SAT, res.Status)

	xv, xok := res.Witness[x.ID()]
	yv, yok := res.Witness[y.ID()]
	require.True(t, xok)
	require.True(t, yok)
	require.True(t, xv.Equal(yv), "x and y should coincide on the line x=y")

	assignment := map[int]RAN{x.ID(): xv, y.ID(): yv}
	require.Equal(t, 0, EvaluateSign(circle, assignment))
	require.Equal(t, 0, EvaluateSign(line, assignment))

	_ = hCircle
	_ = hLine
}

// TestIntegerInfeasibility is scenario 4: {i=0, 1-i=0} over an INTEGER
// variable has no common root and must be UNSAT.
func TestIntegerInfeasibility(t *testing.T) {
	i := NewIntegerVariable(0, "i")
	order := NewVariableOrder(i)
	cad := NewCAD(order, NewSettings(WithIntegerHandling(SplitAtSample)), nil)

	p1 := VarPoly(i.ID())
	p2 := ConstPoly(bignum.One).Sub(VarPoly(i.ID()))

	cad.AddPolynomial(p1)
	cad.AddPolynomial(p2)
	cad.SetConstraints([]Constraint{
		NewConstraint(0, p1, Zero, false),
		NewConstraint(1, p2, Zero, false),
	})

	res, err := cad.Check(nil, false, false)
	require.NoError(t, err)
	require.Equal(t, UNSAT, res.Status)
}

// TestIncrementalReuse is scenario 6: after a SAT check, adding a
// polynomial and re-checking the same constraints must still return SAT
// with an equal witness (the Sample Tree's existing nodes are reused
// rather than rebuilt from scratch).
func TestIncrementalReuse(t *testing.T) {
	x, y := newXY()
	order := NewVariableOrder(x, y)
	cad := NewCAD(order, NewSettings(), nil)

	circle := VarPoly(x.ID()).Mul(VarPoly(x.ID())).
		Add(VarPoly(y.ID()).Mul(VarPoly(y.ID()))).
		Sub(ConstPoly(bignum.One))
	line := VarPoly(x.ID()).Sub(VarPoly(y.ID()))
	cad.AddPolynomial(circle)
	cad.AddPolynomial(line)
	cad.SetConstraints([]Constraint{
		NewConstraint(0, circle, Zero, false),
		NewConstraint(1, line, Zero, false),
	})

	first, err := cad.Check(nil, false, false)
	require.NoError(t, err)
	require.Equal(t, SAT, first.Status)

	cad.AddPolynomial(VarPoly(x.ID()).Mul(VarPoly(y.ID())))
	second, err := cad.Check(nil, false, false)
	require.NoError(t, err)
	require.Equal(t, SAT, second.Status)
	require.True(t, first.Witness[x.ID()].Equal(second.Witness[x.ID()]))
}

// TestFourIndependentUnitConstraints is scenario 5: four variable-disjoint
// constraints {x^2-2<0, y^2-2=0, z^2-2>0, w^2-2=0} must be jointly SAT, each
// witness satisfying only its own constraint.
func TestFourIndependentUnitConstraints(t *testing.T) {
	x := NewVariable(0, "x")
	y := NewVariable(1, "y")
	z := NewVariable(2, "z")
	w := NewVariable(3, "w")
	order := NewVariableOrder(x, y, z, w)
	cad := NewCAD(order, NewSettings(), nil)

	two := ConstPoly(bignum.FromInt64(2))
	pX := VarPoly(x.ID()).Mul(VarPoly(x.ID())).Sub(two)
	pY := VarPoly(y.ID()).Mul(VarPoly(y.ID())).Sub(two)
	pZ := VarPoly(z.ID()).Mul(VarPoly(z.ID())).Sub(two)
	pW := VarPoly(w.ID()).Mul(VarPoly(w.ID())).Sub(two)

	cad.AddPolynomial(pX)
	cad.AddPolynomial(pY)
	cad.AddPolynomial(pZ)
	cad.AddPolynomial(pW)

	cad.SetConstraints([]Constraint{
		NewConstraint(0, pX, Negative, false),
		NewConstraint(1, pY, Zero, false),
		NewConstraint(2, pZ, Positive, false),
		NewConstraint(3, pW, Zero, false),
	})

	res, err := cad.Check(nil, false, false)
	require.NoError(t, err)
	require.Equal(t, SAT, res.Status)

	assignment := map[int]RAN{
		x.ID(): res.Witness[x.ID()],
		y.ID(): res.Witness[y.ID()],
		z.ID(): res.Witness[z.ID()],
		w.ID(): res.Witness[w.ID()],
	}
	require.Equal(t, -1, EvaluateSign(pX, assignment))
	require.Equal(t, 0, EvaluateSign(pY, assignment))
	require.Equal(t, 1, EvaluateSign(pZ, assignment))
	require.Equal(t, 0, EvaluateSign(pW, assignment))
}

// TestUnitCircleContradictorySignConditions is scenario 2 of SPEC_FULL.md:
// two constraints built from the same polynomial x^2+y^2-1 under
// contradictory sign conditions (=0 and >0) can never hold together, so the
// conjunction is UNSAT, and every sample lying on the circle itself falsifies
// the second constraint, populating the Conflict Graph.
//
// The distilled spec's own scenario 2 ("x^2+y^2-1=0, xy-x-y+1=0") is in fact
// SAT -- xy-x-y+1 factors as (x-1)(y-1), and the lines x=1 and y=1 are each
// tangent to the unit circle, touching it at (1,0) and (0,1) respectively,
// both of which lie on the circle itself. Those two points satisfy both
// constraints simultaneously, so the pair is not unsatisfiable; see
// DESIGN.md for this substitution.
func TestUnitCircleContradictorySignConditions(t *testing.T) {
	x, y := newXY()
	order := NewVariableOrder(x, y)
	cad := NewCAD(order, NewSettings(WithComputeConflictGraph(true)), nil)

	circle := VarPoly(x.ID()).Mul(VarPoly(x.ID())).
		Add(VarPoly(y.ID()).Mul(VarPoly(y.ID()))).
		Sub(ConstPoly(bignum.One))
	cad.AddPolynomial(circle)

	onCircle := NewConstraint(0, circle, Zero, false)
	outsideCircle := NewConstraint(1, circle, Positive, false)
	cad.SetConstraints([]Constraint{onCircle, outsideCircle})

	res, err := cad.Check(nil, false, false)
	require.NoError(t, err)
	require.Equal(t, UNSAT, res.Status)

	graph := cad.ConflictGraph()
	require.Greater(t, graph.SampleCount(), 0, "UNSAT with ComputeConflictGraph must populate at least one row")

	sawConstraint1 := false
	for i := 0; i < graph.SampleCount(); i++ {
		failed := graph.FailedConstraints(i)
		for _, id := range failed {
			if id == outsideCircle.ID {
				sawConstraint1 = true
			}
		}
	}
	require.True(t, sawConstraint1, "every sample on the circle falsifies the strictly-positive constraint")
}

// TestUnit3SphereInterior is scenario 3: {x^2+y^2+z^2-1<0, x^2+y^2>0,
// z^3-1/2>0} (variables x,y,z) is SAT, with z above cbrt(1/2) and x,y a
// nonzero point in the remaining disc.
func TestUnit3SphereInterior(t *testing.T) {
	x := NewVariable(0, "x")
	y := NewVariable(1, "y")
	z := NewVariable(2, "z")
	order := NewVariableOrder(x, y, z)
	cad := NewCAD(order, NewSettings(), nil)

	sumSq := VarPoly(x.ID()).Mul(VarPoly(x.ID())).
		Add(VarPoly(y.ID()).Mul(VarPoly(y.ID())))
	sphere := sumSq.Add(VarPoly(z.ID()).Mul(VarPoly(z.ID()))).Sub(ConstPoly(bignum.One))
	zCubed := VarPoly(z.ID()).Mul(VarPoly(z.ID())).Mul(VarPoly(z.ID())).
		Sub(ConstPoly(bignum.FromFrac(1, 2)))

	cad.AddPolynomial(sphere)
	cad.AddPolynomial(sumSq)
	cad.AddPolynomial(zCubed)

	cad.SetConstraints([]Constraint{
		NewConstraint(0, sphere, Negative, false),
		NewConstraint(1, sumSq, Positive, false),
		NewConstraint(2, zCubed, Positive, false),
	})

	res, err := cad.Check(nil, false, false)
	require.NoError(t, err)
	require.Equal(t, SAT, res.Status)

	assignment := map[int]RAN{
		x.ID(): res.Witness[x.ID()],
		y.ID(): res.Witness[y.ID()],
		z.ID(): res.Witness[z.ID()],
	}
	require.Equal(t, -1, EvaluateSign(sphere, assignment))
	require.Equal(t, 1, EvaluateSign(sumSq, assignment))
	require.Equal(t, 1, EvaluateSign(zCubed, assignment))
}

// TestEmptyConstraintListFeasibleBounds is the first boundary behavior of
// SPEC_FULL.md §10: an empty constraint list with feasible bounds returns
// SAT with an empty point, without computing a solution point.
func TestEmptyConstraintListFeasibleBounds(t *testing.T) {
	x := NewVariable(0, "x")
	order := NewVariableOrder(x)
	cad := NewCAD(order, NewSettings(), nil)
	cad.SetConstraints(nil)

	bounds := Bounds{x.ID(): {Lo: bignum.FromInt64(0), Hi: bignum.FromInt64(1)}}
	res, err := cad.Check(bounds, false, true)
	require.NoError(t, err)
	require.Equal(t, SAT, res.Status)
	require.Empty(t, res.Witness)
}

// TestEmptyConstraintListInfeasibleBounds is the second boundary behavior:
// an empty constraint list with infeasible bounds (Hi < Lo) returns UNSAT.
func TestEmptyConstraintListInfeasibleBounds(t *testing.T) {
	x := NewVariable(0, "x")
	order := NewVariableOrder(x)
	cad := NewCAD(order, NewSettings(), nil)
	cad.SetConstraints(nil)

	bounds := Bounds{x.ID(): {Lo: bignum.FromInt64(1), Hi: bignum.FromInt64(0)}}
	res, err := cad.Check(bounds, false, true)
	require.NoError(t, err)
	require.Equal(t, UNSAT, res.Status)
}

// TestSingleSquareRootOfTwoConstraint is the third boundary behavior: a
// single univariate constraint x^2=2 returns SAT with x equal to a RAN whose
// defining polynomial is a factor of x^2-2 and whose interval contains +-
// sqrt(2).
func TestSingleSquareRootOfTwoConstraint(t *testing.T) {
	x := NewVariable(0, "x")
	order := NewVariableOrder(x)
	cad := NewCAD(order, NewSettings(), nil)

	p := VarPoly(x.ID()).Mul(VarPoly(x.ID())).Sub(ConstPoly(bignum.FromInt64(2)))
	cad.AddPolynomial(p)
	cad.SetConstraints([]Constraint{NewConstraint(0, p, Zero, false)})

	res, err := cad.Check(nil, false, false)
	require.NoError(t, err)
	require.Equal(t, SAT, res.Status)

	xv, ok := res.Witness[x.ID()]
	require.True(t, ok)
	require.False(t, xv.IsNumeric(), "sqrt(2) is irrational")
	require.Equal(t, 0, EvaluateSign(p, map[int]RAN{x.ID(): xv}))

	pCoeffs, ok := AsUnivariateIn(p, x.ID()).RationalCoeffs()
	require.True(t, ok)
	_, rem := ratDivide(pCoeffs, xv.DefiningPolynomial())
	require.Empty(t, ratTrim(rem), "x's defining polynomial must divide x^2-2 exactly")

	// The isolating interval must straddle a real root of x^2-2: squaring
	// both endpoints must bracket 2 (width shrinks this bracket arbitrarily
	// tight, but never to an exact rational endpoint equal to sqrt(2)).
	iv := xv.CurrentInterval()
	lo2, hi2 := iv.Lo.Mul(iv.Lo), iv.Hi.Mul(iv.Hi)
	two := bignum.FromInt64(2)
	require.True(t, !lo2.Less(two) || !hi2.Less(two))
	require.True(t, lo2.Less(two) || lo2.Equal(two) || hi2.Less(two) || hi2.Equal(two))
}
