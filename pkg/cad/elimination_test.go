package cad

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ths-rwth/carl-sub000/pkg/cad/bignum"
)

func TestEliminationSetInsertQueueDiscipline(t *testing.T) {
	arena := NewPolynomialArena()
	e := NewEliminationSet(arena, 0, 1)

	p := FromRationalCoeffs(1, []Rational{bignum.FromInt64(-1), bignum.One}) // x-1
	h, newly := e.Insert(p, nil, false)
	require.True(t, newly)
	require.True(t, e.Contains(h))
	stats := e.Stats()
	require.Equal(t, 1, stats.PolynomialCount)
	require.Equal(t, 1, stats.PairedQueueLen)
	require.Equal(t, 1, stats.SingleQueueLen)
	require.Equal(t, 1, stats.LiftingQueueLen)

	_, newlyAgain := e.Insert(p, nil, false)
	require.False(t, newlyAgain)
	require.Equal(t, 1, e.Stats().PolynomialCount)
}

func TestEliminationSetAvoidSingleQueueThenCatchUp(t *testing.T) {
	arena := NewPolynomialArena()
	e := NewEliminationSet(arena, 0, 1)

	p := FromRationalCoeffs(1, []Rational{bignum.FromInt64(-2), bignum.One}) // x-2
	h, newly := e.Insert(p, nil, true)
	require.True(t, newly)
	require.Equal(t, 0, e.Stats().SingleQueueLen)
	require.Equal(t, 1, e.Stats().PairedQueueLen)

	// A later synchronous insert of the same polynomial without
	// avoidSingleQueue lets it join the single queue.
	_, newlyAgain := e.Insert(p, nil, false)
	require.False(t, newlyAgain)
	require.Equal(t, 1, e.Stats().SingleQueueLen)
	require.True(t, containsHandle(e.singleQueue, h))
}

func TestEliminationSetEraseClearsBookkeeping(t *testing.T) {
	arena := NewPolynomialArena()
	e := NewEliminationSet(arena, 0, 1)
	p := FromRationalCoeffs(1, []Rational{bignum.FromInt64(-3), bignum.One})
	h, _ := e.Insert(p, nil, false)

	require.Equal(t, 1, e.Erase(h))
	require.False(t, e.Contains(h))
	require.Equal(t, 0, e.Erase(h))
	require.Empty(t, e.Polynomials())
}

func TestEliminationSetRemoveByParentCascadesOnlyWhenOrphaned(t *testing.T) {
	parentArena := NewPolynomialArena()
	parentA := parentArena.Intern(FromRationalCoeffs(2, []Rational{bignum.FromInt64(-1), bignum.One}))
	parentB := parentArena.Intern(FromRationalCoeffs(2, []Rational{bignum.FromInt64(-2), bignum.One}))

	arena := NewPolynomialArena()
	e := NewEliminationSet(arena, 1, 1)

	soleParent := FromRationalCoeffs(1, []Rational{bignum.FromInt64(-5), bignum.One})
	hSole, _ := e.Insert(soleParent, []parentPair{{Parent1: parentA, Parent2: invalidHandle}}, false)

	sharedChild := FromRationalCoeffs(1, []Rational{bignum.FromInt64(-7), bignum.One})
	e.Insert(sharedChild, []parentPair{{Parent1: parentA, Parent2: invalidHandle}}, false)
	hShared, _ := e.Insert(sharedChild, []parentPair{{Parent1: parentB, Parent2: invalidHandle}}, false)

	deleted := e.RemoveByParent(parentA)
	require.Len(t, deleted, 1)
	require.True(t, deleted[0].Equal(soleParent))
	require.False(t, e.Contains(hSole))
	require.True(t, e.Contains(hShared), "sharedChild must survive while parentB still references it")

	deleted2 := e.RemoveByParent(parentB)
	require.Len(t, deleted2, 1)
	require.False(t, e.Contains(hShared))
}

func TestEliminationSetLiftingQueue(t *testing.T) {
	arena := NewPolynomialArena()
	e := NewEliminationSet(arena, 0, 1)
	require.True(t, e.LiftingQueueEmpty())

	p := FromRationalCoeffs(1, []Rational{bignum.FromInt64(-1), bignum.One})
	h, _ := e.Insert(p, nil, false)
	require.False(t, e.LiftingQueueEmpty())

	next, ok := e.NextLiftingPosition()
	require.True(t, ok)
	require.Equal(t, h, next)

	popped, ok := e.PopLiftingPosition()
	require.True(t, ok)
	require.Equal(t, h, popped)
	require.True(t, e.LiftingQueueEmpty())
}

func TestEliminationSetMakePrimitiveMonicNormalizes(t *testing.T) {
	arena := NewPolynomialArena()
	e := NewEliminationSet(arena, 0, 1)
	// 2x - 4, leading coefficient 2.
	p := FromRationalCoeffs(1, []Rational{bignum.FromInt64(-4), bignum.FromInt64(2)})
	e.Insert(p, nil, false)

	e.MakePrimitive()
	polys := e.Polynomials()
	require.Len(t, polys, 1)
	v := arena.Get(polys[0])
	lc, ok := v.LeadingCoeff().IsConstant()
	require.True(t, ok)
	require.True(t, lc.Equal(bignum.One))
}

func TestEliminationSetRemoveConstants(t *testing.T) {
	arena := NewPolynomialArena()
	e := NewEliminationSet(arena, 0, 1)
	e.Insert(FromRationalCoeffs(1, []Rational{bignum.FromInt64(3)}), nil, false)
	e.Insert(FromRationalCoeffs(1, []Rational{bignum.FromInt64(-1), bignum.One}), nil, false)

	e.RemoveConstants()
	require.Len(t, e.Polynomials(), 1)
	v := arena.Get(e.Polynomials()[0])
	require.Equal(t, 1, v.Degree())
}
