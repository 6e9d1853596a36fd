package cad

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ths-rwth/carl-sub000/pkg/cad/bignum"
)

func TestSampleSetOrdersByComparator(t *testing.T) {
	ss := NewSampleSet(SampleComparator{Ordering: DefaultOrdering})
	ss.Insert(NewNumericRAN(bignum.FromFrac(1, 2), false)) // non-integer rational
	ss.Insert(NewNumericRAN(bignum.FromInt64(3), true))    // integer root
	ss.Insert(NewNumericRAN(bignum.FromInt64(-1), false))  // integer non-root

	all := ss.All()
	require.Len(t, all, 3)
	// Integers sort before the non-integer rational, and among integers the
	// non-root witness is preferred before the root.
	require.True(t, all[0].IsInteger())
	require.True(t, all[1].IsInteger())
	require.False(t, all[2].IsInteger())
	require.False(t, all[0].IsRoot())
	require.True(t, all[1].IsRoot())
}

func TestSampleSetInsertPromotesNumericOverInterval(t *testing.T) {
	ss := NewSampleSet(SampleComparator{Ordering: DefaultOrdering})
	defPoly := []Rational{bignum.FromInt64(-4), bignum.Zero, bignum.One} // x^2-4
	interval := NewIntervalRAN(defPoly, Interval{Lo: bignum.FromInt64(1), Hi: bignum.FromInt64(3)}, true)
	ss.Insert(interval)

	exact := NewNumericRAN(bignum.FromInt64(2), true)
	isNew := ss.Insert(exact)
	require.False(t, isNew)

	all := ss.All()
	require.Len(t, all, 1)
	require.True(t, all[0].IsNumeric())
}

func TestSampleSetInsertPromotesRootOverWitness(t *testing.T) {
	ss := NewSampleSet(SampleComparator{Ordering: DefaultOrdering})
	ss.Insert(NewNumericRAN(bignum.FromInt64(5), false))
	ss.Insert(NewNumericRAN(bignum.FromInt64(5), true))

	all := ss.All()
	require.Len(t, all, 1)
	require.True(t, all[0].IsRoot())
}

func TestSampleSetPopReturnsPreferred(t *testing.T) {
	ss := NewSampleSet(SampleComparator{Ordering: DefaultOrdering})
	ss.Insert(NewNumericRAN(bignum.FromInt64(7), true))
	ss.Insert(NewNumericRAN(bignum.FromInt64(0), false))

	first, ok := ss.Pop()
	require.True(t, ok)
	require.True(t, ss.IsOptimal(NewNumericRAN(bignum.FromInt64(7), true)) || first.Equal(NewNumericRAN(bignum.FromInt64(0), false)))
	require.Equal(t, 1, ss.Len())
}

func TestSampleComparatorNaturalOrdering(t *testing.T) {
	cmp := SampleComparator{Ordering: NaturalOrdering}
	a := NewNumericRAN(bignum.FromInt64(10), true)
	b := NewNumericRAN(bignum.FromFrac(1, 2), false)
	require.True(t, cmp.Less(b, a))
}
