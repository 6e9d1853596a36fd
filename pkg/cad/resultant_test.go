package cad

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ths-rwth/carl-sub000/pkg/cad/bignum"
)

func TestResultantSharedRoot(t *testing.T) {
	x := 0
	// p = x-1, q = x-1: share a root, so Res(p,q) must be 0.
	p := AsUnivariateIn(VarPoly(x).Sub(ConstPoly(bignum.One)), x)
	q := AsUnivariateIn(VarPoly(x).Sub(ConstPoly(bignum.One)), x)
	res := Resultant(p, q, x)
	v, ok := res.IsConstant()
	require.True(t, ok)
	require.True(t, v.IsZero())
}

func TestResultantDisjointRoots(t *testing.T) {
	x := 0
	// p = x-1, q = x-2: no shared root, resultant nonzero.
	p := AsUnivariateIn(VarPoly(x).Sub(ConstPoly(bignum.One)), x)
	q := AsUnivariateIn(VarPoly(x).Sub(ConstPoly(bignum.FromInt64(2))), x)
	res := Resultant(p, q, x)
	v, ok := res.IsConstant()
	require.True(t, ok)
	require.False(t, v.IsZero())
}

func TestDiscriminantOfQuadratic(t *testing.T) {
	x := 0
	// x^2 - 1 has discriminant 4 (b^2-4ac with a=1,b=0,c=-1).
	p := AsUnivariateIn(VarPoly(x).Mul(VarPoly(x)).Sub(ConstPoly(bignum.One)), x)
	disc := Discriminant(p)
	v, ok := disc.IsConstant()
	require.True(t, ok)
	require.True(t, v.Equal(bignum.FromInt64(4)))
}

func TestSquareFreePartRemovesRepeatedRoot(t *testing.T) {
	x := 0
	// (x-1)^2 = x^2 - 2x + 1
	sq := AsUnivariateIn(VarPoly(x).Sub(ConstPoly(bignum.One)).Mul(VarPoly(x).Sub(ConstPoly(bignum.One))), x)
	sf := SquareFreePart(sq)
	require.Equal(t, 1, sf.Degree())
	rc, ok := sf.RationalCoeffs()
	require.True(t, ok)
	roots := isolateRealRootsExact(rc)
	require.Len(t, roots, 1)
	require.True(t, roots[0].Equal(NewNumericRAN(bignum.One, true)))
}

func TestSquareFreePartLeavesAlreadySquareFree(t *testing.T) {
	x := 0
	p := AsUnivariateIn(VarPoly(x).Sub(ConstPoly(bignum.One)), x)
	sf := SquareFreePart(p)
	require.True(t, sf.Equal(p))
}
