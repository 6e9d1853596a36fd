package cad

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ths-rwth/carl-sub000/pkg/cad/bignum"
)

func TestMPolyArithmetic(t *testing.T) {
	x, y := 0, 1
	// (x+y)^2 = x^2 + 2xy + y^2
	sum := VarPoly(x).Add(VarPoly(y))
	sq := sum.Mul(sum)

	expected := VarPoly(x).Mul(VarPoly(x)).
		Add(VarPoly(x).Mul(VarPoly(y)).Scale(bignum.FromInt64(2))).
		Add(VarPoly(y).Mul(VarPoly(y)))
	require.True(t, sq.Equal(expected))

	require.Equal(t, 2, sq.DegreeIn(x))
	require.ElementsMatch(t, []int{x, y}, sq.Vars())
}

func TestMPolyConstantAndZero(t *testing.T) {
	c := ConstPoly(bignum.FromInt64(5))
	v, ok := c.IsConstant()
	require.True(t, ok)
	require.True(t, v.Equal(bignum.FromInt64(5)))

	z := ZeroPoly()
	require.True(t, z.IsZero())
	zv, zok := z.IsConstant()
	require.True(t, zok)
	require.True(t, zv.IsZero())
}

func TestMPolySubstituteAndEval(t *testing.T) {
	x, y := 0, 1
	p := VarPoly(x).Mul(VarPoly(x)).Add(VarPoly(y)) // x^2 + y
	got := p.SubstituteRational(x, bignum.FromInt64(3))
	want := ConstPoly(bignum.FromInt64(9)).Add(VarPoly(y))
	require.True(t, got.Equal(want))

	r := p.EvalRational(map[int]Rational{x: bignum.FromInt64(2), y: bignum.FromInt64(1)})
	require.True(t, r.Equal(bignum.FromInt64(5)))
}

func TestMPolyDerivative(t *testing.T) {
	x := 0
	p := VarPoly(x).Mul(VarPoly(x)).Mul(VarPoly(x)) // x^3
	d := p.Derivative(x)                            // 3x^2
	want := VarPoly(x).Mul(VarPoly(x)).Scale(bignum.FromInt64(3))
	require.True(t, d.Equal(want))
}

func TestAsUnivariateInRoundTrip(t *testing.T) {
	x, y := 0, 1
	// x^2*y + x + y
	p := VarPoly(x).Mul(VarPoly(x)).Mul(VarPoly(y)).Add(VarPoly(x)).Add(VarPoly(y))
	u := AsUnivariateIn(p, x)
	require.Equal(t, 2, u.Degree())
	require.True(t, u.AsMPoly().Equal(p))
}

func TestUPolyRationalCoeffs(t *testing.T) {
	u := FromRationalCoeffs(0, []Rational{bignum.FromInt64(1), bignum.FromInt64(2), bignum.FromInt64(3)})
	rc, ok := u.RationalCoeffs()
	require.True(t, ok)
	require.Len(t, rc, 3)
	require.True(t, rc[2].Equal(bignum.FromInt64(3)))

	mixed := NewUPoly(1, []MPoly{VarPoly(2), ConstPoly(bignum.One)})
	_, ok = mixed.RationalCoeffs()
	require.False(t, ok)
}

func TestSwitchMainVariable(t *testing.T) {
	x, y := 0, 1
	p := VarPoly(x).Mul(VarPoly(y)).Add(VarPoly(x)) // xy + x, univariate in x
	u := AsUnivariateIn(p, x)
	require.Equal(t, x, u.MainVar)

	switched := SwitchMainVariable(u, y)
	require.Equal(t, y, switched.MainVar)
	require.True(t, switched.AsMPoly().Equal(p))
}
