// Package bignum supplies the one concrete Numeric backend this module uses:
// exact, arbitrary-precision rational arithmetic over math/big. No
// third-party arbitrary-precision rational library appears anywhere in the
// retrieval pack (gnark and the starks-vm crypto stack only provide
// fixed-modulus finite-field arithmetic, which is the wrong algebraic
// structure for ℚ), so this is the one package in the module built directly
// on the standard library; see DESIGN.md for the justification.
package bignum

import (
	"fmt"
	"math/big"
)

// Rational is an exact, arbitrary-precision rational number.
type Rational struct {
	r *big.Rat
}

// Zero is the additive identity.
var Zero = Rational{r: new(big.Rat)}

// One is the multiplicative identity.
var One = FromInt64(1)

// FromInt64 builds a Rational from an integer.
func FromInt64(n int64) Rational {
	return Rational{r: new(big.Rat).SetInt64(n)}
}

// FromFrac builds a Rational equal to num/den. Panics if den is zero.
func FromFrac(num, den int64) Rational {
	if den == 0 {
		panic("bignum: zero denominator")
	}
	return Rational{r: new(big.Rat).SetFrac64(num, den)}
}

// FromBigRat wraps an existing *big.Rat. The Rational takes ownership; the
// caller must not mutate r afterwards.
func FromBigRat(r *big.Rat) Rational {
	if r == nil {
		return Zero
	}
	return Rational{r: r}
}

func (a Rational) ensure() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

// BigRat returns the underlying *big.Rat (read-only; callers must not mutate
// it).
func (a Rational) BigRat() *big.Rat { return a.ensure() }

// Add returns a+b.
func (a Rational) Add(b Rational) Rational {
	return Rational{r: new(big.Rat).Add(a.ensure(), b.ensure())}
}

// Sub returns a-b.
func (a Rational) Sub(b Rational) Rational {
	return Rational{r: new(big.Rat).Sub(a.ensure(), b.ensure())}
}

// Mul returns a*b.
func (a Rational) Mul(b Rational) Rational {
	return Rational{r: new(big.Rat).Mul(a.ensure(), b.ensure())}
}

// Div returns a/b. Panics if b is zero.
func (a Rational) Div(b Rational) Rational {
	if b.IsZero() {
		panic("bignum: division by zero")
	}
	return Rational{r: new(big.Rat).Quo(a.ensure(), b.ensure())}
}

// Neg returns -a.
func (a Rational) Neg() Rational {
	return Rational{r: new(big.Rat).Neg(a.ensure())}
}

// IsZero reports whether a is exactly zero.
func (a Rational) IsZero() bool { return a.ensure().Sign() == 0 }

// Sign returns -1, 0, or 1.
func (a Rational) Sign() int { return a.ensure().Sign() }

// Cmp returns -1, 0, or 1 as a<b, a==b, a>b.
func (a Rational) Cmp(b Rational) int { return a.ensure().Cmp(b.ensure()) }

// Equal reports a==b.
func (a Rational) Equal(b Rational) bool { return a.Cmp(b) == 0 }

// Less reports a<b.
func (a Rational) Less(b Rational) bool { return a.Cmp(b) < 0 }

// Floor returns the greatest integer <= a, as a Rational.
func (a Rational) Floor() Rational {
	num, den := a.ensure().Num(), a.ensure().Denom()
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(num, den, m) // Euclidean division: m in [0, den)
	return Rational{r: new(big.Rat).SetInt(q)}
}

// Ceil returns the least integer >= a, as a Rational.
func (a Rational) Ceil() Rational {
	f := a.Floor()
	if f.Equal(a) {
		return f
	}
	return f.Add(One)
}

// IsInteger reports whether a has denominator 1.
func (a Rational) IsInteger() bool {
	return a.ensure().IsInt()
}

// BitSize returns an approximate representation size, used by the §4.4
// SampleComparator's "representation bit-size" tie-break: the bit length of
// numerator plus denominator.
func (a Rational) BitSize() int {
	r := a.ensure()
	return r.Num().BitLen() + r.Denom().BitLen()
}

// Abs returns |a|.
func (a Rational) Abs() Rational {
	return Rational{r: new(big.Rat).Abs(a.ensure())}
}

// Mid returns the arithmetic mean of a and b.
func Mid(a, b Rational) Rational {
	return a.Add(b).Div(FromInt64(2))
}

// GCD returns the GCD of two integer-valued Rationals (both must have
// denominator 1); used by the numeric gcd contract for the scalar case.
func GCD(a, b Rational) Rational {
	x, y := new(big.Int).Set(a.ensure().Num()), new(big.Int).Set(b.ensure().Num())
	g := new(big.Int).GCD(nil, nil, x.Abs(x), y.Abs(y))
	return Rational{r: new(big.Rat).SetInt(g)}
}

// String renders a as "p/q" (or "p" when integral).
func (a Rational) String() string {
	r := a.ensure()
	if r.IsInt() {
		return r.Num().String()
	}
	return fmt.Sprintf("%s/%s", r.Num().String(), r.Denom().String())
}
