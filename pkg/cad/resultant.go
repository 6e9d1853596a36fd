package cad

import "github.com/ths-rwth/carl-sub000/pkg/cad/bignum"

// determinant computes det(m) by Laplace (cofactor) expansion along the
// first row. Cofactor expansion needs only ring addition, subtraction and
// multiplication -- no division -- so it works directly over MPoly
// coefficients (a commutative ring, not a field), which is what
// Resultant/Discriminant need: their Sylvester matrix entries are
// polynomials, not scalars, whenever the eliminated polynomials have
// non-constant coefficients.
//
// This is the textbook-simplest correct determinant algorithm: O(n!) in the
// matrix size, with zero first-row entries skipped, which keeps the sparse
// Sylvester matrices of the small projection and specialization polynomials
// this module builds cheap enough.
func determinant(m [][]MPoly) MPoly {
	n := len(m)
	if n == 0 {
		return ConstPoly(bignum.One)
	}
	if n == 1 {
		return m[0][0]
	}
	total := ZeroPoly()
	for col := 0; col < n; col++ {
		if m[0][col].IsZero() {
			continue
		}
		minor := make([][]MPoly, n-1)
		for i := 1; i < n; i++ {
			row := make([]MPoly, 0, n-1)
			for j := 0; j < n; j++ {
				if j == col {
					continue
				}
				row = append(row, m[i][j])
			}
			minor[i-1] = row
		}
		sub := determinant(minor).Mul(m[0][col])
		if col%2 == 1 {
			sub = sub.Neg()
		}
		total = total.Add(sub)
	}
	return total
}

// sylvesterMatrix builds the (degP+degQ) x (degP+degQ) Sylvester matrix of p
// and q, both viewed as univariate in mainVar with MPoly coefficients.
func sylvesterMatrix(p, q UPolyValue, mainVar int) [][]MPoly {
	dp, dq := p.Degree(), q.Degree()
	n := dp + dq
	m := make([][]MPoly, n)
	for i := range m {
		m[i] = make([]MPoly, n)
		for j := range m[i] {
			m[i][j] = ZeroPoly()
		}
	}
	// coeffAt returns the coefficient of mainVar^deg, so each row below
	// lists a polynomial's coefficients high-to-low, leading first.
	coeffAt := func(coeffs []MPoly, deg int) MPoly {
		if deg < 0 || deg >= len(coeffs) {
			return ZeroPoly()
		}
		return coeffs[deg]
	}
	for row := 0; row < dq; row++ {
		for j := 0; j <= dp; j++ {
			m[row][row+j] = coeffAt(p.Coeffs, dp-j)
		}
	}
	for row := 0; row < dp; row++ {
		for j := 0; j <= dq; j++ {
			m[dq+row][row+j] = coeffAt(q.Coeffs, dq-j)
		}
	}
	return m
}

// Resultant computes Res_mainVar(p, q): the determinant of their Sylvester
// matrix (§6 "resultant"). The result is a polynomial in the variables
// other than mainVar. If either polynomial is the zero polynomial in
// mainVar (degree < 0), the resultant is conventionally taken to be zero.
func Resultant(p, q UPolyValue, mainVar int) MPoly {
	if p.MainVar != mainVar {
		p = SwitchMainVariable(p, mainVar)
	}
	if q.MainVar != mainVar {
		q = SwitchMainVariable(q, mainVar)
	}
	if p.IsZero() || q.IsZero() {
		return ZeroPoly()
	}
	if p.Degree() == 0 || q.Degree() == 0 {
		// Sylvester matrix of size (dq or dp) collapses to the other's
		// leading coefficient raised appropriately; handle the degenerate
		// sizes directly rather than building a 0-row matrix.
		if p.Degree() == 0 && q.Degree() == 0 {
			return ConstPoly(bignum.One)
		}
		if p.Degree() == 0 {
			r := ConstPoly(bignum.One)
			for i := 0; i < q.Degree(); i++ {
				r = r.Mul(p.Coeffs[0])
			}
			return r
		}
		r := ConstPoly(bignum.One)
		for i := 0; i < p.Degree(); i++ {
			r = r.Mul(q.Coeffs[0])
		}
		return r
	}
	return determinant(sylvesterMatrix(p, q, mainVar))
}

// divideExactByRational divides every coefficient of p by the nonzero
// rational r. Division by a nonzero scalar in ℚ is always exact, since ℚ is
// a field and MPoly is a ℚ-vector space.
func (p MPoly) divideExactByRational(r Rational) MPoly {
	return p.Scale(bignum.One.Div(r))
}

// exactDivideByConstant divides mpoly by the rational constant c (see
// divideExactByRational); used to normalize discriminant/leading-coefficient
// results back down when the divisor happens to be a plain number, which is
// the common case once a polynomial's preceding variables have already been
// reduced to constants (e.g. during specialization).
func exactDivideByConstant(p MPoly, c Rational) (MPoly, bool) {
	if c.IsZero() {
		return ZeroPoly(), false
	}
	return p.divideExactByRational(c), true
}

// Discriminant computes disc_mainVar(p) = (-1)^(n(n-1)/2) * Res(p, p') /
// lc(p), per §6. When lc(p) is a genuine multivariate polynomial (not a
// constant) the division may not be exact in general; this implementation
// performs the division only when lc(p) reduces to a nonzero rational
// constant and otherwise returns the un-normalized resultant-based
// discriminant, which has the same real-root and sign-vanishing structure
// (differing only by a factor that is itself a square up to sign, per the
// classical discriminant identity).
func Discriminant(p UPolyValue) MPoly {
	n := p.Degree()
	if n <= 0 {
		return ConstPoly(bignum.One)
	}
	dp := derivativeUPoly(p)
	res := Resultant(p, dp, p.MainVar)
	sign := 1
	if (n*(n-1)/2)%2 == 1 {
		sign = -1
	}
	if sign == -1 {
		res = res.Neg()
	}
	if lc, ok := p.LeadingCoeff().IsConstant(); ok && !lc.IsZero() {
		if reduced, exact := exactDivideByConstant(res, lc); exact {
			return reduced
		}
	}
	return res
}

func derivativeUPoly(p UPolyValue) UPolyValue {
	return AsUnivariateIn(p.AsMPoly().Derivative(p.MainVar), p.MainVar)
}

// pseudoRemainder computes the pseudo-remainder of a divided by b (both
// univariate in mainVar), using only ring multiplication/subtraction: each
// step replaces rem by lc(b)*rem - lc(rem)*x^(deg(rem)-deg(b))*b, so no
// coefficient-ring division is ever needed even though that ring (MPoly) is
// not a field. This is the standard technique (§9 "pseudo-division") that
// lets polyGCD, and through it SquareFreePart, compute a coefficient-ring
// GCD without requiring true ring division.
func pseudoRemainder(a, b UPolyValue) UPolyValue {
	mainVar := a.MainVar
	if b.IsZero() {
		return a
	}
	rem := a.AsMPoly()
	lcB := b.LeadingCoeff()
	db := b.Degree()
	for {
		u := AsUnivariateIn(rem, mainVar)
		if u.IsZero() || u.Degree() < db {
			return u
		}
		da := u.Degree()
		lcA := u.LeadingCoeff()
		// rem := lcB*rem - lcA*x^(da-db)*b
		scaled := rem.Mul(lcB)
		shiftExp := map[int]int{mainVar: da - db}
		term := lcA.Mul(MonomialPoly(bignum.One, shiftExp)).Mul(b.AsMPoly())
		rem = scaled.Sub(term)
	}
}

// polyGCD computes a GCD (up to a ring-element multiple) of a and b via the
// pseudo-remainder sequence. Its real roots (and sign-invariant cells) match
// a true GCD's, which is all SquareFreePart needs.
func polyGCD(a, b UPolyValue) UPolyValue {
	mainVar := a.MainVar
	for !b.IsZero() {
		r := pseudoRemainder(a, b)
		a, b = b, r
	}
	return AsUnivariateIn(a.AsMPoly(), mainVar)
}

// SquareFreePart returns p divided by gcd(p, p') (up to a nonzero scalar),
// i.e. a polynomial with the same real roots as p, each of multiplicity 1.
// If p is already constant or zero, it is returned unchanged. p is also
// returned unchanged when the gcd's leading coefficient is not a rational
// constant, since the exact division by it is then not attempted.
func SquareFreePart(p UPolyValue) UPolyValue {
	if p.Degree() <= 0 {
		return p
	}
	dp := derivativeUPoly(p)
	if dp.IsZero() {
		return p
	}
	g := polyGCD(p, dp)
	if g.Degree() <= 0 {
		return p
	}
	q, ok := exactUnivariateDivide(p, g)
	if !ok {
		return p
	}
	return q
}

// exactUnivariateDivide performs ordinary polynomial long division of a by b
// (both univariate in the same main variable) when every division step's
// coefficient-ring division happens to be exact; it reports ok=false the
// moment an inexact step is encountered, in which case the caller should
// fall back to treating a as already reduced.
func exactUnivariateDivide(a, b UPolyValue) (UPolyValue, bool) {
	mainVar := a.MainVar
	if b.IsZero() {
		return ZeroUPoly(mainVar), false
	}
	lcB, lcBConst := b.LeadingCoeff().IsConstant()
	quotient := ZeroPoly()
	rem := a.AsMPoly()
	db := b.Degree()
	for {
		u := AsUnivariateIn(rem, mainVar)
		if u.IsZero() || u.Degree() < db {
			if u.IsZero() {
				return AsUnivariateIn(quotient, mainVar), true
			}
			return a, false
		}
		da := u.Degree()
		lcA := u.LeadingCoeff()
		var coeff MPoly
		if lcBConst && !lcB.IsZero() {
			coeff = lcA.divideExactByRational(lcB)
		} else {
			return a, false
		}
		shiftExp := map[int]int{mainVar: da - db}
		termMono := MonomialPoly(bignum.One, shiftExp)
		quotient = quotient.Add(coeff.Mul(termMono))
		rem = rem.Sub(coeff.Mul(termMono).Mul(b.AsMPoly()))
	}
}
