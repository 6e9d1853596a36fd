package cad

import "github.com/ths-rwth/carl-sub000/pkg/cad/bignum"

// This file implements the real-root-isolation primitive §6 asks of the
// "Real algebraic numbers" external collaborator ("isolation of all real
// roots of a univariate polynomial with rational coefficients, returned in
// strict increasing order"), using classical Sturm sequences. Coefficients
// are ascending-degree []Rational throughout.

func ratTrim(c []Rational) []Rational {
	n := len(c)
	for n > 0 && c[n-1].IsZero() {
		n--
	}
	return c[:n]
}

func ratDegree(c []Rational) int { return len(ratTrim(c)) - 1 }

func ratHorner(c []Rational, x Rational) Rational {
	c = ratTrim(c)
	if len(c) == 0 {
		return bignum.Zero
	}
	acc := c[len(c)-1]
	for i := len(c) - 2; i >= 0; i-- {
		acc = acc.Mul(x).Add(c[i])
	}
	return acc
}

func ratDerivative(c []Rational) []Rational {
	c = ratTrim(c)
	if len(c) <= 1 {
		return nil
	}
	out := make([]Rational, len(c)-1)
	for i := 1; i < len(c); i++ {
		out[i-1] = c[i].Mul(bignum.FromInt64(int64(i)))
	}
	return ratTrim(out)
}

// ratDivide performs exact polynomial division over the field ℚ, returning
// quotient and remainder (both ascending-degree, trimmed).
func ratDivide(a, b []Rational) (q, r []Rational) {
	a = append([]Rational{}, ratTrim(a)...)
	b = ratTrim(b)
	db := len(b) - 1
	lcB := b[db]
	if len(a) < len(b) {
		return nil, ratTrim(a)
	}
	q = make([]Rational, len(a)-db)
	for {
		da := ratDegree(a)
		if da < db {
			break
		}
		coeff := a[da].Div(lcB)
		q[da-db] = coeff
		for i := 0; i <= db; i++ {
			a[da-db+i] = a[da-db+i].Sub(coeff.Mul(b[i]))
		}
		a = ratTrim(a)
	}
	return ratTrim(q), ratTrim(a)
}

// ratGCD computes the monic GCD of a and b over ℚ[x] via the Euclidean
// algorithm (exact, since division in ℚ is exact).
func ratGCD(a, b []Rational) []Rational {
	a, b = ratTrim(a), ratTrim(b)
	for len(b) > 0 {
		_, r := ratDivide(a, b)
		a, b = b, r
	}
	if len(a) == 0 {
		return a
	}
	lc := a[len(a)-1]
	out := make([]Rational, len(a))
	for i, c := range a {
		out[i] = c.Div(lc)
	}
	return out
}

// ratSquareFree returns p/gcd(p,p'), monic-normalized.
func ratSquareFree(p []Rational) []Rational {
	p = ratTrim(p)
	if len(p) <= 1 {
		return p
	}
	dp := ratDerivative(p)
	if len(dp) == 0 {
		return p
	}
	g := ratGCD(p, dp)
	if len(g) <= 1 {
		lc := p[len(p)-1]
		out := make([]Rational, len(p))
		for i, c := range p {
			out[i] = c.Div(lc)
		}
		return out
	}
	q, _ := ratDivide(p, g)
	lc := q[len(q)-1]
	for i := range q {
		q[i] = q[i].Div(lc)
	}
	return q
}

// sturmSequence builds the Sturm sequence of the squarefree polynomial p.
func sturmSequence(p []Rational) [][]Rational {
	p = ratTrim(p)
	seq := [][]Rational{p}
	if len(p) <= 1 {
		return seq
	}
	seq = append(seq, ratDerivative(p))
	for {
		n := len(seq)
		_, rem := ratDivide(seq[n-2], seq[n-1])
		if len(ratTrim(rem)) == 0 {
			break
		}
		neg := make([]Rational, len(rem))
		for i, c := range rem {
			neg[i] = c.Neg()
		}
		seq = append(seq, ratTrim(neg))
	}
	return seq
}

func sign(r Rational) int { return r.Sign() }

// signVariations counts sign changes in the Sturm sequence evaluated at x,
// ignoring zero entries per the standard convention.
func signVariations(seq [][]Rational, x Rational) int {
	var signs []int
	for _, p := range seq {
		v := ratHorner(p, x)
		if s := sign(v); s != 0 {
			signs = append(signs, s)
		}
	}
	count := 0
	for i := 1; i < len(signs); i++ {
		if signs[i] != signs[i-1] {
			count++
		}
	}
	return count
}

// cauchyBound returns B such that every real root of p lies in (-B, B).
func cauchyBound(p []Rational) Rational {
	p = ratTrim(p)
	n := len(p) - 1
	if n <= 0 {
		return bignum.One
	}
	lc := p[n]
	max := bignum.Zero
	for i := 0; i < n; i++ {
		ratio := p[i].Abs().Div(lc.Abs())
		if max.Less(ratio) {
			max = ratio
		}
	}
	return bignum.One.Add(max)
}

// isolateRealRootsExact isolates every real root of p (ascending-degree
// rational coefficients) using Sturm's theorem, returning RANs in strictly
// increasing order. A root is returned as a numeric RAN when the polynomial
// has degree 1 or evaluates to exactly zero at a bisection midpoint; every
// other root (irrational, or rational but never hit by a midpoint) is
// returned as an interval RAN isolated to a width under a generous default
// precision. All returned RANs have IsRoot()==true.
func isolateRealRootsExact(p []Rational) []RAN {
	p = ratTrim(p)
	deg := ratDegree(p)
	if deg <= 0 {
		return nil
	}
	if deg == 1 {
		root := p[0].Neg().Div(p[1])
		return []RAN{NewNumericRAN(root, true)}
	}
	sf := ratSquareFree(p)
	seq := sturmSequence(sf)
	bound := cauchyBound(sf)
	negB := bound.Neg()

	type bracket struct{ lo, hi Rational }
	var roots []RAN
	var recurse func(lo, hi Rational, vlo, vhi int)
	recurse = func(lo, hi Rational, vlo, vhi int) {
		count := vlo - vhi
		if count <= 0 {
			return
		}
		if count == 1 {
			roots = append(roots, isolateSingleRoot(sf, lo, hi))
			return
		}
		mid := bignum.Mid(lo, hi)
		vmid := signVariations(seq, mid)
		if ratHorner(sf, mid).IsZero() {
			roots = append(roots, NewNumericRAN(mid, true))
			// Split off the exact root and recurse on both open sides.
			// The variation count at a simple root equals the count just
			// to its right (sf is squarefree), so the left side, which
			// must exclude mid, uses vmid+1.
			recurse(lo, mid, vlo, vmid+1)
			recurse(mid, hi, vmid, vhi)
			return
		}
		recurse(lo, mid, vlo, vmid)
		recurse(mid, hi, vmid, vhi)
	}
	vNeg := signVariations(seq, negB)
	vPos := signVariations(seq, bound)
	recurse(negB, bound, vNeg, vPos)

	// Sort ascending (recursion already visits left-to-right, but the
	// exact-root split above can interleave; a final stable sort keeps the
	// "strict increasing order" contract explicit and robust).
	for i := 1; i < len(roots); i++ {
		for j := i; j > 0 && roots[j].Less(roots[j-1]); j-- {
			roots[j], roots[j-1] = roots[j-1], roots[j]
		}
	}
	return roots
}

// isolateSingleRoot narrows (lo, hi), known to contain exactly one root of
// sf, to a default precision and returns the resulting RAN.
func isolateSingleRoot(sf []Rational, lo, hi Rational) RAN {
	const defaultBisections = 80
	for i := 0; i < defaultBisections; i++ {
		mid := bignum.Mid(lo, hi)
		v := ratHorner(sf, mid)
		if v.IsZero() {
			return NewNumericRAN(mid, true)
		}
		if sign(ratHorner(sf, lo)) == sign(v) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return NewIntervalRAN(sf, Interval{Lo: lo, Hi: hi}, true)
}
