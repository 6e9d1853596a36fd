package cad

import "github.com/ths-rwth/carl-sub000/pkg/cad/bignum"

// evalEnclosure computes a conservative rational interval enclosure of p's
// value given an interval (possibly a point interval) for every variable it
// mentions, via straightforward interval arithmetic over p's monomials.
func evalEnclosure(p MPoly, assignment map[int]Interval) Interval {
	acc := PointInterval(bignum.Zero)
	for _, t := range p.terms {
		term := PointInterval(t.coeff)
		for id, e := range t.exp {
			iv, ok := assignment[id]
			if !ok {
				panic("cad: evalEnclosure missing assignment")
			}
			term = term.Mul(iv.Pow(e))
		}
		acc = acc.Add(term)
	}
	return acc
}

// enclosureOf returns a RAN's current rational enclosure.
func enclosureOf(r RAN) Interval { return r.CurrentInterval() }

// Specialize computes the univariate-over-ℚ polynomial obtained by
// substituting the RAN assignment for every variable of p other than
// p.MainVar. Rational entries in the assignment are substituted directly;
// irrational entries are eliminated one at a time via
// Resultant(p, definingPolynomial), the standard algebraic-substitution
// technique (§6 "evaluation of a multivariate polynomial at a RAN point").
//
// Because resultant elimination of an irrational RAN's defining polynomial
// does not know which of that polynomial's several real roots the RAN
// denotes, eliminating more than one irrational variable can introduce
// spurious extra real roots belonging to the other root(s) ("conjugates")
// of the eliminated defining polynomials. Specialize reports ok=false only
// when the result still mentions a variable absent from the assignment;
// callers that isolate real roots of the returned polynomial must discard
// spurious candidates using IsConsistentRoot, which filters by interval
// enclosure against the *original* multivariate polynomial and the actual
// (refined) RAN intervals -- this is the scoped simplification this module
// uses in place of full Thom-encoding-based sign determination (see
// DESIGN.md and _examples/original_source/src/tests/cad/Test_SignDetermination.cpp).
func Specialize(p UPolyValue, assignment map[int]RAN) (UPolyValue, bool) {
	mainVar := p.MainVar
	cur := p.AsMPoly()
	for {
		vars := cur.Vars()
		target := -1
		for _, v := range vars {
			if v != mainVar {
				if _, ok := assignment[v]; ok {
					target = v
					break
				}
			}
		}
		if target == -1 {
			break
		}
		ran := assignment[target]
		if ran.IsNumeric() {
			cur = cur.SubstituteRational(target, ran.Value())
			continue
		}
		asUniv := AsUnivariateIn(cur, target)
		defUPoly := FromRationalCoeffs(target, ran.DefiningPolynomial())
		cur = Resultant(asUniv, defUPoly, target)
	}
	for _, v := range cur.Vars() {
		if v != mainVar {
			return ZeroUPoly(mainVar), false
		}
	}
	return AsUnivariateIn(cur, mainVar), true
}

// IsConsistentRoot reports whether candidate (a root of p's Specialize
// result at mainVar) is consistent with p's true value at the given
// assignment, by refining every relevant interval and checking that p's
// enclosure still admits zero. It is used to discard resultant-elimination
// artifacts (see Specialize's doc comment).
func IsConsistentRoot(p UPolyValue, assignment map[int]RAN, candidate RAN) bool {
	full := p.AsMPoly()
	vars := full.Vars()
	const rounds = 60
	asg := map[int]RAN{}
	for k, v := range assignment {
		asg[k] = v
	}
	asg[p.MainVar] = candidate
	for i := 0; i < rounds; i++ {
		enc := map[int]Interval{}
		for _, v := range vars {
			r, ok := asg[v]
			if !ok {
				// A variable with no assignment contributes nothing to the
				// consistency check's precision; treat it as exact zero
				// width is impossible here since Specialize already
				// confirmed every non-mainVar variable is assigned.
				continue
			}
			enc[v] = enclosureOf(r)
		}
		iv := evalEnclosure(full, enc)
		if !iv.ContainsZero() {
			return false
		}
		refined := false
		for k, r := range asg {
			if !r.IsNumeric() && r.CurrentInterval().Width().Sign() > 0 {
				asg[k] = r.Refine()
				refined = true
			}
		}
		if !refined {
			break
		}
	}
	return true
}
