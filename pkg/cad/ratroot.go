package cad

import (
	"math/big"

	"github.com/ths-rwth/carl-sub000/pkg/cad/bignum"
)

// rationalRootFactor attempts to split the rational-coefficient polynomial
// rc (ascending degree) into [linear factor]*...*[linear factor]*[remaining
// factor] using the rational root theorem: every rational root p/q in
// lowest terms has p dividing the (integer-scaled) constant term and q
// dividing the leading term. If no rational root is found, rc is returned
// unsplit as the sole element.
//
// Candidate numerators/denominators are the divisors of the integer-scaled
// constant and leading coefficients; this is exact (not an approximation)
// but, like any rational-root search, cannot find irrational or complex
// factors -- EliminationSet.Factorize documents this as its scope.
func rationalRootFactor(rc []Rational) [][]Rational {
	rc = ratTrim(rc)
	if len(rc) < 3 {
		return [][]Rational{rc}
	}
	scaled, _ := scaleToIntegers(rc)
	a0 := scaled[0]
	an := scaled[len(scaled)-1]
	if a0.Sign() == 0 {
		// x divides rc; split off one factor of x and recurse.
		factor := []Rational{bignum.Zero, bignum.One}
		rest, _ := ratDivide(rc, factor)
		return append([][]Rational{factor}, rationalRootFactor(rest)...)
	}
	pDivs := divisors(a0)
	qDivs := divisors(an)

	cur := rc
	var factors [][]Rational
	for {
		found := false
		for _, p := range pDivs {
			for _, q := range qDivs {
				for _, sign := range []int64{1, -1} {
					num := new(big.Int).Mul(p, big.NewInt(sign))
					cand := bignum.FromBigRat(new(big.Rat).SetFrac(num, q))
					if ratDegree(cur) < 1 || !ratHorner(cur, cand).IsZero() {
						continue
					}
					// factor (x - cand) out of cur.
					linear := []Rational{cand.Neg(), bignum.One}
					quot, rem := ratDivide(cur, linear)
					if len(ratTrim(rem)) != 0 {
						continue
					}
					factors = append(factors, linear)
					cur = quot
					found = true
					break
				}
				if found {
					break
				}
			}
			if found {
				break
			}
		}
		if !found || ratDegree(cur) <= 1 {
			break
		}
	}
	if len(factors) == 0 {
		return [][]Rational{rc}
	}
	factors = append(factors, cur)
	return factors
}

// scaleToIntegers multiplies every coefficient by the LCM of their
// denominators, returning the resulting integer coefficients (as big.Int)
// and the scale factor used.
func scaleToIntegers(rc []Rational) ([]*big.Int, *big.Int) {
	lcm := big.NewInt(1)
	for _, c := range rc {
		d := c.BigRat().Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Div(d, g))
	}
	out := make([]*big.Int, len(rc))
	for i, c := range rc {
		n := new(big.Int).Mul(c.BigRat().Num(), new(big.Int).Div(lcm, c.BigRat().Denom()))
		out[i] = n
	}
	return out, lcm
}

// divisors returns the positive divisors of n's absolute value, bounded to
// keep the rational-root search tractable for the modest-degree
// polynomials this module handles.
func divisors(n *big.Int) []*big.Int {
	abs := new(big.Int).Abs(n)
	if abs.Sign() == 0 {
		return []*big.Int{big.NewInt(1)}
	}
	const boundedSearch = 100000
	bound := new(big.Int).SetInt64(boundedSearch)
	if abs.Cmp(bound) > 0 {
		abs = bound
	}
	var out []*big.Int
	one := big.NewInt(1)
	for i := new(big.Int).Set(one); i.Cmp(abs) <= 0; i.Add(i, one) {
		m := new(big.Int).Mod(n, i)
		if m.Sign() == 0 {
			out = append(out, new(big.Int).Set(i))
		}
	}
	if len(out) == 0 {
		out = append(out, one)
	}
	return out
}
