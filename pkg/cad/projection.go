package cad

import "fmt"

// provablyNonVanishes implements the conservative "provably does not
// vanish" test of §4.2: zero is false; a nonzero constant is true; a
// polynomial with a definite sign detectable by a cheap interval-style
// check (every variable term shares the sign of a nonzero constant term and
// carries only even exponents, so the sum can never cross zero) is true;
// everything else is false. This is a deliberately conservative
// under-approximation -- returning false is always safe, it only costs
// Brown's operator an extra emitted polynomial.
func provablyNonVanishes(c MPoly) bool {
	if c.IsZero() {
		return false
	}
	if _, ok := c.IsConstant(); ok {
		return true
	}
	var constTerm Rational
	haveConst := false
	wantSign := 0
	for _, t := range c.terms {
		allEven := true
		for _, e := range t.exp {
			if e%2 != 0 {
				allEven = false
				break
			}
		}
		if len(t.exp) == 0 {
			constTerm = t.coeff
			haveConst = true
			continue
		}
		if !allEven {
			return false
		}
		s := t.coeff.Sign()
		if wantSign == 0 {
			wantSign = s
		} else if s != wantSign {
			return false
		}
	}
	if !haveConst || constTerm.IsZero() {
		return false
	}
	return constTerm.Sign() == wantSign || wantSign == 0
}

// Projected is one polynomial emitted by Project, paired with the
// originating parent(s) (one for a single-polynomial operator, two for a
// paired operator) from the level above.
type Projected struct {
	Poly    UPolyValue
	Parent1 PolyHandle
	Parent2 PolyHandle // invalidHandle if this emission came from a single-operator step
}

// Project implements the Projection Operator (§4.2): a pure function from a
// polynomial (and, for the paired variants, a second polynomial) to the
// projection polynomials the chosen operator emits, each paired with its
// provenance. mainVar is the variable the emitted polynomials should be
// expressed as univariate in (the level below p and q's).
func Project(op ProjectionOperator, pHandle PolyHandle, p UPolyValue, qHandle PolyHandle, q *UPolyValue, mainVar int) ([]Projected, error) {
	switch op {
	case HongOp:
		return nil, ErrUnsupportedProjection.New(op.String())
	case McCallumOp:
		if q != nil {
			r := Resultant(p, *q, p.MainVar)
			return []Projected{{
				Poly:    SwitchMainVariable(AsUnivariateIn(r, p.MainVar), mainVar),
				Parent1: pHandle,
				Parent2: qHandle,
			}}, nil
		}
		var out []Projected
		disc := Discriminant(p)
		out = append(out, Projected{
			Poly:    SwitchMainVariable(AsUnivariateIn(disc, p.MainVar), mainVar),
			Parent1: pHandle,
			Parent2: invalidHandle,
		})
		for _, c := range p.Coeffs {
			if _, ok := c.IsConstant(); ok {
				continue
			}
			out = append(out, Projected{
				Poly:    SwitchMainVariable(AsUnivariateIn(c, p.MainVar), mainVar),
				Parent1: pHandle,
				Parent2: invalidHandle,
			})
		}
		return out, nil
	case BrownOp:
		if q != nil {
			r := Resultant(p, *q, p.MainVar)
			return []Projected{{
				Poly:    SwitchMainVariable(AsUnivariateIn(r, p.MainVar), mainVar),
				Parent1: pHandle,
				Parent2: qHandle,
			}}, nil
		}
		var out []Projected
		disc := Discriminant(p)
		emit := func(c MPoly) {
			out = append(out, Projected{
				Poly:    SwitchMainVariable(AsUnivariateIn(c, p.MainVar), mainVar),
				Parent1: pHandle,
				Parent2: invalidHandle,
			})
		}
		emit(disc)
		deg := p.Degree()
		lc := p.Coeffs[deg]
		if provablyNonVanishes(lc) {
			return out, nil
		}
		intermediateNonVanishing := false
		for i := 1; i < deg; i++ {
			if provablyNonVanishes(p.Coeffs[i]) {
				intermediateNonVanishing = true
				break
			}
		}
		if intermediateNonVanishing {
			emit(lc)
			return out, nil
		}
		for _, c := range p.Coeffs {
			if _, ok := c.IsConstant(); ok {
				continue
			}
			emit(c)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cad: unknown projection operator %d", op)
	}
}
