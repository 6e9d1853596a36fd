package cad

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ths-rwth/carl-sub000/pkg/cad/bignum"
)

// Rational is the numeric primitive consumed by the core (§6 "Numeric
// types"); it is an alias so callers of this package need not import
// bignum directly.
type Rational = bignum.Rational

// term is one monomial of an MPoly: a coefficient together with its exponent
// vector, stored sparsely as varID -> exponent (only nonzero exponents are
// present).
type term struct {
	exp   map[int]int
	coeff Rational
}

func (t term) clone() term {
	e := make(map[int]int, len(t.exp))
	for k, v := range t.exp {
		e[k] = v
	}
	return term{exp: e, coeff: t.coeff}
}

func monoKey(exp map[int]int) string {
	if len(exp) == 0 {
		return ""
	}
	ids := make([]int, 0, len(exp))
	for id := range exp {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%d^%d,", id, exp[id])
	}
	return b.String()
}

// MPoly is a multivariate polynomial over ℚ, represented sparsely. It is the
// MPoly of §3 ("multivariate polynomial over V"): it appears both as an
// input polynomial and as a UPoly coefficient.
type MPoly struct {
	terms map[string]term
}

// ZeroPoly returns the zero multivariate polynomial.
func ZeroPoly() MPoly { return MPoly{terms: map[string]term{}} }

// ConstPoly returns the constant polynomial r.
func ConstPoly(r Rational) MPoly {
	p := ZeroPoly()
	if !r.IsZero() {
		p.terms[""] = term{exp: map[int]int{}, coeff: r}
	}
	return p
}

// VarPoly returns the degree-1 monomial varID^1.
func VarPoly(varID int) MPoly {
	p := ZeroPoly()
	e := map[int]int{varID: 1}
	p.terms[monoKey(e)] = term{exp: e, coeff: bignum.One}
	return p
}

// MonomialPoly returns coeff * prod(varID^exp).
func MonomialPoly(coeff Rational, exp map[int]int) MPoly {
	p := ZeroPoly()
	if coeff.IsZero() {
		return p
	}
	clean := map[int]int{}
	for k, v := range exp {
		if v != 0 {
			clean[k] = v
		}
	}
	p.terms[monoKey(clean)] = term{exp: clean, coeff: coeff}
	return p
}

// IsZero reports whether p is the zero polynomial.
func (p MPoly) IsZero() bool { return len(p.terms) == 0 }

// IsConstant reports whether p has degree 0 in every variable, and returns
// its value (zero if p is the zero polynomial).
func (p MPoly) IsConstant() (Rational, bool) {
	if len(p.terms) == 0 {
		return bignum.Zero, true
	}
	if len(p.terms) == 1 {
		if t, ok := p.terms[""]; ok {
			return t.coeff, true
		}
	}
	return bignum.Zero, false
}

// Clone returns a deep copy of p.
func (p MPoly) Clone() MPoly {
	out := ZeroPoly()
	for k, t := range p.terms {
		out.terms[k] = t.clone()
	}
	return out
}

// Add returns p+q.
func (p MPoly) Add(q MPoly) MPoly {
	out := p.Clone()
	for k, t := range q.terms {
		if cur, ok := out.terms[k]; ok {
			sum := cur.coeff.Add(t.coeff)
			if sum.IsZero() {
				delete(out.terms, k)
			} else {
				cur.coeff = sum
				out.terms[k] = cur
			}
		} else {
			out.terms[k] = t.clone()
		}
	}
	return out
}

// Neg returns -p.
func (p MPoly) Neg() MPoly {
	out := ZeroPoly()
	for k, t := range p.terms {
		nt := t.clone()
		nt.coeff = nt.coeff.Neg()
		out.terms[k] = nt
	}
	return out
}

// Sub returns p-q.
func (p MPoly) Sub(q MPoly) MPoly { return p.Add(q.Neg()) }

// Scale returns r*p.
func (p MPoly) Scale(r Rational) MPoly {
	if r.IsZero() {
		return ZeroPoly()
	}
	out := ZeroPoly()
	for k, t := range p.terms {
		nt := t.clone()
		nt.coeff = nt.coeff.Mul(r)
		out.terms[k] = nt
	}
	return out
}

// Mul returns p*q.
func (p MPoly) Mul(q MPoly) MPoly {
	out := ZeroPoly()
	for _, t1 := range p.terms {
		for _, t2 := range q.terms {
			e := map[int]int{}
			for k, v := range t1.exp {
				e[k] = v
			}
			for k, v := range t2.exp {
				e[k] += v
			}
			c := t1.coeff.Mul(t2.coeff)
			key := monoKey(e)
			if cur, ok := out.terms[key]; ok {
				sum := cur.coeff.Add(c)
				if sum.IsZero() {
					delete(out.terms, key)
				} else {
					cur.coeff = sum
					out.terms[key] = cur
				}
			} else if !c.IsZero() {
				out.terms[key] = term{exp: e, coeff: c}
			}
		}
	}
	return out
}

// DegreeIn returns the exponent of varID in p's highest term mentioning it
// (0 if p does not mention varID).
func (p MPoly) DegreeIn(varID int) int {
	d := 0
	for _, t := range p.terms {
		if e, ok := t.exp[varID]; ok && e > d {
			d = e
		}
	}
	return d
}

// Vars returns the sorted set of variable ids appearing in p.
func (p MPoly) Vars() []int {
	set := map[int]bool{}
	for _, t := range p.terms {
		for id := range t.exp {
			set[id] = true
		}
	}
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// SubstituteRational returns p with varID replaced by the rational value r.
func (p MPoly) SubstituteRational(varID int, r Rational) MPoly {
	out := ZeroPoly()
	for _, t := range p.terms {
		e, ok := t.exp[varID]
		coeff := t.coeff
		if ok {
			for i := 0; i < e; i++ {
				coeff = coeff.Mul(r)
			}
		}
		newExp := map[int]int{}
		for k, v := range t.exp {
			if k != varID {
				newExp[k] = v
			}
		}
		key := monoKey(newExp)
		if cur, exists := out.terms[key]; exists {
			sum := cur.coeff.Add(coeff)
			if sum.IsZero() {
				delete(out.terms, key)
			} else {
				cur.coeff = sum
				out.terms[key] = cur
			}
		} else if !coeff.IsZero() {
			out.terms[key] = term{exp: newExp, coeff: coeff}
		}
	}
	return out
}

// EvalRational fully evaluates p at a rational assignment of every variable
// it mentions; variables absent from the assignment must not occur in p.
func (p MPoly) EvalRational(point map[int]Rational) Rational {
	acc := bignum.Zero
	for _, t := range p.terms {
		term := t.coeff
		for id, e := range t.exp {
			r, ok := point[id]
			if !ok {
				panic(fmt.Sprintf("cad: EvalRational missing assignment for variable %d", id))
			}
			for i := 0; i < e; i++ {
				term = term.Mul(r)
			}
		}
		acc = acc.Add(term)
	}
	return acc
}

// Derivative returns d/d(varID) p.
func (p MPoly) Derivative(varID int) MPoly {
	out := ZeroPoly()
	for _, t := range p.terms {
		e, ok := t.exp[varID]
		if !ok || e == 0 {
			continue
		}
		newExp := map[int]int{}
		for k, v := range t.exp {
			newExp[k] = v
		}
		newExp[varID] = e - 1
		if newExp[varID] == 0 {
			delete(newExp, varID)
		}
		coeff := t.coeff.Mul(bignum.FromInt64(int64(e)))
		key := monoKey(newExp)
		if cur, exists := out.terms[key]; exists {
			sum := cur.coeff.Add(coeff)
			if sum.IsZero() {
				delete(out.terms, key)
			} else {
				cur.coeff = sum
				out.terms[key] = cur
			}
		} else if !coeff.IsZero() {
			out.terms[key] = term{exp: newExp, coeff: coeff}
		}
	}
	return out
}

// Equal reports structural equality (same monomials, same coefficients).
func (p MPoly) Equal(q MPoly) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for k, t := range p.terms {
		o, ok := q.terms[k]
		if !ok || !t.coeff.Equal(o.coeff) {
			return false
		}
	}
	return true
}

// String renders p in a readable, deterministic form (sorted by monomial
// key), used for diagnostics and as the canonical encoding fed to the Arena.
func (p MPoly) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	keys := make([]string, 0, len(p.terms))
	for k := range p.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		t := p.terms[k]
		if i > 0 {
			b.WriteString("+")
		}
		fmt.Fprintf(&b, "(%s)", t.coeff.String())
		ids := make([]int, 0, len(t.exp))
		for id := range t.exp {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "*v%d^%d", id, t.exp[id])
		}
	}
	return b.String()
}

// --- UPoly: a polynomial in one designated main variable, coefficients
// being MPolys over the variables preceding it in the CAD order. ---

// UPolyValue is the value type interned by the Polynomial Arena (§4.1).
// Coeffs[i] is the coefficient of MainVar^i; Coeffs is never empty and its
// last entry is never the zero polynomial (degree normalization), except
// for the explicit zero UPoly which has len(Coeffs) == 0.
type UPolyValue struct {
	MainVar int
	Coeffs  []MPoly // ascending degree
}

// ZeroUPoly returns the zero polynomial in mainVar.
func ZeroUPoly(mainVar int) UPolyValue { return UPolyValue{MainVar: mainVar} }

// NewUPoly builds a UPolyValue from ascending-degree coefficients, trimming
// trailing (high-degree) zero coefficients.
func NewUPoly(mainVar int, coeffs []MPoly) UPolyValue {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].IsZero() {
		n--
	}
	out := make([]MPoly, n)
	copy(out, coeffs[:n])
	return UPolyValue{MainVar: mainVar, Coeffs: out}
}

// FromRationalCoeffs builds a UPolyValue whose coefficients are rational
// constants (i.e. a plain univariate-over-ℚ polynomial) in mainVar.
func FromRationalCoeffs(mainVar int, coeffs []Rational) UPolyValue {
	mp := make([]MPoly, len(coeffs))
	for i, c := range coeffs {
		mp[i] = ConstPoly(c)
	}
	return NewUPoly(mainVar, mp)
}

// Degree returns the polynomial's degree in MainVar, or -1 for the zero
// polynomial.
func (u UPolyValue) Degree() int { return len(u.Coeffs) - 1 }

// IsZero reports whether u is the zero polynomial.
func (u UPolyValue) IsZero() bool { return len(u.Coeffs) == 0 }

// LeadingCoeff returns the coefficient of the highest-degree term.
func (u UPolyValue) LeadingCoeff() MPoly {
	if u.IsZero() {
		return ZeroPoly()
	}
	return u.Coeffs[len(u.Coeffs)-1]
}

// AsMPoly converts u into a plain MPoly over all its variables (MainVar
// included).
func (u UPolyValue) AsMPoly() MPoly {
	out := ZeroPoly()
	for deg, c := range u.Coeffs {
		out = out.Add(c.Mul(MonomialPoly(bignum.One, map[int]int{u.MainVar: deg})))
	}
	return out
}

// RationalCoeffs reports whether every coefficient of u is a rational
// constant and, if so, returns them ascending by degree.
func (u UPolyValue) RationalCoeffs() ([]Rational, bool) {
	out := make([]Rational, len(u.Coeffs))
	for i, c := range u.Coeffs {
		r, ok := c.IsConstant()
		if !ok {
			return nil, false
		}
		out[i] = r
	}
	return out, true
}

// Equal reports structural equality of two UPolyValues (same main variable,
// same coefficients) -- the equality the Polynomial Arena deduplicates on.
func (u UPolyValue) Equal(o UPolyValue) bool {
	if u.MainVar != o.MainVar || len(u.Coeffs) != len(o.Coeffs) {
		return false
	}
	for i := range u.Coeffs {
		if !u.Coeffs[i].Equal(o.Coeffs[i]) {
			return false
		}
	}
	return true
}

// String renders u's canonical encoding (main variable then coefficients
// high-to-low), used both for diagnostics and as the Arena's hash input.
func (u UPolyValue) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "main=%d;", u.MainVar)
	for deg := len(u.Coeffs) - 1; deg >= 0; deg-- {
		fmt.Fprintf(&b, "[%d:%s]", deg, u.Coeffs[deg].String())
	}
	return b.String()
}

// AsUnivariateIn reinterprets p as a univariate polynomial in mainVar, with
// coefficients being MPolys over p's remaining variables.
func AsUnivariateIn(p MPoly, mainVar int) UPolyValue {
	deg := p.DegreeIn(mainVar)
	coeffs := make([]MPoly, deg+1)
	for i := range coeffs {
		coeffs[i] = ZeroPoly()
	}
	for _, t := range p.terms {
		e := t.exp[mainVar]
		rest := map[int]int{}
		for k, v := range t.exp {
			if k != mainVar {
				rest[k] = v
			}
		}
		key := monoKey(rest)
		c := coeffs[e]
		if cur, ok := c.terms[key]; ok {
			sum := cur.coeff.Add(t.coeff)
			if sum.IsZero() {
				delete(c.terms, key)
			} else {
				cur.coeff = sum
				c.terms[key] = cur
			}
		} else if !t.coeff.IsZero() {
			c.terms[key] = term{exp: rest, coeff: t.coeff}
		}
		coeffs[e] = c
	}
	return NewUPoly(mainVar, coeffs)
}

// SwitchMainVariable converts p (seen as univariate in its current main
// variable) into a UPolyValue univariate in newMainVar, per the §6 contract
// switch_main_variable(p, v): p's full multivariate expansion is simply
// re-grouped around newMainVar.
func SwitchMainVariable(p UPolyValue, newMainVar int) UPolyValue {
	if p.MainVar == newMainVar {
		return p
	}
	return AsUnivariateIn(p.AsMPoly(), newMainVar)
}
