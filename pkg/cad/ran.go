package cad

import (
	"fmt"

	"github.com/ths-rwth/carl-sub000/pkg/cad/bignum"
)

// RAN is a Real Algebraic Number (§3, §6): either an exact rational, or an
// irrational root represented by a square-free defining polynomial plus a
// rational isolating interval. The IsRoot flag records whether this RAN was
// produced as a root of a lifting polynomial (true) or chosen as an
// intermediate witness between/around roots (false); see SampleTree's
// alternation invariant.
type RAN struct {
	numeric  bool
	value    Rational   // valid iff numeric
	defPoly  []Rational // ascending degree, squarefree; valid iff !numeric
	interval Interval   // isolating interval; valid iff !numeric
	isRoot   bool
}

// NewNumericRAN builds a RAN representing the exact rational value r.
func NewNumericRAN(r Rational, isRoot bool) RAN {
	return RAN{numeric: true, value: r, isRoot: isRoot}
}

// NewIntervalRAN builds a RAN representing the unique root of the
// square-free polynomial defPoly isolated within the open interval iv.
func NewIntervalRAN(defPoly []Rational, iv Interval, isRoot bool) RAN {
	return RAN{numeric: false, defPoly: ratTrim(defPoly), interval: iv, isRoot: isRoot}
}

// IsNumeric reports whether r is an exact rational.
func (r RAN) IsNumeric() bool { return r.numeric }

// IsRoot reports the is-root flag (§3).
func (r RAN) IsRoot() bool { return r.isRoot }

// WithRoot returns a copy of r with IsRoot set to v -- used by the promotion
// rules of §4.4/§4.5.
func (r RAN) WithRoot(v bool) RAN {
	r.isRoot = v
	return r
}

// Value returns the exact rational value; valid only if IsNumeric().
func (r RAN) Value() Rational { return r.value }

// DefiningPolynomial returns the ascending-degree coefficients of the
// square-free defining polynomial; valid only if !IsNumeric().
func (r RAN) DefiningPolynomial() []Rational { return r.defPoly }

// CurrentInterval returns a closed rational interval guaranteed to contain
// r: [value,value] if numeric, else the current isolating interval.
func (r RAN) CurrentInterval() Interval {
	if r.numeric {
		return PointInterval(r.value)
	}
	return r.interval
}

// IsInteger reports whether r is an exact integer.
func (r RAN) IsInteger() bool { return r.numeric && r.value.IsInteger() }

// BitSize approximates r's representation size, used by the §4.4
// SampleComparator tie-break.
func (r RAN) BitSize() int {
	if r.numeric {
		return r.value.BitSize()
	}
	size := r.interval.Lo.BitSize() + r.interval.Hi.BitSize()
	for _, c := range r.defPoly {
		size += c.BitSize()
	}
	return size
}

// Refine narrows r's isolating interval by one bisection step using the
// exact sign of its defining polynomial (a no-op if r is numeric).
func (r RAN) Refine() RAN {
	if r.numeric {
		return r
	}
	mid := r.interval.Mid()
	v := ratHorner(r.defPoly, mid)
	if v.IsZero() {
		return NewNumericRAN(mid, r.isRoot)
	}
	lo, hi := r.interval.Lo, r.interval.Hi
	if sign(ratHorner(r.defPoly, lo)) == sign(v) {
		return NewIntervalRAN(r.defPoly, Interval{Lo: mid, Hi: hi}, r.isRoot)
	}
	return NewIntervalRAN(r.defPoly, Interval{Lo: lo, Hi: mid}, r.isRoot)
}

// RefineTo refines r until its interval width is at most width, or a
// generous iteration cap is hit (whichever comes first).
func (r RAN) RefineTo(width Rational) RAN {
	const maxIter = 200
	for i := 0; i < maxIter && !r.numeric && width.Less(r.interval.Width()); i++ {
		r = r.Refine()
	}
	return r
}

// sameDefiningPolynomial reports whether r and o are non-numeric RANs with
// structurally identical defining polynomials.
func sameDefiningPolynomial(r, o RAN) bool {
	if len(r.defPoly) != len(o.defPoly) {
		return false
	}
	for i := range r.defPoly {
		if !r.defPoly[i].Equal(o.defPoly[i]) {
			return false
		}
	}
	return true
}

// Cmp returns -1, 0 or 1 as r<o, r==o, r>o, refining interval RANs as needed
// to disambiguate. Two interval RANs with the same defining polynomial and
// overlapping intervals (even at maximal practical refinement) are treated
// as equal, the representation of "the same algebraic number reached via
// two different projection paths".
func (r RAN) Cmp(o RAN) int {
	if r.numeric && o.numeric {
		return r.value.Cmp(o.value)
	}
	const tinyExp = 1 << 20
	tiny := bignum.FromFrac(1, tinyExp)
	for i := 0; i < 100; i++ {
		ri, oi := r.CurrentInterval(), o.CurrentInterval()
		if !ri.Overlaps(oi) {
			if ri.Hi.Less(oi.Lo) {
				return -1
			}
			return 1
		}
		if r.numeric {
			// r is exact; if o's interval still straddles it, check o's
			// defining polynomial at r.value directly.
			if !o.numeric && ratHorner(o.defPoly, r.value).IsZero() {
				return 0
			}
		} else if o.numeric {
			if ratHorner(r.defPoly, o.value).IsZero() {
				return 0
			}
		}
		if !r.numeric && tiny.Less(r.interval.Width()) {
			r = r.Refine()
		}
		if !o.numeric && tiny.Less(o.interval.Width()) {
			o = o.Refine()
		}
		if (r.numeric || !tiny.Less(r.interval.Width())) && (o.numeric || !tiny.Less(o.interval.Width())) {
			break
		}
	}
	if !r.numeric && !o.numeric && sameDefiningPolynomial(r, o) && r.interval.Overlaps(o.interval) {
		return 0
	}
	// Refinement exhausted without separating or confirming equality:
	// fall back to comparing interval midpoints, the best information
	// available.
	rm, om := r.CurrentInterval().Mid(), o.CurrentInterval().Mid()
	return rm.Cmp(om)
}

// Less reports r<o.
func (r RAN) Less(o RAN) bool { return r.Cmp(o) < 0 }

// Equal reports r==o.
func (r RAN) Equal(o RAN) bool { return r.Cmp(o) == 0 }

func (r RAN) String() string {
	if r.numeric {
		return r.value.String()
	}
	return fmt.Sprintf("root of %v in (%s,%s)", r.defPoly, r.interval.Lo, r.interval.Hi)
}
