package cad

import "github.com/ths-rwth/carl-sub000/pkg/cad/bignum"

// Interval is a closed rational interval [Lo, Hi], the "interval
// collaborator" of §6. An isolating interval for an irrational RAN is
// conventionally open (its endpoints are themselves never roots), but the
// representation only needs closed-interval containment and arithmetic.
type Interval struct {
	Lo, Hi Rational
}

// PointInterval returns the degenerate interval [r, r].
func PointInterval(r Rational) Interval { return Interval{Lo: r, Hi: r} }

// Width returns Hi-Lo.
func (iv Interval) Width() Rational { return iv.Hi.Sub(iv.Lo) }

// Mid returns the midpoint of iv.
func (iv Interval) Mid() Rational { return bignum.Mid(iv.Lo, iv.Hi) }

// Contains reports whether r lies in the closed interval [Lo, Hi].
func (iv Interval) Contains(r Rational) bool {
	return !r.Less(iv.Lo) && !iv.Hi.Less(r)
}

// ContainsZero reports whether 0 lies in the closed interval.
func (iv Interval) ContainsZero() bool { return iv.Contains(bignum.Zero) }

// Overlaps reports whether iv and other share any point.
func (iv Interval) Overlaps(other Interval) bool {
	return !iv.Hi.Less(other.Lo) && !other.Hi.Less(iv.Lo)
}

// Add returns the interval sum.
func (iv Interval) Add(o Interval) Interval {
	return Interval{Lo: iv.Lo.Add(o.Lo), Hi: iv.Hi.Add(o.Hi)}
}

// Neg returns the interval negation.
func (iv Interval) Neg() Interval { return Interval{Lo: iv.Hi.Neg(), Hi: iv.Lo.Neg()} }

// Sub returns the interval difference.
func (iv Interval) Sub(o Interval) Interval { return iv.Add(o.Neg()) }

// Mul returns the interval product, taking the min/max of the four corner
// products (the standard conservative interval-multiplication rule).
func (iv Interval) Mul(o Interval) Interval {
	corners := [4]Rational{
		iv.Lo.Mul(o.Lo), iv.Lo.Mul(o.Hi), iv.Hi.Mul(o.Lo), iv.Hi.Mul(o.Hi),
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		if c.Less(lo) {
			lo = c
		}
		if hi.Less(c) {
			hi = c
		}
	}
	return Interval{Lo: lo, Hi: hi}
}

// Pow returns iv raised to a non-negative integer power.
func (iv Interval) Pow(n int) Interval {
	out := PointInterval(bignum.One)
	for i := 0; i < n; i++ {
		out = out.Mul(iv)
	}
	return out
}

// Intersect returns the overlap of iv and other. The result is only
// meaningful when the two intervals actually overlap (see Overlaps); a
// disjoint pair yields a degenerate interval with Hi < Lo.
func (iv Interval) Intersect(other Interval) Interval {
	lo := iv.Lo
	if lo.Less(other.Lo) {
		lo = other.Lo
	}
	hi := iv.Hi
	if other.Hi.Less(hi) {
		hi = other.Hi
	}
	return Interval{Lo: lo, Hi: hi}
}
