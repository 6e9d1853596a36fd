package cad

import "github.com/ths-rwth/carl-sub000/pkg/cad/bignum"

// PickWitness returns a rational strictly between lo and hi (lo<hi), the
// §4.7 Witness Picker used to fill the open cells between (and around) the
// roots stored at a sample-tree level. The picker refines lo and hi's
// isolating intervals until their rational midpoint is guaranteed to fall
// strictly between the two real numbers.
func PickWitness(lo, hi RAN) RAN {
	const rounds = 200
	for i := 0; i < rounds; i++ {
		a, b := lo.CurrentInterval(), hi.CurrentInterval()
		if a.Hi.Less(b.Lo) {
			return NewNumericRAN(bignum.Mid(a.Hi, b.Lo), false)
		}
		if !lo.IsNumeric() {
			lo = lo.Refine()
		}
		if !hi.IsNumeric() {
			hi = hi.Refine()
		}
	}
	a, b := lo.CurrentInterval(), hi.CurrentInterval()
	return NewNumericRAN(bignum.Mid(a.Hi, b.Lo), false)
}

// PickWitnessBelow returns a rational strictly below r, used for the
// leftmost open cell of a level (§4.7's half-bounded case): floor(r)-1 when
// r is an exact integer (guaranteeing strictness even for integral r),
// otherwise floor(r.lowerBound)-1.
func PickWitnessBelow(r RAN) RAN {
	lo := r.CurrentInterval().Lo
	return NewNumericRAN(lo.Floor().Sub(bignum.One), false)
}

// PickWitnessAbove returns a rational strictly above r, the mirror of
// PickWitnessBelow for a level's rightmost open cell.
func PickWitnessAbove(r RAN) RAN {
	hi := r.CurrentInterval().Hi
	return NewNumericRAN(hi.Ceil().Add(bignum.One), false)
}

// PickIntegerWitness returns a witness strictly between lo and hi,
// preferring the integer nearest to PickWitness's midpoint when one exists
// in the open interval (SPEC_FULL.md §6.1). Lifting does not call it:
// LevelSamples always uses PickWitness, whatever Settings.IntegerHandling
// says.
func PickIntegerWitness(lo, hi RAN) RAN {
	w := PickWitness(lo, hi)
	v := w.Value()
	candidates := []Rational{v.Floor(), v.Ceil()}
	if candidates[1].Sub(v).Less(v.Sub(candidates[0])) {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	a, b := lo.CurrentInterval(), hi.CurrentInterval()
	for _, c := range candidates {
		if a.Hi.Less(c) && c.Less(b.Lo) {
			return NewNumericRAN(c, false)
		}
	}
	return w
}
