package cad

// EvaluateSign determines the sign of poly at the point described by
// assignment (every variable poly mentions must have an entry), refining
// any non-numeric RANs in assignment until the resulting interval
// enclosure no longer straddles zero. If the enclosure still contains zero
// after the refinement budget is exhausted, the value is treated as
// exactly zero -- correct whenever assignment sits exactly on poly's zero
// set (as it always does for the very polynomials a sample was derived
// from), and a documented best-effort approximation otherwise (see
// DESIGN.md, alongside Specialize's similar scoped simplification).
func EvaluateSign(poly MPoly, assignment map[int]RAN) int {
	vars := poly.Vars()
	enc := map[int]Interval{}
	for _, v := range vars {
		enc[v] = assignment[v].CurrentInterval()
	}
	iv := evalEnclosure(poly, enc)
	const rounds = 150
	for i := 0; i < rounds && iv.ContainsZero(); i++ {
		refined := false
		for _, v := range vars {
			r := assignment[v]
			if !r.IsNumeric() && r.CurrentInterval().Width().Sign() > 0 {
				assignment[v] = r.Refine()
				refined = true
			}
		}
		if !refined {
			break
		}
		for _, v := range vars {
			enc[v] = assignment[v].CurrentInterval()
		}
		iv = evalEnclosure(poly, enc)
	}
	if !iv.ContainsZero() {
		if iv.Hi.Sign() < 0 {
			return -1
		}
		return 1
	}
	return 0
}

// HoldsAt reports whether c is satisfied at assignment, using EvaluateSign
// for points that are not plainly rational.
func (c Constraint) HoldsAt(assignment map[int]RAN) bool {
	sign := EvaluateSign(c.Poly, assignment)
	ok := c.Cond.satisfiedBy(sign)
	if c.Negated {
		return !ok
	}
	return ok
}
