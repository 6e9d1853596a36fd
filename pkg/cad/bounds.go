package cad

// Bounds maps variable ids to a rational interval restricting the values
// Check's search may consider for that variable (§4.9 "bounds handling").
// A nil or empty Bounds means no restriction.
type Bounds map[int]Interval

// ShrinkBounds returns a copy of bounds narrowed to witness, the standard
// response to a SAT result: every bound entry is replaced by the witness
// RAN's current enclosure, producing a smaller box that still contains the
// satisfying point (§4.9 "the engine may shrink_bounds around a satisfying
// point to produce a smaller witness box"). Entries for variables the
// witness does not assign are kept unchanged.
func ShrinkBounds(bounds Bounds, witness map[int]RAN) Bounds {
	out := make(Bounds, len(bounds))
	for v, iv := range bounds {
		if r, ok := witness[v]; ok {
			out[v] = r.CurrentInterval()
		} else {
			out[v] = iv
		}
	}
	return out
}

// WidenBounds returns a copy of bounds with every entry's interval extended
// by its own width on each side (three times its original width, same
// midpoint), the standard response to an UNSAT
// result: extending the infeasible box so the certificate covers more of
// the search space (§4.9 "and widen_bounds around an unsatisfiable one to
// extend UNSAT certificates").
func WidenBounds(bounds Bounds) Bounds {
	out := make(Bounds, len(bounds))
	for v, iv := range bounds {
		width := iv.Width()
		out[v] = Interval{Lo: iv.Lo.Sub(width), Hi: iv.Hi.Add(width)}
	}
	return out
}

// effectiveBound combines the caller-supplied bounds map with every
// installed constraint's per-variable bound hint (Constraint.Bound,
// SPEC_FULL.md §6.1), intersecting them when both are present.
func (c *CAD) effectiveBound(bounds Bounds, varID int) (Interval, bool) {
	iv, ok := bounds[varID]
	if c.constraints != nil {
		for _, con := range c.constraints.All() {
			b, bok := con.Bound(varID)
			if !bok {
				continue
			}
			if !ok {
				iv, ok = b, true
				continue
			}
			iv = iv.Intersect(b)
		}
	}
	return iv, ok
}
