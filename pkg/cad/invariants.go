package cad

import "fmt"

// checkInvariants verifies Testable Property #1 (spec.md §8): for every
// Elimination Set, every queued polynomial reference resolves to a handle
// the set still Contains. Check calls this before searching; a violation
// means a queue or provenance update desynchronized from the present set,
// a programming bug rather than a recoverable input condition, reported as
// ErrInvariantViolation.
func (c *CAD) checkInvariants() error {
	for _, set := range c.levels {
		for _, h := range set.pairedQueue {
			if !set.Contains(h) {
				return ErrInvariantViolation.New(fmt.Sprintf("level %d: paired elimination queue references absent handle %d", set.level, h))
			}
		}
		for _, h := range set.singleQueue {
			if !set.Contains(h) {
				return ErrInvariantViolation.New(fmt.Sprintf("level %d: single elimination queue references absent handle %d", set.level, h))
			}
		}
		for _, h := range set.liftingQueue {
			if !set.Contains(h) {
				return ErrInvariantViolation.New(fmt.Sprintf("level %d: lifting queue references absent handle %d", set.level, h))
			}
		}
		for child := range set.parents {
			if !set.Contains(child) {
				return ErrInvariantViolation.New(fmt.Sprintf("level %d: provenance bookkeeping references absent handle %d", set.level, child))
			}
		}
	}
	return nil
}
