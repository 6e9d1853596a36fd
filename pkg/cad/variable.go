package cad

import "fmt"

// VariableType tags a Variable as ranging over the reals or being
// constrained to integer values.
type VariableType uint8

const (
	// RealType is the default, unconstrained variable type.
	RealType VariableType = iota
	// IntegerType marks a variable whose sampled RANs must, under an
	// active integer-handling policy, be integral.
	IntegerType
)

func (t VariableType) String() string {
	if t == IntegerType {
		return "integer"
	}
	return "real"
}

// Variable is identified by an opaque id, unique within a single CAD
// instance's variable order, with a type tag.
type Variable struct {
	id   int
	name string
	typ  VariableType
}

// NewVariable creates a real-typed variable with the given id and name.
func NewVariable(id int, name string) Variable {
	return Variable{id: id, name: name, typ: RealType}
}

// NewIntegerVariable creates an integer-typed variable.
func NewIntegerVariable(id int, name string) Variable {
	return Variable{id: id, name: name, typ: IntegerType}
}

// ID returns the variable's opaque identifier.
func (v Variable) ID() int { return v.id }

// Name returns the variable's display name.
func (v Variable) Name() string { return v.name }

// Type returns whether v is REAL or INTEGER typed.
func (v Variable) Type() VariableType { return v.typ }

// IsInteger reports whether v is integer-typed.
func (v Variable) IsInteger() bool { return v.typ == IntegerType }

func (v Variable) String() string {
	if v.name != "" {
		return v.name
	}
	return fmt.Sprintf("v%d", v.id)
}

// VariableOrder holds the ordered sequence of "current" variables (the
// projection/lifting order, v1..vn) together with variables that have been
// scheduled via Schedule but not yet woven into that order.
//
// Lifting descends the order v1, v2, ..., vn (depth 0 assigns v1); projection
// eliminates in the reverse order, vn down to v1.
type VariableOrder struct {
	current []Variable
	pending []Variable
}

// NewVariableOrder creates a VariableOrder seeded with the given sequence.
func NewVariableOrder(vars ...Variable) *VariableOrder {
	current := make([]Variable, len(vars))
	copy(current, vars)
	return &VariableOrder{current: current}
}

// Len returns the number of current (woven-in) variables, i.e. n.
func (vo *VariableOrder) Len() int { return len(vo.current) }

// At returns the variable at lifting-depth k (0-indexed, so v1 is At(0)).
func (vo *VariableOrder) At(k int) Variable { return vo.current[k] }

// All returns a copy of the current ordered variable sequence.
func (vo *VariableOrder) All() []Variable {
	out := make([]Variable, len(vo.current))
	copy(out, vo.current)
	return out
}

// IndexOf returns the lifting depth of the variable with the given id, or
// (-1, false) if it is not part of the current order.
func (vo *VariableOrder) IndexOf(id int) (int, bool) {
	for i, v := range vo.current {
		if v.id == id {
			return i, true
		}
	}
	return -1, false
}

// Schedule appends a variable to the pending (not yet woven in) set. It is a
// no-op if the variable id is already current or already pending.
func (vo *VariableOrder) Schedule(v Variable) {
	if _, ok := vo.IndexOf(v.id); ok {
		return
	}
	for _, p := range vo.pending {
		if p.id == v.id {
			return
		}
	}
	vo.pending = append(vo.pending, v)
}

// HasPending reports whether any variables are scheduled but not yet woven
// into the current order.
func (vo *VariableOrder) HasPending() bool { return len(vo.pending) > 0 }

// Weave prepends all pending variables to the front of the current order
// (new variables take the first lifting depths, the lowest levels, and are
// eliminated last)
// and clears the pending set. It returns the number of variables woven in.
func (vo *VariableOrder) Weave() int {
	if len(vo.pending) == 0 {
		return 0
	}
	n := len(vo.pending)
	merged := make([]Variable, 0, n+len(vo.current))
	merged = append(merged, vo.pending...)
	merged = append(merged, vo.current...)
	vo.current = merged
	vo.pending = nil
	return n
}
