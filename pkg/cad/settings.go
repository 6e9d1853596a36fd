package cad

// ProjectionOperator selects the projection operator family used by the
// Projection Operator component (§4.2). It is a tagged variant, not a
// virtually-dispatched interface: Project switches on it directly.
type ProjectionOperator uint8

const (
	// McCallumOp is McCallum's projection operator.
	McCallumOp ProjectionOperator = iota
	// BrownOp is Brown's (single-factor-non-vanishing aware) projection
	// operator.
	BrownOp
	// HongOp is reserved and unimplemented; selecting it is a setup-time
	// error from PrepareElimination.
	HongOp
)

func (op ProjectionOperator) String() string {
	switch op {
	case McCallumOp:
		return "McCallum"
	case BrownOp:
		return "Brown"
	case HongOp:
		return "Hong"
	default:
		return "unknown"
	}
}

// SampleOrdering selects the variant of SampleComparator used to order a
// SampleSet's sorted slice. Check does not read it: lifting visits a node's
// children in ascending real order whatever the ordering.
type SampleOrdering uint8

const (
	// DefaultOrdering orders by the §4.4 comparator: integrality,
	// rationality, representation size, is-root flag, natural order.
	DefaultOrdering SampleOrdering = iota
	// NaturalOrdering ignores every tie-breaking rule and orders purely by
	// the RAN's natural real order (smallest first).
	NaturalOrdering
)

// IntegerHandling selects the policy applied to INTEGER-typed variables.
type IntegerHandling uint8

const (
	// NoIntegerHandling performs no integrality enforcement.
	NoIntegerHandling IntegerHandling = iota
	// SplitAtSample makes lifting skip every non-integral candidate sample
	// at an INTEGER variable, so such a branch is never explored; no
	// sat-path index stack is kept.
	SplitAtSample
	// BranchAndBound is handled exactly like SplitAtSample; no bounds are
	// tightened around integral witnesses.
	BranchAndBound
)

// Settings is the immutable configuration record consumed by a CAD instance.
// Build one with NewSettings and the With* options; Settings values are
// never mutated after construction.
type Settings struct {
	ProjectionOperator         ProjectionOperator
	SampleOrdering             SampleOrdering
	IntegerHandling            IntegerHandling
	EarlyLiftingPruning        bool
	SimplifyByFactorization    bool
	ExcludeRootsWithNoWitness  bool
	ComputeConflictGraph       bool
	// Debug, when true, makes InvariantViolation panic instead of
	// degrading to Unknown; an expansion knob (§9 error handling).
	Debug bool
}

// SettingsOption configures a Settings value under construction.
type SettingsOption func(*Settings)

// WithProjectionOperator selects the projection operator family.
func WithProjectionOperator(op ProjectionOperator) SettingsOption {
	return func(s *Settings) { s.ProjectionOperator = op }
}

// WithSampleOrdering selects the SampleComparator variant.
func WithSampleOrdering(o SampleOrdering) SettingsOption {
	return func(s *Settings) { s.SampleOrdering = o }
}

// WithIntegerHandling selects the INTEGER-variable policy.
func WithIntegerHandling(h IntegerHandling) SettingsOption {
	return func(s *Settings) { s.IntegerHandling = h }
}

// WithEarlyLiftingPruning toggles stopping lifting at the first SAT leaf.
func WithEarlyLiftingPruning(v bool) SettingsOption {
	return func(s *Settings) { s.EarlyLiftingPruning = v }
}

// WithSimplifyByFactorization toggles calling factorize() on the top
// Elimination Set before projection.
func WithSimplifyByFactorization(v bool) SettingsOption {
	return func(s *Settings) { s.SimplifyByFactorization = v }
}

// WithExcludeRootsWithNoWitness toggles dropping polynomials with no real
// roots from Elimination Sets.
func WithExcludeRootsWithNoWitness(v bool) SettingsOption {
	return func(s *Settings) { s.ExcludeRootsWithNoWitness = v }
}

// WithComputeConflictGraph toggles whether Check fills the Conflict Graph.
func WithComputeConflictGraph(v bool) SettingsOption {
	return func(s *Settings) { s.ComputeConflictGraph = v }
}

// WithDebug toggles fatal (panicking) handling of InvariantViolation.
func WithDebug(v bool) SettingsOption {
	return func(s *Settings) { s.Debug = v }
}

// NewSettings builds a Settings value with sane defaults (McCallum
// projection, default ordering, no integer handling, conflict graph
// computed, early pruning on) overridden by the given options.
func NewSettings(opts ...SettingsOption) Settings {
	s := Settings{
		ProjectionOperator:   McCallumOp,
		SampleOrdering:       DefaultOrdering,
		IntegerHandling:      NoIntegerHandling,
		EarlyLiftingPruning:  true,
		ComputeConflictGraph: true,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
