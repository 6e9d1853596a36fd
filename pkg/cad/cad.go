package cad

import (
	"io"

	"github.com/sirupsen/logrus"
)

// CAD is one Cylindrical Algebraic Decomposition instance: the owning arena,
// one Elimination Set per variable-order level, the Sample Tree built while
// lifting, the input Constraint Table, interrupt flags, and Settings. A CAD
// is not safe for concurrent use; see doc.go.
type CAD struct {
	arena       *PolynomialArena
	order       *VariableOrder
	settings    Settings
	levels      []*EliminationSet // levels[i] is univariate in order.At(i)
	tree        *SampleTree
	constraints *ConstraintTable
	interrupts  *InterruptFlags
	conflict    *ConflictGraph
	log         *logrus.Entry

	eliminationComplete bool
	interrupted         bool
	lastSatPath         []RAN
}

// NewCAD creates a CAD instance over the given variable order. log may be
// nil, in which case a silent entry on a fresh logger that discards its
// output is used (never the package-global logger, so callers can redirect
// output per instance).
func NewCAD(order *VariableOrder, settings Settings, log *logrus.Entry) *CAD {
	if log == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		log = logrus.NewEntry(silent)
	}
	arena := NewPolynomialArena()
	n := order.Len()
	levels := make([]*EliminationSet, n)
	for i := 0; i < n; i++ {
		levels[i] = NewEliminationSet(arena, i, order.At(i).ID())
	}
	return &CAD{
		arena:      arena,
		order:      order,
		settings:   settings,
		levels:     levels,
		tree:       NewSampleTree(),
		interrupts: NewInterruptFlags(n),
		conflict:   NewConflictGraph(),
		log:        log.WithField("component", "cad"),
	}
}

// Arena exposes the owning PolynomialArena (read-only use expected).
func (c *CAD) Arena() *PolynomialArena { return c.arena }

// VariableOrder exposes the configured variable order.
func (c *CAD) VariableOrder() *VariableOrder { return c.order }

// Level returns the Elimination Set for lifting depth k.
func (c *CAD) Level(k int) *EliminationSet { return c.levels[k] }

// Tree exposes the Sample Tree.
func (c *CAD) Tree() *SampleTree { return c.tree }

// Interrupts exposes the instance's interrupt flags, which a caller on
// another goroutine may raise to cancel a running Check.
func (c *CAD) Interrupts() *InterruptFlags { return c.interrupts }

// SetConstraints installs the constraint vector this CAD instance checks.
func (c *CAD) SetConstraints(constraints []Constraint) {
	c.constraints = NewConstraintTable(constraints, c.order)
}

// ConflictGraph exposes the conflict graph populated by the last Check call
// (valid only when Settings.ComputeConflictGraph is set).
func (c *CAD) ConflictGraph() *ConflictGraph { return c.conflict }

// AddPolynomial inserts mpoly into the top-level Elimination Set (the level
// whose main variable is the CAD's last lifting-depth variable), returning
// its arena handle. Adding a polynomial invalidates any previously computed
// elimination.
func (c *CAD) AddPolynomial(mpoly MPoly) PolyHandle {
	top := c.levels[len(c.levels)-1]
	h, _ := top.Insert(AsUnivariateIn(mpoly, top.MainVar()), nil, false)
	c.eliminationComplete = false
	return h
}

// RemovePolynomial removes h from the top-level set and cascades the
// removal to every projection descendant at every lower level, via
// EliminationSet.RemoveByParent chained level by level.
func (c *CAD) RemovePolynomial(h PolyHandle) {
	c.levels[len(c.levels)-1].Erase(h)
	frontier := []PolyHandle{h}
	for lvl := len(c.levels) - 2; lvl >= 0; lvl-- {
		var next []PolyHandle
		for _, parent := range frontier {
			for _, v := range c.levels[lvl].RemoveByParent(parent) {
				next = append(next, c.arena.Intern(v))
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	c.eliminationComplete = false
}

// PrepareElimination drains every level's paired/single work queues into
// the level below, normalizing along the way, until the bottom level holds
// only rational-coefficient square-free polynomials ready for real-root
// isolation. It is a no-op if the elimination is already up to date.
func (c *CAD) PrepareElimination() error {
	if c.eliminationComplete {
		return nil
	}
	n := len(c.levels)
	if n == 0 {
		c.eliminationComplete = true
		return nil
	}
	if c.settings.SimplifyByFactorization {
		c.levels[n-1].Factorize()
	}
	for lvl := n - 1; lvl > 0; lvl-- {
		src, dst := c.levels[lvl], c.levels[lvl-1]
		for !(len(src.pairedQueue) == 0 && len(src.singleQueue) == 0) {
			if err := src.EliminateNextInto(dst, c.settings, true); err != nil {
				return err
			}
		}
		if c.settings.SimplifyByFactorization {
			dst.Factorize()
		}
		if c.settings.ExcludeRootsWithNoWitness {
			dst.RemovePolynomialsWithoutRealRoots()
		}
		if lvl-1 > 0 {
			dst.MoveConstants(c.levels[lvl-2])
		} else {
			dst.RemoveConstants()
		}
	}
	c.eliminationComplete = true
	c.log.WithField("levels", n).Debug("elimination complete")
	return nil
}
