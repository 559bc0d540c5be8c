package solver

import (
	"constraintlab/pkg/typeterm"
)

// Outcome is the result of simplifying a single constraint (§4.5).
type Outcome int

const (
	Solved Outcome = iota
	Unsolved
	Error
)

// SimplifyFunc is the host callback that simplifies one constraint.
// Conjunction constraints must never reach it — they are normalized
// away before solving — and a host implementation that receives one
// should panic, matching the original's llvm_unreachable posture for a
// violated structural invariant.
type SimplifyFunc func(s *System, c *Constraint) Outcome

// FreeVariablePolicy controls how finalize.go handles variables left
// without a fixed type when the store empties out (§4.7).
type FreeVariablePolicy int

const (
	Disallow FreeVariablePolicy = iota
	Allow
	GenericParameters
)

// System is one constraint-solving session (a "constraint system" in
// the original terminology). It owns its journal, store, and graph;
// per §5, multiple Systems may be solved concurrently only if they share
// no state.
type System struct {
	ops      typeterm.Ops
	simplify SimplifyFunc
	tracer   Tracer

	vars []varState

	live             []*Constraint
	retired          []*Constraint
	worklist         []*Constraint
	graph            map[VarID][]*Constraint
	nextConstraintID int

	journal journal

	resolvedOverloads   *overloadNode
	constraintRestrictions []constraintRestriction

	score           Score
	failedConstraint *Constraint
	generated       map[*Constraint]struct{}

	depth         int
	stats         Stats
	freeVarPolicy FreeVariablePolicy

	initialComponents    map[VarID]int
	numInitialComponents int

	// haveBestScore/bestScore track the best complete solution found so
	// far across the whole search (never rolled back by Scope.Exit —
	// this is global search state, not branch-local). runWorklist
	// consults it after every constraint to prune a branch whose score
	// already exceeds it (§4.5).
	haveBestScore bool
	bestScore     Score
}

// constraintRestriction records a restriction tag applied to a pair of
// types during search, captured for finalize.go to simplify to
// canonical form (§4.7).
type constraintRestriction struct {
	first, second typeterm.Term
	restriction   Restriction
}

// New creates a constraint system bound to the given host operations,
// simplifier, and tracer. Pass NopTracer() if no tracing is wanted.
func New(ops typeterm.Ops, simplify SimplifyFunc, tracer Tracer) *System {
	if tracer == nil {
		tracer = NopTracer()
	}
	return &System{
		ops:      ops,
		simplify: simplify,
		tracer:   tracer,
		graph:    make(map[VarID][]*Constraint),
		stats:    newStats(),
	}
}

// FailedConstraint returns the constraint that most recently caused a
// branch to fail, for host diagnostics (§7). It is cleared on scope
// exit, so only meaningful immediately after a failing call returns.
func (s *System) FailedConstraint() *Constraint {
	return s.failedConstraint
}

// Score returns the system's current score.
func (s *System) Score() Score {
	return s.score
}
