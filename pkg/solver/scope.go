package solver

// Scope is a push/pop guard over every piece of mutable System state
// that search needs to roll back on a failed branch, mirroring the
// original solver's SolverScope: constructed on entry to a branch and
// restored when that branch fails. Exit order matters (the overload
// stack and score must be restored before the caller inspects them), so
// Scope uses explicit Enter/Exit methods rather than a deferred closure.
// The callers in bind.go and disjunction.go call Exit explicitly when
// the branch that opened the Scope fails; a branch that reports success
// returns without calling it.
type Scope struct {
	sys *System

	resolvedOverloads *overloadNode
	numVars           int
	journalMark       int
	retiredMark       int
	numRestrictions   int
	previousGenerated map[*Constraint]struct{}
	previousScore     Score
}

// EnterScope opens a new rollback scope over s, capturing every field
// Scope.Exit will restore.
func EnterScope(s *System) *Scope {
	sc := &Scope{
		sys:               s,
		resolvedOverloads: s.resolvedOverloads,
		numVars:           len(s.vars),
		journalMark:       s.journal.len(),
		retiredMark:       len(s.retired),
		numRestrictions:   len(s.constraintRestrictions),
		previousGenerated: s.generated,
		previousScore:     s.score,
	}
	s.generated = make(map[*Constraint]struct{})
	return sc
}

// Exit undoes every mutation performed since the matching EnterScope:
// newly created variables are truncated, the binding journal is rewound,
// retired constraints are spliced back into the live store, constraints
// generated within the scope are removed, restrictions recorded within
// it are dropped, the overload stack head and score are restored, and
// the failed-constraint marker is cleared. Calling Exit more than once
// for the same Scope is not supported.
func (sc *Scope) Exit() {
	s := sc.sys

	if s.journal.len() < sc.journalMark {
		panic("solver: binding journal is shorter than its scope's mark on Exit")
	}
	s.journal.restoreTo(s, sc.journalMark)
	s.vars = s.vars[:sc.numVars]

	// Splice retired constraints back into live before stripping generated
	// ones: a constraint both generated and retired within this scope (a
	// sub-constraint that resolved immediately) sits in s.retired, not
	// s.live, until spliceRetiredBack restores it — removeGeneratedSince
	// must run after that restore or it never sees it and the constraint
	// wrongly survives rollback.
	s.spliceRetiredBack(sc.retiredMark)
	s.removeGeneratedSince(s.generated)
	s.generated = sc.previousGenerated

	s.constraintRestrictions = s.constraintRestrictions[:sc.numRestrictions]

	s.resolvedOverloads = sc.resolvedOverloads
	s.score = sc.previousScore
	s.failedConstraint = nil
}
