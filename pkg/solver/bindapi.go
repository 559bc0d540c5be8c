package solver

import "constraintlab/pkg/typeterm"

// Bind attempts to fix v's representative to t, running the occurs
// check first. It journals the assignment and requeues every
// constraint that mentions v so they get a chance to re-simplify
// against the new fixed type. Returns false (with no mutation) if t
// fails the occurs check or simplifies to a bare type variable.
//
// This is the entry point a host's SimplifyFunc uses to perform a
// direct unification (Equal, Bind) rather than going through the
// search driver's candidate enumeration in bind.go, which is reserved
// for variables with no single forced binding.
func (s *System) Bind(v VarID, t typeterm.Term) bool {
	checked, ok := s.checkBinding(v, t)
	if !ok {
		return false
	}
	s.assignFixed(v, checked)
	s.requeue(v)
	return true
}

// UnifyVars merges the equivalence classes of a and b, binding whichever
// side lacks a fixed type to the other's if exactly one of them has one.
// Returns false if both already have fixed types, without comparing
// them (callers
// should fall back to an Equal comparison of the two fixed types in that
// case rather than treat this as a structural failure).
func (s *System) UnifyVars(a, b VarID) bool {
	ra, rb := s.Representative(a), s.Representative(b)
	if ra == rb {
		return true
	}
	if s.vars[ra].hasFixed && s.vars[rb].hasFixed {
		return false
	}
	s.unify(a, b)
	s.requeue(a)
	s.requeue(b)
	return true
}
