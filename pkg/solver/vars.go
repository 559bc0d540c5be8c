package solver

import (
	"fmt"

	"constraintlab/pkg/typeterm"
)

// VarID identifies a type variable. Aliased from typeterm so hosts and
// the solver share one identity space.
type VarID = typeterm.VarID

// varState is the mutable state of a single type variable: its current
// representative, an optional fixed type once bound, and whether it may
// be bound to an l-value type. Every mutation of a varState must be
// journaled first (see journal.go) so a failed branch can be undone.
type varState struct {
	representative VarID
	fixed          typeterm.Term
	hasFixed       bool
	canBindToLValue bool
}

// NewVar creates a fresh type variable and returns its id. Fresh
// variables may be introduced at any point during search (e.g. when
// opening a generic type); they are truncated back out on scope exit if
// they were created within a failed branch.
func (s *System) NewVar(canBindToLValue bool) VarID {
	id := VarID(len(s.vars))
	s.vars = append(s.vars, varState{
		representative:  id,
		canBindToLValue: canBindToLValue,
	})
	return id
}

// Representative returns the canonical representative of id, performing
// path compression. Every hop compressed is journaled so rollback is
// exact.
func (s *System) Representative(id VarID) VarID {
	root := id
	for s.vars[root].representative != root {
		root = s.vars[root].representative
	}
	for s.vars[id].representative != root {
		next := s.vars[id].representative
		s.journal.record(s, id)
		s.vars[id].representative = root
		id = next
	}
	return root
}

// FixedType returns the fixed type of id's representative, if any.
// Satisfies typeterm.Subst.
func (s *System) FixedType(id VarID) (typeterm.Term, bool) {
	rep := s.Representative(id)
	return s.vars[rep].fixed, s.vars[rep].hasFixed
}

// CanBindToLValue reports whether id's representative may be bound to an
// l-value type directly.
func (s *System) CanBindToLValue(id VarID) bool {
	rep := s.Representative(id)
	return s.vars[rep].canBindToLValue
}

// assignFixed binds id's representative to a fixed type, journaling the
// previous state first. Callers are responsible for having already
// performed the occurs check (see checkBinding).
func (s *System) assignFixed(id VarID, t typeterm.Term) {
	rep := s.Representative(id)
	s.journal.record(s, rep)
	s.vars[rep].fixed = t
	s.vars[rep].hasFixed = true
}

// unify merges the equivalence classes of a and b. The representative
// with the larger id becomes the child, so merge direction is
// deterministic across runs regardless of call order within a single
// solve.
func (s *System) unify(a, b VarID) {
	ra, rb := s.Representative(a), s.Representative(b)
	if ra == rb {
		return
	}
	if ra < rb {
		ra, rb = rb, ra
	}
	s.journal.record(s, ra)
	s.vars[ra].representative = rb
	if s.vars[ra].hasFixed && !s.vars[rb].hasFixed {
		s.journal.record(s, rb)
		s.vars[rb].fixed = s.vars[ra].fixed
		s.vars[rb].hasFixed = true
	}
}

// checkBinding is the occurs-check gate ported from the original
// solver's checkTypeOfBinding: it simplifies t under the current
// substitution and rejects the binding (by returning ok=false, not an
// error) if the representative of v occurs free in the result, or if
// the result is itself a bare type variable.
func (s *System) checkBinding(v VarID, t typeterm.Term) (typeterm.Term, bool) {
	if t == nil {
		return nil, false
	}
	simplified := s.ops.Simplify(t, s)
	rep := s.Representative(v)
	for _, fv := range s.ops.FreeVars(simplified) {
		if s.Representative(fv) == rep {
			return nil, false
		}
	}
	if _, ok := s.ops.AsBareVar(simplified); ok {
		return nil, false
	}
	return simplified, true
}

// hasFreeVariables reports whether any variable in the system lacks a
// fixed type.
func (s *System) hasFreeVariables() bool {
	for i := range s.vars {
		if s.Representative(VarID(i)) == VarID(i) && !s.vars[i].hasFixed {
			return true
		}
	}
	return false
}

func (s *System) varName(id VarID) string {
	return fmt.Sprintf("$T%d", int(id))
}
