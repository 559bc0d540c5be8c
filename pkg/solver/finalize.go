package solver

// snapshotSolution captures the current complete binding state as a
// Solution (§4.7). It is called only once every live constraint has
// simplified to Solved and no further variable or disjunction needs
// attention, mirroring ConstraintSystem::finalize: every fixed type is
// re-simplified one last time so a binding recorded before a later
// variable in the same equivalence class was fixed still reflects the
// final, fully-resolved type.
func (s *System) snapshotSolution() Solution {
	sol := Solution{
		Score:         s.score,
		Overloads:     s.overloadChoices(),
		Stats:         s.stats,
		Components:    s.initialComponents,
		NumComponents: s.numInitialComponents,
	}
	for _, r := range s.constraintRestrictions {
		sol.Restrictions = append(sol.Restrictions, RestrictionRecord{First: s.ops.Simplify(r.first, s), Second: s.ops.Simplify(r.second, s), Restriction: r.restriction})
	}
	nextGenericIndex := 0
	for i := range s.vars {
		v := VarID(i)
		rep := s.Representative(v)
		if rep != v {
			continue
		}
		if t, ok := s.FixedType(v); ok {
			sol.Bindings = append(sol.Bindings, Binding{Var: v, Type: s.ops.Simplify(t, s)})
			continue
		}
		if s.freeVarPolicy == GenericParameters {
			sol.Bindings = append(sol.Bindings, Binding{Var: v, Type: s.ops.GenericParameter(nextGenericIndex)})
			nextGenericIndex++
			continue
		}
		sol.FreeVars = append(sol.FreeVars, v)
	}
	return sol
}
