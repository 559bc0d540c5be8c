package solver

import "constraintlab/pkg/typeterm"

// solveDisjunction tries each nested alternative of a Disjunction
// constraint in order, under its own scope, until one lets
// continueSearch succeed. Three short-circuits skip later alternatives
// based on what earlier alternatives of the same disjunction did:
//
//   - TupleToTuple: once one TupleToTuple-restricted alternative has
//     been tried, whether or not it succeeded, every later
//     TupleToTuple-restricted alternative is skipped.
//   - InterpolationArgument+Conversion: a Conversion alternative whose
//     locator ends in an InterpolationArgument path element is skipped
//     once a ConformsTo alternative for the same locator has succeeded,
//     since string interpolation prefers conformance over conversion.
//   - OptionalToOptional: once an OptionalToOptional-restricted
//     alternative has been tried, whether or not it succeeded, every
//     later unrestricted Conversion alternative is skipped; the operand
//     types of the two are not compared.
func (s *System) solveDisjunction(c *Constraint, continueSearch func() bool) bool {
	// §4.6b: remove the disjunction from the store before trying its
	// alternatives — otherwise pickDisjunction (called again by the
	// recursive continueSearch) picks this same still-live constraint
	// back up and recurses into solveDisjunction a second time instead of
	// ever reaching the terminal case. Reinsert at its original position
	// once every alternative has been tried, regardless of outcome.
	idx := s.removeFromLive(c)
	defer s.reinsertLive(c, idx)

	var triedTupleToTuple bool
	var triedOptionalToOptional bool
	succeededConformsToLocator := map[string]bool{}

	for i, alt := range c.Nested {
		if s.shouldSkipAlternative(alt, triedTupleToTuple, triedOptionalToOptional, succeededConformsToLocator) {
			continue
		}

		s.stats.DisjunctionsExplored++

		scope := EnterScope(s)
		s.tracer.Disjunction(s.depth, c, i, len(c.Nested))

		s.AddConstraint(*alt)
		if alt.Restriction == RestrictionTupleToTuple {
			triedTupleToTuple = true
		}
		if alt.Restriction == RestrictionOptionalToOptional {
			triedOptionalToOptional = true
		}

		ok := s.runWorklist() == nil
		if ok && alt.Candidate != nil {
			// Recorded inside this alternative's scope, before searching
			// beneath it, so every solution snapshotted below carries it and
			// scope.Exit pops it again.
			s.pushOverloadChoice(OverloadChoice{
				Locator:    alt.Locator,
				Candidate:  alt.Candidate,
				OpenedType: s.openedTypeOf(alt),
			})
		}
		ok = ok && continueSearch()
		if ok {
			if alt.Kind == KindConformsTo {
				succeededConformsToLocator[alt.Locator.String()] = true
			}
			s.tracer.ExitScope(s.depth, Solved, s.score)
			return true
		}
		s.tracer.ExitScope(s.depth, Unsolved, s.score)
		scope.Exit()
	}
	return false
}

// openedTypeOf returns whichever side of alt's operands resolved to a
// concrete type once alt succeeded, for OverloadChoice.OpenedType.
func (s *System) openedTypeOf(alt *Constraint) typeterm.Term {
	opened := s.ops.Simplify(alt.First, s)
	if _, isVar := s.ops.AsBareVar(opened); isVar {
		return s.ops.Simplify(alt.Second, s)
	}
	return opened
}

func (s *System) shouldSkipAlternative(alt *Constraint, triedTupleToTuple, triedOptionalToOptional bool, succeededConformsToLocator map[string]bool) bool {
	if triedTupleToTuple && alt.Restriction == RestrictionTupleToTuple {
		return true
	}
	if triedOptionalToOptional && alt.Kind == KindConversion && alt.Restriction == RestrictionNone {
		return true
	}
	if alt.Kind == KindConversion && alt.Locator.LastPathKind() == "InterpolationArgument" {
		if succeededConformsToLocator[alt.Locator.String()] {
			return true
		}
	}
	return false
}

// pickDisjunction returns the live Disjunction constraint with the
// fewest nested alternatives (§4.6b): fewer alternatives means a
// narrower branching factor, so it is explored first. Scanning stops the
// moment a disjunction of size 2 is found, since nothing scores better
// than that short of a singleton (which normalization would have
// already discharged).
func (s *System) pickDisjunction() *Constraint {
	var best *Constraint
	for _, c := range s.live {
		if !c.active || c.Kind != KindDisjunction {
			continue
		}
		if best == nil || len(c.Nested) < len(best.Nested) {
			best = c
			if len(best.Nested) <= 2 {
				return best
			}
		}
	}
	return best
}
